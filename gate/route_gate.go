// Package gate реализует шлюз маршрутов: решение "рендерить или
// перенаправить" для экрана в зависимости от состояния сессии.
package gate

import "catalog_admin_go/models"

// Пути назначения перенаправлений.
const (
	LoginPath             = "/login"
	MerchantDashboardPath = "/dashboard/merchant"
	CustomerDashboardPath = "/dashboard/customer"
)

// Resolution — решение шлюза для одного пересчета состояния.
// Redirect == "" означает отсутствие перенаправления. Render и Redirect не
// исключают друг друга: залогиненный пользователь на публичном экране
// рендерится и одновременно перенаправляется на свой дашборд.
type Resolution struct {
	Render   bool
	Redirect string
}

// ResolveRoute — чистая функция принятия решения.
//   - Защищенный экран без токена не рендерится и ведет на /login.
//   - Присутствующий пользователь всегда перенаправляется на дашборд своей
//     роли, даже на публичных экранах; это решение перекрывает /login.
//   - Неизвестная роль не дает перенаправления на дашборд.
func ResolveRoute(accessToken string, user *models.User, isProtected bool) Resolution {
	res := Resolution{Render: true}
	if isProtected && accessToken == "" {
		res.Render = false
		res.Redirect = LoginPath
	}
	if user != nil {
		switch user.Role.RoleName {
		case "Merchant":
			res.Redirect = MerchantDashboardPath
		case "Customer":
			res.Redirect = CustomerDashboardPath
		}
	}
	return res
}

// Navigator — навигационный примитив, которому шлюз отдает перенаправления.
type Navigator interface {
	Push(path string)
}

// Gate оборачивает один экран. Observe вызывается при каждом изменении
// токена или пользователя; перенаправление выдается ровно один раз на
// переход состояния, а не на каждый пересчет.
type Gate struct {
	nav         Navigator
	isProtected bool

	evaluated    bool
	lastRedirect string
}

// New создает шлюз для экрана. isProtected объявляет, требует ли экран
// аутентификации.
func New(nav Navigator, isProtected bool) *Gate {
	return &Gate{nav: nav, isProtected: isProtected}
}

// Observe пересчитывает решение для нового состояния сессии и возвращает его.
func (g *Gate) Observe(accessToken string, user *models.User) Resolution {
	res := ResolveRoute(accessToken, user, g.isProtected)
	if res.Redirect != "" && (!g.evaluated || res.Redirect != g.lastRedirect) {
		g.nav.Push(res.Redirect)
	}
	g.evaluated = true
	g.lastRedirect = res.Redirect
	return res
}
