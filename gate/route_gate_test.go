package gate

import (
	"testing"

	"catalog_admin_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func merchant() *models.User {
	return &models.User{ID: 1, Role: models.Role{ID: 1, RoleName: "Merchant"}}
}

func customer() *models.User {
	return &models.User{ID: 2, Role: models.Role{ID: 2, RoleName: "Customer"}}
}

func TestResolveProtectedWithoutToken(t *testing.T) {
	res := ResolveRoute("", nil, true)
	assert.False(t, res.Render)
	assert.Equal(t, LoginPath, res.Redirect)
}

func TestResolvePublicWithoutSession(t *testing.T) {
	res := ResolveRoute("", nil, false)
	assert.True(t, res.Render)
	assert.Empty(t, res.Redirect)
}

func TestResolveProtectedWithTokenRenders(t *testing.T) {
	res := ResolveRoute("tok", nil, true)
	assert.True(t, res.Render)
	assert.Empty(t, res.Redirect)
}

// Залогиненный пользователь перенаправляется на дашборд своей роли даже на
// публичном экране.
func TestResolveMerchantRedirectIgnoresProtectionFlag(t *testing.T) {
	for _, isProtected := range []bool{true, false} {
		res := ResolveRoute("tok", merchant(), isProtected)
		assert.Equal(t, MerchantDashboardPath, res.Redirect)
		assert.True(t, res.Render)
	}
}

func TestResolveCustomerRedirect(t *testing.T) {
	res := ResolveRoute("tok", customer(), false)
	assert.Equal(t, CustomerDashboardPath, res.Redirect)
}

// Перенаправление роли перекрывает перенаправление на /login.
func TestRoleRedirectOverridesLoginRedirect(t *testing.T) {
	res := ResolveRoute("", merchant(), true)
	assert.False(t, res.Render)
	assert.Equal(t, MerchantDashboardPath, res.Redirect)
}

func TestUnknownRoleGivesNoDashboardRedirect(t *testing.T) {
	user := &models.User{ID: 3, Role: models.Role{ID: 9, RoleName: "Admin"}}
	res := ResolveRoute("tok", user, false)
	assert.True(t, res.Render)
	assert.Empty(t, res.Redirect)
}

type recordingNavigator struct {
	pushes []string
}

func (n *recordingNavigator) Push(path string) {
	n.pushes = append(n.pushes, path)
}

// Перенаправление выдается ровно один раз на переход состояния, а не на
// каждый пересчет.
func TestGateRedirectsOncePerTransition(t *testing.T) {
	nav := &recordingNavigator{}
	g := New(nav, true)

	res := g.Observe("", nil)
	assert.False(t, res.Render)
	g.Observe("", nil)
	g.Observe("", nil)
	require.Equal(t, []string{LoginPath}, nav.pushes)

	// Появление токена снимает перенаправление
	res = g.Observe("tok", nil)
	assert.True(t, res.Render)
	require.Len(t, nav.pushes, 1)

	// Потеря токена — новый переход, новое перенаправление
	g.Observe("", nil)
	require.Equal(t, []string{LoginPath, LoginPath}, nav.pushes)
}

func TestGateRedirectsLoggedInUserFromPublicScreen(t *testing.T) {
	nav := &recordingNavigator{}
	g := New(nav, false)

	res := g.Observe("tok", merchant())
	assert.True(t, res.Render)
	g.Observe("tok", merchant())
	assert.Equal(t, []string{MerchantDashboardPath}, nav.pushes)
}

func TestGateTransitionBetweenRedirectTargets(t *testing.T) {
	nav := &recordingNavigator{}
	g := New(nav, true)

	g.Observe("", nil)
	g.Observe("tok", customer())
	assert.Equal(t, []string{LoginPath, CustomerDashboardPath}, nav.pushes)
}
