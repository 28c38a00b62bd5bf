package models

// Role представляет роль пользователя ("Merchant" или "Customer").
type Role struct {
	ID       int64  `json:"id"`
	RoleName string `json:"roleName"`
}

// User представляет пользователя системы.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Address      string    `json:"address"`
	Images       ImageList `json:"image"`
	GovernmentID ImageList `json:"governmentId,omitempty"`
	RoleID       int64     `json:"roleId"`
	Role         Role      `json:"role"`
}

// LoginRequest представляет данные для входа пользователя.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest представляет данные для регистрации нового пользователя.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	RoleID    int64  `json:"roleId"`
}

// AuthMeta содержит токен доступа в ответе аутентификации.
type AuthMeta struct {
	AccessToken string `json:"accessToken"`
}

// LoginResponse представляет ответ сервера после успешной аутентификации.
type LoginResponse struct {
	Status bool     `json:"status"`
	Data   User     `json:"data"`
	Meta   AuthMeta `json:"meta"`
}
