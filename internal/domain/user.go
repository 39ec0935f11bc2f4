package domain

import "time"

// User representa a entidade do usuário no sistema.
type User struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Oculta o hash da senha no JSON de resposta
	Role         UserRole  `json:"role"`
	PictureURL   *string   `json:"picture_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserRole é um tipo string para representar o papel do usuário no sistema.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// Valid informa se o papel é um dos papéis conhecidos.
func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// UserRegistration representa o payload de entrada para registro e criação de usuários.
type UserRegistration struct {
	FirstName  string   `json:"first_name" validate:"required,max=100"`
	LastName   string   `json:"last_name" validate:"required,max=100"`
	Email      string   `json:"email" validate:"required,email,max=100"`
	Phone      string   `json:"phone" validate:"required,max=20"`
	Username   string   `json:"username" validate:"required,min=3,max=100"`
	Password   string   `json:"password" validate:"omitempty,min=6,max=72"`
	Role       UserRole `json:"role" validate:"omitempty,oneof=admin user"`
	PictureURL *string  `json:"picture_url" validate:"omitempty,url"`
}

// LoginRequest representa o payload de entrada para o login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse é devolvido por login e registro.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

// UserWarehouses lista os armazéns atribuídos a um usuário.
type UserWarehouses struct {
	UserID             int64       `json:"user_id"`
	Username           string      `json:"username"`
	Role               UserRole    `json:"role"`
	AssignedWarehouses []Warehouse `json:"assigned_warehouses"`
}

// UserFilter define a paginação da listagem de usuários.
type UserFilter struct {
	Skip  int
	Limit int
}
