// Package auth expõe registro e login.
package auth

import (
	"context"
	"net/http"

	"stockcount/internal/domain"
	"stockcount/internal/pkg/logger"
	"stockcount/internal/pkg/middleware"
	"stockcount/internal/pkg/respond"
)

// AuthService define o contrato para as operações de registro e login.
type AuthService interface {
	Register(ctx context.Context, registration domain.UserRegistration) (domain.TokenResponse, error)
	RegisterAdmin(ctx context.Context, actor *domain.Actor, registration domain.UserRegistration) (domain.TokenResponse, error)
	Login(ctx context.Context, username, password string) (domain.TokenResponse, error)
}

// Handler agrupa os handlers de autenticação.
type Handler struct {
	Service AuthService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler.
func NewHandler(svc AuthService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// RegisterHandler lida com a requisição POST /api/auth/register.
// @Summary Registra um novo usuário
// @Description Cria uma conta com papel user e devolve o token de acesso.
// @Tags auth
// @Accept json
// @Produce json
// @Param user body domain.UserRegistration true "Dados de registro"
// @Success 201 {object} domain.TokenResponse
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 409 {object} domain.ErrorResponse "Username ou email já em uso"
// @Router /auth/register [post]
func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var registration domain.UserRegistration
	if err := respond.Decode(r, &registration); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	resp, err := h.Service.Register(r.Context(), registration)
	respond.Service(w, r, h.Logger, resp, err, http.StatusCreated)
}

// RegisterAdminHandler lida com a requisição POST /api/auth/register-admin.
// @Summary Registra um administrador
// @Description Livre enquanto não existir administrador; depois exige token de administrador.
// @Tags auth
// @Accept json
// @Produce json
// @Param user body domain.UserRegistration true "Dados de registro"
// @Success 201 {object} domain.TokenResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 403 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse
// @Security ApiKeyAuth
// @Router /auth/register-admin [post]
func (h *Handler) RegisterAdminHandler(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	var registration domain.UserRegistration
	if err := respond.Decode(r, &registration); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	resp, err := h.Service.RegisterAdmin(r.Context(), actor, registration)
	respond.Service(w, r, h.Logger, resp, err, http.StatusCreated)
}

// LoginHandler lida com a requisição POST /api/auth/login.
// @Summary Autentica um usuário
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body domain.LoginRequest true "Credenciais"
// @Success 200 {object} domain.TokenResponse
// @Failure 401 {object} domain.ErrorResponse "Credenciais inválidas"
// @Router /auth/login [post]
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	resp, err := h.Service.Login(r.Context(), req.Username, req.Password)
	respond.Service(w, r, h.Logger, resp, err, http.StatusOK)
}
