package user

import (
	"context"
	"encoding/json"
	"net/http"

	"stockcount/internal/domain"
	apperror "stockcount/internal/errors"
	"stockcount/internal/pkg/logger"
	"stockcount/internal/pkg/middleware"
	"stockcount/internal/pkg/respond"
)

// UserService define o contrato de administração de usuários.
type UserService interface {
	CreateUser(ctx context.Context, actor *domain.Actor, registration domain.UserRegistration) (domain.User, error)
	ListUsers(ctx context.Context, actor *domain.Actor, filter domain.UserFilter) ([]domain.User, error)
	GetUser(ctx context.Context, actor *domain.Actor, id int64) (domain.User, error)
	UpdateUser(ctx context.Context, actor *domain.Actor, id int64, registration domain.UserRegistration) (domain.User, error)
	DeleteUser(ctx context.Context, actor *domain.Actor, id int64) error
	AssignWarehouses(ctx context.Context, actor *domain.Actor, userID int64, warehouseIDs []int64) (domain.UserWarehouses, error)
	GetUserWarehouses(ctx context.Context, actor *domain.Actor, userID int64) (domain.UserWarehouses, error)
	Me(ctx context.Context, actor *domain.Actor) (domain.User, error)
	MyWarehouses(ctx context.Context, actor *domain.Actor) (domain.UserWarehouses, error)
}

// Handler agrupa todos os métodos de Handler do usuário.
type Handler struct {
	Service UserService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc UserService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// CreateUserHandler lida com a requisição POST /api/users.
// @Summary Cria um usuário
// @Tags users
// @Accept json
// @Produce json
// @Param user body domain.UserRegistration true "Dados do usuário"
// @Success 201 {object} domain.User
// @Failure 400 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse "Username ou email em uso"
// @Security ApiKeyAuth
// @Router /users [post]
func (h *Handler) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	var registration domain.UserRegistration
	if err := respond.Decode(r, &registration); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	created, err := h.Service.CreateUser(r.Context(), actor, registration)
	respond.Service(w, r, h.Logger, created, err, http.StatusCreated)
}

// ListUsersHandler lida com a requisição GET /api/users?skip=&limit=.
// @Summary Lista usuários
// @Tags users
// @Produce json
// @Param skip query int false "Deslocamento" default(0)
// @Param limit query int false "Tamanho da página" default(100)
// @Success 200 {array} domain.User
// @Security ApiKeyAuth
// @Router /users [get]
func (h *Handler) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	skip, _, err := respond.IntQuery(r, "skip")
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	limit, _, err := respond.IntQuery(r, "limit")
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	users, err := h.Service.ListUsers(r.Context(), actor, domain.UserFilter{Skip: int(skip), Limit: int(limit)})
	respond.Service(w, r, h.Logger, users, err, http.StatusOK)
}

// MeHandler lida com a requisição GET /api/users/me.
// @Summary Usuário autenticado
// @Tags users
// @Produce json
// @Success 200 {object} domain.User
// @Security ApiKeyAuth
// @Router /users/me [get]
func (h *Handler) MeHandler(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	user, err := h.Service.Me(r.Context(), actor)
	respond.Service(w, r, h.Logger, user, err, http.StatusOK)
}

// MyWarehousesHandler lida com a requisição GET /api/users/me/warehouses.
// @Summary Armazéns do usuário autenticado
// @Tags users
// @Produce json
// @Success 200 {object} domain.UserWarehouses
// @Security ApiKeyAuth
// @Router /users/me/warehouses [get]
func (h *Handler) MyWarehousesHandler(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	warehouses, err := h.Service.MyWarehouses(r.Context(), actor)
	respond.Service(w, r, h.Logger, warehouses, err, http.StatusOK)
}

// GetUserHandler lida com a requisição GET /api/users/{id}.
// @Summary Busca usuário por ID
// @Tags users
// @Produce json
// @Param id path int true "ID do usuário"
// @Success 200 {object} domain.User
// @Failure 404 {object} domain.ErrorResponse
// @Security ApiKeyAuth
// @Router /users/{id} [get]
func (h *Handler) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	id, err := respond.IDParam(r, "id")
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	user, err := h.Service.GetUser(r.Context(), actor, id)
	respond.Service(w, r, h.Logger, user, err, http.StatusOK)
}

// UpdateUserHandler lida com a requisição PUT /api/users/{id}.
// @Summary Atualiza um usuário
// @Description Senha vazia mantém a senha atual.
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "ID do usuário"
// @Param user body domain.UserRegistration true "Dados do usuário"
// @Success 200 {object} domain.User
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security ApiKeyAuth
// @Router /users/{id} [put]
func (h *Handler) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	id, err := respond.IDParam(r, "id")
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	var registration domain.UserRegistration
	if err := respond.Decode(r, &registration); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	updated, err := h.Service.UpdateUser(r.Context(), actor, id, registration)
	respond.Service(w, r, h.Logger, updated, err, http.StatusOK)
}

// DeleteUserHandler lida com a requisição DELETE /api/users/{id}.
// @Summary Remove um usuário
// @Tags users
// @Param id path int true "ID do usuário"
// @Success 204 "Nenhum conteúdo"
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse "Usuário criador de contagens"
// @Security ApiKeyAuth
// @Router /users/{id} [delete]
func (h *Handler) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	id, err := respond.IDParam(r, "id")
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	err = h.Service.DeleteUser(r.Context(), actor, id)
	respond.Service(w, r, h.Logger, nil, err, http.StatusNoContent)
}

// AssignWarehousesHandler lida com a requisição POST /api/users/{id}/assign-warehouses.
// @Summary Substitui os armazéns atribuídos
// @Description O corpo é um array JSON de IDs de armazém. Todos devem existir.
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "ID do usuário"
// @Param warehouse_ids body []int true "IDs dos armazéns"
// @Success 200 {object} domain.UserWarehouses
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security ApiKeyAuth
// @Router /users/{id}/assign-warehouses [post]
func (h *Handler) AssignWarehousesHandler(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	id, err := respond.IDParam(r, "id")
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	var warehouseIDs []int64
	if err := json.NewDecoder(r.Body).Decode(&warehouseIDs); err != nil {
		respond.Error(w, r, h.Logger, apperror.NewValidationError("O corpo deve ser um array de IDs de armazém."))
		return
	}

	result, err := h.Service.AssignWarehouses(r.Context(), actor, id, warehouseIDs)
	respond.Service(w, r, h.Logger, result, err, http.StatusOK)
}

// GetUserWarehousesHandler lida com a requisição GET /api/users/{id}/warehouses.
// @Summary Armazéns atribuídos a um usuário
// @Tags users
// @Produce json
// @Param id path int true "ID do usuário"
// @Success 200 {object} domain.UserWarehouses
// @Failure 404 {object} domain.ErrorResponse
// @Security ApiKeyAuth
// @Router /users/{id}/warehouses [get]
func (h *Handler) GetUserWarehousesHandler(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	id, err := respond.IDParam(r, "id")
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	result, err := h.Service.GetUserWarehouses(r.Context(), actor, id)
	respond.Service(w, r, h.Logger, result, err, http.StatusOK)
}
