package warehouse

import (
	"context"
	"net/http"

	"stockcount/internal/domain"
	"stockcount/internal/pkg/logger"
	"stockcount/internal/pkg/middleware"
	"stockcount/internal/pkg/respond"
)

// WarehouseService define o contrato que o Handler espera da camada de Serviço.
type WarehouseService interface {
	CreateWarehouse(ctx context.Context, actor *domain.Actor, input domain.WarehouseInput) (domain.Warehouse, error)
	GetWarehouseByID(ctx context.Context, id int64) (domain.Warehouse, error)
	GetAllWarehouses(ctx context.Context) ([]domain.Warehouse, error)
	UpdateWarehouse(ctx context.Context, actor *domain.Actor, id int64, input domain.WarehouseInput) (domain.Warehouse, error)
	DeleteWarehouse(ctx context.Context, actor *domain.Actor, id int64) error
}

// Handler agrupa todos os métodos de Handler de armazéns.
type Handler struct {
	Service WarehouseService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc WarehouseService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// CreateWarehouseHandler lida com a requisição POST /api/warehouses.
// @Summary Cria um novo armazém
// @Description Cria um novo armazém no sistema. Apenas administradores.
// @Tags warehouses
// @Accept json
// @Produce json
// @Param warehouse body domain.WarehouseInput true "Dados do armazém para criação"
// @Success 201 {object} domain.Warehouse "Armazém criado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 403 {object} domain.ErrorResponse "Apenas administradores"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Security ApiKeyAuth
// @Router /warehouses [post]
func (h *Handler) CreateWarehouseHandler(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	var input domain.WarehouseInput
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	created, err := h.Service.CreateWarehouse(r.Context(), actor, input)
	respond.Service(w, r, h.Logger, created, err, http.StatusCreated)
}

// GetWarehouseByIDHandler lida com a requisição GET /api/warehouses/{id}.
// @Summary Obtém um armazém por ID
// @Tags warehouses
// @Produce json
// @Param id path int true "ID do armazém"
// @Success 200 {object} domain.Warehouse "Armazém encontrado"
// @Failure 404 {object} domain.ErrorResponse "Armazém não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Security ApiKeyAuth
// @Router /warehouses/{id} [get]
func (h *Handler) GetWarehouseByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := respond.IDParam(r, "id")
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	warehouse, err := h.Service.GetWarehouseByID(r.Context(), id)
	respond.Service(w, r, h.Logger, warehouse, err, http.StatusOK)
}

// GetAllWarehousesHandler lida com a requisição GET /api/warehouses.
// @Summary Lista todos os armazéns
// @Tags warehouses
// @Produce json
// @Success 200 {array} domain.Warehouse "Lista de armazéns"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Security ApiKeyAuth
// @Router /warehouses [get]
func (h *Handler) GetAllWarehousesHandler(w http.ResponseWriter, r *http.Request) {
	warehouses, err := h.Service.GetAllWarehouses(r.Context())
	respond.Service(w, r, h.Logger, warehouses, err, http.StatusOK)
}

// UpdateWarehouseHandler lida com a requisição PUT /api/warehouses/{id}.
// @Summary Atualiza um armazém
// @Tags warehouses
// @Accept json
// @Produce json
// @Param id path int true "ID do armazém"
// @Param warehouse body domain.WarehouseInput true "Dados do armazém para atualização"
// @Success 200 {object} domain.Warehouse "Armazém atualizado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 404 {object} domain.ErrorResponse "Armazém não encontrado"
// @Security ApiKeyAuth
// @Router /warehouses/{id} [put]
func (h *Handler) UpdateWarehouseHandler(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	id, err := respond.IDParam(r, "id")
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	var input domain.WarehouseInput
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	updated, err := h.Service.UpdateWarehouse(r.Context(), actor, id, input)
	respond.Service(w, r, h.Logger, updated, err, http.StatusOK)
}

// DeleteWarehouseHandler lida com a requisição DELETE /api/warehouses/{id}.
// @Summary Deleta um armazém
// @Tags warehouses
// @Param id path int true "ID do armazém"
// @Success 204 "Nenhum conteúdo"
// @Failure 404 {object} domain.ErrorResponse "Armazém não encontrado"
// @Failure 409 {object} domain.ErrorResponse "Armazém em uso"
// @Security ApiKeyAuth
// @Router /warehouses/{id} [delete]
func (h *Handler) DeleteWarehouseHandler(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	id, err := respond.IDParam(r, "id")
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	err = h.Service.DeleteWarehouse(r.Context(), actor, id)
	respond.Service(w, r, h.Logger, nil, err, http.StatusNoContent)
}
