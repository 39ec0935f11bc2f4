// Package inventory expõe as rotas de estoque dos armazéns.
package inventory

import (
	"context"
	"net/http"

	"stockcount/internal/domain"
	apperror "stockcount/internal/errors"
	"stockcount/internal/pkg/logger"
	"stockcount/internal/pkg/middleware"
	"stockcount/internal/pkg/respond"
)

// InventoryService define o contrato que o Handler espera da camada de Serviço.
type InventoryService interface {
	AddStandaloneInventoryItem(ctx context.Context, actor *domain.Actor, input domain.InventoryItemInput) (domain.InventoryItem, error)
	UpdateQuantity(ctx context.Context, actor *domain.Actor, itemID int64, quantity int) (domain.InventoryItem, error)
	RemoveItem(ctx context.Context, actor *domain.Actor, itemID int64) (bool, error)
	GetWarehouseInventory(ctx context.Context, actor *domain.Actor, warehouseID int64) (domain.WarehouseInventory, error)
	GetAllWarehouseInventory(ctx context.Context, actor *domain.Actor) ([]domain.WarehouseInventory, error)
	GetProductQuantity(ctx context.Context, actor *domain.Actor, warehouseID, productID int64) (domain.ProductQuantity, error)
}

// Handler agrupa os handlers de estoque.
type Handler struct {
	Service InventoryService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler.
func NewHandler(svc InventoryService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// AddItem lida com a requisição POST /api/inventory.
// @Summary Registra estoque num armazém
// @Description Sem count_id, soma ao registro avulso de (armazém, produto). Com count_id, cria um item na contagem.
// @Tags inventory
// @Accept json
// @Produce json
// @Param item body domain.InventoryItemInput true "Armazém, produto e embalagens"
// @Success 201 {object} domain.InventoryItem
// @Failure 400 {object} domain.ErrorResponse
// @Failure 403 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security ApiKeyAuth
// @Router /inventory [post]
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	var input domain.InventoryItemInput
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	item, err := h.Service.AddStandaloneInventoryItem(r.Context(), actor, input)
	respond.Service(w, r, h.Logger, item, err, http.StatusCreated)
}

// UpdateQuantity lida com a requisição PUT /api/inventory/{id}?quantity=N.
// @Summary Sobrescreve a quantidade de um item
// @Description packages_count não é recalculado.
// @Tags inventory
// @Produce json
// @Param id path int true "ID do item"
// @Param quantity query int true "Nova quantidade (> 0)"
// @Success 200 {object} domain.InventoryItem
// @Failure 400 {object} domain.ErrorResponse
// @Failure 403 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security ApiKeyAuth
// @Router /inventory/{id} [put]
func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	id, err := respond.IDParam(r, "id")
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	quantity, ok, err := respond.IntQuery(r, "quantity")
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	if !ok {
		respond.Error(w, r, h.Logger, apperror.NewValidationError("O parâmetro 'quantity' é obrigatório."))
		return
	}

	item, err := h.Service.UpdateQuantity(r.Context(), actor, id, int(quantity))
	respond.Service(w, r, h.Logger, item, err, http.StatusOK)
}

// DeleteItem lida com a requisição DELETE /api/inventory/{id}.
// @Summary Remove um item de estoque
// @Tags inventory
// @Param id path int true "ID do item"
// @Success 204 "Nenhum conteúdo"
// @Failure 403 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security ApiKeyAuth
// @Router /inventory/{id} [delete]
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	id, err := respond.IDParam(r, "id")
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	removed, err := h.Service.RemoveItem(r.Context(), actor, id)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	if !removed {
		respond.Error(w, r, h.Logger, apperror.NewNotFoundError("Item de inventário não encontrado."))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListAll lida com a requisição GET /api/inventory.
// @Summary Resumo de estoque de todos os armazéns
// @Tags inventory
// @Produce json
// @Success 200 {array} domain.WarehouseInventory
// @Security ApiKeyAuth
// @Router /inventory [get]
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	summaries, err := h.Service.GetAllWarehouseInventory(r.Context(), actor)
	respond.Service(w, r, h.Logger, summaries, err, http.StatusOK)
}

// GetWarehouse lida com a requisição GET /api/inventory/warehouse/{warehouseID}.
// @Summary Resumo de estoque de um armazém
// @Tags inventory
// @Produce json
// @Param warehouseID path int true "ID do armazém"
// @Success 200 {object} domain.WarehouseInventory
// @Failure 403 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security ApiKeyAuth
// @Router /inventory/warehouse/{warehouseID} [get]
func (h *Handler) GetWarehouse(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	id, err := respond.IDParam(r, "warehouseID")
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	summary, err := h.Service.GetWarehouseInventory(r.Context(), actor, id)
	respond.Service(w, r, h.Logger, summary, err, http.StatusOK)
}

// GetProductQuantity lida com a requisição GET /api/inventory/warehouse/{warehouseID}/product/{productID}.
// @Summary Quantidade avulsa de um produto num armazém
// @Tags inventory
// @Produce json
// @Param warehouseID path int true "ID do armazém"
// @Param productID path int true "ID do produto"
// @Success 200 {object} domain.ProductQuantity
// @Failure 403 {object} domain.ErrorResponse
// @Security ApiKeyAuth
// @Router /inventory/warehouse/{warehouseID}/product/{productID} [get]
func (h *Handler) GetProductQuantity(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	warehouseID, err := respond.IDParam(r, "warehouseID")
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	productID, err := respond.IDParam(r, "productID")
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	quantity, err := h.Service.GetProductQuantity(r.Context(), actor, warehouseID, productID)
	respond.Service(w, r, h.Logger, quantity, err, http.StatusOK)
}
