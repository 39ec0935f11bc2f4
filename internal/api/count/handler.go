// Package count expõe as rotas HTTP do ciclo de vida das contagens.
package count

import (
	"context"
	"net/http"

	"stockcount/internal/domain"
	apperror "stockcount/internal/errors"
	"stockcount/internal/pkg/logger"
	"stockcount/internal/pkg/middleware"
	"stockcount/internal/pkg/respond"
)

// CountService define o contrato que o Handler espera da camada de Serviço.
type CountService interface {
	CreateCount(ctx context.Context, actor *domain.Actor, input domain.CountInput) (domain.InventoryCount, error)
	GetCounts(ctx context.Context, actor *domain.Actor, filter domain.CountFilter) ([]domain.InventoryCount, error)
	GetCountDetail(ctx context.Context, actor *domain.Actor, countID int64) (domain.CountDetail, error)
	GetCountItems(ctx context.Context, actor *domain.Actor, countID int64) ([]domain.InventoryItem, error)
	CloseCount(ctx context.Context, actor *domain.Actor, countID int64) (domain.InventoryCount, error)
	AddItemToCount(ctx context.Context, actor *domain.Actor, countID int64, input domain.CountItemInput) (domain.InventoryItem, error)
}

// Handler agrupa os handlers de contagens.
type Handler struct {
	Service CountService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc CountService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// CreateCount lida com a requisição POST /api/inventory-counts.
// @Summary Cria uma contagem
// @Description Abre uma contagem em andamento para um armazém e data de corte.
// @Tags inventory-counts
// @Accept json
// @Produce json
// @Param count body domain.CountInput true "Dados da contagem"
// @Success 201 {object} domain.CountView
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 403 {object} domain.ErrorResponse "Armazém não atribuído"
// @Failure 404 {object} domain.ErrorResponse "Armazém não encontrado"
// @Security ApiKeyAuth
// @Router /inventory-counts [post]
func (h *Handler) CreateCount(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	var input domain.CountInput
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	created, err := h.Service.CreateCount(r.Context(), actor, input)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, h.Logger, http.StatusCreated, created.View())
}

// ListCounts lida com a requisição GET /api/inventory-counts.
// @Summary Lista contagens
// @Description Filtros opcionais combinados com AND. Ordenado do mais recente para o mais antigo.
// @Tags inventory-counts
// @Produce json
// @Param warehouse_id query int false "Armazém"
// @Param status query string false "in_progress | completed | closed"
// @Success 200 {array} domain.CountView
// @Failure 400 {object} domain.ErrorResponse
// @Failure 403 {object} domain.ErrorResponse
// @Security ApiKeyAuth
// @Router /inventory-counts [get]
func (h *Handler) ListCounts(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	var filter domain.CountFilter
	warehouseID, ok, err := respond.IntQuery(r, "warehouse_id")
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	if ok {
		filter.WarehouseID = &warehouseID
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := domain.CountStatus(raw)
		if !status.Valid() {
			respond.Error(w, r, h.Logger, apperror.NewValidationError("status deve ser in_progress, completed ou closed."))
			return
		}
		filter.Status = &status
	}

	counts, err := h.Service.GetCounts(r.Context(), actor, filter)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	views := make([]domain.CountView, 0, len(counts))
	for _, c := range counts {
		views = append(views, c.View())
	}
	respond.JSON(w, h.Logger, http.StatusOK, views)
}

// GetCount lida com a requisição GET /api/inventory-counts/{id}.
// @Summary Detalhe de uma contagem
// @Tags inventory-counts
// @Produce json
// @Param id path int true "ID da contagem"
// @Success 200 {object} domain.CountDetail
// @Failure 403 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security ApiKeyAuth
// @Router /inventory-counts/{id} [get]
func (h *Handler) GetCount(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	id, err := respond.IDParam(r, "id")
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	detail, err := h.Service.GetCountDetail(r.Context(), actor, id)
	respond.Service(w, r, h.Logger, detail, err, http.StatusOK)
}

// CloseCount lida com a requisição PUT /api/inventory-counts/{id}/close.
// @Summary Fecha uma contagem
// @Description Apenas administradores. Fechar uma contagem já fechada é rejeitado.
// @Tags inventory-counts
// @Produce json
// @Param id path int true "ID da contagem"
// @Success 200 {object} domain.CountView
// @Failure 400 {object} domain.ErrorResponse "Contagem já fechada"
// @Failure 403 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security ApiKeyAuth
// @Router /inventory-counts/{id}/close [put]
func (h *Handler) CloseCount(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	id, err := respond.IDParam(r, "id")
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	closed, err := h.Service.CloseCount(r.Context(), actor, id)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, h.Logger, http.StatusOK, closed.View())
}

// AddItem lida com a requisição POST /api/inventory-counts/{id}/items.
// @Summary Adiciona um item à contagem
// @Description quantity = packages_count × units_per_package. Cada chamada cria um item novo.
// @Tags inventory-counts
// @Accept json
// @Produce json
// @Param id path int true "ID da contagem"
// @Param item body domain.CountItemInput true "Produto e embalagens contadas"
// @Success 201 {object} domain.InventoryItem
// @Failure 400 {object} domain.ErrorResponse
// @Failure 403 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security ApiKeyAuth
// @Router /inventory-counts/{id}/items [post]
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	id, err := respond.IDParam(r, "id")
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	var input domain.CountItemInput
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	item, err := h.Service.AddItemToCount(r.Context(), actor, id, input)
	respond.Service(w, r, h.Logger, item, err, http.StatusCreated)
}

// ListItems lida com a requisição GET /api/inventory-counts/{id}/items.
// @Summary Lista os itens de uma contagem
// @Tags inventory-counts
// @Produce json
// @Param id path int true "ID da contagem"
// @Success 200 {array} domain.InventoryItem
// @Failure 403 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security ApiKeyAuth
// @Router /inventory-counts/{id}/items [get]
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	id, err := respond.IDParam(r, "id")
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	items, err := h.Service.GetCountItems(r.Context(), actor, id)
	respond.Service(w, r, h.Logger, items, err, http.StatusOK)
}
