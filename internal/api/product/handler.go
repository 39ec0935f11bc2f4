package product

import (
	"context"
	"net/http"

	"stockcount/internal/domain"
	"stockcount/internal/pkg/logger"
	"stockcount/internal/pkg/middleware"
	"stockcount/internal/pkg/respond"
)

// ProductService define o contrato que o Handler espera da camada de Serviço.
type ProductService interface {
	CreateProduct(ctx context.Context, actor *domain.Actor, input domain.ProductInput) (domain.Product, error)
	GetProductByID(ctx context.Context, id int64) (domain.Product, error)
	GetAllProducts(ctx context.Context) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, actor *domain.Actor, id int64, input domain.ProductInput) (domain.Product, error)
	DeleteProduct(ctx context.Context, actor *domain.Actor, id int64) error
}

// Handler agrupa todos os métodos de Handler do produto.
type Handler struct {
	Service ProductService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ProductService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// CreateProductHandler lida com a requisição POST /api/products.
// @Summary Cria um novo produto
// @Description units_per_package padrão 1 e packaging_unit padrão "Unidad". Apenas administradores.
// @Tags products
// @Accept json
// @Produce json
// @Param product body domain.ProductInput true "Dados do produto"
// @Success 201 {object} domain.Product "Produto criado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 403 {object} domain.ErrorResponse "Apenas administradores"
// @Security ApiKeyAuth
// @Router /products [post]
func (h *Handler) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	var input domain.ProductInput
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	created, err := h.Service.CreateProduct(r.Context(), actor, input)
	respond.Service(w, r, h.Logger, created, err, http.StatusCreated)
}

// GetProductByIDHandler lida com a requisição GET /api/products/{id}.
// @Summary Busca produto por ID
// @Tags products
// @Produce json
// @Param id path int true "ID do produto"
// @Success 200 {object} domain.Product "Produto encontrado"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Security ApiKeyAuth
// @Router /products/{id} [get]
func (h *Handler) GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := respond.IDParam(r, "id")
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	product, err := h.Service.GetProductByID(r.Context(), id)
	respond.Service(w, r, h.Logger, product, err, http.StatusOK)
}

// GetAllProductsHandler lida com a requisição GET /api/products.
// @Summary Lista o catálogo de produtos
// @Tags products
// @Produce json
// @Success 200 {array} domain.Product
// @Security ApiKeyAuth
// @Router /products [get]
func (h *Handler) GetAllProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := h.Service.GetAllProducts(r.Context())
	respond.Service(w, r, h.Logger, products, err, http.StatusOK)
}

// UpdateProductHandler lida com a requisição PUT /api/products/{id}.
// @Summary Atualiza um produto
// @Description Itens já registrados não são recalculados quando units_per_package muda.
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "ID do produto"
// @Param product body domain.ProductInput true "Dados do produto"
// @Success 200 {object} domain.Product
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security ApiKeyAuth
// @Router /products/{id} [put]
func (h *Handler) UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	id, err := respond.IDParam(r, "id")
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	var input domain.ProductInput
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	updated, err := h.Service.UpdateProduct(r.Context(), actor, id, input)
	respond.Service(w, r, h.Logger, updated, err, http.StatusOK)
}

// DeleteProductHandler lida com a requisição DELETE /api/products/{id}.
// @Summary Remove um produto
// @Tags products
// @Param id path int true "ID do produto"
// @Success 204 "Nenhum conteúdo"
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse "Produto com estoque registrado"
// @Security ApiKeyAuth
// @Router /products/{id} [delete]
func (h *Handler) DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	id, err := respond.IDParam(r, "id")
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	err = h.Service.DeleteProduct(r.Context(), actor, id)
	respond.Service(w, r, h.Logger, nil, err, http.StatusNoContent)
}
