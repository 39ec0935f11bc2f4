// Package countservice gerencia o ciclo de vida das contagens de inventário:
// criação, consulta, fechamento e inclusão de itens.
package countservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stockcount/internal/domain"
	apperror "stockcount/internal/errors"
	"stockcount/internal/pkg/logger"
	"stockcount/internal/policy"
)

// CountRepository define o contrato de persistência de contagens.
type CountRepository interface {
	Create(ctx context.Context, count domain.InventoryCount) (domain.InventoryCount, error)
	FindByID(ctx context.Context, id int64) (domain.InventoryCount, error)
	List(ctx context.Context, filter domain.CountFilter) ([]domain.InventoryCount, error)
	Close(ctx context.Context, id int64, closedAt time.Time) error
}

// ItemRepository define o contrato de persistência dos itens de uma contagem.
type ItemRepository interface {
	CreateInCount(ctx context.Context, countID, productID int64, packagesCount, quantity int) (domain.InventoryItem, error)
	ListByCount(ctx context.Context, countID int64) ([]domain.InventoryItem, error)
}

// WarehouseRepository é usado para validar o armazém da contagem.
type WarehouseRepository interface {
	WarehouseExists(ctx context.Context, id int64) (bool, error)
}

// ProductRepository é usado para obter o fator de conversão do produto.
type ProductRepository interface {
	GetProductByID(ctx context.Context, id int64) (domain.Product, error)
}

// Service implementa as operações sobre contagens.
type Service struct {
	counts     CountRepository
	items      ItemRepository
	warehouses WarehouseRepository
	products   ProductRepository
	logger     logger.Logger
	now        func() time.Time
}

// NewService cria e retorna uma nova instância do Serviço de Contagens.
func NewService(counts CountRepository, items ItemRepository, warehouses WarehouseRepository, products ProductRepository, logger logger.Logger) *Service {
	return &Service{
		counts:     counts,
		items:      items,
		warehouses: warehouses,
		products:   products,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// CreateCount abre uma nova contagem em andamento no armazém informado.
func (s *Service) CreateCount(ctx context.Context, actor *domain.Actor, input domain.CountInput) (domain.InventoryCount, error) {
	s.logger.Debug("Iniciando criação de contagem no serviço.", map[string]interface{}{"warehouse_id": input.WarehouseID})

	if err := policy.RequireWarehouse(actor, input.WarehouseID); err != nil {
		return domain.InventoryCount{}, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return domain.InventoryCount{}, apperror.NewValidationError("O nome da contagem é obrigatório.")
	}

	cutOff, err := time.Parse(domain.CutOffDateLayout, strings.TrimSpace(input.CutOffDate))
	if err != nil {
		s.logger.Warn("Data de corte inválida.", map[string]interface{}{"cut_off_date": input.CutOffDate})
		return domain.InventoryCount{}, apperror.NewValidationError("A data de corte deve estar no formato YYYY-MM-DD.")
	}

	exists, err := s.warehouses.WarehouseExists(ctx, input.WarehouseID)
	if err != nil {
		return domain.InventoryCount{}, err
	}
	if !exists {
		return domain.InventoryCount{}, apperror.NewNotFoundError("Armazém não encontrado.")
	}

	created, err := s.counts.Create(ctx, domain.InventoryCount{
		Name:        name,
		CutOffDate:  cutOff,
		WarehouseID: input.WarehouseID,
		Status:      domain.CountInProgress,
		CreatedBy:   actor.ID,
		CreatedAt:   s.now(),
	})
	if err != nil {
		return domain.InventoryCount{}, err
	}

	s.logger.Info("Contagem criada.", map[string]interface{}{"id": created.ID, "warehouse_id": created.WarehouseID, "actor": actor.Username})
	return created, nil
}

// GetCounts lista contagens com filtros opcionais de armazém e status.
// Sem filtro de armazém a listagem não é restrita aos armazéns do ator.
func (s *Service) GetCounts(ctx context.Context, actor *domain.Actor, filter domain.CountFilter) ([]domain.InventoryCount, error) {
	if err := policy.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, apperror.NewValidationError("Status inválido. Use in_progress, completed ou closed.")
	}
	if filter.WarehouseID != nil {
		if err := policy.RequireWarehouse(actor, *filter.WarehouseID); err != nil {
			return nil, err
		}
	}
	return s.counts.List(ctx, filter)
}

// loadForActor busca a contagem e verifica o acesso do ator ao armazém dela.
func (s *Service) loadForActor(ctx context.Context, actor *domain.Actor, countID int64) (domain.InventoryCount, error) {
	if err := policy.RequireAuthenticated(actor); err != nil {
		return domain.InventoryCount{}, err
	}
	count, err := s.counts.FindByID(ctx, countID)
	if err != nil {
		return domain.InventoryCount{}, err
	}
	if err := policy.RequireWarehouse(actor, count.WarehouseID); err != nil {
		return domain.InventoryCount{}, err
	}
	return count, nil
}

// GetCountDetail devolve a contagem com todos os seus itens.
func (s *Service) GetCountDetail(ctx context.Context, actor *domain.Actor, countID int64) (domain.CountDetail, error) {
	count, err := s.loadForActor(ctx, actor, countID)
	if err != nil {
		return domain.CountDetail{}, err
	}
	items, err := s.items.ListByCount(ctx, countID)
	if err != nil {
		return domain.CountDetail{}, err
	}
	return domain.CountDetail{CountView: count.View(), Items: items}, nil
}

// GetCountItems devolve apenas os itens da contagem.
func (s *Service) GetCountItems(ctx context.Context, actor *domain.Actor, countID int64) ([]domain.InventoryItem, error) {
	if _, err := s.loadForActor(ctx, actor, countID); err != nil {
		return nil, err
	}
	return s.items.ListByCount(ctx, countID)
}

// CloseCount fecha a contagem. Fechar uma contagem já fechada é um erro de estado.
func (s *Service) CloseCount(ctx context.Context, actor *domain.Actor, countID int64) (domain.InventoryCount, error) {
	if err := policy.RequireAdmin(actor); err != nil {
		return domain.InventoryCount{}, err
	}

	count, err := s.counts.FindByID(ctx, countID)
	if err != nil {
		return domain.InventoryCount{}, err
	}
	if count.IsClosed() {
		return domain.InventoryCount{}, apperror.NewInvalidStateError("a contagem já está fechada.")
	}

	closedAt := s.now()
	if err := s.counts.Close(ctx, countID, closedAt); err != nil {
		return domain.InventoryCount{}, err
	}

	count.Status = domain.CountClosed
	count.ClosedAt = &closedAt

	s.logger.Info("Contagem fechada.", map[string]interface{}{"id": countID, "actor": actor.Username})
	return count, nil
}

// AddItemToCount registra um novo item na contagem convertendo pacotes em unidades.
// Cada chamada cria uma linha nova; itens de contagem nunca são mesclados.
func (s *Service) AddItemToCount(ctx context.Context, actor *domain.Actor, countID int64, input domain.CountItemInput) (domain.InventoryItem, error) {
	count, err := s.loadForActor(ctx, actor, countID)
	if err != nil {
		return domain.InventoryItem{}, err
	}
	if count.IsClosed() {
		return domain.InventoryItem{}, apperror.NewInvalidStateError("não é possível adicionar itens a uma contagem fechada.")
	}
	if input.PackagesCount < 0 {
		return domain.InventoryItem{}, apperror.NewValidationError("packages_count não pode ser negativo.")
	}

	product, err := s.products.GetProductByID(ctx, input.ProductID)
	if err != nil {
		return domain.InventoryItem{}, err
	}

	quantity, ok := product.UnitsFor(input.PackagesCount)
	if !ok {
		return domain.InventoryItem{}, apperror.NewValidationError(fmt.Sprintf("packages_count resulta numa quantidade acima de %d unidades.", domain.MaxQuantity))
	}
	item, err := s.items.CreateInCount(ctx, countID, product.ID, input.PackagesCount, quantity)
	if err != nil {
		return domain.InventoryItem{}, err
	}

	s.logger.Info("Item adicionado à contagem.", map[string]interface{}{
		"count_id":       countID,
		"product_id":     product.ID,
		"packages_count": input.PackagesCount,
		"quantity":       quantity,
	})
	return item, nil
}
