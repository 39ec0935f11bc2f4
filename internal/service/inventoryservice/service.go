// Package inventoryservice acumula o estoque dos armazéns e gerencia os itens de inventário.
package inventoryservice

import (
	"context"
	"fmt"

	"stockcount/internal/domain"
	apperror "stockcount/internal/errors"
	"stockcount/internal/pkg/logger"
	"stockcount/internal/policy"
)

// ItemRepository define o contrato de persistência de itens de inventário.
type ItemRepository interface {
	UpsertStandalone(ctx context.Context, warehouseID, productID int64, packagesCount, quantity int) (domain.InventoryItem, error)
	CreateInCount(ctx context.Context, countID, productID int64, packagesCount, quantity int) (domain.InventoryItem, error)
	FindByID(ctx context.Context, id int64) (domain.InventoryItem, error)
	UpdateQuantity(ctx context.Context, id int64, quantity int) (domain.InventoryItem, error)
	Delete(ctx context.Context, id int64) (bool, error)
	ListStandaloneByWarehouse(ctx context.Context, warehouseID int64) ([]domain.InventoryDetail, error)
	StandaloneQuantity(ctx context.Context, warehouseID, productID int64) (int, error)
}

// CountRepository é usado quando o item é registrado dentro de uma contagem.
type CountRepository interface {
	FindByID(ctx context.Context, id int64) (domain.InventoryCount, error)
}

// WarehouseRepository fornece os dados dos armazéns para os resumos.
type WarehouseRepository interface {
	GetWarehouseByID(ctx context.Context, id int64) (domain.Warehouse, error)
	GetAllWarehouses(ctx context.Context) ([]domain.Warehouse, error)
}

// ProductRepository fornece o fator de conversão pacote → unidade.
type ProductRepository interface {
	GetProductByID(ctx context.Context, id int64) (domain.Product, error)
}

// Service implementa as operações de estoque.
type Service struct {
	items      ItemRepository
	counts     CountRepository
	warehouses WarehouseRepository
	products   ProductRepository
	logger     logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Inventário.
func NewService(items ItemRepository, counts CountRepository, warehouses WarehouseRepository, products ProductRepository, logger logger.Logger) *Service {
	return &Service{
		items:      items,
		counts:     counts,
		warehouses: warehouses,
		products:   products,
		logger:     logger,
	}
}

// AddStandaloneInventoryItem registra pacotes de um produto num armazém.
//
// Sem count_id, a quantidade é somada ao registro avulso existente de (armazém, produto)
// ou cria um novo. Com count_id, a contagem deve existir, estar aberta e pertencer ao
// mesmo armazém; nesse caso um item novo é criado na contagem.
func (s *Service) AddStandaloneInventoryItem(ctx context.Context, actor *domain.Actor, input domain.InventoryItemInput) (domain.InventoryItem, error) {
	s.logger.Debug("Iniciando registro de estoque no serviço.", map[string]interface{}{
		"warehouse_id": input.WarehouseID,
		"product_id":   input.ProductID,
	})

	if err := policy.RequireWarehouse(actor, input.WarehouseID); err != nil {
		return domain.InventoryItem{}, err
	}
	if input.PackagesCount < 0 {
		return domain.InventoryItem{}, apperror.NewValidationError("packages_count não pode ser negativo.")
	}

	product, err := s.products.GetProductByID(ctx, input.ProductID)
	if err != nil {
		return domain.InventoryItem{}, err
	}
	if _, err := s.warehouses.GetWarehouseByID(ctx, input.WarehouseID); err != nil {
		return domain.InventoryItem{}, err
	}

	quantity, ok := product.UnitsFor(input.PackagesCount)
	if !ok {
		return domain.InventoryItem{}, apperror.NewValidationError(fmt.Sprintf("packages_count resulta numa quantidade acima de %d unidades.", domain.MaxQuantity))
	}

	if input.CountID == nil {
		item, err := s.items.UpsertStandalone(ctx, input.WarehouseID, product.ID, input.PackagesCount, quantity)
		if err != nil {
			return domain.InventoryItem{}, err
		}
		s.logger.Info("Estoque avulso acumulado.", map[string]interface{}{"item_id": item.ID, "added": quantity, "total": item.Quantity})
		return item, nil
	}

	count, err := s.counts.FindByID(ctx, *input.CountID)
	if err != nil {
		return domain.InventoryItem{}, err
	}
	if count.IsClosed() {
		return domain.InventoryItem{}, apperror.NewInvalidStateError("não é possível adicionar itens a uma contagem fechada.")
	}
	if count.WarehouseID != input.WarehouseID {
		return domain.InventoryItem{}, apperror.NewValidationError("A contagem informada pertence a outro armazém.")
	}

	item, err := s.items.CreateInCount(ctx, count.ID, product.ID, input.PackagesCount, quantity)
	if err != nil {
		return domain.InventoryItem{}, err
	}
	s.logger.Info("Item registrado na contagem.", map[string]interface{}{"item_id": item.ID, "count_id": count.ID})
	return item, nil
}

// UpdateQuantity sobrescreve a quantidade do item. packages_count permanece o mesmo.
func (s *Service) UpdateQuantity(ctx context.Context, actor *domain.Actor, itemID int64, quantity int) (domain.InventoryItem, error) {
	if err := policy.RequireAuthenticated(actor); err != nil {
		return domain.InventoryItem{}, err
	}
	if quantity <= 0 {
		return domain.InventoryItem{}, apperror.NewValidationError("A quantidade deve ser maior que zero.")
	}
	if quantity > domain.MaxQuantity {
		return domain.InventoryItem{}, apperror.NewValidationError(fmt.Sprintf("A quantidade não pode exceder %d.", domain.MaxQuantity))
	}

	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return domain.InventoryItem{}, err
	}
	if err := policy.RequireWarehouse(actor, item.WarehouseID); err != nil {
		return domain.InventoryItem{}, err
	}

	updated, err := s.items.UpdateQuantity(ctx, itemID, quantity)
	if err != nil {
		return domain.InventoryItem{}, err
	}

	s.logger.Info("Quantidade atualizada.", map[string]interface{}{"item_id": itemID, "from": item.Quantity, "to": quantity})
	return updated, nil
}

// RemoveItem apaga o item e informa se ele existia.
func (s *Service) RemoveItem(ctx context.Context, actor *domain.Actor, itemID int64) (bool, error) {
	if err := policy.RequireAdmin(actor); err != nil {
		return false, err
	}
	return s.items.Delete(ctx, itemID)
}

// GetWarehouseInventory resume o estoque avulso de um armazém.
func (s *Service) GetWarehouseInventory(ctx context.Context, actor *domain.Actor, warehouseID int64) (domain.WarehouseInventory, error) {
	if err := policy.RequireWarehouse(actor, warehouseID); err != nil {
		return domain.WarehouseInventory{}, err
	}
	warehouse, err := s.warehouses.GetWarehouseByID(ctx, warehouseID)
	if err != nil {
		return domain.WarehouseInventory{}, err
	}
	return s.summarize(ctx, warehouse)
}

// GetAllWarehouseInventory resume o estoque de todos os armazéns.
func (s *Service) GetAllWarehouseInventory(ctx context.Context, actor *domain.Actor) ([]domain.WarehouseInventory, error) {
	if err := policy.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	warehouses, err := s.warehouses.GetAllWarehouses(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.WarehouseInventory, 0, len(warehouses))
	for _, w := range warehouses {
		summary, err := s.summarize(ctx, w)
		if err != nil {
			return nil, err
		}
		result = append(result, summary)
	}
	return result, nil
}

func (s *Service) summarize(ctx context.Context, w domain.Warehouse) (domain.WarehouseInventory, error) {
	details, err := s.items.ListStandaloneByWarehouse(ctx, w.ID)
	if err != nil {
		return domain.WarehouseInventory{}, err
	}
	total := 0
	for _, d := range details {
		total += d.Quantity
	}
	return domain.WarehouseInventory{
		WarehouseID:        w.ID,
		WarehouseName:      w.Name,
		WarehouseLocation:  w.Location,
		TotalProductsCount: total,
		Items:              details,
	}, nil
}

// GetProductQuantity devolve a quantidade avulsa do produto no armazém (0 se não houver registro).
func (s *Service) GetProductQuantity(ctx context.Context, actor *domain.Actor, warehouseID, productID int64) (domain.ProductQuantity, error) {
	if err := policy.RequireWarehouse(actor, warehouseID); err != nil {
		return domain.ProductQuantity{}, err
	}
	quantity, err := s.items.StandaloneQuantity(ctx, warehouseID, productID)
	if err != nil {
		return domain.ProductQuantity{}, err
	}
	return domain.ProductQuantity{WarehouseID: warehouseID, ProductID: productID, Quantity: quantity}, nil
}
