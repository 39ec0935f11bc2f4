package itemrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"stockcount/internal/domain"
	"stockcount/internal/errors"
	"stockcount/internal/pkg/database"
	"stockcount/internal/pkg/logger"
)

const itemColumns = `id, count_id, warehouse_id, product_id, packages_count, quantity, created_at, updated_at`

// ItemRepository persiste itens de inventário, tanto de contagens quanto estoque avulso.
type ItemRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewItemRepository cria e retorna uma nova instância do Repositório de Itens.
func NewItemRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *ItemRepository {
	return &ItemRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(s scanner) (domain.InventoryItem, error) {
	var (
		it      domain.InventoryItem
		countID sql.NullInt64
	)
	err := s.Scan(&it.ID, &countID, &it.WarehouseID, &it.ProductID, &it.PackagesCount, &it.Quantity, &it.CreatedAt, &it.UpdatedAt)
	if countID.Valid {
		id := countID.Int64
		it.CountID = &id
	}
	return it, err
}

// CreateInCount insere um item novo na contagem, no armazém da própria contagem.
// A inserção só acontece se a contagem ainda estiver em andamento no momento do INSERT,
// de modo que um fechamento concorrente não deixa passar itens.
func (r *ItemRepository) CreateInCount(ctx context.Context, countID, productID int64, packagesCount, quantity int) (domain.InventoryItem, error) {
	r.logger.Debug("Iniciando CreateInCount no repositório.", map[string]interface{}{
		"count_id":       countID,
		"product_id":     productID,
		"packages_count": packagesCount,
	})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        INSERT INTO inventory_items (count_id, warehouse_id, product_id, packages_count, quantity)
        SELECT c.id, c.warehouse_id, $2, $3, $4
        FROM inventory_counts c
        WHERE c.id = $1 AND c.status = $5
        RETURNING ` + itemColumns

	item, err := scanItem(r.DB.QueryRowContext(ctxTimeout, query,
		countID, productID, packagesCount, quantity, domain.CountInProgress,
	))
	if err == sql.ErrNoRows {
		r.logger.Warn("Contagem não está em andamento; item rejeitado.", map[string]interface{}{"count_id": countID})
		return domain.InventoryItem{}, errors.NewInvalidStateError("não é possível adicionar itens a uma contagem fechada.")
	}
	if err != nil {
		r.logger.Error("Falha ao inserir item de contagem no DB.", err)
		return domain.InventoryItem{}, errors.NewDBError("Falha ao adicionar item à contagem", err)
	}

	r.logger.Info("Item adicionado à contagem.", map[string]interface{}{"id": item.ID, "count_id": countID, "quantity": item.Quantity})
	return item, nil
}

// UpsertStandalone soma pacotes e unidades ao estoque avulso de (armazém, produto),
// criando a linha na primeira vez. É um único comando atômico apoiado no índice
// único parcial uq_inventory_items_standalone.
func (r *ItemRepository) UpsertStandalone(ctx context.Context, warehouseID, productID int64, packagesCount, quantity int) (domain.InventoryItem, error) {
	r.logger.Debug("Iniciando UpsertStandalone no repositório.", map[string]interface{}{
		"warehouse_id":   warehouseID,
		"product_id":     productID,
		"packages_count": packagesCount,
	})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        INSERT INTO inventory_items (count_id, warehouse_id, product_id, packages_count, quantity)
        VALUES (NULL, $1, $2, $3, $4)
        ON CONFLICT (warehouse_id, product_id) WHERE count_id IS NULL
        DO UPDATE SET
            quantity       = inventory_items.quantity + EXCLUDED.quantity,
            packages_count = inventory_items.packages_count + EXCLUDED.packages_count,
            updated_at     = NOW()
        RETURNING ` + itemColumns

	item, err := scanItem(r.DB.QueryRowContext(ctxTimeout, query, warehouseID, productID, packagesCount, quantity))
	if database.IsNumericOutOfRange(err) {
		r.logger.Warn("Estoque acumulado excederia o limite da coluna.", map[string]interface{}{
			"warehouse_id": warehouseID,
			"product_id":   productID,
		})
		return domain.InventoryItem{}, errors.NewValidationError(fmt.Sprintf("O estoque acumulado excederia %d unidades.", domain.MaxQuantity))
	}
	if err != nil {
		r.logger.Error("Falha no upsert de estoque avulso.", err)
		return domain.InventoryItem{}, errors.NewDBError("Falha ao registrar estoque", err)
	}

	r.logger.Info("Estoque avulso acumulado.", map[string]interface{}{"id": item.ID, "quantity": item.Quantity})
	return item, nil
}

// FindByID busca um item pelo ID.
func (r *ItemRepository) FindByID(ctx context.Context, id int64) (domain.InventoryItem, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	item, err := scanItem(r.DB.QueryRowContext(ctxTimeout, `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return domain.InventoryItem{}, errors.NewNotFoundError(fmt.Sprintf("Item de inventário com ID %d não encontrado.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar item no DB.", err)
		return domain.InventoryItem{}, errors.NewDBError("Falha ao buscar item de inventário", err)
	}
	return item, nil
}

// ListByCount devolve os itens da contagem na ordem de inserção.
func (r *ItemRepository) ListByCount(ctx context.Context, countID int64) ([]domain.InventoryItem, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout,
		`SELECT `+itemColumns+` FROM inventory_items WHERE count_id = $1 ORDER BY id`, countID)
	if err != nil {
		r.logger.Error("Falha ao listar itens da contagem.", err)
		return nil, errors.NewDBError("Falha ao listar itens da contagem", err)
	}
	defer rows.Close()

	items := []domain.InventoryItem{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, errors.NewDBError("Falha ao mapear itens do DB", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Erro após iteração de itens", err)
	}
	return items, nil
}

// UpdateQuantity sobrescreve apenas a quantidade do item. packages_count não é alterado.
func (r *ItemRepository) UpdateQuantity(ctx context.Context, id int64, quantity int) (domain.InventoryItem, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        UPDATE inventory_items
        SET quantity = $1, updated_at = NOW()
        WHERE id = $2
        RETURNING ` + itemColumns

	item, err := scanItem(r.DB.QueryRowContext(ctxTimeout, query, quantity, id))
	if err == sql.ErrNoRows {
		return domain.InventoryItem{}, errors.NewNotFoundError(fmt.Sprintf("Item de inventário com ID %d não encontrado.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar quantidade do item.", err)
		return domain.InventoryItem{}, errors.NewDBError("Falha ao atualizar item de inventário", err)
	}

	r.logger.Info("Quantidade do item atualizada.", map[string]interface{}{"id": id, "quantity": quantity})
	return item, nil
}

// Delete remove o item e informa se alguma linha foi removida.
func (r *ItemRepository) Delete(ctx context.Context, id int64) (bool, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao deletar item do DB.", err)
		return false, errors.NewDBError("Falha ao deletar item de inventário", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, errors.NewDBError("Falha ao verificar linhas afetadas", err)
	}

	r.logger.Info("DeleteItem concluído.", map[string]interface{}{"id": id, "deleted": rowsAffected > 0})
	return rowsAffected > 0, nil
}

// ListStandaloneByWarehouse devolve o estoque avulso do armazém com nome e preço dos produtos.
func (r *ItemRepository) ListStandaloneByWarehouse(ctx context.Context, warehouseID int64) ([]domain.InventoryDetail, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout, `
        SELECT i.id, i.product_id, p.name, p.price, i.quantity
        FROM inventory_items i
        JOIN products p ON p.id = i.product_id
        WHERE i.warehouse_id = $1 AND i.count_id IS NULL
        ORDER BY p.name, i.id`, warehouseID)
	if err != nil {
		r.logger.Error("Falha ao listar estoque do armazém.", err)
		return nil, errors.NewDBError("Falha ao listar estoque do armazém", err)
	}
	defer rows.Close()

	details := []domain.InventoryDetail{}
	for rows.Next() {
		var d domain.InventoryDetail
		if err := rows.Scan(&d.ID, &d.ProductID, &d.ProductName, &d.ProductPrice, &d.Quantity); err != nil {
			return nil, errors.NewDBError("Falha ao mapear estoque do DB", err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Erro após iteração de estoque", err)
	}
	return details, nil
}

// StandaloneQuantity devolve a quantidade avulsa do produto no armazém, ou 0 quando não há registro.
func (r *ItemRepository) StandaloneQuantity(ctx context.Context, warehouseID, productID int64) (int, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var quantity int
	err := r.DB.QueryRowContext(ctxTimeout, `
        SELECT COALESCE(SUM(quantity), 0)
        FROM inventory_items
        WHERE warehouse_id = $1 AND product_id = $2 AND count_id IS NULL`, warehouseID, productID).Scan(&quantity)
	if err != nil {
		r.logger.Error("Falha ao consultar quantidade avulsa.", err)
		return 0, errors.NewDBError("Falha ao consultar quantidade", err)
	}
	return quantity, nil
}
