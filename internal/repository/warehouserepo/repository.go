package warehouserepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"stockcount/internal/domain"
	"stockcount/internal/errors"
	"stockcount/internal/pkg/database"
	"stockcount/internal/pkg/logger"
)

const selectColumns = `id, name, location, capacity, created_at, updated_at`

// WarehouseRepository implementa as operações de persistência de armazéns.
type WarehouseRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewWarehouseRepository cria e retorna uma nova instância do Repositório de Armazéns.
func NewWarehouseRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *WarehouseRepository {
	return &WarehouseRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanWarehouse(s scanner) (domain.Warehouse, error) {
	var w domain.Warehouse
	err := s.Scan(&w.ID, &w.Name, &w.Location, &w.Capacity, &w.CreatedAt, &w.UpdatedAt)
	return w, err
}

// CreateWarehouse insere um novo armazém no banco de dados.
func (r *WarehouseRepository) CreateWarehouse(ctx context.Context, warehouse domain.Warehouse) (domain.Warehouse, error) {
	r.logger.Debug("Iniciando CreateWarehouse no repositório.", map[string]interface{}{"name": warehouse.Name})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        INSERT INTO warehouses (name, location, capacity)
        VALUES ($1, $2, $3)
        RETURNING ` + selectColumns

	created, err := scanWarehouse(r.DB.QueryRowContext(ctxTimeout, query,
		warehouse.Name, warehouse.Location, warehouse.Capacity,
	))
	if err != nil {
		r.logger.Error("Falha ao inserir armazém no DB.", err)
		return domain.Warehouse{}, errors.NewDBError("Falha ao criar armazém", err)
	}

	r.logger.Info("Armazém criado com sucesso.", map[string]interface{}{"id": created.ID, "name": created.Name})
	return created, nil
}

// GetWarehouseByID busca um armazém pelo ID.
func (r *WarehouseRepository) GetWarehouseByID(ctx context.Context, id int64) (domain.Warehouse, error) {
	r.logger.Debug("Iniciando GetWarehouseByID no repositório.", map[string]interface{}{"id": id})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + selectColumns + ` FROM warehouses WHERE id = $1`

	warehouse, err := scanWarehouse(r.DB.QueryRowContext(ctxTimeout, query, id))
	if err == sql.ErrNoRows {
		r.logger.Info("Armazém não encontrado.", map[string]interface{}{"id": id})
		return domain.Warehouse{}, errors.NewNotFoundError(fmt.Sprintf("Armazém com ID %d não encontrado.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar armazém no DB.", err)
		return domain.Warehouse{}, errors.NewDBError("Falha ao buscar armazém", err)
	}

	return warehouse, nil
}

// WarehouseExists informa se o armazém existe.
func (r *WarehouseRepository) WarehouseExists(ctx context.Context, id int64) (bool, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var exists bool
	err := r.DB.QueryRowContext(ctxTimeout, `SELECT EXISTS (SELECT 1 FROM warehouses WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		r.logger.Error("Falha ao verificar existência do armazém.", err)
		return false, errors.NewDBError("Falha ao verificar armazém", err)
	}
	return exists, nil
}

// GetAllWarehouses busca todos os armazéns ordenados por nome.
func (r *WarehouseRepository) GetAllWarehouses(ctx context.Context) ([]domain.Warehouse, error) {
	r.logger.Debug("Iniciando GetAllWarehouses no repositório.", nil)

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + selectColumns + ` FROM warehouses ORDER BY name, id`

	rows, err := r.DB.QueryContext(ctxTimeout, query)
	if err != nil {
		r.logger.Error("Falha ao executar GetAllWarehouses query.", err)
		return nil, errors.NewDBError("Falha ao buscar todos os armazéns", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// GetWarehousesByIDs busca os armazéns cujos IDs estão na lista.
func (r *WarehouseRepository) GetWarehousesByIDs(ctx context.Context, ids []int64) ([]domain.Warehouse, error) {
	if len(ids) == 0 {
		return []domain.Warehouse{}, nil
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + selectColumns + ` FROM warehouses WHERE id = ANY($1) ORDER BY id`

	rows, err := r.DB.QueryContext(ctxTimeout, query, pq.Array(ids))
	if err != nil {
		r.logger.Error("Falha ao executar GetWarehousesByIDs query.", err)
		return nil, errors.NewDBError("Falha ao buscar armazéns", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

func (r *WarehouseRepository) collect(rows *sql.Rows) ([]domain.Warehouse, error) {
	warehouses := []domain.Warehouse{}
	for rows.Next() {
		warehouse, err := scanWarehouse(rows)
		if err != nil {
			r.logger.Error("Falha ao mapear armazém.", err)
			return nil, errors.NewDBError("Falha ao mapear armazéns do DB", err)
		}
		warehouses = append(warehouses, warehouse)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Erro após iteração das linhas de armazéns.", err)
		return nil, errors.NewDBError("Erro após iteração de armazéns", err)
	}

	r.logger.Debug("Armazéns carregados.", map[string]interface{}{"total": len(warehouses)})
	return warehouses, nil
}

// UpdateWarehouse atualiza um armazém existente.
func (r *WarehouseRepository) UpdateWarehouse(ctx context.Context, warehouse domain.Warehouse) (domain.Warehouse, error) {
	r.logger.Debug("Iniciando UpdateWarehouse no repositório.", map[string]interface{}{"id": warehouse.ID})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        UPDATE warehouses
        SET name = $1, location = $2, capacity = $3, updated_at = NOW()
        WHERE id = $4
        RETURNING ` + selectColumns

	updated, err := scanWarehouse(r.DB.QueryRowContext(ctxTimeout, query,
		warehouse.Name, warehouse.Location, warehouse.Capacity, warehouse.ID,
	))
	if err == sql.ErrNoRows {
		r.logger.Info("Armazém não encontrado para atualização.", map[string]interface{}{"id": warehouse.ID})
		return domain.Warehouse{}, errors.NewNotFoundError(fmt.Sprintf("Armazém com ID %d não encontrado para atualização.", warehouse.ID))
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar armazém no DB.", err)
		return domain.Warehouse{}, errors.NewDBError("Falha ao atualizar armazém", err)
	}

	r.logger.Info("Armazém atualizado com sucesso.", map[string]interface{}{"id": updated.ID, "name": updated.Name})
	return updated, nil
}

// DeleteWarehouse remove um armazém pelo ID.
// Armazéns referenciados por contagens ou itens não podem ser removidos.
func (r *WarehouseRepository) DeleteWarehouse(ctx context.Context, id int64) error {
	r.logger.Debug("Iniciando DeleteWarehouse no repositório.", map[string]interface{}{"id": id})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM warehouses WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return errors.NewConflictError(fmt.Sprintf("Armazém %d possui contagens ou itens de inventário.", id))
		}
		r.logger.Error("Falha ao deletar armazém do DB.", err)
		return errors.NewDBError("Falha ao deletar armazém", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.logger.Error("Falha ao verificar linhas afetadas após DeleteWarehouse.", err)
		return errors.NewDBError("Falha ao verificar linhas afetadas", err)
	}

	if rowsAffected == 0 {
		r.logger.Info("Armazém não encontrado para exclusão.", map[string]interface{}{"id": id})
		return errors.NewNotFoundError(fmt.Sprintf("Armazém com ID %d não encontrado para exclusão.", id))
	}

	r.logger.Info("Armazém deletado com sucesso.", map[string]interface{}{"id": id})
	return nil
}
