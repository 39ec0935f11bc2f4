package countrepo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"stockcount/internal/domain"
	"stockcount/internal/errors"
	"stockcount/internal/pkg/logger"
)

// Colunas da contagem enriquecidas com nome do armazém, username do criador e total de itens.
const enrichedColumns = `
        c.id, c.name, c.cut_off_date, c.warehouse_id, w.name, c.status,
        c.created_by, u.username, c.created_at, c.closed_at,
        (SELECT COUNT(*) FROM inventory_items i WHERE i.count_id = c.id)`

const enrichedFrom = `
        FROM inventory_counts c
        JOIN warehouses w ON w.id = c.warehouse_id
        JOIN users u ON u.id = c.created_by`

// CountRepository persiste as contagens de inventário.
type CountRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewCountRepository cria e retorna uma nova instância do Repositório de Contagens.
func NewCountRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *CountRepository {
	return &CountRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanCount(s scanner) (domain.InventoryCount, error) {
	var (
		c        domain.InventoryCount
		closedAt sql.NullTime
	)
	err := s.Scan(&c.ID, &c.Name, &c.CutOffDate, &c.WarehouseID, &c.WarehouseName, &c.Status,
		&c.CreatedBy, &c.CreatorUsername, &c.CreatedAt, &closedAt, &c.ItemsCount)
	if closedAt.Valid {
		t := closedAt.Time
		c.ClosedAt = &t
	}
	return c, err
}

// Create insere uma contagem em andamento e devolve a linha já enriquecida.
// O SELECT lê a própria CTE: a tabela base ainda não enxerga a linha inserida no mesmo comando.
func (r *CountRepository) Create(ctx context.Context, count domain.InventoryCount) (domain.InventoryCount, error) {
	r.logger.Debug("Iniciando Create de contagem no repositório.", map[string]interface{}{
		"name":         count.Name,
		"warehouse_id": count.WarehouseID,
	})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        WITH c AS (
            INSERT INTO inventory_counts (name, cut_off_date, warehouse_id, status, created_by, created_at)
            VALUES ($1, $2, $3, $4, $5, $6)
            RETURNING id, name, cut_off_date, warehouse_id, status, created_by, created_at, closed_at
        )
        SELECT c.id, c.name, c.cut_off_date, c.warehouse_id, w.name, c.status,
               c.created_by, u.username, c.created_at, c.closed_at, 0
        FROM c
        JOIN warehouses w ON w.id = c.warehouse_id
        JOIN users u ON u.id = c.created_by`

	created, err := scanCount(r.DB.QueryRowContext(ctxTimeout, query,
		count.Name, count.CutOffDate, count.WarehouseID, domain.CountInProgress, count.CreatedBy, count.CreatedAt,
	))
	if err != nil {
		r.logger.Error("Falha ao inserir contagem no DB.", err)
		return domain.InventoryCount{}, errors.NewDBError("Falha ao criar contagem", err)
	}

	r.logger.Info("Contagem criada com sucesso.", map[string]interface{}{"id": created.ID, "warehouse_id": created.WarehouseID})
	return created, nil
}

// FindByID busca uma contagem enriquecida pelo ID.
func (r *CountRepository) FindByID(ctx context.Context, id int64) (domain.InventoryCount, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + enrichedColumns + enrichedFrom + ` WHERE c.id = $1`

	count, err := scanCount(r.DB.QueryRowContext(ctxTimeout, query, id))
	if err == sql.ErrNoRows {
		r.logger.Info("Contagem não encontrada.", map[string]interface{}{"id": id})
		return domain.InventoryCount{}, errors.NewNotFoundError(fmt.Sprintf("Contagem com ID %d não encontrada.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar contagem no DB.", err)
		return domain.InventoryCount{}, errors.NewDBError("Falha ao buscar contagem", err)
	}
	return count, nil
}

// List devolve as contagens que satisfazem todos os filtros informados, mais recentes primeiro.
func (r *CountRepository) List(ctx context.Context, filter domain.CountFilter) ([]domain.InventoryCount, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var (
		conds []string
		args  []interface{}
	)
	if filter.WarehouseID != nil {
		args = append(args, *filter.WarehouseID)
		conds = append(conds, fmt.Sprintf("c.warehouse_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conds = append(conds, fmt.Sprintf("c.status = $%d", len(args)))
	}

	query := `SELECT ` + enrichedColumns + enrichedFrom
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY c.created_at DESC, c.id DESC`

	rows, err := r.DB.QueryContext(ctxTimeout, query, args...)
	if err != nil {
		r.logger.Error("Falha ao listar contagens.", err)
		return nil, errors.NewDBError("Falha ao listar contagens", err)
	}
	defer rows.Close()

	counts := []domain.InventoryCount{}
	for rows.Next() {
		c, err := scanCount(rows)
		if err != nil {
			r.logger.Error("Falha ao mapear contagem.", err)
			return nil, errors.NewDBError("Falha ao mapear contagens do DB", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Erro após iteração de contagens", err)
	}

	r.logger.Debug("Contagens listadas.", map[string]interface{}{"total": len(counts)})
	return counts, nil
}

// Close fecha a contagem somente se ela ainda estiver em andamento.
// Dois fechamentos concorrentes não podem ambos ter sucesso: o segundo recebe InvalidStateError.
func (r *CountRepository) Close(ctx context.Context, id int64, closedAt time.Time) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `
        UPDATE inventory_counts
        SET status = $1, closed_at = $2
        WHERE id = $3 AND status = $4`,
		domain.CountClosed, closedAt, id, domain.CountInProgress,
	)
	if err != nil {
		r.logger.Error("Falha ao fechar contagem no DB.", err)
		return errors.NewDBError("Falha ao fechar contagem", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewDBError("Falha ao verificar linhas afetadas", err)
	}
	if rowsAffected == 0 {
		r.logger.Warn("Contagem não estava em andamento ao fechar.", map[string]interface{}{"id": id})
		return errors.NewInvalidStateError("a contagem já está fechada.")
	}

	r.logger.Info("Contagem fechada.", map[string]interface{}{"id": id})
	return nil
}
