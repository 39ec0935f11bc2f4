package productrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"stockcount/internal/domain"
	"stockcount/internal/errors"
	"stockcount/internal/pkg/cache"
	"stockcount/internal/pkg/database"
	"stockcount/internal/pkg/logger"
)

const (
	selectColumns   = `id, name, description, price, packaging_unit, units_per_package, created_at, updated_at`
	productCacheKey = "product:%d"
)

// ProductRepository persiste produtos no PostgreSQL e mantém um cache de leitura no Redis.
type ProductRepository struct {
	DB        *sql.DB
	Cache     cache.Client
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

// NewProductRepository cria e retorna uma nova instância do Repositório.
// Aqui injetamos as dependências de Infraestrutura (DB e Cache).
func NewProductRepository(db *sql.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, logger logger.Logger) *ProductRepository {
	return &ProductRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    logger,
	}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(s scanner) (domain.Product, error) {
	var p domain.Product
	err := s.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.PackagingUnit, &p.UnitsPerPackage, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// CreateProduct insere um novo produto.
func (r *ProductRepository) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	r.logger.Debug("Iniciando CreateProduct no repositório.", map[string]interface{}{"name": product.Name})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        INSERT INTO products (name, description, price, packaging_unit, units_per_package)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + selectColumns

	created, err := scanProduct(r.DB.QueryRowContext(ctxTimeout, query,
		product.Name, product.Description, product.Price, product.PackagingUnit, product.UnitsPerPackage,
	))
	if err != nil {
		r.logger.Error("Falha ao inserir produto no DB.", err)
		return domain.Product{}, errors.NewDBError("Falha ao criar produto", err)
	}

	r.logger.Info("Produto criado com sucesso.", map[string]interface{}{"id": created.ID, "name": created.Name})
	return created, nil
}

// GetProductByID busca um produto pelo ID, utilizando a estratégia Cache-Aside.
// Falhas do Redis não interrompem a leitura: o produto é buscado no DB.
func (r *ProductRepository) GetProductByID(ctx context.Context, id int64) (domain.Product, error) {
	key := fmt.Sprintf(productCacheKey, id)

	if cached, err := r.Cache.Get(ctx, key); err == nil {
		var product domain.Product
		if jsonErr := json.Unmarshal([]byte(cached), &product); jsonErr == nil {
			r.logger.Debug("Produto servido do cache.", map[string]interface{}{"id": id})
			return product, nil
		}
		r.logger.Warn("Entrada de cache de produto corrompida.", map[string]interface{}{"key": key})
	} else if !stderrors.Is(err, cache.ErrCacheMiss) {
		r.logger.Warn("Falha ao ler produto do cache.", map[string]interface{}{"key": key, "error": err.Error()})
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + selectColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.DB.QueryRowContext(ctxTimeout, query, id))
	if err == sql.ErrNoRows {
		r.logger.Info("Produto não encontrado.", map[string]interface{}{"id": id})
		return domain.Product{}, errors.NewNotFoundError(fmt.Sprintf("Produto com ID %d não encontrado.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar produto no DB.", err)
		return domain.Product{}, errors.NewDBError("Falha ao buscar produto", err)
	}

	if payload, err := json.Marshal(product); err == nil {
		if err := r.Cache.Set(ctx, key, payload, r.CacheTTL); err != nil {
			r.logger.Warn("Falha ao gravar produto no cache.", map[string]interface{}{"key": key, "error": err.Error()})
		}
	}

	return product, nil
}

// GetAllProducts lista os produtos ordenados por nome.
func (r *ProductRepository) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout, `SELECT `+selectColumns+` FROM products ORDER BY name, id`)
	if err != nil {
		r.logger.Error("Falha ao executar GetAllProducts query.", err)
		return nil, errors.NewDBError("Falha ao buscar produtos", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.logger.Error("Falha ao mapear produto.", err)
			return nil, errors.NewDBError("Falha ao mapear produtos do DB", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Erro após iteração de produtos", err)
	}

	r.logger.Debug("GetAllProducts concluído.", map[string]interface{}{"total": len(products)})
	return products, nil
}

// UpdateProduct atualiza o produto e invalida sua entrada de cache.
func (r *ProductRepository) UpdateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        UPDATE products
        SET name = $1, description = $2, price = $3, packaging_unit = $4, units_per_package = $5, updated_at = NOW()
        WHERE id = $6
        RETURNING ` + selectColumns

	updated, err := scanProduct(r.DB.QueryRowContext(ctxTimeout, query,
		product.Name, product.Description, product.Price, product.PackagingUnit, product.UnitsPerPackage, product.ID,
	))
	if err == sql.ErrNoRows {
		return domain.Product{}, errors.NewNotFoundError(fmt.Sprintf("Produto com ID %d não encontrado para atualização.", product.ID))
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar produto no DB.", err)
		return domain.Product{}, errors.NewDBError("Falha ao atualizar produto", err)
	}

	r.invalidate(ctx, product.ID)
	r.logger.Info("Produto atualizado com sucesso.", map[string]interface{}{"id": updated.ID})
	return updated, nil
}

// DeleteProduct remove o produto e invalida sua entrada de cache.
func (r *ProductRepository) DeleteProduct(ctx context.Context, id int64) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return errors.NewConflictError(fmt.Sprintf("Produto %d possui itens de inventário.", id))
		}
		r.logger.Error("Falha ao deletar produto do DB.", err)
		return errors.NewDBError("Falha ao deletar produto", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewDBError("Falha ao verificar linhas afetadas", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("Produto com ID %d não encontrado para exclusão.", id))
	}

	r.invalidate(ctx, id)
	r.logger.Info("Produto deletado com sucesso.", map[string]interface{}{"id": id})
	return nil
}

func (r *ProductRepository) invalidate(ctx context.Context, id int64) {
	key := fmt.Sprintf(productCacheKey, id)
	if err := r.Cache.Delete(ctx, key); err != nil {
		r.logger.Warn("Falha ao invalidar cache de produto.", map[string]interface{}{"key": key, "error": err.Error()})
	}
}
