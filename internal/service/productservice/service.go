package productservice

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"stockcount/internal/domain"
	apperror "stockcount/internal/errors"
	"stockcount/internal/pkg/logger"
	"stockcount/internal/policy"
)

// ProductRepository define o contrato que este Serviço espera da camada de Persistência (DB, Cache).
type ProductRepository interface {
	CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	GetProductByID(ctx context.Context, id int64) (domain.Product, error)
	GetAllProducts(ctx context.Context) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

// Service é a estrutura que implementa as regras de negócio do catálogo.
type Service struct {
	repo   ProductRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Produto.
func NewService(repo ProductRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateProduct cadastra um produto. Apenas administradores.
func (s *Service) CreateProduct(ctx context.Context, actor *domain.Actor, input domain.ProductInput) (domain.Product, error) {
	if err := policy.RequireAdmin(actor); err != nil {
		return domain.Product{}, err
	}

	product, err := fromInput(input)
	if err != nil {
		s.logger.Warn("Produto rejeitado na validação.", map[string]interface{}{"name": input.Name, "error": err.Error()})
		return domain.Product{}, err
	}

	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return domain.Product{}, err
	}

	s.logger.Info("Produto criado.", map[string]interface{}{"id": created.ID, "units_per_package": created.UnitsPerPackage})
	return created, nil
}

// GetProductByID busca um produto pelo ID.
func (s *Service) GetProductByID(ctx context.Context, id int64) (domain.Product, error) {
	if id <= 0 {
		return domain.Product{}, apperror.NewValidationError("O ID do produto deve ser positivo.")
	}
	return s.repo.GetProductByID(ctx, id)
}

// GetAllProducts lista o catálogo.
func (s *Service) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.GetAllProducts(ctx)
}

// UpdateProduct atualiza um produto. Apenas administradores.
// Itens já registrados mantêm a quantidade calculada com o fator antigo.
func (s *Service) UpdateProduct(ctx context.Context, actor *domain.Actor, id int64, input domain.ProductInput) (domain.Product, error) {
	if err := policy.RequireAdmin(actor); err != nil {
		return domain.Product{}, err
	}

	product, err := fromInput(input)
	if err != nil {
		return domain.Product{}, err
	}
	product.ID = id

	updated, err := s.repo.UpdateProduct(ctx, product)
	if err != nil {
		return domain.Product{}, err
	}

	s.logger.Info("Produto atualizado.", map[string]interface{}{"id": id})
	return updated, nil
}

// DeleteProduct remove um produto. Apenas administradores.
func (s *Service) DeleteProduct(ctx context.Context, actor *domain.Actor, id int64) error {
	if err := policy.RequireAdmin(actor); err != nil {
		return err
	}
	return s.repo.DeleteProduct(ctx, id)
}

// fromInput aplica os padrões do catálogo: embalagem "Unidad" e 1 unidade por pacote.
func fromInput(input domain.ProductInput) (domain.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return domain.Product{}, apperror.NewValidationError("O nome do produto é obrigatório.")
	}
	if input.Price.LessThan(decimal.Zero) {
		return domain.Product{}, apperror.NewValidationError("O preço do produto não pode ser negativo.")
	}
	if input.UnitsPerPackage < 0 {
		return domain.Product{}, apperror.NewValidationError("units_per_package deve ser maior ou igual a 1.")
	}

	if input.UnitsPerPackage > domain.MaxQuantity {
		return domain.Product{}, apperror.NewValidationError(fmt.Sprintf("units_per_package não pode exceder %d.", domain.MaxQuantity))
	}
	units := input.UnitsPerPackage
	if units == 0 {
		units = 1
	}
	packaging := strings.TrimSpace(input.PackagingUnit)
	if packaging == "" {
		packaging = domain.DefaultPackagingUnit
	}

	return domain.Product{
		Name:            name,
		Description:     strings.TrimSpace(input.Description),
		Price:           input.Price,
		PackagingUnit:   packaging,
		UnitsPerPackage: units,
	}, nil
}
