package warehouseservice

import (
	"context"
	"strings"

	"stockcount/internal/domain"
	apperror "stockcount/internal/errors"
	"stockcount/internal/pkg/logger"
	"stockcount/internal/policy"
)

// WarehouseRepository define o contrato que o Serviço de Armazéns espera da camada de Persistência.
type WarehouseRepository interface {
	CreateWarehouse(ctx context.Context, warehouse domain.Warehouse) (domain.Warehouse, error)
	GetWarehouseByID(ctx context.Context, id int64) (domain.Warehouse, error)
	GetAllWarehouses(ctx context.Context) ([]domain.Warehouse, error)
	UpdateWarehouse(ctx context.Context, warehouse domain.Warehouse) (domain.Warehouse, error)
	DeleteWarehouse(ctx context.Context, id int64) error
}

// Service implementa as regras de negócio de armazéns.
type Service struct {
	repo   WarehouseRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Armazéns.
func NewService(repo WarehouseRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateWarehouse cria um novo armazém após validações de negócio. Apenas administradores.
func (s *Service) CreateWarehouse(ctx context.Context, actor *domain.Actor, input domain.WarehouseInput) (domain.Warehouse, error) {
	s.logger.Debug("Iniciando criação de armazém no serviço.", map[string]interface{}{"name": input.Name})

	if err := policy.RequireAdmin(actor); err != nil {
		return domain.Warehouse{}, err
	}

	warehouse, err := s.fromInput(input)
	if err != nil {
		s.logger.Warn("Falha na validação do armazém.", map[string]interface{}{"name": input.Name, "error": err.Error()})
		return domain.Warehouse{}, err
	}

	created, err := s.repo.CreateWarehouse(ctx, warehouse)
	if err != nil {
		return domain.Warehouse{}, err
	}

	s.logger.Info("Armazém criado com sucesso.", map[string]interface{}{"id": created.ID, "name": created.Name})
	return created, nil
}

// GetWarehouseByID busca um armazém pelo ID.
func (s *Service) GetWarehouseByID(ctx context.Context, id int64) (domain.Warehouse, error) {
	if id <= 0 {
		return domain.Warehouse{}, apperror.NewValidationError("O ID do armazém deve ser positivo.")
	}
	return s.repo.GetWarehouseByID(ctx, id)
}

// GetAllWarehouses lista todos os armazéns.
func (s *Service) GetAllWarehouses(ctx context.Context) ([]domain.Warehouse, error) {
	return s.repo.GetAllWarehouses(ctx)
}

// UpdateWarehouse atualiza os dados de um armazém. Apenas administradores.
func (s *Service) UpdateWarehouse(ctx context.Context, actor *domain.Actor, id int64, input domain.WarehouseInput) (domain.Warehouse, error) {
	if err := policy.RequireAdmin(actor); err != nil {
		return domain.Warehouse{}, err
	}

	warehouse, err := s.fromInput(input)
	if err != nil {
		return domain.Warehouse{}, err
	}
	warehouse.ID = id

	updated, err := s.repo.UpdateWarehouse(ctx, warehouse)
	if err != nil {
		return domain.Warehouse{}, err
	}

	s.logger.Info("Armazém atualizado.", map[string]interface{}{"id": id})
	return updated, nil
}

// DeleteWarehouse remove um armazém. Apenas administradores.
func (s *Service) DeleteWarehouse(ctx context.Context, actor *domain.Actor, id int64) error {
	if err := policy.RequireAdmin(actor); err != nil {
		return err
	}
	if err := s.repo.DeleteWarehouse(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Armazém removido.", map[string]interface{}{"id": id})
	return nil
}

func (s *Service) fromInput(input domain.WarehouseInput) (domain.Warehouse, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return domain.Warehouse{}, apperror.NewValidationError("O nome do armazém não pode ser vazio.")
	}
	if len(name) > 100 {
		return domain.Warehouse{}, apperror.NewValidationError("O nome do armazém não pode exceder 100 caracteres.")
	}
	if input.Capacity < 0 {
		return domain.Warehouse{}, apperror.NewValidationError("A capacidade não pode ser negativa.")
	}
	return domain.Warehouse{
		Name:     name,
		Location: strings.TrimSpace(input.Location),
		Capacity: input.Capacity,
	}, nil
}
