package userservice

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"stockcount/internal/domain"
	apperror "stockcount/internal/errors"
	"stockcount/internal/pkg/logger"
	"stockcount/internal/policy"
)

const (
	tokenType    = "bearer"
	defaultLimit = 100
)

// UserRepository define o contrato de persistência de usuários e seus armazéns.
type UserRepository interface {
	Save(ctx context.Context, user domain.User) (domain.User, error)
	FindByID(ctx context.Context, id int64) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	List(ctx context.Context, filter domain.UserFilter) ([]domain.User, error)
	Update(ctx context.Context, user domain.User) (domain.User, error)
	Delete(ctx context.Context, id int64) error
	ReplaceWarehouses(ctx context.Context, userID int64, warehouseIDs []int64) error
	AssignedWarehouseIDs(ctx context.Context, userID int64) ([]int64, error)
	CountByRole(ctx context.Context, role domain.UserRole) (int, error)
}

// WarehouseRepository resolve os IDs de armazéns atribuídos.
type WarehouseRepository interface {
	GetWarehousesByIDs(ctx context.Context, ids []int64) ([]domain.Warehouse, error)
}

// TokenGenerator é o contrato da camada de token (internal/pkg/token).
type TokenGenerator interface {
	GenerateToken(userID int64, username, role string) (string, error)
}

// UserService define o serviço de lógica de negócio para a entidade User.
type UserService struct {
	users      UserRepository
	warehouses WarehouseRepository
	tokens     TokenGenerator
	logger     logger.Logger
	hashCost   int
}

// NewService cria uma nova instância do UserService.
func NewService(users UserRepository, warehouses WarehouseRepository, tokens TokenGenerator, logger logger.Logger) *UserService {
	return &UserService{
		users:      users,
		warehouses: warehouses,
		tokens:     tokens,
		logger:     logger,
		hashCost:   bcrypt.DefaultCost,
	}
}

// Register cria uma conta com papel user e devolve o token de acesso.
func (s *UserService) Register(ctx context.Context, registration domain.UserRegistration) (domain.TokenResponse, error) {
	registration.Role = domain.RoleUser
	user, err := s.create(ctx, registration)
	if err != nil {
		return domain.TokenResponse{}, err
	}
	return s.issue(user)
}

// RegisterAdmin cria uma conta admin. Permitido a administradores ou, enquanto
// não existir nenhum admin, a qualquer requisição (bootstrap).
func (s *UserService) RegisterAdmin(ctx context.Context, actor *domain.Actor, registration domain.UserRegistration) (domain.TokenResponse, error) {
	if !actor.IsAdmin() {
		admins, err := s.users.CountByRole(ctx, domain.RoleAdmin)
		if err != nil {
			return domain.TokenResponse{}, err
		}
		if admins > 0 {
			if actor == nil {
				return domain.TokenResponse{}, apperror.NewUnauthorizedError("É necessário autenticar como administrador.")
			}
			return domain.TokenResponse{}, apperror.NewForbiddenError("Apenas administradores podem registrar administradores.")
		}
		s.logger.Warn("Registrando o primeiro administrador do sistema.", map[string]interface{}{"username": registration.Username})
	}

	registration.Role = domain.RoleAdmin
	user, err := s.create(ctx, registration)
	if err != nil {
		return domain.TokenResponse{}, err
	}
	return s.issue(user)
}

// Login autentica um usuário, verifica a senha e gera um JWT.
func (s *UserService) Login(ctx context.Context, username, password string) (domain.TokenResponse, error) {
	if username == "" || password == "" {
		return domain.TokenResponse{}, apperror.NewUnauthorizedError("Usuário e senha são obrigatórios.")
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		// NotFound vira 401 para não revelar quais usuários existem.
		if apperror.IsNotFound(err) {
			return domain.TokenResponse{}, apperror.NewUnauthorizedError("Credenciais inválidas.")
		}
		return domain.TokenResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Debug("Senha incorreta no login.", map[string]interface{}{"username": username})
		return domain.TokenResponse{}, apperror.NewUnauthorizedError("Credenciais inválidas.")
	}

	return s.issue(user)
}

// CreateUser cria um usuário com o papel informado (padrão user). Apenas administradores.
func (s *UserService) CreateUser(ctx context.Context, actor *domain.Actor, registration domain.UserRegistration) (domain.User, error) {
	if err := policy.RequireAdmin(actor); err != nil {
		return domain.User{}, err
	}
	if registration.Role == "" {
		registration.Role = domain.RoleUser
	}
	return s.create(ctx, registration)
}

// ListUsers lista usuários com paginação skip/limit. Apenas administradores.
func (s *UserService) ListUsers(ctx context.Context, actor *domain.Actor, filter domain.UserFilter) ([]domain.User, error) {
	if err := policy.RequireAdmin(actor); err != nil {
		return nil, err
	}
	if filter.Skip < 0 || filter.Limit < 0 {
		return nil, apperror.NewValidationError("skip e limit não podem ser negativos.")
	}
	if filter.Limit == 0 {
		filter.Limit = defaultLimit
	}
	return s.users.List(ctx, filter)
}

// GetUser busca um usuário pelo ID. Apenas administradores.
func (s *UserService) GetUser(ctx context.Context, actor *domain.Actor, id int64) (domain.User, error) {
	if err := policy.RequireAdmin(actor); err != nil {
		return domain.User{}, err
	}
	return s.users.FindByID(ctx, id)
}

// UpdateUser substitui os dados do usuário. Senha vazia mantém a atual.
func (s *UserService) UpdateUser(ctx context.Context, actor *domain.Actor, id int64, registration domain.UserRegistration) (domain.User, error) {
	if err := policy.RequireAdmin(actor); err != nil {
		return domain.User{}, err
	}

	current, err := s.users.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	user := fromRegistration(registration)
	user.ID = id
	if user.Role == "" {
		user.Role = current.Role
	}
	if !user.Role.Valid() {
		return domain.User{}, apperror.NewValidationError(fmt.Sprintf("Papel '%s' inválido.", user.Role))
	}
	if registration.Password != "" {
		hash, err := s.hash(registration.Password)
		if err != nil {
			return domain.User{}, err
		}
		user.PasswordHash = hash
	}

	return s.users.Update(ctx, user)
}

// DeleteUser remove um usuário. Apenas administradores.
func (s *UserService) DeleteUser(ctx context.Context, actor *domain.Actor, id int64) error {
	if err := policy.RequireAdmin(actor); err != nil {
		return err
	}
	if actor.ID == id {
		return apperror.NewValidationError("Um administrador não pode remover a própria conta.")
	}
	return s.users.Delete(ctx, id)
}

// AssignWarehouses substitui os armazéns atribuídos ao usuário. Todos os IDs devem existir.
func (s *UserService) AssignWarehouses(ctx context.Context, actor *domain.Actor, userID int64, warehouseIDs []int64) (domain.UserWarehouses, error) {
	if err := policy.RequireAdmin(actor); err != nil {
		return domain.UserWarehouses{}, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return domain.UserWarehouses{}, err
	}

	ids := dedupe(warehouseIDs)
	warehouses, err := s.warehouses.GetWarehousesByIDs(ctx, ids)
	if err != nil {
		return domain.UserWarehouses{}, err
	}
	if len(warehouses) != len(ids) {
		return domain.UserWarehouses{}, apperror.NewNotFoundError("Um ou mais armazéns informados não existem.")
	}

	if err := s.users.ReplaceWarehouses(ctx, userID, ids); err != nil {
		return domain.UserWarehouses{}, err
	}

	s.logger.Info("Armazéns atribuídos ao usuário.", map[string]interface{}{"user_id": userID, "warehouses": ids})
	return domain.UserWarehouses{UserID: user.ID, Username: user.Username, Role: user.Role, AssignedWarehouses: warehouses}, nil
}

// GetUserWarehouses lista os armazéns atribuídos a um usuário. Apenas administradores.
func (s *UserService) GetUserWarehouses(ctx context.Context, actor *domain.Actor, userID int64) (domain.UserWarehouses, error) {
	if err := policy.RequireAdmin(actor); err != nil {
		return domain.UserWarehouses{}, err
	}
	return s.userWarehouses(ctx, userID)
}

// Me devolve o usuário autenticado.
func (s *UserService) Me(ctx context.Context, actor *domain.Actor) (domain.User, error) {
	if err := policy.RequireAuthenticated(actor); err != nil {
		return domain.User{}, err
	}
	return s.users.FindByID(ctx, actor.ID)
}

// MyWarehouses devolve os armazéns atribuídos ao usuário autenticado.
func (s *UserService) MyWarehouses(ctx context.Context, actor *domain.Actor) (domain.UserWarehouses, error) {
	if err := policy.RequireAuthenticated(actor); err != nil {
		return domain.UserWarehouses{}, err
	}
	return s.userWarehouses(ctx, actor.ID)
}

func (s *UserService) userWarehouses(ctx context.Context, userID int64) (domain.UserWarehouses, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return domain.UserWarehouses{}, err
	}
	ids, err := s.users.AssignedWarehouseIDs(ctx, userID)
	if err != nil {
		return domain.UserWarehouses{}, err
	}
	warehouses, err := s.warehouses.GetWarehousesByIDs(ctx, ids)
	if err != nil {
		return domain.UserWarehouses{}, err
	}
	return domain.UserWarehouses{UserID: user.ID, Username: user.Username, Role: user.Role, AssignedWarehouses: warehouses}, nil
}

func (s *UserService) create(ctx context.Context, registration domain.UserRegistration) (domain.User, error) {
	if registration.Password == "" {
		return domain.User{}, apperror.NewValidationError("A senha é obrigatória.")
	}
	if !registration.Role.Valid() {
		return domain.User{}, apperror.NewValidationError(fmt.Sprintf("Papel '%s' inválido.", registration.Role))
	}

	hash, err := s.hash(registration.Password)
	if err != nil {
		return domain.User{}, err
	}

	user := fromRegistration(registration)
	user.PasswordHash = hash

	saved, err := s.users.Save(ctx, user)
	if err != nil {
		return domain.User{}, err
	}

	s.logger.Info("Usuário registrado.", map[string]interface{}{"id": saved.ID, "role": saved.Role})
	return saved, nil
}

func (s *UserService) hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", apperror.NewInternalError("Falha ao gerar hash da senha.", err)
	}
	return string(hashed), nil
}

func (s *UserService) issue(user domain.User) (domain.TokenResponse, error) {
	accessToken, err := s.tokens.GenerateToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		s.logger.Error("Falha ao gerar token.", err)
		return domain.TokenResponse{}, apperror.NewInternalError("Falha ao gerar token de autenticação.", err)
	}
	return domain.TokenResponse{AccessToken: accessToken, TokenType: tokenType, User: user}, nil
}

func fromRegistration(r domain.UserRegistration) domain.User {
	return domain.User{
		FirstName:  strings.TrimSpace(r.FirstName),
		LastName:   strings.TrimSpace(r.LastName),
		Email:      strings.ToLower(strings.TrimSpace(r.Email)),
		Phone:      strings.TrimSpace(r.Phone),
		Username:   strings.TrimSpace(r.Username),
		Role:       r.Role,
		PictureURL: r.PictureURL,
	}
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
