package userrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"stockcount/internal/domain"
	apperror "stockcount/internal/errors"
	"stockcount/internal/pkg/database"
	"stockcount/internal/pkg/logger"
)

const selectColumns = `id, first_name, last_name, email, phone, username, password_hash, role, picture_url, created_at, updated_at`

// UserRepository persiste usuários e suas atribuições de armazém.
type UserRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewUserRepository cria uma nova instância do UserRepository, injetando o DB.
func NewUserRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *UserRepository {
	return &UserRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(s scanner) (domain.User, error) {
	var u domain.User
	var picture sql.NullString
	err := s.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone, &u.Username,
		&u.PasswordHash, &u.Role, &picture, &u.CreatedAt, &u.UpdatedAt)
	if picture.Valid {
		u.PictureURL = &picture.String
	}
	return u, err
}

func uniqueConflict(err error) error {
	if database.IsUniqueViolation(err) {
		return apperror.NewConflictError("Username ou email já está em uso.")
	}
	return nil
}

// Save insere um novo usuário. Username ou email duplicados resultam em ConflictError.
func (r *UserRepository) Save(ctx context.Context, user domain.User) (domain.User, error) {
	r.logger.Debug("Iniciando Save de usuário no repositório.", map[string]interface{}{"username": user.Username})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        INSERT INTO users (first_name, last_name, email, phone, username, password_hash, role, picture_url)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING ` + selectColumns

	saved, err := scanUser(r.DB.QueryRowContext(ctxTimeout, query,
		user.FirstName, user.LastName, user.Email, user.Phone, user.Username,
		user.PasswordHash, user.Role, user.PictureURL,
	))
	if err != nil {
		if conflict := uniqueConflict(err); conflict != nil {
			r.logger.Info("Tentativa de cadastro com username ou email duplicado.", map[string]interface{}{"username": user.Username})
			return domain.User{}, conflict
		}
		r.logger.Error("Falha ao inserir usuário no DB.", err)
		return domain.User{}, apperror.NewDBError("Falha ao criar usuário", err)
	}

	r.logger.Info("Usuário criado com sucesso.", map[string]interface{}{"id": saved.ID, "username": saved.Username, "role": saved.Role})
	return saved, nil
}

func (r *UserRepository) findOne(ctx context.Context, where string, arg interface{}, label string) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	user, err := scanUser(r.DB.QueryRowContext(ctxTimeout, `SELECT `+selectColumns+` FROM users WHERE `+where, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário com %s %v não encontrado.", label, arg))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar usuário no DB.", err)
		return domain.User{}, apperror.NewDBError("Falha ao buscar usuário", err)
	}
	return user, nil
}

// FindByID busca um usuário pelo ID.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (domain.User, error) {
	return r.findOne(ctx, "id = $1", id, "ID")
}

// FindByUsername busca um usuário pelo username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.findOne(ctx, "username = $1", username, "username")
}

// FindByEmail busca um usuário pelo email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.findOne(ctx, "email = $1", email, "email")
}

// List devolve uma página de usuários ordenada por ID.
func (r *UserRepository) List(ctx context.Context, filter domain.UserFilter) ([]domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout,
		`SELECT `+selectColumns+` FROM users ORDER BY id OFFSET $1 LIMIT $2`, filter.Skip, filter.Limit)
	if err != nil {
		r.logger.Error("Falha ao listar usuários.", err)
		return nil, apperror.NewDBError("Falha ao listar usuários", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, apperror.NewDBError("Falha ao mapear usuários do DB", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("Erro após iteração de usuários", err)
	}
	return users, nil
}

// Update atualiza os dados do usuário. PasswordHash vazio mantém a senha atual.
func (r *UserRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        UPDATE users
        SET first_name = $1, last_name = $2, email = $3, phone = $4, username = $5,
            password_hash = COALESCE(NULLIF($6, ''), password_hash),
            role = $7, picture_url = $8, updated_at = NOW()
        WHERE id = $9
        RETURNING ` + selectColumns

	updated, err := scanUser(r.DB.QueryRowContext(ctxTimeout, query,
		user.FirstName, user.LastName, user.Email, user.Phone, user.Username,
		user.PasswordHash, user.Role, user.PictureURL, user.ID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário com ID %d não encontrado para atualização.", user.ID))
	}
	if err != nil {
		if conflict := uniqueConflict(err); conflict != nil {
			return domain.User{}, conflict
		}
		r.logger.Error("Falha ao atualizar usuário no DB.", err)
		return domain.User{}, apperror.NewDBError("Falha ao atualizar usuário", err)
	}

	r.logger.Info("Usuário atualizado com sucesso.", map[string]interface{}{"id": updated.ID})
	return updated, nil
}

// Delete remove o usuário. Usuários que criaram contagens não podem ser removidos.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return apperror.NewConflictError(fmt.Sprintf("Usuário %d é criador de contagens.", id))
		}
		r.logger.Error("Falha ao deletar usuário do DB.", err)
		return apperror.NewDBError("Falha ao deletar usuário", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperror.NewDBError("Falha ao verificar linhas afetadas", err)
	}
	if rowsAffected == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("Usuário com ID %d não encontrado para exclusão.", id))
	}

	r.logger.Info("Usuário deletado com sucesso.", map[string]interface{}{"id": id})
	return nil
}

// ReplaceWarehouses substitui o conjunto de armazéns atribuídos ao usuário numa transação.
func (r *UserRepository) ReplaceWarehouses(ctx context.Context, userID int64, warehouseIDs []int64) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		r.logger.Error("Falha ao iniciar transação de atribuição de armazéns.", err)
		return apperror.NewDBError("Falha ao iniciar transação", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctxTimeout, `DELETE FROM user_warehouses WHERE user_id = $1`, userID); err != nil {
		r.logger.Error("Falha ao limpar armazéns do usuário.", err)
		return apperror.NewDBError("Falha ao atribuir armazéns", err)
	}

	if len(warehouseIDs) > 0 {
		_, err := tx.ExecContext(ctxTimeout, `
            INSERT INTO user_warehouses (user_id, warehouse_id)
            SELECT $1, unnest($2::bigint[])
            ON CONFLICT DO NOTHING`, userID, pq.Array(warehouseIDs))
		if err != nil {
			if database.IsForeignKeyViolation(err) {
				return apperror.NewNotFoundError("Um ou mais armazéns não existem.")
			}
			r.logger.Error("Falha ao inserir armazéns do usuário.", err)
			return apperror.NewDBError("Falha ao atribuir armazéns", err)
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Falha ao commitar atribuição de armazéns.", err)
		return apperror.NewDBError("Falha ao commitar transação", err)
	}

	r.logger.Info("Armazéns atribuídos ao usuário.", map[string]interface{}{"user_id": userID, "warehouse_ids": warehouseIDs})
	return nil
}

// AssignedWarehouseIDs devolve os IDs dos armazéns atribuídos ao usuário.
func (r *UserRepository) AssignedWarehouseIDs(ctx context.Context, userID int64) ([]int64, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var ids []int64
	err := r.DB.QueryRowContext(ctxTimeout, `
        SELECT COALESCE(array_agg(warehouse_id ORDER BY warehouse_id), '{}')
        FROM user_warehouses
        WHERE user_id = $1`, userID).Scan(pq.Array(&ids))
	if err != nil {
		r.logger.Error("Falha ao buscar armazéns do usuário.", err)
		return nil, apperror.NewDBError("Falha ao buscar armazéns do usuário", err)
	}
	return ids, nil
}

// LoadActor resolve o usuário e seus armazéns atribuídos num único round-trip.
func (r *UserRepository) LoadActor(ctx context.Context, userID int64) (*domain.Actor, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var (
		id       int64
		username string
		role     domain.UserRole
		ids      []int64
	)
	err := r.DB.QueryRowContext(ctxTimeout, `
        SELECT u.id, u.username, u.role,
               COALESCE(array_agg(uw.warehouse_id) FILTER (WHERE uw.warehouse_id IS NOT NULL), '{}')
        FROM users u
        LEFT JOIN user_warehouses uw ON uw.user_id = u.id
        WHERE u.id = $1
        GROUP BY u.id`, userID).Scan(&id, &username, &role, pq.Array(&ids))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFoundError(fmt.Sprintf("Usuário com ID %d não encontrado.", userID))
	}
	if err != nil {
		r.logger.Error("Falha ao carregar ator.", err)
		return nil, apperror.NewDBError("Falha ao carregar usuário autenticado", err)
	}

	return domain.NewActor(id, username, role, ids), nil
}

// CountByRole devolve quantos usuários possuem o papel informado.
func (r *UserRepository) CountByRole(ctx context.Context, role domain.UserRole) (int, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var total int
	if err := r.DB.QueryRowContext(ctxTimeout, `SELECT COUNT(*) FROM users WHERE role = $1`, role).Scan(&total); err != nil {
		r.logger.Error("Falha ao contar usuários por papel.", err)
		return 0, apperror.NewDBError("Falha ao contar usuários", err)
	}
	return total, nil
}
