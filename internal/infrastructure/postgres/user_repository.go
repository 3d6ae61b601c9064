package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/credsim/bandeiras-api/internal/domain"
	"github.com/credsim/bandeiras-api/internal/domain/entity"
	"github.com/credsim/bandeiras-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, name, email, password_hash, role, is_active, last_login, created_at, updated_at`

// UserRepo implementação do UserRepository sobre PostgreSQL (pool ou tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository constrói o adaptador de persistência de usuários.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste um novo usuário.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Role, user.IsActive,
		user.LastLogin, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID busca um usuário por ID.
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get user by id")
}

// GetByEmail busca um usuário por email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, email), "get user by email")
}

// List devolve todos os usuários, mais recentes primeiro.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(
			&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive,
			&u.LastLogin, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// Update atualiza os dados mutáveis do usuário.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET name = $2, email = $3, password_hash = $4, role = $5, is_active = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Role, user.IsActive, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdateLastLogin marca o login bem-sucedido.
func (r *UserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	_, err := r.q.Exec(ctx, `UPDATE users SET last_login = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("update last_login: %w", err)
	}
	return nil
}

func (r *UserRepo) scanOne(row pgx.Row, op string) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive,
		&u.LastLogin, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}
