// Package auth concentra os casos de uso de identidade: login, registro e
// gestão de usuários.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/credsim/bandeiras-api/internal/application/dto"
	"github.com/credsim/bandeiras-api/internal/domain"
	"github.com/credsim/bandeiras-api/internal/domain/entity"
	"github.com/credsim/bandeiras-api/internal/domain/repository"
	"github.com/credsim/bandeiras-api/pkg/jwt"
)

// UseCase casos de uso de autenticação e gestão de usuários.
type UseCase struct {
	users  repository.UserRepository
	tokens *jwt.Manager
}

// NewUseCase constrói o caso de uso de auth.
func NewUseCase(users repository.UserRepository, tokens *jwt.Manager) *UseCase {
	return &UseCase{users: users, tokens: tokens}
}

// Login verifica email/senha, marca o last_login e emite o JWT.
// Usuário inativo não loga (ErrForbidden).
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrForbidden
	}

	if err := uc.users.UpdateLastLogin(ctx, user.ID); err != nil {
		return nil, err
	}

	token, err := uc.tokens.Generate(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: dto.NewUserResponse(user)}, nil
}

// Register cria um usuário (operação de admin). Senha vai com bcrypt.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	existing, err := uc.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// Me devolve o perfil do usuário autenticado.
func (uc *UseCase) Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// UpdateProfile atualiza nome, email e/ou senha do próprio usuário.
func (uc *UseCase) UpdateProfile(ctx context.Context, userID uuid.UUID, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now()

	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// ListUsers devolve todos os usuários (operação de admin).
func (uc *UseCase) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.NewUserResponse(u))
	}
	return out, nil
}

// UpdateUser atualiza nome, email, papel e atividade de um usuário (admin).
// Admin não pode desativar a própria conta.
func (uc *UseCase) UpdateUser(ctx context.Context, actorID, userID uuid.UUID, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	if in.IsActive != nil && !*in.IsActive && actorID == userID {
		return nil, domain.ErrConflict
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	user.UpdatedAt = time.Now()

	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}
