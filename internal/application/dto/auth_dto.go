package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/credsim/bandeiras-api/internal/domain/entity"
)

// LoginRequest credenciais de login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate devolve as mensagens de validação (vazio = ok).
func (r *LoginRequest) Validate() []string {
	r.Email = strings.ToLower(Sanitize(r.Email))

	var errs []string
	if r.Email == "" {
		errs = append(errs, "email é obrigatório")
	} else if !ValidEmail(r.Email) {
		errs = append(errs, "email inválido")
	}
	if r.Password == "" {
		errs = append(errs, "senha é obrigatória")
	}
	return errs
}

// RegisterRequest criação de usuário (somente admin).
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate devolve as mensagens de validação (vazio = ok).
func (r *RegisterRequest) Validate() []string {
	r.Name = Sanitize(r.Name)
	r.Email = strings.ToLower(Sanitize(r.Email))
	r.Role = Sanitize(r.Role)

	var errs []string
	if r.Name == "" {
		errs = append(errs, "name é obrigatório")
	}
	if r.Email == "" {
		errs = append(errs, "email é obrigatório")
	} else if !ValidEmail(r.Email) {
		errs = append(errs, "email inválido")
	}
	if len(r.Password) < 6 {
		errs = append(errs, "senha deve ter pelo menos 6 caracteres")
	}
	if r.Role == "" {
		r.Role = entity.RoleUser
	} else if !entity.ValidRole(r.Role) {
		errs = append(errs, "role deve ser admin, user ou partner")
	}
	return errs
}

// UpdateProfileRequest atualização do próprio perfil.
type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// Validate devolve as mensagens de validação (vazio = ok).
func (r *UpdateProfileRequest) Validate() []string {
	var errs []string
	if r.Name != nil {
		*r.Name = Sanitize(*r.Name)
		if *r.Name == "" {
			errs = append(errs, "name não pode ser vazio")
		}
	}
	if r.Email != nil {
		*r.Email = strings.ToLower(Sanitize(*r.Email))
		if !ValidEmail(*r.Email) {
			errs = append(errs, "email inválido")
		}
	}
	if r.Password != nil && len(*r.Password) < 6 {
		errs = append(errs, "senha deve ter pelo menos 6 caracteres")
	}
	return errs
}

// UpdateUserRequest atualização de um usuário por admin.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

// Validate devolve as mensagens de validação (vazio = ok).
func (r *UpdateUserRequest) Validate() []string {
	var errs []string
	if r.Name != nil {
		*r.Name = Sanitize(*r.Name)
		if *r.Name == "" {
			errs = append(errs, "name não pode ser vazio")
		}
	}
	if r.Email != nil {
		*r.Email = strings.ToLower(Sanitize(*r.Email))
		if !ValidEmail(*r.Email) {
			errs = append(errs, "email inválido")
		}
	}
	if r.Role != nil && !entity.ValidRole(*r.Role) {
		errs = append(errs, "role deve ser admin, user ou partner")
	}
	return errs
}

// UserResponse projeção de usuário nas respostas (sem hash de senha).
type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewUserResponse converte a entidade para a projeção de resposta.
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
	}
}

// LoginResponse token + usuário autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
