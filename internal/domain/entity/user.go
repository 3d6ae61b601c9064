package entity

import (
	"time"

	"github.com/google/uuid"
)

// Papéis de usuário do sistema.
const (
	RoleAdmin   = "admin"   // acesso total
	RoleUser    = "user"    // vendedor: cadastra e acompanha os próprios clientes
	RolePartner = "partner" // parceiro comercial: visão limitada dos clientes indicados
)

// ValidRole informa se o papel é um dos três reconhecidos.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser || role == RolePartner
}

// User usuário interno do sistema (admin, vendedor ou parceiro).
type User struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	IsActive     bool       `json:"is_active"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// IsAdmin informa se o usuário tem papel de administrador.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
