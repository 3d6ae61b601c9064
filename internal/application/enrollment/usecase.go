// Package enrollment implementa o núcleo do credenciamento: criação atômica
// do agregado cliente + bandeiras + venda, alocação de protocolo, mudanças de
// status com derivação do status geral, documentos e a consulta pública.
package enrollment

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/credsim/bandeiras-api/internal/domain/entity"
	"github.com/credsim/bandeiras-api/internal/domain/repository"
)

// Tentativas de alocação de protocolo antes de desistir.
const protocolAttempts = 10

// Actor quem está executando a operação, extraído do JWT.
type Actor struct {
	ID   uuid.UUID
	Role string
}

// IsAdmin informa se o ator é administrador.
func (a Actor) IsAdmin() bool {
	return a.Role == entity.RoleAdmin
}

// UseCase casos de uso do agregado de credenciamento.
type UseCase struct {
	clients     repository.ClientRepository
	clientFlags repository.ClientFlagRepository
	plans       repository.PlanRepository
	flags       repository.FlagRepository
	users       repository.UserRepository
	tx          TxRunner
	store       DocumentStore
	cache       StatusCache
	log         zerolog.Logger
}

// NewUseCase constrói o caso de uso do credenciamento.
func NewUseCase(
	clients repository.ClientRepository,
	clientFlags repository.ClientFlagRepository,
	plans repository.PlanRepository,
	flags repository.FlagRepository,
	users repository.UserRepository,
	tx TxRunner,
	store DocumentStore,
	cache StatusCache,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		clients:     clients,
		clientFlags: clientFlags,
		plans:       plans,
		flags:       flags,
		users:       users,
		tx:          tx,
		store:       store,
		cache:       cache,
		log:         log,
	}
}
