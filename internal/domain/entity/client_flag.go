package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClientFlag vínculo de um cliente com uma bandeira selecionada no cadastro.
// FlagName e FlagPrice são snapshots do momento da matrícula: edições
// posteriores no catálogo não retroagem.
type ClientFlag struct {
	ID              uuid.UUID       `json:"id"`
	ClientID        uuid.UUID       `json:"client_id"`
	FlagID          uuid.UUID       `json:"flag_id"`
	FlagName        string          `json:"flag_name"`
	FlagPrice       decimal.Decimal `json:"flag_price"`
	Status          Status          `json:"status"`
	StatusUpdatedAt *time.Time      `json:"status_updated_at,omitempty"`
	StatusUpdatedBy *uuid.UUID      `json:"status_updated_by,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
