package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/credsim/bandeiras-api/internal/domain"
	"github.com/credsim/bandeiras-api/internal/domain/entity"
	"github.com/credsim/bandeiras-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

const clientColumns = `id, protocol, name, razao_social, ramo_atividade, tipo_cartao, cnpj,
	inscricao_estadual, email, telefone, rua, numero, complemento, bairro, cidade, estado, cep,
	banco, agencia, conta, digito, plan_id, total_value, status, partner_id, created_by, notes,
	document_url, invoice_url, energy_bill_url, created_at, updated_at`

// ClientRepo implementação do ClientRepository sobre PostgreSQL (pool ou tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository constrói o adaptador de persistência de clientes.
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// Create persiste um novo cliente. Violações únicas são classificadas pela
// constraint: protocolo vira ErrProtocolTaken (caller refaz a geração),
// CNPJ/email viram ErrDuplicateIdentity.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
			$18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Protocol, c.Name, c.RazaoSocial, c.RamoAtividade, c.TipoCartao, c.CNPJ,
		c.InscricaoEstadual, c.Email, c.Telefone, c.Rua, c.Numero, c.Complemento, c.Bairro,
		c.Cidade, c.Estado, c.CEP, c.Banco, c.Agencia, c.Conta, c.Digito, c.PlanID,
		c.TotalValue, c.Status, c.PartnerID, c.CreatedBy, c.Notes,
		c.DocumentURL, c.InvoiceURL, c.EnergyBillURL, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		switch uniqueConstraint(err) {
		case "clients_protocol_key":
			return domain.ErrProtocolTaken
		case "":
			// não é 23505
		default:
			return domain.ErrDuplicateIdentity
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID busca um cliente por ID.
func (r *ClientRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get client by id")
}

// GetByCNPJ busca um cliente pelo CNPJ normalizado.
func (r *ClientRepo) GetByCNPJ(ctx context.Context, cnpj string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE cnpj = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, cnpj), "get client by cnpj")
}

// GetByEmail busca um cliente pelo email.
func (r *ClientRepo) GetByEmail(ctx context.Context, email string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE email = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, email), "get client by email")
}

// GetByProtocol busca um cliente pelo protocolo público.
func (r *ClientRepo) GetByProtocol(ctx context.Context, protocol string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE protocol = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, protocol), "get client by protocol")
}

// ProtocolExists verifica se o protocolo já está em uso.
func (r *ClientRepo) ProtocolExists(ctx context.Context, protocol string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM clients WHERE protocol = $1)`, protocol).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check protocol: %w", err)
	}
	return exists, nil
}

// List devolve a página filtrada e o total de registros do filtro.
func (r *ClientRepo) List(ctx context.Context, f repository.ClientFilter) ([]*entity.Client, int, error) {
	var conds []string
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, strings.Replace(cond, "?", "$"+strconv.Itoa(len(args)), 1))
	}

	if f.Status != "" {
		add("status = ?", f.Status)
	}
	if f.CreatedBy != nil {
		add("created_by = ?", *f.CreatedBy)
	}
	if f.PartnerID != nil {
		add("partner_id = ?", *f.PartnerID)
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		args = append(args, pattern)
		p := "$" + strconv.Itoa(len(args))
		conds = append(conds, fmt.Sprintf(
			"(name ILIKE %[1]s OR razao_social ILIKE %[1]s OR cnpj ILIKE %[1]s OR protocol ILIKE %[1]s)", p))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM clients`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count clients: %w", err)
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	perPage := f.PerPage
	if perPage < 1 {
		perPage = 20
	}
	args = append(args, perPage, (page-1)*perPage)
	query := fmt.Sprintf(`SELECT %s FROM clients%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		clientColumns, where, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var list []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}

// Update atualiza os campos editáveis do cliente. Protocol, total_value,
// status e URLs de documento ficam de fora por construção.
func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	query := `
		UPDATE clients
		SET name = $2, razao_social = $3, ramo_atividade = $4, tipo_cartao = $5,
			inscricao_estadual = $6, email = $7, telefone = $8, rua = $9, numero = $10,
			complemento = $11, bairro = $12, cidade = $13, estado = $14, cep = $15,
			banco = $16, agencia = $17, conta = $18, digito = $19, partner_id = $20,
			notes = $21, updated_at = $22
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.RazaoSocial, c.RamoAtividade, c.TipoCartao, c.InscricaoEstadual,
		c.Email, c.Telefone, c.Rua, c.Numero, c.Complemento, c.Bairro, c.Cidade, c.Estado,
		c.CEP, c.Banco, c.Agencia, c.Conta, c.Digito, c.PartnerID, c.Notes, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateIdentity
		}
		return fmt.Errorf("update client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus grava o status geral derivado.
func (r *ClientRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.Status) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE clients SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update client status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateDocuments troca as URLs informadas (nil preserva a atual).
func (r *ClientRepo) UpdateDocuments(ctx context.Context, id uuid.UUID, documentURL, invoiceURL, energyBillURL *string) error {
	query := `
		UPDATE clients
		SET document_url = COALESCE($2, document_url),
			invoice_url = COALESCE($3, invoice_url),
			energy_bill_url = COALESCE($4, energy_bill_url),
			updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, documentURL, invoiceURL, energyBillURL)
	if err != nil {
		return fmt.Errorf("update client documents: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete remove o cliente; vínculos e registro de venda caem por cascata (FK).
func (r *ClientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ClientRepo) scanOne(row pgx.Row, op string) (*entity.Client, error) {
	c, err := scanClient(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	err := row.Scan(
		&c.ID, &c.Protocol, &c.Name, &c.RazaoSocial, &c.RamoAtividade, &c.TipoCartao, &c.CNPJ,
		&c.InscricaoEstadual, &c.Email, &c.Telefone, &c.Rua, &c.Numero, &c.Complemento, &c.Bairro,
		&c.Cidade, &c.Estado, &c.CEP, &c.Banco, &c.Agencia, &c.Conta, &c.Digito, &c.PlanID,
		&c.TotalValue, &c.Status, &c.PartnerID, &c.CreatedBy, &c.Notes,
		&c.DocumentURL, &c.InvoiceURL, &c.EnergyBillURL, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
