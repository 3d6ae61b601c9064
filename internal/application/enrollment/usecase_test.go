package enrollment_test

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credsim/bandeiras-api/internal/application/dto"
	"github.com/credsim/bandeiras-api/internal/application/enrollment"
	"github.com/credsim/bandeiras-api/internal/domain"
	"github.com/credsim/bandeiras-api/internal/domain/entity"
	"github.com/credsim/bandeiras-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória
// ──────────────────────────────────────────────────────────────────────────────

type fakeClientRepo struct {
	clients map[uuid.UUID]*entity.Client

	// ProtocolExists devolve true nas primeiras takenUntil chamadas, para
	// simular colisões de protocolo.
	takenUntil int
	protoCalls int
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[uuid.UUID]*entity.Client)}
}

func (r *fakeClientRepo) Create(_ context.Context, c *entity.Client) error {
	for _, existing := range r.clients {
		if existing.Protocol == c.Protocol {
			return domain.ErrProtocolTaken
		}
	}
	r.clients[c.ID] = c
	return nil
}

func (r *fakeClientRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Client, error) {
	return r.clients[id], nil
}

func (r *fakeClientRepo) GetByCNPJ(_ context.Context, cnpj string) (*entity.Client, error) {
	for _, c := range r.clients {
		if c.CNPJ == cnpj {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeClientRepo) GetByEmail(_ context.Context, email string) (*entity.Client, error) {
	for _, c := range r.clients {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeClientRepo) GetByProtocol(_ context.Context, protocol string) (*entity.Client, error) {
	for _, c := range r.clients {
		if c.Protocol == protocol {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeClientRepo) ProtocolExists(_ context.Context, protocol string) (bool, error) {
	r.protoCalls++
	if r.protoCalls <= r.takenUntil {
		return true, nil
	}
	for _, c := range r.clients {
		if c.Protocol == protocol {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeClientRepo) List(_ context.Context, f repository.ClientFilter) ([]*entity.Client, int, error) {
	var out []*entity.Client
	for _, c := range r.clients {
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		if f.CreatedBy != nil && c.CreatedBy != *f.CreatedBy {
			continue
		}
		if f.PartnerID != nil && (c.PartnerID == nil || *c.PartnerID != *f.PartnerID) {
			continue
		}
		out = append(out, c)
	}
	return out, len(out), nil
}

func (r *fakeClientRepo) Update(_ context.Context, c *entity.Client) error {
	r.clients[c.ID] = c
	return nil
}

func (r *fakeClientRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.Status) error {
	r.clients[id].Status = status
	return nil
}

func (r *fakeClientRepo) UpdateDocuments(_ context.Context, id uuid.UUID, doc, inv, energy *string) error {
	c := r.clients[id]
	if doc != nil {
		c.DocumentURL = *doc
	}
	if inv != nil {
		c.InvoiceURL = *inv
	}
	if energy != nil {
		c.EnergyBillURL = *energy
	}
	return nil
}

func (r *fakeClientRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.clients, id)
	return nil
}

type fakeClientFlagRepo struct {
	flags []*entity.ClientFlag
}

func (r *fakeClientFlagRepo) CreateBatch(_ context.Context, flags []*entity.ClientFlag) error {
	r.flags = append(r.flags, flags...)
	return nil
}

func (r *fakeClientFlagRepo) ListByClient(_ context.Context, clientID uuid.UUID) ([]*entity.ClientFlag, error) {
	var out []*entity.ClientFlag
	for _, cf := range r.flags {
		if cf.ClientID == clientID {
			out = append(out, cf)
		}
	}
	return out, nil
}

func (r *fakeClientFlagRepo) GetByClientAndFlag(_ context.Context, clientID, flagID uuid.UUID) (*entity.ClientFlag, error) {
	for _, cf := range r.flags {
		if cf.ClientID == clientID && cf.FlagID == flagID {
			return cf, nil
		}
	}
	return nil, nil
}

func (r *fakeClientFlagRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.Status, updatedBy uuid.UUID, updatedAt time.Time) error {
	for _, cf := range r.flags {
		if cf.ID == id {
			cf.Status = status
			cf.StatusUpdatedAt = &updatedAt
			cf.StatusUpdatedBy = &updatedBy
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeSalesRepo struct {
	reports []*entity.SalesReport
}

func (r *fakeSalesRepo) Create(_ context.Context, report *entity.SalesReport) error {
	r.reports = append(r.reports, report)
	return nil
}

func (r *fakeSalesRepo) List(context.Context, time.Time, time.Time) ([]*entity.SalesReport, error) {
	return r.reports, nil
}

func (r *fakeSalesRepo) ListByPartner(_ context.Context, partnerID uuid.UUID) ([]*entity.SalesReport, error) {
	var out []*entity.SalesReport
	for _, s := range r.reports {
		if s.PartnerID != nil && *s.PartnerID == partnerID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSalesRepo) Totals(context.Context, time.Time, time.Time) (repository.ReportTotals, error) {
	return repository.ReportTotals{}, nil
}

func (r *fakeSalesRepo) BySeller(context.Context, time.Time, time.Time) ([]repository.SellerSales, error) {
	return nil, nil
}

func (r *fakeSalesRepo) ByPlan(context.Context, time.Time, time.Time) ([]repository.PlanSales, error) {
	return nil, nil
}

func (r *fakeSalesRepo) ByPartner(context.Context, time.Time, time.Time) ([]repository.PartnerSales, error) {
	return nil, nil
}

func (r *fakeSalesRepo) ByMonth(context.Context, int) ([]repository.MonthSales, error) {
	return nil, nil
}

type fakePlanRepo struct {
	plans map[uuid.UUID]*entity.Plan
}

func (r *fakePlanRepo) Create(_ context.Context, p *entity.Plan) error {
	r.plans[p.ID] = p
	return nil
}

func (r *fakePlanRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Plan, error) {
	return r.plans[id], nil
}

func (r *fakePlanRepo) GetByCode(_ context.Context, code string) (*entity.Plan, error) {
	for _, p := range r.plans {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakePlanRepo) List(context.Context, bool) ([]*entity.Plan, error) { return nil, nil }
func (r *fakePlanRepo) Update(_ context.Context, p *entity.Plan) error {
	r.plans[p.ID] = p
	return nil
}
func (r *fakePlanRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.plans, id)
	return nil
}

type fakeFlagRepo struct {
	flags map[uuid.UUID]*entity.Flag
}

func (r *fakeFlagRepo) Create(_ context.Context, f *entity.Flag) error {
	r.flags[f.ID] = f
	return nil
}

func (r *fakeFlagRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Flag, error) {
	return r.flags[id], nil
}

func (r *fakeFlagRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]*entity.Flag, error) {
	var out []*entity.Flag
	for _, id := range ids {
		if f, ok := r.flags[id]; ok {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeFlagRepo) List(context.Context, bool) ([]*entity.Flag, error) { return nil, nil }
func (r *fakeFlagRepo) Update(_ context.Context, f *entity.Flag) error {
	r.flags[f.ID] = f
	return nil
}
func (r *fakeFlagRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.flags, id)
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(context.Context) ([]*entity.User, error) { return nil, nil }
func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	r.users[u.ID] = u
	return nil
}
func (r *fakeUserRepo) UpdateLastLogin(context.Context, uuid.UUID) error { return nil }

// fakeTx executa fn direto sobre os fakes, sem transação real.
type fakeTx struct {
	clients *fakeClientRepo
	flags   *fakeClientFlagRepo
	sales   *fakeSalesRepo
}

func (t *fakeTx) Run(ctx context.Context, fn func(
	repository.ClientRepository,
	repository.ClientFlagRepository,
	repository.SalesReportRepository,
) error) error {
	return fn(t.clients, t.flags, t.sales)
}

// memStore DocumentStore em memória; guarda as URLs subidas e removidas.
type memStore struct {
	uploads []string
	deleted []string
	seq     int
}

func newMemStore() *memStore { return &memStore{} }

func (s *memStore) Upload(_ context.Context, category, filename, _ string, _ io.Reader, _ int64) (string, error) {
	s.seq++
	url := fmt.Sprintf("https://files.test/%s/%d-%s", category, s.seq, filename)
	s.uploads = append(s.uploads, url)
	return url, nil
}

func (s *memStore) Delete(_ context.Context, fileURL string) error {
	s.deleted = append(s.deleted, fileURL)
	return nil
}

type fakeCache struct {
	entries map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (c *fakeCache) Get(_ context.Context, lookup string) ([]byte, bool, error) {
	payload, ok := c.entries[lookup]
	return payload, ok, nil
}

func (c *fakeCache) Set(_ context.Context, lookup string, payload []byte) error {
	c.entries[lookup] = payload
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, lookups ...string) error {
	for _, l := range lookups {
		delete(c.entries, l)
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Ambiente de teste
// ──────────────────────────────────────────────────────────────────────────────

type testEnv struct {
	uc      *enrollment.UseCase
	clients *fakeClientRepo
	flags   *fakeClientFlagRepo
	sales   *fakeSalesRepo
	plans   *fakePlanRepo
	catalog *fakeFlagRepo
	users   *fakeUserRepo
	store   *memStore
	cache   *fakeCache

	seller  *entity.User
	admin   *entity.User
	partner *entity.User

	individual *entity.Plan
	combo5     *entity.Plan
	flagIDs    []uuid.UUID // 7 bandeiras ativas, preços 35, 30, 30, 25, 25, 25, 25
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		clients: newFakeClientRepo(),
		flags:   &fakeClientFlagRepo{},
		sales:   &fakeSalesRepo{},
		plans:   &fakePlanRepo{plans: make(map[uuid.UUID]*entity.Plan)},
		catalog: &fakeFlagRepo{flags: make(map[uuid.UUID]*entity.Flag)},
		users:   &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)},
		store:   newMemStore(),
		cache:   newFakeCache(),
	}

	env.seller = &entity.User{ID: uuid.New(), Name: "Maria Vendedora", Role: entity.RoleUser, IsActive: true}
	env.admin = &entity.User{ID: uuid.New(), Name: "Admin", Role: entity.RoleAdmin, IsActive: true}
	env.partner = &entity.User{ID: uuid.New(), Name: "Parceiro Contábil", Role: entity.RolePartner, IsActive: true}
	for _, u := range []*entity.User{env.seller, env.admin, env.partner} {
		env.users.users[u.ID] = u
	}

	env.individual = &entity.Plan{
		ID: uuid.New(), Name: "Individual", Code: entity.PlanIndividual, IsActive: true,
	}
	env.combo5 = &entity.Plan{
		ID: uuid.New(), Name: "Combo 5", Code: entity.PlanCombo5, FlagCount: 5,
		Price: decimal.NewFromInt(150), IsActive: true,
	}
	env.plans.plans[env.individual.ID] = env.individual
	env.plans.plans[env.combo5.ID] = env.combo5

	prices := []int64{35, 30, 30, 25, 25, 25, 25}
	for i, p := range prices {
		f := &entity.Flag{
			ID:       uuid.New(),
			Name:     fmt.Sprintf("Bandeira %d", i+1),
			Code:     fmt.Sprintf("flag_%d", i+1),
			Price:    decimal.NewFromInt(p),
			IsActive: true,
		}
		env.catalog.flags[f.ID] = f
		env.flagIDs = append(env.flagIDs, f.ID)
	}

	tx := &fakeTx{clients: env.clients, flags: env.flags, sales: env.sales}
	env.uc = enrollment.NewUseCase(
		env.clients, env.flags, env.plans, env.catalog, env.users,
		tx, env.store, env.cache, zerolog.Nop(),
	)
	return env
}

func (e *testEnv) sellerActor() enrollment.Actor {
	return enrollment.Actor{ID: e.seller.ID, Role: entity.RoleUser}
}

func (e *testEnv) adminActor() enrollment.Actor {
	return enrollment.Actor{ID: e.admin.ID, Role: entity.RoleAdmin}
}

func (e *testEnv) partnerActor() enrollment.Actor {
	return enrollment.Actor{ID: e.partner.ID, Role: entity.RolePartner}
}

// validRequest cadastro válido com plano individual e duas bandeiras.
// Os campos derivados já vêm preenchidos como se Validate tivesse rodado.
func (e *testEnv) validRequest() dto.CreateClientRequest {
	return dto.CreateClientRequest{
		Name:          "Mercado Bom Preço",
		RazaoSocial:   "Bom Preço Comércio de Alimentos LTDA",
		RamoAtividade: "Supermercado",
		TipoCartao:    entity.CardAlimentacao,
		CNPJ:          "11444777000161",
		Email:         "contato@bompreco.com.br",
		Telefone:      "11987654321",
		Rua:           "Rua das Laranjeiras",
		Numero:        "100",
		Bairro:        "Centro",
		Cidade:        "São Paulo",
		Estado:        "SP",
		CEP:           "01310100",
		PlanUUID:      e.individual.ID,
		FlagIDs:       []uuid.UUID{e.flagIDs[0], e.flagIDs[1]},
	}
}

func testFiles() enrollment.Files {
	file := func(name string) *enrollment.FileInput {
		return &enrollment.FileInput{
			Filename:    name,
			ContentType: "application/pdf",
			Size:        1024,
			Content:     strings.NewReader("conteudo de teste"),
		}
	}
	return enrollment.Files{
		Document:   file("contrato-social.pdf"),
		Invoice:    file("nota-fiscal.pdf"),
		EnergyBill: file("conta-luz.pdf"),
	}
}

var protocolPattern = regexp.MustCompile(`^\d{8}-\d{6}$`)

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_PlanoIndividualSomaBandeiras(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.uc.Create(context.Background(), env.sellerActor(), env.validRequest(), testFiles())
	require.NoError(t, err)

	// Preço individual = soma das bandeiras selecionadas (35 + 30).
	assert.True(t, resp.TotalValue.Equal(decimal.NewFromInt(65)),
		"total deve ser a soma das bandeiras, veio %s", resp.TotalValue)
	assert.Equal(t, entity.StatusPending, resp.Status)
	assert.Regexp(t, protocolPattern, resp.Protocol)
	assert.Equal(t, env.seller.ID, resp.CreatedBy)

	// Snapshot de nome e preço nos vínculos.
	require.Len(t, resp.Flags, 2)
	assert.Equal(t, "Bandeira 1", resp.Flags[0].FlagName)
	assert.True(t, resp.Flags[0].FlagPrice.Equal(decimal.NewFromInt(35)))
	assert.Equal(t, entity.StatusPending, resp.Flags[0].Status)

	// Venda registrada no livro com o mesmo protocolo e vendedor.
	require.Len(t, env.sales.reports, 1)
	report := env.sales.reports[0]
	assert.Equal(t, resp.Protocol, report.Protocol)
	assert.Equal(t, env.seller.Name, report.SellerName)
	assert.True(t, report.TotalValue.Equal(decimal.NewFromInt(65)))

	// Três documentos no storage.
	assert.Len(t, env.store.uploads, 3)
	assert.NotEmpty(t, resp.DocumentURL)
	assert.NotEmpty(t, resp.InvoiceURL)
	assert.NotEmpty(t, resp.EnergyBillURL)
}

func TestCreate_SnapshotSobreviveEdicaoDoCatalogo(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.uc.Create(ctx, env.sellerActor(), env.validRequest(), testFiles())
	require.NoError(t, err)

	// Admin muda o preço da bandeira no catálogo depois do cadastro.
	env.catalog.flags[env.flagIDs[0]].Price = decimal.NewFromInt(99)

	out, err := env.uc.Get(ctx, env.adminActor(), resp.ID)
	require.NoError(t, err)
	full := out.(dto.ClientResponse)
	require.NotEmpty(t, full.Flags)
	assert.True(t, full.Flags[0].FlagPrice.Equal(decimal.NewFromInt(35)),
		"o vínculo deve manter o preço da época do cadastro, veio %s", full.Flags[0].FlagPrice)
	assert.True(t, full.TotalValue.Equal(decimal.NewFromInt(65)))
}

func TestCreate_ComboPrecoFechado(t *testing.T) {
	env := newTestEnv(t)

	in := env.validRequest()
	in.PlanUUID = env.combo5.ID
	in.FlagIDs = env.flagIDs[:5]

	resp, err := env.uc.Create(context.Background(), env.sellerActor(), in, testFiles())
	require.NoError(t, err)

	// Combo tem preço fechado, independente das bandeiras escolhidas.
	assert.True(t, resp.TotalValue.Equal(decimal.NewFromInt(150)),
		"combo deve usar o preço do plano, veio %s", resp.TotalValue)
}

func TestCreate_ComboExigeContagemExata(t *testing.T) {
	env := newTestEnv(t)

	in := env.validRequest()
	in.PlanUUID = env.combo5.ID
	in.FlagIDs = env.flagIDs[:3]

	_, err := env.uc.Create(context.Background(), env.sellerActor(), in, testFiles())
	assert.ErrorIs(t, err, domain.ErrFlagCountMismatch)
}

func TestCreate_ContagemDoComboVemDoCode(t *testing.T) {
	env := newTestEnv(t)

	// Admin edita o flag_count do catálogo; a regra continua fixada pelo
	// code do plano e segue exigindo 5 bandeiras.
	env.combo5.FlagCount = 3

	in := env.validRequest()
	in.PlanUUID = env.combo5.ID
	in.FlagIDs = env.flagIDs[:3]
	_, err := env.uc.Create(context.Background(), env.sellerActor(), in, testFiles())
	assert.ErrorIs(t, err, domain.ErrFlagCountMismatch)

	in.FlagIDs = env.flagIDs[:5]
	resp, err := env.uc.Create(context.Background(), env.sellerActor(), in, testFiles())
	require.NoError(t, err)
	assert.True(t, resp.TotalValue.Equal(decimal.NewFromInt(150)))
}

func TestCreate_IdentidadeDuplicada(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.uc.Create(context.Background(), env.sellerActor(), env.validRequest(), testFiles())
	require.NoError(t, err)
	uploadsAfterFirst := len(env.store.uploads)

	// Mesmo CNPJ.
	in := env.validRequest()
	in.Email = "outro@bompreco.com.br"
	_, err = env.uc.Create(context.Background(), env.sellerActor(), in, testFiles())
	assert.ErrorIs(t, err, domain.ErrDuplicateIdentity)

	// Mesmo email.
	in = env.validRequest()
	in.CNPJ = "11222333000181"
	_, err = env.uc.Create(context.Background(), env.sellerActor(), in, testFiles())
	assert.ErrorIs(t, err, domain.ErrDuplicateIdentity)

	// A verificação de identidade vem antes do upload: nada novo no storage.
	assert.Len(t, env.store.uploads, uploadsAfterFirst)
}

func TestCreate_PlanoInativo(t *testing.T) {
	env := newTestEnv(t)
	env.individual.IsActive = false

	_, err := env.uc.Create(context.Background(), env.sellerActor(), env.validRequest(), testFiles())
	assert.ErrorIs(t, err, domain.ErrInvalidPlan)
}

func TestCreate_SelecaoDeBandeirasInvalida(t *testing.T) {
	env := newTestEnv(t)

	// Bandeira repetida.
	in := env.validRequest()
	in.FlagIDs = []uuid.UUID{env.flagIDs[0], env.flagIDs[0]}
	_, err := env.uc.Create(context.Background(), env.sellerActor(), in, testFiles())
	assert.ErrorIs(t, err, domain.ErrInvalidFlagSelection)

	// Bandeira inexistente.
	in = env.validRequest()
	in.FlagIDs = []uuid.UUID{env.flagIDs[0], uuid.New()}
	_, err = env.uc.Create(context.Background(), env.sellerActor(), in, testFiles())
	assert.ErrorIs(t, err, domain.ErrInvalidFlagSelection)

	// Bandeira inativa.
	env.catalog.flags[env.flagIDs[1]].IsActive = false
	in = env.validRequest()
	_, err = env.uc.Create(context.Background(), env.sellerActor(), in, testFiles())
	assert.ErrorIs(t, err, domain.ErrInvalidFlagSelection)
}

func TestCreate_ExigeOsTresDocumentos(t *testing.T) {
	env := newTestEnv(t)

	files := testFiles()
	files.EnergyBill = nil
	_, err := env.uc.Create(context.Background(), env.sellerActor(), env.validRequest(), files)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_ParceiroInvalido(t *testing.T) {
	env := newTestEnv(t)

	// Usuário existente mas sem papel de parceiro.
	in := env.validRequest()
	sellerID := env.seller.ID
	in.PartnerUUID = &sellerID
	_, err := env.uc.Create(context.Background(), env.sellerActor(), in, testFiles())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Parceiro válido passa e fica na venda.
	in = env.validRequest()
	partnerID := env.partner.ID
	in.PartnerUUID = &partnerID
	resp, err := env.uc.Create(context.Background(), env.sellerActor(), in, testFiles())
	require.NoError(t, err)
	require.NotNil(t, resp.PartnerID)
	assert.Equal(t, env.partner.ID, *resp.PartnerID)
	require.Len(t, env.sales.reports, 1)
	assert.Equal(t, env.partner.Name, env.sales.reports[0].PartnerName)
}

func TestCreate_ColisaoDeProtocoloReinicia(t *testing.T) {
	env := newTestEnv(t)
	env.clients.takenUntil = 3

	resp, err := env.uc.Create(context.Background(), env.sellerActor(), env.validRequest(), testFiles())
	require.NoError(t, err)

	assert.Regexp(t, protocolPattern, resp.Protocol)
	assert.Equal(t, 4, env.clients.protoCalls,
		"três colisões devem consumir três tentativas antes do sucesso")
}

func TestCreate_ProtocoloEsgotado(t *testing.T) {
	env := newTestEnv(t)
	env.clients.takenUntil = 10

	_, err := env.uc.Create(context.Background(), env.sellerActor(), env.validRequest(), testFiles())
	assert.ErrorIs(t, err, domain.ErrProtocolExhausted)

	// Compensação: os três documentos subidos devem ser removidos.
	assert.Len(t, env.store.deleted, 3)
	assert.Empty(t, env.sales.reports)
}

// ──────────────────────────────────────────────────────────────────────────────
// Status
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateFlagStatus_DerivaStatusGeral(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.uc.Create(ctx, env.sellerActor(), env.validRequest(), testFiles())
	require.NoError(t, err)

	clientID := resp.ID
	flagA := resp.Flags[0].FlagID
	flagB := resp.Flags[1].FlagID

	// Uma aprovada, outra pendente → geral continua pendente.
	updated, err := env.uc.UpdateFlagStatus(ctx, env.adminActor(), clientID, flagA, entity.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, updated.Status)

	// Pendente vira em análise → geral em análise.
	updated, err = env.uc.UpdateFlagStatus(ctx, env.adminActor(), clientID, flagB, entity.StatusInAnalysis)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInAnalysis, updated.Status)

	// Todas aprovadas → geral aprovado, com auditoria de quem mudou.
	updated, err = env.uc.UpdateFlagStatus(ctx, env.adminActor(), clientID, flagB, entity.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusApproved, updated.Status)

	cf, err := env.flags.GetByClientAndFlag(ctx, clientID, flagB)
	require.NoError(t, err)
	require.NotNil(t, cf.StatusUpdatedBy)
	assert.Equal(t, env.admin.ID, *cf.StatusUpdatedBy)
	assert.NotNil(t, cf.StatusUpdatedAt)
}

func TestUpdateFlagStatus_InvalidaCachePublico(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.uc.Create(ctx, env.sellerActor(), env.validRequest(), testFiles())
	require.NoError(t, err)

	// Primeira consulta popula o cache.
	_, err = env.uc.CheckStatus(ctx, resp.Protocol, "")
	require.NoError(t, err)
	assert.Contains(t, env.cache.entries, resp.Protocol)

	_, err = env.uc.UpdateFlagStatus(ctx, env.adminActor(), resp.ID, resp.Flags[0].FlagID, entity.StatusApproved)
	require.NoError(t, err)

	assert.NotContains(t, env.cache.entries, resp.Protocol,
		"mudança de status deve invalidar o cache da consulta pública")
}

func TestUpdateFlagStatus_SomenteDonoOuAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.uc.Create(ctx, env.sellerActor(), env.validRequest(), testFiles())
	require.NoError(t, err)

	// Outro vendedor não pode.
	outro := enrollment.Actor{ID: uuid.New(), Role: entity.RoleUser}
	_, err = env.uc.UpdateFlagStatus(ctx, outro, resp.ID, resp.Flags[0].FlagID, entity.StatusApproved)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Parceiro também não.
	_, err = env.uc.UpdateFlagStatus(ctx, env.partnerActor(), resp.ID, resp.Flags[0].FlagID, entity.StatusApproved)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Vendedor dono pode.
	_, err = env.uc.UpdateFlagStatus(ctx, env.sellerActor(), resp.ID, resp.Flags[0].FlagID, entity.StatusApproved)
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consulta e projeções
// ──────────────────────────────────────────────────────────────────────────────

func TestGet_ProjecaoPorPapel(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	in := env.validRequest()
	partnerID := env.partner.ID
	in.PartnerUUID = &partnerID
	in.Notes = "indicado pela contabilidade"
	created, err := env.uc.Create(ctx, env.sellerActor(), in, testFiles())
	require.NoError(t, err)

	// Admin e vendedor dono: projeção completa.
	out, err := env.uc.Get(ctx, env.adminActor(), created.ID)
	require.NoError(t, err)
	full, ok := out.(dto.ClientResponse)
	require.True(t, ok, "admin deve receber a projeção completa")
	assert.Equal(t, created.CNPJ, full.CNPJ)
	assert.NotEmpty(t, full.DocumentURL)

	// Parceiro indicador: projeção limitada, com contato e observações mas
	// sem CNPJ, endereço ou documentos.
	out, err = env.uc.Get(ctx, env.partnerActor(), created.ID)
	require.NoError(t, err)
	limited, ok := out.(dto.PartnerClientResponse)
	require.True(t, ok, "parceiro deve receber a projeção limitada")
	assert.Equal(t, created.Protocol, limited.Protocol)
	assert.Equal(t, created.Telefone, limited.Telefone)
	assert.Equal(t, "indicado pela contabilidade", limited.Notes)
	assert.Len(t, limited.Flags, 2)

	// Vendedor que não cadastrou: 403.
	outro := enrollment.Actor{ID: uuid.New(), Role: entity.RoleUser}
	_, err = env.uc.Get(ctx, outro, created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestList_EscopoPorPapel(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Um cadastro do vendedor com parceiro, outro de outro vendedor sem.
	in := env.validRequest()
	partnerID := env.partner.ID
	in.PartnerUUID = &partnerID
	_, err := env.uc.Create(ctx, env.sellerActor(), in, testFiles())
	require.NoError(t, err)

	outroVendedor := &entity.User{ID: uuid.New(), Name: "Outro Vendedor", Role: entity.RoleUser, IsActive: true}
	env.users.users[outroVendedor.ID] = outroVendedor
	in2 := env.validRequest()
	in2.CNPJ = "11222333000181"
	in2.Email = "financeiro@padaria.com.br"
	_, err = env.uc.Create(ctx, enrollment.Actor{ID: outroVendedor.ID, Role: entity.RoleUser}, in2, testFiles())
	require.NoError(t, err)

	// Admin vê os dois.
	out, err := env.uc.List(ctx, env.adminActor(), enrollment.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, out.Items.([]dto.ClientResponse), 2)
	assert.Equal(t, 2, out.Page.Total)

	// Vendedor vê só o próprio.
	out, err = env.uc.List(ctx, env.sellerActor(), enrollment.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, out.Items.([]dto.ClientResponse), 1)

	// Parceiro vê só os indicados, na projeção limitada.
	out, err = env.uc.List(ctx, env.partnerActor(), enrollment.ListFilter{})
	require.NoError(t, err)
	limited := out.Items.([]dto.PartnerClientResponse)
	assert.Len(t, limited, 1)
}

func TestCheckStatus_ValidacaoEConsulta(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.uc.Create(ctx, env.sellerActor(), env.validRequest(), testFiles())
	require.NoError(t, err)

	// Exatamente um critério.
	_, err = env.uc.CheckStatus(ctx, "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = env.uc.CheckStatus(ctx, resp.Protocol, resp.CNPJ)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Formato inválido.
	_, err = env.uc.CheckStatus(ctx, "1234-99", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = env.uc.CheckStatus(ctx, "", "11111111111111")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Protocolo bem-formado mas inexistente.
	_, err = env.uc.CheckStatus(ctx, "20260831-123456", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Consulta por protocolo. O nome exibido é a razão social e observações
	// vazias ganham o texto padrão.
	status, err := env.uc.CheckStatus(ctx, resp.Protocol, "")
	require.NoError(t, err)
	assert.Equal(t, resp.Protocol, status.Protocolo)
	assert.Equal(t, resp.RazaoSocial, status.NomeEmpresa)
	assert.Equal(t, "Individual", status.Plano)
	assert.Equal(t, "Nenhuma observação", status.Observacoes)
	assert.Len(t, status.Bandeiras, 2)

	// Consulta por CNPJ (aceita máscara) devolve o mesmo cadastro.
	status, err = env.uc.CheckStatus(ctx, "", "11.444.777/0001-61")
	require.NoError(t, err)
	assert.Equal(t, resp.Protocol, status.Protocolo)
}

func TestCheckStatus_RespondeDoCache(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	in := env.validRequest()
	in.Notes = "aguardando análise da operadora"
	resp, err := env.uc.Create(ctx, env.sellerActor(), in, testFiles())
	require.NoError(t, err)

	first, err := env.uc.CheckStatus(ctx, resp.Protocol, "")
	require.NoError(t, err)
	assert.Equal(t, "aguardando análise da operadora", first.Observacoes)

	// Muda a razão social direto no "banco"; a resposta cacheada não deve
	// refletir.
	env.clients.clients[resp.ID].RazaoSocial = "Outra Razão Social LTDA"

	second, err := env.uc.CheckStatus(ctx, resp.Protocol, "")
	require.NoError(t, err)
	assert.Equal(t, first.NomeEmpresa, second.NomeEmpresa,
		"dentro do TTL a consulta deve sair do cache")
}

// ──────────────────────────────────────────────────────────────────────────────
// Atualização e remoção
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_NaoTocaCamposDoSistema(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.uc.Create(ctx, env.sellerActor(), env.validRequest(), testFiles())
	require.NoError(t, err)

	novoNome := "Mercado Bom Preço Matriz"
	updated, err := env.uc.Update(ctx, env.sellerActor(), created.ID, dto.UpdateClientRequest{Name: &novoNome})
	require.NoError(t, err)

	assert.Equal(t, novoNome, updated.Name)
	assert.Equal(t, created.Protocol, updated.Protocol)
	assert.True(t, created.TotalValue.Equal(updated.TotalValue))
	assert.Equal(t, created.Status, updated.Status)
}

func TestUpdate_VinculaEDesvinculaParceiro(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.uc.Create(ctx, env.sellerActor(), env.validRequest(), testFiles())
	require.NoError(t, err)

	partnerID := env.partner.ID
	updated, err := env.uc.Update(ctx, env.sellerActor(), created.ID, dto.UpdateClientRequest{PartnerUUID: &partnerID})
	require.NoError(t, err)
	require.NotNil(t, updated.PartnerID)
	assert.Equal(t, env.partner.ID, *updated.PartnerID)

	updated, err = env.uc.Update(ctx, env.sellerActor(), created.ID, dto.UpdateClientRequest{ClearPartner: true})
	require.NoError(t, err)
	assert.Nil(t, updated.PartnerID)
}

func TestUpdateDocuments_TrocaParcial(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.uc.Create(ctx, env.sellerActor(), env.validRequest(), testFiles())
	require.NoError(t, err)
	oldInvoice := created.InvoiceURL

	files := enrollment.Files{
		Invoice: &enrollment.FileInput{
			Filename:    "nota-fiscal-nova.pdf",
			ContentType: "application/pdf",
			Size:        2048,
			Content:     strings.NewReader("nova nota"),
		},
	}
	updated, err := env.uc.UpdateDocuments(ctx, env.sellerActor(), created.ID, files)
	require.NoError(t, err)

	assert.NotEqual(t, oldInvoice, updated.InvoiceURL)
	assert.Equal(t, created.DocumentURL, updated.DocumentURL, "documento não enviado não muda")
	assert.Contains(t, env.store.deleted, oldInvoice, "a URL antiga sai do storage depois da troca")

	// Sem nenhum arquivo é erro de entrada.
	_, err = env.uc.UpdateDocuments(ctx, env.sellerActor(), created.ID, enrollment.Files{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Parceiro não mexe em documentos.
	_, err = env.uc.UpdateDocuments(ctx, env.partnerActor(), created.ID, files)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDelete_SomenteAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.uc.Create(ctx, env.sellerActor(), env.validRequest(), testFiles())
	require.NoError(t, err)

	err = env.uc.Delete(ctx, env.sellerActor(), created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden, "vendedor não remove cadastros")

	err = env.uc.Delete(ctx, env.adminActor(), created.ID)
	require.NoError(t, err)

	got, err := env.clients.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Len(t, env.store.deleted, 3, "os documentos saem do storage junto")
}
