package http

import (
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/credsim/bandeiras-api/internal/application/dto"
	"github.com/credsim/bandeiras-api/internal/application/enrollment"
	"github.com/credsim/bandeiras-api/internal/domain/entity"
)

// Tipos de arquivo aceitos nos documentos do cadastro.
var allowedDocumentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"application/pdf": true,
}

// ClientHandler rotas de credenciamento de clientes.
type ClientHandler struct {
	uc          *enrollment.UseCase
	resp        *Responder
	maxFileSize int64
}

// NewClientHandler constrói o handler. maxFileSize limita cada documento
// anexado, em bytes.
func NewClientHandler(uc *enrollment.UseCase, resp *Responder, maxFileSize int64) *ClientHandler {
	return &ClientHandler{uc: uc, resp: resp, maxFileSize: maxFileSize}
}

// Create POST /api/clients (user, admin) — multipart com os campos de texto
// do cadastro e os três documentos obrigatórios.
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return h.resp.Fail(c, fiber.StatusBadRequest, "esperado multipart/form-data")
	}

	in := parseCreateForm(form)
	if details := in.Validate(); len(details) > 0 {
		return h.resp.Validation(c, details)
	}

	files, details, closeAll := h.parseFiles(form, true)
	defer closeAll()
	if len(details) > 0 {
		return h.resp.Validation(c, details)
	}

	out, err := h.uc.Create(c.UserContext(), GetActor(c), in, files)
	if err != nil {
		return h.resp.Err(c, err)
	}
	return h.resp.Created(c, out)
}

// List GET /api/clients
func (h *ClientHandler) List(c *fiber.Ctx) error {
	filter := enrollment.ListFilter{
		Status:  c.Query("status"),
		Search:  c.Query("search"),
		Page:    c.QueryInt("page", 1),
		PerPage: c.QueryInt("per_page", 20),
	}

	out, err := h.uc.List(c.UserContext(), GetActor(c), filter)
	if err != nil {
		return h.resp.Err(c, err)
	}
	return h.resp.OK(c, out)
}

// Get GET /api/clients/:id
func (h *ClientHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return h.resp.Fail(c, fiber.StatusBadRequest, "id inválido")
	}
	out, err := h.uc.Get(c.UserContext(), GetActor(c), id)
	if err != nil {
		return h.resp.Err(c, err)
	}
	return h.resp.OK(c, out)
}

// Update PUT /api/clients/:id — campos cadastrais via JSON.
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return h.resp.Fail(c, fiber.StatusBadRequest, "id inválido")
	}

	var in dto.UpdateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return h.resp.Fail(c, fiber.StatusBadRequest, "corpo inválido")
	}
	if details := in.Validate(); len(details) > 0 {
		return h.resp.Validation(c, details)
	}

	out, err := h.uc.Update(c.UserContext(), GetActor(c), id, in)
	if err != nil {
		return h.resp.Err(c, err)
	}
	return h.resp.OK(c, out)
}

// UpdateDocuments PUT /api/clients/:id/documents — multipart com pelo menos
// um dos três documentos para substituição.
func (h *ClientHandler) UpdateDocuments(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return h.resp.Fail(c, fiber.StatusBadRequest, "id inválido")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return h.resp.Fail(c, fiber.StatusBadRequest, "esperado multipart/form-data")
	}

	files, details, closeAll := h.parseFiles(form, false)
	defer closeAll()
	if len(details) > 0 {
		return h.resp.Validation(c, details)
	}
	if files.Document == nil && files.Invoice == nil && files.EnergyBill == nil {
		return h.resp.Fail(c, fiber.StatusBadRequest, "envie pelo menos um documento")
	}

	out, err := h.uc.UpdateDocuments(c.UserContext(), GetActor(c), id, files)
	if err != nil {
		return h.resp.Err(c, err)
	}
	return h.resp.OK(c, out)
}

// Delete DELETE /api/clients/:id (admin)
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return h.resp.Fail(c, fiber.StatusBadRequest, "id inválido")
	}
	if err := h.uc.Delete(c.UserContext(), GetActor(c), id); err != nil {
		return h.resp.Err(c, err)
	}
	return h.resp.OK(c, fiber.Map{"deleted": true})
}

// UpdateFlagStatus PATCH /api/clients/:clientId/flags/:flagId/status
func (h *ClientHandler) UpdateFlagStatus(c *fiber.Ctx) error {
	clientID, err := uuid.Parse(c.Params("clientId"))
	if err != nil {
		return h.resp.Fail(c, fiber.StatusBadRequest, "clientId inválido")
	}
	flagID, err := uuid.Parse(c.Params("flagId"))
	if err != nil {
		return h.resp.Fail(c, fiber.StatusBadRequest, "flagId inválido")
	}

	var in dto.UpdateFlagStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return h.resp.Fail(c, fiber.StatusBadRequest, "corpo inválido")
	}
	if details := in.Validate(); len(details) > 0 {
		return h.resp.Validation(c, details)
	}

	out, err := h.uc.UpdateFlagStatus(c.UserContext(), GetActor(c), clientID, flagID, entity.Status(in.Status))
	if err != nil {
		return h.resp.Err(c, err)
	}
	return h.resp.OK(c, out)
}

// parseCreateForm copia os campos de texto do multipart para o request.
func parseCreateForm(form *multipart.Form) dto.CreateClientRequest {
	value := func(key string) string {
		if vs := form.Value[key]; len(vs) > 0 {
			return vs[0]
		}
		return ""
	}
	return dto.CreateClientRequest{
		Name:              value("name"),
		RazaoSocial:       value("razao_social"),
		RamoAtividade:     value("ramo_atividade"),
		TipoCartao:        value("tipo_cartao"),
		CNPJ:              value("cnpj"),
		InscricaoEstadual: value("inscricao_estadual"),
		Email:             value("email"),
		Telefone:          value("telefone"),
		Rua:               value("rua"),
		Numero:            value("numero"),
		Complemento:       value("complemento"),
		Bairro:            value("bairro"),
		Cidade:            value("cidade"),
		Estado:            value("estado"),
		CEP:               value("cep"),
		Banco:             value("banco"),
		Agencia:           value("agencia"),
		Conta:             value("conta"),
		Digito:            value("digito"),
		PlanID:            value("plan_id"),
		SelectedFlags:     value("selected_flags"),
		PartnerID:         value("partner_id"),
		Notes:             value("notes"),
	}
}

// parseFiles abre e valida os anexos document, invoice e energy_bill.
// required exige os três. O closeAll devolvido fecha os arquivos abertos e
// deve rodar depois do use case consumir os readers.
func (h *ClientHandler) parseFiles(form *multipart.Form, required bool) (enrollment.Files, []string, func()) {
	var files enrollment.Files
	var details []string
	var opened []multipart.File

	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	fields := []struct {
		key    string
		target **enrollment.FileInput
	}{
		{"document", &files.Document},
		{"invoice", &files.Invoice},
		{"energy_bill", &files.EnergyBill},
	}
	for _, field := range fields {
		headers := form.File[field.key]
		if len(headers) == 0 {
			if required {
				details = append(details, field.key+" é obrigatório")
			}
			continue
		}
		header := headers[0]

		if header.Size > h.maxFileSize {
			details = append(details, field.key+" excede o limite de "+strconv.FormatInt(h.maxFileSize>>20, 10)+"MB")
			continue
		}
		contentType := header.Header.Get("Content-Type")
		if !allowedDocumentTypes[contentType] {
			details = append(details, field.key+" deve ser JPEG, PNG ou PDF")
			continue
		}

		f, err := header.Open()
		if err != nil {
			details = append(details, field.key+" não pôde ser lido")
			continue
		}
		opened = append(opened, f)
		*field.target = &enrollment.FileInput{
			Filename:    header.Filename,
			ContentType: contentType,
			Size:        header.Size,
			Content:     f,
		}
	}

	return files, details, closeAll
}
