package enrollment

import (
	"context"

	"github.com/google/uuid"

	"github.com/credsim/bandeiras-api/internal/application/dto"
	"github.com/credsim/bandeiras-api/internal/domain"
)

// UpdateDocuments troca um subconjunto dos três documentos (vendedor dono ou
// admin; parceiros não veem documentos). Sobe o novo, grava a URL e só então
// remove o antigo, em best-effort.
func (uc *UseCase) UpdateDocuments(ctx context.Context, actor Actor, id uuid.UUID, files Files) (*dto.ClientResponse, error) {
	if files.Document == nil && files.Invoice == nil && files.EnergyBill == nil {
		return nil, domain.ErrInvalidInput
	}

	client, err := uc.clients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.authorizeOwner(actor, client); err != nil {
		return nil, err
	}

	type replacement struct {
		category string
		file     *FileInput
		current  string
		target   **string
	}
	var newDoc, newInvoice, newEnergy *string
	repls := []replacement{
		{CategoryDocument, files.Document, client.DocumentURL, &newDoc},
		{CategoryInvoice, files.Invoice, client.InvoiceURL, &newInvoice},
		{CategoryEnergyBill, files.EnergyBill, client.EnergyBillURL, &newEnergy},
	}

	var uploaded [3]string
	var oldURLs [3]string
	for i, r := range repls {
		if r.file == nil {
			continue
		}
		url, err := uc.store.Upload(ctx, r.category, r.file.Filename, r.file.ContentType, r.file.Content, r.file.Size)
		if err != nil {
			uc.deleteUploads(ctx, uploaded)
			return nil, err
		}
		uploaded[i] = url
		oldURLs[i] = r.current
		*r.target = &url
	}

	if err := uc.clients.UpdateDocuments(ctx, id, newDoc, newInvoice, newEnergy); err != nil {
		uc.deleteUploads(ctx, uploaded)
		return nil, err
	}

	// URLs antigas só saem depois do banco apontar para as novas.
	uc.deleteUploads(ctx, oldURLs)

	if newDoc != nil {
		client.DocumentURL = *newDoc
	}
	if newInvoice != nil {
		client.InvoiceURL = *newInvoice
	}
	if newEnergy != nil {
		client.EnergyBillURL = *newEnergy
	}

	flags, err := uc.clientFlags.ListByClient(ctx, client.ID)
	if err != nil {
		return nil, err
	}
	resp := uc.fullProjection(client, flags)
	return &resp, nil
}
