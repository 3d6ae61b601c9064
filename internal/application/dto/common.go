package dto

// PageRequest paginação para listagens.
type PageRequest struct {
	Page    int `query:"page"`
	PerPage int `query:"per_page"`
}

// DefaultPage aplica os valores padrão quando Page/PerPage não vêm na query.
func (p *PageRequest) DefaultPage() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 || p.PerPage > 100 {
		p.PerPage = 20
	}
}

// PageResponse metadados de página nas respostas de listagem.
type PageResponse struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPageResponse computa os metadados a partir do total.
func NewPageResponse(page, perPage, total int) PageResponse {
	pages := total / perPage
	if total%perPage != 0 {
		pages++
	}
	return PageResponse{Page: page, PerPage: perPage, Total: total, TotalPages: pages}
}
