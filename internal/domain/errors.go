package domain

import "errors"

// Erros de domínio. Os handlers HTTP os mapeiam para status codes;
// use cases e repositórios devolvem apenas estes sentinelas (ou wraps deles).
var (
	// ErrNotFound recurso não encontrado.
	ErrNotFound = errors.New("recurso não encontrado")

	// ErrUserNotFound usuário não encontrado ou inativo.
	ErrUserNotFound = errors.New("usuário não encontrado")

	// ErrInvalidCredentials email ou senha incorretos.
	ErrInvalidCredentials = errors.New("credenciais inválidas")

	// ErrEmailAlreadyExists email de usuário já cadastrado.
	ErrEmailAlreadyExists = errors.New("email já cadastrado")

	// ErrInvalidInput dados de entrada inválidos.
	ErrInvalidInput = errors.New("dados de entrada inválidos")

	// ErrDuplicate violação de unicidade genérica.
	ErrDuplicate = errors.New("registro duplicado")

	// ErrDuplicateIdentity CNPJ ou email de cliente já cadastrado.
	ErrDuplicateIdentity = errors.New("cliente já cadastrado com este CNPJ ou email")

	// ErrInvalidPlan plano inexistente ou inativo.
	ErrInvalidPlan = errors.New("plano inválido ou inativo")

	// ErrInvalidFlagSelection bandeira inexistente, inativa ou repetida na seleção.
	ErrInvalidFlagSelection = errors.New("seleção de bandeiras inválida")

	// ErrFlagCountMismatch quantidade de bandeiras incompatível com o plano combo.
	ErrFlagCountMismatch = errors.New("quantidade de bandeiras incompatível com o plano")

	// ErrProtocolTaken protocolo recém-gerado já existe (colisão).
	ErrProtocolTaken = errors.New("protocolo já utilizado")

	// ErrProtocolExhausted esgotadas as tentativas de alocar um protocolo único.
	ErrProtocolExhausted = errors.New("não foi possível alocar um protocolo único")

	// ErrUnauthorized autenticação ausente ou inválida.
	ErrUnauthorized = errors.New("não autorizado")

	// ErrForbidden autenticado, mas sem permissão sobre o recurso.
	ErrForbidden = errors.New("acesso negado")

	// ErrConflict operação conflita com o estado atual do recurso.
	ErrConflict = errors.New("conflito de estado")
)
