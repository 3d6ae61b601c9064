package entity

// Status de uma matrícula (do cliente como um todo ou de cada bandeira).
type Status string

const (
	StatusPending    Status = "pending"
	StatusInAnalysis Status = "in_analysis"
	StatusApproved   Status = "approved"
)

// ValidStatus informa se o valor é um status reconhecido.
func ValidStatus(s Status) bool {
	return s == StatusPending || s == StatusInAnalysis || s == StatusApproved
}

// DeriveOverallStatus computa o status geral do cliente a partir dos status
// das bandeiras, com a ordem total pending > in_analysis > approved: basta
// uma bandeira pendente para o cliente ser pendente; aprovado exige todas
// aprovadas. Lista vazia preserva o status atual.
func DeriveOverallStatus(current Status, flagStatuses []Status) Status {
	if len(flagStatuses) == 0 {
		return current
	}

	result := StatusApproved
	for _, s := range flagStatuses {
		switch s {
		case StatusPending:
			return StatusPending
		case StatusInAnalysis:
			result = StatusInAnalysis
		}
	}
	return result
}
