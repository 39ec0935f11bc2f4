package domain

// ErrorResponse é a estrutura padronizada para respostas de erro na API.
// @Description Estrutura padronizada para respostas de erro na API.
type ErrorResponse struct {
	Code     int    `json:"code" example:"400"`
	Category string `json:"category" example:"INVALID_STATE"`
	Message  string `json:"message" example:"Estado inválido: a contagem já está fechada."`
}
