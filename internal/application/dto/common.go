package dto

// ErrorResponse cuerpo de error que imprime la CLI.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
