package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CallableErrorResponse cuerpo de error de las funciones invocables remotas.
// Code: invalid-argument | not-found | aborted | permission-denied | unauthenticated | internal.
type CallableErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
