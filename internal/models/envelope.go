package models

// APIResponse is the envelope every JSON endpoint answers with, except the
// AI proxy endpoints whose bodies are fixed by the client contract.
type APIResponse[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// OK wraps data in a success envelope.
func OK[T any](data T) APIResponse[T] {
	return APIResponse[T]{Success: true, Data: &data}
}

// OKMessage is a success envelope without payload.
func OKMessage(message string) APIResponse[struct{}] {
	return APIResponse[struct{}]{Success: true, Message: message}
}

// Fail is an error envelope.
func Fail(err string) APIResponse[struct{}] {
	return APIResponse[struct{}]{Success: false, Error: err}
}
