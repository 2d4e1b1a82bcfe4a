// Package dto defines API request/response types and error handling.
//
// Every response uses the same envelope {code, message, data}; the HTTP
// status mirrors the envelope code. Request types carry query/form/json
// struct tags for parameter binding and implement Validatable.
package dto

// Envelope is the wrapper used by every API response.
type Envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// OK returns a 200 envelope with the conventional "success" message.
func OK(data any) *Envelope {
	return &Envelope{Code: 200, Message: "success", Data: data}
}

// Message returns a 200 envelope with a custom message.
func Message(message string, data any) *Envelope {
	return &Envelope{Code: 200, Message: message, Data: data}
}
