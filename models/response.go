package models

// ErrorResponse is the body of every non-2xx response: {"error": "..."} plus
// an optional downstream code and a debug block on deletion conflicts.
type ErrorResponse struct {
	Error string      `json:"error"`
	Code  string      `json:"code,omitempty"`
	Debug interface{} `json:"debug,omitempty"`
}

type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type StatusUpdateResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type LoginResponse struct {
	Token      string      `json:"token"`
	Restaurant *Restaurant `json:"restaurant"`
}
