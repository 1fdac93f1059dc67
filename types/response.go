package types

// ApiResponse is the envelope every endpoint returns.
type ApiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// Ok wraps payload data in a success envelope.
func Ok(data interface{}) ApiResponse {
	return ApiResponse{Success: true, Data: data}
}

// OkMessage wraps payload data together with a human-readable message.
func OkMessage(data interface{}, message string) ApiResponse {
	return ApiResponse{Success: true, Data: data, Message: message}
}

// Fail builds an error envelope.
func Fail(err string) ApiResponse {
	return ApiResponse{Success: false, Error: err}
}
