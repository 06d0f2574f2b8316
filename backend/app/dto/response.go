package dto

// Response is the envelope of every API response.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// MeResponse always carries data, null for anonymous callers.
type MeResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Data    *UserResponse `json:"data"`
}
