package responses

type ResponseDTO struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponseDTO struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Kind       string `json:"kind,omitempty"`
	DevMessage string `json:"dev_message,omitempty"`
}
