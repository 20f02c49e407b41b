package types

// Response is the unified JSON envelope for all API endpoints.
type Response struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Errors     []string    `json:"errors,omitempty"`
	Pagination *PageInfo   `json:"pagination,omitempty"`
	Timestamp  string      `json:"timestamp,omitempty"`
}

// PageInfo contains pagination information for list responses.
type PageInfo struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}
