package models

// Response status values for POST /chat.
const (
	StatusSuccess          = "success"
	StatusUserInfoRequired = "user_info_required"
	StatusFallback         = "fallback"
)

// ChatResponse is the success body of POST /chat.
type ChatResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Status   string `json:"status"`
}

// ErrorResponse is the body of any non-200 response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse reports the initialization state of the external
// collaborators. Served with HTTP 200 regardless of status.
type HealthResponse struct {
	Status             string `json:"status"`
	OpenAIConfigured   bool   `json:"openai_configured"`
	VectorIndexReady   bool   `json:"vector_index_ready"`
	NotifierConfigured bool   `json:"notifier_configured"`
}
