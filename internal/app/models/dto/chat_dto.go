package dto

// ChatRequest is the body of POST /api/ai-chat
type ChatRequest struct {
	Question string `json:"question"`
}

// ChatResponse always reports success; Answer holds either the model's
// reply or the fallback text.
type ChatResponse struct {
	Success bool   `json:"success"`
	Answer  string `json:"answer"`
}
