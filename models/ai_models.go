package models

// ChatMessage is one prior turn of the conversation, as sent by the client.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "model"
	Content string `json:"content"`
}

// ChatRequest is the POST /chatbot body.
type ChatRequest struct {
	Question string        `json:"question"`
	History  []ChatMessage `json:"history"`
}

// VisualSearchRequest is the POST /visual-search body. ImageBase64 may carry
// a data-URI prefix declaring the MIME type.
type VisualSearchRequest struct {
	ImageBase64 string `json:"image_base64"`
}
