package models

// ContactInfo identifies the person asking about availability. Name and
// email are the minimum needed to send a notification on their behalf.
type ContactInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company,omitempty"`
	Role    string `json:"role,omitempty"`
}

// Usable reports whether the contact record carries enough detail to notify
// the résumé owner.
func (c ContactInfo) Usable() bool {
	return c.Name != "" && c.Email != ""
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Question string       `json:"question"`
	UserInfo *ContactInfo `json:"user_info,omitempty"`
}
