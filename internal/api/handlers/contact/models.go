package contact

// SubmitRequest HTTP request model
type SubmitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// SubmitResponse HTTP response model
type SubmitResponse struct {
	Message   string `json:"message"`
	ContactID string `json:"contactId"`
}
