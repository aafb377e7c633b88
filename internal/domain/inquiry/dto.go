package inquiry

// CreateRequest for POST /aircraft/{id}/inquiries
type CreateRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,max=30"`
	Message string `json:"message" validate:"required,max=5000"`
}
