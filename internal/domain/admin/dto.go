package admin

// LoginRequest for POST /admin/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the access token and the account it belongs to
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Admin       *Admin `json:"admin"`
}
