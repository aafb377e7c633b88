package admin

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/skylist/skylist-api/internal/middleware"
	"github.com/skylist/skylist-api/internal/pkg/response"
	"github.com/skylist/skylist-api/internal/pkg/validator"
)

// Handler handles admin HTTP requests
type Handler struct {
	service Service
}

// NewHandler creates admin handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Login handles POST /admin/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Unauthorized(w, "Invalid email or password")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, resp)
}

// Me handles GET /admin/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	adminID := middleware.GetAdminID(r.Context())

	a, err := h.service.GetByID(r.Context(), adminID)
	if err != nil {
		if errors.Is(err, ErrAdminNotFound) {
			response.Unauthorized(w, "Account no longer exists")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, a)
}
