package aircraft

import (
	"net/http"
	"strconv"
)

// CreateRequest for POST /aircraft
type CreateRequest struct {
	Make            string  `json:"make" validate:"required,max=100"`
	Model           string  `json:"model" validate:"required,max=100"`
	Year            int     `json:"year" validate:"required,min=1903,max=2100"`
	Registration    string  `json:"registration" validate:"required,max=20"`
	Category        string  `json:"category" validate:"required,aircraft_category"`
	PriceCents      int64   `json:"price_cents" validate:"min=0"`
	Currency        string  `json:"currency" validate:"omitempty,len=3"`
	TotalTimeHours  float64 `json:"total_time_hours" validate:"min=0"`
	EngineTimeHours float64 `json:"engine_time_hours" validate:"min=0"`
	LocationCity    string  `json:"location_city" validate:"max=100"`
	LocationCountry string  `json:"location_country" validate:"max=100"`
	Description     string  `json:"description" validate:"max=10000"`
	Status          string  `json:"status" validate:"omitempty,listing_status"`
}

// UpdateRequest for PATCH /aircraft/{id}. Only supplied fields change.
type UpdateRequest struct {
	Make            *string  `json:"make" validate:"omitempty,max=100"`
	Model           *string  `json:"model" validate:"omitempty,max=100"`
	Year            *int     `json:"year" validate:"omitempty,min=1903,max=2100"`
	Registration    *string  `json:"registration" validate:"omitempty,max=20"`
	Category        *string  `json:"category" validate:"omitempty,aircraft_category"`
	PriceCents      *int64   `json:"price_cents" validate:"omitempty,min=0"`
	Currency        *string  `json:"currency" validate:"omitempty,len=3"`
	TotalTimeHours  *float64 `json:"total_time_hours" validate:"omitempty,min=0"`
	EngineTimeHours *float64 `json:"engine_time_hours" validate:"omitempty,min=0"`
	LocationCity    *string  `json:"location_city" validate:"omitempty,max=100"`
	LocationCountry *string  `json:"location_country" validate:"omitempty,max=100"`
	Description     *string  `json:"description" validate:"omitempty,max=10000"`
	Status          *string  `json:"status" validate:"omitempty,listing_status"`
}

// FilterFromQuery reads list filters from URL query parameters
func FilterFromQuery(r *http.Request) Filter {
	q := r.URL.Query()

	f := Filter{
		Category: q.Get("category"),
		Make:     q.Get("make"),
	}
	if v, err := strconv.ParseInt(q.Get("price_min"), 10, 64); err == nil {
		f.PriceMinCents = v
	}
	if v, err := strconv.ParseInt(q.Get("price_max"), 10, 64); err == nil {
		f.PriceMaxCents = v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		f.Limit = v
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil {
		f.Offset = v
	}
	return f
}
