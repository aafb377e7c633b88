package inquiry

import (
	"time"

	"github.com/google/uuid"
)

// Inquiry is one buyer contact request against a listing
type Inquiry struct {
	ID         uuid.UUID `db:"id" json:"id"`
	AircraftID uuid.UUID `db:"aircraft_id" json:"aircraft_id"`
	Name       string    `db:"name" json:"name"`
	Email      string    `db:"email" json:"email"`
	Phone      string    `db:"phone" json:"phone"`
	Message    string    `db:"message" json:"message"`
	Handled    bool      `db:"handled" json:"handled"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
