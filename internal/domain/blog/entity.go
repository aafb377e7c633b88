package blog

import (
	"time"

	"github.com/google/uuid"
)

// Post is one blog article. The markdown body is authoritative; the HTML
// rendering is derived at write time.
type Post struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Slug         string    `db:"slug" json:"slug"`
	Title        string    `db:"title" json:"title"`
	Summary      string    `db:"summary" json:"summary"`
	BodyMarkdown string    `db:"body_markdown" json:"body_markdown"`
	BodyHTML     string    `db:"body_html" json:"body_html"`
	Published    bool      `db:"published" json:"published"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
