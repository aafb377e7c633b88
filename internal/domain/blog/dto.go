package blog

// CreateRequest for POST /blog. An empty slug is derived from the title.
type CreateRequest struct {
	Slug         string `json:"slug" validate:"omitempty,max=120"`
	Title        string `json:"title" validate:"required,max=200"`
	Summary      string `json:"summary" validate:"max=500"`
	BodyMarkdown string `json:"body_markdown" validate:"required"`
	Published    bool   `json:"published"`
}

// UpdateRequest for PATCH /blog/{id}. Only supplied fields change.
type UpdateRequest struct {
	Slug         *string `json:"slug" validate:"omitempty,max=120"`
	Title        *string `json:"title" validate:"omitempty,max=200"`
	Summary      *string `json:"summary" validate:"omitempty,max=500"`
	BodyMarkdown *string `json:"body_markdown"`
	Published    *bool   `json:"published"`
}
