package blog

import "errors"

var (
	// ErrPostNotFound when the post does not exist or is not visible
	ErrPostNotFound = errors.New("post not found")

	// ErrSlugTaken when another post already uses the slug
	ErrSlugTaken = errors.New("slug already in use")
)
