package admin

import "github.com/souq-next/internal/provider"

// Handler serves the back-office API.
type Handler struct {
	*provider.Container
}

// New creates a back-office handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
