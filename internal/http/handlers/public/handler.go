package public

import "github.com/souq-next/internal/provider"

// Handler serves the storefront API.
type Handler struct {
	*provider.Container
}

// New creates a storefront handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
