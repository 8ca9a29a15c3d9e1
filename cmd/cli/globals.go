package main

import (
	"context"
	"io"

	"librero/cmd/cli/render"
	"librero/internal/models"
	"librero/internal/services"
)

// Catalog supplies the works the commands operate on.
type Catalog interface {
	Load(ctx context.Context, limit int) []models.Work
}

type Globals struct {
	Catalog Catalog
	Engine  *services.Engine
	// Store is nil when no database is configured.
	Store        services.BookImporter
	In           io.Reader
	Out          io.Writer
	Render       render.Renderer
	CatalogLimit int
}

func (g *Globals) catalogLimit() int {
	if g.CatalogLimit <= 0 {
		return services.DefaultLimit
	}
	return g.CatalogLimit
}
