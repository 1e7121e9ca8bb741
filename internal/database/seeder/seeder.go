package seeder

import (
	"context"

	"skill-community/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
