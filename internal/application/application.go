package application

import (
	"context"

	"github.com/dvdk01/urlwatch/internal/schema"
)

type Application interface {
	Start(ctx context.Context) error
	Render(stats *schema.RunStats)
}
