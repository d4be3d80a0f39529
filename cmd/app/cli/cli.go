package cli

import (
	"context"

	"go.uber.org/fx"

	"emisi.dev/backend/internal/app"
	"emisi.dev/backend/internal/app/appcontext"
)

// Populate builds the CLI dependency graph and fills deps from it. The returned
// stop function releases the infrastructure connections.
func Populate[T any](ctx context.Context) (*T, func(), error) {
	var deps T
	fxApp := app.New(appcontext.Declare(appcontext.EnvCLI), fx.Populate(&deps))
	if err := fxApp.Start(ctx); err != nil {
		return nil, nil, err
	}
	return &deps, func() {
		_ = fxApp.Stop(context.Background())
	}, nil
}
