package cli

import (
	"context"

	"github.com/madhankd/madhanboard-v2/internal/app"
)

type appKey struct{}

// WithApp returns a context carrying an already opened app. Commands run
// with it use the app instead of opening their own, and leave it open.
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, appKey{}, a)
}

// GetCLIFromContext returns a CLI for the app carried by ctx, or opens a new
// one from the config when there is none
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if ctx != nil {
		if a, ok := ctx.Value(appKey{}).(*app.App); ok && a != nil {
			return &CLI{App: a}, nil
		}
	}
	return NewCLI(ctx)
}
