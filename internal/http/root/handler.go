package root

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	applog "github.com/janisto/huma-hello/internal/platform/logging"
)

// Options tune the root handler.
type Options struct {
	// Delay holds each response back, simulating a slow upstream. Zero disables it.
	Delay time.Duration
}

// Register wires the root route into the provided API router.
func Register(api huma.API, opts Options) {
	h := handler{delay: opts.Delay}
	huma.Register(api, huma.Operation{
		OperationID: "get-root",
		Method:      http.MethodGet,
		Path:        "/",
		Summary:     "Greet the world",
		Description: "Returns the fixed greeting `{\"hello\": \"world\"}`.",
		Errors:      []int{http.StatusServiceUnavailable},
	}, h.get)
}

type handler struct {
	delay time.Duration
}

func (h handler) get(ctx context.Context, _ *struct{}) (*Output, error) {
	if h.delay > 0 {
		if err := wait(ctx, h.delay); err != nil {
			applog.LogWarn(ctx, "root request abandoned during delay", zap.Duration("delay", h.delay), zap.Error(err))
			return nil, huma.Error503ServiceUnavailable("request cancelled before the response was ready")
		}
	}
	applog.LogDebug(ctx, "root get", zap.String("path", "/"))
	return &Output{Body: Greeting{Hello: "world"}}, nil
}

func wait(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
