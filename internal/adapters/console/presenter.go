// Package console implements ports.Presenter by logging a per-tick summary.
// It stands in for a real display when no broker is configured.
package console

import (
	"context"

	"github.com/farmsight/thermalmap/internal/domain"
	"github.com/farmsight/thermalmap/internal/ports"
)

// Presenter logs frame statistics instead of rendering.
type Presenter struct {
	logger ports.Logger
}

// NewPresenter creates a console presenter.
func NewPresenter(logger ports.Logger) *Presenter {
	return &Presenter{logger: logger}
}

// Render logs the raw frame's min and max and the degraded flag.
func (p *Presenter) Render(ctx context.Context, result domain.TickResult) error {
	lo, hi := result.Raw.Values[0][0], result.Raw.Values[0][0]
	for i := range result.Raw.Values {
		for _, v := range result.Raw.Values[i] {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	p.logger.Info("frame",
		ports.Float64("min", lo),
		ports.Float64("max", hi),
		ports.Bool("degraded", result.Degraded),
	)
	return nil
}
