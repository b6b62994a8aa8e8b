package ports

import (
	"context"

	"github.com/farmsight/thermalmap/internal/domain"
)

// Presenter consumes one (raw, interpolated) pair per tick. The rendering
// technology is outside the pipeline; a Render error is contained at the
// tick boundary and the previous presented state remains in effect.
type Presenter interface {
	Render(ctx context.Context, result domain.TickResult) error
}
