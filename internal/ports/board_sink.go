package ports

import (
	"context"

	"github.com/mfern/chattally/internal/domain"
)

// BoardSink receives the ranked snapshot on every publish tick. Publish
// replaces whatever the sink held before; it never appends.
type BoardSink interface {
	Publish(ctx context.Context, entries []domain.Entry) error
}
