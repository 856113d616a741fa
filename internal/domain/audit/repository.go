package audit

import (
	"context"

	"github.com/bazaartech/backend/internal/domain/shared"
)

// EntryRepository persists audit entries. The log is append-only; there is
// deliberately no update or delete operation.
type EntryRepository interface {
	Save(ctx context.Context, entry *Entry) error
	FindAll(ctx context.Context, filter shared.Filter) ([]Entry, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
