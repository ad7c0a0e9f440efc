package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// ActivityLogger is the audit-log sink. Every successful mutating command
// emits exactly one human-readable line attributed to the acting user; a nil
// actor marks actions taken by the scheduler rather than a person.
// Idempotent no-ops mutate nothing and therefore log nothing.
//
// Audit failures must not undo an already committed command; callers log
// them and move on.
type ActivityLogger interface {
	Log(ctx context.Context, actorID *kernel.UUID, message string) error
}
