package sheets

import (
	"context"

	"budgetbook/internal/core"
)

// StateMirror replaces an external copy of the ledger with the given state.
type StateMirror interface {
	Mirror(ctx context.Context, s core.State) error
}
