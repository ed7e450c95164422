// Package session tracks the provider-issued conversation identifier that
// keeps multi-turn context alive on the provider side. The provider is the
// source of truth for the conversation itself; this package only bookkeeps
// the identifier. It holds no state and does no I/O: the caller owns the
// identifier and must persist Effective across turns.
package session

// Reconciliation reports the identifier to carry into the next turn.
type Reconciliation struct {
	Effective string
	Changed   bool
}

// Reconcile merges the identifier held by the caller with the one returned
// by the provider. A non-empty reply id that differs from current is
// adopted; otherwise current is kept.
func Reconcile(current, replyID string) Reconciliation {
	if replyID != "" && replyID != current {
		return Reconciliation{Effective: replyID, Changed: true}
	}
	return Reconciliation{Effective: current, Changed: false}
}
