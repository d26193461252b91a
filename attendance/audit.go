/*
audit.go - Append-only audit trail

PURPOSE:
  Records who did what to whom. Consumed by the reconciliation engine and
  the stamp state machine; exposed read-only to the rest of the system.

FAILURE POLICY (deliberate trade-off):
  Audit writes are best-effort, NOT transactional with the primary ledger
  mutation. A failed audit write is logged to stderr and swallowed so it
  can never mask a successful booking change. Retention is capped; the
  oldest rows are pruned past a fixed count.
*/
package attendance

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
)

// DefaultAuditRetention caps the per-tenant trail length.
const DefaultAuditRetention = 5000

// Recorder writes audit entries. The zero Retention falls back to
// DefaultAuditRetention; a nil Logger falls back to the stdlib default.
type Recorder struct {
	Store     AuditStore
	Retention int
	Logger    *log.Logger
	Now       func() time.Time
}

func NewRecorder(store AuditStore) *Recorder {
	return &Recorder{Store: store, Retention: DefaultAuditRetention, Now: time.Now}
}

// Record appends one entry. Errors are logged and swallowed; the trail
// never masks the primary mutation.
func (r *Recorder) Record(ctx context.Context, tenantID TenantID, actor, action, oldValue, newValue, affectedUser string) {
	if r == nil || r.Store == nil {
		return
	}
	if affectedUser == "" {
		affectedUser = actor
	}
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	entry := AuditEntry{
		ID:           uuid.NewString(),
		TenantID:     tenantID,
		Timestamp:    now(),
		Actor:        actor,
		Action:       action,
		OldValue:     oldValue,
		NewValue:     newValue,
		AffectedUser: affectedUser,
	}
	if err := r.Store.Append(ctx, entry); err != nil {
		r.logf("audit append failed: %v", err)
		return
	}
	keep := r.Retention
	if keep <= 0 {
		keep = DefaultAuditRetention
	}
	if err := r.Store.Prune(ctx, tenantID, keep); err != nil {
		r.logf("audit prune failed: %v", err)
	}
}

func (r *Recorder) logf(format string, args ...any) {
	if r.Logger != nil {
		r.Logger.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}
