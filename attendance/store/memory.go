// Package store provides in-memory implementations of the attendance
// storage interfaces, for tests and development.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/zeitwerk/attendance-engine/attendance"
)

// =============================================================================
// MEMORY - Shared backing state for all sub-stores
// =============================================================================

// Memory bundles one implementation per storage interface, all behind a
// single RWMutex. Copies go in and out so callers never alias internal
// state.
type Memory struct {
	Bookings *MemoryBookings
	Users    *MemoryUsers
	Requests *MemoryRequests
	Audit    *MemoryAudit
}

type memoryState struct {
	mu       sync.RWMutex
	bookings map[attendance.BookingID]attendance.Booking
	users    map[attendance.UserID]attendance.User
	requests map[attendance.RequestID]attendance.Request
	audit    []attendance.AuditEntry
}

func NewMemory() *Memory {
	s := &memoryState{
		bookings: make(map[attendance.BookingID]attendance.Booking),
		users:    make(map[attendance.UserID]attendance.User),
		requests: make(map[attendance.RequestID]attendance.Request),
	}
	return &Memory{
		Bookings: &MemoryBookings{s: s},
		Users:    &MemoryUsers{s: s},
		Requests: &MemoryRequests{s: s},
		Audit:    &MemoryAudit{s: s},
	}
}

// =============================================================================
// BOOKING STORE
// =============================================================================

type MemoryBookings struct{ s *memoryState }

var _ attendance.BookingStore = (*MemoryBookings)(nil)

func (m *MemoryBookings) Insert(_ context.Context, b *attendance.Booking) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if b.Open() {
		for _, existing := range m.s.bookings {
			if existing.UserID == b.UserID && existing.Date.Equal(b.Date) && existing.Open() {
				return attendance.ErrDuplicateOpenBooking
			}
		}
	}
	m.s.bookings[b.ID] = copyBooking(b)
	return nil
}

func (m *MemoryBookings) Update(_ context.Context, b *attendance.Booking) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.bookings[b.ID]; !ok {
		return attendance.ErrBookingNotFound
	}
	m.s.bookings[b.ID] = copyBooking(b)
	return nil
}

func (m *MemoryBookings) Get(_ context.Context, id attendance.BookingID) (*attendance.Booking, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	b, ok := m.s.bookings[id]
	if !ok {
		return nil, attendance.ErrBookingNotFound
	}
	out := copyBooking(&b)
	return &out, nil
}

func (m *MemoryBookings) FindOpen(_ context.Context, userID attendance.UserID, date attendance.Date) (*attendance.Booking, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	for _, b := range m.s.bookings {
		if b.UserID == userID && b.Date.Equal(date) && b.Open() {
			out := copyBooking(&b)
			return &out, nil
		}
	}
	return nil, nil
}

func (m *MemoryBookings) ListDay(_ context.Context, userID attendance.UserID, date attendance.Date) ([]attendance.Booking, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	var out []attendance.Booking
	for _, b := range m.s.bookings {
		if b.UserID == userID && b.Date.Equal(date) {
			out = append(out, copyBooking(&b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out, nil
}

func (m *MemoryBookings) List(_ context.Context, tenantID attendance.TenantID, f attendance.BookingFilter) ([]attendance.Booking, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	var out []attendance.Booking
	for _, b := range m.s.bookings {
		if b.TenantID != tenantID {
			continue
		}
		if f.UserID != "" && b.UserID != f.UserID {
			continue
		}
		if !f.From.IsZero() && b.Date.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && b.Date.After(f.To) {
			continue
		}
		if f.Type != "" && b.Type != f.Type {
			continue
		}
		out = append(out, copyBooking(&b))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].Start > out[j].Start
	})
	return out, nil
}

func (m *MemoryBookings) DeleteByTypeInRange(_ context.Context, userID attendance.UserID, span attendance.Period, t attendance.BookingType) (int, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	removed := 0
	for id, b := range m.s.bookings {
		if b.UserID == userID && b.Type == t && span.Contains(b.Date) {
			delete(m.s.bookings, id)
			removed++
		}
	}
	return removed, nil
}

func copyBooking(b *attendance.Booking) attendance.Booking {
	out := *b
	out.History = append([]attendance.HistoryEntry(nil), b.History...)
	return out
}

// =============================================================================
// USER STORE
// =============================================================================

type MemoryUsers struct{ s *memoryState }

var _ attendance.UserStore = (*MemoryUsers)(nil)

func (m *MemoryUsers) Get(_ context.Context, id attendance.UserID) (*attendance.User, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	u, ok := m.s.users[id]
	if !ok {
		return nil, attendance.ErrUserNotFound
	}
	out := u
	return &out, nil
}

func (m *MemoryUsers) GetByCard(_ context.Context, cardID string) (*attendance.User, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	for _, u := range m.s.users {
		if u.CardID != "" && u.CardID == cardID && u.Active {
			out := u
			return &out, nil
		}
	}
	return nil, attendance.ErrUnknownCard
}

func (m *MemoryUsers) List(_ context.Context, tenantID attendance.TenantID) ([]attendance.User, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	var out []attendance.User
	for _, u := range m.s.users {
		if u.TenantID == tenantID {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayName < out[j].DisplayName })
	return out, nil
}

func (m *MemoryUsers) Save(_ context.Context, u *attendance.User) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.users[u.ID] = *u
	return nil
}

// =============================================================================
// REQUEST STORE
// =============================================================================

type MemoryRequests struct{ s *memoryState }

var _ attendance.RequestStore = (*MemoryRequests)(nil)

func (m *MemoryRequests) Insert(_ context.Context, r *attendance.Request) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.requests[r.ID] = *r
	return nil
}

func (m *MemoryRequests) Get(_ context.Context, id attendance.RequestID) (*attendance.Request, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	r, ok := m.s.requests[id]
	if !ok {
		return nil, attendance.ErrRequestNotFound
	}
	out := r
	return &out, nil
}

func (m *MemoryRequests) UpdateStatus(_ context.Context, id attendance.RequestID, status attendance.RequestStatus) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	r, ok := m.s.requests[id]
	if !ok {
		return attendance.ErrRequestNotFound
	}
	r.Status = status
	m.s.requests[id] = r
	return nil
}

func (m *MemoryRequests) MarkSeen(_ context.Context, id attendance.RequestID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	r, ok := m.s.requests[id]
	if !ok {
		return attendance.ErrRequestNotFound
	}
	r.Seen = true
	m.s.requests[id] = r
	return nil
}

func (m *MemoryRequests) Delete(_ context.Context, id attendance.RequestID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.requests[id]; !ok {
		return attendance.ErrRequestNotFound
	}
	delete(m.s.requests, id)
	return nil
}

func (m *MemoryRequests) List(_ context.Context, tenantID attendance.TenantID, f attendance.RequestFilter) ([]attendance.Request, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	var out []attendance.Request
	for _, r := range m.s.requests {
		u, ok := m.s.users[r.UserID]
		if !ok || u.TenantID != tenantID {
			continue
		}
		if f.UserID != "" && r.UserID != f.UserID {
			continue
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// =============================================================================
// AUDIT STORE
// =============================================================================

type MemoryAudit struct{ s *memoryState }

var _ attendance.AuditStore = (*MemoryAudit)(nil)

func (m *MemoryAudit) Append(_ context.Context, e attendance.AuditEntry) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.audit = append(m.s.audit, e)
	return nil
}

func (m *MemoryAudit) Query(_ context.Context, tenantID attendance.TenantID, f attendance.AuditFilter) ([]attendance.AuditEntry, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	var out []attendance.AuditEntry
	for _, e := range m.s.audit {
		if e.TenantID != tenantID {
			continue
		}
		if f.Participant != "" && e.Actor != f.Participant && e.AffectedUser != f.Participant {
			continue
		}
		if !f.From.IsZero() && attendance.DateOf(e.Timestamp).Before(f.From) {
			continue
		}
		if !f.To.IsZero() && attendance.DateOf(e.Timestamp).After(f.To) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *MemoryAudit) Prune(_ context.Context, tenantID attendance.TenantID, keep int) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var tenant []int
	for i, e := range m.s.audit {
		if e.TenantID == tenantID {
			tenant = append(tenant, i)
		}
	}
	excess := len(tenant) - keep
	if excess <= 0 {
		return nil
	}
	// Append order is oldest-first; drop the first excess tenant rows.
	drop := make(map[int]bool, excess)
	for _, i := range tenant[:excess] {
		drop[i] = true
	}
	kept := m.s.audit[:0]
	for i, e := range m.s.audit {
		if !drop[i] {
			kept = append(kept, e)
		}
	}
	m.s.audit = kept
	return nil
}
