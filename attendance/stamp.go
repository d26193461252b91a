/*
stamp.go - The clock-in/clock-out state machine

PURPOSE:
  Governs the ABSENT -> PRESENT -> ABSENT transitions of a (user, date)
  cell via stamp events. Two entry points share one internal transition:

    StampByBadge:  hardware channel, stateless toggle. The next action is
                   derived purely from the presence of an open booking;
                   the terminal supplies no intent.
    StampByAction: web channel, caller supplies start|end explicitly.

TRANSITIONS:
  clock-in  while ABSENT:  creates an open booking (type per channel).
                           Blocked with ErrLeaveDayBlocked when the day
                           already holds Urlaub/Krank.
  clock-in  while PRESENT: web channel: idempotent no-op.
                           badge channel never sees this case - the toggle
                           resolves to clock-out first.
  clock-out while PRESENT: closes the open booking at the current time.
  clock-out while ABSENT:  ErrNoOpenBooking, surfaced, state unchanged.

CONCURRENCY:
  The read-check-then-write sequence runs under the per-(user, date)
  stripe in DayLocks, so concurrent stamps for the same user/day
  serialize and the one-open-booking invariant holds. The storage layer's
  partial unique index is the backstop.
*/
package attendance

import (
	"context"
	"time"
)

// StampService executes stamp events against the ledger.
type StampService struct {
	Ledger *Ledger
	Users  UserStore
	Audit  *Recorder
	Locks  *DayLocks

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

func NewStampService(ledger *Ledger, users UserStore, audit *Recorder, locks *DayLocks) *StampService {
	return &StampService{Ledger: ledger, Users: users, Audit: audit, Locks: locks, Now: time.Now}
}

func (s *StampService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// StampByBadge handles a hardware badge scan. The card resolves the user;
// the action is inferred from ledger state (toggle).
func (s *StampService) StampByBadge(ctx context.Context, cardID string) (*StampResult, error) {
	if cardID == "" {
		return nil, ErrUnknownCard
	}
	user, err := s.Users.GetByCard(ctx, cardID)
	if err != nil {
		return nil, err
	}
	return s.stamp(ctx, user, ChannelBadge, "")
}

// StampByAction handles a self-service web stamp with explicit intent.
func (s *StampService) StampByAction(ctx context.Context, userID UserID, action StampAction) (*StampResult, error) {
	if action != ActionStart && action != ActionEnd {
		return nil, ErrUnknownType
	}
	user, err := s.Users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.stamp(ctx, user, ChannelWeb, action)
}

// stamp is the shared transition function. action is empty on the badge
// channel and resolved inside the critical section.
func (s *StampService) stamp(ctx context.Context, user *User, channel StampChannel, action StampAction) (*StampResult, error) {
	now := s.now()
	date := DateOf(now)
	clock := ClockTime(now.Hour(), now.Minute())

	var result *StampResult
	err := s.Locks.WithDay(user.ID, date, func() error {
		blocked, err := s.Ledger.LeaveBlocked(ctx, user.ID, date)
		if err != nil {
			return err
		}
		if blocked {
			return ErrLeaveDayBlocked
		}

		open, err := s.Ledger.FindOpen(ctx, user.ID, date)
		if err != nil {
			return err
		}

		// Badge toggles on every scan: present -> out, absent -> in.
		if channel == ChannelBadge {
			if open != nil {
				action = ActionEnd
			} else {
				action = ActionStart
			}
		}

		switch action {
		case ActionStart:
			if open != nil {
				// Repeated clock-in on the web channel: idempotent no-op.
				result = &StampResult{User: user, Booking: open, Direction: ActionStart, Time: open.Start, Type: open.Type, NoOp: true}
				return nil
			}
			t := TypeWebTerminal
			if channel == ChannelBadge {
				t = TypeBadge
			}
			b, err := s.Ledger.OpenFromStamp(ctx, user, date, clock, t)
			if err != nil {
				return err
			}
			result = &StampResult{User: user, Booking: b, Direction: ActionStart, Time: clock, Type: t}
			return nil

		case ActionEnd:
			b, err := s.Ledger.CloseFromStamp(ctx, user.ID, date, clock)
			if err != nil {
				return err
			}
			result = &StampResult{User: user, Booking: b, Direction: ActionEnd, Time: clock, Type: b.Type}
			return nil
		}
		return ErrUnknownType
	})
	if err != nil {
		return nil, err
	}

	if !result.NoOp {
		s.audit(ctx, user, channel, result.Direction)
	}
	return result, nil
}

// audit labels follow the legacy terminal protocol: "Kommen" / "Gehen".
func (s *StampService) audit(ctx context.Context, user *User, channel StampChannel, action StampAction) {
	direction := "Kommen"
	if action == ActionEnd {
		direction = "Gehen"
	}
	actor := user.DisplayName
	label := "Stempeln"
	if channel == ChannelBadge {
		actor = "Terminal"
		label = "Chip Stempelung"
	}
	s.Audit.Record(ctx, user.TenantID, actor, label, "", direction, user.DisplayName)
}
