package domain

import "time"

// EffectiveStatus derives the status a poll actually has at a given instant
// from its stored status plus its schedule timestamps. Time advances
// independently of writes, so callers must derive on every decision instead
// of trusting the stored field.
func EffectiveStatus(stored PollStatus, scheduledAt, closedAt *time.Time, now time.Time) PollStatus {
	switch stored {
	case StatusClosed:
		return StatusClosed
	case StatusDraft:
		if scheduledAt != nil && !scheduledAt.After(now) {
			return StatusOpen
		}
		return StatusDraft
	case StatusScheduled:
		if scheduledAt != nil && !scheduledAt.After(now) {
			if closedAt != nil && !closedAt.After(now) {
				return StatusClosed
			}
			return StatusOpen
		}
		return StatusScheduled
	case StatusOpen:
		if closedAt != nil && !closedAt.After(now) {
			return StatusClosed
		}
		return StatusOpen
	default:
		return stored
	}
}

// EffectiveStatus derives the poll's current status from its schedule.
func (p *Poll) EffectiveStatus(now time.Time) PollStatus {
	return EffectiveStatus(p.Status, p.ScheduledAt, p.ClosedAt, now)
}

// CanAcceptVotes reports whether a ballot may be admitted right now.
func (p *Poll) CanAcceptVotes(now time.Time) bool {
	return p.EffectiveStatus(now) == StatusOpen
}

// VisibleToPublic reports whether the poll may be shown on public pages:
// open polls and closed polls (for their results), never drafts or
// not-yet-started schedules.
func (p *Poll) VisibleToPublic(now time.Time) bool {
	s := p.EffectiveStatus(now)
	return s == StatusOpen || s == StatusClosed
}
