package domain

import (
	"time"

	"github.com/google/uuid"
)

type PollType string

const (
	TypeSingleChoice   PollType = "single_choice"
	TypeMultipleChoice PollType = "multiple_choice"
	TypeYesNo          PollType = "yes_no"
	TypeRatingScale    PollType = "rating_scale"
	TypeNPS            PollType = "nps"
	TypeRanked         PollType = "ranked"
	TypeOpenText       PollType = "open_text"
)

type PollStatus string

const (
	StatusDraft     PollStatus = "draft"
	StatusScheduled PollStatus = "scheduled"
	StatusOpen      PollStatus = "open"
	StatusClosed    PollStatus = "closed"
)

type Poll struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Type        PollType     `json:"type"`
	Status      PollStatus   `json:"status"`
	ScheduledAt *time.Time   `json:"scheduled_at,omitempty"`
	ClosedAt    *time.Time   `json:"closed_at,omitempty"`
	Config      PollConfig   `json:"-"`
	CreatorID   uuid.UUID    `json:"-"`
	CreatorPlan string       `json:"-"`
	Options     []PollOption `json:"options,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

type PollOption struct {
	ID         uuid.UUID `json:"id"`
	PollID     uuid.UUID `json:"poll_id"`
	Label      string    `json:"label"`
	OrderIndex int       `json:"order_index"`
	CreatedAt  time.Time `json:"created_at"`
}

// HasOption reports whether the option belongs to this poll.
func (p *Poll) HasOption(optionID uuid.UUID) bool {
	for _, opt := range p.Options {
		if opt.ID == optionID {
			return true
		}
	}
	return false
}
