package domain

// UnlimitedVotes marks a plan without a per-poll vote cap.
const UnlimitedVotes = -1

// PlanFeatures is the read-only feature set of a creator's subscription plan,
// resolved from the plan catalog. The vote path only consults
// MaxVotesPerPoll; the remaining fields belong to the admin console's
// poll-creation checks.
type PlanFeatures struct {
	MaxActivePolls  int
	MaxVotesPerPoll int
	PollTypes       []PollType
}

// AllowsType reports whether the plan may create polls of the given type.
func (f PlanFeatures) AllowsType(t PollType) bool {
	for _, allowed := range f.PollTypes {
		if allowed == t {
			return true
		}
	}
	return false
}

// UnlimitedVotesPerPoll reports whether the per-poll vote cap is disabled.
func (f PlanFeatures) UnlimitedVotesPerPoll() bool {
	return f.MaxVotesPerPoll == UnlimitedVotes
}
