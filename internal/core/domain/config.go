package domain

import (
	"encoding/json"
	"fmt"
)

// Per-type tunables. The admin console stores these as a JSON blob on the
// poll row; they are decoded into one typed struct per poll type exactly once,
// at the repository boundary, with documented defaults filled in.

const (
	DefaultRatingMin     = 1
	DefaultRatingMax     = 5
	DefaultMaxTextLength = 1000
)

// DefaultPointSystem maps rank position (1st, 2nd, 3rd) to points for
// ranked-choice polls. Ranks beyond the array contribute zero points.
var DefaultPointSystem = []int{3, 2, 1}

type PollConfig interface {
	pollConfig()
}

type SingleChoiceConfig struct{}

type MultipleChoiceConfig struct {
	// MaxSelections limits how many options one ballot may pick; zero means
	// no limit.
	MaxSelections int `json:"max_selections"`
}

type YesNoConfig struct {
	AllowNeutral bool `json:"allow_neutral"`
}

type RatingConfig struct {
	MinValue int `json:"min_value"`
	MaxValue int `json:"max_value"`
}

type NPSConfig struct{}

type RankedConfig struct {
	PointSystem []int `json:"point_system"`
}

type OpenTextConfig struct {
	MaxLength int `json:"max_length"`
}

func (SingleChoiceConfig) pollConfig()   {}
func (MultipleChoiceConfig) pollConfig() {}
func (YesNoConfig) pollConfig()          {}
func (RatingConfig) pollConfig()         {}
func (NPSConfig) pollConfig()            {}
func (RankedConfig) pollConfig()         {}
func (OpenTextConfig) pollConfig()       {}

// DecodeConfig parses a stored config blob into the typed config for the
// given poll type, applying defaults for absent fields. A nil or empty blob
// yields the all-defaults config.
func DecodeConfig(pollType PollType, raw []byte) (PollConfig, error) {
	if len(raw) == 0 {
		raw = []byte("{}")
	}

	switch pollType {
	case TypeMultipleChoice:
		var cfg MultipleChoiceConfig
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("invalid multiple_choice config: %w", err)
		}
		return cfg, nil
	case TypeYesNo:
		var cfg YesNoConfig
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("invalid yes_no config: %w", err)
		}
		return cfg, nil
	case TypeRatingScale:
		var cfg RatingConfig
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("invalid rating_scale config: %w", err)
		}
		if cfg.MinValue == 0 && cfg.MaxValue == 0 {
			cfg.MinValue = DefaultRatingMin
			cfg.MaxValue = DefaultRatingMax
		}
		return cfg, nil
	case TypeNPS:
		return NPSConfig{}, nil
	case TypeRanked:
		var cfg RankedConfig
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("invalid ranked config: %w", err)
		}
		if len(cfg.PointSystem) == 0 {
			cfg.PointSystem = append([]int(nil), DefaultPointSystem...)
		}
		return cfg, nil
	case TypeOpenText:
		var cfg OpenTextConfig
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("invalid open_text config: %w", err)
		}
		if cfg.MaxLength <= 0 {
			cfg.MaxLength = DefaultMaxTextLength
		}
		return cfg, nil
	default:
		// Unknown types fall back to single_choice semantics.
		return SingleChoiceConfig{}, nil
	}
}
