package engine

// State is a node of the per-event evaluation state machine.
type State int

const (
	StateStart State = iota
	StateSkipped
	StateUnconfigured
	StateNoMatch
	StateBanned
	StateBanFailed
)

var stateNames = map[State]string{
	StateStart:        "start",
	StateSkipped:      "skipped",
	StateUnconfigured: "unconfigured",
	StateNoMatch:      "no_match",
	StateBanned:       "banned",
	StateBanFailed:    "ban_failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// SkipReason explains a StateSkipped result.
type SkipReason string

const (
	SkipNone          SkipReason = ""
	SkipNotBannable   SkipReason = "not_bannable"
	SkipAllowlistUser SkipReason = "allowlist_user"
	SkipAllowlistRole SkipReason = "allowlist_role"
)
