// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recommend

// State is a step of one recommendation run.
type State int

const (
	Initial State = iota
	Suggested
	Retrying
	Matched
	NoMatch
	Done
)

var stateNames = [...]string{
	Initial:   "initial",
	Suggested: "suggested",
	Retrying:  "retrying",
	Matched:   "matched",
	NoMatch:   "no_match",
	Done:      "done",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

