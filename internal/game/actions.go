// internal/game/actions.go
//
// Discrete action model. Every player click becomes one Action, and Dispatch
// applies it at most once: a sequenced action whose Seq is not above the last
// applied Seq is rejected with ErrStaleAction and changes nothing. A click
// that is delivered twice (retry, re-render) therefore cannot advance the quiz
// twice or score a round twice.

package game

import "fmt"

// ActionKind names a player action.
type ActionKind string

const (
	ActSetMode     ActionKind = "set_mode"
	ActReset       ActionKind = "reset"
	ActGuess       ActionKind = "guess"
	ActNextListing ActionKind = "next_listing"
	ActChoose      ActionKind = "choose"
	ActCheckAnswer ActionKind = "check_answer"
	ActAdvance     ActionKind = "advance"
)

// modeOf maps mode-bound actions to their mode.
var modeOf = map[ActionKind]Mode{
	ActGuess:       ModePriceGuess,
	ActNextListing: ModePriceGuess,
	ActChoose:      ModeComparison,
	ActCheckAnswer: ModeQuiz,
	ActAdvance:     ModeQuiz,
}

// Action is one player click. Seq is a per-session click counter chosen by the
// client; 0 means unsequenced and is always applied, except for ActAdvance,
// which must be sequenced.
type Action struct {
	Seq    uint64     `json:"seq"`
	Kind   ActionKind `json:"kind"`
	Mode   Mode       `json:"mode,omitempty"`
	Amount float64    `json:"amount,omitempty"`
	Side   Side       `json:"side,omitempty"`
	Label  string     `json:"label,omitempty"`
}

// Outcome carries whichever result the dispatched action produced.
type Outcome struct {
	Guess      *GuessResult      `json:"guess,omitempty"`
	Comparison *ComparisonResult `json:"comparison,omitempty"`
	Answer     *AnswerResult     `json:"answer,omitempty"`
}

// Dispatch applies a to the session exactly once.
//
// Ordering:
//   - an unsequenced advance is rejected before anything else;
//   - stale sequence numbers are rejected next;
//   - the sequence number is consumed even when the action itself fails,
//     because the click happened;
//   - mode-bound actions must match the active mode.
func (s *Session) Dispatch(a Action) (Outcome, error) {
	if a.Kind == ActAdvance && a.Seq == 0 {
		return Outcome{}, ErrSeqRequired
	}
	if a.Seq != 0 {
		if a.Seq <= s.LastSeq {
			return Outcome{}, ErrStaleAction
		}
		s.LastSeq = a.Seq
	}
	s.Notice = ""
	s.Touch()

	if m, ok := modeOf[a.Kind]; ok && m != s.Mode {
		return Outcome{}, fmt.Errorf("%w: %s in %s", ErrWrongMode, a.Kind, s.Mode)
	}

	var out Outcome
	var err error
	switch a.Kind {
	case ActSetMode:
		err = s.SetMode(a.Mode)
	case ActReset:
		s.Reset()
	case ActGuess:
		out.Guess, err = s.SubmitGuess(a.Amount)
	case ActNextListing:
		s.NextListing()
	case ActChoose:
		out.Comparison, err = s.Choose(a.Side)
	case ActCheckAnswer:
		out.Answer, err = s.CheckAnswer(a.Label)
	case ActAdvance:
		err = s.Advance()
	default:
		err = fmt.Errorf("unknown action %q", a.Kind)
	}
	return out, err
}
