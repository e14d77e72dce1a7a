// internal/game/types.go
//
// Core type definitions for the guessing game.
// Defines:
//   - Mode: the three mutually exclusive game modes.
//   - Session: score, rounds and per-mode selection for one browser session.
//   - Result records returned by each scored action.
//   - Catalog: the read-only dataset the session plays over.

package game

import (
	"errors"
	"time"

	"github.com/robalobadob/rigaguess/internal/dataset"
)

// Mode selects which game the session is playing.
type Mode string

const (
	ModePriceGuess Mode = "price_guess"
	ModeComparison Mode = "comparison"
	ModeQuiz       Mode = "quiz"
)

// Modes lists every mode in selector order.
var Modes = []Mode{ModePriceGuess, ModeComparison, ModeQuiz}

// Side is one half of a comparison pair.
type Side string

const (
	SideA Side = "A"
	SideB Side = "B"
)

var (
	// ErrInsufficientData means neither pool has two listings, so no pair can be drawn.
	ErrInsufficientData = errors.New("not enough listings to build a pair")
	// ErrQuizUnavailable means there are no quiz questions loaded.
	ErrQuizUnavailable = errors.New("quiz questions unavailable")
	// ErrNoSelection means a quiz answer was checked without choosing an option.
	ErrNoSelection = errors.New("no answer selected")

	ErrInvalidLabel  = errors.New("answer label must be A, B, C or D")
	ErrInvalidSide   = errors.New("side must be A or B")
	ErrNegativeGuess = errors.New("guess must be a non-negative number")
	ErrInvalidGuess  = errors.New("guess must be a finite amount up to 1e12 EUR")
	ErrSeqRequired   = errors.New("action requires a sequence number")
	ErrQuizFinished  = errors.New("quiz finished")
	ErrNoActivePair  = errors.New("no pair on display")
	ErrUnknownMode   = errors.New("unknown mode")

	// ErrWrongMode means an action was dispatched for a mode that is not active.
	ErrWrongMode = errors.New("action not valid in current mode")
	// ErrStaleAction means the action's sequence number was already consumed.
	ErrStaleAction = errors.New("action already applied")
)

// Rand is the random source a session draws from. *math/rand.Rand satisfies it.
type Rand = dataset.Rand

// Catalog is the read-only dataset a session plays over. *dataset.Dataset implements it.
type Catalog interface {
	Listing(id int) (dataset.Listing, bool)
	RandomListing(r dataset.Rand) dataset.Listing
	ListingsByType(t dataset.TxType) []dataset.Listing
	QuizQuestions() []dataset.QuizQuestion
}

// Pair is the comparison pair on display: two distinct listings from one pool.
type Pair struct {
	Type dataset.TxType `json:"type"`
	A    int            `json:"a"` // listing id
	B    int            `json:"b"` // listing id
}

// GuessResult is the outcome of one price guess.
type GuessResult struct {
	ListingID int     `json:"listingId"`
	RealPrice float64 `json:"realPrice"`
	Guess     float64 `json:"guess"`
	ErrorPct  float64 `json:"errorPct"`
	Points    int     `json:"points"`
}

// ComparisonResult is the outcome of one "which is pricier" pick.
// Both prices are revealed.
type ComparisonResult struct {
	Pair    Pair    `json:"pair"`
	Chosen  Side    `json:"chosen"`
	PriceA  float64 `json:"priceA"`
	PriceB  float64 `json:"priceB"`
	Correct bool    `json:"correct"`
	Points  int     `json:"points"`
}

// AnswerResult is the outcome of checking a quiz answer.
type AnswerResult struct {
	Index        int    `json:"index"`
	Chosen       string `json:"chosen"`
	Correct      bool   `json:"correct"`
	CorrectLabel string `json:"correctLabel"`
}

// Session holds the state of one player's game across all three modes.
// A Session is not safe for concurrent use; callers serialise access.
type Session struct {
	ID           string    `json:"id"`
	Mode         Mode      `json:"mode"`
	Score        int       `json:"score"`
	Rounds       int       `json:"rounds"`
	TotalError   float64   `json:"totalErrorPct"`
	AverageError float64   `json:"averageErrorPct"`
	CreatedAt    time.Time `json:"createdAt"`
	LastActivity time.Time `json:"lastActivity"`

	// Price guess.
	ListingID int          `json:"listingId"`
	LastGuess *GuessResult `json:"lastGuess,omitempty"`

	// Comparison.
	Pair           *Pair             `json:"pair,omitempty"`
	LastComparison *ComparisonResult `json:"lastComparison,omitempty"`

	// Quiz.
	QuizIndex    int           `json:"quizIndex"`
	QuizFinished bool          `json:"quizFinished"`
	Answered     map[int]bool  `json:"answered"`
	LastAnswer   *AnswerResult `json:"lastAnswer,omitempty"`

	// Notice is a one-shot message for the player, cleared on the next action.
	Notice string `json:"notice,omitempty"`
	// LastSeq is the highest action sequence number applied so far.
	LastSeq uint64 `json:"lastSeq"`

	cat Catalog
	rng Rand
}
