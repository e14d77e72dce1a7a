// internal/game/engine.go
//
// Game engine for a single player session.
// Responsibilities:
//   - Price guess: score a guess against the current listing, pick the next one.
//   - Comparison: draw a pair from one pool, score the pick, draw the next pair.
//   - Quiz: check an answer once per question, advance through the questions.
//   - Reset: zero the score and re-randomise selection, keeping the dataset.
//
// All randomness goes through the injected Rand so tests can script it.

package game

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/rigaguess/internal/dataset"
	"github.com/robalobadob/rigaguess/internal/scoring"
)

// now is swapped in tests.
var now = time.Now

// MaxGuess is the largest amount SubmitGuess accepts.
const MaxGuess = 1e12

// New starts a session in price-guess mode on a random listing.
func New(cat Catalog, rng Rand) *Session {
	t := now()
	s := &Session{
		ID:           uuid.NewString(),
		Mode:         ModePriceGuess,
		CreatedAt:    t,
		LastActivity: t,
		Answered:     map[int]bool{},
		cat:          cat,
		rng:          rng,
	}
	s.ListingID = cat.RandomListing(rng).ID
	return s
}

// ------------------------------- price guess ---------------------------------

// CurrentListing returns the listing the player is guessing.
func (s *Session) CurrentListing() (dataset.Listing, bool) {
	return s.cat.Listing(s.ListingID)
}

// SubmitGuess scores amount against the current listing.
// Repeated calls before NextListing score again against the same listing.
// If the listing has no usable price a new one is picked, a notice is set
// and no result is returned.
func (s *Session) SubmitGuess(amount float64) (*GuessResult, error) {
	if amount < 0 {
		return nil, ErrNegativeGuess
	}
	if math.IsNaN(amount) || amount > MaxGuess {
		return nil, ErrInvalidGuess
	}
	l, ok := s.CurrentListing()
	if !ok || l.Price <= 0 {
		s.NextListing()
		s.Notice = "listing has no valid price; picked another"
		return nil, nil
	}

	errPct := scoring.ErrorPct(amount, l.Price)
	total := s.TotalError + errPct
	if math.IsInf(errPct, 0) || math.IsNaN(errPct) || math.IsInf(total, 0) {
		return nil, ErrInvalidGuess
	}
	points := scoring.PointsForGuess(errPct)
	s.Score += points
	s.Rounds++
	s.TotalError = total
	s.AverageError = s.TotalError / float64(s.Rounds)

	s.LastGuess = &GuessResult{
		ListingID: l.ID,
		RealPrice: l.Price,
		Guess:     amount,
		ErrorPct:  errPct,
		Points:    points,
	}
	return s.LastGuess, nil
}

// NextListing picks a new listing uniformly at random (repeats allowed)
// and clears the last result.
func (s *Session) NextListing() {
	s.ListingID = s.cat.RandomListing(s.rng).ID
	s.LastGuess = nil
}

// ------------------------------- comparison ----------------------------------

// CanCompare reports whether either pool holds at least two listings.
func (s *Session) CanCompare() bool {
	return len(s.cat.ListingsByType(dataset.Rent)) >= 2 || len(s.cat.ListingsByType(dataset.Sale)) >= 2
}

// ChoosePair draws a new pair: pick rent or sale with equal odds, fall back to
// the other pool if the pick has fewer than two listings, then draw two
// distinct listings uniformly without replacement.
func (s *Session) ChoosePair() error {
	first, second := dataset.Sale, dataset.Rent
	if s.rng.Intn(2) == 0 {
		first, second = dataset.Rent, dataset.Sale
	}

	typ := first
	pool := s.cat.ListingsByType(first)
	if len(pool) < 2 {
		typ, pool = second, s.cat.ListingsByType(second)
		if len(pool) < 2 {
			s.Pair = nil
			return ErrInsufficientData
		}
	}

	n := len(pool)
	a := s.rng.Intn(n)
	b := s.rng.Intn(n - 1)
	if b >= a {
		b++
	}
	s.Pair = &Pair{Type: typ, A: pool[a].ID, B: pool[b].ID}
	return nil
}

// PairListings returns the two listings on display.
func (s *Session) PairListings() (a, b dataset.Listing, ok bool) {
	if s.Pair == nil {
		return a, b, false
	}
	a, okA := s.cat.Listing(s.Pair.A)
	b, okB := s.cat.Listing(s.Pair.B)
	return a, b, okA && okB
}

// Choose scores the player's pick of the pricier listing. Equal prices count
// as correct for either side. Both prices are revealed and the next pair is
// drawn; an error from that draw is returned alongside the result.
func (s *Session) Choose(side Side) (*ComparisonResult, error) {
	if side != SideA && side != SideB {
		return nil, ErrInvalidSide
	}
	a, b, ok := s.PairListings()
	if !ok {
		return nil, ErrNoActivePair
	}

	chosen, other := a.Price, b.Price
	if side == SideB {
		chosen, other = b.Price, a.Price
	}
	correct := chosen >= other
	points := scoring.PointsForComparison(correct)

	s.Rounds++
	s.Score += points
	s.LastComparison = &ComparisonResult{
		Pair:    *s.Pair,
		Chosen:  side,
		PriceA:  a.Price,
		PriceB:  b.Price,
		Correct: correct,
		Points:  points,
	}
	return s.LastComparison, s.ChoosePair()
}

// ---------------------------------- quiz -------------------------------------

// QuizTotal returns the number of quiz questions.
func (s *Session) QuizTotal() int { return len(s.cat.QuizQuestions()) }

// CurrentQuestion returns the question on display, if any.
func (s *Session) CurrentQuestion() (dataset.QuizQuestion, bool) {
	qs := s.cat.QuizQuestions()
	if s.QuizFinished || s.QuizIndex < 0 || s.QuizIndex >= len(qs) {
		return dataset.QuizQuestion{}, false
	}
	return qs[s.QuizIndex], true
}

// CheckAnswer scores label against the current question. A question is
// scored at most once: later checks return the first result unchanged.
// label may be "B" or a full option line such as "B: Vecrīga".
func (s *Session) CheckAnswer(label string) (*AnswerResult, error) {
	if s.QuizTotal() == 0 {
		return nil, ErrQuizUnavailable
	}
	q, ok := s.CurrentQuestion()
	if !ok {
		s.QuizFinished = true
		return nil, ErrQuizFinished
	}
	if s.Answered[q.Index] {
		return s.LastAnswer, nil
	}

	label = strings.ToUpper(strings.TrimSpace(strings.SplitN(label, ":", 2)[0]))
	if label == "" {
		return nil, ErrNoSelection
	}
	if !dataset.IsLabel(label) {
		return nil, ErrInvalidLabel
	}

	correct := label == q.Correct
	s.Rounds++
	s.Score += scoring.PointsForQuiz(correct)
	s.Answered[q.Index] = true
	s.LastAnswer = &AnswerResult{
		Index:        q.Index,
		Chosen:       label,
		Correct:      correct,
		CorrectLabel: q.Correct,
	}
	return s.LastAnswer, nil
}

// Advance moves to the next question, finishing the quiz after the last one.
// Each call advances exactly once; deduplicating repeated clicks is the job
// of Dispatch.
func (s *Session) Advance() error {
	total := s.QuizTotal()
	if total == 0 {
		return ErrQuizUnavailable
	}
	if s.QuizFinished {
		return nil
	}
	s.QuizIndex++
	s.LastAnswer = nil
	if s.QuizIndex >= total {
		s.QuizFinished = true
	}
	return nil
}

// Touch records player activity for idle expiry.
func (s *Session) Touch() { s.LastActivity = now() }

// ---------------------------------- modes ------------------------------------

// Available reports whether mode m can be played, and why not.
func (s *Session) Available(m Mode) error {
	switch m {
	case ModePriceGuess:
		return nil
	case ModeComparison:
		if !s.CanCompare() {
			return ErrInsufficientData
		}
		return nil
	case ModeQuiz:
		if s.QuizTotal() == 0 {
			return ErrQuizUnavailable
		}
		return nil
	}
	return ErrUnknownMode
}

// SetMode switches the active mode. Entering comparison draws a pair if none
// is on display. The mode is unchanged when the target cannot be played.
func (s *Session) SetMode(m Mode) error {
	if err := s.Available(m); err != nil {
		return err
	}
	if m == ModeComparison && s.Pair == nil {
		if err := s.ChoosePair(); err != nil {
			return err
		}
	}
	if m == ModeQuiz && s.QuizIndex >= s.QuizTotal() {
		s.QuizFinished = true
	}
	s.Mode = m
	return nil
}

// Reset zeroes score, rounds and error tracking, re-randomises the listing,
// clears results and restarts the quiz. The mode and dataset are kept.
func (s *Session) Reset() {
	s.Score = 0
	s.Rounds = 0
	s.TotalError = 0
	s.AverageError = 0
	s.NextListing()
	s.Pair = nil
	s.LastComparison = nil
	s.QuizIndex = 0
	s.QuizFinished = false
	// The quiz restarts from question one, so answered flags go too;
	// keeping them would lock the restarted questions without scoring them.
	s.Answered = map[int]bool{}
	s.LastAnswer = nil
	if s.Mode == ModeComparison {
		// Mode was enterable before, and the dataset does not shrink.
		_ = s.ChoosePair()
	}
}
