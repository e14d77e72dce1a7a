// internal/httpserver/view.go
//
// Read model returned to the client after every request.
// Prices of the listing being guessed and of the pair on display are never
// included; they only appear inside results, after the player has answered.

package httpserver

import (
	"errors"

	"github.com/robalobadob/rigaguess/internal/dataset"
	"github.com/robalobadob/rigaguess/internal/game"
	"github.com/robalobadob/rigaguess/internal/labels"
)

type sessionView struct {
	SessionID        string       `json:"sessionId"`
	Mode             game.Mode    `json:"mode"`
	Modes            []modeView   `json:"modes"`
	Score            int          `json:"score"`
	Rounds           int          `json:"rounds"`
	AverageError     float64      `json:"averageError"`
	AverageErrorText string       `json:"averageErrorText,omitempty"`
	Notice           string       `json:"notice,omitempty"`
	Warnings         []string     `json:"warnings,omitempty"`
	LastSeq          uint64       `json:"lastSeq"`
	Price            *priceView   `json:"price,omitempty"`
	Comparison       *compareView `json:"comparison,omitempty"`
	Quiz             *quizView    `json:"quiz,omitempty"`
}

type modeView struct {
	Mode      game.Mode `json:"mode"`
	Available bool      `json:"available"`
	Warning   string    `json:"warning,omitempty"`
}

// listingCard is a listing without its price.
type listingCard struct {
	ID            int            `json:"id"`
	Type          dataset.TxType `json:"type"`
	District      string         `json:"district"`
	Street        string         `json:"street"`
	Rooms         string         `json:"rooms"`
	Area          float64        `json:"area"`
	Floor         *int           `json:"floor,omitempty"`
	TotalFloors   *int           `json:"totalFloors,omitempty"`
	HouseType     string         `json:"houseType,omitempty"`
	HouseTypeCode string         `json:"houseTypeCode,omitempty"`
	Condition     string         `json:"condition,omitempty"`
	ConditionCode string         `json:"conditionCode,omitempty"`
	Lat           *float64       `json:"lat,omitempty"`
	Lon           *float64       `json:"lon,omitempty"`
}

type priceView struct {
	Listing   *listingCard `json:"listing,omitempty"`
	LastGuess *guessView   `json:"lastGuess,omitempty"`
}

type guessView struct {
	game.GuessResult
	RealPriceText string `json:"realPriceText"`
	GuessText     string `json:"guessText"`
	ErrorText     string `json:"errorText"`
}

type compareView struct {
	A    *listingCard          `json:"a,omitempty"`
	B    *listingCard          `json:"b,omitempty"`
	Last *comparisonResultView `json:"last,omitempty"`
}

type comparisonResultView struct {
	game.ComparisonResult
	PriceAText string `json:"priceAText"`
	PriceBText string `json:"priceBText"`
}

type quizView struct {
	Number     int                `json:"number"` // 1-based
	Total      int                `json:"total"`
	Question   string             `json:"question,omitempty"`
	Options    []optionView       `json:"options,omitempty"`
	Answered   bool               `json:"answered"`
	LastAnswer *game.AnswerResult `json:"lastAnswer,omitempty"`
	Finished   bool               `json:"finished"`
}

type optionView struct {
	Label   string `json:"label"`
	Text    string `json:"text"`
	Missing bool   `json:"missing,omitempty"`
}

// buildView renders g for the client. Caller holds exclusive access to g.
func (s *Server) buildView(g *game.Session) sessionView {
	v := sessionView{
		SessionID:    g.ID,
		Mode:         g.Mode,
		Score:        g.Score,
		Rounds:       g.Rounds,
		AverageError: g.AverageError,
		Notice:       g.Notice,
		LastSeq:      g.LastSeq,
	}
	if g.Rounds > 0 {
		v.AverageErrorText = s.fmt.Percent(g.AverageError)
	}

	for _, m := range game.Modes {
		mv := modeView{Mode: m, Available: true}
		if err := g.Available(m); err != nil {
			mv.Available = false
			mv.Warning = err.Error()
			v.Warnings = append(v.Warnings, warningFor(m, err))
		}
		v.Modes = append(v.Modes, mv)
	}

	switch g.Mode {
	case game.ModePriceGuess:
		v.Price = s.priceView(g)
	case game.ModeComparison:
		v.Comparison = s.compareView(g)
	case game.ModeQuiz:
		v.Quiz = quizViewOf(g)
	}
	return v
}

func warningFor(m game.Mode, err error) string {
	switch {
	case errors.Is(err, game.ErrInsufficientData):
		return "comparison unavailable: no pool has two listings"
	case errors.Is(err, game.ErrQuizUnavailable):
		return "quiz unavailable: no questions loaded"
	}
	return string(m) + ": " + err.Error()
}

func (s *Server) priceView(g *game.Session) *priceView {
	pv := &priceView{}
	if l, ok := g.CurrentListing(); ok {
		pv.Listing = card(l)
	}
	if r := g.LastGuess; r != nil {
		pv.LastGuess = &guessView{
			GuessResult:   *r,
			RealPriceText: s.fmt.EUR(r.RealPrice),
			GuessText:     s.fmt.EUR(r.Guess),
			ErrorText:     s.fmt.Percent(r.ErrorPct),
		}
	}
	return pv
}

func (s *Server) compareView(g *game.Session) *compareView {
	cv := &compareView{}
	if a, b, ok := g.PairListings(); ok {
		cv.A, cv.B = card(a), card(b)
	}
	if r := g.LastComparison; r != nil {
		cv.Last = &comparisonResultView{
			ComparisonResult: *r,
			PriceAText:       s.fmt.EUR(r.PriceA),
			PriceBText:       s.fmt.EUR(r.PriceB),
		}
	}
	return cv
}

func quizViewOf(g *game.Session) *quizView {
	qv := &quizView{
		Total:    g.QuizTotal(),
		Finished: g.QuizFinished,
	}
	q, ok := g.CurrentQuestion()
	if !ok {
		qv.Number = qv.Total
		return qv
	}
	qv.Number = g.QuizIndex + 1
	qv.Question = q.Text
	for _, label := range dataset.Labels {
		ov := optionView{Label: label}
		if t := q.Options[label]; t != nil {
			ov.Text = *t
		} else {
			ov.Missing = true
		}
		qv.Options = append(qv.Options, ov)
	}
	qv.Answered = g.Answered[q.Index]
	if qv.Answered {
		qv.LastAnswer = g.LastAnswer
	}
	return qv
}

func card(l dataset.Listing) *listingCard {
	return &listingCard{
		ID:            l.ID,
		Type:          l.Type,
		District:      l.District,
		Street:        l.Street,
		Rooms:         l.Rooms,
		Area:          l.Area,
		Floor:         l.Floor,
		TotalFloors:   l.TotalFloors,
		HouseType:     labels.HouseType(l.HouseType),
		HouseTypeCode: l.HouseType,
		Condition:     labels.Condition(l.Condition),
		ConditionCode: l.Condition,
		Lat:           l.Lat,
		Lon:           l.Lon,
	}
}
