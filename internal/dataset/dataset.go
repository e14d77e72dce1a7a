// internal/dataset/dataset.go
//
// In-memory dataset of listings and quiz questions.
// Responsibilities:
//   - Validate raw rows (transaction type, numeric positive price and area).
//   - Partition listings into sale and rent pools.
//   - Serve uniform random picks and pool lookups for the game engine.
//
// A Dataset is immutable after Load and safe for concurrent readers.

package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// Rand is the random source used for uniform picks.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Dataset holds cleaned listings partitioned by transaction type, plus quiz questions.
type Dataset struct {
	all    []Listing
	byType map[TxType][]Listing
	quiz   []QuizQuestion
}

// Load validates raw listing and quiz rows and builds a Dataset.
// Listing rows are kept only when op_type contains "for sale" or "for rent"
// (case-insensitive) and price and area parse as finite numbers > 0.
// Returns ErrEmptyDataset if no listing survives. An empty quiz is allowed.
func Load(raw []RawListing, quiz []RawQuestion) (*Dataset, error) {
	d := &Dataset{byType: map[TxType][]Listing{Sale: nil, Rent: nil}}

	for _, r := range raw {
		l, ok := parseListing(r)
		if !ok {
			continue
		}
		l.ID = len(d.all)
		d.all = append(d.all, l)
		d.byType[l.Type] = append(d.byType[l.Type], l)
	}
	log.Debug().
		Int("rows", len(raw)).
		Int("kept", len(d.all)).
		Int("dropped", len(raw)-len(d.all)).
		Msg("listings filtered")

	if len(d.all) == 0 {
		return nil, ErrEmptyDataset
	}

	for _, q := range quiz {
		qq, ok := parseQuestion(q)
		if !ok {
			continue
		}
		qq.Index = len(d.quiz)
		d.quiz = append(d.quiz, qq)
	}
	return d, nil
}

// parseListing applies the load-time filter to a single row.
func parseListing(r RawListing) (Listing, bool) {
	typ, ok := txTypeOf(r.OpType)
	if !ok {
		return Listing{}, false
	}
	price, ok := parsePositive(r.Price)
	if !ok {
		return Listing{}, false
	}
	area, ok := parsePositive(r.Area)
	if !ok {
		return Listing{}, false
	}
	return Listing{
		Type:        typ,
		Price:       price,
		Area:        area,
		District:    strings.TrimSpace(r.District),
		Street:      strings.TrimSpace(r.Street),
		Rooms:       strings.TrimSpace(r.Rooms),
		Floor:       parseIntPtr(r.Floor),
		TotalFloors: parseIntPtr(r.TotalFloors),
		HouseType:   strings.TrimSpace(r.HouseType),
		Condition:   strings.TrimSpace(r.Condition),
		Lat:         parseFloatPtr(r.Lat),
		Lon:         parseFloatPtr(r.Lon),
	}, true
}

// txTypeOf maps an op_type cell such as "Flats for rent" to a TxType.
func txTypeOf(op string) (TxType, bool) {
	s := strings.ToLower(op)
	switch {
	case strings.Contains(s, "for rent"):
		return Rent, true
	case strings.Contains(s, "for sale"):
		return Sale, true
	}
	return "", false
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func parsePositive(s string) (float64, bool) {
	f, ok := parseNumber(s)
	if !ok || f <= 0 {
		return 0, false
	}
	return f, true
}

// parseIntPtr accepts "3" as well as "3.0", which is how floors come out of
// spreadsheets.
func parseIntPtr(s string) *int {
	f, ok := parseNumber(s)
	if !ok {
		return nil
	}
	n := int(f)
	return &n
}

func parseFloatPtr(s string) *float64 {
	f, ok := parseNumber(s)
	if !ok {
		return nil
	}
	return &f
}

// parseQuestion keeps rows with question text and a correct label in A–D.
func parseQuestion(q RawQuestion) (QuizQuestion, bool) {
	text := strings.TrimSpace(q.Question)
	correct := strings.ToUpper(strings.TrimSpace(q.Correct))
	if text == "" || !IsLabel(correct) {
		return QuizQuestion{}, false
	}
	opts := map[string]*string{}
	for i, raw := range []string{q.OptionA, q.OptionB, q.OptionC, q.OptionD} {
		if v := strings.TrimSpace(raw); v != "" {
			opts[Labels[i]] = &v
		} else {
			opts[Labels[i]] = nil
		}
	}
	return QuizQuestion{Text: text, Options: opts, Correct: correct}, true
}

// IsLabel reports whether s is one of the quiz answer labels.
func IsLabel(s string) bool {
	for _, l := range Labels {
		if s == l {
			return true
		}
	}
	return false
}

// Len returns the number of valid listings.
func (d *Dataset) Len() int { return len(d.all) }

// Listing returns the listing with the given id.
func (d *Dataset) Listing(id int) (Listing, bool) {
	if id < 0 || id >= len(d.all) {
		return Listing{}, false
	}
	return d.all[id], true
}

// RandomListing picks a listing uniformly over all valid listings.
func (d *Dataset) RandomListing(r Rand) Listing {
	return d.all[r.Intn(len(d.all))]
}

// ListingsByType returns the pool of the given transaction type.
// The returned slice must not be modified.
func (d *Dataset) ListingsByType(t TxType) []Listing {
	return d.byType[t]
}

// QuizQuestions returns the quiz questions in file order. May be empty.
func (d *Dataset) QuizQuestions() []QuizQuestion {
	return d.quiz
}

// Stats summarises dataset sizes for diagnostics.
type Stats struct {
	Listings int `json:"listings"`
	Sale     int `json:"sale"`
	Rent     int `json:"rent"`
	Quiz     int `json:"quiz"`
}

func (d *Dataset) Stats() Stats {
	return Stats{
		Listings: len(d.all),
		Sale:     len(d.byType[Sale]),
		Rent:     len(d.byType[Rent]),
		Quiz:     len(d.quiz),
	}
}

func (s Stats) String() string {
	return fmt.Sprintf("%d listings (%d sale, %d rent), %d quiz questions", s.Listings, s.Sale, s.Rent, s.Quiz)
}
