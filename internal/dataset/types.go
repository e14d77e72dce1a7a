// internal/dataset/types.go
//
// Core record types for the property dataset.
// Defines:
//   - TxType: transaction type of a listing (sale or rent).
//   - Listing: one cleaned real-estate record.
//   - QuizQuestion: one multiple-choice trivia question.
//   - RawListing / RawQuestion: unvalidated rows as they come out of a source.

package dataset

import "errors"

// ErrEmptyDataset is returned by Load when no listing survives filtering.
// The server cannot start without at least one listing.
var ErrEmptyDataset = errors.New("dataset: no valid listings")

// TxType is the transaction type of a listing.
type TxType string

const (
	Sale TxType = "sale"
	Rent TxType = "rent"
)

// Listing is a validated property record. Price and Area are always > 0.
type Listing struct {
	ID          int      `json:"id"`
	Type        TxType   `json:"type"`
	Price       float64  `json:"price"`
	Area        float64  `json:"area"`
	District    string   `json:"district"`
	Street      string   `json:"street"`
	Rooms       string   `json:"rooms"`
	Floor       *int     `json:"floor,omitempty"`
	TotalFloors *int     `json:"totalFloors,omitempty"`
	HouseType   string   `json:"houseType,omitempty"`
	Condition   string   `json:"condition,omitempty"`
	Lat         *float64 `json:"lat,omitempty"`
	Lon         *float64 `json:"lon,omitempty"`
}

// Labels lists the answer labels a quiz question may carry, in display order.
var Labels = []string{"A", "B", "C", "D"}

// QuizQuestion is a four-option trivia question. Options without text are nil.
type QuizQuestion struct {
	Index   int                `json:"index"`
	Text    string             `json:"text"`
	Options map[string]*string `json:"options"`
	Correct string             `json:"-"`
}

// RawListing holds one unvalidated listing row. Every field is kept as text;
// Load decides what survives.
type RawListing struct {
	OpType      string
	Price       string
	Area        string
	District    string
	Street      string
	Rooms       string
	Floor       string
	TotalFloors string
	HouseType   string
	Condition   string
	Lat         string
	Lon         string
}

// RawQuestion holds one unvalidated quiz row.
type RawQuestion struct {
	Question string
	OptionA  string
	OptionB  string
	OptionC  string
	OptionD  string
	Correct  string
}
