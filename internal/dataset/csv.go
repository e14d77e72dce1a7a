package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	listingRequired = []string{"op_type", "price", "area", "district", "street", "rooms"}
	quizRequired    = []string{"question", "option_a", "option_b", "option_c", "option_d", "correct_option"}
)

// header maps lowercase column names to their position.
type header map[string]int

func (h header) get(rec []string, col string) string {
	i, ok := h[col]
	if !ok || i >= len(rec) {
		return ""
	}
	return rec[i]
}

// readTable reads a CSV with a header row and checks that the required columns exist.
func readTable(r io.Reader, required []string) (header, [][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	head, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, errors.New("csv: empty input")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("csv: read header: %w", err)
	}
	h := make(header, len(head))
	for i, name := range head {
		name = strings.TrimPrefix(name, "\ufeff")
		h[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range required {
		if _, ok := h[col]; !ok {
			return nil, nil, fmt.Errorf("csv: missing column %q", col)
		}
	}
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("csv: read rows: %w", err)
	}
	return h, rows, nil
}

// ReadListingsCSV parses listing rows by header name. Optional columns
// (floor, total_floors, house_type, condition, lat, lon) may be absent.
func ReadListingsCSV(r io.Reader) ([]RawListing, error) {
	h, rows, err := readTable(r, listingRequired)
	if err != nil {
		return nil, err
	}
	out := make([]RawListing, 0, len(rows))
	for _, rec := range rows {
		out = append(out, RawListing{
			OpType:      h.get(rec, "op_type"),
			Price:       h.get(rec, "price"),
			Area:        h.get(rec, "area"),
			District:    h.get(rec, "district"),
			Street:      h.get(rec, "street"),
			Rooms:       h.get(rec, "rooms"),
			Floor:       h.get(rec, "floor"),
			TotalFloors: h.get(rec, "total_floors"),
			HouseType:   h.get(rec, "house_type"),
			Condition:   h.get(rec, "condition"),
			Lat:         h.get(rec, "lat"),
			Lon:         h.get(rec, "lon"),
		})
	}
	return out, nil
}

// ReadQuizCSV parses quiz rows by header name.
func ReadQuizCSV(r io.Reader) ([]RawQuestion, error) {
	h, rows, err := readTable(r, quizRequired)
	if err != nil {
		return nil, err
	}
	out := make([]RawQuestion, 0, len(rows))
	for _, rec := range rows {
		out = append(out, RawQuestion{
			Question: h.get(rec, "question"),
			OptionA:  h.get(rec, "option_a"),
			OptionB:  h.get(rec, "option_b"),
			OptionC:  h.get(rec, "option_c"),
			OptionD:  h.get(rec, "option_d"),
			Correct:  h.get(rec, "correct_option"),
		})
	}
	return out, nil
}
