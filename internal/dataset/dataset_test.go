package dataset

import (
	"errors"
	"math/rand"
	"testing"
)

func raw(op, price, area string) RawListing {
	return RawListing{OpType: op, Price: price, Area: area, District: "Centrs", Street: "Brīvības 1", Rooms: "2"}
}

func TestLoadFiltersRows(t *testing.T) {
	rows := []RawListing{
		raw("For sale", "89000", "54"),
		raw("Flats FOR RENT", "650", "55"),
		raw("Other", "700", "60"),
		raw("For sale", "", "40"),
		raw("For sale", "abc", "40"),
		raw("For sale", "0", "40"),
		raw("For sale", "-10", "40"),
		raw("For rent", "300", "0"),
		raw("For rent", "300", "NaN"),
		raw("For rent", " 1.2e3 ", "30"),
	}

	d, err := Load(rows, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	st := d.Stats()
	if st.Listings != 3 || st.Sale != 1 || st.Rent != 2 {
		t.Fatalf("unexpected stats: %+v", st)
	}
	for i := 0; i < d.Len(); i++ {
		l, ok := d.Listing(i)
		if !ok {
			t.Fatalf("listing %d missing", i)
		}
		if l.ID != i {
			t.Errorf("listing %d has id %d", i, l.ID)
		}
		if l.Price <= 0 || l.Area <= 0 {
			t.Errorf("listing %d violates price/area invariant: %+v", i, l)
		}
	}
	if l, _ := d.Listing(2); l.Price != 1200 {
		t.Errorf("expected scientific notation price 1200, got %v", l.Price)
	}
}

func TestLoadEmpty(t *testing.T) {
	_, err := Load([]RawListing{raw("Other", "1", "1"), raw("For sale", "0", "10")}, nil)
	if !errors.Is(err, ErrEmptyDataset) {
		t.Fatalf("expected ErrEmptyDataset, got %v", err)
	}
	if _, err := Load(nil, nil); !errors.Is(err, ErrEmptyDataset) {
		t.Fatalf("expected ErrEmptyDataset for nil input, got %v", err)
	}
}

func TestLoadOptionalFields(t *testing.T) {
	r := raw("For sale", "50000", "40")
	r.Floor, r.TotalFloors = "3.0", "9"
	r.Lat, r.Lon = "56.95", "bad"
	r.HouseType = " Panel "

	d, err := Load([]RawListing{r}, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	l, _ := d.Listing(0)
	if l.Floor == nil || *l.Floor != 3 {
		t.Errorf("floor = %v; want 3", l.Floor)
	}
	if l.TotalFloors == nil || *l.TotalFloors != 9 {
		t.Errorf("total floors = %v; want 9", l.TotalFloors)
	}
	if l.Lat == nil || *l.Lat != 56.95 {
		t.Errorf("lat = %v; want 56.95", l.Lat)
	}
	if l.Lon != nil {
		t.Errorf("lon = %v; want nil", *l.Lon)
	}
	if l.HouseType != "Panel" {
		t.Errorf("house type = %q; want Panel", l.HouseType)
	}
}

func TestLoadQuiz(t *testing.T) {
	quiz := []RawQuestion{
		{Question: "Q1", OptionA: "a", OptionB: "b", OptionC: "", OptionD: "d", Correct: " b "},
		{Question: "", OptionA: "a", Correct: "A"},
		{Question: "Q3", OptionA: "a", Correct: "E"},
		{Question: "Q4", OptionA: "a", Correct: "D"},
	}
	d, err := Load([]RawListing{raw("For sale", "1", "1")}, quiz)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	qs := d.QuizQuestions()
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(qs))
	}
	if qs[0].Correct != "B" || qs[0].Index != 0 {
		t.Errorf("unexpected first question: %+v", qs[0])
	}
	if qs[0].Options["C"] != nil {
		t.Errorf("blank option should be nil")
	}
	if qs[0].Options["A"] == nil || *qs[0].Options["A"] != "a" {
		t.Errorf("option A = %v; want a", qs[0].Options["A"])
	}
	if qs[1].Text != "Q4" || qs[1].Index != 1 {
		t.Errorf("unexpected second question: %+v", qs[1])
	}
}

func TestRandomListingCoversDataset(t *testing.T) {
	rows := []RawListing{raw("For sale", "1", "1"), raw("For sale", "2", "1"), raw("For rent", "3", "1")}
	d, err := Load(rows, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	r := rand.New(rand.NewSource(7))
	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		seen[d.RandomListing(r).ID] = true
	}
	if len(seen) != 3 {
		t.Errorf("expected all 3 listings to be drawn, got %v", seen)
	}
}

func TestListingsByType(t *testing.T) {
	d, err := Load([]RawListing{raw("For sale", "1", "1"), raw("For rent", "2", "1"), raw("For sale", "3", "1")}, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	sale := d.ListingsByType(Sale)
	if len(sale) != 2 || sale[0].Price != 1 || sale[1].Price != 3 {
		t.Errorf("unexpected sale pool: %+v", sale)
	}
	if len(d.ListingsByType(Rent)) != 1 {
		t.Errorf("unexpected rent pool size")
	}
	if _, ok := d.Listing(99); ok {
		t.Errorf("Listing(99) should not exist")
	}
}
