package dataset

import (
	"context"
	"path/filepath"
	"testing"
)

func TestSQLiteRoundTrip(t *testing.T) {
	db, err := OpenDB(filepath.Join(t.TempDir(), "data", "dataset.db"))
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	// Second run must be a no-op.
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate again: %v", err)
	}

	ctx := context.Background()
	listings := []RawListing{
		raw("For sale", "89000", "54"),
		raw("For rent", "650", "55"),
		raw("Other", "1", "1"),
	}
	quiz := []RawQuestion{{Question: "Q", OptionA: "a", OptionB: "b", Correct: "A"}}
	if err := Import(ctx, db, listings, quiz); err != nil {
		t.Fatalf("Import: %v", err)
	}
	// Re-import replaces rather than appends.
	if err := Import(ctx, db, listings, quiz); err != nil {
		t.Fatalf("Import again: %v", err)
	}

	d, err := FromDB(ctx, db)
	if err != nil {
		t.Fatalf("FromDB: %v", err)
	}
	st := d.Stats()
	if st.Listings != 2 || st.Sale != 1 || st.Rent != 1 || st.Quiz != 1 {
		t.Fatalf("unexpected stats: %+v", st)
	}
}
