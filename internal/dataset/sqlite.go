// internal/dataset/sqlite.go
//
// SQLite-backed dataset source.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout).
//   - Applying embedded migrations (idempotent, recorded in _migrations).
//   - Importing raw listing/quiz rows and reading them back.
//
// Rows are stored as text exactly as imported; FromDB runs them through Load
// so the database and CSV sources share one validation path.

package dataset

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrations embed.FS

// OpenDB opens (and creates if missing) a SQLite database file.
func OpenDB(dsn string) (*sql.DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", dsn, err)
	}
	return db, nil
}

// Migrate applies the embedded migrations in lexical order, skipping the
// ones already recorded in _migrations.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		body, err := migrations.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(body)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

// Import replaces the stored dataset with the given rows in one transaction.
func Import(ctx context.Context, db *sql.DB, listings []RawListing, quiz []RawQuestion) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM listings`); err != nil {
		return fmt.Errorf("clear listings: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM quiz_questions`); err != nil {
		return fmt.Errorf("clear quiz: %w", err)
	}

	for _, l := range listings {
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO listings
                (op_type, price, area, district, street, rooms, floor, total_floors, house_type, condition, lat, lon)
            VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
			l.OpType, l.Price, l.Area, l.District, l.Street, l.Rooms,
			l.Floor, l.TotalFloors, l.HouseType, l.Condition, l.Lat, l.Lon,
		); err != nil {
			return fmt.Errorf("insert listing: %w", err)
		}
	}
	for _, q := range quiz {
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO quiz_questions
                (question, option_a, option_b, option_c, option_d, correct_option)
            VALUES (?,?,?,?,?,?)`,
			q.Question, q.OptionA, q.OptionB, q.OptionC, q.OptionD, q.Correct,
		); err != nil {
			return fmt.Errorf("insert quiz question: %w", err)
		}
	}
	return tx.Commit()
}

// FromDB reads every stored row (in insertion order) and builds a Dataset.
func FromDB(ctx context.Context, db *sql.DB) (*Dataset, error) {
	raw, err := queryListings(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmptyDataset, err)
	}
	quiz, err := queryQuiz(ctx, db)
	if err != nil {
		log.Warn().Err(err).Msg("quiz unavailable; quiz mode disabled")
		quiz = nil
	}
	d, err := Load(raw, quiz)
	if err != nil {
		return nil, err
	}
	log.Info().Str("listings", "sqlite").Msg(d.Stats().String())
	return d, nil
}

func queryListings(ctx context.Context, db *sql.DB) ([]RawListing, error) {
	rows, err := db.QueryContext(ctx, `
        SELECT op_type, price, area, district, street, rooms, floor, total_floors, house_type, condition, lat, lon
        FROM listings ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RawListing
	for rows.Next() {
		var l RawListing
		if err := rows.Scan(&l.OpType, &l.Price, &l.Area, &l.District, &l.Street, &l.Rooms,
			&l.Floor, &l.TotalFloors, &l.HouseType, &l.Condition, &l.Lat, &l.Lon); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func queryQuiz(ctx context.Context, db *sql.DB) ([]RawQuestion, error) {
	rows, err := db.QueryContext(ctx, `
        SELECT question, option_a, option_b, option_c, option_d, correct_option
        FROM quiz_questions ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RawQuestion
	for rows.Next() {
		var q RawQuestion
		if err := rows.Scan(&q.Question, &q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD, &q.Correct); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}
