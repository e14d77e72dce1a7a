// internal/dataset/source.go
//
// Builds a Dataset from files, falling back to the embedded sample.
//
// Initialization behavior (FromFiles):
//   1. If listingsPath is set, listings are read from that CSV. Failure is fatal.
//   2. If listingsPath is empty, the embedded sample listings are used.
//   3. quizPath follows the same rule, except that a missing or unreadable
//      quiz file only disables the quiz (a warning is logged).

package dataset

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/rigaguess/assets"
)

// FromFiles loads listings and quiz questions from CSV files.
// Empty paths select the embedded sample data.
func FromFiles(listingsPath, quizPath string) (*Dataset, error) {
	raw, err := readListings(listingsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmptyDataset, err)
	}

	quiz, err := readQuiz(quizPath)
	if err != nil {
		log.Warn().Err(err).Str("path", quizPath).Msg("quiz unavailable; quiz mode disabled")
		quiz = nil
	}

	d, err := Load(raw, quiz)
	if err != nil {
		return nil, err
	}
	log.Info().Str("listings", sourceName(listingsPath)).Str("quiz", sourceName(quizPath)).
		Msg(d.Stats().String())
	return d, nil
}

// ReadRaw reads unvalidated rows from both CSV files without falling back on
// errors. Empty paths select the embedded sample data.
func ReadRaw(listingsPath, quizPath string) ([]RawListing, []RawQuestion, error) {
	raw, err := readListings(listingsPath)
	if err != nil {
		return nil, nil, fmt.Errorf("listings %s: %w", sourceName(listingsPath), err)
	}
	quiz, err := readQuiz(quizPath)
	if err != nil {
		return nil, nil, fmt.Errorf("quiz %s: %w", sourceName(quizPath), err)
	}
	return raw, quiz, nil
}

func readListings(path string) ([]RawListing, error) {
	rc, err := open(path, assets.SampleListings)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return ReadListingsCSV(rc)
}

func readQuiz(path string) ([]RawQuestion, error) {
	rc, err := open(path, assets.SampleQuiz)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return ReadQuizCSV(rc)
}

func open(path string, fallback func() (io.ReadCloser, error)) (io.ReadCloser, error) {
	if path == "" {
		return fallback()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func sourceName(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}
