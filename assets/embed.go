// Package assets embeds a small sample dataset so the server runs even when
// no listings or quiz file is configured.
package assets

import (
	"embed"
	"io"
)

//go:embed sample_listings.csv sample_quiz.csv
var FS embed.FS

// SampleListings opens the embedded listings CSV.
func SampleListings() (io.ReadCloser, error) {
	return FS.Open("sample_listings.csv")
}

// SampleQuiz opens the embedded quiz CSV.
func SampleQuiz() (io.ReadCloser, error) {
	return FS.Open("sample_quiz.csv")
}
