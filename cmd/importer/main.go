// cmd/importer
//
// Loads listing and quiz CSVs into the sqlite dataset database read by the
// server when DATASET_DB is set.
//
//	importer -listings riga.csv -quiz quiz.csv -db data/dataset.db
//
// Rows are validated before anything is written; an import that would leave
// the server without listings is refused. Empty paths import the embedded sample.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/rigaguess/internal/dataset"
)

func main() {
	listings := flag.String("listings", "", "listings CSV (empty: embedded sample)")
	quiz := flag.String("quiz", "", "quiz CSV (empty: embedded sample)")
	dsn := flag.String("db", "data/dataset.db", "sqlite database file")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	raw, questions, err := dataset.ReadRaw(*listings, *quiz)
	if err != nil {
		log.Fatal().Err(err).Msg("read CSV")
	}
	d, err := dataset.Load(raw, questions)
	if err != nil {
		log.Fatal().Err(err).Msg("refusing to import")
	}
	log.Info().Int("rows", len(raw)).Msg("validated: " + d.Stats().String())

	db, err := dataset.OpenDB(*dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("open db")
	}
	defer db.Close()
	if err := dataset.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := dataset.Import(ctx, db, raw, questions); err != nil {
		log.Fatal().Err(err).Msg("import")
	}
	log.Info().Str("db", *dsn).Msg("import complete")
}
