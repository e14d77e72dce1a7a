package main

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/rigaguess/internal/config"
	"github.com/robalobadob/rigaguess/internal/dataset"
	"github.com/robalobadob/rigaguess/internal/httpserver"
	"github.com/robalobadob/rigaguess/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	data, err := loadDataset(cfg)
	if errors.Is(err, dataset.ErrEmptyDataset) {
		log.Fatal().Err(err).Msg("no listings to play with; check LISTINGS_FILE or DATASET_DB")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load dataset")
	}

	if st := data.Stats(); st.Sale < 2 && st.Rent < 2 {
		log.Warn().Msg("fewer than two listings per type; comparison mode disabled")
	}

	mem := store.NewMemoryStore(cfg.SessionTTL)
	srv := httpserver.New(mem, data, cfg)
	log.Info().Str("port", cfg.Port).Msg("starting rigaguess")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// loadDataset reads the imported sqlite dataset when DATASET_DB is set,
// and the CSV files (or embedded sample) otherwise.
func loadDataset(cfg config.Config) (*dataset.Dataset, error) {
	if cfg.DatasetDB == "" {
		return dataset.FromFiles(cfg.ListingsFile, cfg.QuizFile)
	}

	db, err := dataset.OpenDB(cfg.DatasetDB)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	if err := dataset.Migrate(db); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return dataset.FromDB(ctx, db)
}
