package main

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/i-deepakkumar/Minimaze/internal/config"
	"github.com/i-deepakkumar/Minimaze/internal/frame"
	"github.com/i-deepakkumar/Minimaze/internal/game"
	"github.com/i-deepakkumar/Minimaze/internal/httpserver"
	"github.com/i-deepakkumar/Minimaze/internal/maze"
	"github.com/i-deepakkumar/Minimaze/internal/render"
	"github.com/i-deepakkumar/Minimaze/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	levels, err := maze.Load(cfg.LevelsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load levels")
	}
	eng, err := game.NewEngine(levels,
		game.WithDuration(cfg.GameDuration),
		game.WithAutoAdvance(cfg.AutoAdvance),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build engine")
	}

	images, err := render.NewEncoder(cfg.ImageMode, cfg.PlaceholderBase)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid image mode")
	}

	results := store.NewMemoryRecorder()
	if cfg.ResultsDB != "" {
		db, err := store.OpenSQLite(cfg.ResultsDB)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.ResultsDB).Msg("failed to open results db")
		}
		defer db.Close()
		results = db
	}

	srv := httpserver.New(eng, images, results, httpserver.Options{
		Frame: frame.Options{
			PostURL:   cfg.PostURL(),
			LinkURL:   cfg.LinkURL,
			LinkLabel: cfg.LinkLabel,
		},
		ClientOrigin: cfg.ClientOrigin,
	})

	log.Info().
		Str("port", cfg.Port).
		Int("levels", len(levels)).
		Dur("duration", cfg.GameDuration).
		Bool("autoAdvance", cfg.AutoAdvance).
		Str("images", cfg.ImageMode).
		Msg("starting minimaze")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
