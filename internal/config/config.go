package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds the server configuration.
type Config struct {
	Port            string        // HTTP listen port
	LogLevel        string        // zerolog level name
	PublicURL       string        // externally visible base URL, used for post_url
	ImageMode       string        // "datauri" | "placeholder"
	PlaceholderBase string        // base URL of the placeholder-image service
	GameDuration    time.Duration // per-level time limit, 0 disables
	AutoAdvance     bool          // skip the level-cleared confirmation
	LevelsFile      string        // optional level file, embedded levels when empty
	ResultsDB       string        // SQLite path for finished runs, memory when empty
	ClientOrigin    string        // CORS allowed origin
	LinkURL         string        // optional link button on terminal screens
	LinkLabel       string        // label for the link button
}

// PostURL is where the frame client posts the next action.
func (c Config) PostURL() string {
	return strings.TrimRight(c.PublicURL, "/") + "/api/maze"
}

// Load reads a .env file if present and builds the Config from the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg(".env file not loaded")
	}

	dur, err := getEnvAsDuration("GAME_DURATION", 0)
	if err != nil {
		return Config{}, err
	}
	auto, err := getEnvAsBool("AUTO_ADVANCE", false)
	if err != nil {
		return Config{}, err
	}

	port := getEnv("PORT", "5175")
	return Config{
		Port:            port,
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		PublicURL:       getEnv("PUBLIC_URL", "http://localhost:"+port),
		ImageMode:       getEnv("IMAGE_MODE", "datauri"),
		PlaceholderBase: getEnv("PLACEHOLDER_BASE", "https://placehold.co"),
		GameDuration:    dur,
		AutoAdvance:     auto,
		LevelsFile:      os.Getenv("LEVELS_FILE"),
		ResultsDB:       os.Getenv("RESULTS_DB"),
		ClientOrigin:    getEnv("CLIENT_ORIGIN", "*"),
		LinkURL:         os.Getenv("LINK_URL"),
		LinkLabel:       getEnv("LINK_LABEL", "Learn More"),
	}, nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvAsDuration(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		// Plain integers are taken as seconds.
		n, nerr := strconv.Atoi(v)
		if nerr != nil {
			return 0, fmt.Errorf("%s: %w", k, err)
		}
		d = time.Duration(n) * time.Second
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: must not be negative", k)
	}
	return d, nil
}

func getEnvAsBool(k string, def bool) (bool, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", k, err)
	}
	return b, nil
}
