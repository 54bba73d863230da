package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is the environment variable prefix for server settings.
const Prefix = "genoviz"

// Server holds the HTTP server settings read from GENOVIZ_* variables.
type Server struct {
	Port int `envconfig:"PORT" default:"8080"`
	// RedisURL selects the Redis artifact cache. Empty uses a file cache.
	RedisURL string `envconfig:"REDIS_URL"`
	// MongoURI selects the MongoDB session store. Empty keeps sessions in
	// memory.
	MongoURI   string        `envconfig:"MONGO_URI"`
	MongoDB    string        `envconfig:"MONGO_DB" default:"genoviz"`
	CacheTTL   time.Duration `envconfig:"CACHE_TTL" default:"24h"`
	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"24h"`
	// AllowedOrigins are websocket origin patterns, comma separated.
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"localhost:*"`
	StyleFile      string   `envconfig:"STYLE_FILE"`
}

// LoadServer reads server settings from the environment.
func LoadServer() (*Server, error) {
	var cfg Server
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, err
	}
	for i, o := range cfg.AllowedOrigins {
		cfg.AllowedOrigins[i] = strings.TrimSpace(o)
	}
	return &cfg, nil
}
