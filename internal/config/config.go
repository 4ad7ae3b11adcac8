package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the daemon and client configuration. Values come from an
// optional YAML, JSON or TOML file, then VORTARO_* environment variables,
// then the env-default tags.
type Config struct {
	Server   ServerConfig   `yaml:"server" json:"server"`
	Log      LogConfig      `yaml:"log" json:"log"`
	Search   SearchConfig   `yaml:"search" json:"search"`
	Analysis AnalysisConfig `yaml:"analysis" json:"analysis"`
	CORS     CORSConfig     `yaml:"cors" json:"cors"`
	Sources  []SourceConfig `yaml:"sources" json:"sources"`

	// ESPDIC is a shortcut for a single ESPDIC text source, handy when
	// configuring through the environment only.
	ESPDIC string `yaml:"espdic" json:"espdic" env:"VORTARO_ESPDIC"`
}

type ServerConfig struct {
	Listen          string        `yaml:"listen" json:"listen" env:"VORTARO_LISTEN" env-default:":8080"`
	BasePath        string        `yaml:"base_path" json:"base_path" env:"VORTARO_BASE_PATH"`
	ReadTimeout     time.Duration `yaml:"read_timeout" json:"read_timeout" env:"VORTARO_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" json:"write_timeout" env:"VORTARO_WRITE_TIMEOUT" env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout" env:"VORTARO_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type LogConfig struct {
	Level string `yaml:"level" json:"level" env:"VORTARO_LOG_LEVEL" env-default:"info"`
}

type SearchConfig struct {
	// DisableFolding turns off matching plain c g h j s u against their
	// diacritic forms in Esperanto searches.
	DisableFolding bool          `yaml:"disable_folding" json:"disable_folding" env:"VORTARO_SEARCH_DISABLE_FOLDING"`
	DefaultLimit   int           `yaml:"default_limit" json:"default_limit" env:"VORTARO_SEARCH_DEFAULT_LIMIT" env-default:"50"`
	MaxLimit       int           `yaml:"max_limit" json:"max_limit" env:"VORTARO_SEARCH_MAX_LIMIT" env-default:"1000"`
	CacheSize      int           `yaml:"cache_size" json:"cache_size" env:"VORTARO_SEARCH_CACHE_SIZE" env-default:"1024"`
	CacheTTL       time.Duration `yaml:"cache_ttl" json:"cache_ttl" env:"VORTARO_SEARCH_CACHE_TTL" env-default:"5m"`
}

type AnalysisConfig struct {
	// MemoSize bounds the per-headword analysis memo; negative disables it.
	MemoSize int `yaml:"memo_size" json:"memo_size" env:"VORTARO_ANALYSIS_MEMO_SIZE" env-default:"4096"`
	// Warm analyzes every headword at startup using WarmWorkers
	// goroutines, zero meaning one per CPU.
	Warm        bool `yaml:"warm" json:"warm" env:"VORTARO_ANALYSIS_WARM"`
	WarmWorkers int  `yaml:"warm_workers" json:"warm_workers" env:"VORTARO_ANALYSIS_WARM_WORKERS"`
}

type CORSConfig struct {
	AllowedOrigins string `yaml:"allowed_origins" json:"allowed_origins" env:"VORTARO_CORS_ALLOWED_ORIGINS" env-default:"*"`
}

type SourceConfig struct {
	ID       string `yaml:"id" json:"id"`
	Name     string `yaml:"name" json:"name"`
	Type     string `yaml:"type" json:"type"`
	Path     string `yaml:"path" json:"path"`
	Encoding string `yaml:"encoding" json:"encoding"`
}

// Origins splits the comma separated allowed origins.
func (c CORSConfig) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// ShortcutID is the source id given to the ESPDIC shortcut.
const ShortcutID = "espdic"

// AllSources returns Sources with the ESPDIC shortcut appended.
func (c Config) AllSources() []SourceConfig {
	out := append([]SourceConfig(nil), c.Sources...)
	if p := strings.TrimSpace(c.ESPDIC); p != "" {
		out = append(out, SourceConfig{ID: ShortcutID, Name: "ESPDIC", Type: "espdic", Path: p})
	}
	return out
}

// Default is the configuration with every env-default applied and no
// sources.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Listen:          ":8080",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
		Search: SearchConfig{
			DefaultLimit: 50,
			MaxLimit:     1000,
			CacheSize:    1024,
			CacheTTL:     5 * time.Minute,
		},
		Analysis: AnalysisConfig{
			MemoSize: 4096,
		},
		CORS: CORSConfig{
			AllowedOrigins: "*",
		},
	}
}

// Load reads path when it is not empty, otherwise the environment alone,
// and validates the result.
func Load(path string) (Config, error) {
	var cfg Config
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("config: read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: validate: %w", err)
	}
	return cfg, nil
}

// Validate checks values and fills source ids, names and types that can
// be derived from the path.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Listen) == "" {
		return fmt.Errorf("server.listen is empty")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	if c.Search.DefaultLimit <= 0 {
		return fmt.Errorf("search.default_limit must be > 0 (got %d)", c.Search.DefaultLimit)
	}
	if c.Search.MaxLimit < c.Search.DefaultLimit {
		return fmt.Errorf("search.max_limit must be >= default_limit (got %d)", c.Search.MaxLimit)
	}
	if c.Analysis.WarmWorkers < 0 {
		return fmt.Errorf("analysis.warm_workers must be >= 0 (got %d)", c.Analysis.WarmWorkers)
	}
	seen := make(map[string]bool, len(c.Sources))
	for i := range c.Sources {
		s := &c.Sources[i]
		if strings.TrimSpace(s.Path) == "" {
			return fmt.Errorf("sources[%d]: path is empty", i)
		}
		if s.ID == "" {
			s.ID = strings.TrimSuffix(filepath.Base(s.Path), filepath.Ext(s.Path))
		}
		if s.Name == "" {
			s.Name = s.ID
		}
		if s.Type == "" {
			s.Type = DetectType(s.Path)
		}
		if seen[s.ID] {
			return fmt.Errorf("sources[%d]: duplicate id %q", i, s.ID)
		}
		seen[s.ID] = true
	}
	if strings.TrimSpace(c.ESPDIC) != "" && seen[ShortcutID] {
		return fmt.Errorf("espdic: shortcut id %q is already used by a source; set an explicit id on that source", ShortcutID)
	}
	return nil
}

// DetectType guesses a source type from its path: StarDict .ifo, MDict
// .mdx, Lingvo .dsl, an artifacts directory, or ESPDIC text for anything
// else.
func DetectType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ifo":
		return "stardict"
	case ".mdx":
		return "mdict"
	case ".dsl":
		return "dsl"
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return "artifacts"
	}
	return "espdic"
}
