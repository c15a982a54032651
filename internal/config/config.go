package config

import "time"

// Config is the root application configuration.
type Config struct {
	Orthography OrthographyConfig `yaml:"orthography"`
	Database    DatabaseConfig    `yaml:"database"`
	Log         LogConfig         `yaml:"log"`
}

// Fragment sources.
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// OrthographyConfig selects where fragments come from and how text is spaced.
type OrthographyConfig struct {
	Source         string `yaml:"source"          env:"ORTHO_SOURCE"          env-default:"file"`
	FragmentsPath  string `yaml:"fragments_path"  env:"ORTHO_FRAGMENTS_PATH"`
	ConfigDir      string `yaml:"config_dir"      env:"ORTHO_CONFIG_DIR"`
	SetName        string `yaml:"set_name"        env:"ORTHO_SET_NAME"        env-default:"melani_orthography"`
	LayoutPath     string `yaml:"layout_path"     env:"ORTHO_LAYOUT_PATH"`
	SpacePlacement string `yaml:"space_placement" env:"ORTHO_SPACE_PLACEMENT" env-default:"after"`
	WordEndVowels  string `yaml:"word_end_vowels" env:"ORTHO_WORD_END_VOWELS" env-default:"ieao"`
	Watch          bool   `yaml:"watch"           env:"ORTHO_WATCH"           env-default:"false"`
}

// DatabaseConfig holds PostgreSQL connection settings. DSN is only
// required when fragments are kept in postgres.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"4"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"0"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}
