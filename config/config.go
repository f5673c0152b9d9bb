package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store backends understood by the entrypoint.
const (
	BackendSheets   = "sheets"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

type Config struct {
	Addr        string   `mapstructure:"addr"`
	CORSOrigins []string `mapstructure:"cors_origins"`
	LogLevel    string   `mapstructure:"log_level"`
	LogJSON     bool     `mapstructure:"log_json"`

	Backend string `mapstructure:"backend"`

	// postgres
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	DBName     string `mapstructure:"dbname"`
	User_DB    string `mapstructure:"userdb"`
	PasswordDB string `mapstructure:"passworddb"`

	// sqlite
	SQLitePath string `mapstructure:"sqlite_path"`

	Sheets SheetsConfig `mapstructure:"sheets"`

	League   string        `mapstructure:"league"`
	Teams    []string      `mapstructure:"teams"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
	RedisURL string        `mapstructure:"redis_url"`

	Admins     []int64 `mapstructure:"admins"`
	TgApiToken string  `mapstructure:"tg_api_token"`
}

// SheetsConfig locates the spreadsheet and its three worksheets.
type SheetsConfig struct {
	CredentialsFile string `mapstructure:"credentials_file"`
	SpreadsheetID   string `mapstructure:"spreadsheet_id"`
	SpreadsheetName string `mapstructure:"spreadsheet_name"`
	PlayersSheet    string `mapstructure:"players_sheet"`
	LineupsSheet    string `mapstructure:"lineups_sheet"`
	LedgerSheet     string `mapstructure:"ledger_sheet"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("cors_origins", []string{"*"})
	v.SetDefault("log_level", "info")
	v.SetDefault("log_json", false)
	v.SetDefault("backend", BackendSheets)
	v.SetDefault("host", "localhost")
	v.SetDefault("port", 5432)
	v.SetDefault("dbname", "mr_league")
	v.SetDefault("userdb", "postgres")
	v.SetDefault("passworddb", "")
	v.SetDefault("sqlite_path", "mr_league.db")
	v.SetDefault("sheets.credentials_file", "config/service_account.json")
	v.SetDefault("sheets.spreadsheet_id", "")
	v.SetDefault("sheets.spreadsheet_name", "season_2025")
	v.SetDefault("sheets.players_sheet", "dados_jogadores")
	v.SetDefault("sheets.lineups_sheet", "escalacoes_rodadas")
	v.SetDefault("sheets.ledger_sheet", "main")
	v.SetDefault("league", "LIGA")
	v.SetDefault("teams", []string{"AMARELO", "BRANCO", "VERMELHO", "PRETO"})
	v.SetDefault("cache_ttl", time.Hour)
	v.SetDefault("redis_url", "")
	v.SetDefault("admins", []int64{})
	v.SetDefault("tg_api_token", "")
}

// InitConfig reads ./config/config.yaml. A missing file is not an error: defaults and
// MRL_* environment variables still apply.
func InitConfig() (*Config, error) {
	return Load("./config")
}

func Load(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetEnvPrefix("MRL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("init config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Backend {
	case BackendSheets, BackendPostgres, BackendSQLite:
	default:
		return fmt.Errorf("config: unknown backend %q", c.Backend)
	}
	if len(c.Teams) == 0 {
		return errors.New("config: at least one team is required")
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("config: cache_ttl must be positive, got %s", c.CacheTTL)
	}
	return nil
}

// PostgresDSN builds the gorm postgres DSN.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable TimeZone=UTC",
		c.Host, c.User_DB, c.PasswordDB, c.DBName, c.Port)
}

func (c *Config) IsAdmin(chatID int64) bool {
	for _, id := range c.Admins {
		if id == chatID {
			return true
		}
	}
	return false
}
