// Package config loads fleet coordinator settings from the environment and
// an optional YAML table-mapping file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Shamanth-8/drones/internal/constants"
)

// Store drivers
const (
	StoreCSV      = "csv"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreS3       = "s3"
)

// Sync providers
const (
	SyncNone        = "none"
	SyncAirtable    = "airtable"
	SyncPublicSheet = "public_sheet"
)

// Cache drivers
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config is the full process configuration.
type Config struct {
	AppEnv   string
	HTTPAddr string

	StoreDriver string
	SQLitePath  string
	Postgres    PostgresConfig
	S3          S3Config

	SyncProvider   string
	AirtableAPIKey string
	AirtableBaseID string
	SyncSchedule   string
	SweepSchedule  string

	CacheDriver string
	Redis       RedisConfig
	EventStream string

	OperatorTokenSecret string
	WeatherUnknownDrone string
	ResultLimit         int

	Tables map[string]TableConfig
}

// PostgresConfig holds connection settings for the postgres store driver.
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DB       string
}

// DSN renders a libpq connection URL.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", p.User, p.Password, p.Host, p.Port, p.DB)
}

// S3Config holds object storage settings for the s3 store driver.
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	Prefix    string
	PathStyle bool

	// Static keys; empty means the default AWS credential chain.
	AccessKeyID     string
	SecretAccessKey string
}

// RedisConfig holds connection settings shared by the redis cache and event stream.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

// Addr returns host:port.
func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

// TableConfig maps one record table to its file and remote locations.
type TableConfig struct {
	File          string `yaml:"file"`
	SheetID       string `yaml:"sheet_id"`
	AirtableTable string `yaml:"airtable_table"`
}

type tablesFile struct {
	Tables map[string]TableConfig `yaml:"tables"`
}

// Load reads configuration from the process environment.
func Load() (*Config, error) {
	return LoadFrom(os.Getenv)
}

// LoadFrom reads configuration through getenv, applies defaults and validates.
func LoadFrom(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		AppEnv:      getenv("APP_ENV"),
		HTTPAddr:    getenv("HTTP_ADDR"),
		StoreDriver: strings.ToLower(getenv("STORE_DRIVER")),
		SQLitePath:  getenv("SQLITE_PATH"),
		Postgres: PostgresConfig{
			Host:     getenv("PG_HOST"),
			Port:     getenv("PG_PORT"),
			User:     getenv("PG_USER"),
			Password: getenv("PG_PASSWORD"),
			DB:       getenv("PG_DB"),
		},
		S3: S3Config{
			Bucket:   getenv("S3_BUCKET"),
			Region:   getenv("S3_REGION"),
			Endpoint: getenv("S3_ENDPOINT"),
			Prefix:   getenv("S3_PREFIX"),

			AccessKeyID:     getenv("S3_ACCESS_KEY_ID"),
			SecretAccessKey: getenv("S3_SECRET_ACCESS_KEY"),
		},
		SyncProvider:   strings.ToLower(getenv("SYNC_PROVIDER")),
		AirtableAPIKey: getenv("AIRTABLE_API_KEY"),
		AirtableBaseID: getenv("AIRTABLE_BASE_ID"),
		SyncSchedule:   getenv("SYNC_SCHEDULE"),
		SweepSchedule:  getenv("SWEEP_SCHEDULE"),
		CacheDriver:    strings.ToLower(getenv("CACHE_DRIVER")),
		Redis: RedisConfig{
			Host:     getenv("REDIS_HOST"),
			Port:     getenv("REDIS_PORT"),
			Password: getenv("REDIS_PASSWORD"),
		},
		EventStream:         getenv("EVENT_STREAM"),
		OperatorTokenSecret: getenv("OPERATOR_TOKEN_SECRET"),
		WeatherUnknownDrone: strings.ToLower(getenv("WEATHER_UNKNOWN_DRONE")),
		Tables:              map[string]TableConfig{},
	}

	var errs []string

	if v := getenv("S3_PATH_STYLE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Sprintf("S3_PATH_STYLE must be a boolean, got %q", v))
		}
		cfg.S3.PathStyle = b
	}
	if v := getenv("RESULT_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Sprintf("RESULT_LIMIT must be an integer, got %q", v))
		}
		cfg.ResultLimit = n
	}

	if path := getenv("TABLES_CONFIG"); path != "" {
		tables, err := LoadTables(path)
		if err != nil {
			errs = append(errs, err.Error())
		} else {
			cfg.Tables = tables
		}
	}

	// Per-table env vars override the mapping file.
	envTable := func(table, fileKey, sheetKey string) {
		tc := cfg.Tables[table]
		if v := getenv(fileKey); v != "" {
			tc.File = v
		}
		if v := getenv(sheetKey); v != "" {
			tc.SheetID = v
		}
		cfg.Tables[table] = tc
	}
	envTable(constants.TablePilots, "PILOT_FILE", "PILOT_SHEET_ID")
	envTable(constants.TableDrones, "DRONE_FILE", "DRONE_SHEET_ID")
	envTable(constants.TableMissions, "MISSION_FILE", "MISSIONS_SHEET_ID")

	cfg.applyDefaults()
	errs = append(errs, cfg.validate()...)
	if len(errs) > 0 {
		return nil, fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

// LoadTables reads a YAML table-mapping file.
func LoadTables(path string) (map[string]TableConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return ParseTables(data)
}

// ParseTables unmarshals a YAML table mapping. Unknown table names are rejected.
func ParseTables(data []byte) (map[string]TableConfig, error) {
	var f tablesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config: parse tables: %w", err)
	}
	if f.Tables == nil {
		f.Tables = map[string]TableConfig{}
	}
	for name := range f.Tables {
		if !isKnownTable(name) {
			return nil, fmt.Errorf("config: unknown table %q", name)
		}
	}
	return f.Tables, nil
}

func isKnownTable(name string) bool {
	for _, t := range constants.AllTables {
		if t == name {
			return true
		}
	}
	return false
}

var defaultFiles = map[string]string{
	constants.TablePilots:   "pilot_roster.csv",
	constants.TableDrones:   "drone_fleet.csv",
	constants.TableMissions: "missions.csv",
}

var defaultAirtableTables = map[string]string{
	constants.TablePilots:   "Pilots",
	constants.TableDrones:   "Drones",
	constants.TableMissions: "Missions",
}

func (c *Config) applyDefaults() {
	if c.AppEnv == "" {
		c.AppEnv = "development"
	}
	if c.HTTPAddr == "" {
		c.HTTPAddr = ":8080"
	}
	if c.StoreDriver == "" {
		c.StoreDriver = StoreCSV
	}
	if c.SQLitePath == "" {
		c.SQLitePath = "fleet.db"
	}
	if c.Postgres.Port == "" {
		c.Postgres.Port = "5432"
	}
	if c.SyncProvider == "" {
		c.SyncProvider = SyncNone
	}
	if c.SyncSchedule == "" {
		c.SyncSchedule = "@every 1h"
	}
	if c.SweepSchedule == "" {
		c.SweepSchedule = "*/15 * * * *"
	}
	if c.CacheDriver == "" {
		c.CacheDriver = CacheMemory
	}
	if c.Redis.Host == "" {
		c.Redis.Host = "localhost"
	}
	if c.Redis.Port == "" {
		c.Redis.Port = "6379"
	}
	if c.WeatherUnknownDrone == "" {
		c.WeatherUnknownDrone = "open"
	}
	if c.ResultLimit == 0 {
		c.ResultLimit = constants.DefaultResultLimit
	}
	for _, name := range constants.AllTables {
		tc := c.Tables[name]
		if tc.File == "" {
			tc.File = defaultFiles[name]
		}
		if tc.AirtableTable == "" {
			tc.AirtableTable = defaultAirtableTables[name]
		}
		c.Tables[name] = tc
	}
}

func (c *Config) validate() []string {
	var errs []string
	switch c.StoreDriver {
	case StoreCSV, StoreSQLite:
	case StorePostgres:
		if c.Postgres.Host == "" || c.Postgres.User == "" || c.Postgres.DB == "" {
			errs = append(errs, "PG_HOST, PG_USER and PG_DB are required for the postgres store")
		}
	case StoreS3:
		if c.S3.Bucket == "" {
			errs = append(errs, "S3_BUCKET is required for the s3 store")
		}
	default:
		errs = append(errs, fmt.Sprintf("unknown STORE_DRIVER %q", c.StoreDriver))
	}

	switch c.SyncProvider {
	case SyncNone, SyncPublicSheet:
	case SyncAirtable:
		if c.AirtableAPIKey == "" || c.AirtableBaseID == "" {
			errs = append(errs, "AIRTABLE_API_KEY and AIRTABLE_BASE_ID are required for the airtable provider")
		}
	default:
		errs = append(errs, fmt.Sprintf("unknown SYNC_PROVIDER %q", c.SyncProvider))
	}

	if c.CacheDriver != CacheMemory && c.CacheDriver != CacheRedis {
		errs = append(errs, fmt.Sprintf("unknown CACHE_DRIVER %q", c.CacheDriver))
	}
	if c.WeatherUnknownDrone != "open" && c.WeatherUnknownDrone != "closed" {
		errs = append(errs, fmt.Sprintf("WEATHER_UNKNOWN_DRONE must be open or closed, got %q", c.WeatherUnknownDrone))
	}
	if c.ResultLimit < 0 {
		errs = append(errs, "RESULT_LIMIT must not be negative")
	}
	return errs
}

// UsesDatabase reports whether the store driver is backed by GORM.
func (c *Config) UsesDatabase() bool {
	return c.StoreDriver == StoreSQLite || c.StoreDriver == StorePostgres
}
