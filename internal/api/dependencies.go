package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Shamanth-8/drones/internal/auth"
	"github.com/Shamanth-8/drones/internal/common"
	"github.com/Shamanth-8/drones/internal/config"
	"github.com/Shamanth-8/drones/internal/constants"
	"github.com/Shamanth-8/drones/internal/db"
	"github.com/Shamanth-8/drones/internal/db/repositories"
	"github.com/Shamanth-8/drones/internal/jobs"
	"github.com/Shamanth-8/drones/internal/logging"
	"github.com/Shamanth-8/drones/internal/metrics"
	"github.com/Shamanth-8/drones/internal/providers"
	"github.com/Shamanth-8/drones/internal/recordstore"
	"github.com/Shamanth-8/drones/internal/services"
)

const eventStreamMaxLen = 10000

// Repositories are only set when STORE_DRIVER is a database.
type Repositories struct {
	Records     *repositories.RecordRepository
	SyncHistory *repositories.SyncHistoryRepo
	Stats       *repositories.RecordStatsRepo
}

type Services struct {
	Store    *recordstore.Store
	Cache    common.CacheInterface
	Events   common.EventPublisher
	Provider providers.DataProvider
	Roster   *services.RosterService
	Fleet    *services.FleetService
	Detector *services.ConflictDetector
	Sync     *services.SyncService
	Status   *services.StatusService
	Ops      *services.OperationsService
	Tokens   *auth.TokenSigner // nil when operator auth is disabled
}

// Jobs are constructed here and scheduled by the server binary.
type Jobs struct {
	Sync  *jobs.SyncJob
	Sweep *jobs.ConflictSweepJob
}

type Dependencies struct {
	Config   *config.Config
	Metrics  *metrics.MetricsRegistry
	Repo     *Repositories
	Services *Services
	Jobs     *Jobs

	closers []func() error
}

// InitDependencies wires the record store, cache, remote provider and
// services described by cfg, then loads the tables.
func InitDependencies(ctx context.Context, cfg *config.Config, reg *metrics.MetricsRegistry) (*Dependencies, error) {
	deps := &Dependencies{Config: cfg, Metrics: reg, Repo: &Repositories{}}

	backend, err := deps.initBackend(ctx)
	if err != nil {
		deps.Close()
		return nil, err
	}

	store := recordstore.New(backend, reg)
	if err := store.Load(ctx); err != nil {
		// Tables that failed stay empty; the service still answers.
		logging.Warn("Record store loaded with errors", "backend", backend.Name(), "error", err)
	}

	var redisClient *redis.Client
	if cfg.CacheDriver == config.CacheRedis || cfg.EventStream != "" {
		redisClient = common.NewRedisClient(cfg.Redis)
		deps.closers = append(deps.closers, redisClient.Close)
	}

	cache := deps.initCache(redisClient)
	events := deps.initEvents(redisClient)
	provider := initProvider(cfg)

	deps.buildServices(store, provider, cache, events)
	return deps, nil
}

// NewInMemoryDependencies wires the services over a preloaded store with an
// in-memory cache and no remote provider or database.
func NewInMemoryDependencies(cfg *config.Config, reg *metrics.MetricsRegistry, store *recordstore.Store) *Dependencies {
	deps := &Dependencies{Config: cfg, Metrics: reg, Repo: &Repositories{}}
	deps.buildServices(store, nil, common.NewCacheService(600, 600), common.NoopPublisher{})
	return deps
}

// buildServices wires the domain services over an already loaded store.
func (d *Dependencies) buildServices(store *recordstore.Store, provider providers.DataProvider, cache common.CacheInterface, events common.EventPublisher) {
	cfg := d.Config

	var history services.SyncRecorder
	if d.Repo.SyncHistory != nil {
		history = d.Repo.SyncHistory
	}

	roster := services.NewRosterService(store)
	fleet := services.NewFleetService(store, services.ParseUnknownDronePolicy(cfg.WeatherUnknownDrone))
	detector := services.NewConflictDetector(store, roster, fleet)
	syncSvc := services.NewSyncService(store, provider, history, events, d.Metrics)
	status := services.NewStatusService(store, syncSvc, events, d.Metrics)

	var tokens *auth.TokenSigner
	if cfg.OperatorTokenSecret != "" {
		tokens = auth.NewTokenSigner([]byte(cfg.OperatorTokenSecret))
	} else {
		logging.Warn("OPERATOR_TOKEN_SECRET not set, mutating routes are open")
	}

	d.Services = &Services{
		Store:    store,
		Cache:    cache,
		Events:   events,
		Provider: provider,
		Roster:   roster,
		Fleet:    fleet,
		Detector: detector,
		Sync:     syncSvc,
		Status:   status,
		Ops:      services.NewOperationsService(store, roster, fleet, detector, status, cache, d.Metrics, cfg.ResultLimit),
		Tokens:   tokens,
	}

	var syncHistory jobs.SyncHistory
	if d.Repo.SyncHistory != nil {
		syncHistory = d.Repo.SyncHistory
	}
	d.Jobs = &Jobs{
		Sync:  jobs.NewSyncJob(syncSvc, syncHistory),
		Sweep: jobs.NewConflictSweepJob(d.Services.Ops, events, d.Metrics),
	}
}

func (d *Dependencies) initBackend(ctx context.Context) (recordstore.Backend, error) {
	cfg := d.Config

	switch cfg.StoreDriver {
	case config.StoreSQLite, config.StorePostgres:
		gdb, err := openDatabase(cfg)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(gdb); err != nil {
			return nil, err
		}
		if sqlDB, err := gdb.DB(); err == nil {
			d.closers = append(d.closers, sqlDB.Close)
		}

		driverName := "postgres"
		if cfg.StoreDriver == config.StoreSQLite {
			driverName = "sqlite3"
		}
		sqlxDB, err := db.WrapGorm(gdb, driverName)
		if err != nil {
			return nil, err
		}

		d.Repo.Records = repositories.NewRecordRepository(gdb)
		d.Repo.SyncHistory = repositories.NewSyncHistoryRepo(gdb)
		d.Repo.Stats = repositories.NewRecordStatsRepo(sqlxDB)
		return recordstore.NewGormBackend(d.Repo.Records, cfg.StoreDriver), nil

	case config.StoreS3:
		return recordstore.NewS3Backend(ctx, cfg.S3)

	default:
		files := make(map[string]string, len(cfg.Tables))
		for name, t := range cfg.Tables {
			files[name] = t.File
		}
		return recordstore.NewCSVBackend(files), nil
	}
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	if cfg.StoreDriver == config.StoreSQLite {
		return db.InitSQLiteORM(cfg.SQLitePath)
	}
	dsn := cfg.Postgres.DSN()
	if err := db.WaitForPostgres(dsn, 10, 500*time.Millisecond); err != nil {
		return nil, err
	}
	return db.InitPostgresORM(dsn)
}

func (d *Dependencies) initCache(client *redis.Client) common.CacheInterface {
	if d.Config.CacheDriver == config.CacheRedis && client != nil {
		redisCache, err := common.NewRedisCacheService(client)
		if err == nil {
			return redisCache
		}
		logging.Warn("Falling back to in-memory cache", "error", err)
	}
	return common.NewCacheService(600, 600)
}

func (d *Dependencies) initEvents(client *redis.Client) common.EventPublisher {
	if d.Config.EventStream == "" || client == nil {
		return common.NoopPublisher{}
	}
	logging.Info("Publishing ops events", "stream", d.Config.EventStream)
	return common.NewRedisEventStream(client, d.Config.EventStream, eventStreamMaxLen)
}

func initProvider(cfg *config.Config) providers.DataProvider {
	switch cfg.SyncProvider {
	case config.SyncAirtable:
		tables := make(map[string]string, len(cfg.Tables))
		for name, t := range cfg.Tables {
			if t.AirtableTable != "" {
				tables[name] = t.AirtableTable
			}
		}
		return providers.NewAirtableProvider(cfg.AirtableAPIKey, cfg.AirtableBaseID, tables)

	case config.SyncPublicSheet:
		sheets := make(map[string]string, len(cfg.Tables))
		for name, t := range cfg.Tables {
			sheets[name] = t.SheetID
		}
		return providers.NewPublicSheetProvider(sheets)
	}
	return nil
}

// Close releases database and redis connections.
func (d *Dependencies) Close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	d.closers = nil
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("close dependencies: %w", err)
	}
	return nil
}

// TableNames is the fixed table list, for handlers validating path params.
func TableNames() []string {
	return constants.AllTables
}
