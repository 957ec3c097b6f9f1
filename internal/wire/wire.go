// Package wire provides dependency injection for the prodline console.
// It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"sync"

	"github.com/example/prodline/internal/adapters/api"
	sqliteadapter "github.com/example/prodline/internal/adapters/sqlite"
	"github.com/example/prodline/internal/app"
	"github.com/example/prodline/internal/config"
	"github.com/example/prodline/internal/db"
	"github.com/example/prodline/internal/logging"
	"github.com/example/prodline/internal/ports/primary"
	"github.com/example/prodline/internal/ports/secondary"
)

var (
	cfg              *config.Config
	state            *app.State
	poller           *app.Poller
	sessionWatcher   secondary.SessionWatcher
	authService      primary.AuthService
	processService   primary.ProcessService
	lifecycleService primary.LifecycleService
	machineService   primary.MachineService
	once             sync.Once
)

// Config returns the loaded configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// AppState returns the shared console state.
func AppState() *app.State {
	once.Do(initServices)
	return state
}

// JobPoller returns the shared job poller, so the console can attach a
// progress callback.
func JobPoller() *app.Poller {
	once.Do(initServices)
	return poller
}

// SessionWatcher returns the store watcher used by the interactive console.
func SessionWatcher() secondary.SessionWatcher {
	once.Do(initServices)
	return sessionWatcher
}

// AuthService returns the singleton AuthService instance.
func AuthService() primary.AuthService {
	once.Do(initServices)
	return authService
}

// ProcessService returns the singleton ProcessService instance.
func ProcessService() primary.ProcessService {
	once.Do(initServices)
	return processService
}

// LifecycleService returns the singleton LifecycleService instance.
func LifecycleService() primary.LifecycleService {
	once.Do(initServices)
	return lifecycleService
}

// MachineService returns the singleton MachineService instance.
func MachineService() primary.MachineService {
	once.Do(initServices)
	return machineService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	var err error
	cfg, err = config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.APIBaseURL == "" {
		log.Fatalf("no backend URL configured: set %s or api_base_url in the config file", config.EnvAPIBaseURL)
	}

	if err := logging.Setup(cfg.LogLevel); err != nil {
		log.Fatalf("failed to set up logging: %v", err)
	}
	logger := logging.GetLogger()

	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	gateway := api.NewClient(cfg.APIBaseURL,
		api.WithTimeout(cfg.RequestTimeout()),
		api.WithLogger(logger),
	)
	store := sqliteadapter.NewSessionRepository(database)
	sessionWatcher = sqliteadapter.NewSessionWatcher(database, cfg.WatchInterval(), logger)
	clock := secondary.RealClock{}

	state = app.NewState()
	poller = app.NewPoller(gateway, clock, cfg.PollInterval(), cfg.MaxPollAttempts(), logger)

	authService = app.NewAuthService(gateway, store, clock, state, logger)
	processService = app.NewProcessService(gateway, state)
	lifecycleService = app.NewLifecycleService(gateway, clock, poller, state, logger)
	machineService = app.NewMachineService(gateway, state)
}
