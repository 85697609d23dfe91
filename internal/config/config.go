package config

import (
	"elevator-sim-service/internal/adapters/eventlog"
	"elevator-sim-service/internal/services"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

type Config struct {
	Port         string
	LogLevel     string
	EventLog     eventlog.Options
	RedisAddr    string
	RedisChannel string
	Simulation   services.Config
}

// Load builds the process configuration from defaults, an optional YAML profile
// (SIM_CONFIG_PATH) and SIM_* environment variables, in that order of precedence.
// godotenv is expected to have run already.
func Load() (Config, error) {
	backend, err := eventlog.ParseBackend(Get("EVENT_SINK", string(eventlog.BackendSqlite)))
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	cfg := Config{
		Port:     Get("PORT", "8080"),
		LogLevel: Get("LOG_LEVEL", "info"),
		EventLog: eventlog.Options{
			Backend:     backend,
			CSVPath:     Get("EVENT_CSV_PATH", "data/pickup_events.csv"),
			SqlitePath:  Get("DB_PATH", "data/events.db"),
			DatabaseURL: os.Getenv("DATABASE_URL"),
		},
		RedisAddr:    strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisChannel: Get("REDIS_CHANNEL", "elevator:state"),
		Simulation:   services.DefaultConfig(),
	}

	if path := strings.TrimSpace(os.Getenv("SIM_CONFIG_PATH")); path != "" {
		p, err := readProfile(path)
		if err != nil {
			return Config{}, fmt.Errorf("load config: %w", err)
		}
		if err := p.apply(&cfg.Simulation); err != nil {
			return Config{}, fmt.Errorf("load config: profile %q: %w", path, err)
		}
	}

	if err := applyEnv(&cfg.Simulation); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if err := cfg.Simulation.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func applyEnv(sim *services.Config) error {
	var errs []error

	intVar := func(key string, dst *int) {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s=%q: %w", key, v, err))
			return
		}
		*dst = n
	}
	durationVar := func(key string, dst *time.Duration) {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s=%q: %w", key, v, err))
			return
		}
		*dst = d
	}

	intVar("SIM_FLOORS", &sim.Floors)
	intVar("SIM_MAX_CAPACITY", &sim.MaxCapacity)
	durationVar("SIM_FLOOR_TRAVEL", &sim.FloorTravelTime)
	durationVar("SIM_DOOR_OPERATION", &sim.DoorOperationTime)
	durationVar("SIM_PASSENGER_MOVEMENT", &sim.PassengerMovementTime)
	durationVar("SIM_IDLE_INTERVAL", &sim.IdleInterval)
	durationVar("SIM_RETRY_INTERVAL", &sim.RetryInterval)
	durationVar("SIM_DESTINATION_TIMEOUT", &sim.DestinationTimeout)
	intVar("SIM_DOOR_STEPS", &sim.DoorSteps)
	intVar("SIM_FALLBACK_FLOOR", &sim.FallbackFloor)

	if v := strings.TrimSpace(os.Getenv("SIM_TIMEOUT_POLICY")); v != "" {
		sim.TimeoutPolicy = services.TimeoutPolicy(strings.ToLower(v))
	}

	return errors.Join(errs...)
}
