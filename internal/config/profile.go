package config

import (
	"elevator-sim-service/internal/services"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// profile is the YAML form of the simulation settings. Unset fields keep their
// current value.
type profile struct {
	Floors             *int   `yaml:"floors"`
	MaxCapacity        *int   `yaml:"max_capacity"`
	FloorTravel        string `yaml:"floor_travel"`
	DoorOperation      string `yaml:"door_operation"`
	DoorSteps          *int   `yaml:"door_steps"`
	PassengerMovement  string `yaml:"passenger_movement"`
	IdleInterval       string `yaml:"idle_interval"`
	RetryInterval      string `yaml:"retry_interval"`
	DestinationTimeout string `yaml:"destination_timeout"`
	TimeoutPolicy      string `yaml:"timeout_policy"`
	FallbackFloor      *int   `yaml:"fallback_floor"`
	StatusLogSize      *int   `yaml:"status_log_size"`
}

func readProfile(path string) (profile, error) {
	var p profile

	file, err := os.Open(path)
	if err != nil {
		return p, fmt.Errorf("read profile: %w", err)
	}
	defer file.Close()

	dec := yaml.NewDecoder(file)
	dec.SetStrict(true)
	if err := dec.Decode(&p); err != nil {
		return p, fmt.Errorf("read profile %q: %w", path, err)
	}
	return p, nil
}

func (p profile) apply(sim *services.Config) error {
	var errs []error

	setInt := func(src *int, dst *int) {
		if src != nil {
			*dst = *src
		}
	}
	setDuration := func(name, src string, dst *time.Duration) {
		if src == "" {
			return
		}
		d, err := time.ParseDuration(src)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			return
		}
		*dst = d
	}

	setInt(p.Floors, &sim.Floors)
	setInt(p.MaxCapacity, &sim.MaxCapacity)
	setDuration("floor_travel", p.FloorTravel, &sim.FloorTravelTime)
	setDuration("door_operation", p.DoorOperation, &sim.DoorOperationTime)
	setInt(p.DoorSteps, &sim.DoorSteps)
	setDuration("passenger_movement", p.PassengerMovement, &sim.PassengerMovementTime)
	setDuration("idle_interval", p.IdleInterval, &sim.IdleInterval)
	setDuration("retry_interval", p.RetryInterval, &sim.RetryInterval)
	setDuration("destination_timeout", p.DestinationTimeout, &sim.DestinationTimeout)
	setInt(p.FallbackFloor, &sim.FallbackFloor)
	setInt(p.StatusLogSize, &sim.StatusLogSize)
	if p.TimeoutPolicy != "" {
		sim.TimeoutPolicy = services.TimeoutPolicy(p.TimeoutPolicy)
	}

	return errors.Join(errs...)
}
