package main

import (
	"context"
	"elevator-sim-service/internal/adapters/eventlog"
	"elevator-sim-service/internal/config"
	"elevator-sim-service/internal/domain"
	"elevator-sim-service/internal/platform/logger"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const usage = `usage: dbtool <command> [flags]

commands:
  init               create or reset the event log schema for EVENT_SINK
  count              print the number of recorded events
  recent [-n 20]     print the newest events
  clear              delete every recorded event
  import -csv PATH   load a schema v2 CSV event file into the configured backend
`

func main() {
	log := logger.Get()

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found (using environment variables)")
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	logger.SetLevel(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := run(ctx, cfg, os.Args[1], os.Args[2:]); err != nil {
		log.Fatal().Err(err).Msg(os.Args[1])
	}
}

func run(ctx context.Context, cfg config.Config, cmd string, args []string) error {
	log := logger.Get()

	// Opening the store brings the schema to the current version.
	store, err := eventlog.Open(ctx, cfg.EventLog)
	if err != nil {
		return err
	}
	defer store.Close()

	switch cmd {
	case "init":
		log.Info().Msgf("Schema ready backend=%s version=%d", store.Backend, eventlog.SchemaVersion)
		return nil

	case "count":
		n, err := store.Count(ctx)
		if err != nil {
			return err
		}
		fmt.Println(n)
		return nil

	case "recent":
		fs := flag.NewFlagSet("recent", flag.ExitOnError)
		limit := fs.Int("n", 20, "number of events to print")
		if err := fs.Parse(args); err != nil {
			return err
		}
		recs, err := store.Recent(ctx, *limit)
		if err != nil {
			return err
		}
		for _, rec := range recs {
			printEvent(rec)
		}
		return nil

	case "clear":
		if err := store.Clear(ctx); err != nil {
			return err
		}
		log.Info().Msgf("Event log cleared backend=%s", store.Backend)
		return nil

	case "import":
		fs := flag.NewFlagSet("import", flag.ExitOnError)
		path := fs.String("csv", "", "schema v2 CSV event file")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *path == "" {
			return fmt.Errorf("import: -csv is required")
		}
		if store.Backend == eventlog.BackendCSV {
			return fmt.Errorf("import: EVENT_SINK is csv; import targets sqlite or postgres")
		}

		recs, err := eventlog.ReadCSVFile(*path)
		if err != nil {
			return err
		}
		log.Info().Msgf("Importing events count=%d backend=%s", len(recs), store.Backend)
		if err := store.RecordMany(ctx, recs); err != nil {
			return err
		}
		log.Info().Msg("Import complete.")
		return nil

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func printEvent(rec domain.EventRecord) {
	fmt.Printf("%s  %s  kind=%-13s pickup=%-3d cabin=%-3d wait=%-4d occupancy=%-3d state=%s\n",
		rec.RecordedAt.Local().Format("2006-01-02 15:04:05"),
		domain.FormatHMS(rec.TimeOfDay),
		rec.Kind,
		rec.PickupFloor,
		rec.CabinFloor,
		rec.WaitSeconds,
		rec.OccupancyBefore,
		rec.State,
	)
}
