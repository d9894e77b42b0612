package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/teamtango/go/internal/appconfig"
	"github.com/mcdev12/teamtango/go/internal/dbconfig"
	"github.com/mcdev12/teamtango/go/internal/location"
	"github.com/mcdev12/teamtango/go/internal/teams"
)

func main() {
	owner := flag.String("owner", "", "owner user id whose teams should be geocoded")
	configPath := flag.String("config", appconfig.GetEnv("CONFIG_PATH", "config.yaml"), "path to config.yaml")
	flag.Parse()

	_ = godotenv.Load()
	appconfig.SetupLogging()

	ownerID, err := uuid.Parse(*owner)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -owner: %v\n", err)
		os.Exit(2)
	}

	cfg, err := appconfig.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbconfig.NewConfigFromEnv().DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	clock := clockwork.NewRealClock()
	geocoder := appconfig.NewGeocoder(cfg, clock, nil)
	backfiller := location.NewBackfiller(location.NewResolver(geocoder, clock), teams.NewRepository(pool))

	result, err := backfiller.Backfill(ctx, ownerID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "backfill failed: %v\n", err)
		os.Exit(1)
	}

	out, _ := json.Marshal(map[string]int{
		"updated": result.UpdatedCount,
		"failed":  result.FailedCount,
		"skipped": result.SkippedCount,
	})
	fmt.Println(string(out))
}
