package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mcdev12/teamtango/go/internal/dbconfig"
)

var sportNames = []string{
	"Baseball",
	"Basketball",
	"Football",
	"Golf",
	"Hockey",
	"Lacrosse",
	"Soccer",
	"Softball",
	"Swimming",
	"Tennis",
	"Track",
	"Volleyball",
	"Wrestling",
}

func main() {
	cfg := dbconfig.NewConfigFromEnv()
	pool, err := pgxpool.New(context.Background(), cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	var inserted, skipped, errs int
	for _, name := range sportNames {
		cmdTag, err := pool.Exec(context.Background(), `
            INSERT INTO sports (id, name) VALUES ($1, $2)
            ON CONFLICT (name) DO NOTHING
        `, uuid.New(), name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error inserting sport %s: %v\n", name, err)
			errs++
			continue
		}
		if cmdTag.RowsAffected() == 1 {
			inserted++
		} else {
			skipped++
		}
	}

	fmt.Printf(
		"Sports seed complete: %d total, %d inserted, %d skipped, %d errors\n",
		len(sportNames), inserted, skipped, errs,
	)
}
