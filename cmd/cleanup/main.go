package main

// Reset questionnaire sessions idle past the timeout:
//   go run ./cmd/cleanup --timeout 30
//   go run ./cmd/cleanup --dry-run

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/chidung091/hr-scanning-sub001/internal/questionnaire"
	"github.com/chidung091/hr-scanning-sub001/internal/shared/config"
	"github.com/chidung091/hr-scanning-sub001/internal/shared/storage/db"
)

func main() {
	cfg := config.Load()

	timeoutMinutes := flag.Int("timeout", cfg.SessionTimeoutMins, "idle timeout in minutes")
	dryRun := flag.Bool("dry-run", false, "report expired sessions without resetting them")
	flag.Parse()

	ctx := context.Background()

	opts := db.OptionsFromEnv(db.DefaultCLIOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	svc := &questionnaire.Service{
		Repo:           &questionnaire.PGRepo{DB: sqlDB},
		TotalQuestions: cfg.TotalQuestions,
	}

	timeout := time.Duration(*timeoutMinutes) * time.Minute
	report, err := svc.ResetExpired(ctx, timeout, *dryRun)
	if err != nil {
		log.Printf("cleanup failed: %v", err)
		os.Exit(1)
	}

	if report.DryRun {
		fmt.Printf("dry run: %d expired session(s) found\n", report.Expired)
	} else {
		fmt.Printf("reset %d of %d expired session(s)\n", report.Reset, report.Expired)
	}
	for _, id := range report.SessionIDs {
		fmt.Printf("  %s\n", id)
	}
}
