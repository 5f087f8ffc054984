package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"ecosync/backend/internal/complaint"
	"ecosync/backend/internal/config"
	"ecosync/backend/internal/logger"
	"ecosync/backend/internal/storage"
	"ecosync/backend/internal/storage/backend"

	"github.com/sirupsen/logrus"
)

const usage = `Usage: admin <command> [args]

Commands:
  award <user_id> <points>   add points to a user's ledger and counter
  resolve <complaint_id>     mark a complaint resolved
  stats [user_id]            print complaint counts by status
  migrate                    create the SQL schema (needs DATABASE_URL)`

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	cfg, err := config.Load()
	logger.Init(cfg.LogLevel)
	log := logger.Default()

	command := os.Args[1]
	if command == "migrate" {
		if err := migrate(os.Getenv("DATABASE_URL")); err != nil {
			log.WithError(err).Fatal("migration failed")
		}
		fmt.Println("Schema migrated.")
		return
	}
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	store, closeStore, err := backend.Open(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to open store")
	}
	defer closeStore()

	if err := run(context.Background(), store, command, os.Args[2:], log); err != nil {
		closeStore()
		log.WithError(err).Fatal(command + " failed")
	}
}

func run(ctx context.Context, s storage.Storage, command string, args []string, log *logrus.Entry) error {
	switch command {
	case "award":
		if len(args) != 2 {
			return fmt.Errorf("usage: admin award <user_id> <points>")
		}
		points, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid points %q: provide an integer", args[1])
		}
		if err := awardPoints(ctx, s, args[0], points); err != nil {
			return err
		}
		fmt.Printf("Awarded %d points to user %s.\n", points, args[0])

	case "resolve":
		if len(args) != 1 {
			return fmt.Errorf("usage: admin resolve <complaint_id>")
		}
		row, err := resolveComplaint(ctx, s, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Complaint %s resolved at %s.\n", args[0], storage.String(row, "resolved_at"))

	case "stats":
		userID := ""
		if len(args) > 0 {
			userID = args[0]
		}
		stats, err := complaint.NewService(s, nil).Stats(ctx, userID)
		if err != nil {
			return err
		}
		fmt.Printf("total=%d pending=%d assigned=%d in_progress=%d resolved=%d\n",
			stats.Total, stats.Pending, stats.Assigned, stats.InProgress, stats.Resolved)

	default:
		log.WithField("command", command).Warn("unknown command")
		return fmt.Errorf("unknown command %q\n%s", command, usage)
	}
	return nil
}

func awardPoints(ctx context.Context, s storage.Storage, userID string, points int) error {
	return s.Call(ctx, config.AddPointsProcedure, storage.Row{"user_id": userID, "points": points})
}

// resolveComplaint goes through the complaint service so resolved_at is
// stamped the same way the API does it.
func resolveComplaint(ctx context.Context, s storage.Storage, id string) (storage.Row, error) {
	svc := complaint.NewService(s, nil)
	if _, err := svc.Get(ctx, id); err != nil {
		return nil, err
	}
	return svc.Update(ctx, id, map[string]any{"status": "resolved"})
}

func migrate(dsn string) error {
	if dsn == "" {
		return fmt.Errorf("set DATABASE_URL")
	}
	db, err := storage.OpenPostgres(dsn)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	return storage.Migrate(db)
}
