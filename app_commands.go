package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/petcollar/fwrename/service/storage"
	"github.com/petcollar/fwrename/shared/console"
	"github.com/petcollar/fwrename/shared/history"
	"github.com/spf13/pflag"
)

func runStorageCommand(cmd string, args []string) error {
	switch cmd {
	case "db":
		return runDBCommand(args)
	case "history":
		return runHistoryCommand(args)
	default:
		return fmt.Errorf("unsupported command: %s", cmd)
	}
}

func runDBCommand(args []string) error {
	fs := pflag.NewFlagSet("db", pflag.ContinueOnError)
	dbPath := fs.String("db-path", "", "SQLite database path")
	olderThan := fs.Int("older-than", 90, "Purge runs older than N days")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) == 0 {
		return fmt.Errorf("usage: fwrename db <vacuum|purge> [--db-path ...] [--older-than N]")
	}

	store, err := storage.NewService(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	return dbWorkflow(context.Background(), os.Stdout, store, rest[0], *olderThan)
}

func dbWorkflow(ctx context.Context, w io.Writer, store storage.Service, sub string, olderThan int) error {
	switch sub {
	case "vacuum":
		return store.Vacuum(ctx)
	case "purge":
		count, err := store.PurgeOlderThan(ctx, olderThan)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Purged %d runs\n", count)
		return nil
	default:
		return fmt.Errorf("unsupported db command: %s", sub)
	}
}

func runHistoryCommand(args []string) error {
	fs := pflag.NewFlagSet("history", pflag.ContinueOnError)
	dbPath := fs.String("db-path", "", "SQLite database path")
	buildRoot := fs.String("build-root", "", "Only list runs of this build root")
	limit := fs.Int("limit", 20, "Number of rows to list")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) == 0 {
		return fmt.Errorf("usage: fwrename history <list|show>")
	}

	store, err := storage.NewService(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	root := *buildRoot
	if root != "" {
		if abs, err := filepath.Abs(root); err == nil {
			root = abs
		}
	}

	console.ConfigureColors(os.Stdout)
	return historyWorkflow(os.Stdout, store, rest, root, *limit)
}

func historyWorkflow(w io.Writer, store storage.Service, rest []string, buildRoot string, limit int) error {
	switch rest[0] {
	case "list":
		runs, err := store.GetRecentRuns(buildRoot, limit)
		if err != nil {
			return err
		}
		history.RenderRunTable(w, runs)
		return nil
	case "show":
		if len(rest) < 2 {
			return fmt.Errorf("usage: fwrename history show <run-id>")
		}
		runID, err := strconv.ParseInt(rest[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid run id %q: %w", rest[1], err)
		}
		artifacts, err := store.ListArtifacts(runID)
		if err != nil {
			return err
		}
		history.RenderArtifactTable(w, runID, artifacts)
		return nil
	default:
		return fmt.Errorf("unsupported history command: %s", rest[0])
	}
}
