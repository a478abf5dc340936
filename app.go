// Package main is the entry point for the fwrename application.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/petcollar/fwrename/model"
	"github.com/petcollar/fwrename/service/flag"
	"github.com/petcollar/fwrename/service/orchestrator"
	"github.com/petcollar/fwrename/service/output"
	"github.com/petcollar/fwrename/service/storage"
	"github.com/petcollar/fwrename/shared/banner"
	"github.com/petcollar/fwrename/shared/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// errNothingPublished makes the process exit 1 after the report already
// explained why.
var errNothingPublished = errors.New("no firmware image was published")

func main() {
	if err := run(); err != nil {
		if !errors.Is(err, errNothingPublished) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "db", "history":
			return runStorageCommand(os.Args[1], os.Args[2:])
		}
	}

	flagService := flag.NewService()
	flags, err := flagService.GetParsedFlags()
	if err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	versionInfo := model.VersionInfo{Version: version, Commit: commit, Date: date}

	if flags.Version {
		outputService := output.NewService(flags.Output)
		orchestratorService := orchestrator.NewService(
			nil, nil,
			outputService, versionInfo,
			nil,
			nil, nil,
			nil,
		)
		_, err := orchestratorService.Orchestrate(context.Background(), flags)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if flags.Output != "json" && !flags.NoBanner {
		banner.DrawBannerTitle()
	}

	log := logging.NewDefault(flags.LogLevel)

	var storageService storage.Service
	if flags.Store {
		storageService, err = storage.NewService(flags.DBPath)
		if err != nil {
			return fmt.Errorf("failed to initialize storage: %w", err)
		}
		defer storageService.Close()
	}

	outcome, err := runPublish(ctx, flags, versionInfo, storageService, log)
	if err != nil {
		return err
	}
	if !outcome.Succeeded() {
		return errNothingPublished
	}

	return nil
}
