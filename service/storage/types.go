package storage

import (
	"context"
	"time"
)

// Artifact statuses recorded in the ledger.
const (
	StatusPublished = "PUBLISHED"
	StatusFailed    = "FAILED"
)

// Service defines persistence and history query operations.
type Service interface {
	SaveRun(ctx context.Context, input SaveRunInput) (int64, error)
	GetRecentRuns(buildRoot string, limit int) ([]RunSummary, error)
	ListArtifacts(runID int64) ([]ArtifactRecord, error)
	LastVersion(buildRoot string) (string, bool, error)
	Vacuum(ctx context.Context) error
	PurgeOlderThan(ctx context.Context, days int) (int64, error)
	Close() error
}

// SaveRunInput is the payload saved for a completed publish run.
type SaveRunInput struct {
	RunUUID       string
	BuildRoot     string
	Version       string
	VersionSource string
	VersionMarker string
	TargetName    string
	DryRun        bool
	CLIVersion    string
	FlagsJSON     string
	Artifacts     []ArtifactRecord
}

// ArtifactRecord is one environment's outcome within a run.
type ArtifactRecord struct {
	Environment string
	SourcePath  string
	LocalPath   string
	SharedPath  string
	SizeBytes   int64
	SHA256      string
	UploadURI   string
	Status      string
	Error       string
}

// RunSummary provides compact run metadata.
type RunSummary struct {
	RunID         int64
	RunUUID       string
	BuildRoot     string
	Version       string
	VersionMarker string
	TargetName    string
	Published     int
	Failed        int
	Success       bool
	DryRun        bool
	CLIVersion    string
	CreatedAt     time.Time
}
