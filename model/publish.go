package model

import (
	"github.com/petcollar/fwrename/service/publisher"
	"github.com/petcollar/fwrename/service/resolver"
	"github.com/petcollar/fwrename/service/upload"
)

// RenderPublishInput carries everything the renderer needs for one run.
type RenderPublishInput struct {
	RunUUID         string
	Resolution      resolver.Resolution
	Result          publisher.Result
	Uploads         []upload.Result
	UploadAccount   string
	PreviousVersion string
	Regression      bool
}

// PublishReportJSON represents the JSON output of a publish run.
type PublishReportJSON struct {
	RunUUID         string                `json:"run_uuid,omitempty"`
	GeneratedAt     string                `json:"generated_at"`
	Version         string                `json:"version"`
	VersionSource   string                `json:"version_source,omitempty"`
	VersionMarker   string                `json:"version_marker"`
	TargetName      string                `json:"target_name"`
	BuildRoot       string                `json:"build_root"`
	SharedDir       string                `json:"shared_dir"`
	DryRun          bool                  `json:"dry_run"`
	Success         bool                  `json:"success"`
	PreviousVersion string                `json:"previous_version,omitempty"`
	Regression      bool                  `json:"regression,omitempty"`
	Summary         PublishSummaryJSON    `json:"summary"`
	Published       []PublishedJSON       `json:"published"`
	Failed          []FailureJSON         `json:"failed"`
	Diagnostics     []EnvironmentListJSON `json:"diagnostics,omitempty"`
	UploadAccount   string                `json:"upload_account,omitempty"`
	Uploads         []UploadJSON          `json:"uploads,omitempty"`
}

// PublishSummaryJSON provides counts for a publish run.
type PublishSummaryJSON struct {
	Published     int `json:"published"`
	Failed        int `json:"failed"`
	Uploaded      int `json:"uploaded"`
	UploadsFailed int `json:"uploads_failed"`
}

// PublishedJSON represents one environment's published copies.
type PublishedJSON struct {
	Environment string `json:"environment"`
	Source      string `json:"source"`
	LocalPath   string `json:"local_path"`
	SharedPath  string `json:"shared_path"`
	SizeBytes   int64  `json:"size_bytes"`
	SHA256      string `json:"sha256"`
}

// FailureJSON represents an environment whose copy failed.
type FailureJSON struct {
	Environment string `json:"environment"`
	Path        string `json:"path"`
	Error       string `json:"error"`
}

// EnvironmentListJSON lists candidate images found in one environment.
type EnvironmentListJSON struct {
	Environment string   `json:"environment"`
	Files       []string `json:"files"`
}

// UploadJSON represents one upload to object storage.
type UploadJSON struct {
	Environment string `json:"environment"`
	URI         string `json:"uri"`
	Error       string `json:"error,omitempty"`
}
