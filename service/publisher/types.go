package publisher

import (
	"github.com/petcollar/fwrename/shared/logging"
)

// Defaults for the build layout produced by PlatformIO.
const (
	DefaultBuildRoot = ".pio/build"
	DefaultArtifact  = "firmware.bin"
	DefaultPrefix    = "petcollar"
)

// Options configures a publisher.
type Options struct {
	// Artifact is the canonical file name looked up in each environment.
	Artifact string
	// Prefix is prepended to "_v<version>" in the published name.
	Prefix string
	// SharedDir receives a second copy of every artifact. Empty means the
	// build root's parent.
	SharedDir string
	// DryRun computes the outcome without writing files.
	DryRun bool
}

// Artifact is one published firmware image.
type Artifact struct {
	Environment string
	Source      string
	LocalPath   string
	SharedPath  string
	Size        int64
	SHA256      string
}

// Failure is a copy that could not be completed for an environment.
type Failure struct {
	Environment string
	Path        string
	Err         error
}

// EnvironmentListing lists the files with the artifact's extension found in
// one environment directory.
type EnvironmentListing struct {
	Environment string
	Files       []string
}

// Result summarizes one publish pass over a build root.
type Result struct {
	BuildRoot  string
	SharedDir  string
	Artifact   string
	TargetName string
	DryRun     bool
	Artifacts  []Artifact
	Failures   []Failure
	// Listings is only filled when nothing was published.
	Listings []EnvironmentListing
}

// Succeeded reports whether at least one artifact was published.
func (r Result) Succeeded() bool {
	return len(r.Artifacts) > 0
}

type service struct {
	opts Options
	log  *logging.Logger
}

// Service is the interface for publishing versioned firmware copies.
type Service interface {
	TargetName(version string) string
	Publish(buildRoot, version string) Result
}
