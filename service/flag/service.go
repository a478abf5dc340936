package flag

import (
	"fmt"
	"strings"

	"github.com/petcollar/fwrename/model"
	"github.com/petcollar/fwrename/service/publisher"
	"github.com/petcollar/fwrename/service/resolver"
	"github.com/spf13/pflag"
)

// NewService creates a new flag service.
func NewService() Service {
	return &service{}
}

// GetParsedFlags parses and returns the command-line flags.
func (s *service) GetParsedFlags() (model.Flags, error) {
	buildRoot := pflag.StringP("build-root", "b", publisher.DefaultBuildRoot, "Directory holding one subdirectory per build environment")
	sourceDir := pflag.String("source-dir", "", "Directory containing the firmware sketch files (default current directory)")
	sources := pflag.String("sources", strings.Join(resolver.DefaultCandidates, ","), "Comma-separated sketch files searched for a version, in order")
	artifact := pflag.String("artifact", publisher.DefaultArtifact, "Canonical firmware file name in each build environment")
	prefix := pflag.String("prefix", publisher.DefaultPrefix, "Published file name prefix")
	sharedDir := pflag.String("shared-dir", "", "Directory receiving a second copy of each image (default build root's parent)")
	fallbackVersion := pflag.String("fallback-version", resolver.DefaultFallbackVersion, "Version used when no sketch declares one")
	dryRun := pflag.Bool("dry-run", false, "Report what would be published without copying files")
	output := pflag.StringP("output", "o", "table", "Output format (table or json)")
	store := pflag.Bool("store", false, "Record the run in the local SQLite history")
	dbPath := pflag.String("db-path", "", "Custom SQLite database path (default ~/.fwrename/history.db)")
	s3Bucket := pflag.String("s3-bucket", "", "Upload published images to this S3 bucket")
	s3Prefix := pflag.String("s3-prefix", "firmware", "Key prefix for uploaded images")
	s3Endpoint := pflag.String("s3-endpoint", "", "Custom S3-compatible endpoint URL")
	profile := pflag.StringP("profile", "p", "", "AWS profile to use for uploads")
	region := pflag.StringP("region", "r", "", "AWS region to use for uploads")
	maxParallel := pflag.Int("max-parallel", 4, "Maximum concurrent uploads")
	logLevel := pflag.String("log-level", "", "Log level (debug, info, warn, error)")
	noBanner := pflag.Bool("no-banner", false, "Do not print the title banner")
	version := pflag.BoolP("version", "v", false, "Show version information")

	pflag.Parse()

	if *output != "table" && *output != "json" {
		return model.Flags{}, fmt.Errorf("unsupported output format %q", *output)
	}
	if *maxParallel < 1 {
		return model.Flags{}, fmt.Errorf("--max-parallel must be at least 1")
	}

	var parsedSources []string
	for _, src := range strings.Split(*sources, ",") {
		src = strings.TrimSpace(src)
		if src != "" {
			parsedSources = append(parsedSources, src)
		}
	}

	flags := model.Flags{
		BuildRoot:       *buildRoot,
		SourceDir:       *sourceDir,
		Sources:         parsedSources,
		Artifact:        *artifact,
		Prefix:          *prefix,
		SharedDir:       *sharedDir,
		FallbackVersion: *fallbackVersion,
		DryRun:          *dryRun,
		Output:          *output,
		Store:           *store,
		DBPath:          *dbPath,
		S3Bucket:        *s3Bucket,
		S3Prefix:        *s3Prefix,
		S3Endpoint:      *s3Endpoint,
		Profile:         *profile,
		Region:          *region,
		MaxParallel:     *maxParallel,
		LogLevel:        *logLevel,
		NoBanner:        *noBanner,
		Version:         *version,
	}

	return flags, nil
}
