package model

// Flags represents the command line flags.
type Flags struct {
	BuildRoot       string
	SourceDir       string
	Sources         []string
	Artifact        string
	Prefix          string
	SharedDir       string
	FallbackVersion string
	DryRun          bool
	Output          string
	Store           bool
	DBPath          string
	S3Bucket        string
	S3Prefix        string
	S3Endpoint      string
	Profile         string
	Region          string
	MaxParallel     int
	LogLevel        string
	NoBanner        bool
	Version         bool
}
