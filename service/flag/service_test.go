package flag

import (
	"os"
	"testing"

	"github.com/spf13/pflag"
)

func resetFlagState(t *testing.T, args []string) func() {
	t.Helper()
	oldCommandLine := pflag.CommandLine
	oldArgs := os.Args
	pflag.CommandLine = pflag.NewFlagSet("test", pflag.ContinueOnError)
	os.Args = append([]string{"fwrename"}, args...)
	return func() {
		pflag.CommandLine = oldCommandLine
		os.Args = oldArgs
	}
}

func TestGetParsedFlagsAllOptions(t *testing.T) {
	cleanup := resetFlagState(t, []string{
		"--build-root", "out/build",
		"--source-dir", "firmware",
		"--sources", "Main.ino, Other.ino ,",
		"--artifact", "firmware.uf2",
		"--prefix", "collar",
		"--shared-dir", "dist",
		"--fallback-version", "0.0.1",
		"--dry-run",
		"--output", "json",
		"--store",
		"--db-path", "/tmp/history.db",
		"--s3-bucket", "ota-images",
		"--s3-prefix", "releases",
		"--s3-endpoint", "http://localhost:9000",
		"--profile", "release",
		"--region", "eu-west-1",
		"--max-parallel", "2",
		"--log-level", "debug",
		"--no-banner",
	})
	defer cleanup()

	svc := NewService()
	flags, err := svc.GetParsedFlags()
	if err != nil {
		t.Fatalf("GetParsedFlags failed: %v", err)
	}

	if flags.BuildRoot != "out/build" || flags.SourceDir != "firmware" || flags.SharedDir != "dist" {
		t.Fatalf("unexpected path flags: %+v", flags)
	}
	if len(flags.Sources) != 2 || flags.Sources[0] != "Main.ino" || flags.Sources[1] != "Other.ino" {
		t.Fatalf("unexpected sources: %v", flags.Sources)
	}
	if flags.Artifact != "firmware.uf2" || flags.Prefix != "collar" || flags.FallbackVersion != "0.0.1" {
		t.Fatalf("unexpected naming flags: %+v", flags)
	}
	if !flags.DryRun || flags.Output != "json" || !flags.Store || flags.DBPath != "/tmp/history.db" {
		t.Fatalf("unexpected run flags: %+v", flags)
	}
	if flags.S3Bucket != "ota-images" || flags.S3Prefix != "releases" || flags.S3Endpoint != "http://localhost:9000" {
		t.Fatalf("unexpected s3 flags: %+v", flags)
	}
	if flags.Profile != "release" || flags.Region != "eu-west-1" || flags.MaxParallel != 2 {
		t.Fatalf("unexpected aws flags: %+v", flags)
	}
	if flags.LogLevel != "debug" || !flags.NoBanner || flags.Version {
		t.Fatalf("unexpected misc flags: %+v", flags)
	}
}

func TestGetParsedFlagsDefaults(t *testing.T) {
	cleanup := resetFlagState(t, nil)
	defer cleanup()

	svc := NewService()
	flags, err := svc.GetParsedFlags()
	if err != nil {
		t.Fatalf("GetParsedFlags failed: %v", err)
	}

	if flags.BuildRoot != ".pio/build" || flags.Artifact != "firmware.bin" || flags.Prefix != "petcollar" {
		t.Fatalf("unexpected defaults: %+v", flags)
	}
	if flags.FallbackVersion != "4.1.0" || flags.Output != "table" || flags.MaxParallel != 4 {
		t.Fatalf("unexpected defaults: %+v", flags)
	}
	if len(flags.Sources) != 2 || flags.Sources[0] != "ESP32-S3_PetCollar.ino" || flags.Sources[1] != "ESP32-S3_PetCollar_MQTT.ino" {
		t.Fatalf("unexpected default sources: %v", flags.Sources)
	}
	if flags.SharedDir != "" || flags.Store || flags.DryRun || flags.S3Bucket != "" {
		t.Fatalf("unexpected optional defaults: %+v", flags)
	}
}

func TestGetParsedFlagsRejectsUnknownOutput(t *testing.T) {
	cleanup := resetFlagState(t, []string{"--output", "html"})
	defer cleanup()

	if _, err := NewService().GetParsedFlags(); err == nil {
		t.Fatalf("expected error for unsupported output format")
	}
}

func TestGetParsedFlagsRejectsZeroParallel(t *testing.T) {
	cleanup := resetFlagState(t, []string{"--max-parallel", "0"})
	defer cleanup()

	if _, err := NewService().GetParsedFlags(); err == nil {
		t.Fatalf("expected error for --max-parallel 0")
	}
}
