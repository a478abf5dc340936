package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestStorage(t *testing.T) Service {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "history.db")
	svc, err := NewService(dbPath)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func TestSaveRunAndQueries(t *testing.T) {
	svc := newTestStorage(t)
	ctx := context.Background()

	runID, err := svc.SaveRun(ctx, SaveRunInput{
		RunUUID:       "run-1",
		BuildRoot:     "/work/.pio/build",
		Version:       "4.2.1",
		VersionSource: "ESP32-S3_PetCollar.ino",
		VersionMarker: "define",
		TargetName:    "petcollar_v4.2.1.bin",
		CLIVersion:    "dev",
		Artifacts: []ArtifactRecord{
			{Environment: "esp32s3", SourcePath: "/work/.pio/build/esp32s3/firmware.bin", LocalPath: "/work/.pio/build/esp32s3/petcollar_v4.2.1.bin", SharedPath: "/work/.pio/petcollar_v4.2.1.bin", SizeBytes: 1024, SHA256: "abc"},
			{Environment: "esp32c3", SourcePath: "/work/.pio/build/esp32c3/firmware.bin", Status: StatusFailed, Error: "permission denied"},
		},
	})
	if err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	if runID <= 0 {
		t.Fatalf("expected positive runID, got %d", runID)
	}

	recent, err := svc.GetRecentRuns("/work/.pio/build", 10)
	if err != nil {
		t.Fatalf("GetRecentRuns failed: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("expected 1 recent run, got %d", len(recent))
	}
	r := recent[0]
	if r.Version != "4.2.1" || r.Published != 1 || r.Failed != 1 || !r.Success || r.DryRun {
		t.Fatalf("unexpected run values: %+v", r)
	}
	if r.CreatedAt.IsZero() {
		t.Fatalf("expected created_at to be populated")
	}

	artifacts, err := svc.ListArtifacts(runID)
	if err != nil {
		t.Fatalf("ListArtifacts failed: %v", err)
	}
	if len(artifacts) != 2 {
		t.Fatalf("expected 2 artifacts, got %d", len(artifacts))
	}
	if artifacts[0].Environment != "esp32c3" || artifacts[0].Status != StatusFailed || artifacts[0].Error != "permission denied" {
		t.Fatalf("unexpected failed artifact: %+v", artifacts[0])
	}
	if artifacts[1].Status != StatusPublished || artifacts[1].SHA256 != "abc" || artifacts[1].SizeBytes != 1024 {
		t.Fatalf("unexpected published artifact: %+v", artifacts[1])
	}

	other, err := svc.GetRecentRuns("/elsewhere", 10)
	if err != nil {
		t.Fatalf("GetRecentRuns failed: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected no runs for other build root, got %d", len(other))
	}
}

func TestLastVersionIgnoresFailedAndDryRuns(t *testing.T) {
	svc := newTestStorage(t)
	ctx := context.Background()
	root := "/work/.pio/build"

	if _, ok, err := svc.LastVersion(root); err != nil || ok {
		t.Fatalf("expected no version on empty ledger, got ok=%v err=%v", ok, err)
	}

	runs := []SaveRunInput{
		{RunUUID: "a", BuildRoot: root, Version: "4.1.0", VersionMarker: "define", TargetName: "petcollar_v4.1.0.bin", Artifacts: []ArtifactRecord{{Environment: "esp32s3", SourcePath: "x"}}},
		{RunUUID: "b", BuildRoot: root, Version: "4.2.0", VersionMarker: "define", TargetName: "petcollar_v4.2.0.bin", DryRun: true, Artifacts: []ArtifactRecord{{Environment: "esp32s3", SourcePath: "x"}}},
		{RunUUID: "c", BuildRoot: root, Version: "4.3.0", VersionMarker: "define", TargetName: "petcollar_v4.3.0.bin"},
	}
	for _, in := range runs {
		if _, err := svc.SaveRun(ctx, in); err != nil {
			t.Fatalf("SaveRun(%s) failed: %v", in.RunUUID, err)
		}
	}

	version, ok, err := svc.LastVersion(root)
	if err != nil {
		t.Fatalf("LastVersion failed: %v", err)
	}
	if !ok || version != "4.1.0" {
		t.Fatalf("expected 4.1.0, got %q ok=%v", version, ok)
	}
}

func TestSaveRunValidation(t *testing.T) {
	svc := newTestStorage(t)
	ctx := context.Background()

	if _, err := svc.SaveRun(ctx, SaveRunInput{Version: "1.0.0"}); err == nil {
		t.Fatalf("expected error for missing build root")
	}
	if _, err := svc.SaveRun(ctx, SaveRunInput{BuildRoot: "/b"}); err == nil {
		t.Fatalf("expected error for missing version")
	}
}

func TestMaintenanceOperations(t *testing.T) {
	svc := newTestStorage(t)
	ctx := context.Background()

	if _, err := svc.SaveRun(ctx, SaveRunInput{BuildRoot: "/b", Version: "1.0.0", VersionMarker: "fallback", TargetName: "t"}); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	if err := svc.Vacuum(ctx); err != nil {
		t.Fatalf("Vacuum failed: %v", err)
	}
	purged, err := svc.PurgeOlderThan(ctx, 30)
	if err != nil {
		t.Fatalf("PurgeOlderThan failed: %v", err)
	}
	if purged != 0 {
		t.Fatalf("expected fresh run to survive purge, purged %d", purged)
	}
	if _, err := svc.PurgeOlderThan(ctx, 0); err == nil {
		t.Fatalf("expected error for non-positive days")
	}
}

func TestResolvePath(t *testing.T) {
	got, err := resolvePath("/tmp/x/../history.db")
	if err != nil {
		t.Fatalf("resolvePath failed: %v", err)
	}
	if got != filepath.Clean("/tmp/history.db") {
		t.Fatalf("unexpected path %q", got)
	}

	home, err := resolvePath("")
	if err != nil {
		t.Fatalf("resolvePath default failed: %v", err)
	}
	if filepath.Base(home) != "history.db" || filepath.Base(filepath.Dir(home)) != ".fwrename" {
		t.Fatalf("unexpected default path %q", home)
	}
}
