package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/petcollar/fwrename/model"
	"github.com/petcollar/fwrename/service/storage"
)

func (s *service) persistRun(ctx context.Context, flags model.Flags, buildRoot string, out *Outcome) error {
	uploaded := map[string]string{}
	for _, u := range out.Uploads {
		if u.Err == nil {
			uploaded[u.Environment] = u.URI
		}
	}

	records := make([]storage.ArtifactRecord, 0, len(out.Result.Artifacts)+len(out.Result.Failures))
	for _, a := range out.Result.Artifacts {
		records = append(records, storage.ArtifactRecord{
			Environment: a.Environment,
			SourcePath:  a.Source,
			LocalPath:   a.LocalPath,
			SharedPath:  a.SharedPath,
			SizeBytes:   a.Size,
			SHA256:      a.SHA256,
			UploadURI:   uploaded[a.Environment],
			Status:      storage.StatusPublished,
		})
	}
	for _, f := range out.Result.Failures {
		msg := ""
		if f.Err != nil {
			msg = f.Err.Error()
		}
		records = append(records, storage.ArtifactRecord{
			Environment: f.Environment,
			SourcePath:  f.Path,
			Status:      storage.StatusFailed,
			Error:       msg,
		})
	}

	flagsJSON, _ := json.Marshal(flags)
	runID, err := s.storageService.SaveRun(ctx, storage.SaveRunInput{
		RunUUID:       out.RunUUID,
		BuildRoot:     buildRoot,
		Version:       out.Resolution.Version,
		VersionSource: out.Resolution.Source,
		VersionMarker: out.Resolution.Marker,
		TargetName:    out.Result.TargetName,
		DryRun:        out.Result.DryRun,
		CLIVersion:    s.versionInfo.Version,
		FlagsJSON:     string(flagsJSON),
		Artifacts:     records,
	})
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	out.RunID = runID

	return nil
}

// absPath is the ledger key for a build root.
func absPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	return abs
}
