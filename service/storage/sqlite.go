package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const defaultDBPath = "~/.fwrename/history.db"

// NewService creates a SQLite-backed storage service.
func NewService(dbPath string) (Service, error) {
	resolved, err := resolvePath(dbPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schemaV1); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &service{db: db, dbPath: resolved}, nil
}

type service struct {
	db     *sql.DB
	dbPath string
}

func resolvePath(p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		p = defaultDBPath
	}
	if strings.HasPrefix(p, "~/") || p == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home dir: %w", err)
		}
		if p == "~" {
			p = home
		} else {
			p = filepath.Join(home, p[2:])
		}
	}
	return filepath.Clean(p), nil
}

func (s *service) SaveRun(ctx context.Context, input SaveRunInput) (int64, error) {
	if input.BuildRoot == "" {
		return 0, errors.New("build root is required")
	}
	if input.Version == "" {
		return 0, errors.New("version is required")
	}
	if input.RunUUID == "" {
		input.RunUUID = fmt.Sprintf("run-%d", time.Now().UnixNano())
	}

	published, failed := 0, 0
	for _, a := range input.Artifacts {
		if a.Status == StatusFailed {
			failed++
		} else {
			published++
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (
			run_uuid, build_root, version, version_source, version_marker, target_name,
			published_count, failed_count, success, dry_run, cli_version, run_flags
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, input.RunUUID, input.BuildRoot, input.Version, input.VersionSource, input.VersionMarker, input.TargetName,
		published, failed, published > 0, input.DryRun, input.CLIVersion, input.FlagsJSON)
	if err != nil {
		return 0, err
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if err = s.saveArtifactsTx(ctx, tx, runID, input.Artifacts); err != nil {
		return 0, err
	}

	err = tx.Commit()
	if err != nil {
		return 0, err
	}
	return runID, nil
}

func (s *service) saveArtifactsTx(ctx context.Context, tx *sql.Tx, runID int64, artifacts []ArtifactRecord) error {
	for _, a := range artifacts {
		status := a.Status
		if status == "" {
			status = StatusPublished
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO artifacts (
				run_id, environment, source_path, local_path, shared_path,
				size_bytes, sha256, upload_uri, status, error
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, runID, a.Environment, a.SourcePath, a.LocalPath, a.SharedPath,
			a.SizeBytes, a.SHA256, a.UploadURI, status, a.Error)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *service) GetRecentRuns(buildRoot string, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `
		SELECT run_id, run_uuid, build_root, version, version_marker, target_name,
			published_count, failed_count, success, dry_run, cli_version, created_at
		FROM runs
	`
	args := []any{}
	if buildRoot != "" {
		query += " WHERE build_root=?"
		args = append(args, buildRoot)
	}
	query += " ORDER BY run_id DESC LIMIT ?"
	args = append(args, limit)
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []RunSummary{}
	for rows.Next() {
		var r RunSummary
		var cliVersion sql.NullString
		if err := rows.Scan(&r.RunID, &r.RunUUID, &r.BuildRoot, &r.Version, &r.VersionMarker, &r.TargetName,
			&r.Published, &r.Failed, &r.Success, &r.DryRun, &cliVersion, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.CLIVersion = cliVersion.String
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (s *service) ListArtifacts(runID int64) ([]ArtifactRecord, error) {
	rows, err := s.db.Query(`
		SELECT environment, source_path, local_path, shared_path, size_bytes, sha256, upload_uri, status, error
		FROM artifacts WHERE run_id=? ORDER BY environment ASC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ArtifactRecord{}
	for rows.Next() {
		var a ArtifactRecord
		var local, shared, sha, uri, errText sql.NullString
		if err := rows.Scan(&a.Environment, &a.SourcePath, &local, &shared, &a.SizeBytes, &sha, &uri, &a.Status, &errText); err != nil {
			return nil, err
		}
		a.LocalPath = local.String
		a.SharedPath = shared.String
		a.SHA256 = sha.String
		a.UploadURI = uri.String
		a.Error = errText.String
		out = append(out, a)
	}
	return out, rows.Err()
}

// LastVersion returns the version of the most recent successful, non dry-run
// publish for buildRoot.
func (s *service) LastVersion(buildRoot string) (string, bool, error) {
	var version string
	err := s.db.QueryRow(`
		SELECT version FROM runs
		WHERE build_root=? AND success=1 AND dry_run=0
		ORDER BY run_id DESC LIMIT 1
	`, buildRoot).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return version, true, nil
}

func (s *service) Vacuum(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "VACUUM")
	return err
}

func (s *service) PurgeOlderThan(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		return 0, errors.New("days must be > 0")
	}
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM runs WHERE created_at < DATETIME('now', ?)
	`, fmt.Sprintf("-%d day", days))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *service) Close() error {
	return s.db.Close()
}
