package storage

const schemaV1 = `
CREATE TABLE IF NOT EXISTS runs (
    run_id          INTEGER PRIMARY KEY AUTOINCREMENT,
    run_uuid        TEXT UNIQUE NOT NULL,
    build_root      TEXT NOT NULL,
    version         TEXT NOT NULL,
    version_source  TEXT,
    version_marker  TEXT NOT NULL,
    target_name     TEXT NOT NULL,
    published_count INTEGER DEFAULT 0,
    failed_count    INTEGER DEFAULT 0,
    success         INTEGER NOT NULL DEFAULT 0,
    dry_run         INTEGER NOT NULL DEFAULT 0,
    cli_version     TEXT,
    run_flags       TEXT,
    created_at      DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_runs_build_root ON runs(build_root, run_id DESC);
CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);

CREATE TABLE IF NOT EXISTS artifacts (
    artifact_id     INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id          INTEGER NOT NULL,
    environment     TEXT NOT NULL,
    source_path     TEXT NOT NULL,
    local_path      TEXT,
    shared_path     TEXT,
    size_bytes      INTEGER DEFAULT 0,
    sha256          TEXT,
    upload_uri      TEXT,
    status          TEXT NOT NULL,
    error           TEXT,
    created_at      DATETIME DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_artifacts_run ON artifacts(run_id);
CREATE INDEX IF NOT EXISTS idx_artifacts_sha ON artifacts(sha256);
`
