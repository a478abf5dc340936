// Package publisher copies canonical firmware images to version-tagged names.
package publisher

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/petcollar/fwrename/shared/logging"
)

// NewService creates a new publisher service.
func NewService(opts Options, log *logging.Logger) Service {
	if opts.Artifact == "" {
		opts.Artifact = DefaultArtifact
	}
	if opts.Prefix == "" {
		opts.Prefix = DefaultPrefix
	}
	if log == nil {
		log = logging.Nop()
	}

	return &service{opts: opts, log: log}
}

// TargetName returns "<prefix>_v<version><ext>" where ext is the canonical
// artifact's extension.
func (s *service) TargetName(version string) string {
	return s.opts.Prefix + "_v" + version + filepath.Ext(s.opts.Artifact)
}

// Publish copies the canonical artifact of every environment directory under
// buildRoot. Environments are independent: a missing artifact is skipped and
// a failed copy is recorded without stopping the pass.
func (s *service) Publish(buildRoot, version string) Result {
	result := Result{
		BuildRoot:  buildRoot,
		SharedDir:  s.sharedDir(buildRoot),
		Artifact:   s.opts.Artifact,
		TargetName: s.TargetName(version),
		DryRun:     s.opts.DryRun,
	}

	envs, err := listEnvironments(buildRoot)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.log.Error().Err(err).Str("build_root", buildRoot).Msg("Could not list build directories")
	}

	for _, env := range envs {
		artifact, found, err := s.publishEnvironment(buildRoot, env, result.SharedDir, result.TargetName)
		if err != nil {
			s.log.Error().Err(err).Str("environment", env).Msg("Error copying firmware")
			result.Failures = append(result.Failures, Failure{
				Environment: env,
				Path:        filepath.Join(buildRoot, env, s.opts.Artifact),
				Err:         err,
			})
			continue
		}
		if !found {
			continue
		}
		result.Artifacts = append(result.Artifacts, artifact)
	}

	if !result.Succeeded() {
		result.Listings = s.listings(buildRoot, envs)
	}

	return result
}

func (s *service) publishEnvironment(buildRoot, env, sharedDir, target string) (Artifact, bool, error) {
	envDir := filepath.Join(buildRoot, env)
	src := filepath.Join(envDir, s.opts.Artifact)

	info, err := os.Stat(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Artifact{}, false, nil
		}
		return Artifact{}, false, err
	}
	if !info.Mode().IsRegular() {
		return Artifact{}, false, fmt.Errorf("%s is not a regular file", src)
	}

	artifact := Artifact{
		Environment: env,
		Source:      src,
		LocalPath:   filepath.Join(envDir, target),
		SharedPath:  filepath.Join(sharedDir, target),
		Size:        info.Size(),
	}

	if s.opts.DryRun {
		sum, err := hashFile(src)
		if err != nil {
			return Artifact{}, false, err
		}
		artifact.SHA256 = sum
		return artifact, true, nil
	}

	atime := accessTime(src, info)
	for _, dst := range []string{artifact.LocalPath, artifact.SharedPath} {
		sum, err := copyFile(src, dst, info, atime)
		if err != nil {
			return Artifact{}, false, err
		}
		artifact.SHA256 = sum
		s.log.Info().Str("path", dst).Msg("Created")
	}

	return artifact, true, nil
}

func (s *service) sharedDir(buildRoot string) string {
	if s.opts.SharedDir != "" {
		return s.opts.SharedDir
	}

	abs, err := filepath.Abs(buildRoot)
	if err != nil {
		return filepath.Join(buildRoot, "..")
	}

	return filepath.Dir(abs)
}

func (s *service) listings(buildRoot string, envs []string) []EnvironmentListing {
	ext := filepath.Ext(s.opts.Artifact)
	listings := make([]EnvironmentListing, 0, len(envs))

	for _, env := range envs {
		listing := EnvironmentListing{Environment: env}

		entries, err := os.ReadDir(filepath.Join(buildRoot, env))
		if err != nil {
			s.log.Warn().Err(err).Str("environment", env).Msg("Could not list environment directory")
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if ext == "" || filepath.Ext(e.Name()) == ext {
				listing.Files = append(listing.Files, e.Name())
			}
		}

		listings = append(listings, listing)
	}

	return listings
}

// listEnvironments returns the names of the immediate subdirectories of root,
// following symlinks, in lexical order.
func listEnvironments(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var envs []string
	for _, e := range entries {
		if e.IsDir() {
			envs = append(envs, e.Name())
			continue
		}
		if e.Type()&fs.ModeSymlink == 0 {
			continue
		}
		if info, err := os.Stat(filepath.Join(root, e.Name())); err == nil && info.IsDir() {
			envs = append(envs, e.Name())
		}
	}

	return envs, nil
}

// copyFile copies src to dst, overwriting dst, then applies the source
// permission bits, access time and modification time. It returns the SHA-256 of the bytes
// written.
func copyFile(src, dst string, srcInfo fs.FileInfo, atime time.Time) (string, error) {
	if dstInfo, err := os.Stat(dst); err == nil && os.SameFile(srcInfo, dstInfo) {
		return "", fmt.Errorf("%s and %s are the same file", src, dst)
	}

	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return "", err
	}

	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(out, h), in); err != nil {
		_ = out.Close()
		return "", fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		return "", err
	}

	if err := os.Chmod(dst, srcInfo.Mode().Perm()); err != nil {
		return "", err
	}
	if err := os.Chtimes(dst, atime, srcInfo.ModTime()); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
