// Package resolver derives the firmware version from sketch source comments.
package resolver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/petcollar/fwrename/shared/logging"
)

// NewService creates a resolver that reads candidates relative to dir.
// An empty fallback means DefaultFallbackVersion.
func NewService(dir, fallback string, log *logging.Logger) Service {
	if fallback == "" {
		fallback = DefaultFallbackVersion
	}
	if log == nil {
		log = logging.Nop()
	}

	return &service{
		dir:      dir,
		fallback: fallback,
		matchers: DefaultMatchers,
		log:      log,
	}
}

// Resolve returns the version declared by the first candidate that matches
// any matcher. Unreadable candidates are logged and skipped.
func (s *service) Resolve(candidates []string) Resolution {
	for _, name := range candidates {
		path := name
		if s.dir != "" && !filepath.IsAbs(name) {
			path = filepath.Join(s.dir, name)
		}

		content, err := readText(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			s.log.Warn().Err(err).Str("file", path).Msg("Could not read version source")
			continue
		}

		if version, marker, ok := match(s.matchers, content); ok {
			return Resolution{Version: version, Source: path, Marker: marker}
		}
	}

	return Resolution{Version: s.fallback, Marker: MarkerFallback}
}

func match(matchers []Matcher, content string) (string, string, bool) {
	for _, m := range matchers {
		sub := m.Pattern.FindStringSubmatch(content)
		if len(sub) > 1 && sub[1] != "" {
			return sub[1], m.Name, true
		}
	}

	return "", "", false
}

// readText reads a whole file and rejects content that is not UTF-8.
func readText(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s is not valid UTF-8 text", path)
	}

	return string(data), nil
}
