package resolver

import (
	"regexp"

	"github.com/petcollar/fwrename/shared/logging"
)

// DefaultFallbackVersion is used when no candidate source declares a version.
const DefaultFallbackVersion = "4.1.0"

// Marker kinds reported in a Resolution.
const (
	MarkerDefine   = "define"
	MarkerDocTag   = "doc-tag"
	MarkerFallback = "fallback"
)

// DefaultCandidates are the firmware sketch files consulted, in order.
var DefaultCandidates = []string{
	"ESP32-S3_PetCollar.ino",
	"ESP32-S3_PetCollar_MQTT.ino",
}

// Matcher extracts a version from source text using the first capture group
// of its pattern.
type Matcher struct {
	Name    string
	Pattern *regexp.Regexp
}

// DefaultMatchers is the fallback chain tried against each candidate file.
// The define pattern accepts any quoted value; the doc tag requires a
// dotted triple.
var DefaultMatchers = []Matcher{
	{Name: MarkerDefine, Pattern: regexp.MustCompile(`#define\s+FIRMWARE_VERSION\s+"([^"]+)"`)},
	{Name: MarkerDocTag, Pattern: regexp.MustCompile(`@version\s+(\d+\.\d+\.\d+)`)},
}

// Resolution is the version chosen for a run and where it came from.
type Resolution struct {
	Version string
	// Source is the candidate path that matched; empty for the fallback.
	Source string
	Marker string
}

// Fallback reports whether no candidate file supplied the version.
func (r Resolution) Fallback() bool {
	return r.Marker == MarkerFallback
}

type service struct {
	dir      string
	fallback string
	matchers []Matcher
	log      *logging.Logger
}

// Service is the interface for firmware version resolution.
type Service interface {
	Resolve(candidates []string) Resolution
}
