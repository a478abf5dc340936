package resolver

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/petcollar/fwrename/shared/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		files       map[string]string
		wantVersion string
		wantMarker  string
		wantSource  string
	}{
		{
			name: "define in first candidate",
			files: map[string]string{
				"ESP32-S3_PetCollar.ino": "// sketch\n#define FIRMWARE_VERSION \"4.2.1\"\n",
			},
			wantVersion: "4.2.1",
			wantMarker:  MarkerDefine,
			wantSource:  "ESP32-S3_PetCollar.ino",
		},
		{
			name: "first candidate wins over later ones",
			files: map[string]string{
				"ESP32-S3_PetCollar.ino":      "#define FIRMWARE_VERSION \"4.2.1\"",
				"ESP32-S3_PetCollar_MQTT.ino": "#define FIRMWARE_VERSION \"9.9.9\"",
			},
			wantVersion: "4.2.1",
			wantMarker:  MarkerDefine,
			wantSource:  "ESP32-S3_PetCollar.ino",
		},
		{
			name: "define preferred over doc tag in same file",
			files: map[string]string{
				"ESP32-S3_PetCollar.ino": "/**\n * @version 3.1.0\n */\n#define  FIRMWARE_VERSION\t\"3.2.0\"\n",
			},
			wantVersion: "3.2.0",
			wantMarker:  MarkerDefine,
			wantSource:  "ESP32-S3_PetCollar.ino",
		},
		{
			name: "doc tag when no define",
			files: map[string]string{
				"ESP32-S3_PetCollar.ino": "/**\n * @file collar\n * @version 3.1.0\n */\n",
			},
			wantVersion: "3.1.0",
			wantMarker:  MarkerDocTag,
			wantSource:  "ESP32-S3_PetCollar.ino",
		},
		{
			name: "define value is not shape checked",
			files: map[string]string{
				"ESP32-S3_PetCollar.ino": "#define FIRMWARE_VERSION \"3.0.0-ESP32-S3\"",
			},
			wantVersion: "3.0.0-ESP32-S3",
			wantMarker:  MarkerDefine,
			wantSource:  "ESP32-S3_PetCollar.ino",
		},
		{
			name: "doc tag requires dotted triple",
			files: map[string]string{
				"ESP32-S3_PetCollar.ino":      "@version 3.1",
				"ESP32-S3_PetCollar_MQTT.ino": "@version 2.0.7",
			},
			wantVersion: "2.0.7",
			wantMarker:  MarkerDocTag,
			wantSource:  "ESP32-S3_PetCollar_MQTT.ino",
		},
		{
			name: "second candidate when first has no marker",
			files: map[string]string{
				"ESP32-S3_PetCollar.ino":      "void setup() {}",
				"ESP32-S3_PetCollar_MQTT.ino": "#define FIRMWARE_VERSION \"5.0.0\"",
			},
			wantVersion: "5.0.0",
			wantMarker:  MarkerDefine,
			wantSource:  "ESP32-S3_PetCollar_MQTT.ino",
		},
		{
			name:        "fallback when nothing exists",
			files:       map[string]string{},
			wantVersion: DefaultFallbackVersion,
			wantMarker:  MarkerFallback,
		},
		{
			name: "fallback when nothing matches",
			files: map[string]string{
				"ESP32-S3_PetCollar.ino": "#define OTHER_VERSION \"1.2.3\"",
			},
			wantVersion: DefaultFallbackVersion,
			wantMarker:  MarkerFallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tt.files {
				writeSource(t, dir, name, content)
			}

			got := NewService(dir, "", nil).Resolve(DefaultCandidates)

			assert.Equal(t, tt.wantVersion, got.Version)
			assert.Equal(t, tt.wantMarker, got.Marker)
			if tt.wantSource == "" {
				assert.Empty(t, got.Source)
				assert.True(t, got.Fallback())
			} else {
				assert.Equal(t, filepath.Join(dir, tt.wantSource), got.Source)
				assert.False(t, got.Fallback())
			}
		})
	}
}

func TestResolveCustomFallback(t *testing.T) {
	got := NewService(t.TempDir(), "0.0.1", nil).Resolve(DefaultCandidates)
	assert.Equal(t, "0.0.1", got.Version)
	assert.True(t, got.Fallback())
}

func TestResolveSkipsUnreadableCandidate(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ESP32-S3_PetCollar.ino"), []byte{0xff, 0xfe, 0x00, '@'}, 0o644))
	writeSource(t, dir, "ESP32-S3_PetCollar_MQTT.ino", "#define FIRMWARE_VERSION \"4.3.0\"")

	var buf bytes.Buffer
	got := NewService(dir, "", logging.New(&buf, "info")).Resolve(DefaultCandidates)

	assert.Equal(t, "4.3.0", got.Version)
	assert.Contains(t, buf.String(), "Could not read version source")
	assert.Contains(t, buf.String(), "not valid UTF-8")
}

func TestResolveSkipsDirectoryCandidate(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "ESP32-S3_PetCollar.ino"), 0o755))

	var buf bytes.Buffer
	got := NewService(dir, "", logging.New(&buf, "info")).Resolve(DefaultCandidates)

	assert.Equal(t, DefaultFallbackVersion, got.Version)
	assert.Contains(t, buf.String(), "is a directory")
}

func TestResolveMissingCandidateIsSilent(t *testing.T) {
	var buf bytes.Buffer
	NewService(t.TempDir(), "", logging.New(&buf, "debug")).Resolve(DefaultCandidates)
	assert.Empty(t, buf.String())
}
