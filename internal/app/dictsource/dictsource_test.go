package dictsource

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akenore24/sawasew-keyboard/internal/config"
	"github.com/akenore24/sawasew-keyboard/internal/domain"
)

func bufLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Both(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	paths := config.PathsConfig{
		OldDict: write(t, dir, "old.json", `["ሰላም"]`),
		NewDict: write(t, dir, "new.json", `{"words": [{"root": "ፍቅር"}, 5]}`),
	}
	log, buf := bufLogger()

	src, err := Load(paths, log)
	require.NoError(t, err)

	assert.Equal(t, domain.ShapeFlatList, src.Old.Shape)
	assert.Len(t, src.New.Items, 1)
	assert.Len(t, src.New.Rejected, 1)
	assert.Contains(t, buf.String(), "skipping malformed entry")
	assert.Contains(t, buf.String(), "malformed entries skipped")
}

func TestLoad_LogsRejectedOldWords(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	paths := config.PathsConfig{
		OldDict: write(t, dir, "old.json", `["ሰላም", null]`),
		NewDict: write(t, dir, "new.json", `{"words": []}`),
	}
	log, buf := bufLogger()

	src, err := Load(paths, log)
	require.NoError(t, err)
	require.Len(t, src.Old.Rejected, 1)

	words := OldWords(src.Old, paths.OldDict, log)
	assert.Equal(t, []string{"ሰላም"}, words)

	out := buf.String()
	assert.Contains(t, out, "skipping malformed entry")
	assert.Contains(t, out, "old.json")
	assert.NotContains(t, out, "unknown old dictionary format")
}

func TestLoad_ReportsEveryFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	paths := config.PathsConfig{
		OldDict: filepath.Join(dir, "missing.json"),
		NewDict: write(t, dir, "new.json", `{"words": [`),
	}
	log, buf := bufLogger()

	_, err := Load(paths, log)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingFile)
	assert.ErrorIs(t, err, domain.ErrMalformedJSON)

	out := buf.String()
	assert.Contains(t, out, "file not found")
	assert.Contains(t, out, "json decode error")
	assert.Contains(t, out, "missing.json")
}

func TestLoad_CapsRejectedWarnings(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bad := strings.TrimSuffix(strings.Repeat("1,", maxRejectedLogged+5), ",")
	paths := config.PathsConfig{
		OldDict: write(t, dir, "old.json", `[]`),
		NewDict: write(t, dir, "new.json", `{"words": [`+bad+`]}`),
	}
	log, buf := bufLogger()

	src, err := Load(paths, log)
	require.NoError(t, err)
	assert.Len(t, src.New.Rejected, maxRejectedLogged+5)
	assert.Equal(t, maxRejectedLogged, strings.Count(buf.String(), "skipping malformed entry"))
}

func TestOldWords_UnknownShape(t *testing.T) {
	t.Parallel()

	log, buf := bufLogger()
	words := OldWords(domain.OldDictionary{Shape: domain.ShapeUnknown}, "mobile_dict.json", log)

	assert.Empty(t, words)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "unknown old dictionary format")
}

func TestOldWords_FlatList(t *testing.T) {
	t.Parallel()

	log, buf := bufLogger()
	words := OldWords(domain.OldDictionary{Shape: domain.ShapeFlatList, Raw: []string{"a", "b", "a"}}, "x.json", log)

	assert.Equal(t, []string{"a", "b"}, words)
	assert.Empty(t, buf.String())
}
