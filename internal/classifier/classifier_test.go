package classifier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/differentnischal-art/rock-bee-colony-monitoring-Project/internal/conf"
)

func writeLabelsFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "labels.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadLabelsDefaults(t *testing.T) {
	t.Parallel()

	c := &Classifier{Settings: &conf.Settings{}}
	require.NoError(t, c.loadLabels())
	assert.Equal(t, []string{"not_rock_bee", "rock_bee"}, c.Labels)
}

func TestLoadLabelsFromFile(t *testing.T) {
	t.Parallel()

	settings := &conf.Settings{}
	settings.Classifier.LabelsPath = writeLabelsFile(t, "no_colony\ncolony\n")

	c := &Classifier{Settings: settings}
	require.NoError(t, c.loadLabels())
	assert.Equal(t, []string{"no_colony", "colony"}, c.Labels)
}

func TestLoadLabelsWrongCount(t *testing.T) {
	t.Parallel()

	settings := &conf.Settings{}
	settings.Classifier.LabelsPath = writeLabelsFile(t, "one\ntwo\nthree\n")

	c := &Classifier{Settings: settings}
	assert.Error(t, c.loadLabels())
}

func TestDetermineThreadCount(t *testing.T) {
	t.Parallel()

	c := &Classifier{Settings: &conf.Settings{}}

	assert.Positive(t, c.determineThreadCount(0))
	assert.Equal(t, 1, c.determineThreadCount(1))
	// Requests above system capacity are capped
	assert.Equal(t, c.determineThreadCount(0), c.determineThreadCount(1<<20))
}
