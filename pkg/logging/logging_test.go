package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFallsBackToInfo(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, New("debug").GetLevel())
	assert.Equal(t, logrus.InfoLevel, New("nonsense").GetLevel())
}

func TestAttachRunFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	log := New("info")

	path, closeFn, err := AttachRunFile(log, dir, "abc123")
	require.NoError(t, err)
	defer closeFn()

	assert.Equal(t, filepath.Join(dir, "run_abc123.log"), path)

	log.Info("step executed")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "step executed")
}

func TestNewRunIDUnique(t *testing.T) {
	assert.NotEqual(t, NewRunID(), NewRunID())
	assert.NotEmpty(t, NewRunID())
}
