package board

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfern/chattally/internal/domain"
)

func TestFileSinkWritesReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.txt")
	sink := NewFileSink(path)

	err := sink.Publish(context.Background(), []domain.Entry{
		{Message: "pog", Count: 3},
		{Message: "kappa", Count: 1},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Answers:\r\npog(3)\r\nkappa(1)\r\n", string(data))
}

func TestFileSinkOverwritesPreviousSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.txt")
	sink := NewFileSink(path)

	require.NoError(t, sink.Publish(context.Background(), []domain.Entry{
		{Message: "pog", Count: 3},
		{Message: "kappa", Count: 2},
		{Message: "lul", Count: 1},
	}))
	require.NoError(t, sink.Publish(context.Background(), []domain.Entry{
		{Message: "pog", Count: 4},
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Answers:\r\npog(4)\r\n", string(data), "old entries must not survive a publish")
}

func TestFileSinkLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	sink := NewFileSink(filepath.Join(dir, "answers.txt"))

	require.NoError(t, sink.Publish(context.Background(), []domain.Entry{{Message: "pog", Count: 1}}))

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "answers.txt", files[0].Name())
}

func TestFileSinkHonoursCancelledContext(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "answers.txt")
	sink := NewFileSink(path)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sink.Publish(ctx, []domain.Entry{{Message: "pog", Count: 1}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, path)
}
