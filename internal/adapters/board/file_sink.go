package board

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mfern/chattally/internal/domain"
	"github.com/mfern/chattally/internal/ports"
)

const (
	outputFileMode  = 0o644
	tempFilePattern = ".answers-*.txt.tmp"
)

// FileSink publishes the ranked answers to a plain-text file. Every
// publish replaces the whole file, so the sink always holds exactly the
// latest snapshot, never a history of snapshots. The replacement goes
// through a temp file and a rename, so a reader of the output file can
// never observe a half-written report.
type FileSink struct {
	path string
}

var _ ports.BoardSink = (*FileSink)(nil)

func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

func (s *FileSink) Publish(ctx context.Context, entries []domain.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("Answers:\r\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "%s(%d)\r\n", e.Message, e.Count)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(s.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp answers file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.WriteString(b.String()); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp answers file: %w", err)
	}

	if err := tempFile.Chmod(outputFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp answers file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp answers file: %w", err)
	}

	if err := os.Rename(tempName, s.path); err != nil {
		return fmt.Errorf("replace answers file: %w", err)
	}

	cleanup = false
	return nil
}
