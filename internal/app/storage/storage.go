package storage

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

const blockDelimiter = 50 // width of the "=" rule between reviews

// FileStorer writes collected reviews as a human-readable transcript, one
// numbered, delimited block per review. The destination is overwritten.
type FileStorer struct {
	logger *zap.Logger
}

func NewFileStorer(logger *zap.Logger) *FileStorer {
	logger.Debug("new file storer initialize")
	return &FileStorer{logger: logger}
}

func (s *FileStorer) Save(reviews []string, destination string) error {
	f, err := os.Create(destination)
	if err != nil {
		s.logger.Error("can't open destination for writing",
			zap.String("destination", destination), zap.Error(err))
		return fmt.Errorf("open %s for writing: %w", destination, err)
	}

	w := bufio.NewWriter(f)
	rule := strings.Repeat("=", blockDelimiter)
	for i, review := range reviews {
		fmt.Fprintf(w, "Review %d:\n%s\n\n%s\n\n", i+1, review, rule)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", destination, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", destination, err)
	}

	logMsg := fmt.Sprintf("saved %d reviews to %s", len(reviews), destination)
	s.logger.Info(logMsg)
	return nil
}
