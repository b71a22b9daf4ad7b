package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewFileStorer(t *testing.T) {
	l := zap.NewExample()
	s := NewFileStorer(l)
	assert.NotNil(t, s, "Create new file storer failed")
}

func TestSaveWritesNumberedBlocks(t *testing.T) {
	l := zap.NewExample()
	s := NewFileStorer(l)
	dest := filepath.Join(t.TempDir(), "reviews.txt")

	err := s.Save([]string{"First text.", "Second text.", "Third text."}, dest)
	assert.NoError(t, err)

	raw, err := os.ReadFile(dest)
	assert.NoError(t, err)
	got := string(raw)

	rule := strings.Repeat("=", 50)
	exp := "Review 1:\nFirst text.\n\n" + rule + "\n\n" +
		"Review 2:\nSecond text.\n\n" + rule + "\n\n" +
		"Review 3:\nThird text.\n\n" + rule + "\n\n"
	assert.Equal(t, exp, got)
	assert.Equal(t, 3, strings.Count(got, "Review "), "one block per review")
}

func TestSaveOverwritesExisting(t *testing.T) {
	l := zap.NewExample()
	s := NewFileStorer(l)
	dest := filepath.Join(t.TempDir(), "reviews.txt")

	assert.NoError(t, s.Save([]string{"Old content."}, dest))
	assert.NoError(t, s.Save([]string{"New content."}, dest))

	raw, _ := os.ReadFile(dest)
	assert.NotContains(t, string(raw), "Old content.")
	assert.Contains(t, string(raw), "New content.")
}

func TestSaveEmptySequence(t *testing.T) {
	l := zap.NewExample()
	s := NewFileStorer(l)
	dest := filepath.Join(t.TempDir(), "reviews.txt")

	assert.NoError(t, s.Save(nil, dest))

	raw, err := os.ReadFile(dest)
	assert.NoError(t, err)
	assert.Empty(t, raw, "zero reviews means an empty transcript")
}

func TestSaveUnwritableDestination(t *testing.T) {
	l := zap.NewExample()
	s := NewFileStorer(l)
	dest := filepath.Join(t.TempDir(), "no-such-dir", "reviews.txt")

	err := s.Save([]string{"Lost otherwise."}, dest)
	assert.Error(t, err, "persistence failure must surface")
}
