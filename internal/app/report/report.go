package report

import (
	"fmt"
	"io"

	"go.uber.org/zap"
)

const (
	previewCount = 5
	previewRunes = 100
)

// PrintPreview writes a short sample of the collected reviews to w so the
// result of a crawl can be eyeballed without opening the saved file.
func PrintPreview(w io.Writer, reviews []string, logger *zap.Logger) {
	n := len(reviews)
	if n > previewCount {
		n = previewCount
	}
	for i := 0; i < n; i++ {
		fmt.Fprintf(w, "Review %d: %s\n", i+1, truncate(reviews[i], previewRunes))
	}
	logMsg := fmt.Sprintf("previewed %d of %d reviews", n, len(reviews))
	logger.Debug(logMsg)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
