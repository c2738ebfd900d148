package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"gocv.io/x/gocv"
)

// DebugSink receives intermediate region images as they are produced. Sinks
// must be safe for use from a single extractor; the extractor never calls
// Save concurrently.
type DebugSink interface {
	Save(label string, img gocv.Mat) error
}

// FileSink writes every intermediate image as a numbered PNG under a
// directory, in the order the pipeline produced them.
type FileSink struct {
	dir string

	mu sync.Mutex
	n  int
}

// NewFileSink creates the directory if needed and returns a sink writing
// into it.
func NewFileSink(dir string) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating debug dir: %w", err)
	}
	return &FileSink{dir: dir}, nil
}

func (s *FileSink) Save(label string, img gocv.Mat) error {
	src, err := img.ToImage()
	if err != nil {
		return fmt.Errorf("converting %s: %w", label, err)
	}
	s.mu.Lock()
	s.n++
	n := s.n
	s.mu.Unlock()

	name := fmt.Sprintf("%03d_%s.png", n, sanitizeLabel(label))
	if err := imaging.Save(src, filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("saving %s: %w", name, err)
	}
	return nil
}

func sanitizeLabel(label string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_':
			return r
		}
		return '_'
	}, label)
}
