// Package pipeline drives the extractor over batches of screenshots and
// over directories watched for new ones.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"mlbb-extractor/internal/extract"
)

// Result is the outcome of processing one screenshot. Err is set when the
// image could not be processed at all; decoded records otherwise.
type Result struct {
	Image   string
	Records []extract.GameRecord
	Err     error
}

// Runner feeds screenshots through one extractor sequentially. The OCR
// engine underneath is stateful, so a runner never processes two images at
// once.
type Runner struct {
	extractor *extract.Extractor
	nickname  string
	log       zerolog.Logger
}

func New(extractor *extract.Extractor) *Runner {
	return &Runner{extractor: extractor, log: zerolog.Nop()}
}

// SetNickname restricts processing to a single player's record per image.
// With an empty nickname all five rows are extracted.
func (r *Runner) SetNickname(nickname string) { r.nickname = nickname }

func (r *Runner) SetLogger(log zerolog.Logger) { r.log = log }

// Process extracts one screenshot.
func (r *Runner) Process(path string) Result {
	start := time.Now()
	res := Result{Image: path}
	if r.nickname != "" {
		rec, err := r.extractor.FindPlayer(path, r.nickname)
		if err != nil {
			res.Err = err
		} else {
			res.Records = []extract.GameRecord{*rec}
		}
	} else {
		res.Records, res.Err = r.extractor.ExtractAll(path)
	}

	evt := r.log.Info()
	if res.Err != nil {
		evt = r.log.Warn().Err(res.Err)
	}
	evt.Str("image", filepath.Base(path)).
		Int("records", len(res.Records)).
		Dur("elapsed", time.Since(start)).
		Msg("image processed")
	return res
}

// ProcessBatch extracts each image in order. A failing image produces a
// Result carrying its error; the batch always continues.
func (r *Runner) ProcessBatch(paths []string) []Result {
	results := make([]Result, 0, len(paths))
	for _, path := range paths {
		results = append(results, r.Process(path))
	}
	return results
}

// ProcessDir extracts every screenshot directly inside dir, in name order.
func (r *Runner) ProcessDir(dir string) ([]Result, error) {
	paths, err := ListImages(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no screenshots found in %s", dir)
	}
	return r.ProcessBatch(paths), nil
}

// settleDelay is how long a watched file must stay quiet before it is
// considered fully written.
const settleDelay = 500 * time.Millisecond

// Watch processes screenshots as they appear in dir, calling handle for each
// completed result. It returns when ctx is cancelled. Files are processed
// only after writes to them have settled, since capture tools write large
// PNGs in several chunks.
func (r *Runner) Watch(ctx context.Context, dir string, handle func(Result)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	r.log.Info().Str("dir", dir).Msg("watching for screenshots")

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(settleDelay / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Write) {
				continue
			}
			if !IsImage(ev.Name) {
				continue
			}
			pending[ev.Name] = time.Now()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.log.Warn().Err(err).Msg("watch error")
		case <-ticker.C:
			for path, last := range pending {
				if time.Since(last) < settleDelay {
					continue
				}
				delete(pending, path)
				handle(r.Process(path))
			}
		}
	}
}

// IsImage reports whether path has a supported screenshot extension.
func IsImage(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".bmp":
		return true
	}
	return false
}

// ListImages returns the screenshot paths directly inside dir, sorted by
// name. Subdirectories are not descended into.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !IsImage(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Flatten collects the records of every successful result.
func Flatten(results []Result) []extract.GameRecord {
	var records []extract.GameRecord
	for _, res := range results {
		records = append(records, res.Records...)
	}
	return records
}
