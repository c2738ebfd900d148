// Package ocr provides OCR (Optical Character Recognition) for screenshot regions.
package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"gocv.io/x/gocv"
)

// Character whitelists used for the scoreboard fields. Restricting the set
// keeps Tesseract from hallucinating punctuation into digits.
const (
	DigitChars     = "0123456789"
	DurationChars  = "0123456789:"
	RatingChars    = "0123456789."
	UppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Options configures a single recognition pass.
type Options struct {
	// Whitelist restricts recognized characters; empty means unrestricted.
	Whitelist string
	// PSM is the Tesseract page segmentation mode for the pass.
	PSM gosseract.PageSegMode
}

// SingleLine recognizes one line of text from the given character set.
func SingleLine(whitelist string) Options {
	return Options{Whitelist: whitelist, PSM: gosseract.PSM_SINGLE_LINE}
}

// SingleWord recognizes one word, used for the compact rating field.
func SingleWord(whitelist string) Options {
	return Options{Whitelist: whitelist, PSM: gosseract.PSM_SINGLE_WORD}
}

// Block recognizes a uniform block of text, possibly multi-line (clan tag
// above nickname).
func Block(whitelist string) Options {
	return Options{Whitelist: whitelist, PSM: gosseract.PSM_SINGLE_BLOCK}
}

// Engine wraps a Tesseract client for region recognition.
type Engine struct {
	client *gosseract.Client
}

// NewEngine creates a new OCR engine. tessdataPrefix optionally overrides
// the Tesseract data directory; pass "" for the system default.
func NewEngine(tessdataPrefix string) (*Engine, error) {
	client := gosseract.NewClient()

	if tessdataPrefix != "" {
		if err := client.SetTessdataPrefix(tessdataPrefix); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to set tessdata prefix: %w", err)
		}
	}
	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set OCR language: %w", err)
	}

	// Nicknames and stat digits are not dictionary words; disable word
	// correction so Tesseract does not "fix" them.
	_ = client.SetVariable("load_system_dawg", "false")
	_ = client.SetVariable("load_freq_dawg", "false")

	return &Engine{client: client}, nil
}

// Close releases OCR resources.
func (e *Engine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// Recognize performs OCR on a preprocessed matrix and returns the trimmed
// text. Empty input yields empty text, not an error.
func (e *Engine) Recognize(img gocv.Mat, opts Options) (string, error) {
	if img.Empty() {
		return "", nil
	}
	if err := e.configure(img, opts); err != nil {
		return "", err
	}

	text, err := e.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// Words performs word-level OCR and returns the non-empty tokens in reading
// order. Each token carries whatever characters Tesseract saw; callers
// extract digit runs themselves.
func (e *Engine) Words(img gocv.Mat, opts Options) ([]string, error) {
	if img.Empty() {
		return nil, nil
	}
	if err := e.configure(img, opts); err != nil {
		return nil, err
	}

	boxes, err := e.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("failed to get word boxes: %w", err)
	}

	var words []string
	for _, box := range boxes {
		word := strings.TrimSpace(box.Word)
		if word == "" {
			continue
		}
		words = append(words, word)
	}
	return words, nil
}

// configure encodes the matrix as PNG and primes the client for a pass.
func (e *Engine) configure(img gocv.Mat, opts Options) error {
	buf, err := gocv.IMEncode(gocv.PNGFileExt, img)
	if err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	defer buf.Close()

	if err := e.client.SetPageSegMode(opts.PSM); err != nil {
		return fmt.Errorf("failed to set PSM: %w", err)
	}
	// Some Tesseract builds reject clearing the whitelist; only fail when a
	// restriction was actually requested.
	if err := e.client.SetWhitelist(opts.Whitelist); err != nil && opts.Whitelist != "" {
		return fmt.Errorf("failed to set whitelist: %w", err)
	}
	if err := e.client.SetImageFromBytes(buf.GetBytes()); err != nil {
		return fmt.Errorf("failed to set image: %w", err)
	}
	return nil
}
