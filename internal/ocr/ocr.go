// Package ocr defines the contract for the external text-recognition
// collaborator. The pipeline treats OCR as a black box producing UTF-8 text
// or a typed failure.
package ocr

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrOCR marks any failure of the text-recognition collaborator, including
// recognition that produced no usable text.
var ErrOCR = errors.New("ocr failure")

// Client extracts text from a receipt image. Implementations must return
// ErrOCR-wrapped errors for empty or unreadable results.
type Client interface {
	ExtractText(ctx context.Context, imagePath string) (string, error)
}

// Validate rejects empty or whitespace-only OCR output, which the pipeline
// treats as a recognition failure rather than an empty receipt.
func Validate(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: no text recognized", ErrOCR)
	}
	return text, nil
}

// FileClient reads pre-extracted OCR output from .txt sidecar files. It
// stands in for a real OCR engine in tests and offline workflows: for
// image.jpg it reads image.txt, for a .txt path it reads the file itself.
type FileClient struct{}

// ExtractText implements Client.
func (FileClient) ExtractText(_ context.Context, imagePath string) (string, error) {
	path := imagePath
	if !strings.HasSuffix(path, ".txt") {
		if idx := strings.LastIndex(path, "."); idx > 0 {
			path = path[:idx]
		}
		path += ".txt"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %v", ErrOCR, path, err)
	}
	return Validate(string(data))
}
