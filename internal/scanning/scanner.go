// Package scanning talks to the OCR and text-generation backends used to
// read receipts, estimate shelf life and hold recipe conversations.
package scanning

import "context"

// TextGenerator completes a free-text prompt.
type TextGenerator interface {
	// Complete sends prompt to the model and returns its text reply
	Complete(ctx context.Context, prompt string) (string, error)
}

// Scanner reads the text lines printed on a receipt image
type Scanner interface {
	// ReadLines transcribes an image/PDF into ordered text lines
	ReadLines(ctx context.Context, imageData []byte, contentType string) ([]string, error)
	// Close closes the scanner and releases resources
	Close() error
}
