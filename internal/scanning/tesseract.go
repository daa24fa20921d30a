package scanning

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Tesseract implements Scanner by running the local tesseract binary
type Tesseract struct {
	bin string
}

// NewTesseract checks that bin is on PATH and returns a Tesseract scanner
func NewTesseract(bin string) (*Tesseract, error) {
	if bin == "" {
		bin = "tesseract"
	}
	path, err := exec.LookPath(bin)
	if err != nil {
		return nil, fmt.Errorf("finding tesseract binary: %w", err)
	}
	return &Tesseract{bin: path}, nil
}

// ReadLines pipes the receipt image through `tesseract stdin stdout`
func (t *Tesseract) ReadLines(ctx context.Context, imageData []byte, contentType string) ([]string, error) {
	finalImageData, _, _, err := prepareImageData(imageData, contentType)
	if err != nil {
		return nil, err
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, t.bin, "stdin", "stdout")
	cmd.Stdin = bytes.NewReader(finalImageData)
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("running tesseract: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	lines := parseLines(string(out))
	if len(lines) == 0 {
		return nil, fmt.Errorf("no text found on receipt")
	}
	return lines, nil
}

// Close is a no-op; each scan runs its own process
func (t *Tesseract) Close() error {
	return nil
}
