package scanning

import (
	"context"
	"fmt"
	"strings"
)

// CleanReceiptLines asks gen to reduce raw OCR lines to food item names,
// one per line. Callers fall back to the raw lines when this fails.
func CleanReceiptLines(ctx context.Context, gen TextGenerator, lines []string) ([]string, error) {
	if gen == nil {
		return nil, fmt.Errorf("no text generator configured")
	}

	reply, err := gen.Complete(ctx, cleanupPrompt(strings.Join(lines, "\n")))
	if err != nil {
		return nil, fmt.Errorf("filtering receipt lines: %w", err)
	}
	return parseLines(reply), nil
}
