package pantry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/zombor/smart-pantry/internal/scanning"
)

// Batch is a set of receipt items awaiting user confirmation. Nothing in a
// batch is part of the pantry until it is confirmed.
type Batch struct {
	ID          string    `json:"id"`
	Items       []Item    `json:"items"`
	Image       string    `json:"image,omitempty"`
	ContentType string    `json:"content_type,omitempty"`
	Warning     string    `json:"warning,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Importer turns receipts and JSON exports into pantry items
type Importer struct {
	estimator *Estimator
	scanner   scanning.Scanner
	generator scanning.TextGenerator
	clock     Clock
}

// NewImporter creates an Importer. scanner and generator may be nil; without a
// scanner receipts cannot be read, without a generator OCR lines are used as-is.
func NewImporter(estimator *Estimator, scanner scanning.Scanner, generator scanning.TextGenerator, clock Clock) *Importer {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Importer{
		estimator: estimator,
		scanner:   scanner,
		generator: generator,
		clock:     clock,
	}
}

// BuildItems turns receipt lines into items bought today. Blank lines are
// dropped and every item gets an estimated expiry date.
func (im *Importer) BuildItems(ctx context.Context, lines []string) []Item {
	today := Day(im.clock.Now())

	items := make([]Item, 0, len(lines))
	for _, line := range lines {
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}
		expiry := im.estimator.Estimate(ctx, today, name)
		items = append(items, NewItem(name, FormatDate(today), expiry.String(), 1, false))
	}
	return items
}

// Extract reads a receipt image into a staged batch. The batch ID and image
// fields are left for the caller.
func (im *Importer) Extract(ctx context.Context, imageData []byte, contentType string) (*Batch, error) {
	if im.scanner == nil {
		return nil, fmt.Errorf("no receipt scanner configured")
	}

	rawLines, err := im.scanner.ReadLines(ctx, imageData, contentType)
	if err != nil {
		return nil, fmt.Errorf("reading receipt: %w", err)
	}

	batch := &Batch{
		ContentType: contentType,
		CreatedAt:   im.clock.Now(),
	}

	lines := rawLines
	if im.generator != nil {
		cleaned, err := scanning.CleanReceiptLines(ctx, im.generator, rawLines)
		if err != nil {
			slog.Warn("Receipt filtering failed, using raw text", "lines", len(rawLines), "error", err)
			batch.Warning = fmt.Sprintf("Filtering failed, using raw text. Error: %v", err)
		} else {
			lines = cleaned
		}
	}

	batch.Items = im.BuildItems(ctx, lines)
	return batch, nil
}

// importRecord is one entry of an imported pantry list. Pointers tell absent
// fields apart from zero values.
type importRecord struct {
	Name         *string `json:"name"`
	PurchaseDate *string `json:"purchase_date"`
	ExpiryDate   *string `json:"expiry_date"`
	Quantity     *int    `json:"quantity"`
	HighPriority *bool   `json:"high_priority"`
}

// ImportJSON reads a pantry list export. Records without a name or with
// mistyped fields are skipped; missing expiry dates are estimated from the
// purchase date and the name. Only a body that is not a JSON array fails.
func (im *Importer) ImportJSON(ctx context.Context, r io.Reader) ([]Item, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding pantry list: %w", err)
	}

	today := FormatDate(im.clock.Now())

	items := make([]Item, 0, len(raw))
	for i, data := range raw {
		var record importRecord
		if err := json.Unmarshal(data, &record); err != nil {
			slog.Warn("Skipping malformed pantry record", "index", i, "error", err)
			continue
		}
		if record.Name == nil || strings.TrimSpace(*record.Name) == "" {
			continue
		}
		name := strings.TrimSpace(*record.Name)

		purchaseDate := today
		if record.PurchaseDate != nil {
			purchaseDate = strings.TrimSpace(*record.PurchaseDate)
		}

		var expiryDate string
		if record.ExpiryDate != nil {
			expiryDate = strings.TrimSpace(*record.ExpiryDate)
		}
		if expiryDate == "" {
			estimateFrom := purchaseDate
			if estimateFrom == "" {
				estimateFrom = today
			}
			expiryDate = im.estimator.EstimateString(ctx, estimateFrom, name).String()
		}

		quantity := 1
		if record.Quantity != nil {
			quantity = *record.Quantity
		}
		highPriority := false
		if record.HighPriority != nil {
			highPriority = *record.HighPriority
		}

		items = append(items, NewItem(name, purchaseDate, expiryDate, quantity, highPriority))
	}
	return items, nil
}

// ExportJSON writes items as an indented pantry list
func ExportJSON(w io.Writer, items []Item) error {
	if items == nil {
		items = []Item{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("encoding pantry list: %w", err)
	}
	return nil
}
