package scanning

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/gen2brain/heic"
)

// receiptFormat is the container a receipt upload arrived in
type receiptFormat int

const (
	formatRaster receiptFormat = iota // anything image.Decode understands
	formatPNG
	formatPDF
	formatHEIC
)

var (
	pngMagic = []byte("\x89PNG\r\n\x1a\n")
	pdfMagic = []byte("%PDF-")
)

// sniffReceipt detects the upload format from its leading bytes. The declared
// MIME type only decides when the bytes are inconclusive, since browsers
// often send application/octet-stream for phone photos.
func sniffReceipt(data []byte, mimeType string) receiptFormat {
	switch {
	case bytes.HasPrefix(data, pngMagic):
		return formatPNG
	case bytes.HasPrefix(data, pdfMagic):
		return formatPDF
	case isHEICFormat(data):
		return formatHEIC
	}

	switch {
	case mimeType == "application/pdf":
		return formatPDF
	case strings.Contains(mimeType, "heic"), strings.Contains(mimeType, "heif"):
		return formatHEIC
	default:
		return formatRaster
	}
}

// isHEICFormat looks for an ftyp box with a HEIC-family brand at offset 4
func isHEICFormat(data []byte) bool {
	if len(data) < 12 || string(data[4:8]) != "ftyp" {
		return false
	}
	switch string(data[8:12]) {
	case "heic", "heif", "mif1", "msf1":
		return true
	}
	return false
}

// decodeReceipt turns a non-PNG upload into an image
func decodeReceipt(data []byte, format receiptFormat) (image.Image, error) {
	switch format {
	case formatPDF:
		doc, err := fitz.NewFromMemory(data)
		if err != nil {
			return nil, fmt.Errorf("opening PDF: %w", err)
		}
		defer doc.Close()

		// Grocery receipts are a single page
		img, err := doc.Image(0)
		if err != nil {
			return nil, fmt.Errorf("rendering PDF page: %w", err)
		}
		return img, nil

	case formatHEIC:
		img, err := heic.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decoding HEIC photo: %w", err)
		}
		return img, nil

	default:
		img, _, err := image.Decode(bytes.NewReader(data))
		if err == image.ErrFormat {
			return nil, fmt.Errorf("unsupported image format, use JPEG, PNG, HEIC or PDF: %w", err)
		}
		if err != nil {
			return nil, fmt.Errorf("decoding image: %w", err)
		}
		return img, nil
	}
}

// prepareImageData converts a receipt upload to PNG for the OCR backends.
// It returns the PNG bytes, their MIME type (always image/png) and whether
// the upload had to be converted.
func prepareImageData(imageData []byte, contentType string) ([]byte, string, bool, error) {
	if len(imageData) == 0 {
		return nil, "", false, fmt.Errorf("empty image")
	}

	format := sniffReceipt(imageData, strings.ToLower(strings.TrimSpace(contentType)))
	if format == formatPNG {
		return imageData, "image/png", false, nil
	}

	img, err := decodeReceipt(imageData, format)
	if err != nil {
		return nil, "", false, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, "", false, fmt.Errorf("encoding PNG: %w", err)
	}
	return buf.Bytes(), "image/png", true, nil
}
