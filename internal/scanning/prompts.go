package scanning

import "fmt"

// receiptTranscribePrompt is shared by the vision backends for OCR
const receiptTranscribePrompt = `You are reading a photo of a grocery receipt. Transcribe every line of printed text exactly as it appears, top to bottom.

Rules:
- Return one receipt line per output line
- Keep item names, prices and codes as printed
- Do not summarize, translate or add commentary
- Do not use markdown code blocks`

// receiptCleanupPrompt asks the model to keep only purchased food items
const receiptCleanupPrompt = `You are a helpful assistant.
Given the following receipt OCR text, return only the actual food items purchased, one per line.
Ignore store names, total prices, timestamps, and greetings.

Text:
%s

List:
`

func cleanupPrompt(joined string) string {
	return fmt.Sprintf(receiptCleanupPrompt, joined)
}
