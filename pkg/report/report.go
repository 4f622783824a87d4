// Package report renders a redaction result as plain text.
package report

import (
	"fmt"
	"io"
	"strings"

	"swearfilter/pkg/censor"
)

// Write renders original and res to w:
// original text, cleaned text, detected words and the percentage with two decimals.
func Write(w io.Writer, original string, res censor.Result) error {
	_, err := fmt.Fprintf(w,
		"Original Text:\n%s\n\nCleaned Text:\n%s\n\nDetected Swear Words:\n%s\nPercentage of Swear Words:\n%.2f%%\n",
		original,
		res.CleanedText,
		strings.Join(res.Detected, ", "),
		res.Percentage,
	)
	return err
}
