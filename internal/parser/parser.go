package parser

import (
	"io"

	"layoffs/pkg/records"
)

// Parser turns raw source bytes into records. It returns the canonical header
// (for contract checking), the parsed rows, and the number of malformed rows
// skipped.
type Parser interface {
	Parse(r io.Reader) (rows []records.Record, header []string, skipped int, err error)
}
