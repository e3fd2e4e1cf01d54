// Package datasource abstracts where the raw layoffs dataset comes from. The
// pipeline only needs a readable byte stream; provisioning of the data is an
// external concern.
package datasource

import (
	"context"
	"io"
)

// Source yields the raw dataset bytes.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}
