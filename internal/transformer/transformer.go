// Package transformer defines the stage contract for the cleaning pipeline.
//
// Each transformer consumes the snapshot produced by the previous stage and
// returns the next snapshot. Stages never partially commit: a stage that
// returns an error leaves its input untouched from the caller's point of view,
// and the chain stops there.
package transformer

import "layoffs/pkg/records"

// Transformer is one pipeline stage.
type Transformer interface {
	Apply(in []records.Record) ([]records.Record, error)
}

// Chain is an ordered list of transformers.
type Chain []Transformer

// Apply runs each transformer in order, feeding each stage the previous
// stage's output. The first error aborts the chain.
func (c Chain) Apply(in []records.Record) ([]records.Record, error) {
	out := in
	var err error
	for _, t := range c {
		out, err = t.Apply(out)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
