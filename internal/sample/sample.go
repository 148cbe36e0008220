// Package sample buffers records out of a streaming source and picks the
// random subset that gets persisted.
package sample

import (
	"context"
	"errors"
	"io"
	"math/rand"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/gosample/internal/hub"
)

// Iterator yields one record per call and io.EOF once the stream is drained.
type Iterator interface {
	Next(ctx context.Context) (hub.Record, error)
}

// Source opens a record stream for one dataset split. It abstracts the hub
// client so collection stays testable offline.
type Source interface {
	OpenRows(ctx context.Context, dataset, split string) (Iterator, error)
}

// Sampler buffers up to a fixed number of records per dataset and selects a
// uniform random subset of them.
type Sampler struct {
	Source Source
	// Rand drives selection; nil uses the process-global source.
	Rand *rand.Rand
}

// Collect opens the dataset's "train" split, falling back to the default
// split when the dataset does not define one, and pulls up to total records.
// Failed pulls are logged and skipped, and exhaustion just stops the loop
// early; only a stream that cannot be opened at all is an error.
func (s *Sampler) Collect(ctx context.Context, dataset string, total int) ([]hub.Record, error) {
	it, err := s.Source.OpenRows(ctx, dataset, "train")
	if errors.Is(err, hub.ErrSplitNotFound) {
		log.Warn().Str("dataset", dataset).Msg("train split not found, using default split")
		it, err = s.Source.OpenRows(ctx, dataset, "")
	}
	if err != nil {
		return nil, err
	}

	records := make([]hub.Record, 0, total)
	for i := 0; i < total; i++ {
		rec, err := it.Next(ctx)
		if errors.Is(err, io.EOF) {
			log.Warn().Str("dataset", dataset).Int("collected", len(records)).Msg("no more samples available")
			break
		}
		if err != nil {
			log.Error().Err(err).Str("dataset", dataset).Int("sample", i).Msg("error pulling sample")
			continue
		}
		records = append(records, rec)
		if i%20 == 0 {
			log.Debug().Str("dataset", dataset).Int("loaded", i).Msg("loading samples")
		}
	}
	return records, nil
}

// Select returns min(size, len(records)) distinct records drawn uniformly
// without replacement. Input order carries no meaning, so no reshuffle of
// the survivors is attempted.
func (s *Sampler) Select(records []hub.Record, size int) []hub.Record {
	if size > len(records) {
		size = len(records)
	}
	if size <= 0 {
		return nil
	}
	perm := s.perm(len(records))
	out := make([]hub.Record, 0, size)
	for _, idx := range perm[:size] {
		out = append(out, records[idx])
	}
	return out
}

func (s *Sampler) perm(n int) []int {
	if s.Rand != nil {
		return s.Rand.Perm(n)
	}
	return rand.Perm(n)
}
