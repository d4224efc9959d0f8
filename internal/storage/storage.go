package storage

import (
	"context"
	"errors"

	"binLiquidity/internal/model"
)

// Journal defines a sink for built calldata payloads.
type Journal interface {
	PutPayloads(ctx context.Context, payloads []model.Payload) error
}

// PoolRegistry records the pool keys payloads were built for.
type PoolRegistry interface {
	UpsertPools(ctx context.Context, pools []model.Pool) error
}

// MultiJournal fans payloads out to every journal. All journals are
// attempted; their errors are joined.
type MultiJournal []Journal

func (m MultiJournal) PutPayloads(ctx context.Context, payloads []model.Payload) error {
	var errs []error
	for _, journal := range m {
		if journal == nil {
			continue
		}
		if err := journal.PutPayloads(ctx, payloads); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
