package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"binLiquidity/internal/config"
	"binLiquidity/internal/model"
	"binLiquidity/internal/storage"
	"binLiquidity/internal/storage/postgres"
)

type payloadJournal struct {
	journal  storage.MultiJournal
	registry storage.PoolRegistry
	closeFn  func()
}

func openJournal(ctx context.Context, cfg config.OutputConfig, logger *zap.Logger) (*payloadJournal, error) {
	j := &payloadJournal{closeFn: func() {}}
	if cfg.Journal != "" {
		j.journal = append(j.journal, storage.NewJsonlStorage(cfg.Journal))
	}
	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN, cfg.BatchSize, logger)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := store.EnsureSchema(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		j.journal = append(j.journal, store)
		j.registry = store
		j.closeFn = store.Close
	}
	return j, nil
}

func (j *payloadJournal) Record(ctx context.Context, key model.PoolKey, payload model.Payload) error {
	if j.registry != nil {
		pool, err := model.NewPool(key)
		if err != nil {
			return err
		}
		if err := j.registry.UpsertPools(ctx, []model.Pool{pool}); err != nil {
			return err
		}
	}
	if len(j.journal) == 0 {
		return nil
	}
	return j.journal.PutPayloads(ctx, []model.Payload{payload})
}

func (j *payloadJournal) Close() {
	if j != nil {
		j.closeFn()
	}
}

func newPayload(method, selector string, key model.PoolKey, calldata, deadline string, now time.Time) (model.Payload, error) {
	id, err := key.ID()
	if err != nil {
		return model.Payload{}, err
	}
	return model.Payload{
		Method:    method,
		Selector:  selector,
		PoolID:    id.Hex(),
		Calldata:  calldata,
		Deadline:  deadline,
		CreatedAt: now.UTC().Format(time.RFC3339Nano),
	}, nil
}
