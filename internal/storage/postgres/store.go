package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"binLiquidity/internal/model"
)

const defaultBatchSize = 500

// Store provides Postgres persistence for pool keys and built calldata.
type Store struct {
	pool      *pgxpool.Pool
	batchSize int
	logger    *zap.Logger
}

func NewStore(ctx context.Context, dsn string, batchSize int, logger *zap.Logger) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{pool: pool, batchSize: batchSize, logger: logger}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// UpsertPools inserts or updates pool key records.
func (s *Store) UpsertPools(ctx context.Context, pools []model.Pool) error {
	for _, chunk := range chunks(len(pools), s.batchSize) {
		batch := &pgx.Batch{}
		for _, pool := range pools[chunk[0]:chunk[1]] {
			batch.Queue(`
				INSERT INTO pools (
					pool_id, pool_type, currency0, currency1, hooks, pool_manager, fee, parameters, created_at, updated_at
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
				ON CONFLICT (pool_id)
				DO UPDATE SET updated_at = now()
			`,
				pool.PoolID,
				pool.PoolType,
				pool.Currency0,
				pool.Currency1,
				pool.Hooks,
				pool.PoolManager,
				int64(pool.Fee),
				pool.Parameters,
			)
		}
		if err := s.sendBatch(ctx, batch); err != nil {
			return fmt.Errorf("upsert pools: %w", err)
		}
	}
	return nil
}

// PutPayloads appends built calldata to the journal table.
func (s *Store) PutPayloads(ctx context.Context, payloads []model.Payload) error {
	for _, chunk := range chunks(len(payloads), s.batchSize) {
		batch := &pgx.Batch{}
		for _, p := range payloads[chunk[0]:chunk[1]] {
			createdAt, err := time.Parse(time.RFC3339Nano, p.CreatedAt)
			if err != nil {
				return fmt.Errorf("payload created_at %q: %w", p.CreatedAt, err)
			}
			batch.Queue(`
				INSERT INTO calldata_journal (method, selector, pool_id, calldata, deadline, created_at)
				VALUES ($1, $2, $3, $4, CAST($5::text AS NUMERIC), $6)
			`,
				p.Method,
				p.Selector,
				p.PoolID,
				p.Calldata,
				p.Deadline,
				createdAt,
			)
		}
		if err := s.sendBatch(ctx, batch); err != nil {
			return fmt.Errorf("insert payloads: %w", err)
		}
		s.logger.Debug("payload batch stored", zap.Int("count", chunk[1]-chunk[0]))
	}
	return nil
}

func (s *Store) sendBatch(ctx context.Context, batch *pgx.Batch) error {
	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// chunks splits [0, n) into half-open ranges of at most size elements.
func chunks(n, size int) [][2]int {
	if size <= 0 {
		size = defaultBatchSize
	}
	var out [][2]int
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		out = append(out, [2]int{start, end})
	}
	return out
}
