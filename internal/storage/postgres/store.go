package postgres

// Package postgres provides a pgx-backed merchant store, used for the persistent
// tree when a DATABASE_URL is configured.
//
// It is intentionally small and explicit. The only schema it needs is created
// idempotently by Open; there are no other migrations.

import (
    "context"
    "errors"
    "fmt"

    "github.com/jackc/pgx/v5"
    "github.com/jackc/pgx/v5/pgxpool"

    "github.com/tinoosan/merchants/internal/errs"
    "github.com/tinoosan/merchants/internal/model"
)

const schema = `
    create table if not exists merchants (
        id          bigint generated by default as identity primary key,
        name        text not null,
        description text null
    )`

// Store holds a pgx connection pool. Each method acquires a pooled connection
// for a single statement and releases it before returning. All methods are safe
// for concurrent use; isolation is left to Postgres.
type Store struct {
    pool *pgxpool.Pool
}

// Open establishes a pgx pool using the provided connection string and ensures the table exists.
func Open(ctx context.Context, dsn string) (*Store, error) {
    cfg, err := pgxpool.ParseConfig(dsn)
    if err != nil { return nil, err }
    pool, err := pgxpool.NewWithConfig(ctx, cfg)
    if err != nil { return nil, err }
    // Verify connection
    if err := pool.Ping(ctx); err != nil { pool.Close(); return nil, err }
    if _, err := pool.Exec(ctx, schema); err != nil { pool.Close(); return nil, fmt.Errorf("postgres: create table: %w", err) }
    return &Store{pool: pool}, nil
}

// Close releases the underlying pool.
func (s *Store) Close() { if s.pool != nil { s.pool.Close() } }

// Ready pings the pool to verify connectivity.
func (s *Store) Ready(ctx context.Context) error { return s.pool.Ping(ctx) }

// List returns all merchants ordered by ascending id.
func (s *Store) List(ctx context.Context) ([]model.Merchant, error) {
    rows, err := s.pool.Query(ctx, `select id, name, description from merchants order by id asc`)
    if err != nil { return nil, fmt.Errorf("postgres: list: %w", err) }
    defer rows.Close()
    out := make([]model.Merchant, 0)
    for rows.Next() {
        var m model.Merchant
        if err := rows.Scan(&m.ID, &m.Name, &m.Description); err != nil { return nil, fmt.Errorf("postgres: list: %w", err) }
        out = append(out, m)
    }
    if err := rows.Err(); err != nil { return nil, fmt.Errorf("postgres: list: %w", err) }
    return out, nil
}

// Get fetches a single merchant by id.
func (s *Store) Get(ctx context.Context, id int64) (model.Merchant, error) {
    var m model.Merchant
    err := s.pool.QueryRow(ctx, `
        select id, name, description
        from merchants
        where id = $1
    `, id).Scan(&m.ID, &m.Name, &m.Description)
    if errors.Is(err, pgx.ErrNoRows) { return model.Merchant{}, errs.NotFound(id) }
    if err != nil { return model.Merchant{}, fmt.Errorf("postgres: get: %w", err) }
    return m, nil
}

// Create inserts a merchant row and returns it with the identity-assigned id.
func (s *Store) Create(ctx context.Context, in model.Input) (model.Merchant, error) {
    var id int64
    err := s.pool.QueryRow(ctx, `
        insert into merchants (name, description)
        values ($1, $2)
        returning id
    `, in.Name, in.Description).Scan(&id)
    if err != nil { return model.Merchant{}, fmt.Errorf("postgres: create: %w", err) }
    return model.FromInput(id, in), nil
}

// Update replaces name and description.
func (s *Store) Update(ctx context.Context, id int64, in model.Input) (model.Merchant, error) {
    ct, err := s.pool.Exec(ctx, `
        update merchants
        set name=$1, description=$2
        where id=$3
    `, in.Name, in.Description, id)
    if err != nil { return model.Merchant{}, fmt.Errorf("postgres: update: %w", err) }
    if ct.RowsAffected() == 0 { return model.Merchant{}, errs.NotFound(id) }
    return model.FromInput(id, in), nil
}

// Delete removes a merchant row.
func (s *Store) Delete(ctx context.Context, id int64) error {
    ct, err := s.pool.Exec(ctx, `delete from merchants where id=$1`, id)
    if err != nil { return fmt.Errorf("postgres: delete: %w", err) }
    if ct.RowsAffected() == 0 { return errs.NotFound(id) }
    return nil
}
