// Package merchant implements the merchant service rules: validated input,
// full-replace updates, and a uniform NotFound signal across storage backends.
package merchant

import (
    "context"
    "errors"

    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/promauto"

    "github.com/tinoosan/merchants/internal/errs"
    "github.com/tinoosan/merchants/internal/model"
)

// Repo is the read side of a merchant store.
type Repo interface {
    // List returns every merchant ordered by ascending id.
    List(ctx context.Context) ([]model.Merchant, error)
    // Get returns the merchant with id or an error matching errs.ErrNotFound.
    Get(ctx context.Context, id int64) (model.Merchant, error)
}

// Writer is the write side of a merchant store.
type Writer interface {
    Create(ctx context.Context, in model.Input) (model.Merchant, error)
    Update(ctx context.Context, id int64, in model.Input) (model.Merchant, error)
    Delete(ctx context.Context, id int64) error
}

type Service interface {
    Backend() string
    ValidateInput(in model.Input) error
    ValidateID(id int64) error
    List(ctx context.Context) ([]model.Merchant, error)
    Get(ctx context.Context, id int64) (model.Merchant, error)
    Create(ctx context.Context, in model.Input) (model.Merchant, error)
    Update(ctx context.Context, id int64, in model.Input) (model.Merchant, error)
    Delete(ctx context.Context, id int64) error
}

var storeOps = promauto.NewCounterVec(
    prometheus.CounterOpts{
        Namespace: "merchants",
        Name:      "store_operations_total",
        Help:      "Store operations by backend, operation and outcome",
    },
    []string{"backend", "op", "outcome"},
)

type service struct {
    backend string
    repo    Repo
    writer  Writer
}

// New builds a Service over one store. backend labels metrics and logs ("memory", "sqlite", ...).
func New(backend string, repo Repo, writer Writer) Service {
    return &service{backend: backend, repo: repo, writer: writer}
}

func (s *service) Backend() string { return s.backend }

func (s *service) ValidateInput(in model.Input) error { return in.Validate() }

func (s *service) ValidateID(id int64) error { return model.ValidateID(id) }

func (s *service) List(ctx context.Context) ([]model.Merchant, error) {
    out, err := s.repo.List(ctx)
    s.observe("list", err)
    if err != nil { return nil, err }
    if out == nil { out = []model.Merchant{} }
    return out, nil
}

func (s *service) Get(ctx context.Context, id int64) (model.Merchant, error) {
    if err := s.ValidateID(id); err != nil { s.observe("get", err); return model.Merchant{}, err }
    m, err := s.repo.Get(ctx, id)
    s.observe("get", err)
    return m, err
}

func (s *service) Create(ctx context.Context, in model.Input) (model.Merchant, error) {
    if err := s.ValidateInput(in); err != nil { s.observe("create", err); return model.Merchant{}, err }
    m, err := s.writer.Create(ctx, in)
    s.observe("create", err)
    return m, err
}

// Update replaces name and description wholesale; the id is preserved.
func (s *service) Update(ctx context.Context, id int64, in model.Input) (model.Merchant, error) {
    if err := s.ValidateID(id); err != nil { s.observe("update", err); return model.Merchant{}, err }
    if err := s.ValidateInput(in); err != nil { s.observe("update", err); return model.Merchant{}, err }
    m, err := s.writer.Update(ctx, id, in)
    s.observe("update", err)
    return m, err
}

func (s *service) Delete(ctx context.Context, id int64) error {
    if err := s.ValidateID(id); err != nil { s.observe("delete", err); return err }
    err := s.writer.Delete(ctx, id)
    s.observe("delete", err)
    return err
}

func (s *service) observe(op string, err error) {
    storeOps.WithLabelValues(s.backend, op, outcome(err)).Inc()
}

func outcome(err error) string {
    switch {
    case err == nil:
        return "ok"
    case errors.Is(err, errs.ErrNotFound):
        return "not_found"
    case errors.Is(err, errs.ErrUnprocessable), errors.Is(err, errs.ErrInvalid):
        return "invalid"
    default:
        return "error"
    }
}
