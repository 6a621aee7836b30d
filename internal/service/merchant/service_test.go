package merchant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinoosan/merchants/internal/errs"
	"github.com/tinoosan/merchants/internal/model"
)

// recordingStore counts calls and returns canned results.
type recordingStore struct {
	calls int
	err   error
	items []model.Merchant
}

func (r *recordingStore) List(context.Context) ([]model.Merchant, error) {
	r.calls++
	return r.items, r.err
}

func (r *recordingStore) Get(_ context.Context, id int64) (model.Merchant, error) {
	r.calls++
	if r.err != nil {
		return model.Merchant{}, r.err
	}
	return model.Merchant{ID: id, Name: "stub"}, nil
}

func (r *recordingStore) Create(_ context.Context, in model.Input) (model.Merchant, error) {
	r.calls++
	if r.err != nil {
		return model.Merchant{}, r.err
	}
	return model.FromInput(1, in), nil
}

func (r *recordingStore) Update(_ context.Context, id int64, in model.Input) (model.Merchant, error) {
	r.calls++
	if r.err != nil {
		return model.Merchant{}, r.err
	}
	return model.FromInput(id, in), nil
}

func (r *recordingStore) Delete(context.Context, int64) error {
	r.calls++
	return r.err
}

func TestService_InvalidInputNeverReachesStore(t *testing.T) {
	st := &recordingStore{}
	svc := New("test-invalid", st, st)
	ctx := context.Background()
	invalid := func(op string) float64 {
		return testutil.ToFloat64(storeOps.WithLabelValues("test-invalid", op, "invalid"))
	}
	before := map[string]float64{}
	for _, op := range []string{"create", "update", "get", "delete"} {
		before[op] = invalid(op)
	}

	_, err := svc.Create(ctx, model.Input{Name: strings.Repeat("x", model.MaxNameLen+1)})
	assert.ErrorIs(t, err, errs.ErrUnprocessable)
	_, err = svc.Update(ctx, 1, model.Input{Name: ""})
	assert.ErrorIs(t, err, errs.ErrUnprocessable)
	_, err = svc.Get(ctx, 0)
	assert.ErrorIs(t, err, errs.ErrUnprocessable)
	_, err = svc.Update(ctx, 0, model.Input{Name: "ok"})
	assert.ErrorIs(t, err, errs.ErrUnprocessable)
	assert.ErrorIs(t, svc.Delete(ctx, -1), errs.ErrUnprocessable)

	assert.Equal(t, 0, st.calls)
	assert.Equal(t, float64(1), invalid("create")-before["create"])
	assert.Equal(t, float64(2), invalid("update")-before["update"])
	assert.Equal(t, float64(1), invalid("get")-before["get"])
	assert.Equal(t, float64(1), invalid("delete")-before["delete"])
}

func TestService_ListNeverNil(t *testing.T) {
	st := &recordingStore{}
	svc := New("test-list", st, st)
	out, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Len(t, out, 0)
}

func TestService_OutcomesAreCounted(t *testing.T) {
	ctx := context.Background()

	count := func(op, outcome string) float64 {
		return testutil.ToFloat64(storeOps.WithLabelValues("test-outcomes", op, outcome))
	}
	notFound, failed, ok := count("get", "not_found"), count("delete", "error"), count("update", "ok")

	st := &recordingStore{err: errs.NotFound(9)}
	svc := New("test-outcomes", st, st)
	_, err := svc.Get(ctx, 9)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.Equal(t, float64(1), count("get", "not_found")-notFound)

	fault := errors.New("disk on fire")
	st.err = fault
	assert.ErrorIs(t, svc.Delete(ctx, 9), fault)
	assert.Equal(t, float64(1), count("delete", "error")-failed)

	st.err = nil
	m, err := svc.Update(ctx, 9, model.Input{Name: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, int64(9), m.ID)
	assert.Equal(t, float64(1), count("update", "ok")-ok)
	assert.Equal(t, "test-outcomes", svc.Backend())
}
