package memory

// Package memory provides the volatile merchant store. Data lives only as long
// as the process and is lost on restart.
import (
    "context"
    "sort"
    "sync"

    "github.com/tinoosan/merchants/internal/errs"
    "github.com/tinoosan/merchants/internal/model"
)

// Store is an in-memory merchant store.
// It is guarded by an RWMutex: mutations hold the write lock for the whole
// read-modify-write, reads take the read lock and return copies.
type Store struct {
    mu     sync.RWMutex
    byID   map[int64]model.Merchant
    // ids is kept sorted ascending; since ids only grow it is also insertion order.
    ids    []int64
    nextID int64
}

// New constructs an empty in-memory store. The first id handed out is model.MinID.
func New() *Store {
    return &Store{
        byID:   make(map[int64]model.Merchant),
        nextID: model.MinID,
    }
}

// Seed helpers for local dev/tests.
func (s *Store) Seed(in model.Input) model.Merchant { m, _ := s.Create(context.Background(), in); return m }
func (s *Store) Len() int                            { s.mu.RLock(); defer s.mu.RUnlock(); return len(s.byID) }

// Reset drops every record. The id counter is kept so ids are never reused.
func (s *Store) Reset() {
    s.mu.Lock()
    s.byID = map[int64]model.Merchant{}
    s.ids = nil
    s.mu.Unlock()
}

// List returns a snapshot of all merchants in ascending id order.
func (s *Store) List(_ context.Context) ([]model.Merchant, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    out := make([]model.Merchant, 0, len(s.ids))
    for _, id := range s.ids {
        out = append(out, s.byID[id].Clone())
    }
    return out, nil
}

// Get returns a merchant by id.
func (s *Store) Get(_ context.Context, id int64) (model.Merchant, error) {
    s.mu.RLock(); defer s.mu.RUnlock()
    m, ok := s.byID[id]
    if !ok { return model.Merchant{}, errs.NotFound(id) }
    return m.Clone(), nil
}

// Create assigns the next id and stores the merchant.
func (s *Store) Create(_ context.Context, in model.Input) (model.Merchant, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    m := model.FromInput(s.nextID, in)
    s.byID[m.ID] = m
    s.ids = append(s.ids, m.ID)
    s.nextID++
    return m.Clone(), nil
}

// Update replaces name and description of an existing merchant.
func (s *Store) Update(_ context.Context, id int64, in model.Input) (model.Merchant, error) {
    s.mu.Lock(); defer s.mu.Unlock()
    if _, ok := s.byID[id]; !ok { return model.Merchant{}, errs.NotFound(id) }
    m := model.FromInput(id, in)
    s.byID[id] = m
    return m.Clone(), nil
}

// Delete removes a merchant. Its id is never handed out again.
func (s *Store) Delete(_ context.Context, id int64) error {
    s.mu.Lock(); defer s.mu.Unlock()
    if _, ok := s.byID[id]; !ok { return errs.NotFound(id) }
    delete(s.byID, id)
    s.removeIndexLocked(id)
    return nil
}

// removeIndexLocked drops id from the sorted index. Caller must hold s.mu (write lock).
func (s *Store) removeIndexLocked(id int64) {
    i := sort.Search(len(s.ids), func(i int) bool { return s.ids[i] >= id })
    if i == len(s.ids) || s.ids[i] != id { return }
    s.ids = append(s.ids[:i], s.ids[i+1:]...)
}
