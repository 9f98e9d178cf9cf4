package repository

import (
	"context"
	"time"

	"github.com/noah-isme/uni-records/internal/models"
)

// OperationObserver receives the duration of each datastore operation.
type OperationObserver func(operation string, duration time.Duration)

// InstrumentedStore decorates a StudentStore with per-operation timing.
type InstrumentedStore struct {
	store   *StudentStore
	observe OperationObserver
}

// NewInstrumentedStore wraps store; a nil observer disables instrumentation.
func NewInstrumentedStore(store *StudentStore, observe OperationObserver) *InstrumentedStore {
	if observe == nil {
		observe = func(string, time.Duration) {}
	}
	return &InstrumentedStore{store: store, observe: observe}
}

func (s *InstrumentedStore) timed(operation string) func() {
	start := time.Now()
	return func() { s.observe(operation, time.Since(start)) }
}

func (s *InstrumentedStore) List(ctx context.Context) ([]models.Student, error) {
	defer s.timed("list")()
	return s.store.List(ctx)
}

func (s *InstrumentedStore) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	defer s.timed("find_by_email")()
	return s.store.FindByEmail(ctx, email)
}

func (s *InstrumentedStore) FindByID(ctx context.Context, id string) (*models.Student, error) {
	defer s.timed("find_by_id")()
	return s.store.FindByID(ctx, id)
}

func (s *InstrumentedStore) Create(ctx context.Context, student *models.Student) error {
	defer s.timed("create")()
	return s.store.Create(ctx, student)
}

func (s *InstrumentedStore) Update(ctx context.Context, student *models.Student) error {
	defer s.timed("update")()
	return s.store.Update(ctx, student)
}

func (s *InstrumentedStore) Delete(ctx context.Context, id string) error {
	defer s.timed("delete")()
	return s.store.Delete(ctx, id)
}

func (s *InstrumentedStore) Clear(ctx context.Context) error {
	defer s.timed("clear")()
	return s.store.Clear(ctx)
}
