package notes

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Observer records the duration and outcome of a store call.
type Observer interface {
	ObserveStoreOp(op string, elapsed time.Duration, err error)
}

type instrumentedStore struct {
	next Store
	obs  Observer
}

// Instrument wraps s so that every call is reported to obs.
func Instrument(s Store, obs Observer) Store {
	return &instrumentedStore{next: s, obs: obs}
}

func (s *instrumentedStore) Insert(ctx context.Context, title, content string) (primitive.ObjectID, error) {
	start := time.Now()
	id, err := s.next.Insert(ctx, title, content)
	s.obs.ObserveStoreOp("insert", time.Since(start), err)
	return id, err
}

func (s *instrumentedStore) List(ctx context.Context) ([]*Note, error) {
	start := time.Now()
	notes, err := s.next.List(ctx)
	s.obs.ObserveStoreOp("list", time.Since(start), err)
	return notes, err
}

func (s *instrumentedStore) FindByID(ctx context.Context, id primitive.ObjectID) (*Note, bool, error) {
	start := time.Now()
	note, ok, err := s.next.FindByID(ctx, id)
	s.obs.ObserveStoreOp("find", time.Since(start), err)
	return note, ok, err
}

func (s *instrumentedStore) Update(ctx context.Context, id primitive.ObjectID, fields UpdateNoteInput) (bool, error) {
	start := time.Now()
	matched, err := s.next.Update(ctx, id, fields)
	s.obs.ObserveStoreOp("update", time.Since(start), err)
	return matched, err
}

func (s *instrumentedStore) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	start := time.Now()
	deleted, err := s.next.Delete(ctx, id)
	s.obs.ObserveStoreOp("delete", time.Since(start), err)
	return deleted, err
}
