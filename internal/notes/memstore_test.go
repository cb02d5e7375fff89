package notes_test

import (
	"context"
	"errors"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"notekeeper/internal/notes"
)

var errStoreDown = errors.New("store unavailable")

// memStore is an in-memory notes.Store for service and handler tests.
type memStore struct {
	mu    sync.Mutex
	notes map[primitive.ObjectID]notes.Note
	order []primitive.ObjectID
	err   error
}

func newMemStore() *memStore {
	return &memStore{notes: make(map[primitive.ObjectID]notes.Note)}
}

func (m *memStore) Insert(_ context.Context, title, content string) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return primitive.NilObjectID, m.err
	}
	id := primitive.NewObjectID()
	m.notes[id] = notes.Note{ID: id, Title: title, Content: content}
	m.order = append(m.order, id)
	return id, nil
}

func (m *memStore) List(_ context.Context) ([]*notes.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*notes.Note, 0, len(m.notes))
	for _, id := range m.order {
		if n, ok := m.notes[id]; ok {
			out = append(out, &n)
		}
	}
	return out, nil
}

func (m *memStore) FindByID(_ context.Context, id primitive.ObjectID) (*notes.Note, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, false, m.err
	}
	n, ok := m.notes[id]
	if !ok {
		return nil, false, nil
	}
	return &n, true, nil
}

func (m *memStore) Update(_ context.Context, id primitive.ObjectID, fields notes.UpdateNoteInput) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	n, ok := m.notes[id]
	if !ok {
		return false, nil
	}
	if fields.Title != nil {
		n.Title = *fields.Title
	}
	if fields.Content != nil {
		n.Content = *fields.Content
	}
	m.notes[id] = n
	return true, nil
}

func (m *memStore) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	if _, ok := m.notes[id]; !ok {
		return false, nil
	}
	delete(m.notes, id)
	return true, nil
}

func strPtr(s string) *string { return &s }
