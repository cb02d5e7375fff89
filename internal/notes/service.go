package notes

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/yuin/goldmark"
)

var (
	ErrNoteNotFound  = errors.New("note not found")
	ErrMissingFields = errors.New("missing title or content")
	ErrEmptyUpdate   = errors.New("no data provided for update")
)

type Service struct {
	store    Store
	validate *validator.Validate
	md       goldmark.Markdown
}

func NewService(store Store) *Service {
	return &Service{
		store:    store,
		validate: validator.New(),
		md:       goldmark.New(),
	}
}

// Create validates input and stores a new note.
func (s *Service) Create(ctx context.Context, input CreateNoteInput) (*Note, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingFields, err)
	}

	id, err := s.store.Insert(ctx, *input.Title, *input.Content)
	if err != nil {
		return nil, err
	}

	return &Note{ID: id, Title: *input.Title, Content: *input.Content}, nil
}

// List returns every stored note.
func (s *Service) List(ctx context.Context) ([]*Note, error) {
	return s.store.List(ctx)
}

// GetByID retrieves a note by its external ID.
func (s *Service) GetByID(ctx context.Context, id string) (*Note, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	note, ok, err := s.store.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoteNotFound
	}
	return note, nil
}

// Update merges the supplied fields into an existing note.
func (s *Service) Update(ctx context.Context, id string, input UpdateNoteInput) error {
	if input.Empty() {
		return ErrEmptyUpdate
	}

	oid, err := ParseID(id)
	if err != nil {
		return err
	}

	matched, err := s.store.Update(ctx, oid, input)
	if err != nil {
		return err
	}
	if !matched {
		return ErrNoteNotFound
	}
	return nil
}

// Delete removes a note by its external ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}

	deleted, err := s.store.Delete(ctx, oid)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNoteNotFound
	}
	return nil
}

// RenderHTML returns the note's content converted from markdown to HTML.
func (s *Service) RenderHTML(ctx context.Context, id string) (string, error) {
	note, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := s.md.Convert([]byte(note.Content), &buf); err != nil {
		return "", fmt.Errorf("render note %s: %w", FormatID(note.ID), err)
	}
	return buf.String(), nil
}
