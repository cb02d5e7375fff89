package notes

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Note is a stored title/content pair.
type Note struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title   string             `bson:"title" json:"title"`
	Content string             `bson:"content" json:"content"`
}

// CreateNoteInput is the payload for creating a note. Both fields must be
// present; an empty string counts as present.
type CreateNoteInput struct {
	Title   *string `json:"title" validate:"required"`
	Content *string `json:"content" validate:"required"`
}

// UpdateNoteInput carries the fields to overwrite. Nil fields are left as
// they are.
type UpdateNoteInput struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// Empty reports whether the update carries no fields at all.
func (u UpdateNoteInput) Empty() bool {
	return u.Title == nil && u.Content == nil
}
