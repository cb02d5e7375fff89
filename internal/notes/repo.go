package notes

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is the persistence contract the service relies on. Absence is
// reported through the boolean results, never as an error.
type Store interface {
	Insert(ctx context.Context, title, content string) (primitive.ObjectID, error)
	List(ctx context.Context) ([]*Note, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*Note, bool, error)
	Update(ctx context.Context, id primitive.ObjectID, fields UpdateNoteInput) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// Repo is the MongoDB implementation of Store.
type Repo struct {
	coll *mongo.Collection
}

func NewRepo(coll *mongo.Collection) *Repo {
	return &Repo{coll: coll}
}

// Insert stores a new note and returns its freshly assigned ID.
func (r *Repo) Insert(ctx context.Context, title, content string) (primitive.ObjectID, error) {
	n := Note{
		ID:      primitive.NewObjectID(),
		Title:   title,
		Content: content,
	}

	if _, err := r.coll.InsertOne(ctx, n); err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert note: %w", err)
	}
	return n.ID, nil
}

// List returns every note in the collection in natural order.
func (r *Repo) List(ctx context.Context) ([]*Note, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer cursor.Close(ctx)

	notes := make([]*Note, 0)
	if err := cursor.All(ctx, &notes); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}
	return notes, nil
}

// FindByID retrieves a note by its ID. The bool is false when no such note
// exists.
func (r *Repo) FindByID(ctx context.Context, id primitive.ObjectID) (*Note, bool, error) {
	var note Note
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&note)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("find note %s: %w", id.Hex(), err)
	}
	return &note, true, nil
}

// Update overwrites the non-nil fields of a note and reports whether the note
// exists. With no fields it only checks existence.
func (r *Repo) Update(ctx context.Context, id primitive.ObjectID, fields UpdateNoteInput) (bool, error) {
	filter := bson.D{{Key: "_id", Value: id}}

	set := bson.D{}
	if fields.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *fields.Title})
	}
	if fields.Content != nil {
		set = append(set, bson.E{Key: "content", Value: *fields.Content})
	}

	if len(set) == 0 {
		n, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
		if err != nil {
			return false, fmt.Errorf("count note %s: %w", id.Hex(), err)
		}
		return n > 0, nil
	}

	result, err := r.coll.UpdateOne(ctx, filter, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return false, fmt.Errorf("update note %s: %w", id.Hex(), err)
	}
	return result.MatchedCount > 0, nil
}

// Delete removes a note by ID and reports whether it existed.
func (r *Repo) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return false, fmt.Errorf("delete note %s: %w", id.Hex(), err)
	}
	return result.DeletedCount > 0, nil
}
