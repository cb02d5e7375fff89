package notes

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrInvalidID is returned when an external identifier is not a well-formed
// ObjectID. It is never returned for identifiers that are merely absent.
var ErrInvalidID = errors.New("invalid note ID format")

// ParseID decodes a 24-character hex identifier. It only checks the format and
// never consults the database.
func ParseID(s string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return oid, nil
}

// FormatID encodes id as the lowercase hex string clients use.
func FormatID(id primitive.ObjectID) string {
	return id.Hex()
}
