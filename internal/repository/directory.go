package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"sarvekshan/internal/model"
)

// SchoolDirectory resolves UDISE codes against the school registry.
// Implementations may be unreachable in the field; callers degrade to the
// local school cache when Resolve returns an error.
type SchoolDirectory interface {
	// Resolve returns the school for the code, or (nil, nil) when no school
	// with that code exists.
	Resolve(ctx context.Context, udise string) (*model.School, error)
}

type mongoDirectory struct {
	collection *mongo.Collection
}

// NewSchoolDirectory creates a MongoDB-backed school directory
func NewSchoolDirectory(db *mongo.Database) SchoolDirectory {
	return &mongoDirectory{
		collection: db.Collection("schools"),
	}
}

func (d *mongoDirectory) Resolve(ctx context.Context, udise string) (*model.School, error) {
	var school model.School
	err := d.collection.FindOne(ctx, bson.M{"udiseCode": udise}).Decode(&school)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &school, nil
}
