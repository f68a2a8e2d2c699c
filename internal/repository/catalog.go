package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"sarvekshan/internal/model"
)

// SurveyCatalog provides the questionnaire definitions assigned to this device
type SurveyCatalog interface {
	// GetByID returns the survey, or (nil, nil) when unknown.
	GetByID(ctx context.Context, id string) (*model.Survey, error)
	List(ctx context.Context) ([]*model.Survey, error)
}

type mongoCatalog struct {
	collection *mongo.Collection
}

// NewSurveyCatalog creates a MongoDB-backed survey catalog
func NewSurveyCatalog(db *mongo.Database) SurveyCatalog {
	return &mongoCatalog{
		collection: db.Collection("surveys"),
	}
}

func (c *mongoCatalog) GetByID(ctx context.Context, id string) (*model.Survey, error) {
	var survey model.Survey
	err := c.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&survey)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &survey, nil
}

func (c *mongoCatalog) List(ctx context.Context) ([]*model.Survey, error) {
	cursor, err := c.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var surveys []*model.Survey
	if err := cursor.All(ctx, &surveys); err != nil {
		return nil, err
	}
	return surveys, nil
}
