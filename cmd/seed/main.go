package main

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"sarvekshan/internal/repository"
)

// Seeds the demo survey catalog and school directory into MongoDB so a
// backend-connected engine serves the same data as the self-contained one.
func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "sarvekshan"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(dbName)

	surveyColl := db.Collection("surveys")
	for _, survey := range repository.DemoSurveys() {
		_, err := surveyColl.ReplaceOne(ctx,
			bson.M{"_id": survey.ID},
			survey,
			options.Replace().SetUpsert(true),
		)
		if err != nil {
			log.Fatalf("Failed to seed survey %s: %v", survey.ID, err)
		}
		log.Printf("Seeded survey %s (%s)", survey.ID, survey.Name)
	}

	schoolColl := db.Collection("schools")
	for _, school := range repository.DemoSchools() {
		_, err := schoolColl.ReplaceOne(ctx,
			bson.M{"udiseCode": school.UDISECode},
			school,
			options.Replace().SetUpsert(true),
		)
		if err != nil {
			log.Fatalf("Failed to seed school %s: %v", school.UDISECode, err)
		}
		log.Printf("Seeded school %s (%s)", school.UDISECode, school.Name)
	}

	log.Println("Seeding complete")
}
