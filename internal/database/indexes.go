package database

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	UsersCollection  = "users"
	OffersCollection = "offers"
)

// EnsureUserIndexes makes email and token unique across users.
func EnsureUserIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := db.Collection(UsersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("email_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetName("token_unique").SetUnique(true),
		},
	})
	if err != nil {
		slog.Error("EnsureUserIndexes failed", "error", err)
		return err
	}
	slog.Info("EnsureUserIndexes: email_unique, token_unique ensured")
	return nil
}

func EnsureOfferIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := db.Collection(OffersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "owner", Value: 1}},
			Options: options.Index().SetName("owner_index"),
		},
		{
			Keys:    bson.D{{Key: "product_price", Value: 1}},
			Options: options.Index().SetName("product_price_index"),
		},
	})
	if err != nil {
		slog.Error("EnsureOfferIndexes failed", "error", err)
		return err
	}
	slog.Info("EnsureOfferIndexes: owner_index, product_price_index ensured")
	return nil
}
