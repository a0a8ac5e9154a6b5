package database

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultDBName = "vinted"

// Connect dials MongoDB and pings the primary before handing the client back.
func Connect(mongoURI string) (*mongo.Client, error) {
	// Use longer timeout for Atlas connections
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(mongoURI)
	clientOptions.SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer pingCancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, err
	}

	slog.Info("✅ Connected to MongoDB")
	return client, nil
}

func Disconnect(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return client.Disconnect(ctx)
}

// DatabaseName returns the database named in the URI path, or the default.
// Format: mongodb://host/database_name?options
func DatabaseName(mongoURI string) string {
	rest := mongoURI
	if idx := strings.Index(rest, "://"); idx != -1 {
		rest = rest[idx+3:]
	}
	idx := strings.Index(rest, "/")
	if idx == -1 {
		return defaultDBName
	}
	dbPart := strings.Split(rest[idx+1:], "?")[0]
	if dbPart == "" {
		return defaultDBName
	}
	return dbPart
}

// MaskURI hides the password part of a connection string for logging.
func MaskURI(mongoURI string) string {
	schemeEnd := strings.Index(mongoURI, "://")
	at := strings.LastIndex(mongoURI, "@")
	if schemeEnd == -1 || at == -1 || at < schemeEnd {
		return mongoURI
	}
	creds := mongoURI[schemeEnd+3 : at]
	colon := strings.Index(creds, ":")
	if colon == -1 {
		return mongoURI
	}
	return mongoURI[:schemeEnd+3] + creds[:colon] + ":***" + mongoURI[at:]
}
