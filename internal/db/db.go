package db

import (
	"context"
	"time"

	"github.com/deliverease/apiserver/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	defaultPingTimeout    = 5 * time.Second
	defaultConnectTimeout = 10 * time.Second
	defaultOpTimeout      = 15 * time.Second
)

// Open connects to the configured MongoDB deployment and verifies it is
// reachable. The returned database handle is safe for concurrent use.
func Open(ctx context.Context, cfg config.Config) (*mongo.Client, *mongo.Database, error) {
	opts := options.Client().
		ApplyURI(cfg.Database.URI).
		SetConnectTimeout(defaultConnectTimeout).
		SetTimeout(defaultOpTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}

	return client, client.Database(cfg.Database.Name), nil
}

// EnsureIndexes creates the indexes the application relies on. The only
// schema-like state in the store is the unique email index on Users.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	_, err := database.Collection("Users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
