package app

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"task-api/internal/config"
)

var (
	globalMongoClient   *mongo.Client
	globalMongoDatabase *mongo.Database
)

func MustConnectMongo() {
	cfg := config.Global().Mongo

	clientOpts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ConnectTimeout)

	client, err := mongo.Connect(context.Background(), clientOpts)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to connect to mongo")
		panic(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.PingTimeout)
	defer cancel()

	err = client.Ping(ctx, readpref.Primary())
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to ping mongo")
		panic(err)
	}

	globalMongoClient = client
	globalMongoDatabase = client.Database(cfg.Database)
	globalLogger.Info().
		Str("database", cfg.Database).
		Msg("connected to mongo")
}

func DisconnectMongo() {
	err := globalMongoClient.Disconnect(context.Background())
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to disconnect from mongo")
		return
	}
	globalLogger.Info().Msg("disconnected from mongo")
}
