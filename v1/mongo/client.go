package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/hdbmap/geoquery/v1/recordsource"
)

// Logger is the logging surface used by the client.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// MongoClient owns a driver client bound to one database.
type MongoClient struct {
	client *mongo.Client
	db     *mongo.Database
	cfg    Config
	logger Logger
}

// NewMongoClient connects to MongoDB and verifies the connection with a ping
// to the primary. A failed ping disconnects and returns
// recordsource.ErrStorageUnavailable.
func NewMongoClient(cfg Config, log Logger) (*MongoClient, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongo: empty connection URI")
	}
	if cfg.Database == "" {
		return nil, errors.New("mongo: empty database name")
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(cfg.AppName)
	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout)
	}
	if cfg.ServerSelectionTimeout > 0 {
		opts.SetServerSelectionTimeout(cfg.ServerSelectionTimeout)
	}
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = DefaultConfig().ConnectTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}

	c := &MongoClient{
		client: client,
		db:     client.Database(cfg.Database),
		cfg:    cfg,
		logger: log,
	}

	if err := c.HealthCheck(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	log.Info("Connected to MongoDB", nil, map[string]interface{}{
		"database": cfg.Database,
	})
	return c, nil
}

// Database returns the configured database handle.
func (c *MongoClient) Database() *mongo.Database {
	return c.db
}

// HealthCheck pings the primary.
func (c *MongoClient) HealthCheck(ctx context.Context) error {
	if c.cfg.HealthCheckTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.HealthCheckTimeout)
		defer cancel()
	}
	if err := c.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("%w: mongo ping: %v", recordsource.ErrStorageUnavailable, err)
	}
	return nil
}

// Close disconnects the client.
func (c *MongoClient) Close(ctx context.Context) error {
	if err := c.client.Disconnect(ctx); err != nil && !errors.Is(err, mongo.ErrClientDisconnected) {
		c.logger.Error("Failed to disconnect from MongoDB", err, nil)
		return err
	}
	c.logger.Info("Disconnected from MongoDB", nil, nil)
	return nil
}
