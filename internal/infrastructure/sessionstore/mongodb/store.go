// Package mongodb provides the MongoDB session store implementation.
package mongodb

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainerrors "github.com/supporthub/chat-routing-service/internal/domain/errors"
	"github.com/supporthub/chat-routing-service/internal/domain/models"
)

// SessionsCollection is the name of the chat sessions collection.
const SessionsCollection = "chat_sessions"

// Config holds MongoDB connection configuration.
type Config struct {
	URI          string
	DatabaseName string
}

// Store implements sessionstore.Store backed by MongoDB. The session id is
// used as the document _id, so duplicate inserts fail on the unique index.
type Store struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewStore creates a new MongoDB session store and verifies the connection.
func NewStore(ctx context.Context, cfg *Config) (*Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.URI == "" {
		return nil, fmt.Errorf("mongodb URI is required")
	}
	if cfg.DatabaseName == "" {
		return nil, fmt.Errorf("database name is required")
	}

	clientOpts := options.Client().ApplyURI(cfg.URI)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	collection := client.Database(cfg.DatabaseName).Collection(SessionsCollection)

	return &Store{
		client:     client,
		collection: collection,
	}, nil
}

// Add inserts a new session, failing when the id is already present.
func (s *Store) Add(ctx context.Context, session *models.ChatSession) error {
	_, err := s.collection.InsertOne(ctx, session)
	if mongo.IsDuplicateKeyError(err) {
		return domainerrors.ErrSessionExists
	}
	if err != nil {
		return fmt.Errorf("failed to insert session %s: %w", session.ID, err)
	}
	return nil
}

// Get fetches a session by id. Returns (nil, nil) when absent.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*models.ChatSession, error) {
	var session models.ChatSession
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find session %s: %w", id, err)
	}
	return &session, nil
}

// Update upserts a session by id.
func (s *Store) Update(ctx context.Context, session *models.ChatSession) error {
	opts := options.Replace().SetUpsert(true)
	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": session.ID}, session, opts)
	if err != nil {
		return fmt.Errorf("failed to update session %s: %w", session.ID, err)
	}
	return nil
}

// GetAll returns a snapshot of all sessions.
func (s *Store) GetAll(ctx context.Context) ([]*models.ChatSession, error) {
	cursor, err := s.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var sessions []*models.ChatSession
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("failed to decode sessions: %w", err)
	}
	return sessions, nil
}

// Ping verifies the connection to MongoDB.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("mongodb ping failed: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (s *Store) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from mongodb: %w", err)
	}
	return nil
}
