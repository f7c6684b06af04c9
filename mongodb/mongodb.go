// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package mongodb implements the durable task store on MongoDB.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/planteuf/planteuf/logger"
	"github.com/planteuf/planteuf/task"
)

// CollectionTask is the collection holding task documents.
const CollectionTask = "task"

// serverSelectionTimeout bounds how long Open waits for a reachable server.
const serverSelectionTimeout = 5 * time.Second

// ErrUnavailable indicates that MongoDB could not be reached.
var ErrUnavailable = errors.New("mongodb unavailable")

// Store is a [task.Store] backed by a MongoDB database.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Open connects to MongoDB at uri and verifies the connection with a ping.
func Open(ctx context.Context, uri, database string) (*Store, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(serverSelectionTimeout)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	logger.Info(ctx, "connected to MongoDB")
	return &Store{
		client: client,
		db:     client.Database(database),
	}, nil
}

// Close disconnects from MongoDB.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) tasks() *mongo.Collection {
	return s.db.Collection(CollectionTask)
}

// Insert implements the [task.Store] interface.
func (s *Store) Insert(ctx context.Context, t *task.Task) error {
	now := time.Now()
	t.CreatedAt, t.UpdatedAt = now, now
	if _, err := s.tasks().InsertOne(ctx, t); err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// taskUpdate is the $set document written by Update. The immutable _id stays
// out of it.
type taskUpdate struct {
	Event     task.Event     `bson:"event"`
	Status    task.Status    `bson:"status"`
	Data      map[string]any `bson:"data"`
	Author    string         `bson:"author"`
	History   []task.Status  `bson:"history"`
	Log       []string       `bson:"log"`
	CreatedAt time.Time      `bson:"created_at"`
	UpdatedAt time.Time      `bson:"updated_at"`
}

// Update implements the [task.Store] interface.
func (s *Store) Update(ctx context.Context, t *task.Task) error {
	t.UpdatedAt = time.Now()
	res, err := s.tasks().UpdateOne(ctx,
		bson.D{{Key: "_id", Value: t.ID}},
		bson.D{{Key: "$set", Value: taskUpdate{
			Event:     t.Event,
			Status:    t.Status,
			Data:      t.Data,
			Author:    t.Author,
			History:   t.History,
			Log:       t.Log,
			CreatedAt: t.CreatedAt,
			UpdatedAt: t.UpdatedAt,
		}}})
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if res.MatchedCount == 0 {
		return task.ErrNotFound
	}
	return nil
}

// Get implements the [task.Store] interface.
func (s *Store) Get(ctx context.Context, id string) (*task.Task, error) {
	var t task.Task
	err := s.tasks().FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, task.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find task: %w", err)
	}
	return &t, nil
}

// Active implements the [task.Store] interface.
func (s *Store) Active(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetProjection(bson.D{{Key: "_id", Value: 1}})
	filter := bson.D{{Key: "status", Value: bson.D{{
		Key: "$nin", Value: bson.A{task.StatusCompleted, task.StatusFailed},
	}}}}
	cur, err := s.tasks().Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find active tasks: %w", err)
	}
	defer cur.Close(ctx)

	var ids []string
	for cur.Next(ctx) {
		var doc struct {
			ID string `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode active task: %w", err)
		}
		ids = append(ids, doc.ID)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate active tasks: %w", err)
	}
	return ids, nil
}
