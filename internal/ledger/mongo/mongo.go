// Package mongo provides the remote-table backend: transactions, goals and
// preferences live in MongoDB collections and the server keeps no durable
// local copy.
package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ledgerlite/internal/core"
	"ledgerlite/internal/ledger"
)

type Store struct {
	client       *mongo.Client
	transactions *mongo.Collection
	goals        *mongo.Collection
	preferences  *mongo.Collection
}

var _ ledger.Store = (*Store)(nil)

type transactionDoc struct {
	ID          string    `bson:"_id"`
	Description string    `bson:"description"`
	AmountCents int64     `bson:"amount_cents"`
	Category    string    `bson:"category"`
	Date        time.Time `bson:"date"`
	Type        string    `bson:"type"`
	CreatedAt   time.Time `bson:"created_at"`
}

type goalDoc struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	TargetCents int64     `bson:"target_cents"`
	CreatedAt   time.Time `bson:"created_at"`
}

type preferenceDoc struct {
	Key   string `bson:"_id"`
	Value string `bson:"value"`
}

func New(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}

	db := client.Database(dbName)
	return &Store{
		client:       client,
		transactions: db.Collection("transactions"),
		goals:        db.Collection("saving_goals"),
		preferences:  db.Collection("preferences"),
	}, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})
	cursor, err := s.transactions.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var out []core.Transaction
	for cursor.Next(ctx) {
		var doc transactionDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode transaction: %w", err)
		}
		out = append(out, core.Transaction{
			ID:          doc.ID,
			Description: doc.Description,
			Amount:      core.Money{Cents: doc.AmountCents},
			Category:    core.Category(doc.Category),
			Date:        doc.Date,
			Type:        core.TransactionType(doc.Type),
			CreatedAt:   doc.CreatedAt,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

func (s *Store) InsertTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	t.ID = uuid.NewString()
	t.CreatedAt = time.Now().UTC()

	doc := transactionDoc{
		ID:          t.ID,
		Description: t.Description,
		AmountCents: t.Amount.Cents,
		Category:    string(t.Category),
		Date:        t.Date.UTC(),
		Type:        string(t.Type),
		CreatedAt:   t.CreatedAt,
	}
	if _, err := s.transactions.InsertOne(ctx, doc); err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	return t, nil
}

func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	// DeleteOne on an absent id simply matches zero documents
	if _, err := s.transactions.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

func (s *Store) ListGoals(ctx context.Context) ([]core.SavingGoal, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := s.goals.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer cursor.Close(ctx)

	var out []core.SavingGoal
	for cursor.Next(ctx) {
		var doc goalDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode goal: %w", err)
		}
		out = append(out, core.SavingGoal{
			ID:        doc.ID,
			Name:      doc.Name,
			Target:    core.Money{Cents: doc.TargetCents},
			CreatedAt: doc.CreatedAt,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate goals: %w", err)
	}
	return out, nil
}

func (s *Store) InsertGoal(ctx context.Context, g core.SavingGoal) (core.SavingGoal, error) {
	if err := g.Validate(); err != nil {
		return core.SavingGoal{}, err
	}
	g.ID = uuid.NewString()
	g.CreatedAt = time.Now().UTC()

	doc := goalDoc{ID: g.ID, Name: g.Name, TargetCents: g.Target.Cents, CreatedAt: g.CreatedAt}
	if _, err := s.goals.InsertOne(ctx, doc); err != nil {
		return core.SavingGoal{}, fmt.Errorf("insert goal: %w", err)
	}
	return g, nil
}

func (s *Store) DeleteGoal(ctx context.Context, id string) error {
	if _, err := s.goals.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return nil
}

func (s *Store) GetPreference(ctx context.Context, key string) (string, error) {
	var doc preferenceDoc
	err := s.preferences.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get preference: %w", err)
	}
	return doc.Value, nil
}

func (s *Store) SetPreference(ctx context.Context, key, value string) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := s.preferences.ReplaceOne(ctx, bson.M{"_id": key}, preferenceDoc{Key: key, Value: value}, opts); err != nil {
		return fmt.Errorf("set preference: %w", err)
	}
	return nil
}
