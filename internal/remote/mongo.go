package remote

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collTransactions = "transactions"
	collRecurring    = "recurring_transactions"
	collUserData     = "user_data"
)

// Mongo implements Client over a MongoDB database with one collection per
// logical table. Replace operations are delete-then-insert scoped to the
// user id; user_data uses a true upsert.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongo(ctx context.Context, uri, database string) (*Mongo, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &Mongo{client: client, db: client.Database(database)}, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *Mongo) ReplaceTransactions(ctx context.Context, userID string, rows []TransactionRow) error {
	docs := make([]interface{}, len(rows))
	for i, r := range rows {
		r.UserID = userID
		docs[i] = r
	}
	return m.replace(ctx, collTransactions, userID, docs)
}

func (m *Mongo) ReplaceRecurring(ctx context.Context, userID string, rows []RecurringRow) error {
	docs := make([]interface{}, len(rows))
	for i, r := range rows {
		r.UserID = userID
		docs[i] = r
	}
	return m.replace(ctx, collRecurring, userID, docs)
}

// replace clears the user's rows and inserts the new set. Not transactional:
// the remote holds whole-collection snapshots and the last writer wins.
func (m *Mongo) replace(ctx context.Context, collection, userID string, docs []interface{}) error {
	coll := m.db.Collection(collection)
	if _, err := coll.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("clear %s for %s: %w", collection, userID, err)
	}
	if len(docs) == 0 {
		return nil
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert %s for %s: %w", collection, userID, err)
	}
	return nil
}

func (m *Mongo) UpsertUserData(ctx context.Context, data UserData) error {
	coll := m.db.Collection(collUserData)
	update := bson.M{"$set": bson.M{
		"bank_balance": data.BankBalance,
		"debt_balance": data.DebtBalance,
	}}
	opts := options.Update().SetUpsert(true)
	if _, err := coll.UpdateOne(ctx, bson.M{"_id": data.UserID}, update, opts); err != nil {
		return fmt.Errorf("upsert user_data for %s: %w", data.UserID, err)
	}
	return nil
}

func (m *Mongo) Transactions(ctx context.Context, userID string) ([]TransactionRow, error) {
	cursor, err := m.db.Collection(collTransactions).Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("find transactions for %s: %w", userID, err)
	}
	var rows []TransactionRow
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode transactions for %s: %w", userID, err)
	}
	return rows, nil
}

func (m *Mongo) Recurring(ctx context.Context, userID string) ([]RecurringRow, error) {
	cursor, err := m.db.Collection(collRecurring).Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("find recurring for %s: %w", userID, err)
	}
	var rows []RecurringRow
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode recurring for %s: %w", userID, err)
	}
	return rows, nil
}

func (m *Mongo) GetUserData(ctx context.Context, userID string) (UserData, bool, error) {
	var data UserData
	err := m.db.Collection(collUserData).FindOne(ctx, bson.M{"_id": userID}).Decode(&data)
	if err == mongo.ErrNoDocuments {
		return UserData{}, false, nil
	}
	if err != nil {
		return UserData{}, false, fmt.Errorf("get user_data for %s: %w", userID, err)
	}
	return data, true, nil
}
