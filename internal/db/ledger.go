package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/babylonchain/staking-ledger-service/internal/db/model"
	"github.com/babylonchain/staking-ledger-service/internal/ledger"
)

func (db *Database) LoadConfig(ctx context.Context) (*ledger.Config, error) {
	var doc model.ConfigDocument
	found, err := db.findById(ctx, model.LedgerCollection, model.ConfigDocumentId, &doc)
	if err != nil || !found {
		return nil, err
	}
	return doc.ToConfig()
}

func (db *Database) LoadState(ctx context.Context) (*ledger.GlobalState, error) {
	var doc model.StateDocument
	found, err := db.findById(ctx, model.LedgerCollection, model.StateDocumentId, &doc)
	if err != nil || !found {
		return nil, err
	}
	return doc.ToState()
}

func (db *Database) LoadUser(ctx context.Context, addr ledger.Addr) (*ledger.UserEntry, error) {
	var doc model.StakerDocument
	found, err := db.findById(ctx, model.StakerCollection, addr.String(), &doc)
	if err != nil || !found {
		return nil, err
	}
	return doc.ToUserEntry()
}

func (db *Database) LoadUnbond(ctx context.Context, addr ledger.Addr) (*ledger.UnbondEntry, error) {
	var doc model.UnbondDocument
	found, err := db.findById(ctx, model.UnbondCollection, addr.String(), &doc)
	if err != nil || !found {
		return nil, err
	}
	return doc.ToUnbondEntry()
}

// Commit writes the whole batch inside one transaction.
func (db *Database) Commit(ctx context.Context, batch *ledger.Batch) error {
	if batch == nil || batch.IsEmpty() {
		return nil
	}
	transactionWork := func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, db.writeBatch(sessCtx, batch)
	}
	_, err := TxWithRetries(ctx, db.txClient(), transactionWork)
	return err
}

func (db *Database) writeBatch(ctx context.Context, batch *ledger.Batch) error {
	if batch.Config != nil {
		doc := model.NewConfigDocument(*batch.Config)
		if err := db.upsert(ctx, model.LedgerCollection, doc.Id, doc); err != nil {
			return err
		}
	}
	if batch.State != nil {
		doc := model.NewStateDocument(*batch.State)
		if err := db.upsert(ctx, model.LedgerCollection, doc.Id, doc); err != nil {
			return err
		}
	}
	for addr, entry := range batch.Users {
		doc := model.NewStakerDocument(addr, entry)
		if err := db.upsert(ctx, model.StakerCollection, doc.Address, doc); err != nil {
			return err
		}
	}
	for addr, entry := range batch.Unbonds {
		doc := model.NewUnbondDocument(addr, entry)
		if err := db.upsert(ctx, model.UnbondCollection, doc.Address, doc); err != nil {
			return err
		}
	}
	return nil
}

func (db *Database) ListUsers(ctx context.Context, after ledger.Addr, limit int64) ([]ledger.UserRecord, error) {
	client := db.collection(model.StakerCollection)
	filter := bson.M{"_id": bson.M{"$gt": after.String()}}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := client.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []model.StakerDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	records := make([]ledger.UserRecord, 0, len(docs))
	for i := range docs {
		entry, err := docs[i].ToUserEntry()
		if err != nil {
			return nil, err
		}
		records = append(records, ledger.UserRecord{
			Address: ledger.Addr(docs[i].Address),
			Entry:   *entry,
		})
	}
	return records, nil
}

func (db *Database) findById(ctx context.Context, collection, id string, out interface{}) (bool, error) {
	err := db.collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (db *Database) upsert(ctx context.Context, collection, id string, doc interface{}) error {
	_, err := db.collection(collection).ReplaceOne(
		ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true),
	)
	return err
}
