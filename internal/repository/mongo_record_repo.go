package repository

import (
	"context"

	"careervision/internal/apperrors"
	"careervision/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const recordCounterID = "records"

// recordDocument adds the insertion sequence used for ordering
type recordDocument struct {
	model.StorageRecord `bson:",inline"`
	Seq                 int64 `bson:"seq"`
}

type mongoRecordRepo struct {
	collection *mongo.Collection
	counters   *mongo.Collection
}

func NewMongoRecordRepo(db *mongo.Database) RecordRepo {
	return &mongoRecordRepo{
		collection: db.Collection("records"),
		counters:   db.Collection("counters"),
	}
}

func (r *mongoRecordRepo) nextSeq(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": recordCounterID},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	return counter.Seq, err
}

func (r *mongoRecordRepo) Append(ctx context.Context, record *model.StorageRecord) error {
	seq, err := r.nextSeq(ctx)
	if err != nil {
		return apperrors.NewStorageWrite("append", err)
	}
	_, err = r.collection.InsertOne(ctx, recordDocument{StorageRecord: *record, Seq: seq})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.NewStorageDuplicate(record.ID, err)
		}
		return apperrors.NewStorageWrite("append", err)
	}
	return nil
}

func (r *mongoRecordRepo) List(ctx context.Context) ([]*model.StorageRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "seq", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, apperrors.NewStorageRead("list", err)
	}
	defer cursor.Close(ctx)

	var docs []recordDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, apperrors.NewStorageRead("list", err)
	}

	records := make([]*model.StorageRecord, 0, len(docs))
	for i := range docs {
		rec := docs[i].StorageRecord
		records = append(records, &rec)
	}
	return records, nil
}

func (r *mongoRecordRepo) Clear(ctx context.Context) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return apperrors.NewStorageWrite("clear", err)
	}
	return nil
}
