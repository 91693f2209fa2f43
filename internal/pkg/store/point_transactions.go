package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"growthspring/club_lending/internal/pkg/consts"
	"growthspring/club_lending/internal/pkg/db"
	"growthspring/club_lending/internal/pkg/logger"
	"growthspring/club_lending/internal/pkg/models"
)

type PointTransactionRepository struct {
	repo *MongoRepository[models.PointTransaction]
}

func NewPointTransactionRepository() *PointTransactionRepository {
	collection := db.MDB.Database.Collection(consts.PointTransactionsCollection)
	mrepo := NewMongoRepository[models.PointTransaction](collection)
	return &PointTransactionRepository{repo: mrepo}
}

func (r *PointTransactionRepository) GetTransactionByID(ctx context.Context, id primitive.ObjectID) (*models.PointTransaction, error) {

	filter := bson.M{"_id": id}

	txn, err := r.repo.Read(filter)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, consts.ErrorPointTransactionNotFound
		}
		logger.Error(ctx, "PointTransactions : Error while reading %v", err)
		return nil, err
	}

	return &txn, nil
}

func (r *PointTransactionRepository) CreateTransactionEntry(ctx context.Context, txn models.PointTransaction) (bool, error) {

	_, err := r.repo.Create(txn)
	if err != nil {
		logger.Error(ctx, "PointTransactions : Error while inserting %v", err)
		return false, fmt.Errorf("PointTransactions : error while inserting %v", err.Error())
	}

	return true, nil
}

func (r *PointTransactionRepository) UpdateTransactionPoints(ctx context.Context, id primitive.ObjectID, points float64, reason string) error {

	filter := bson.M{"_id": id}
	update := bson.M{"points": points, "reason": reason}

	err := r.repo.Update(filter, update)
	if err != nil {
		logger.Error(ctx, "PointTransactions : Error while updating %v", err)
		return err
	}

	return nil
}

func (r *PointTransactionRepository) DeleteTransactionEntry(ctx context.Context, id primitive.ObjectID) error {

	filter := bson.M{"_id": id}

	err := r.repo.Delete(filter)
	if err != nil {
		logger.Error(ctx, "PointTransactions : Error while deleting %v", err)
		return err
	}

	return nil
}

func (r *PointTransactionRepository) TransactionsByMember(ctx context.Context, member primitive.ObjectID) ([]models.PointTransaction, error) {

	filter := bson.M{"$or": []bson.M{
		{"recipient": member},
		{"sender": member},
		{"redeemedBy": member},
	}}

	txns, err := r.repo.FindAll(filter)
	if err != nil {
		logger.Error(ctx, "PointTransactions : Error while listing %v", err)
		return nil, err
	}

	return txns, nil
}
