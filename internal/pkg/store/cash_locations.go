package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"growthspring/club_lending/internal/pkg/consts"
	"growthspring/club_lending/internal/pkg/db"
	"growthspring/club_lending/internal/pkg/logger"
	"growthspring/club_lending/internal/pkg/models"
)

type CashLocationRepository struct {
	repo *MongoRepository[models.CashLocation]
}

func NewCashLocationRepository() *CashLocationRepository {
	collection := db.MDB.Database.Collection(consts.CashLocationsCollection)
	mrepo := NewMongoRepository[models.CashLocation](collection)
	return &CashLocationRepository{repo: mrepo}
}

func (r *CashLocationRepository) GetCashLocationByID(ctx context.Context, id primitive.ObjectID) (*models.CashLocation, error) {

	filter := bson.M{"_id": id}

	location, err := r.repo.Read(filter)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, consts.ErrorInsufficientCashLocationFunds
		}
		logger.Error(ctx, "CashLocations : Error while reading %v", err)
		return nil, err
	}

	return &location, nil
}

// Debit draws funds from a location. The balance guard sits in the
// filter so a concurrent debit cannot overdraw.
func (r *CashLocationRepository) Debit(ctx context.Context, id primitive.ObjectID, amount float64) error {

	filter := bson.M{"_id": id, "balance": bson.M{"$gte": amount}}
	update := bson.M{
		"$inc": bson.M{"balance": -amount},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	}

	matched, err := r.repo.UpdateMatched(filter, update)
	if err != nil {
		logger.Error(ctx, "CashLocations : Error while debiting %v", err)
		return err
	}
	if matched == 0 {
		return consts.ErrorInsufficientCashLocationFunds
	}

	return nil
}

func (r *CashLocationRepository) Credit(ctx context.Context, id primitive.ObjectID, amount float64) error {

	filter := bson.M{"_id": id}
	update := bson.M{
		"$inc": bson.M{"balance": amount},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	}

	matched, err := r.repo.UpdateMatched(filter, update)
	if err != nil {
		logger.Error(ctx, "CashLocations : Error while crediting %v", err)
		return err
	}
	if matched == 0 {
		return consts.ErrorInsufficientCashLocationFunds
	}

	return nil
}
