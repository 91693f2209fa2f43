package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"growthspring/club_lending/internal/pkg/consts"
	"growthspring/club_lending/internal/pkg/db"
	"growthspring/club_lending/internal/pkg/logger"
	"growthspring/club_lending/internal/pkg/models"
)

type DepositRepository struct {
	repo *MongoRepository[models.Deposit]
}

func NewDepositRepository() *DepositRepository {
	collection := db.MDB.Database.Collection(consts.DepositsCollection)
	mrepo := NewMongoRepository[models.Deposit](collection)
	return &DepositRepository{repo: mrepo}
}

func (r *DepositRepository) CreateDepositEntry(ctx context.Context, deposit models.Deposit) (bool, error) {

	_, err := r.repo.Create(deposit)
	if err != nil {
		logger.Error(ctx, "Deposits : Error while inserting %v", err)
		return false, fmt.Errorf("Deposits : error while inserting %v", err.Error())
	}

	return true, nil
}

func (r *DepositRepository) DepositsByMember(ctx context.Context, member primitive.ObjectID) ([]models.Deposit, error) {

	filter := bson.M{"member": member}

	deposits, err := r.repo.FindAll(filter)
	if err != nil {
		logger.Error(ctx, "Deposits : Error while listing %v", err)
		return nil, err
	}

	return deposits, nil
}
