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

type MemberRepository struct {
	repo *MongoRepository[models.Member]
}

func NewMemberRepository() *MemberRepository {
	collection := db.MDB.Database.Collection(consts.MembersCollection)
	mrepo := NewMongoRepository[models.Member](collection)
	return &MemberRepository{repo: mrepo}
}

func (r *MemberRepository) GetMemberByID(ctx context.Context, id primitive.ObjectID) (*models.Member, error) {

	filter := bson.M{"_id": id, "deleted": false}

	member, err := r.repo.Read(filter)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, consts.ErrorMemberNotFound
		}
		logger.Error(ctx, "Members : Error while reading %v", err)
		return nil, err
	}

	return &member, nil
}

// UpdateMemberSnapshot writes back balances computed from a versioned
// read. The filter pins the version the computation saw; a zero match
// means someone else committed first.
func (r *MemberRepository) UpdateMemberSnapshot(ctx context.Context, member *models.Member) error {

	filter := bson.M{"_id": member.ID, "version": member.Version}
	update := bson.M{
		"$set": bson.M{
			"points":              member.Points,
			"permanentInvestment": member.PermanentInvestment,
			"temporaryInvestment": member.TemporaryInvestment,
		},
		"$inc": bson.M{"version": 1},
	}

	matched, err := r.repo.UpdateMatched(filter, update)
	if err != nil {
		logger.Error(ctx, "Members : Error while updating %v", err)
		return err
	}
	if matched == 0 {
		return consts.ErrorStaleSnapshot
	}

	member.Version++
	return nil
}

func (r *MemberRepository) AdjustPoints(ctx context.Context, id primitive.ObjectID, delta float64) error {

	filter := bson.M{"_id": id, "deleted": false}
	update := bson.M{"$inc": bson.M{"points": delta}}

	matched, err := r.repo.UpdateMatched(filter, update)
	if err != nil {
		logger.Error(ctx, "Members : Error adjusting points %v", err)
		return err
	}
	if matched == 0 {
		return consts.ErrorMemberNotFound
	}

	return nil
}

func (r *MemberRepository) CreateMemberEntry(ctx context.Context, member models.Member) (bool, error) {

	_, err := r.repo.Create(member)
	if err != nil {
		logger.Error(ctx, "Members : Error while inserting %v", err)
		return false, fmt.Errorf("Members : error while inserting %v", err.Error())
	}

	return true, nil
}

func (r *MemberRepository) ListActiveMembers(ctx context.Context) ([]models.Member, error) {

	filter := bson.M{"deleted": false}

	members, err := r.repo.FindAll(filter)
	if err != nil {
		logger.Error(ctx, "Members : Error while listing %v", err)
		return nil, err
	}

	return members, nil
}
