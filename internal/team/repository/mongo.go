package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	teamModel "github.com/purpleworks/workshop/internal/team/model"
)

type mongoRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     *zap.SugaredLogger
}

// NewMongo creates a team repository backed by a MongoDB collection.
// ReplaceAll runs in a multi-document transaction and needs a replica set deployment.
func NewMongo(client *mongo.Client, collection *mongo.Collection, logger *zap.SugaredLogger) Repository {
	return &mongoRepository{client: client, collection: collection, logger: logger}
}

// EnsureIndexes creates the creation-order index used by List.
func EnsureIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create teams index: %w", err)
	}
	return nil
}

func (r *mongoRepository) Create(ctx context.Context, team *teamModel.Team) error {
	if team.ID == "" {
		team.ID = uuid.NewString()
	}
	if _, err := r.collection.InsertOne(ctx, team); err != nil {
		return fmt.Errorf("create team: %w", err)
	}
	return nil
}

func (r *mongoRepository) GetByID(ctx context.Context, id string) (*teamModel.Team, error) {
	var team teamModel.Team
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&team)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, teamModel.ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

func (r *mongoRepository) List(ctx context.Context) ([]teamModel.Team, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	teams := []teamModel.Team{}
	if err := cursor.All(ctx, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *mongoRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *mongoRepository) Increment(ctx context.Context, id string) (*teamModel.Team, error) {
	return r.findAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"score": 1}})
}

func (r *mongoRepository) Decrement(ctx context.Context, id string) (*teamModel.Team, error) {
	team, err := r.findAndUpdate(ctx,
		bson.M{"_id": id, "score": bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{"score": -1}})
	if errors.Is(err, teamModel.ErrTeamNotFound) {
		// Either missing or already at zero.
		return r.GetByID(ctx, id)
	}
	return team, err
}

func (r *mongoRepository) ResetScore(ctx context.Context, id string) (*teamModel.Team, error) {
	return r.findAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"score": 0}})
}

func (r *mongoRepository) findAndUpdate(ctx context.Context, filter, update bson.M) (*teamModel.Team, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var team teamModel.Team
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&team)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, teamModel.ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

func (r *mongoRepository) ResetAll(ctx context.Context) (int64, error) {
	res, err := r.collection.UpdateMany(ctx, bson.M{}, bson.M{"$set": bson.M{"score": 0}})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (r *mongoRepository) Update(ctx context.Context, id, name, colorHex string) (*teamModel.Team, error) {
	return r.findAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"name": name, "color_hex": colorHex}})
}

func (r *mongoRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return teamModel.ErrTeamNotFound
	}
	return nil
}

func (r *mongoRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *mongoRepository) ReplaceAll(ctx context.Context, teams []teamModel.Team) error {
	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.collection.DeleteMany(sc, bson.M{}); err != nil {
			return nil, fmt.Errorf("delete teams: %w", err)
		}
		if len(teams) == 0 {
			return nil, nil
		}

		docs := make([]interface{}, 0, len(teams))
		for i := range teams {
			if teams[i].ID == "" {
				teams[i].ID = uuid.NewString()
			}
			docs = append(docs, teams[i])
		}
		if _, err := r.collection.InsertMany(sc, docs); err != nil {
			return nil, fmt.Errorf("insert teams: %w", err)
		}
		return nil, nil
	})
	if err != nil {
		return err
	}

	r.logger.Debugw("teams replaced", "inserted", len(teams))
	return nil
}
