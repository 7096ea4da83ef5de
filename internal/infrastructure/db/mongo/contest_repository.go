package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/logica-uic/contest-backend/internal/core/domain"
)

const contestCollection = "contests"

type ContestRepository struct {
	coll *mongo.Collection
}

func NewContestRepository(db *mongo.Database) *ContestRepository {
	return &ContestRepository{coll: db.Collection(contestCollection)}
}

type mongoContest struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"contest_name"`
	StartsAt  int64              `bson:"starts_at"`
	EndsAt    int64              `bson:"ends_at"`
	Live      bool               `bson:"live"`
	CreatedAt int64              `bson:"created_at"`
}

func (r *ContestRepository) List(ctx context.Context) ([]domain.Contest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "starts_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list contests: %w", err)
	}
	defer cursor.Close(ctx)

	var contests []domain.Contest
	for cursor.Next(ctx) {
		var mc mongoContest
		if err := cursor.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode contest: %w", err)
		}
		contests = append(contests, toDomainContest(mc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list contests: %w", err)
	}
	return contests, nil
}

func (r *ContestRepository) Create(ctx context.Context, c *domain.Contest) (*domain.Contest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoContest{
		Name:      c.Name,
		StartsAt:  c.StartsAt.Unix(),
		EndsAt:    c.EndsAt.Unix(),
		Live:      c.Live,
		CreatedAt: c.CreatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrContestExists
		}
		return nil, fmt.Errorf("insert contest: %w", err)
	}

	created := *c
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *ContestRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrContestNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete contest: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrContestNotFound
	}
	return nil
}

// SyncLiveWindows flips live flags in two bulk updates: contests inside
// their window go live, everything else goes dark. Each document update is
// atomic; the two passes need no coordination because their filters are
// disjoint.
func (r *ContestRepository) SyncLiveWindows(ctx context.Context, now time.Time) (int64, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	ts := now.Unix()

	open, err := r.coll.UpdateMany(ctx,
		bson.M{"live": false, "starts_at": bson.M{"$lte": ts}, "ends_at": bson.M{"$gt": ts}},
		bson.M{"$set": bson.M{"live": true}},
	)
	if err != nil {
		return 0, 0, fmt.Errorf("open contest windows: %w", err)
	}

	closed, err := r.coll.UpdateMany(ctx,
		bson.M{"live": true, "$or": bson.A{
			bson.M{"starts_at": bson.M{"$gt": ts}},
			bson.M{"ends_at": bson.M{"$lte": ts}},
		}},
		bson.M{"$set": bson.M{"live": false}},
	)
	if err != nil {
		return open.ModifiedCount, 0, fmt.Errorf("close contest windows: %w", err)
	}

	live, err := r.coll.CountDocuments(ctx, bson.M{"live": true})
	if err != nil {
		return open.ModifiedCount + closed.ModifiedCount, 0, fmt.Errorf("count live contests: %w", err)
	}

	return open.ModifiedCount + closed.ModifiedCount, live, nil
}

func toDomainContest(mc mongoContest) domain.Contest {
	return domain.Contest{
		ID:        mc.ID.Hex(),
		Name:      mc.Name,
		StartsAt:  unixToTime(mc.StartsAt),
		EndsAt:    unixToTime(mc.EndsAt),
		Live:      mc.Live,
		CreatedAt: unixToTime(mc.CreatedAt),
	}
}
