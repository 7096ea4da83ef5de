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

const problemCollection = "problems"

type ProblemRepository struct {
	coll *mongo.Collection
}

func NewProblemRepository(db *mongo.Database) *ProblemRepository {
	return &ProblemRepository{coll: db.Collection(problemCollection)}
}

type mongoProblem struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"problem_name"`
	Difficulty string             `bson:"difficulty"`
	URL        string             `bson:"url"`
	CreatedAt  int64              `bson:"created_at"`
}

func (r *ProblemRepository) List(ctx context.Context) ([]domain.Problem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list problems: %w", err)
	}
	defer cursor.Close(ctx)

	var problems []domain.Problem
	for cursor.Next(ctx) {
		var mp mongoProblem
		if err := cursor.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode problem: %w", err)
		}
		problems = append(problems, toDomainProblem(mp))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list problems: %w", err)
	}
	return problems, nil
}

func (r *ProblemRepository) Create(ctx context.Context, p *domain.Problem) (*domain.Problem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoProblem{
		Name:       p.Name,
		Difficulty: p.Difficulty,
		URL:        p.URL,
		CreatedAt:  p.CreatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrProblemExists
		}
		return nil, fmt.Errorf("insert problem: %w", err)
	}

	created := *p
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *ProblemRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrProblemNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete problem: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProblemNotFound
	}
	return nil
}

// EnsureIndexes creates the unique name index that backs duplicate rejection.
func (r *ProblemRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "problem_name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("ensure problem indexes: %w", err)
	}
	return nil
}

func toDomainProblem(mp mongoProblem) domain.Problem {
	return domain.Problem{
		ID:         mp.ID.Hex(),
		Name:       mp.Name,
		Difficulty: mp.Difficulty,
		URL:        mp.URL,
		CreatedAt:  unixToTime(mp.CreatedAt),
	}
}
