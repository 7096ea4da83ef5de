package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/logica-uic/contest-backend/internal/core/domain"
)

const (
	participantCollection = "participants"
	organizerCollection   = "organizers"
)

// AccountRepository is the credential store backed by two role-partitioned
// collections, each keyed by a unique email index.
type AccountRepository struct {
	participants *mongo.Collection
	organizers   *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{
		participants: db.Collection(participantCollection),
		organizers:   db.Collection(organizerCollection),
	}
}

type mongoPendingReset struct {
	CodeHash string `bson:"code_hash"`
	IssuedAt int64  `bson:"issued_at"`
}

type mongoAccount struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          string             `bson:"name"`
	Email         string             `bson:"email"`
	PasswordHash  string             `bson:"password_hash"`
	PendingReset  *mongoPendingReset `bson:"pending_reset,omitempty"`
	SessionMarker string             `bson:"session_marker,omitempty"`
	CreatedAt     int64              `bson:"created_at"`
	UpdatedAt     int64              `bson:"updated_at"`
}

func (r *AccountRepository) coll(role string) *mongo.Collection {
	if role == domain.RoleOrganizer {
		return r.organizers
	}
	return r.participants
}

func (r *AccountRepository) FindByEmail(ctx context.Context, role, email string) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ma mongoAccount
	if err := r.coll(role).FindOne(ctx, bson.M{"email": email}).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return toDomainAccount(ma), nil
}

func (r *AccountRepository) Create(ctx context.Context, role string, account *domain.Account) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoAccount{
		Name:          account.Name,
		Email:         account.Email,
		PasswordHash:  account.PasswordHash,
		SessionMarker: account.SessionMarker,
		CreatedAt:     account.CreatedAt.Unix(),
		UpdatedAt:     account.UpdatedAt.Unix(),
	}

	if _, err := r.coll(role).InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAccountExists
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	// fetch back to get ID
	return r.FindByEmail(ctx, role, account.Email)
}

func (r *AccountRepository) ListParticipants(ctx context.Context) ([]domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.participants.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer cursor.Close(ctx)

	var accounts []domain.Account
	for cursor.Next(ctx) {
		var ma mongoAccount
		if err := cursor.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode participant: %w", err)
		}
		accounts = append(accounts, *toDomainAccount(ma))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	return accounts, nil
}

func (r *AccountRepository) SetPendingReset(ctx context.Context, role, email string, reset domain.PendingReset) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll(role).UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{
			"pending_reset": mongoPendingReset{
				CodeHash: reset.CodeHash,
				IssuedAt: reset.IssuedAt.Unix(),
			},
			"updated_at": time.Now().UTC().Unix(),
		}},
	)
	if err != nil {
		return fmt.Errorf("set pending reset: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// CompleteReset swaps the password hash and clears the pending reset in one
// conditional update. The filter pins the code hash the caller verified, so
// a concurrent reset request makes the update match nothing; per-document
// atomicity guarantees the two field changes land together or not at all.
func (r *AccountRepository) CompleteReset(ctx context.Context, role, email, currentCodeHash, newPasswordHash string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll(role).UpdateOne(ctx,
		bson.M{"email": email, "pending_reset.code_hash": currentCodeHash},
		bson.M{
			"$set": bson.M{
				"password_hash": newPasswordHash,
				"updated_at":    time.Now().UTC().Unix(),
			},
			"$unset": bson.M{"pending_reset": ""},
		},
	)
	if err != nil {
		return fmt.Errorf("complete reset: %w", err)
	}
	if res.MatchedCount == 0 {
		// Either the account vanished or its reset state moved on.
		if _, ferr := r.FindByEmail(ctx, role, email); errors.Is(ferr, domain.ErrAccountNotFound) {
			return domain.ErrAccountNotFound
		}
		return domain.ErrPartialReset
	}
	return nil
}

func (r *AccountRepository) RecordSessionMarker(ctx context.Context, role, email, marker string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll(role).UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"session_marker": marker}},
	)
	if err != nil {
		return fmt.Errorf("record session marker: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// EnsureIndexes creates the unique email index on both account collections.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	for _, coll := range []*mongo.Collection{r.participants, r.organizers} {
		if _, err := coll.Indexes().CreateOne(ctx, index); err != nil {
			return fmt.Errorf("ensure account indexes: %w", err)
		}
	}
	return nil
}

func toDomainAccount(ma mongoAccount) *domain.Account {
	account := &domain.Account{
		ID:            ma.ID.Hex(),
		Name:          ma.Name,
		Email:         ma.Email,
		PasswordHash:  ma.PasswordHash,
		SessionMarker: ma.SessionMarker,
		CreatedAt:     unixToTime(ma.CreatedAt),
		UpdatedAt:     unixToTime(ma.UpdatedAt),
	}
	if ma.PendingReset != nil {
		account.PendingReset = &domain.PendingReset{
			CodeHash: ma.PendingReset.CodeHash,
			IssuedAt: unixToTime(ma.PendingReset.IssuedAt),
		}
	}
	return account
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
