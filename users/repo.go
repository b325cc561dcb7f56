package users

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"

	"github.com/carewell/portal/store"
)

const (
	usersCollectionName = "users"
)

type Repository interface {
	Create(ctx context.Context, user User) (*User, error)
	Get(ctx context.Context, userId string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, ids []primitive.ObjectID) ([]*User, error)
	UpdatePatientProfile(ctx context.Context, userId string, profile PatientProfile) (*User, error)
	AddAssignedPatient(ctx context.Context, providerId, patientId primitive.ObjectID) error
	AddAssignedProvider(ctx context.Context, patientId, providerId primitive.ObjectID) error
}

func NewRepository(db *mongo.Database, lifecycle fx.Lifecycle) (Repository, error) {
	repo := &repository{
		collection: db.Collection(usersCollectionName),
	}

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return repo.Initialize(ctx)
		},
	})

	return repo, nil
}

type repository struct {
	collection *mongo.Collection
}

func (r *repository) Initialize(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "email", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetName("UniqueEmail"),
		},
		{
			Keys: bson.D{
				{Key: "provider.licenseNumber", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.D{
					{Key: "provider.licenseNumber", Value: bson.D{{Key: "$exists", Value: true}}},
				}).
				SetName("UniqueProviderLicense"),
		},
	})
	return err
}

func (r *repository) Create(ctx context.Context, user User) (*User, error) {
	user.CreatedTime = time.Now()
	user.UpdatedTime = user.CreatedTime

	res, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if store.IsDuplicateKeyError(err) {
			if strings.Contains(err.Error(), "UniqueProviderLicense") {
				return nil, ErrLicenseTaken
			}
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	id := res.InsertedID.(primitive.ObjectID)
	return r.Get(ctx, id.Hex())
}

func (r *repository) Get(ctx context.Context, userId string) (*User, error) {
	id, err := primitive.ObjectIDFromHex(userId)
	if err != nil {
		return nil, ErrNotFound
	}

	user := &User{}
	err = r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	user := &User{}
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *repository) List(ctx context.Context, ids []primitive.ObjectID) ([]*User, error) {
	selector := bson.M{
		"_id": bson.M{"$in": ids},
	}

	cursor, err := r.collection.Find(ctx, selector)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}

	var users []*User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("error decoding user list: %w", err)
	}

	return users, nil
}

func (r *repository) UpdatePatientProfile(ctx context.Context, userId string, profile PatientProfile) (*User, error) {
	id, err := primitive.ObjectIDFromHex(userId)
	if err != nil {
		return nil, ErrNotFound
	}

	selector := bson.M{
		"_id":  id,
		"role": RolePatient,
	}
	update := bson.M{
		"$set": bson.M{
			"patient":     profile,
			"updatedTime": time.Now(),
		},
	}

	user := &User{}
	err = r.collection.FindOneAndUpdate(ctx, selector, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *repository) AddAssignedPatient(ctx context.Context, providerId, patientId primitive.ObjectID) error {
	selector := bson.M{
		"_id":  providerId,
		"role": RoleProvider,
	}
	update := bson.M{
		"$addToSet": bson.M{"provider.assignedPatients": patientId},
		"$set":      bson.M{"updatedTime": time.Now()},
	}

	res, err := r.collection.UpdateOne(ctx, selector, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *repository) AddAssignedProvider(ctx context.Context, patientId, providerId primitive.ObjectID) error {
	selector := bson.M{
		"_id":  patientId,
		"role": RolePatient,
	}
	update := bson.M{
		"$addToSet": bson.M{"patient.assignedProviders": providerId},
		"$set":      bson.M{"updatedTime": time.Now()},
	}

	res, err := r.collection.UpdateOne(ctx, selector, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}
