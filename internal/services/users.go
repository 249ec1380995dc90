package services

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/voicevault/voicevault-backend/internal/database"
	"github.com/voicevault/voicevault-backend/internal/models"
	"github.com/voicevault/voicevault-backend/pkg/utils"
)

// UserUpdate is a partial update applied by admin edits. Nil fields are left
// untouched; Password is the raw replacement and is hashed before write.
type UserUpdate struct {
	Email    *string
	Password *string
	IsAdmin  *bool
}

// CreateUser hashes the raw password and inserts a new user. Emails are
// compared exactly as stored. The pre-insert check is not atomic; the unique
// index on email catches the remaining race.
func CreateUser(ctx context.Context, email, rawPassword string, isAdmin bool) (*models.User, error) {
	col := database.DB.Collection(database.UsersCollection)

	count, err := col.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateEmail
	}

	hashed, err := utils.HashPassword(rawPassword)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:     email,
		Password:  hashed,
		IsAdmin:   isAdmin,
		CreatedAt: time.Now().UTC(),
	}

	res, err := col.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	user.ID = res.InsertedID.(primitive.ObjectID)
	return user, nil
}

// FindUserByEmail returns ErrNotFound when no user has that email.
func FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := database.DB.Collection(database.UsersCollection).
		FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindUserByID resolves a hex ObjectID string to a user. A malformed id is
// treated the same as a missing user.
func FindUserByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var user models.User
	err = database.DB.Collection(database.UsersCollection).
		FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ListUsers returns all users, newest first.
func ListUsers(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := database.DB.Collection(database.UsersCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	users := []models.User{}
	for cur.Next(ctx) {
		var u models.User
		if err := cur.Decode(&u); err != nil {
			log.Printf("Failed to decode user document: %v", err)
			continue
		}
		users = append(users, u)
	}
	return users, cur.Err()
}

// UpdateUser applies a partial update and returns the updated user.
// There is no delete counterpart: accounts are append-only.
func UpdateUser(ctx context.Context, id string, update UserUpdate) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	set := bson.M{}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.IsAdmin != nil {
		set["is_admin"] = *update.IsAdmin
	}
	if update.Password != nil {
		hashed, err := utils.HashPassword(*update.Password)
		if err != nil {
			return nil, err
		}
		set["password"] = hashed
	}
	if len(set) == 0 {
		return FindUserByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.User
	err = database.DB.Collection(database.UsersCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).
		Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return &user, nil
}
