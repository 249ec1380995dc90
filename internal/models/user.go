package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`

	Email    string `bson:"email" json:"email"`
	Password string `bson:"password" json:"-"` // Don't return password hash in JSON
	IsAdmin  bool   `bson:"is_admin" json:"is_admin"`
}
