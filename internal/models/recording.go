package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Recording is one uploaded audio blob. Exactly one storage reference is
// populated per document: Path for local-disk uploads, CloudinaryURL +
// CloudinaryID for Cloudinary uploads. Records keep whichever shape they were
// created with, so readers must handle both.
type Recording struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`

	Filename      string `bson:"filename" json:"filename"`
	OriginalName  string `bson:"original_name" json:"original_name"` // client-supplied, display only
	Path          string `bson:"path,omitempty" json:"path,omitempty"`
	CloudinaryURL string `bson:"cloudinary_url,omitempty" json:"cloudinary_url,omitempty"`
	CloudinaryID  string `bson:"cloudinary_id,omitempty" json:"cloudinary_id,omitempty"`

	Size     int64   `bson:"size" json:"size"`
	Duration float64 `bson:"duration" json:"duration"` // seconds, client-reported
}

// RecordingOwner is the `email`-only user projection the admin listing joins in.
type RecordingOwner struct {
	ID    primitive.ObjectID `bson:"_id" json:"id"`
	Email string             `bson:"email" json:"email"`
}

type RecordingWithOwner struct {
	Recording `bson:",inline"`
	Owner     *RecordingOwner `json:"owner,omitempty"`
}
