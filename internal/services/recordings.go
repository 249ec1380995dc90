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
	"github.com/voicevault/voicevault-backend/internal/storage"
)

// CreateRecording persists metadata for a stored blob. The owner reference is
// immutable after creation; recordings are never updated, only deleted.
func CreateRecording(ctx context.Context, ownerID primitive.ObjectID, stored *storage.StoredFile, originalName string, duration float64) (*models.Recording, error) {
	rec := &models.Recording{
		UserID:        ownerID,
		Filename:      stored.Filename,
		OriginalName:  originalName,
		Path:          stored.Path,
		CloudinaryURL: stored.RemoteURL,
		CloudinaryID:  stored.RemoteID,
		Size:          stored.Size,
		Duration:      duration,
		CreatedAt:     time.Now().UTC(),
	}

	res, err := database.DB.Collection(database.RecordingsCollection).InsertOne(ctx, rec)
	if err != nil {
		return nil, err
	}

	rec.ID = res.InsertedID.(primitive.ObjectID)
	return rec, nil
}

// ListRecordingsByUser returns the owner's recordings, newest first.
func ListRecordingsByUser(ctx context.Context, ownerID primitive.ObjectID) ([]models.Recording, error) {
	return findRecordings(ctx, bson.M{"user_id": ownerID})
}

// ListAllRecordings returns every recording, newest first, each joined with
// its owner's email for the admin view. The join is a second query over the
// distinct owner ids rather than an aggregation pipeline.
func ListAllRecordings(ctx context.Context) ([]models.RecordingWithOwner, error) {
	recs, err := findRecordings(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	ownerIDs := make([]primitive.ObjectID, 0, len(recs))
	seen := make(map[primitive.ObjectID]bool)
	for _, rec := range recs {
		if !seen[rec.UserID] {
			seen[rec.UserID] = true
			ownerIDs = append(ownerIDs, rec.UserID)
		}
	}

	owners := make(map[primitive.ObjectID]*models.RecordingOwner)
	if len(ownerIDs) > 0 {
		cur, err := database.DB.Collection(database.UsersCollection).
			Find(ctx, bson.M{"_id": bson.M{"$in": ownerIDs}})
		if err != nil {
			return nil, err
		}
		defer cur.Close(ctx)

		for cur.Next(ctx) {
			var o models.RecordingOwner
			if err := cur.Decode(&o); err != nil {
				log.Printf("Failed to decode user document in owner join: %v", err)
				continue
			}
			owners[o.ID] = &o
		}
		if err := cur.Err(); err != nil {
			return nil, err
		}
	}

	out := make([]models.RecordingWithOwner, 0, len(recs))
	for _, rec := range recs {
		out = append(out, models.RecordingWithOwner{
			Recording: rec,
			Owner:     owners[rec.UserID], // nil when the owner row is gone
		})
	}
	return out, nil
}

// FindRecordingByID resolves a hex ObjectID string to a recording.
func FindRecordingByID(ctx context.Context, id string) (*models.Recording, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var rec models.Recording
	err = database.DB.Collection(database.RecordingsCollection).
		FindOne(ctx, bson.M{"_id": oid}).Decode(&rec)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// DeleteOwnedRecording deletes a recording on behalf of requesterID. Only the
// owner may delete: anyone else gets ErrNotOwner. Blob cleanup runs first and
// is tolerated to fail so the metadata delete still proceeds; the two steps
// are not transactional, so a crash between them can orphan a remote blob.
func DeleteOwnedRecording(ctx context.Context, id string, requesterID primitive.ObjectID, backend storage.Backend) error {
	rec, err := FindRecordingByID(ctx, id)
	if err != nil {
		return err
	}
	if rec.UserID != requesterID {
		return ErrNotOwner
	}

	if err := backend.Delete(ctx, rec); err != nil {
		// Metadata consistency wins over blob cleanup
		log.Printf("Blob cleanup failed for recording %s: %v", rec.ID.Hex(), err)
	}

	return DeleteRecording(ctx, rec.ID)
}

// DeleteRecording removes the metadata row. Blob cleanup happens before this
// call and is tolerated to fail; the two steps are not transactional.
func DeleteRecording(ctx context.Context, id primitive.ObjectID) error {
	res, err := database.DB.Collection(database.RecordingsCollection).
		DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func findRecordings(ctx context.Context, filter bson.M) ([]models.Recording, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := database.DB.Collection(database.RecordingsCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	recs := []models.Recording{}
	for cur.Next(ctx) {
		var rec models.Recording
		if err := cur.Decode(&rec); err != nil {
			log.Printf("Failed to decode recording document: %v", err)
			continue
		}
		recs = append(recs, rec)
	}
	return recs, cur.Err()
}
