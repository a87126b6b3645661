package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// VoteType is the direction of a user's vote on a report.
type VoteType string

const (
	VoteUp   VoteType = "up"
	VoteDown VoteType = "down"
	VoteNone VoteType = "none"
)

func (v VoteType) Valid() bool {
	return v == VoteUp || v == VoteDown || v == VoteNone
}

// ReportVote records a user's current vote on a waste report. At most one
// document exists per (report, user) pair; retracting a vote deletes it.
type ReportVote struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Report    primitive.ObjectID `bson:"report" json:"report"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	VoteType  VoteType           `bson:"voteType" json:"voteType"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// EnsureVoteIndex creates a unique compound index for (report, user)
func EnsureVoteIndex(collection *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "report", Value: 1}, {Key: "user", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	return err
}

// EnsureReportIndexes creates the indexes the list and nearby queries rely on.
func EnsureReportIndexes(collection *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "reportedBy", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "location.coordinates", Value: "2dsphere"}}},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
