package db

import (
	"go.mongodb.org/mongo-driver/mongo"
)

// Write acknowledgements returned to HTTP callers. Field names follow the
// shape front-end clients of the shop already consume.

type InsertResult struct {
	Acknowledged bool        `json:"acknowledged"`
	InsertedID   interface{} `json:"insertedId"`
}

type UpdateResult struct {
	Acknowledged  bool        `json:"acknowledged"`
	MatchedCount  int64       `json:"matchedCount"`
	ModifiedCount int64       `json:"modifiedCount"`
	UpsertedCount int64       `json:"upsertedCount"`
	UpsertedID    interface{} `json:"upsertedId"`
}

type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

func NewInsertResult(res *mongo.InsertOneResult) *InsertResult {
	if res == nil {
		return &InsertResult{}
	}
	return &InsertResult{Acknowledged: true, InsertedID: res.InsertedID}
}

func NewUpdateResult(res *mongo.UpdateResult) *UpdateResult {
	if res == nil {
		return &UpdateResult{}
	}
	return &UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    res.UpsertedID,
	}
}

func NewDeleteResult(res *mongo.DeleteResult) *DeleteResult {
	if res == nil {
		return &DeleteResult{}
	}
	return &DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}
}
