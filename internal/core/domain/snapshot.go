package domain

import "time"

// Collection names a record store collection.
type Collection string

const (
	CollectionJobs      Collection = "jobs"
	CollectionBuildings Collection = "buildings"
	CollectionUsers     Collection = "users"
	CollectionReviews   Collection = "reviews"
)

// Collections lists every collection the analytics layer reads.
var Collections = []Collection{CollectionJobs, CollectionBuildings, CollectionUsers, CollectionReviews}

// ChangeEvent is emitted by the record store whenever a document in a collection changes.
type ChangeEvent struct {
	Collection Collection
	DocumentID string
	At         time.Time
}

// Snapshot is a point-in-time copy of the collections the analytics layer reads.
// Each consumer owns its copy.
type Snapshot struct {
	Jobs      []Job      `json:"jobs"`
	Buildings []Building `json:"buildings"`
	Users     []User     `json:"users"`
	Reviews   []Review   `json:"reviews"`
	TakenAt   time.Time  `json:"takenAt"`
}
