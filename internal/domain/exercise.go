// internal/domain/exercise.go
package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise is a single logged activity owned by a User.
type Exercise struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID primitive.ObjectID `bson:"userId" json:"userId"` // Owner, required

	// Username is copied from the owner at creation time and never refreshed.
	Username    string  `bson:"username" json:"username"`
	Description string  `bson:"description" json:"description"`
	Duration    float64 `bson:"duration" json:"duration"`
	Date        string  `bson:"date" json:"date"` // yyyy-mm-dd
}
