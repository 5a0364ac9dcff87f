package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a person whose exercises are tracked.
// Users are created once and never modified.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Username string             `bson:"username" json:"username"`
}
