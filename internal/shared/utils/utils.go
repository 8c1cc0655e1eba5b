package utils

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// IsValidObjectID reports whether s is a well formed 24 character hex ObjectID.
func IsValidObjectID(s string) bool {
	_, err := bson.ObjectIDFromHex(s)
	return err == nil
}
