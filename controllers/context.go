package controllers

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContextKey string

const (
	UserIDKey = ContextKey("userID")
	RoleKey   = ContextKey("role")
)

// callerID returns the authenticated caller's id, when present and valid.
func callerID(r *http.Request) (primitive.ObjectID, bool) {
	userID, ok := r.Context().Value(UserIDKey).(string)
	if !ok {
		return primitive.NilObjectID, false
	}
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return objID, true
}

func callerRole(r *http.Request) string {
	role, _ := r.Context().Value(RoleKey).(string)
	return role
}
