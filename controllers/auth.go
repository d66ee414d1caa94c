package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/nahid-dev/local_business_directory/backend/config"
	"github.com/nahid-dev/local_business_directory/backend/models"
	"github.com/nahid-dev/local_business_directory/backend/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Response struct {
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
}

func RegisterUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var user models.User
		if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
			log.Printf("Error decoding user data: %v", err)
			http.Error(w, "Invalid request payload", http.StatusBadRequest)
			return
		}

		if user.Name == "" || user.Email == "" || user.Password == "" {
			http.Error(w, "Name, email and password are required", http.StatusBadRequest)
			return
		}

		hashedPwd, err := utils.HashPassword(user.Password)
		if err != nil {
			log.Printf("Error hashing password: %v", err)
			http.Error(w, "Failed to hash password", http.StatusInternalServerError)
			return
		}

		user.ID = primitive.NewObjectID()
		user.Password = hashedPwd
		user.Role = models.RoleUser
		user.CreatedAt = time.Now()

		if _, err := config.UserCollection.InsertOne(r.Context(), user); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				log.Printf("User email already exists: %s", user.Email)
				http.Error(w, "Email already exists", http.StatusConflict)
				return
			}
			log.Printf("Error inserting user into the database: %v", err)
			http.Error(w, "Failed to create user", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Response{Message: "User registered successfully"})
	}
}

func LoginUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var credentials models.User
		if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
			log.Printf("Error decoding login credentials: %v", err)
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}

		var dbUser models.User
		err := config.UserCollection.FindOne(r.Context(), bson.M{"email": credentials.Email}).Decode(&dbUser)
		if err != nil {
			log.Printf("User not found: %s", credentials.Email)
			http.Error(w, "User not found", http.StatusUnauthorized)
			return
		}

		if !utils.CheckPasswordHash(credentials.Password, dbUser.Password) {
			log.Printf("Invalid credentials for user: %s", credentials.Email)
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}

		token, err := utils.GenerateJWT(dbUser.ID.Hex(), dbUser.Role)
		if err != nil {
			log.Printf("Error generating JWT token: %v", err)
			http.Error(w, "Failed to generate token", http.StatusInternalServerError)
			return
		}

		json.NewEncoder(w).Encode(Response{Message: "Login successful", Token: token})
	}
}
