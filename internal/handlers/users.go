package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/voicevault/voicevault-backend/internal/models"
	"github.com/voicevault/voicevault-backend/internal/services"
)

type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"is_admin"`
}

type UpdateUserRequest struct {
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	IsAdmin  *bool   `json:"is_admin,omitempty"`
}

type UserResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user,omitempty"`
}

// ListUsers returns all users, newest first (admin only).
func ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := services.ListUsers(r.Context())
	if err != nil {
		serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// GetUser returns one user by id (admin only).
func GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := services.FindUserByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}
		serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// CreateUser creates an account with an explicit role (admin only).
func CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := services.CreateUser(r.Context(), req.Email, req.Password, req.IsAdmin)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateEmail) {
			writeMessage(w, http.StatusBadRequest, "User with this email already exists")
			return
		}
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, UserResponse{
		Message: "User created successfully",
		User:    user,
	})
}

// UpdateUser applies a partial edit: email, role flag, password reset
// (admin only). There is no delete endpoint; accounts are append-only.
func UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := services.UpdateUser(r.Context(), chi.URLParam(r, "id"), services.UserUpdate{
		Email:    req.Email,
		Password: req.Password,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			writeMessage(w, http.StatusNotFound, "User not found")
		case errors.Is(err, services.ErrDuplicateEmail):
			writeMessage(w, http.StatusBadRequest, "User with this email already exists")
		default:
			serverError(w, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, UserResponse{
		Message: "User updated successfully",
		User:    user,
	})
}
