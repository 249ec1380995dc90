package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/voicevault/voicevault-backend/internal/middleware"
	"github.com/voicevault/voicevault-backend/internal/models"
	"github.com/voicevault/voicevault-backend/internal/services"
	"github.com/voicevault/voicevault-backend/pkg/utils"
)

type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user,omitempty"`
}

// Register handles self-service registration. New accounts always get the
// standard role; only an admin edit can grant the admin flag.
func Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := services.CreateUser(r.Context(), req.Email, req.Password, false)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateEmail) {
			writeMessage(w, http.StatusBadRequest, "User with this email already exists")
			return
		}
		serverError(w, err)
		return
	}

	if err := issueSession(w, user); err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, AuthResponse{
		Message: "User registered successfully",
		User:    user,
	})
}

// Login verifies credentials and sets the session cookie.
func Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := services.FindUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		serverError(w, err)
		return
	}

	valid, err := utils.VerifyPassword(req.Password, user.Password)
	if err != nil || !valid {
		writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if err := issueSession(w, user); err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		Message: "Login successful",
		User:    user,
	})
}

// Logout clears the session cookie. Tokens are expiry-only, so the cookie
// clear is the whole operation.
func Logout(w http.ResponseWriter, r *http.Request) {
	cookie := newTokenCookie("", -1)
	http.SetCookie(w, cookie)
	writeMessage(w, http.StatusOK, "Logged out successfully")
}

// Me returns the authenticated user resolved by RequireAuth.
func Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	writeJSON(w, http.StatusOK, AuthResponse{
		Message: "OK",
		User:    user,
	})
}

// issueSession signs a token for the user and attaches it as an HTTP-only
// cookie, inaccessible to client script.
func issueSession(w http.ResponseWriter, user *models.User) error {
	token, err := services.GenerateToken(user.ID.Hex(), []byte(cfg.JWTSecret), services.TokenTTL)
	if err != nil {
		return err
	}
	http.SetCookie(w, newTokenCookie(token, int(services.TokenTTL.Seconds())))
	return nil
}

func newTokenCookie(value string, maxAge int) *http.Cookie {
	cookie := &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	// Cross-site frontend in production needs SameSite=None, which requires Secure
	if cfg.IsProduction() {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	}
	return cookie
}
