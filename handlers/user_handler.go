package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"kvltransport/apperr"
	"kvltransport/models"
	"kvltransport/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserHandler covers back-office account signup and login.
type UserHandler struct {
	Repo      repository.UserRepository
	JWTSecret string
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("invalid request payload: %v", err))
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		writeError(w, apperr.Validation("email and password are required"))
		return
	}
	if len(req.Password) < 8 {
		writeError(w, apperr.Validation("password must be at least 8 characters"))
		return
	}

	existing, err := h.Repo.GetUserByEmail(req.Email)
	if err != nil {
		writeError(w, apperr.Internal("failed to check user", err))
		return
	}
	if existing != nil {
		writeError(w, apperr.Conflict("user with email %s already exists", req.Email))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, apperr.Internal("failed to hash password", err))
		return
	}

	user := &models.AppUser{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Role:      req.Role,
		Password:  string(hash),
		CreatedAt: time.Now().UTC(),
	}
	if user.Role == "" {
		user.Role = "operator"
	}

	if err := h.Repo.CreateUser(user); err != nil {
		writeError(w, apperr.Internal("failed to create user", err))
		return
	}

	user.Password = ""
	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: user})
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string          `json:"token"`
	User  *models.AppUser `json:"user"`
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("invalid request payload: %v", err))
		return
	}

	user, err := h.Repo.GetUserByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		writeError(w, apperr.Internal("failed to fetch user", err))
		return
	}
	if user == nil {
		writeError(w, apperr.Validation("invalid email or password"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		writeError(w, apperr.Validation("invalid email or password"))
		return
	}

	token, err := h.issueToken(user)
	if err != nil {
		writeError(w, apperr.Internal("failed to issue token", err))
		return
	}

	user.Password = ""
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: LoginResponse{Token: token, User: user}})
}

func (h *UserHandler) issueToken(user *models.AppUser) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.JWTSecret))
}
