package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/localjobs/localjobs-api/internal/api/middleware"
	"github.com/localjobs/localjobs-api/internal/domain"
	"github.com/localjobs/localjobs-api/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type SignupRequest struct {
	Email        string              `json:"email"`
	Password     string              `json:"password"`
	FullName     string              `json:"fullName"`
	Phone        string              `json:"phone"`
	Address      string              `json:"address"`
	UserType     domain.UserType     `json:"userType"`
	BusinessName string              `json:"businessName"`
	BusinessInfo domain.BusinessInfo `json:"businessInfo"`
	Latitude     float64             `json:"latitude"`
	Longitude    float64             `json:"longitude"`
	City         string              `json:"city"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *domain.User `json:"user"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.UserType == "" {
		req.UserType = domain.UserTypeUser
	}

	result, err := h.authService.Signup(r.Context(), service.SignupInput{
		Email:        req.Email,
		Password:     req.Password,
		FullName:     req.FullName,
		Phone:        req.Phone,
		Address:      req.Address,
		UserType:     req.UserType,
		BusinessName: req.BusinessName,
		BusinessInfo: req.BusinessInfo,
		Location: domain.Location{
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
			City:      req.City,
			Address:   req.Address,
		},
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailExists):
			respondError(w, http.StatusBadRequest, "email already exists")
		case errors.Is(err, domain.ErrInvalidEmail),
			errors.Is(err, domain.ErrPasswordTooShort),
			errors.Is(err, domain.ErrNameTooShort),
			errors.Is(err, domain.ErrBusinessNameRequired),
			errors.Is(err, domain.ErrInvalidUserType):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("ERROR [AuthHandler.Signup] %v", err)
			respondError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	message := "Account created successfully"
	if result.User.UserType == domain.UserTypeBusiness {
		message = "Business account created. Pending verification."
	}

	respondJSON(w, http.StatusCreated, AuthResponse{
		Success: true,
		Message: message,
		Token:   result.Token,
		User:    result.User,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	result, err := h.authService.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		log.Printf("ERROR [AuthHandler.Login] %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "Login successful",
		Token:   result.Token,
		User:    result.User,
	})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "user not found")
			return
		}
		log.Printf("ERROR [AuthHandler.Me] %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}
