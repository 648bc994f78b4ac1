package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/localjobs/localjobs-api/internal/domain"
	"github.com/localjobs/localjobs-api/internal/service"
)

type AdminHandler struct {
	adminService *service.AdminService
}

func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := service.ListUsersParams{
		Page:               1,
		Limit:              10,
		UserType:           domain.UserType(q.Get("userType")),
		VerificationStatus: q.Get("verificationStatus"),
	}

	if v := q.Get("page"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid page")
			return
		}
		params.Page = parsed
	}
	if v := q.Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		params.Limit = parsed
	}

	result, err := h.adminService.ListUsers(r.Context(), params)
	if err != nil {
		log.Printf("ERROR [AdminHandler.ListUsers] %v", err)
		respondError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	if result.Users == nil {
		result.Users = []*domain.User{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"users":   result.Users,
		"total":   result.Total,
		"page":    result.Page,
		"pages":   result.Pages,
	})
}

func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}

	user, err := h.adminService.GetUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "user not found")
			return
		}
		log.Printf("ERROR [AdminHandler.GetUser] %v", err)
		respondError(w, http.StatusInternalServerError, "failed to get user details")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}

// boolField distinguishes an absent or non-boolean field from a false one.
type boolField struct {
	IsVerified *bool `json:"isVerified"`
	IsActive   *bool `json:"isActive"`
}

func (h *AdminHandler) UpdateVerification(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}

	var req boolField
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IsVerified == nil {
		respondError(w, http.StatusBadRequest, "invalid verification status")
		return
	}

	if err := h.adminService.SetVerification(r.Context(), id, *req.IsVerified); err != nil {
		h.respondUserMutationError(w, "AdminHandler.UpdateVerification", "failed to update verification status", err)
		return
	}

	message := "User unverified successfully"
	if *req.IsVerified {
		message = "User verified successfully"
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": message,
	})
}

func (h *AdminHandler) UpdateActiveStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}

	var req boolField
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IsActive == nil {
		respondError(w, http.StatusBadRequest, "invalid active status")
		return
	}

	if err := h.adminService.SetActive(r.Context(), id, *req.IsActive); err != nil {
		h.respondUserMutationError(w, "AdminHandler.UpdateActiveStatus", "failed to update active status", err)
		return
	}

	message := "User suspended successfully"
	if *req.IsActive {
		message = "User activated successfully"
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": message,
	})
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}

	if err := h.adminService.DeleteUser(r.Context(), id); err != nil {
		h.respondUserMutationError(w, "AdminHandler.DeleteUser", "failed to delete user", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "User deleted successfully",
	})
}

func (h *AdminHandler) respondUserMutationError(w http.ResponseWriter, op, fallback string, err error) {
	if errors.Is(err, service.ErrUserNotFound) {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}
	log.Printf("ERROR [%s] %v", op, err)
	respondError(w, http.StatusInternalServerError, fallback)
}
