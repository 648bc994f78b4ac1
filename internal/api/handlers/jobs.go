package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/localjobs/localjobs-api/internal/api/middleware"
	"github.com/localjobs/localjobs-api/internal/domain"
	"github.com/localjobs/localjobs-api/internal/service"
)

type JobHandler struct {
	jobService  *service.JobService
	authService *service.AuthService
}

func NewJobHandler(jobService *service.JobService, authService *service.AuthService) *JobHandler {
	return &JobHandler{
		jobService:  jobService,
		authService: authService,
	}
}

type CreateJobRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Price       float64  `json:"price"`
	JobType     string   `json:"jobType"`
	Duration    string   `json:"duration"`
	ImageURL    string   `json:"imageUrl"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	City        string   `json:"city"`
	Address     string   `json:"address"`
	MapURL      string   `json:"mapUrl"`
}

type UpdateJobRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	Tags        []string         `json:"tags"`
	Price       *float64         `json:"price"`
	JobType     *string          `json:"jobType"`
	Duration    *string          `json:"duration"`
	ImageURL    *string          `json:"imageUrl"`
	Status      *string          `json:"status"`
	Location    *domain.Location `json:"location"`
}

type JobsListResponse struct {
	Success bool          `json:"success"`
	Jobs    []*domain.Job `json:"jobs"`
	Total   int64         `json:"total"`
	Page    int           `json:"page"`
	Limit   int           `json:"limit"`
}

// List is the public job search endpoint. Malformed numeric filters are
// rejected instead of silently coerced; values that parse but fall outside
// the allowed bounds are clamped by the service.
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := service.SearchParams{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		City:     q.Get("city"),
		Page:     1,
		Limit:    20,
	}

	if v := q.Get("minPrice"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid minPrice")
			return
		}
		params.MinPrice = &price
	}
	if v := q.Get("maxPrice"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid maxPrice")
			return
		}
		params.MaxPrice = &price
	}
	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid page")
			return
		}
		params.Page = page
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		params.Limit = limit
	}

	result, err := h.jobService.Search(r.Context(), params)
	if err != nil {
		log.Printf("ERROR [JobHandler.List] %v", err)
		respondError(w, http.StatusInternalServerError, "failed to fetch jobs")
		return
	}

	if result.Jobs == nil {
		result.Jobs = []*domain.Job{}
	}

	respondJSON(w, http.StatusOK, JobsListResponse{
		Success: true,
		Jobs:    result.Jobs,
		Total:   result.Total,
		Page:    result.Page,
		Limit:   result.Limit,
	})
}

// Get returns a single job and bumps its view counter. A bearer token is
// optional here; when one is present and valid, the response reports whether
// the caller has saved the job.
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "job not found")
		return
	}

	var viewerID *uuid.UUID
	if userID, ok := h.optionalAuthUser(r); ok {
		viewerID = &userID
	}

	job, isSaved, err := h.jobService.GetJob(r.Context(), id, viewerID)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			respondError(w, http.StatusNotFound, "job not found")
			return
		}
		log.Printf("ERROR [JobHandler.Get] %v", err)
		respondError(w, http.StatusInternalServerError, "failed to fetch job details")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"job":     job,
		"isSaved": isSaved,
	})
}

func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	owner, err := h.authService.GetUserByID(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	var req CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	job, err := h.jobService.CreateJob(r.Context(), owner, service.CreateJobInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Tags:        req.Tags,
		Price:       req.Price,
		JobType:     domain.JobType(req.JobType),
		Duration:    req.Duration,
		ImageURL:    req.ImageURL,
		Location: domain.Location{
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
			City:      req.City,
			Address:   req.Address,
			MapURL:    req.MapURL,
		},
	})
	if err != nil {
		if isJobValidationError(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("ERROR [JobHandler.Create] %v", err)
		respondError(w, http.StatusInternalServerError, "failed to create job")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Job created successfully",
		"job":     job,
	})
}

func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	actorID, role, ok := requestActor(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	jobID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "job not found")
		return
	}

	var req UpdateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := service.UpdateJobInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Tags:        req.Tags,
		Price:       req.Price,
		Duration:    req.Duration,
		ImageURL:    req.ImageURL,
		Location:    req.Location,
	}
	if req.JobType != nil {
		jobType := domain.JobType(*req.JobType)
		input.JobType = &jobType
	}
	if req.Status != nil {
		status := domain.JobStatus(*req.Status)
		input.Status = &status
	}

	job, err := h.jobService.UpdateJob(r.Context(), actorID, role, jobID, input)
	if err != nil {
		h.respondJobMutationError(w, "JobHandler.Update", "failed to update job", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Job updated successfully",
		"job":     job,
	})
}

func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, role, ok := requestActor(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	jobID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "job not found")
		return
	}

	if err := h.jobService.DeleteJob(r.Context(), actorID, role, jobID); err != nil {
		h.respondJobMutationError(w, "JobHandler.Delete", "failed to delete job", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Job deleted successfully",
	})
}

type SaveJobRequest struct {
	JobID string `json:"jobId"`
}

func (h *JobHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req SaveJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		respondError(w, http.StatusNotFound, "job not found")
		return
	}

	if err := h.jobService.SaveJob(r.Context(), userID, jobID); err != nil {
		switch {
		case errors.Is(err, domain.ErrJobNotFound):
			respondError(w, http.StatusNotFound, "job not found")
		case errors.Is(err, domain.ErrJobAlreadySaved):
			respondError(w, http.StatusBadRequest, "job already saved")
		default:
			log.Printf("ERROR [JobHandler.Save] %v", err)
			respondError(w, http.StatusInternalServerError, "failed to save job")
		}
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Job saved successfully",
	})
}

func (h *JobHandler) Unsave(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	jobID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "job not found")
		return
	}

	if err := h.jobService.UnsaveJob(r.Context(), userID, jobID); err != nil {
		log.Printf("ERROR [JobHandler.Unsave] %v", err)
		respondError(w, http.StatusInternalServerError, "failed to unsave job")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Job unsaved successfully",
	})
}

func (h *JobHandler) Favorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	page, limit := 1, 20
	if v := r.URL.Query().Get("page"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid page")
			return
		}
		page = parsed
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	result, err := h.jobService.ListFavorites(r.Context(), userID, page, limit)
	if err != nil {
		log.Printf("ERROR [JobHandler.Favorites] %v", err)
		respondError(w, http.StatusInternalServerError, "failed to fetch saved jobs")
		return
	}

	if result.Favorites == nil {
		result.Favorites = []*domain.Favorite{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"jobs":    result.Favorites,
		"total":   result.Total,
		"page":    result.Page,
		"limit":   result.Limit,
	})
}

// optionalAuthUser extracts the caller from a bearer token when one is
// present. Missing or invalid tokens fall back to anonymous rather than an
// error, so public endpoints can personalize without requiring auth.
func (h *JobHandler) optionalAuthUser(r *http.Request) (uuid.UUID, bool) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return uuid.Nil, false
	}

	claims, err := h.authService.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return uuid.Nil, false
	}

	sub, ok := (*claims)["sub"].(string)
	if !ok {
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, false
	}

	return userID, true
}

func (h *JobHandler) respondJobMutationError(w http.ResponseWriter, op, fallback string, err error) {
	switch {
	case errors.Is(err, domain.ErrJobNotFound):
		respondError(w, http.StatusNotFound, "job not found")
	case errors.Is(err, service.ErrNotJobOwner):
		respondError(w, http.StatusForbidden, "not authorized to modify this job")
	case isJobValidationError(err):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("ERROR [%s] %v", op, err)
		respondError(w, http.StatusInternalServerError, fallback)
	}
}

func requestActor(r *http.Request) (uuid.UUID, domain.UserType, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		return uuid.Nil, "", false
	}
	role, ok := middleware.GetUserRole(r.Context())
	if !ok {
		return uuid.Nil, "", false
	}
	return userID, role, true
}

func isJobValidationError(err error) bool {
	return errors.Is(err, domain.ErrTitleTooShort) ||
		errors.Is(err, domain.ErrDescriptionTooShort) ||
		errors.Is(err, domain.ErrNegativePrice) ||
		errors.Is(err, domain.ErrInvalidJobType) ||
		errors.Is(err, domain.ErrInvalidJobStatus)
}
