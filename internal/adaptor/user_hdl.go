package adaptor

import (
	"net/http"
	"strings"

	"marketplace/internal/dto/request"
	"marketplace/internal/usecase"
	"marketplace/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/text/language"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

func paginationFromQuery(r *http.Request) *request.PaginatedRequest {
	query := r.URL.Query()
	return request.NewPaginatedRequest(
		utils.ParseInt(query.Get("page"), 1),
		utils.ParseInt(query.Get("per_page"), request.DefaultPerPage),
	)
}

// GetProfile handles GET /api/account/profile (protected). The response is
// rendered in the user's own language when they picked one.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	user, err := h.service.Load(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get profile")
		return
	}

	ctx := usecase.ActivateLang(r.Context(), user)
	profile, err := h.service.GetProfile(ctx, userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get profile")
		return
	}

	if tag := utils.GetLanguageFromContext(ctx, language.Und); tag != language.Und {
		w.Header().Set("Content-Language", tag.String())
	}
	utils.ResponseSuccess(w, "Profile retrieved successfully", profile)
}

// UpdateProfile handles PATCH /api/account/profile (protected)
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update profile")
		return
	}

	utils.ResponseSuccess(w, "Profile updated successfully", profile)
}

// Reviews handles GET /api/account/reviews (protected)
func (h *UserHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	reviews, err := h.service.Reviews(r.Context(), userID, paginationFromQuery(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get user reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// MyApps handles GET /api/account/apps?n=8 (protected)
func (h *UserHandler) MyApps(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	n := utils.ParseInt(r.URL.Query().Get("n"), usecase.DefaultMyAppsCount)
	apps, err := h.service.MyApps(r.Context(), userID, n)
	if err != nil {
		handleServiceError(w, h.log, err, "get my apps")
		return
	}

	utils.ResponseSuccess(w, "success", apps)
}

// DeleteAccount handles DELETE /api/account (protected). The account is
// anonymized rather than removed so reviews and notes keep their rows.
func (h *UserHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.service.Anonymize(r.Context(), userID); err != nil {
		handleServiceError(w, h.log, err, "delete account")
		return
	}

	utils.ResponseSuccess(w, "Account deleted", nil)
}

// ListUsers handles GET /api/admin/users (admin only)
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	if email := strings.TrimSpace(r.URL.Query().Get("email")); email != "" {
		h.lookupByEmail(w, r, email)
		return
	}

	users, err := h.service.ListUsers(r.Context(), paginationFromQuery(r))
	if err != nil {
		handleServiceError(w, h.log, err, "list users")
		return
	}

	utils.ResponseSuccess(w, "Users retrieved successfully", users)
}

func (h *UserHandler) lookupByEmail(w http.ResponseWriter, r *http.Request, email string) {
	user, err := h.service.LookupByEmail(r.Context(), email)
	if err != nil {
		handleServiceError(w, h.log, err, "lookup user")
		return
	}

	utils.ResponseSuccess(w, "success", user)
}
