package adaptor

import (
	"net/http"

	"marketplace/internal/dto/request"
	"marketplace/internal/usecase"
	"marketplace/pkg/utils"

	"go.uber.org/zap"
)

type AccessHandler struct {
	service usecase.AccessService
	log     *zap.Logger
}

func NewAccessHandler(service usecase.AccessService, log *zap.Logger) *AccessHandler {
	return &AccessHandler{
		service: service,
		log:     log.With(zap.String("handler", "access")),
	}
}

// ListGroups handles GET /api/admin/groups (admin only)
func (h *AccessHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.service.ListGroups(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list groups")
		return
	}

	utils.ResponseSuccess(w, "success", groups)
}

// CreateGroup handles POST /api/admin/groups (admin only)
func (h *AccessHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGroupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	group, err := h.service.CreateGroup(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create group")
		return
	}

	utils.ResponseCreated(w, "Group created", group)
}

// AddMember handles POST /api/admin/groups/{id}/members (admin only)
func (h *AccessHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	groupID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req request.UserEmailRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.AddMember(r.Context(), groupID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "add group member")
		return
	}

	utils.ResponseCreated(w, "Member added", user)
}

// RemoveMember handles DELETE /api/admin/groups/{id}/members/{userID} (admin only)
func (h *AccessHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	groupID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	userID, ok := uuidParam(w, r, "userID")
	if !ok {
		return
	}

	if err := h.service.RemoveMember(r.Context(), groupID, userID); err != nil {
		handleServiceError(w, h.log, err, "remove group member")
		return
	}

	utils.ResponseSuccess(w, "Member removed", nil)
}
