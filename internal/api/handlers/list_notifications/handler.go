package list_notifications

import (
	"net/http"
	"strconv"

	"github.com/rings-s/booking/internal/api/handlers"
	"github.com/rings-s/booking/internal/api/middleware"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidUnread = "unread должен быть true или false"
)

type Handler struct {
	service NotificationService
	logger  Logger
}

func NewHandler(service NotificationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/notifications?unread=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /notifications - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	unreadOnly := false
	if raw := r.URL.Query().Get("unread"); raw != "" {
		var err error
		if unreadOnly, err = strconv.ParseBool(raw); err != nil {
			h.logger.Warn("GET /notifications - Invalid unread: %v", err)
			handlers.RespondBadRequest(w, msgInvalidUnread)
			return
		}
	}

	result, err := h.service.List(r.Context(), userID, unreadOnly)
	if err != nil {
		h.logger.Error("GET /notifications - Failed to list notifications: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /notifications - Notifications retrieved: user_id=%d, count=%d, unread=%d",
		userID, len(result.Notifications), result.UnreadCount)
	handlers.RespondJSON(w, http.StatusOK, result)
}
