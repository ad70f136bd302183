package clear_read_notifications

import (
	"net/http"

	"github.com/rings-s/booking/internal/api/handlers"
	"github.com/rings-s/booking/internal/api/middleware"
)

const msgMissingUserID = "отсутствует ID пользователя"

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

// Handle DELETE /notifications/read
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /notifications/read - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.ClearRead(r.Context(), userID)
	if err != nil {
		h.logger.Error("DELETE /notifications/read - Failed: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /notifications/read - Done: user_id=%d, affected=%d", userID, result.Affected)
	handlers.RespondJSON(w, http.StatusOK, result)
}
