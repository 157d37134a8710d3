package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/experttechtutors/tutor-leads/internal/entity"
	"github.com/experttechtutors/tutor-leads/internal/infra/metrics"
	"github.com/experttechtutors/tutor-leads/internal/usecase"
)

const QuickCallSuccessMessage = "We'll call you back within 30 minutes!"

type QuickCaller interface {
	Execute(ctx context.Context, input usecase.QuickCallInput) (*entity.QuickCallRequest, error)
}

type QuickCallHandler struct {
	UseCase QuickCaller
	Logger  *zap.Logger
}

func NewQuickCallHandler(uc QuickCaller, logger *zap.Logger) *QuickCallHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuickCallHandler{UseCase: uc, Logger: logger}
}

// Handle (POST /contact/quick-call)
func (h *QuickCallHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var input usecase.QuickCallInput
	form, err := decodeBody(w, r, &input)
	if err != nil {
		h.Logger.Warn("malformed quick call request", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, APIResponse{Success: false, Message: GenericAPIError})
		return
	}
	if form != nil {
		input = usecase.QuickCallInput{
			Name:    form.Get("name"),
			Phone:   form.Get("phone"),
			Subject: form.Get("subject"),
		}
	}

	if _, err := h.UseCase.Execute(r.Context(), input); err != nil {
		if de, ok := usecase.AsDomainError(err); ok {
			writeJSON(w, http.StatusBadRequest, APIResponse{Success: false, Errors: de.Violations})
			return
		}
		h.Logger.Error("quick call request error", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, APIResponse{Success: false, Message: GenericAPIError})
		return
	}

	metrics.RecordQuickCall()
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: QuickCallSuccessMessage})
}
