package handler

import (
	"net/http"

	"careervision/internal/model"
	"careervision/internal/service"
	"careervision/internal/transport/rest/middleware"

	"go.uber.org/zap"
)

// RecordsResponse lists stored records, oldest first
type RecordsResponse struct {
	Records []*model.StorageRecord `json:"records"`
	Count   int                    `json:"count"`
}

// RecordHandler serves the administrative record viewer
type RecordHandler struct {
	recordSvc *service.RecordService
	logger    *zap.Logger
}

func NewRecordHandler(recordSvc *service.RecordService, logger *zap.Logger) *RecordHandler {
	return &RecordHandler{recordSvc: recordSvc, logger: logger}
}

// List handles GET /v1/admin/records
func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.recordSvc.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list records", zap.Error(err))
		writeAppError(w, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, RecordsResponse{Records: records, Count: len(records)})
}

// Clear handles DELETE /v1/admin/records
func (h *RecordHandler) Clear(w http.ResponseWriter, r *http.Request) {
	admin := middleware.GetAdmin(r.Context())
	if err := h.recordSvc.Clear(r.Context()); err != nil {
		h.logger.Error("failed to clear records", zap.String("admin", admin), zap.Error(err))
		writeAppError(w, err, nil)
		return
	}
	h.logger.Info("records cleared", zap.String("admin", admin))
	w.WriteHeader(http.StatusNoContent)
}
