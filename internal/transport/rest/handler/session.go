package handler

import (
	"encoding/json"
	"net/http"

	"careervision/internal/apperrors"
	"careervision/internal/catalog"
	"careervision/internal/model"
	"careervision/internal/service"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Progress is the position within the question list
type Progress struct {
	Index   int     `json:"index"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

// SessionView is the client-facing rendering of a session snapshot
type SessionView struct {
	ID         string                `json:"id"`
	State      model.SessionState    `json:"state"`
	Failed     bool                  `json:"failed"`
	Progress   Progress              `json:"progress"`
	Question   *model.Question       `json:"question,omitempty"`
	Answers    model.AnswerSet       `json:"answers"`
	Scores     model.ScoreVector     `json:"scores,omitempty"`
	Analysis   *model.AnalysisResult `json:"analysis,omitempty"`
	CodeLabels []string              `json:"codeLabels,omitempty"`
	Profile    *model.UserProfile    `json:"profile,omitempty"`
	RecordID   string                `json:"recordId,omitempty"`
}

// AnswerRequest is the body of POST /v1/sessions/{id}/answers
type AnswerRequest struct {
	QuestionID int  `json:"questionId,omitempty"`
	Value      *int `json:"value"`
}

// SessionHandler handles the survey flow endpoints
type SessionHandler struct {
	sessionSvc *service.SessionService
	catalog    *catalog.Catalog
	logger     *zap.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionSvc *service.SessionService, cat *catalog.Catalog, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		sessionSvc: sessionSvc,
		catalog:    cat,
		logger:     logger,
	}
}

// Create handles POST /v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessionSvc.Create(r.Context())
	if err != nil {
		h.logger.Error("failed to create session", zap.Error(err))
		writeAppError(w, err, nil)
		return
	}
	writeJSON(w, http.StatusCreated, h.view(sess))
}

// Get handles GET /v1/sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessionSvc.Get(r.Context(), mux.Vars(r)["id"])
	h.respond(w, sess, err)
}

// Start handles POST /v1/sessions/{id}/start
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessionSvc.Start(r.Context(), mux.Vars(r)["id"])
	h.respond(w, sess, err)
}

// Restart handles POST /v1/sessions/{id}/restart
func (h *SessionHandler) Restart(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessionSvc.Restart(r.Context(), mux.Vars(r)["id"])
	h.respond(w, sess, err)
}

// Answer handles POST /v1/sessions/{id}/answers
func (h *SessionHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAppError(w, apperrors.NewValidation("", "invalid request body"), nil)
		return
	}
	if req.Value == nil {
		writeAppError(w, apperrors.NewValidation("value", "is required"), nil)
		return
	}

	sess, err := h.sessionSvc.Answer(r.Context(), mux.Vars(r)["id"], req.QuestionID, *req.Value)
	h.respond(w, sess, err)
}

// SubmitProfile handles POST /v1/sessions/{id}/profile
func (h *SessionHandler) SubmitProfile(w http.ResponseWriter, r *http.Request) {
	var profile model.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeAppError(w, apperrors.NewValidation("", "invalid request body"), nil)
		return
	}

	sess, _, err := h.sessionSvc.SubmitProfile(r.Context(), mux.Vars(r)["id"], profile)
	h.respond(w, sess, err)
}

// Delete handles DELETE /v1/sessions/{id}
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionSvc.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeAppError(w, err, nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) respond(w http.ResponseWriter, sess *model.Session, err error) {
	if err != nil {
		var view *SessionView
		if sess != nil {
			v := h.view(sess)
			view = &v
		}
		if apperrors.IsAnalysis(err) || apperrors.IsStorage(err) {
			h.logger.Warn("session action failed", zap.String("code", string(apperrors.CodeOf(err))), zap.Error(err))
		}
		writeAppError(w, err, view)
		return
	}
	writeJSON(w, http.StatusOK, h.view(sess))
}

func (h *SessionHandler) view(sess *model.Session) SessionView {
	total := h.catalog.Len()
	v := SessionView{
		ID:       sess.ID,
		State:    sess.State,
		Failed:   sess.Failed,
		Answers:  sess.Answers,
		Scores:   sess.Scores,
		Analysis: sess.Analysis,
		Profile:  sess.Profile,
		RecordID: sess.RecordID,
		Progress: Progress{Index: sess.Index, Total: total},
	}
	if v.Answers == nil {
		v.Answers = model.AnswerSet{}
	}
	if total > 0 {
		v.Progress.Percent = float64(len(sess.Answers)) / float64(total) * 100
	}
	if sess.State == model.SessionSurvey {
		if q, ok := h.catalog.Question(sess.Index); ok {
			v.Question = &q
		}
	}
	if sess.Analysis != nil {
		v.CodeLabels = h.catalog.ExpandCode(sess.Analysis.TopTwoCode)
	}
	return v
}
