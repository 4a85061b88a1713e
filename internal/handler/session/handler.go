package session

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	applog "github.com/zhouzirui/z-timer/backend/internal/log"
	"github.com/zhouzirui/z-timer/backend/internal/model/session"
	sessionService "github.com/zhouzirui/z-timer/backend/internal/service/session"
	"github.com/zhouzirui/z-timer/backend/pkg/utils"
)

// ValidationHeader carries the rejection kind on a 400 response; the body stays empty.
const ValidationHeader = "X-Validation-Error"

// maxBodyBytes 限制创建请求体大小
const maxBodyBytes = 64 << 10

// Handler 会话集合的HTTP处理器
type Handler struct {
	svc        *sessionService.Service
	collection string
}

// New creates a sessions handler. collection is the tag prefixed to ids in list responses.
func New(svc *sessionService.Service, collection string) *Handler {
	return &Handler{
		svc:        svc,
		collection: collection,
	}
}

// RegisterRoutes 注册会话相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/sessions", h.handleListSessions)
	r.Post("/sessions", h.handleCreateSession)
}

type createResponse struct {
	Timer session.Record `json:"timer"`
}

// handleListSessions 列出全部会话，id 带集合前缀
func (h *Handler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.List(r.Context())
	if err != nil {
		logger := applog.WithComponent("sessions")
		logger.Error().Err(err).Msg("list sessions failed")
		utils.RespondError(w, http.StatusInternalServerError, "failed to list sessions")
		return
	}

	for i := range records {
		records[i].ID = session.Address(h.collection, records[i].ID)
	}
	utils.RespondJSON(w, http.StatusOK, records)
}

// handleCreateSession 校验并保存会话，失败时返回空响应体的 400
func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	candidate, err := decodeCandidate(w, r)
	if err != nil {
		w.Header().Set(ValidationHeader, string(session.KindMissingField))
		utils.RespondEmpty(w, http.StatusBadRequest)
		return
	}

	record, err := h.svc.Create(r.Context(), candidate)
	if err != nil {
		var verr *session.ValidationError
		if errors.As(err, &verr) {
			w.Header().Set(ValidationHeader, string(verr.Kind))
			utils.RespondEmpty(w, http.StatusBadRequest)
			return
		}
		logger := applog.WithComponent("sessions")
		logger.Error().Err(err).Msg("create session failed")
		utils.RespondError(w, http.StatusInternalServerError, "failed to store session")
		return
	}

	utils.RespondJSON(w, http.StatusOK, createResponse{Timer: record})
}

// decodeCandidate 解析单个 JSON 对象，拒绝超长或带尾随内容的请求体
func decodeCandidate(w http.ResponseWriter, r *http.Request) (session.Candidate, error) {
	var candidate session.Candidate
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&candidate); err != nil {
		return session.Candidate{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return session.Candidate{}, errors.New("unexpected data after session object")
	}
	return candidate, nil
}
