package utils

import (
	"encoding/json"
	"net/http"

	applog "github.com/zhouzirui/z-timer/backend/internal/log"
)

// RespondJSON 发送JSON响应
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger := applog.WithComponent("http")
		logger.Error().Err(err).Msg("failed to encode response")
	}
}

// RespondError 发送错误响应
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, map[string]string{"error": message})
}

// RespondEmpty 只发送状态码，不带响应体
func RespondEmpty(w http.ResponseWriter, status int) {
	w.WriteHeader(status)
}
