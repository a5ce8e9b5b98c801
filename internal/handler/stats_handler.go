package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/hitoshi/memopad/internal/stats"
)

// StatsServiceInterface は統計ハンドラーが必要とするサービスインターフェース。
type StatsServiceInterface interface {
	// DailyPostCounts はnowが属するUTC月の日次投稿数を集計する。
	DailyPostCounts(ctx context.Context, now time.Time) (*stats.Result, error)
}

// StatsHandler は投稿統計のHTTPハンドラー。
// このエンドポイントは全ユーザー横断の集計であり、認証を要求しない。
type StatsHandler struct {
	service StatsServiceInterface

	// now はテスト用に差し替え可能な現在時刻関数。
	now func() time.Time
}

// NewStatsHandler はStatsHandlerを生成する。
func NewStatsHandler(service StatsServiceInterface) *StatsHandler {
	return &StatsHandler{
		service: service,
		now:     time.Now,
	}
}

// statsSuccessResponse は統計エンドポイントの成功レスポンス。
type statsSuccessResponse struct {
	Success bool          `json:"success"`
	Data    *stats.Result `json:"data"`
}

// statsErrorResponse は統計エンドポイントの失敗レスポンス。
type statsErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// GetStatistics は今月の日次投稿統計を取得する。
// GET /api/statistics
func (h *StatsHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.DailyPostCounts(r.Context(), h.now())
	if err != nil {
		slog.Error("failed to aggregate statistics", slog.String("error", err.Error()))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(statsErrorResponse{
			Success: false,
			Error:   "統計の取得に失敗しました。",
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(statsSuccessResponse{
		Success: true,
		Data:    result,
	})
}
