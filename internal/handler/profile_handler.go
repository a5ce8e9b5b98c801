package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/memopad/internal/middleware"
	"github.com/hitoshi/memopad/internal/model"
)

// ProfileServiceInterface はプロフィールハンドラーが必要とするサービスインターフェース。
type ProfileServiceInterface interface {
	// GetProfile は指定ユーザーのプロフィールを取得する。
	GetProfile(ctx context.Context, userID string) (*model.User, error)
	// UpdateName は表示名を検証してから更新し、更新後のプロフィールを返す。
	UpdateName(ctx context.Context, userID, rawName string) (*model.User, error)
	// Withdraw はユーザーの退会処理を実行する。
	// notes、sessions、identities、userを単一トランザクションで削除する。
	Withdraw(ctx context.Context, userID string) error
}

// WithdrawalRecorder は退会メトリクスの記録インターフェース。
type WithdrawalRecorder interface {
	RecordWithdrawal()
}

// ProfileHandler はプロフィール管理のHTTPハンドラー。
type ProfileHandler struct {
	service ProfileServiceInterface
	config  AuthHandlerConfig
	metrics WithdrawalRecorder
}

// NewProfileHandler はProfileHandlerを生成する。
// configは退会時のセッションCookieクリアに使用する。metricsはnil可。
func NewProfileHandler(service ProfileServiceInterface, config AuthHandlerConfig, metrics WithdrawalRecorder) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		config:  config,
		metrics: metrics,
	}
}

// updateNameRequest は表示名更新リクエストのボディ。
type updateNameRequest struct {
	Name string `json:"name"`
}

// profileResponse はプロフィールのAPIレスポンス。
type profileResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
}

// GetProfile は認証済みユーザーのプロフィールを取得する。
// GET /api/profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	user, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toProfileResponse(user))
}

// UpdateName は表示名を更新する。
// PATCH /api/profile
func (h *ProfileHandler) UpdateName(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	var req updateNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError())
		return
	}

	user, err := h.service.UpdateName(r.Context(), userID, req.Name)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toProfileResponse(user))
}

// Withdraw はユーザーの退会処理を実行する。
// DELETE /api/profile
// 退会成功時はセッションCookieもクリアする。
func (h *ProfileHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	if err := h.service.Withdraw(r.Context(), userID); err != nil {
		handleServiceError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordWithdrawal()
	}

	// 退会したユーザーのセッションCookieをクリア
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.config.CookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	w.WriteHeader(http.StatusNoContent)
}

// toProfileResponse はmodel.UserからプロフィールAPIレスポンスに変換する。
func toProfileResponse(user *model.User) profileResponse {
	return profileResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Image: user.Image,
	}
}
