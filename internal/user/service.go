// Package user はプロフィール管理と退会処理のドメインロジックを提供する。
package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/hitoshi/memopad/internal/model"
	"github.com/hitoshi/memopad/internal/repository"
)

// 表示名の長さ制限（トリム後の文字数）。
const (
	nameMinLength = 2
	nameMaxLength = 50
)

// Service はプロフィール管理のサービス層。
// プロフィール取得・表示名更新・退会処理のビジネスロジックを提供する。
type Service struct {
	userRepo repository.UserRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(userRepo repository.UserRepository) *Service {
	return &Service{
		userRepo: userRepo,
	}
}

// GetProfile は指定ユーザーのプロフィールを取得する。
func (s *Service) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}
	return user, nil
}

// UpdateName は表示名を検証してから更新し、更新後のプロフィールを返す。
// 検証ルール: トリム後に空でないこと、2文字以上50文字以下であること。
// 永続化される値はトリム後の文字列。
func (s *Service) UpdateName(ctx context.Context, userID, rawName string) (*model.User, error) {
	trimmed := strings.TrimSpace(rawName)

	if trimmed == "" {
		return nil, model.NewInvalidNameError("表示名が空です")
	}

	length := utf8.RuneCountInString(trimmed)
	if length < nameMinLength {
		return nil, model.NewInvalidNameError(fmt.Sprintf("%d文字未満です", nameMinLength))
	}
	if length > nameMaxLength {
		return nil, model.NewInvalidNameError(fmt.Sprintf("%d文字を超えています", nameMaxLength))
	}

	user, err := s.userRepo.UpdateName(ctx, userID, trimmed)
	if err != nil {
		return nil, fmt.Errorf("failed to update name: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}

	slog.Info("user name updated",
		slog.String("user_id", userID),
	)

	return user, nil
}

// Withdraw はユーザーの退会処理を実行する。
// notes → sessions → identities → user を単一トランザクションで削除する。
// いずれかの削除が失敗した場合は全体がロールバックされ、
// ユーザーと依存レコードはすべて元のまま残る（部分削除は観測されない）。
func (s *Service) Withdraw(ctx context.Context, userID string) error {
	// ユーザー存在確認
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return model.NewUserNotFoundError()
	}

	slog.Info("account deletion started",
		slog.String("user_id", userID),
	)

	if err := s.userRepo.DeleteCascade(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	slog.Info("account deletion completed",
		slog.String("user_id", userID),
	)

	return nil
}
