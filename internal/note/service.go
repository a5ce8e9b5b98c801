// Package note はメモ管理のドメインロジックを提供する。
package note

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/memopad/internal/model"
	"github.com/hitoshi/memopad/internal/repository"
	"github.com/hitoshi/memopad/internal/security"
)

// Service はメモ管理のサービス層。
// すべての操作は呼び出し元で認証済みのユーザーIDでスコープされる。
// セッションミドルウェアは本人確認のみを行うため、
// 行レベルの所有権はここと各リポジトリのWHERE句で保証する。
type Service struct {
	noteRepo  repository.NoteRepository
	sanitizer security.NoteSanitizerService
}

// NewService はServiceを生成する。
func NewService(noteRepo repository.NoteRepository, sanitizer security.NoteSanitizerService) *Service {
	return &Service{
		noteRepo:  noteRepo,
		sanitizer: sanitizer,
	}
}

// List は指定ユーザーのメモ一覧を作成日時の降順で返す。
// ページネーションは行わない。
func (s *Service) List(ctx context.Context, userID string) ([]*model.Note, error) {
	notes, err := s.noteRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

// Create はメモを作成する。
// タイトルまたは本文がトリム後に空の場合はバリデーションエラーを返す。
// 本文は保存前にサニタイズする。
func (s *Service) Create(ctx context.Context, userID, title, content string) (*model.Note, error) {
	if strings.TrimSpace(title) == "" {
		return nil, model.NewInvalidNoteError("タイトルが空です")
	}
	if strings.TrimSpace(content) == "" {
		return nil, model.NewInvalidNoteError("本文が空です")
	}

	note := &model.Note{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Content:   s.sanitizer.Sanitize(content),
		CreatedAt: time.Now(),
	}

	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	slog.Info("note created",
		slog.String("note_id", note.ID),
		slog.String("user_id", userID),
	)

	return note, nil
}

// Delete は指定ユーザー所有のメモを削除する。
// メモが存在しない場合、または他ユーザーの所有である場合は
// 区別せずNoteNotFoundエラーを返す。
func (s *Service) Delete(ctx context.Context, userID, noteID string) error {
	deleted, err := s.noteRepo.DeleteByIDAndUserID(ctx, noteID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	if !deleted {
		return model.NewNoteNotFoundError(noteID)
	}

	slog.Info("note deleted",
		slog.String("note_id", noteID),
		slog.String("user_id", userID),
	)

	return nil
}
