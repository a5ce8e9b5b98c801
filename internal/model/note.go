package model

import "time"

// Note はユーザーが所有するメモを表す。
// 所有ユーザーのセッション経由でのみ作成・一覧・削除される。
type Note struct {
	ID        string
	UserID    string
	Title     string
	Content   string
	CreatedAt time.Time
}
