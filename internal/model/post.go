package model

import "time"

// Post は統計ダッシュボード専用の投稿エンティティ。
// 統計集計は全ユーザーの投稿を対象とするため、セッションチェックを経由しない。
type Post struct {
	ID        string
	AuthorID  string
	Title     string
	Content   string
	Published bool
	CreatedAt time.Time
}
