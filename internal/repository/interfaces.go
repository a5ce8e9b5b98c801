// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/hitoshi/memopad/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail は指定メールアドレスのユーザーを取得する。見つからない場合はnilを返す。
	// 複数IdPログインの同一ユーザー統合に使用する。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// Create はユーザーを作成する。
	Create(ctx context.Context, user *model.User) error

	// CreateWithIdentity はユーザーとidentityを同一トランザクションで作成する。
	CreateWithIdentity(ctx context.Context, user *model.User, identity *model.Identity) error

	// UpdateName は指定IDのユーザーの表示名を更新し、更新後のユーザーを返す。
	// ユーザーが存在しない場合はnilを返す。
	UpdateName(ctx context.Context, id, name string) (*model.User, error)

	// DeleteCascade は指定IDのユーザーを依存レコードごと削除する。
	// notes → sessions → identities → users の順に単一トランザクションで削除し、
	// いずれかが失敗した場合は全体をロールバックする。部分削除は決して観測されない。
	DeleteCascade(ctx context.Context, id string) error
}

// IdentityRepository は外部IdP紐付け情報の永続化インターフェース。
type IdentityRepository interface {
	// FindByProviderAndProviderUserID はproviderとprovider_user_idでidentityを検索する。
	// 見つからない場合はnilを返す。
	FindByProviderAndProviderUserID(ctx context.Context, provider, providerUserID string) (*model.Identity, error)

	// Create はidentityを作成する。
	// 既存ユーザーに別のIdPを紐付ける場合に使用する。
	Create(ctx context.Context, identity *model.Identity) error
}

// SessionRepository はセッションデータの永続化インターフェース。
type SessionRepository interface {
	// Create はセッションを作成する。
	Create(ctx context.Context, session *model.Session) error
	// FindByID は指定IDのセッションを取得する。期限切れの場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Session, error)
	// DeleteByID は指定IDのセッションを削除する。
	DeleteByID(ctx context.Context, id string) error
	// DeleteByUserID は指定ユーザーの全セッションを削除する。
	DeleteByUserID(ctx context.Context, userID string) error
}

// NoteRepository はメモデータの永続化インターフェース。
// すべての操作は所有ユーザーIDでスコープされる。
type NoteRepository interface {
	// ListByUserID は指定ユーザーのメモ一覧を作成日時の降順で返す。
	ListByUserID(ctx context.Context, userID string) ([]*model.Note, error)

	// Create はメモを作成する。
	Create(ctx context.Context, note *model.Note) error

	// DeleteByIDAndUserID は指定IDかつ指定ユーザー所有のメモを削除する。
	// 削除された場合はtrueを返す。他ユーザーのメモはヒットせずfalseになる。
	DeleteByIDAndUserID(ctx context.Context, id, userID string) (bool, error)
}

// PostRepository は統計用投稿データの永続化インターフェース。
type PostRepository interface {
	// ListCreatedBetween は[from, to]の期間に作成された投稿の作成日時を昇順で返す。
	// 統計集計は所有者でスコープしない（全ユーザー横断の集計）。
	ListCreatedBetween(ctx context.Context, from, to time.Time) ([]time.Time, error)

	// CountAll は全期間の投稿総数を返す。
	CountAll(ctx context.Context) (int, error)

	// Create は投稿を作成する。seedデータ投入で使用する。
	Create(ctx context.Context, post *model.Post) error
}

// TxBeginner はトランザクション開始用のインターフェース。
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}
