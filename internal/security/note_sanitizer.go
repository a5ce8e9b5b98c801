// Package security はアプリケーションのセキュリティ機能を提供する。
//
// NoteSanitizerService はユーザーが入力したメモ本文をサニタイズし、
// 保存型XSSなどのセキュリティリスクからユーザーを保護する。
// bluemondayライブラリを使用した許可リストベースのポリシーで、
// 最小限の整形タグのみを通過させる。
package security

import (
	"github.com/microcosm-cc/bluemonday"
)

// NoteSanitizerService はメモ本文のサニタイズ機能のインターフェースを定義する。
// メモの保存前に使用される。
type NoteSanitizerService interface {
	// Sanitize はメモ本文をサニタイズして安全なテキストを返す。
	// 許可タグ（p, br, ul, ol, li, blockquote, pre, code, strong, em）のみを通過させ、
	// script, iframe, styleタグおよびon*イベント属性を除去する。
	// 空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(raw string) string
}

// noteSanitizer はNoteSanitizerServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type noteSanitizer struct {
	policy *bluemonday.Policy
}

// NewNoteSanitizer はNoteSanitizerServiceの新しいインスタンスを生成する。
// ポリシーの内容:
//   - 許可タグ: p, br, ul, ol, li, blockquote, pre, code, strong, em
//   - リンク・画像・埋め込みは許可しない（メモは自分専用のテキスト）
//   - script, iframe, style等は許可リストに含めないことで自動的に除去される
//   - on*イベント属性はbluemondayのデフォルトで許可されないため除去される
func NewNoteSanitizer() *noteSanitizer {
	p := bluemonday.NewPolicy()

	p.AllowElements(
		"p", "br", "ul", "ol", "li",
		"blockquote", "pre", "code",
		"strong", "em",
	)

	return &noteSanitizer{
		policy: p,
	}
}

// Sanitize はメモ本文をサニタイズして安全なテキストを返す。
func (s *noteSanitizer) Sanitize(raw string) string {
	return s.policy.Sanitize(raw)
}

// compile-time interface check
var _ NoteSanitizerService = (*noteSanitizer)(nil)
