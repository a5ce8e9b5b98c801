// Package stats は投稿の日次統計集計を提供する。
package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/hitoshi/memopad/internal/repository"
)

// DailyCount は1日分の投稿数を表す。
type DailyCount struct {
	Date  string `json:"date"` // UTCの暦日（YYYY-MM-DD）
	Count int    `json:"count"`
}

// Summary は集計のサマリーを表す。
type Summary struct {
	Total     int    `json:"total"`     // 全期間の投稿総数
	ThisMonth int    `json:"thisMonth"` // 今月の投稿数
	Month     string `json:"month"`     // 月の表示名（例: "March 2024"）
}

// Result は統計集計の結果を表す。
type Result struct {
	Statistics []DailyCount `json:"statistics"`
	Summary    Summary      `json:"summary"`
}

// Service は投稿統計のサービス層。
// 集計は全ユーザーの投稿を横断し、所有者でスコープしない。
type Service struct {
	postRepo repository.PostRepository
}

// NewService はServiceを生成する。
func NewService(postRepo repository.PostRepository) *Service {
	return &Service{
		postRepo: postRepo,
	}
}

// DailyPostCounts はnowが属するUTC月の日次投稿数を集計する。
// 月初からnowの日までの各暦日について1エントリを返し、投稿のない日は0で埋める。
// Totalは期間と無関係な全投稿数。
func (s *Service) DailyPostCounts(ctx context.Context, now time.Time) (*Result, error) {
	nowUTC := now.UTC()
	monthStart := time.Date(nowUTC.Year(), nowUTC.Month(), 1, 0, 0, 0, 0, time.UTC)

	createdAts, err := s.postRepo.ListCreatedBetween(ctx, monthStart, nowUTC)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	// 月初から今日までのゼロ埋め日次リストを構築する
	todayKey := formatDateUTC(nowUTC)
	statistics := []DailyCount{}
	index := map[string]int{}
	for d := monthStart; ; d = d.AddDate(0, 0, 1) {
		key := formatDateUTC(d)
		if key > todayKey {
			break
		}
		index[key] = len(statistics)
		statistics = append(statistics, DailyCount{Date: key, Count: 0})
	}

	// 投稿をUTCの暦日ごとにカウントして日次リストにマージする
	for _, createdAt := range createdAts {
		key := formatDateUTC(createdAt.UTC())
		if i, ok := index[key]; ok {
			statistics[i].Count++
		}
	}

	total, err := s.postRepo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}

	return &Result{
		Statistics: statistics,
		Summary: Summary{
			Total:     total,
			ThisMonth: len(createdAts),
			Month:     nowUTC.Format("January 2006"),
		},
	}, nil
}

// formatDateUTC は時刻をUTCの暦日キー（YYYY-MM-DD）に変換する。
func formatDateUTC(t time.Time) string {
	return t.Format("2006-01-02")
}
