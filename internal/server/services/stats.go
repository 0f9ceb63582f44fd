package services

import (
	"context"
	"fmt"
	"time"

	"github.com/betmaster21/blackjack-backend/internal/server/models"
	"github.com/betmaster21/blackjack-backend/internal/server/repositories/stats"
)

type StatsService struct {
	stats stats.Repository
}

func NewStatsService(repo stats.Repository) *StatsService {
	return &StatsService{stats: repo}
}

// StatInput is one validated gameplay record from the client. Optional
// fields stay nil when the client did not send them.
type StatInput struct {
	Result      string
	Mistakes    int
	NetPayout   *int
	HandsPlayed *int
	Details     map[string]any
}

// Save appends one gameplay record for the given subject. The timestamp is
// assigned here; records are never updated afterwards.
func (s *StatsService) Save(ctx context.Context, userID string, in StatInput) error {
	record := &models.StatRecord{
		UserID:      userID,
		Timestamp:   time.Now().Format(time.RFC3339Nano),
		Result:      in.Result,
		Mistakes:    in.Mistakes,
		NetPayout:   in.NetPayout,
		HandsPlayed: in.HandsPlayed,
		Details:     in.Details,
	}

	if err := s.stats.Insert(ctx, record); err != nil {
		return fmt.Errorf("error saving stats: %w", err)
	}
	return nil
}
