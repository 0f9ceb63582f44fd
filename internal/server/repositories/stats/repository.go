// Package stats persists append-only gameplay records in the stats table.
package stats

import (
	"context"

	"github.com/betmaster21/blackjack-backend/internal/server/models"
)

// Repository is the stats store contract: insert only, keyed by
// (userId, timestamp). No update or delete operations exist.
type Repository interface {
	Insert(ctx context.Context, record *models.StatRecord) error
}
