package cache

import (
	"context"
	"fmt"

	"github.com/adelinv/replyscore/internal/models"
	"github.com/adelinv/replyscore/pkg/utils"
)

// Store is the verdict memoization backend. Keys are content-hashed,
// so an unchanged reply always hits and a one-character edit always
// misses, independent of timestamps.
type Store interface {
	Get(ctx context.Context, key string) (*models.Verdict, bool, error)
	Set(ctx context.Context, key string, verdict models.Verdict) error
	Has(ctx context.Context, key string) bool
}

// BuildKey derives the cache key for a ticket's cleaned reply text.
func BuildKey(ticketID, replyText string) string {
	return fmt.Sprintf("%s:%s", ticketID, utils.ShortHash(replyText, 12))
}
