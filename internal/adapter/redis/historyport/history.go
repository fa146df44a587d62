package historyport

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"gitlab.com/llmeet.net/internal/core/ports/primary"
	"gitlab.com/llmeet.net/internal/core/ports/secondary"
	"gitlab.com/llmeet.net/internal/domain"
)

const (
	historyKeyPrefix  = "history:"
	defaultExpiration = 24 * time.Hour
	maxEntries        = 50
)

var _ secondary.SubmissionHistory = (*HistoryRepository)(nil)

// HistoryRepository keeps each session's submissions as a capped Redis list per problem.
type HistoryRepository struct {
	redisClient *redis.Client
	logger      primary.Logger
	expiration  time.Duration
}

func NewHistoryRepository(redisClient *redis.Client, logger primary.Logger, expiration time.Duration) *HistoryRepository {
	if expiration <= 0 {
		expiration = defaultExpiration
	}
	return &HistoryRepository{
		redisClient: redisClient,
		logger:      logger,
		expiration:  expiration,
	}
}

func historyKey(sessionID, problemID string) string {
	return fmt.Sprintf("%s%s:%s", historyKeyPrefix, sessionID, problemID)
}

// Append stores the record and refreshes the list's expiry. Only the newest entries are kept.
func (r *HistoryRepository) Append(ctx context.Context, sessionID, problemID string, record *domain.SubmissionRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal submission record: %w", err)
	}

	key := historyKey(sessionID, problemID)
	pipe := r.redisClient.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.LTrim(ctx, key, -maxEntries, -1)
	pipe.Expire(ctx, key, r.expiration)
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Failed to append submission", "key", key, "error", err)
		return fmt.Errorf("failed to append submission: %w", err)
	}
	return nil
}

// List returns records oldest first. An unknown key is an empty history.
func (r *HistoryRepository) List(ctx context.Context, sessionID, problemID string) ([]*domain.SubmissionRecord, error) {
	key := historyKey(sessionID, problemID)
	items, err := r.redisClient.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read submission history: %w", err)
	}

	records := make([]*domain.SubmissionRecord, 0, len(items))
	for _, item := range items {
		var record domain.SubmissionRecord
		if err := json.Unmarshal([]byte(item), &record); err != nil {
			r.logger.Warn("Skipping corrupt history entry", "key", key, "error", err)
			continue
		}
		records = append(records, &record)
	}
	return records, nil
}
