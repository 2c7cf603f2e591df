package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/DatzProject/I.Teaching-Ramlan/internal/models"
	appErrors "github.com/DatzProject/I.Teaching-Ramlan/pkg/errors"
)

const draftKeyPrefix = "absensi:draft:"

// DraftRepository stores monthly grid drafts with a TTL.
type DraftRepository interface {
	Get(ctx context.Context, id string) (*models.MonthlyDraft, error)
	Save(ctx context.Context, draft models.MonthlyDraft, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
	ForPeriod(ctx context.Context, month time.Month, year int) ([]models.MonthlyDraft, error)
	DeleteAll(ctx context.Context) error
}

// NewDraftRepository prefers Redis and falls back to process memory when no
// client is available.
func NewDraftRepository(client *redis.Client) DraftRepository {
	if client == nil {
		return NewMemoryDraftRepository()
	}
	return NewRedisDraftRepository(client)
}

// RedisDraftRepository keeps monthly grid drafts in Redis with a TTL.
type RedisDraftRepository struct {
	client *redis.Client
}

// NewRedisDraftRepository constructs the repository.
func NewRedisDraftRepository(client *redis.Client) *RedisDraftRepository {
	return &RedisDraftRepository{client: client}
}

// Get loads a draft by ID.
func (r *RedisDraftRepository) Get(ctx context.Context, id string) (*models.MonthlyDraft, error) {
	raw, err := r.client.Get(ctx, draftKeyPrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "draft not found")
		}
		return nil, fmt.Errorf("redis get draft %s: %w", id, err)
	}
	var draft models.MonthlyDraft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return nil, fmt.Errorf("unmarshal draft %s: %w", id, err)
	}
	return &draft, nil
}

// Save stores the draft, refreshing its TTL.
func (r *RedisDraftRepository) Save(ctx context.Context, draft models.MonthlyDraft, ttl time.Duration) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("marshal draft %s: %w", draft.ID, err)
	}
	if err := r.client.Set(ctx, draftKeyPrefix+draft.ID, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set draft %s: %w", draft.ID, err)
	}
	return nil
}

// Delete removes a draft. Missing drafts are not an error.
func (r *RedisDraftRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, draftKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("redis delete draft %s: %w", id, err)
	}
	return nil
}

// ForPeriod returns every draft pointed at month and year.
func (r *RedisDraftRepository) ForPeriod(ctx context.Context, month time.Month, year int) ([]models.MonthlyDraft, error) {
	var out []models.MonthlyDraft
	iter := r.client.Scan(ctx, 0, draftKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		raw, err := r.client.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, fmt.Errorf("redis get %s: %w", iter.Val(), err)
		}
		var draft models.MonthlyDraft
		if err := json.Unmarshal(raw, &draft); err != nil {
			continue
		}
		if draft.Month == month && draft.Year == year {
			out = append(out, draft)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan drafts: %w", err)
	}
	return out, nil
}

// DeleteAll removes every draft.
func (r *RedisDraftRepository) DeleteAll(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, draftKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("redis delete %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}

// MemoryDraftRepository is the in-process draft store used when Redis is not
// configured. Expired drafts are dropped lazily.
type MemoryDraftRepository struct {
	mu     sync.Mutex
	drafts map[string]memoryDraft
	now    func() time.Time
}

type memoryDraft struct {
	draft     models.MonthlyDraft
	expiresAt time.Time
}

// NewMemoryDraftRepository constructs an empty store.
func NewMemoryDraftRepository() *MemoryDraftRepository {
	return &MemoryDraftRepository{drafts: map[string]memoryDraft{}, now: time.Now}
}

func (r *MemoryDraftRepository) live(id string) (memoryDraft, bool) {
	entry, ok := r.drafts[id]
	if !ok {
		return memoryDraft{}, false
	}
	if !entry.expiresAt.IsZero() && !r.now().Before(entry.expiresAt) {
		delete(r.drafts, id)
		return memoryDraft{}, false
	}
	return entry, true
}

// cloneDraft copies the edit map so callers never share state with the store.
func cloneDraft(d models.MonthlyDraft) models.MonthlyDraft {
	edits := make(map[string]models.PendingEdit, len(d.Edits))
	for k, v := range d.Edits {
		edits[k] = v
	}
	d.Edits = edits
	return d
}

// Get loads a draft by ID.
func (r *MemoryDraftRepository) Get(_ context.Context, id string) (*models.MonthlyDraft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.live(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "draft not found")
	}
	draft := cloneDraft(entry.draft)
	return &draft, nil
}

// Save stores the draft, refreshing its TTL.
func (r *MemoryDraftRepository) Save(_ context.Context, draft models.MonthlyDraft, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry := memoryDraft{draft: cloneDraft(draft)}
	if ttl > 0 {
		entry.expiresAt = r.now().Add(ttl)
	}
	r.drafts[draft.ID] = entry
	return nil
}

// Delete removes a draft.
func (r *MemoryDraftRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.drafts, id)
	return nil
}

// ForPeriod returns every live draft pointed at month and year.
func (r *MemoryDraftRepository) ForPeriod(_ context.Context, month time.Month, year int) ([]models.MonthlyDraft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.MonthlyDraft
	for id := range r.drafts {
		entry, ok := r.live(id)
		if !ok {
			continue
		}
		if entry.draft.Month == month && entry.draft.Year == year {
			out = append(out, cloneDraft(entry.draft))
		}
	}
	return out, nil
}

// DeleteAll removes every draft.
func (r *MemoryDraftRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drafts = map[string]memoryDraft{}
	return nil
}
