package equipment

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/heavyrent/rental-service/internal/domain"
	"github.com/heavyrent/rental-service/pkg/dbmetrics"
)

const (
	cacheKeyPrefix   = "equipment:"
	notFoundMarker   = "notfound"
	notFoundCacheTTL = time.Minute
)

// CachedRepository serves GetByID from redis. Reads inside a transaction bypass the cache.
// Redis failures are logged and fall back to the database.
type CachedRepository struct {
	Store
	redis  *redis.Client
	ttl    time.Duration
	logger Logger
}

func NewCachedRepository(store Store, client *redis.Client, ttl time.Duration, logger Logger) *CachedRepository {
	return &CachedRepository{Store: store, redis: client, ttl: ttl, logger: logger}
}

// cachedEquipment is the redis representation of domain.Equipment.
type cachedEquipment struct {
	ID             uuid.UUID             `json:"id"`
	OwnerID        uuid.UUID             `json:"ownerId"`
	Name           string                `json:"name"`
	Category       string                `json:"category"`
	Description    *string               `json:"description,omitempty"`
	DailyRate      float64               `json:"dailyRate"`
	City           string                `json:"city"`
	Address        string                `json:"address"`
	Latitude       *float64              `json:"latitude,omitempty"`
	Longitude      *float64              `json:"longitude,omitempty"`
	Status         string                `json:"status"`
	Specifications domain.Specifications `json:"specifications"`
	Images         []string              `json:"images"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
	OwnerName      string                `json:"ownerName"`
	OwnerRating    float64               `json:"ownerRating"`
	OwnerReviews   int                   `json:"ownerReviews"`
}

func toCached(e *domain.Equipment) cachedEquipment {
	c := cachedEquipment{
		ID:             e.ID,
		OwnerID:        e.OwnerID,
		Name:           e.Name,
		Category:       e.Category,
		Description:    e.Description,
		DailyRate:      e.DailyRate,
		City:           e.City,
		Address:        e.Address,
		Latitude:       e.Latitude,
		Longitude:      e.Longitude,
		Status:         string(e.Status),
		Specifications: e.Specifications,
		Images:         e.Images,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
	if e.Owner != nil {
		c.OwnerName = e.Owner.FullName
		c.OwnerRating = e.Owner.Rating
		c.OwnerReviews = e.Owner.ReviewCount
	}
	return c
}

func (c cachedEquipment) toDomain() *domain.Equipment {
	return &domain.Equipment{
		ID:             c.ID,
		OwnerID:        c.OwnerID,
		Name:           c.Name,
		Category:       c.Category,
		Description:    c.Description,
		DailyRate:      c.DailyRate,
		City:           c.City,
		Address:        c.Address,
		Latitude:       c.Latitude,
		Longitude:      c.Longitude,
		Status:         domain.EquipmentStatus(c.Status),
		Specifications: c.Specifications,
		Images:         c.Images,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
		Owner: &domain.OwnerSummary{
			ID:          c.OwnerID,
			FullName:    c.OwnerName,
			Rating:      c.OwnerRating,
			ReviewCount: c.OwnerReviews,
		},
	}
}

func cacheKey(id uuid.UUID) string {
	return cacheKeyPrefix + id.String()
}

func (c *CachedRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Equipment, error) {
	if dbmetrics.IsInTransaction(ctx) {
		return c.Store.GetByID(ctx, id)
	}

	key := cacheKey(id)
	data, err := c.redis.Get(ctx, key).Bytes()

	switch {
	case err == nil:
		if string(data) == notFoundMarker {
			return nil, ErrEquipmentNotFound
		}
		var cached cachedEquipment
		if err := json.Unmarshal(data, &cached); err != nil {
			c.logger.Warn("equipment cache: failed to unmarshal %s (continuing with DB): %v", key, err)
			break
		}
		return cached.toDomain(), nil

	case errors.Is(err, redis.Nil):

	default:
		c.logger.Warn("equipment cache: redis error (continuing with DB): %v", err)
	}

	e, err := c.Store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrEquipmentNotFound) {
			if setErr := c.redis.Set(ctx, key, notFoundMarker, notFoundCacheTTL).Err(); setErr != nil {
				c.logger.Warn("equipment cache: failed to cache notfound for %s: %v", key, setErr)
			}
		}
		return nil, err
	}

	payload, err := json.Marshal(toCached(e))
	if err != nil {
		c.logger.Warn("equipment cache: failed to marshal %s: %v", key, err)
		return e, nil
	}
	if err := c.redis.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("equipment cache: failed to cache %s: %v", key, err)
	}
	return e, nil
}

// Create drops a cached not-found marker for the new id, if any.
func (c *CachedRepository) Create(ctx context.Context, e *domain.Equipment) (*domain.Equipment, error) {
	created, err := c.Store.Create(ctx, e)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, created.ID)
	return created, nil
}

func (c *CachedRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EquipmentStatus) error {
	if err := c.Store.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	c.invalidate(ctx, id)
	return nil
}

func (c *CachedRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if err := c.redis.Del(ctx, cacheKey(id)).Err(); err != nil {
		c.logger.Warn("equipment cache: failed to delete %s: %v", cacheKey(id), err)
	}
}
