package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"catalogmart/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type CacheService interface {
	// Product caching
	GetProduct(ctx context.Context, tenantID, productID uuid.UUID) (*models.Product, error)
	SetProduct(ctx context.Context, tenantID uuid.UUID, product *models.Product, ttl time.Duration) error
	DeleteProduct(ctx context.Context, tenantID, productID uuid.UUID) error

	// Import progress snapshots. Stored with the session retention TTL so a
	// late subscriber can still read the final summary after the in-memory
	// stream is gone.
	GetImportProgress(ctx context.Context, sessionID string) (*models.ImportProgress, error)
	SetImportProgress(ctx context.Context, progress *models.ImportProgress, ttl time.Duration) error
	DeleteImportProgress(ctx context.Context, sessionID string) error

	// Generic string operations
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept redis:// URLs as well as bare host:port.
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})
	return &redisCacheService{client: client}
}

func productKey(tenantID, productID uuid.UUID) string {
	return fmt.Sprintf("catalogmart:product:%s:%s", tenantID.String(), productID.String())
}

func progressKey(sessionID string) string {
	return fmt.Sprintf("catalogmart:import:%s", sessionID)
}

func (r *redisCacheService) GetProduct(ctx context.Context, tenantID, productID uuid.UUID) (*models.Product, error) {
	data, err := r.client.Get(ctx, productKey(tenantID, productID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var product models.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *redisCacheService) SetProduct(ctx context.Context, tenantID uuid.UUID, product *models.Product, ttl time.Duration) error {
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, productKey(tenantID, product.ID), data, ttl).Err()
}

func (r *redisCacheService) DeleteProduct(ctx context.Context, tenantID, productID uuid.UUID) error {
	return r.client.Del(ctx, productKey(tenantID, productID)).Err()
}

func (r *redisCacheService) GetImportProgress(ctx context.Context, sessionID string) (*models.ImportProgress, error) {
	data, err := r.client.Get(ctx, progressKey(sessionID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var progress models.ImportProgress
	if err := json.Unmarshal(data, &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *redisCacheService) SetImportProgress(ctx context.Context, progress *models.ImportProgress, ttl time.Duration) error {
	data, err := json.Marshal(progress)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, progressKey(progress.SessionID), data, ttl).Err()
}

func (r *redisCacheService) DeleteImportProgress(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, progressKey(sessionID)).Err()
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
