// Package catalog serves the product list. Reads go through an optional
// Redis cache; a missing or unreachable Redis disables caching without
// affecting correctness.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// cacheTTL bounds how stale a cached catalog read can get.
const cacheTTL = 5 * time.Minute

// Service handles catalog reads with caching
type Service struct {
	repo  Repository
	cache *redis.Client
}

// NewService creates a catalog service. cache may be nil to disable caching.
func NewService(repo Repository, cache *redis.Client) *Service {
	return &Service{repo: repo, cache: cache}
}

// NewCacheClient connects to Redis and returns a client, or nil when Redis
// is unreachable.
func NewCacheClient(addr, password string, db int) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("redis unreachable, catalog caching disabled", "addr", addr, "error", err)
		return nil
	}

	return client
}

// List returns all products, or only those matching the search term.
func (s *Service) List(ctx context.Context, search string) ([]Product, error) {
	if search != "" {
		// Search results are not cached; the term space is unbounded.
		return s.repo.Search(ctx, search)
	}

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, "products:all").Result(); err == nil {
			var products []Product
			if err := json.Unmarshal([]byte(cached), &products); err == nil {
				return products, nil
			}
		}
	}

	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, "products:all", products)

	return products, nil
}

// Get returns a single product by ID.
func (s *Service) Get(ctx context.Context, id int64) (*Product, error) {
	key := fmt.Sprintf("product:%d", id)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key).Result(); err == nil {
			var p Product
			if err := json.Unmarshal([]byte(cached), &p); err == nil {
				return &p, nil
			}
		}
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, key, p)

	return p, nil
}

// Seed populates the catalog with the default products when empty and
// drops any stale cached listing.
func (s *Service) Seed(ctx context.Context) error {
	if err := s.repo.Seed(ctx, DefaultProducts()); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.Del(ctx, "products:all").Err(); err != nil {
			slog.Warn("failed to invalidate catalog cache", "error", err)
		}
	}
	return nil
}

// Health reports cache connectivity.
func (s *Service) Health(ctx context.Context) map[string]string {
	if s.cache == nil {
		return map[string]string{"status": "disabled"}
	}
	if err := s.cache.Ping(ctx).Err(); err != nil {
		return map[string]string{"status": "down", "error": err.Error()}
	}
	return map[string]string{"status": "up"}
}

func (s *Service) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, cacheTTL).Err(); err != nil {
		slog.Warn("failed to cache catalog entry", "key", key, "error", err)
	}
}
