package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sync"
	"time"

	"arena-duel/internal/game"
)

// HTTPCatalog loads weapon specs from a remote catalog service and caches them
// with oldest-first eviction.
type HTTPCatalog struct {
	baseURL string

	mu      sync.RWMutex
	specs   map[string]*cachedSpec
	order   []string // insertion order (oldest first)
	maxSize int

	client *http.Client
	sem    chan struct{} // Semaphore for concurrent fetches
}

type cachedSpec struct {
	spec      game.WeaponSpec
	fetchedAt time.Time
}

const (
	DefaultMaxSpecs      = 64
	SpecTTL              = 10 * time.Minute
	MaxConcurrentFetches = 3
	FetchTimeout         = 5 * time.Second
)

// NewHTTPCatalog creates a catalog reading GET {baseURL}/api/weapons/{id}.
func NewHTTPCatalog(baseURL string, maxSize int) *HTTPCatalog {
	if maxSize <= 0 {
		maxSize = DefaultMaxSpecs
	}
	return &HTTPCatalog{
		baseURL: baseURL,
		specs:   make(map[string]*cachedSpec),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
		client: &http.Client{
			Timeout: FetchTimeout,
		},
		sem: make(chan struct{}, MaxConcurrentFetches),
	}
}

// Get returns a cached spec if present and fresh.
func (c *HTTPCatalog) Get(id string) (game.WeaponSpec, bool) {
	c.mu.RLock()
	cached, exists := c.specs[id]
	c.mu.RUnlock()

	if !exists {
		return game.WeaponSpec{}, false
	}

	if time.Since(cached.fetchedAt) > SpecTTL {
		c.mu.Lock()
		delete(c.specs, id)
		c.mu.Unlock()
		return game.WeaponSpec{}, false
	}

	return cached.spec, true
}

// Equip implements game.WeaponCatalog. It blocks on the network and must not be
// called from inside a tick.
func (c *HTTPCatalog) Equip(ctx context.Context, id string) (game.WeaponSpec, error) {
	if spec, ok := c.Get(id); ok {
		return spec, nil
	}

	select {
	case c.sem <- struct{}{}:
	case <-ctx.Done():
		return game.WeaponSpec{}, ctx.Err()
	}
	defer func() { <-c.sem }()

	spec, err := c.fetch(ctx, id)
	if err != nil {
		log.Printf("⚠️ Weapon fetch failed for %s: %v", id, err)
		return game.WeaponSpec{}, err
	}

	c.store(id, spec)
	log.Printf("✅ Weapon spec cached for %s", id)
	return spec, nil
}

func (c *HTTPCatalog) fetch(ctx context.Context, id string) (game.WeaponSpec, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/weapons/"+url.PathEscape(id), nil)
	if err != nil {
		return game.WeaponSpec{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return game.WeaponSpec{}, fmt.Errorf("fetch %q: %w", id, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return game.WeaponSpec{}, fmt.Errorf("equip %q: %w", id, game.ErrUnknownWeapon)
	default:
		return game.WeaponSpec{}, fmt.Errorf("fetch %q: status %d", id, resp.StatusCode)
	}

	var spec game.WeaponSpec
	if err := json.NewDecoder(resp.Body).Decode(&spec); err != nil {
		return game.WeaponSpec{}, fmt.Errorf("decode %q: %w", id, err)
	}
	if spec.ID != id || spec.MagazineSize <= 0 || spec.FireRate <= 0 {
		return game.WeaponSpec{}, fmt.Errorf("equip %q: invalid spec", id)
	}
	return spec, nil
}

func (c *HTTPCatalog) store(id string, spec game.WeaponSpec) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.specs[id]; !exists {
		c.forget(id)
		if len(c.specs) >= c.maxSize {
			c.evict()
		}
		c.order = append(c.order, id)
	}
	c.specs[id] = &cachedSpec{spec: spec, fetchedAt: time.Now()}
}

// evict removes the oldest cached spec
func (c *HTTPCatalog) evict() {
	for len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		if _, ok := c.specs[oldest]; ok {
			delete(c.specs, oldest)
			return
		}
	}
}

// forget drops a stale order entry left behind by TTL expiry.
func (c *HTTPCatalog) forget(id string) {
	for i, o := range c.order {
		if o == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

// Size returns the current cache size
func (c *HTTPCatalog) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.specs)
}
