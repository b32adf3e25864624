package importer

import (
	"sync"
	"time"

	"catalogmart/internal/models"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// LookupCache holds resolved family and attribute lookups for the duration of
// an import run (and across closely spaced runs). Reads are lock-cheap and
// safe to share between concurrently validating rows; the creation lock
// serializes attribute find-or-create so two rows discovering the same column
// cannot race a duplicate (tenant, name) insert.
//
// The clock is injected so tests control expiry. A stale entry can at worst
// misclassify requiredness for a run; it can never fail a validation, because
// negative lookups are not cached.
type LookupCache struct {
	clock clockwork.Clock
	ttl   time.Duration

	mu         sync.RWMutex
	families   map[string]familyEntry
	attributes map[string]attributeEntry

	// Guards the find-or-create window in the validator.
	CreateMu sync.Mutex
}

type familyEntry struct {
	family    *models.Family
	expiresAt time.Time
}

type attributeEntry struct {
	attribute *models.Attribute
	expiresAt time.Time
}

func NewLookupCache(clock clockwork.Clock, ttl time.Duration) *LookupCache {
	return &LookupCache{
		clock:      clock,
		ttl:        ttl,
		families:   make(map[string]familyEntry),
		attributes: make(map[string]attributeEntry),
	}
}

func lookupKey(tenantID uuid.UUID, name string) string {
	return tenantID.String() + ":" + name
}

func (c *LookupCache) GetFamily(tenantID uuid.UUID, name string) (*models.Family, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.families[lookupKey(tenantID, name)]
	if !ok || c.clock.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.family, true
}

func (c *LookupCache) SetFamily(tenantID uuid.UUID, family *models.Family) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.families[lookupKey(tenantID, family.Name)] = familyEntry{
		family:    family,
		expiresAt: c.clock.Now().Add(c.ttl),
	}
}

func (c *LookupCache) GetAttribute(tenantID uuid.UUID, name string) (*models.Attribute, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.attributes[lookupKey(tenantID, name)]
	if !ok || c.clock.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.attribute, true
}

func (c *LookupCache) SetAttribute(tenantID uuid.UUID, attribute *models.Attribute) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attributes[lookupKey(tenantID, attribute.Name)] = attributeEntry{
		attribute: attribute,
		expiresAt: c.clock.Now().Add(c.ttl),
	}
}

// Sweep drops expired entries. Run periodically by the background scheduler.
func (c *LookupCache) Sweep() int {
	now := c.clock.Now()
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, entry := range c.families {
		if now.After(entry.expiresAt) {
			delete(c.families, key)
			removed++
		}
	}
	for key, entry := range c.attributes {
		if now.After(entry.expiresAt) {
			delete(c.attributes, key)
			removed++
		}
	}
	return removed
}
