package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache is the section-list memoization layer. It is injected into the
// services that read or invalidate it so tests can substitute Noop.
type Cache interface {
	Get(key string) (string, bool)
	Set(key string, value string, ttl time.Duration)
	Delete(key string)
	Flush()
}

// SectionsTTL matches the SETEX the web app issued against its hosted
// cache: one hour, invalidated explicitly on any section mutation.
const SectionsTTL = 3600 * time.Second

func SectionsKey(formUUID string) string {
	return "sections:" + formUUID
}

type Memory struct {
	c *gocache.Cache
}

func NewMemory() *Memory {
	return &Memory{c: gocache.New(SectionsTTL, 10*time.Minute)}
}

func (m *Memory) Get(key string) (string, bool) {
	v, ok := m.c.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (m *Memory) Set(key string, value string, ttl time.Duration) {
	m.c.Set(key, value, ttl)
}

func (m *Memory) Delete(key string) {
	m.c.Delete(key)
}

func (m *Memory) Flush() {
	m.c.Flush()
}

// Noop satisfies Cache without storing anything. Used in tests and when
// USE_SECTIONS_CACHE is off.
type Noop struct{}

func (Noop) Get(string) (string, bool)           { return "", false }
func (Noop) Set(string, string, time.Duration)   {}
func (Noop) Delete(string)                       {}
func (Noop) Flush()                              {}
