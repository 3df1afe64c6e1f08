package lexicon

import (
	"context"
	"sync"

	"listing-assistant/internal/common/errors"
)

// Cache holds one loaded lexicon for the life of the process. Callers share
// the returned snapshot and must not modify it. Clear drops the snapshot so
// the next Get reloads from the source.
type Cache struct {
	source Source

	mu  sync.Mutex
	lex *Lexicon
}

func NewCache(source Source) *Cache {
	if source == nil {
		source = Embedded()
	}
	return &Cache{source: source}
}

// Get returns the cached lexicon, loading it on first use. A failed load is
// not cached.
func (c *Cache) Get(ctx context.Context) (*Lexicon, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lex != nil {
		return c.lex, nil
	}
	lex, err := c.source.Load(ctx)
	if err != nil {
		return nil, errors.NewLexiconLoadFailedError(c.source.Name(), err)
	}
	c.lex = lex
	return lex, nil
}

// Clear invalidates the cached lexicon.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.lex = nil
	c.mu.Unlock()
}

// SourceName identifies where the lexicon comes from.
func (c *Cache) SourceName() string {
	return c.source.Name()
}
