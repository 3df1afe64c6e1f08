package lexicon

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Source produces a lexicon.
type Source interface {
	Load(ctx context.Context) (*Lexicon, error)
	Name() string
}

type embeddedSource struct{}

// Embedded serves the lexicon compiled into the binary.
func Embedded() Source { return embeddedSource{} }

func (embeddedSource) Load(context.Context) (*Lexicon, error) { return Default(), nil }
func (embeddedSource) Name() string                           { return "embedded" }

// FileSource reads a YAML or JSON lexicon file.
type FileSource struct {
	Path string
}

func (s FileSource) Load(context.Context) (*Lexicon, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon file: %w", err)
	}
	return Parse(data)
}

func (s FileSource) Name() string { return "file:" + s.Path }

// KeyValueStore is the slice of the Redis client the lexicon uses.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}

// RedisSource reads a lexicon document stored under Key. When the key does
// not exist the Fallback source is used.
type RedisSource struct {
	Store    KeyValueStore
	Key      string
	Fallback Source
}

func (s RedisSource) Load(ctx context.Context) (*Lexicon, error) {
	raw, err := s.Store.Get(ctx, s.Key)
	if errors.Is(err, redis.Nil) {
		if s.Fallback == nil {
			return nil, fmt.Errorf("lexicon key %q not found", s.Key)
		}
		return s.Fallback.Load(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("read lexicon key %q: %w", s.Key, err)
	}
	return Parse([]byte(raw))
}

func (s RedisSource) Name() string { return "redis:" + s.Key }

// Publish validates lex and stores it under key for RedisSource readers.
func Publish(ctx context.Context, store KeyValueStore, key string, lex *Lexicon) error {
	if err := lex.Validate(); err != nil {
		return err
	}
	data, err := lex.Encode("yaml")
	if err != nil {
		return err
	}
	if err := store.Set(ctx, key, string(data), 0); err != nil {
		return fmt.Errorf("store lexicon key %q: %w", key, err)
	}
	return nil
}
