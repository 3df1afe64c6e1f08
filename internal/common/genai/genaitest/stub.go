// Package genaitest provides canned generators for handler tests.
package genaitest

import (
	"context"
	"sync"

	"listing-assistant/internal/common/genai"
)

// Stub returns the same completion for every call and records the prompts
// it was given.
type Stub struct {
	Completion genai.Completion

	mu      sync.Mutex
	prompts []string
}

// Demo answers like a client without credentials.
func Demo() *Stub {
	return &Stub{Completion: genai.Completion{DemoMode: true}}
}

// Reply answers successfully with content.
func Reply(content string) *Stub {
	return &Stub{Completion: genai.Completion{Success: true, Content: content}}
}

// Failing answers with a backend error.
func Failing(msg string) *Stub {
	return &Stub{Completion: genai.Completion{Error: msg}}
}

func (s *Stub) Generate(_ context.Context, prompt, _ string) genai.Completion {
	s.mu.Lock()
	s.prompts = append(s.prompts, prompt)
	s.mu.Unlock()
	return s.Completion
}

// Prompts returns every prompt received so far.
func (s *Stub) Prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.prompts...)
}
