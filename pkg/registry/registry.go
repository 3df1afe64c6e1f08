// pkg/registry/registry.go
package registry

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

//go:embed actions.json
var actionsJSON []byte

// Default returns the built-in action registry.
func Default() *ActionRegistry {
	reg, err := Parse(actionsJSON)
	if err != nil {
		panic(fmt.Sprintf("embedded action registry is invalid: %v", err))
	}
	return reg
}

func LoadRegistry(path string) (*ActionRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes and validates a registry document.
func Parse(data []byte) (*ActionRegistry, error) {
	var reg ActionRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("decode registry: %w", err)
	}
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return &reg, nil
}

// Validate checks ids are unique and task types follow the worker name.
func (r *ActionRegistry) Validate() error {
	seen := make(map[string]bool, len(r.Actions))
	for i, a := range r.Actions {
		if a.ID == "" {
			return fmt.Errorf("action %d: id is required", i)
		}
		if seen[a.ID] {
			return fmt.Errorf("action %q: duplicate id", a.ID)
		}
		seen[a.ID] = true
		if a.WorkerName != strings.ReplaceAll(a.ID, "_", "-") {
			return fmt.Errorf("action %q: workerName %q does not match id", a.ID, a.WorkerName)
		}
		if !strings.HasSuffix(a.TaskType, "."+a.WorkerName) {
			return fmt.Errorf("action %q: taskType %q does not end in %q", a.ID, a.TaskType, a.WorkerName)
		}
		if a.InputSchema == nil {
			return fmt.Errorf("action %q: inputSchema is required", a.ID)
		}
	}
	return nil
}

// Find looks an action up by id.
func (r *ActionRegistry) Find(id string) (*Action, bool) {
	for i := range r.Actions {
		if r.Actions[i].ID == id {
			return &r.Actions[i], true
		}
	}
	return nil, false
}

// Schemas returns each action's input schema as a JSON document keyed by id.
func (r *ActionRegistry) Schemas() (map[string]string, error) {
	docs := make(map[string]string, len(r.Actions))
	for _, a := range r.Actions {
		raw, err := json.Marshal(a.InputSchema)
		if err != nil {
			return nil, fmt.Errorf("encode schema %q: %w", a.ID, err)
		}
		docs[a.ID] = string(raw)
	}
	return docs, nil
}
