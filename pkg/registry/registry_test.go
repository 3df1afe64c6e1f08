package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	reg := Default()

	require.Len(t, reg.Actions, 7)
	a, ok := reg.Find("recommend_category")
	require.True(t, ok)
	assert.Equal(t, "listing-assistant.recommend-category", a.TaskType)
	assert.True(t, a.Generative)

	score, ok := reg.Find("score_completeness")
	require.True(t, ok)
	assert.False(t, score.Generative)

	_, ok = reg.Find("translate")
	assert.False(t, ok)
}

func TestSchemas(t *testing.T) {
	docs, err := Default().Schemas()
	require.NoError(t, err)

	assert.Len(t, docs, 7)
	assert.Contains(t, docs["score_completeness"], `"images"`)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"bad json", `{`, "decode registry"},
		{"missing id", `{"actions":[{"workerName":"x"}]}`, "id is required"},
		{"duplicate", `{"actions":[
			{"id":"a_b","workerName":"a-b","taskType":"svc.a-b","inputSchema":{}},
			{"id":"a_b","workerName":"a-b","taskType":"svc.a-b","inputSchema":{}}]}`, "duplicate id"},
		{"worker mismatch", `{"actions":[{"id":"a_b","workerName":"ab","taskType":"svc.ab","inputSchema":{}}]}`, "does not match id"},
		{"task type mismatch", `{"actions":[{"id":"a_b","workerName":"a-b","taskType":"svc.other","inputSchema":{}}]}`, "does not end in"},
		{"no schema", `{"actions":[{"id":"a_b","workerName":"a-b","taskType":"svc.a-b"}]}`, "inputSchema is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "actions.json")
	require.NoError(t, os.WriteFile(path, actionsJSON, 0o644))

	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", reg.Version)

	_, err = LoadRegistry(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
