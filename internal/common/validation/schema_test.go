package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const draftSchema = `{
  "type": "object",
  "properties": {
    "title":  {"type": "string"},
    "images": {"type": "array", "items": {"type": "string"}},
    "price":  {"type": ["number", "string", "null"]}
  }
}`

func newTestSet(t *testing.T) *SchemaSet {
	t.Helper()
	set, err := Compile(map[string]string{"draft": draftSchema})
	require.NoError(t, err)
	return set
}

func TestValidateJSON(t *testing.T) {
	set := newTestSet(t)

	tests := []struct {
		name      string
		doc       string
		wantValid bool
		badField  string
	}{
		{"empty object", `{}`, true, ""},
		{"full draft", `{"title":"Lamp","images":["a.jpg"],"price":"12.50"}`, true, ""},
		{"images not strings", `{"images":[1,2]}`, false, "images.0"},
		{"title not string", `{"title":42}`, false, "title"},
		{"price bool", `{"price":true}`, false, "price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := set.ValidateJSON("draft", []byte(tt.doc))
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, res.Valid)
			if tt.wantValid {
				assert.NoError(t, res.Err())
				return
			}
			assert.True(t, res.HasErrors(tt.badField), "errors: %v", res.GetErrorMessages())
			assert.Error(t, res.Err())
		})
	}
}

func TestValidateValue(t *testing.T) {
	set := newTestSet(t)
	res, err := set.ValidateValue("draft", map[string]interface{}{"title": "Chair"})
	require.NoError(t, err)
	assert.True(t, res.Valid)
}

func TestUnknownSchemaAndBadDocument(t *testing.T) {
	set := newTestSet(t)
	_, err := set.ValidateJSON("missing", []byte(`{}`))
	assert.Error(t, err)

	_, err = set.ValidateJSON("draft", []byte(`{not json`))
	assert.Error(t, err)

	_, err = Compile(map[string]string{"broken": `{"type": 12}`})
	assert.Error(t, err)
	assert.Equal(t, []string{"draft"}, set.Names())
}
