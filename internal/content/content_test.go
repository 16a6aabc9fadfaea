package content_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axrune/subscan/internal/content"
)

func TestEmpty(t *testing.T) {
	assert.True(t, content.Empty.IsEmpty())
	assert.Equal(t, "", content.Empty.ToString())
	_, ok := content.Empty.ToStructured()
	assert.False(t, ok)
}

func TestText(t *testing.T) {
	c := content.Text("hello world")
	assert.False(t, c.IsEmpty())
	assert.Equal(t, "hello world", c.ToString())
}

func TestText_EmptyStringIsEmptyVariant(t *testing.T) {
	assert.True(t, content.Text("").IsEmpty())
}

func TestStructured(t *testing.T) {
	c := content.Structured(map[string]any{"a": 1.0})
	assert.False(t, c.IsEmpty())
	doc, ok := c.ToStructured()
	require.True(t, ok)
	assert.Equal(t, map[string]any{"a": 1.0}, doc)
	assert.JSONEq(t, `{"a":1}`, c.ToString())
}

func TestParseJSON(t *testing.T) {
	c, err := content.ParseJSON(`{"found":["a.example.com"]}`)
	require.NoError(t, err)
	doc, ok := c.ToStructured()
	require.True(t, ok)
	m, ok := doc.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, m, "found")
}

func TestParseJSON_Invalid(t *testing.T) {
	_, err := content.ParseJSON(`not json`)
	require.Error(t, err)
}

func TestText_ToStructured(t *testing.T) {
	c := content.Text(`{"x":true}`)
	doc, ok := c.ToStructured()
	require.True(t, ok)
	assert.Equal(t, map[string]any{"x": true}, doc)
}

func TestText_ToStructured_Malformed(t *testing.T) {
	c := content.Text("not json at all")
	_, ok := c.ToStructured()
	assert.False(t, ok)
}
