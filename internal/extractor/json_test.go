package extractor_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axrune/subscan/internal/content"
	"github.com/axrune/subscan/internal/extractor"
)

func TestJSON_Extract_CustomWalker(t *testing.T) {
	walk := func(doc any, apex string) (map[string]struct{}, error) {
		m, ok := doc.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("unexpected shape")
		}
		found := make(map[string]struct{})
		list, _ := m["subdomains"].([]any)
		for _, v := range list {
			s, ok := v.(string)
			if ok {
				found[s] = struct{}{}
			}
		}
		return found, nil
	}

	c, err := content.ParseJSON(`{"subdomains":["a.example.com","b.example.com"]}`)
	require.NoError(t, err)

	j := extractor.JSON{Walk: walk}
	found, err := j.Extract(c, "example.com")
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{
		"a.example.com": {},
		"b.example.com": {},
	}, found)
}

func TestJSON_Extract_NotJSON(t *testing.T) {
	j := extractor.JSON{Walk: func(any, string) (map[string]struct{}, error) { return nil, nil }}
	_, err := j.Extract(content.Text("not json"), "example.com")
	assert.Error(t, err)
}
