package extractor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axrune/subscan/internal/content"
	"github.com/axrune/subscan/internal/extractor"
)

func TestHTML_Extract(t *testing.T) {
	c := content.Text(`<html><body><ul>
		<li class="host">sub1.example.com</li>
		<li class="host">sub2.example.com</li>
	</ul></body></html>`)

	h := extractor.HTML{Selector: "li.host"}
	found, err := h.Extract(c, "example.com")
	require.NoError(t, err)
	assert.Contains(t, found, "sub1.example.com")
	assert.Contains(t, found, "sub2.example.com")
}

func TestHTML_Extract_StripsLiteralPrefix(t *testing.T) {
	c := content.Text(`<div class="row">Found: noisy-sub.example.com</div>`)
	h := extractor.HTML{Selector: "div.row", Strip: []string{"Found: ", "noisy-"}}
	found, err := h.Extract(c, "example.com")
	require.NoError(t, err)
	assert.Contains(t, found, "sub.example.com")
}

func TestHTML_Extract_NoMatchingNodes(t *testing.T) {
	c := content.Text(`<html><body>nothing here</body></html>`)
	h := extractor.HTML{Selector: "li.host"}
	found, err := h.Extract(c, "example.com")
	require.NoError(t, err)
	assert.Empty(t, found)
}
