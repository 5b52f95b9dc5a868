package sites

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryComplete(t *testing.T) {
	ids := IDs()
	assert.Len(t, ids, 11)

	for _, id := range ids {
		cfg, ok := Lookup(id)
		require.True(t, ok, id)
		assert.Equal(t, id, cfg.ID)
		assert.True(t, strings.HasPrefix(cfg.BaseURL, "https://"), id)
		assert.NotEmpty(t, cfg.Listing.Item, id)
		assert.NotEmpty(t, cfg.Listing.Title, id)
		assert.NotEmpty(t, cfg.Listing.Link, id)
		assert.NotEmpty(t, cfg.Article.Content, id)
		assert.Greater(t, cfg.MaxItems, 0, "traversal must be bounded: %s", id)
	}
}

func TestLookupUnknown(t *testing.T) {
	_, ok := Lookup("not-a-site")
	assert.False(t, ok)
}

func TestIDsSorted(t *testing.T) {
	ids := IDs()
	for i := 1; i < len(ids); i++ {
		assert.Less(t, ids[i-1], ids[i])
	}
}
