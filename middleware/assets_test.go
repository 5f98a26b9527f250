package middleware

import (
	"ainrion_site_go/logger"
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeFileHash(t *testing.T) {
	fsys := fstest.MapFS{
		"css/test.css": {Data: []byte("body { color: red; }")},
	}

	hash, err := computeFileHash(fsys, "css/test.css")
	require.NoError(t, err)
	assert.Len(t, hash, 8)

	again, err := computeFileHash(fsys, "css/test.css")
	require.NoError(t, err)
	assert.Equal(t, hash, again)

	_, err = computeFileHash(fsys, "non_existent_file.css")
	assert.Error(t, err)
}

func TestComputeAssetVersions(t *testing.T) {
	fsys := fstest.MapFS{
		"css/style.css": {Data: []byte("css")},
		"js/contact.js": {Data: []byte("js")},
	}

	versions := computeAssetVersions(fsys, []string{"css/style.css", "js/contact.js", "js/missing.js"}, logger.NewNope())

	assert.Len(t, versions, 2)
	assert.Len(t, versions["css/style.css"], 8)
	assert.NotEqual(t, versions["css/style.css"], versions["js/contact.js"])
	_, ok := versions["js/missing.js"]
	assert.False(t, ok)
}

func TestGetAssetVersionDefault(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, "1", GetAssetVersion(ctx, "js/nonexistent.js"))
	assert.Equal(t, "/static/js/nonexistent.js?v=1", AssetURL(ctx, "js/nonexistent.js"))
}

func TestInitAssetVersions(t *testing.T) {
	fsys := fstest.MapFS{
		"css/style.css":      {Data: []byte("css")},
		"js/contact.js":      {Data: []byte("js")},
		"js/landing.js":      {Data: []byte("landing")},
		"images/favicon.svg": {Data: []byte("<svg/>")},
	}

	// assetVersionsOnce makes this effective once per process
	InitAssetVersions(fsys, logger.NewNope())

	ctx := context.Background()
	assert.NotEqual(t, "1", GetAssetVersion(ctx, "css/style.css"))
	assert.Contains(t, AssetURL(ctx, "js/contact.js"), "/static/js/contact.js?v=")
	assert.NotContains(t, AssetURL(ctx, "js/contact.js"), "?v=1")
}
