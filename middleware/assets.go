package middleware

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"io/fs"
	"log/slog"
	"sync"

	"github.com/labstack/echo/v4"
)

// Versioned lists the static files whose URLs carry a content hash
var Versioned = []string{
	"css/style.css",
	"js/contact.js",
	"js/landing.js",
	"js/background.js",
	"images/favicon.svg",
}

var (
	assetVersions     map[string]string
	assetVersionsOnce sync.Once
)

// InitAssetVersions computes file hashes for cache busting at startup
func InitAssetVersions(fsys fs.FS, logger *slog.Logger) {
	assetVersionsOnce.Do(func() {
		assetVersions = computeAssetVersions(fsys, Versioned, logger)
		logger.Info("asset versions initialized", slog.Int("files", len(assetVersions)))
	})
}

func computeAssetVersions(fsys fs.FS, paths []string, logger *slog.Logger) map[string]string {
	versions := make(map[string]string, len(paths))
	for _, path := range paths {
		version, err := computeFileHash(fsys, path)
		if err != nil {
			logger.Warn("failed to hash asset", slog.String("path", path), slog.Any("error", err))
			continue
		}
		versions[path] = version
	}
	return versions
}

// computeFileHash returns the first 8 characters of the MD5 hash of a file
func computeFileHash(fsys fs.FS, path string) (string, error) {
	file, err := fsys.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hash.Sum(nil))[:8], nil
}

// GetAssetVersion returns the version hash for a static file, or "1" when it
// was not hashed at startup.
// Note: ctx parameter is for API consistency with other middleware helpers,
// but the version is computed once at startup and is global
func GetAssetVersion(ctx context.Context, path string) string {
	if version, ok := assetVersions[path]; ok {
		return version
	}
	return "1"
}

// AssetURL returns the cache-busted URL for a static file
func AssetURL(ctx context.Context, path string) string {
	return "/static/" + path + "?v=" + GetAssetVersion(ctx, path)
}

// StaticCacheControl sets long-lived caching for versioned asset URLs and a
// short one otherwise
func StaticCacheControl() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.QueryParam("v") != "" {
				c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
			} else {
				c.Response().Header().Set("Cache-Control", "public, max-age=3600")
			}
			return next(c)
		}
	}
}
