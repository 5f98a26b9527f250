// Package static holds the site's CSS, JavaScript and images, embedded into
// the server binary.
package static

import "embed"

//go:embed css js images
var FS embed.FS
