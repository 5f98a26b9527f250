// Package emails holds the notification email templates. Templates are
// looked up as <name>_<lang>.html/.txt first, then <name>.html/.txt.
package emails

import "embed"

//go:embed *.html *.txt
var FS embed.FS
