package appfs

import "embed"

// FS holds the app's static assets (DB migrations).
//go:embed migrations
var FS embed.FS
