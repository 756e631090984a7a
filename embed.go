package smartgoals

import "embed"

// ContentFS holds the markdown pages served by the app (help).
//
//go:embed content
var ContentFS embed.FS
