// Package assets embeds the demo texture bundle.
package assets

import "embed"

// Manifest is the path of the bundle manifest inside FS.
const Manifest = "manifest.json"

// FS holds the manifest and every image it references.
//
//go:embed manifest.json images
var FS embed.FS
