// Package assets carries the sector maps built into the binaries.
package assets

import (
	"embed"
	"io/fs"
	"os"
)

//go:embed all:sectors
var builtinFS embed.FS

// FS returns dir as a filesystem, or the built-in assets when dir is empty.
// Sector maps live under "sectors" in both.
func FS(dir string) fs.FS {
	if dir == "" {
		return builtinFS
	}
	return os.DirFS(dir)
}
