// Image Selector - A tool to select images by shape and size
//
// This tool scans a directory (non-recursively) for image files, decodes
// each one to read its pixel size, and selects the images matching the
// requested shape and size bounds. Selected images are then moved, copied,
// deleted, or simply listed.
//
// Features:
//   - Shape filters: square, vertical, landscape, or any
//   - Inclusive minimum and exclusive maximum width/height bounds
//   - Move (with cross-device fallback), copy, delete, or list
//   - Explicit policy for existing destination files
//   - Optional EXIF orientation handling
//   - Dry-run mode
//
// Usage:
//
//	image-selector -s ~/Pictures                     # List square images
//	image-selector -l --min-width 1920 -m wide ./in  # Move large landscapes
//	image-selector -v -c portraits ./in              # Copy vertical images
//	image-selector -a --max-width 100 -d ./in        # Delete small images
//	image-selector -a -d -n ./in                     # Preview a delete
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/afero"

	"image-selector/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "0.1.0-dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := cli.NewCommand(afero.NewOsFs(), version)
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
