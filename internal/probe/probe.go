// Package probe decides whether a file is an image and reads its pixel size.
package probe

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/spf13/afero"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUndecodable is returned when a file can't be decoded as an image.
var ErrUndecodable = errors.New("can't be identified as an image")

// imageExts maps known image extensions to their container format. Formats
// without a registered decoder are still listed so that such files are
// reported as undecodable rather than skipped.
var imageExts = map[string]string{
	".png":  "png",
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".jpe":  "jpeg",
	".jfif": "jpeg",
	".gif":  "gif",
	".bmp":  "bmp",
	".tif":  "tiff",
	".tiff": "tiff",
	".webp": "webp",
	".ico":  "ico",
	".tga":  "tga",
	".pnm":  "pnm",
	".pbm":  "pnm",
	".pgm":  "pnm",
	".ppm":  "pnm",
	".pam":  "pnm",
	".qoi":  "qoi",
	".hdr":  "hdr",
	".exr":  "openexr",
	".dds":  "dds",
	".ff":   "farbfeld",
	".avif": "avif",
}

// Known returns true if the file extension maps to a known image format.
func Known(path string) bool {
	_, ok := imageExts[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Dimensions is the pixel size of a decoded image.
type Dimensions struct {
	Width  uint32
	Height uint32
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// Prober decodes images from Fs.
type Prober struct {
	Fs afero.Fs
	// Orientation swaps width and height for images whose EXIF orientation
	// rotates them by 90 or 270 degrees.
	Orientation bool
}

// New returns a Prober reading from fs.
func New(fs afero.Fs, orientation bool) *Prober {
	return &Prober{Fs: fs, Orientation: orientation}
}

// Probe decodes the whole file and returns its dimensions. Every failure,
// including a missing or unreadable file, is reported as ErrUndecodable.
func (p *Prober) Probe(path string) (Dimensions, error) {
	f, err := p.Fs.Open(path)
	if err != nil {
		return Dimensions{}, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return Dimensions{}, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}

	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return Dimensions{}, fmt.Errorf("%w: empty image", ErrUndecodable)
	}
	d := Dimensions{Width: uint32(b.Dx()), Height: uint32(b.Dy())}

	if p.Orientation && p.rotated(path) {
		d.Width, d.Height = d.Height, d.Width
	}
	return d, nil
}

// rotated reads the EXIF orientation tag. Values 5-8 describe a transpose
// or a 90/270 degree rotation. Missing or broken EXIF means not rotated.
func (p *Prober) rotated(path string) bool {
	f, err := p.Fs.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return false
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return false
	}
	o, err := tag.Int(0)
	if err != nil {
		return false
	}
	return o >= 5 && o <= 8
}
