// Package action performs the terminal operation on a selected image.
package action

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"go.nhat.io/aferocopy/v2"
)

// copyBufferSize is the buffer used for byte copies.
const copyBufferSize uint = 512 * 1024

// maxLinkDepth bounds symlink resolution of a source file.
const maxLinkDepth = 40

var (
	// ErrDestinationExists is returned under ConflictFail when the target is taken.
	ErrDestinationExists = errors.New("destination file already exists")
	// ErrMissingDestination is returned when Move or Copy has no directory.
	ErrMissingDestination = errors.New("destination directory is not set")
)

// Kind is the operation applied to every selected file.
type Kind int

const (
	// List only reports the file.
	List Kind = iota
	Move
	Copy
	Delete
)

func (k Kind) String() string {
	switch k {
	case Move:
		return "move"
	case Copy:
		return "copy"
	case Delete:
		return "delete"
	default:
		return "list"
	}
}

// NeedsDir reports whether the kind writes into a destination directory.
func (k Kind) NeedsDir() bool {
	return k == Move || k == Copy
}

// Conflict decides what happens when the destination path already exists.
type Conflict int

const (
	// ConflictOverwrite warns and replaces the existing file.
	ConflictOverwrite Conflict = iota
	// ConflictSkip warns and leaves both files alone.
	ConflictSkip
	// ConflictFail returns ErrDestinationExists.
	ConflictFail
)

func (c Conflict) String() string {
	switch c {
	case ConflictSkip:
		return "skip"
	case ConflictFail:
		return "fail"
	default:
		return "overwrite"
	}
}

// ParseConflict parses overwrite, skip or fail.
func ParseConflict(s string) (Conflict, error) {
	switch s {
	case "overwrite":
		return ConflictOverwrite, nil
	case "skip":
		return ConflictSkip, nil
	case "fail":
		return ConflictFail, nil
	}
	return ConflictOverwrite, fmt.Errorf("invalid conflict policy %q (want overwrite, skip or fail)", s)
}

// Outcome describes what Apply did with one file.
type Outcome struct {
	Kind        Kind
	Source      string
	Destination string // empty for List and Delete
	Size        int64  // bytes of the source file
	Skipped     bool   // destination conflict under ConflictSkip, or same file
}

// Dispatcher applies one Kind to source files.
type Dispatcher struct {
	Fs       afero.Fs
	Kind     Kind
	Dir      string
	Conflict Conflict
	DryRun   bool
	Log      logrus.FieldLogger
}

// Apply performs the configured operation on src.
func (d *Dispatcher) Apply(src string) (Outcome, error) {
	out := Outcome{Kind: d.Kind, Source: src}

	info, err := d.Fs.Stat(src)
	if err != nil {
		return out, fmt.Errorf("%s %s: %w", d.Kind, src, err)
	}
	out.Size = info.Size()

	switch d.Kind {
	case List:
		return out, nil
	case Delete:
		if d.DryRun {
			return out, nil
		}
		if err := d.Fs.Remove(src); err != nil {
			return out, fmt.Errorf("deleting %s: %w", src, err)
		}
		return out, nil
	case Move, Copy:
		return d.transfer(src, out)
	}
	return out, fmt.Errorf("unknown action %d", d.Kind)
}

// transfer handles Move and Copy into d.Dir.
func (d *Dispatcher) transfer(src string, out Outcome) (Outcome, error) {
	if d.Dir == "" {
		return out, fmt.Errorf("%s %s: %w", d.Kind, src, ErrMissingDestination)
	}
	dst := filepath.Join(d.Dir, filepath.Base(src))
	out.Destination = dst

	exists, err := afero.Exists(d.Fs, dst)
	if err != nil {
		return out, fmt.Errorf("checking %s: %w", dst, err)
	}
	if exists {
		if d.sameFile(src, dst) {
			d.logger().WithField("path", src).Warn("source and destination are the same file, skipping")
			out.Skipped = true
			return out, nil
		}
		switch d.Conflict {
		case ConflictFail:
			return out, fmt.Errorf("%s %s: %w: %s", d.Kind, src, ErrDestinationExists, dst)
		case ConflictSkip:
			d.logger().WithField("dest", dst).Warn("destination file already exists, skipping")
			out.Skipped = true
			return out, nil
		default:
			d.logger().WithField("dest", dst).Warn("destination file already exists")
		}
	}

	if d.DryRun {
		return out, nil
	}

	if err := d.Fs.MkdirAll(d.Dir, 0o755); err != nil {
		return out, fmt.Errorf("creating directory %s: %w", d.Dir, err)
	}

	// Symlinked sources are copied as the bytes they point at.
	target, linked, err := d.resolve(src)
	if err != nil {
		return out, fmt.Errorf("resolving %s: %w", src, err)
	}

	if d.Kind == Copy {
		if err := d.copyFile(target, dst); err != nil {
			return out, fmt.Errorf("copying %s to %s: %w", src, dst, err)
		}
		return out, nil
	}

	// A moved link leaves its target in place and takes a copy of it.
	if linked {
		if err := d.copyFile(target, dst); err != nil {
			return out, fmt.Errorf("moving %s to %s: %w", src, dst, err)
		}
		if err := d.Fs.Remove(src); err != nil {
			return out, fmt.Errorf("removing link %s after copy: %w", src, err)
		}
		return out, nil
	}

	// Rename first, fall back to copy + remove for cross-device moves.
	if err := d.Fs.Rename(src, dst); err != nil {
		if err := d.copyFile(src, dst); err != nil {
			return out, fmt.Errorf("moving %s to %s: %w", src, dst, err)
		}
		if err := d.Fs.Remove(src); err != nil {
			return out, fmt.Errorf("removing %s after copy: %w", src, err)
		}
	}
	return out, nil
}

// resolve follows symlinks on filesystems that expose them. It reports
// whether path itself was a link.
func (d *Dispatcher) resolve(path string) (string, bool, error) {
	lstater, ok := d.Fs.(afero.Lstater)
	if !ok {
		return path, false, nil
	}
	reader, ok := d.Fs.(afero.LinkReader)
	if !ok {
		return path, false, nil
	}

	linked := false
	for i := 0; i < maxLinkDepth; i++ {
		info, _, err := lstater.LstatIfPossible(path)
		if err != nil {
			return "", linked, err
		}
		if info.Mode()&os.ModeSymlink == 0 {
			return path, linked, nil
		}
		next, err := reader.ReadlinkIfPossible(path)
		if err != nil {
			return "", linked, err
		}
		if !filepath.IsAbs(next) {
			next = filepath.Join(filepath.Dir(path), next)
		}
		path, linked = next, true
	}
	return "", linked, fmt.Errorf("too many levels of symbolic links")
}

// sameFile reports whether src and dst name the same file. Paths are
// compared first; filesystems with inodes also catch aliased directories.
func (d *Dispatcher) sameFile(src, dst string) bool {
	if samePath(src, dst) {
		return true
	}
	a, err := d.Fs.Stat(src)
	if err != nil {
		return false
	}
	b, err := d.Fs.Stat(dst)
	if err != nil {
		return false
	}
	return os.SameFile(a, b)
}

func (d *Dispatcher) copyFile(src, dst string) error {
	return aferocopy.Copy(src, dst, aferocopy.Options{
		SrcFs:          d.Fs,
		DestFs:         d.Fs,
		Sync:           false,
		CopyBufferSize: copyBufferSize,
	})
}

func (d *Dispatcher) logger() logrus.FieldLogger {
	if d.Log == nil {
		return logrus.StandardLogger()
	}
	return d.Log
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
