package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"image-selector/internal/action"
	"image-selector/internal/logging"
	"image-selector/internal/runner"
	"image-selector/internal/selection"
)

// bound is an optional uint flag; Set marks it as given.
type bound struct {
	value uint32
	set   bool
}

func (b bound) ptr() *uint32 {
	if !b.set {
		return nil
	}
	v := b.value
	return &v
}

// Options holds the parsed command line.
type Options struct {
	Source string

	Square    bool
	Vertical  bool
	Landscape bool
	AnyShape  bool

	MinWidth  bound
	MinHeight bound
	MaxWidth  bound
	MaxHeight bound
	Width     bound
	Height    bound

	MoveTo string
	CopyTo string
	Delete bool
	// moveSet and copySet record that -m or -c was given, even with "".
	moveSet bool
	copySet bool

	Conflict    action.Conflict
	KeepGoing   bool
	DryRun      bool
	Orientation bool
	Verbose     bool
	Color       logging.ColorMode
}

// Validate checks flag combinations that cobra can't express.
func (o *Options) Validate() error {
	if o.Source == "" {
		return errors.New("source path is required")
	}
	if o.Vertical && o.Landscape {
		return errors.New("vertical and landscape can't be set together")
	}
	if o.AnyShape && (o.Square || o.Vertical || o.Landscape) {
		return errors.New("--any-shape can't be combined with a shape flag")
	}
	actions := 0
	for _, set := range []bool{o.moveSet, o.copySet, o.Delete} {
		if set {
			actions++
		}
	}
	if actions > 1 {
		return errors.New("only one of --move, --copy and --delete can be set")
	}
	if (o.moveSet && o.MoveTo == "") || (o.copySet && o.CopyTo == "") {
		return action.ErrMissingDestination
	}
	if o.Width.set && (o.MinWidth.set || o.MaxWidth.set) {
		return errors.New("--width can't be combined with --min-width or --max-width")
	}
	if o.Height.set && (o.MinHeight.set || o.MaxHeight.set) {
		return errors.New("--height can't be combined with --min-height or --max-height")
	}
	return nil
}

// Criteria lowers the shape and size flags.
func (o *Options) Criteria() (selection.Criteria, error) {
	shape, err := selection.ShapeFromFlags(o.Square, o.Vertical, o.Landscape)
	if err != nil {
		return selection.Criteria{}, err
	}
	if o.AnyShape {
		shape = selection.ShapeAny
	}

	c := selection.Criteria{
		Shape:     shape,
		MinWidth:  o.MinWidth.ptr(),
		MinHeight: o.MinHeight.ptr(),
		MaxWidth:  o.MaxWidth.ptr(),
		MaxHeight: o.MaxHeight.ptr(),
	}
	if o.Width.set {
		c.MinWidth, c.MaxWidth = exact(o.Width.value)
	}
	if o.Height.set {
		c.MinHeight, c.MaxHeight = exact(o.Height.value)
	}
	return c, nil
}

// exact turns "equal to n" into the inclusive/exclusive pair [n, n+1).
func exact(n uint32) (*uint32, *uint32) {
	lo, hi := n, n+1
	if hi == 0 {
		// n is MaxUint32, no upper bound can exclude anything larger
		return &lo, nil
	}
	return &lo, &hi
}

// Action returns the action kind and its destination directory.
func (o *Options) Action() (action.Kind, string) {
	switch {
	case o.moveSet:
		return action.Move, o.MoveTo
	case o.copySet:
		return action.Copy, o.CopyTo
	case o.Delete:
		return action.Delete, ""
	}
	return action.List, ""
}

// RunnerOptions validates o and builds the runner configuration.
func (o *Options) RunnerOptions(fs afero.Fs, log logrus.FieldLogger) (runner.Options, error) {
	if err := o.Validate(); err != nil {
		return runner.Options{}, err
	}
	criteria, err := o.Criteria()
	if err != nil {
		return runner.Options{}, err
	}
	kind, dir := o.Action()

	policy := runner.StopOnError
	if o.KeepGoing {
		policy = runner.ContinueOnError
	}

	return runner.Options{
		Fs:          fs,
		SourceDir:   o.Source,
		Criteria:    criteria,
		Action:      kind,
		Destination: dir,
		Conflict:    o.Conflict,
		Orientation: o.Orientation,
		DryRun:      o.DryRun,
		OnError:     policy,
		Log:         log,
	}, nil
}

// pflag.Value adapters so the enum types can be used with Flags().Var.

type boundValue struct{ p *bound }

func (b *boundValue) String() string {
	if !b.p.set {
		return ""
	}
	return strconv.FormatUint(uint64(b.p.value), 10)
}

func (b *boundValue) Set(s string) error {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return fmt.Errorf("invalid size %q: want a non-negative integer", s)
	}
	b.p.value, b.p.set = uint32(v), true
	return nil
}

func (b *boundValue) Type() string { return "uint" }

type conflictValue struct{ p *action.Conflict }

func (c *conflictValue) String() string { return c.p.String() }

func (c *conflictValue) Set(s string) error {
	v, err := action.ParseConflict(s)
	if err != nil {
		return err
	}
	*c.p = v
	return nil
}

func (c *conflictValue) Type() string { return "policy" }

type colorValue struct{ p *logging.ColorMode }

func (c *colorValue) String() string { return string(*c.p) }

func (c *colorValue) Set(s string) error {
	v, err := logging.ParseColorMode(s)
	if err != nil {
		return err
	}
	*c.p = v
	return nil
}

func (c *colorValue) Type() string { return "mode" }

type destValue struct {
	p   *string
	set *bool
}

func (d *destValue) String() string { return *d.p }

func (d *destValue) Set(s string) error {
	*d.p, *d.set = s, true
	return nil
}

func (d *destValue) Type() string { return "dir" }
