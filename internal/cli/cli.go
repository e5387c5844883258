// Package cli defines the image-selector command line.
package cli

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"image-selector/internal/action"
	"image-selector/internal/logging"
	"image-selector/internal/runner"
	"image-selector/internal/selection"
)

// NewCommand builds the root command operating on fs.
func NewCommand(fs afero.Fs, version string) *cobra.Command {
	opts := &Options{Conflict: action.ConflictOverwrite, Color: logging.ColorAuto}

	cmd := &cobra.Command{
		Use:   "image-selector [flags] <path>",
		Short: "Select images in a directory by shape and size, then move, copy or delete them",
		Long: `image-selector scans the files directly inside <path>, decodes the ones
with a known image extension and selects those matching the shape and
size filters. Selected images are moved, copied, deleted or, when no
action is given, listed.

A shape flag (-s, -v, -l) or --any-shape is required for anything to be
selected. Minimum sizes are inclusive, maximum sizes exclusive.`,
		Example: `  image-selector -s --min-width 512 ~/Pictures
  image-selector -l --max-height 1080 -m ~/Pictures/wide ~/Pictures
  image-selector -a --width 64 --height 64 -d ./icons`,
		Version:      version,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Source = args[0]
			return run(cmd, fs, opts)
		},
	}

	f := cmd.Flags()
	f.SortFlags = false

	f.BoolVarP(&opts.Square, "square", "s", false, "Select square images")
	f.BoolVarP(&opts.Vertical, "vertical", "v", false, "Select vertical images")
	f.BoolVarP(&opts.Landscape, "landscape", "l", false, "Select landscape images")
	f.BoolVarP(&opts.AnyShape, "any-shape", "a", false, "Select images of any shape")

	f.Var(&boundValue{&opts.MinWidth}, "min-width", "Select images with width greater than or equal to value")
	f.Var(&boundValue{&opts.MinHeight}, "min-height", "Select images with height greater than or equal to value")
	f.Var(&boundValue{&opts.MaxWidth}, "max-width", "Select images with width less than value")
	f.Var(&boundValue{&opts.MaxHeight}, "max-height", "Select images with height less than value")
	f.Var(&boundValue{&opts.Width}, "width", "Select images with width equal to value")
	f.Var(&boundValue{&opts.Height}, "height", "Select images with height equal to value")

	f.VarP(&destValue{&opts.MoveTo, &opts.moveSet}, "move", "m", "Move the selected images to the given directory")
	f.VarP(&destValue{&opts.CopyTo, &opts.copySet}, "copy", "c", "Copy the selected images to the given directory")
	f.BoolVarP(&opts.Delete, "delete", "d", false, "Delete the selected images")

	f.Var(&conflictValue{&opts.Conflict}, "on-conflict", "When the destination file exists: overwrite | skip | fail")
	f.BoolVarP(&opts.KeepGoing, "keep-going", "k", false, "Continue with the next image after a failed action")
	f.BoolVarP(&opts.DryRun, "dry-run", "n", false, "Report what would be done without touching any file")
	f.BoolVarP(&opts.Orientation, "orientation", "o", false, "Apply EXIF orientation before checking shape")
	f.BoolVar(&opts.Verbose, "verbose", false, "Verbose output")
	f.Var(&colorValue{&opts.Color}, "color", "Colored logs: auto | always | never")

	cmd.MarkFlagsMutuallyExclusive("vertical", "landscape")
	cmd.MarkFlagsMutuallyExclusive("any-shape", "square")
	cmd.MarkFlagsMutuallyExclusive("any-shape", "vertical")
	cmd.MarkFlagsMutuallyExclusive("any-shape", "landscape")
	cmd.MarkFlagsMutuallyExclusive("move", "copy", "delete")
	cmd.MarkFlagsMutuallyExclusive("width", "min-width")
	cmd.MarkFlagsMutuallyExclusive("width", "max-width")
	cmd.MarkFlagsMutuallyExclusive("height", "min-height")
	cmd.MarkFlagsMutuallyExclusive("height", "max-height")

	return cmd
}

func run(cmd *cobra.Command, fs afero.Fs, opts *Options) error {
	log := logging.New(logging.Options{
		Out:     cmd.OutOrStdout(),
		Color:   opts.Color,
		Verbose: opts.Verbose,
	})

	ropts, err := opts.RunnerOptions(fs, log)
	if err != nil {
		return err
	}

	if ropts.Criteria.Shape == selection.ShapeNone {
		log.Warn("no shape selected (use -s, -v, -l or -a), no image will match")
	}
	if ropts.DryRun {
		log.Info("[DRY RUN] no file will be changed")
	}

	stats, err := runner.Run(cmd.Context(), ropts)
	if err != nil && stats.Listed == 0 {
		return err
	}
	runner.Summarize(log, ropts.Action, stats)
	return err
}
