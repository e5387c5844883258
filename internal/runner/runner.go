// Package runner drives one selection run over a source directory.
package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"image-selector/internal/action"
	"image-selector/internal/probe"
	"image-selector/internal/scan"
	"image-selector/internal/selection"
)

// ErrorPolicy decides what Run does after a failed action.
type ErrorPolicy int

const (
	// StopOnError returns the first action error.
	StopOnError ErrorPolicy = iota
	// ContinueOnError logs the failure and moves on to the next file.
	ContinueOnError
)

// Options is everything Run needs.
type Options struct {
	Fs          afero.Fs
	SourceDir   string
	Criteria    selection.Criteria
	Action      action.Kind
	Destination string
	Conflict    action.Conflict
	Orientation bool
	DryRun      bool
	OnError     ErrorPolicy
	Log         logrus.FieldLogger
}

// Run lists SourceDir and processes each file in order. A listing error is
// always returned. Action errors follow OnError; under ContinueOnError they
// are joined and returned after the last file.
func Run(ctx context.Context, opts Options) (Stats, error) {
	var stats Stats
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	files, err := scan.List(opts.Fs, opts.SourceDir)
	if err != nil {
		return stats, err
	}
	stats.Listed = len(files)

	prober := probe.New(opts.Fs, opts.Orientation)
	dispatcher := &action.Dispatcher{
		Fs:       opts.Fs,
		Kind:     opts.Action,
		Dir:      opts.Destination,
		Conflict: opts.Conflict,
		DryRun:   opts.DryRun,
		Log:      log,
	}

	var errs []error
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		if !probe.Known(path) {
			log.WithField("path", path).Debug("not an image extension, skipping")
			stats.Ignored++
			continue
		}

		dim, err := prober.Probe(path)
		if err != nil {
			log.Infof("%s can't be identified as an image", path)
			log.WithError(err).WithField("path", path).Debug("decode failed")
			stats.Undecodable++
			continue
		}

		if !opts.Criteria.Matches(dim.Width, dim.Height) {
			log.WithFields(logrus.Fields{"path": path, "size": dim}).Debug("not selected")
			stats.Rejected++
			continue
		}

		out, err := dispatcher.Apply(path)
		if err != nil {
			stats.Failed++
			if opts.OnError == StopOnError {
				return stats, err
			}
			log.WithError(err).Error("action failed")
			errs = append(errs, err)
			continue
		}
		if out.Skipped {
			stats.Skipped++
			continue
		}

		stats.Matched++
		stats.Bytes += out.Size
		report(log, out, dim, opts.DryRun)
	}

	if len(errs) > 0 {
		return stats, fmt.Errorf("%d action(s) failed: %w", len(errs), errors.Join(errs...))
	}
	return stats, nil
}

// report prints the confirmation line for a processed file.
func report(log logrus.FieldLogger, out action.Outcome, dim probe.Dimensions, dryRun bool) {
	entry := log
	if dryRun && out.Kind != action.List {
		entry = log.WithField("dry_run", true)
	}

	switch out.Kind {
	case action.Move:
		entry.Infof("%s (%s) is moved to %s", out.Source, dim, out.Destination)
	case action.Copy:
		entry.Infof("%s (%s) is copied to %s", out.Source, dim, out.Destination)
	case action.Delete:
		entry.Infof("%s (%s) is deleted", out.Source, dim)
	default:
		entry.Infof("%s (%s)", out.Source, dim)
	}
}

// Summarize logs the end-of-run counters.
func Summarize(log logrus.FieldLogger, kind action.Kind, stats Stats) {
	if stats.Matched == 0 && stats.Skipped == 0 && stats.Failed == 0 {
		log.Info("No image matched")
		return
	}
	log.WithFields(logrus.Fields{
		"listed":      stats.Listed,
		"undecodable": stats.Undecodable,
		"rejected":    stats.Rejected,
		"skipped":     stats.Skipped,
		"failed":      stats.Failed,
	}).Infof("%s: %d image(s), %s", kind, stats.Matched, stats.Size())
}
