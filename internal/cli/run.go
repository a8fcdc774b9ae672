package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/purgeshift/internal/config"
	"github.com/roach88/purgeshift/internal/gcodefile"
	"github.com/roach88/purgeshift/internal/purge"
)

// ShiftReport is the JSON payload of a successful run.
type ShiftReport struct {
	RunID        string  `json:"run_id"`
	File         string  `json:"file"`
	Output       string  `json:"output"`
	Mask         string  `json:"mask"`
	Slot         int     `json:"slot"`
	Offset       float64 `json:"offset"`
	ObjectStartX float64 `json:"object_start_x"`
	Reverse      bool    `json:"reverse"`
	Lines        int     `json:"lines"`
	ProbeLines   int     `json:"probe_lines"`
	PurgeLines   int     `json:"purge_lines"`
}

// settings are the effective options after merging the config file, flags
// and positional arguments.
type settings struct {
	format  string
	verbose bool
	pause   bool
	shiftW  bool
	seed    *uint64
	mask    purge.Mask
	file    string
	output  string
}

func runShift(cmd *cobra.Command, opts *RootOptions, deps Deps, args []string) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
	}
	if !isValidFormat(opts.Format) {
		formatter.Format = "text"
		return usageError(formatter, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
	}

	// Checked before anything touches the filesystem.
	if len(args) < 1 || len(args) > 2 {
		return usageError(formatter, fmt.Sprintf("expected 1 or 2 arguments, got %d", len(args)))
	}

	s, err := resolveSettings(cmd, opts, args)
	if err != nil {
		return fail(formatter, err)
	}
	formatter.Format = s.format

	logger := newLogger(cmd.ErrOrStderr(), s.verbose)
	runIDs := deps.RunIDs
	if runIDs == nil {
		runIDs = UUIDv7Generator{}
	}
	runID := runIDs.Generate()
	logger = logger.With("run_id", runID)

	lines, err := gcodefile.Read(s.file)
	if err != nil {
		return fail(formatter, err)
	}
	logger.Debug("g-code loaded", "file", s.file, "lines", len(lines))

	rng := deps.Rand
	if rng == nil {
		seed := rand.Uint64()
		if s.seed != nil {
			seed = *s.seed
		}
		logger.Debug("slot generator seeded", "seed", seed)
		rng = purge.NewRand(seed)
	}

	res, err := purge.Shift(lines, purge.Options{
		Mask:   s.mask,
		Rand:   rng,
		ShiftW: s.shiftW,
		Logger: logger,
	})
	if res != nil {
		formatter.Info("Purge slot %d will be used.", res.Slot)
	}
	if err != nil {
		return fail(formatter, err)
	}
	formatter.Info("The first object start X coordinate is X%s", strconv.FormatFloat(res.ObjectStartX, 'f', -1, 64))

	// The original stays intact if we were interrupted before the write.
	if err := cmd.Context().Err(); err != nil {
		return WrapExitError(ExitInterrupted, "interrupted before write", err)
	}

	if err := gcodefile.Write(s.output, res.Lines()); err != nil {
		return fail(formatter, err)
	}
	logger.Debug("g-code written", "file", s.output)

	report := ShiftReport{
		RunID:        runID,
		File:         s.file,
		Output:       s.output,
		Mask:         string(s.mask),
		Slot:         res.Slot,
		Offset:       res.Offset,
		ObjectStartX: res.ObjectStartX,
		Reverse:      res.Reverse,
		Lines:        len(res.Lines()),
		ProbeLines:   res.Rewrite.ProbeLines,
		PurgeLines:   res.Rewrite.PurgeLines,
	}
	if err := formatter.Success("Successfully updated purge line position.", report); err != nil {
		return WrapExitError(ExitFailure, ErrCodeGeneric, err)
	}

	if s.pause {
		waitForEnter(cmd.Context(), cmd.InOrStdin(), formatter.PromptWriter())
	}
	return nil
}

// resolveSettings applies built-in defaults, then the config file, then
// explicitly set flags, then the positional mask.
func resolveSettings(cmd *cobra.Command, opts *RootOptions, args []string) (*settings, error) {
	s := &settings{
		format: opts.Format,
		pause:  true,
		mask:   purge.DefaultMask,
	}

	if opts.ConfigPath != "" {
		cfg, err := config.Load(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		applyConfig(s, cfg)
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		s.format = opts.Format
	}
	if flags.Changed("verbose") {
		s.verbose = opts.Verbose
	}
	if flags.Changed("pause") {
		s.pause = opts.Pause
	}
	if flags.Changed("shift-w") {
		s.shiftW = opts.ShiftW
	}
	if flags.Changed("seed") {
		seed := opts.Seed
		s.seed = &seed
	}

	s.file = args[len(args)-1]
	if len(args) == 2 {
		mask, err := purge.ParseMask(args[0])
		if err != nil {
			return nil, err
		}
		s.mask = mask
	}

	s.output = s.file
	if opts.Output != "" {
		s.output = opts.Output
	}
	return s, nil
}

func applyConfig(s *settings, cfg *config.Config) {
	if cfg.Mask != "" {
		// The schema already enforces the mask format.
		s.mask = purge.Mask(cfg.Mask)
	}
	if cfg.Format != "" {
		s.format = cfg.Format
	}
	if cfg.Verbose != nil {
		s.verbose = *cfg.Verbose
	}
	if cfg.Pause != nil {
		s.pause = *cfg.Pause
	}
	if cfg.ShiftW != nil {
		s.shiftW = *cfg.ShiftW
	}
	if cfg.Seed != nil {
		seed := *cfg.Seed
		s.seed = &seed
	}
}

// usageError prints the usage text and returns a command error.
func usageError(f *OutputFormatter, message string) error {
	f.Error(ErrCodeUsage, message, nil)
	if f.Format != "json" {
		fmt.Fprintln(f.Writer, usageText)
	}
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", ErrCodeUsage, message))
}

// fail reports err through the formatter and maps it to an exit code.
func fail(f *OutputFormatter, err error) error {
	exitCode, code := classify(err)
	f.Error(code, errorMessage(err), nil)
	return WrapExitError(exitCode, code, err)
}

// classify maps an error to its exit code and CLI error code.
func classify(err error) (int, string) {
	var fileErr *gcodefile.FileError
	var cfgErr *config.Error

	switch {
	case purge.IsMaskError(err):
		return ExitCommandError, ErrCodeInvalidMask
	case purge.IsObjectStartNotFound(err):
		return ExitFailure, ErrCodeObjectNotFound
	case purge.IsMalformedCoordinate(err):
		return ExitFailure, ErrCodeMalformedCoordinate
	case errors.As(err, &cfgErr):
		return ExitCommandError, ErrCodeInvalidConfig
	case errors.As(err, &fileErr):
		if fileErr.Op == "write" {
			return ExitCommandError, ErrCodeWriteFailed
		}
		switch fileErr.Kind {
		case gcodefile.KindNotFound:
			return ExitCommandError, ErrCodeNotFound
		case gcodefile.KindPermissionDenied:
			return ExitCommandError, ErrCodePermissionDenied
		default:
			return ExitCommandError, ErrCodeReadFailed
		}
	default:
		return ExitFailure, ErrCodeGeneric
	}
}

// errorMessage strips the purge error code prefix; the CLI prints its own.
func errorMessage(err error) string {
	var pe *purge.Error
	if errors.As(err, &pe) {
		return pe.Message
	}
	return err.Error()
}

// waitForEnter blocks until a line is read from in or ctx is done.
func waitForEnter(ctx context.Context, in io.Reader, out io.Writer) {
	fmt.Fprint(out, "Press Enter to continue...")

	done := make(chan struct{})
	go func() {
		defer close(done)
		bufio.NewReader(in).ReadString('\n')
	}()

	select {
	case <-done:
	case <-ctx.Done():
	}
}
