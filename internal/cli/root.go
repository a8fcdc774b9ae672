package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/purgeshift/internal/purge"
)

// RootOptions holds the flags of the root command.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	Seed       uint64
	Output     string // write here instead of overwriting the input
	Pause      bool
	ShiftW     bool
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// Deps are collaborators tests replace. Zero values select production
// implementations.
type Deps struct {
	// Rand overrides the seeded slot generator.
	Rand purge.Rand

	// RunIDs generates run IDs. Defaults to UUIDv7Generator.
	RunIDs RunIDGenerator
}

const usageText = `Usage: purgeshift [inclusion mask] filename.gcode
       inclusion mask (optional): 5-bit binary string, e.g. 01111
       filename.gcode: path to the G-code file`

// NewRootCommand creates the purgeshift command.
func NewRootCommand() *cobra.Command {
	return newRootCommand(Deps{})
}

func newRootCommand(deps Deps) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "purgeshift [inclusion-mask] <file.gcode>",
		Short: "Move the MK4S purge line to one of five positions",
		Long: `Post-processing script for PrusaSlicer G-code on the Prusa MK4S.

Moves the purge line, and the nozzle cleaning and probing next to it, to one
of five positions along X, and orients the purge so the nozzle does not cross
it on the way to the first object.

The optional inclusion mask is five binary digits naming the eligible
positions. A plate worn at position 0 can use 01111. PrusaSlicer appends the
G-code path as the last argument, so the mask comes first.`,
		Args:          cobra.ArbitraryArgs, // counted in runShift so the usage error goes through the formatter
		SilenceUsage:  true,
		SilenceErrors: true, // errors are written by the formatter
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShift(cmd, opts, deps, args)
		},
	}

	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.Flags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "defaults file (.yaml, .yml, .toml or .cue)")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "seed for the slot selection")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the result here instead of overwriting the input")
	cmd.Flags().BoolVar(&opts.Pause, "pause", true, "wait for Enter before exiting")
	cmd.Flags().BoolVar(&opts.ShiftW, "shift-w", false, "also shift W coordinates on probe lines")

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		fmt.Fprintf(c.ErrOrStderr(), "ERROR [%s]: %v\n%s\n", ErrCodeUsage, err, usageText)
		return WrapExitError(ExitCommandError, ErrCodeUsage, err)
	})

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
