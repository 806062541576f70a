package generate

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flarebyte/seshat-glyphs/internal/config"
	"github.com/flarebyte/seshat-glyphs/internal/pipeline"
)

var (
	flagOutput     string
	flagMin        int
	flagMax        int
	flagError      string
	flagMask       int
	flagBorder     int
	flagFormat     string
	flagScale      int
	flagForeground string
	flagBackground string
	flagFlatten    bool
	flagChunk      int
	flagSkip       bool
	flagMap        string
	flagConfig     string
	flagReport     string
	flagLog        bool
	flagVerbose    int
)

// Cmd represents the `seshat generate` command.
var Cmd = &cobra.Command{
	Use:           "generate [flags] <infile>...",
	Short:         "Generate one QR Code image per (label, payload) row",
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := buildOptions(cmd)
		if err != nil {
			return err
		}
		resolved, err := opts.Resolve()
		if err != nil {
			return err
		}

		p, err := pipeline.New(resolved, newLogger(flagLog, flagVerbose))
		if err != nil {
			return err
		}
		rep := p.Run(args)

		if flagReport != "" {
			if err := rep.Write(flagReport); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
		}

		// Success output is a single JSON line.
		fmt.Fprintf(os.Stdout, "{\"run\":%q,\"succeeded\":%d,\"failed\":%d}\n",
			rep.RunID, rep.Succeeded(), rep.Failed())

		if rep.FileErrors() {
			return fmt.Errorf("one or more input files could not be read")
		}
		return nil
	},
}

// buildOptions layers defaults, then the optional CUE config file, then any
// flag the user set explicitly.
func buildOptions(cmd *cobra.Command) (config.Options, error) {
	opts := config.Default()
	if flagConfig != "" {
		if err := config.Load(flagConfig, &opts); err != nil {
			return config.Options{}, err
		}
	}

	set := cmd.Flags().Changed
	if set("output") {
		opts.Output = flagOutput
	}
	if set("min") {
		opts.VersionMin = flagMin
	}
	if set("max") {
		opts.VersionMax = flagMax
	}
	if set("error") {
		opts.ErrorCorrection = flagError
	}
	if set("mask") {
		opts.Mask = flagMask
	}
	if set("border") {
		opts.Border = flagBorder
	}
	if set("format") {
		opts.Format = flagFormat
	}
	if set("scale") {
		opts.Scale = flagScale
	}
	if set("foreground") {
		opts.Foreground = flagForeground
	}
	if set("background") {
		opts.Background = flagBackground
	}
	if set("flatten") {
		opts.Flatten = flagFlatten
	}
	if set("chunk") {
		opts.ChunkSize = flagChunk
	}
	if set("skip") {
		opts.SkipHeader = flagSkip
	}
	if set("map") {
		opts.MapScript = flagMap
	}
	return opts, nil
}

func init() {
	f := Cmd.Flags()
	f.StringVarP(&flagOutput, "output", "o", "-", "Output directory, or - for the current working directory")
	f.IntVarP(&flagMin, "min", "m", 1, "Minimum QR Code Model 2 version (1..40)")
	f.IntVarP(&flagMax, "max", "x", 40, "Maximum QR Code Model 2 version (1..40)")
	f.StringVarP(&flagError, "error", "e", "High", "Error correction level: Low, Medium, Quartile or High")
	f.IntVarP(&flagMask, "mask", "k", config.MaskUnset, "Fixed mask (0..7); omit for automatic selection")
	f.IntVarP(&flagBorder, "border", "b", 4, "Border width in modules")
	f.StringVarP(&flagFormat, "format", "f", "SVG", "Output format: SVG or PNG")
	f.IntVarP(&flagScale, "scale", "a", 8, "Pixels per module (1..255), PNG only")
	f.StringVar(&flagForeground, "foreground", "000000", "Foreground color as 6 hex digits")
	f.StringVar(&flagBackground, "background", "ffffff", "Background color as 6 hex digits")
	f.BoolVar(&flagFlatten, "flatten", false, "SVG only: emit a single combined path instead of per-module rects")
	f.IntVarP(&flagChunk, "chunk", "c", 1, "Rows processed in parallel per chunk")
	f.BoolVarP(&flagSkip, "skip", "s", false, "Skip the first row of each file as a header")
	f.StringVar(&flagMap, "map", "", "Lua script transforming each (label, payload) record")
	f.StringVar(&flagConfig, "config", "", "Path to options file (.cue)")
	f.StringVar(&flagReport, "report", "", "Write a YAML run report to this path")
	f.BoolVarP(&flagLog, "log", "l", false, "Enable structured logging to stderr")
	f.CountVarP(&flagVerbose, "verbose", "v", "Increase log verbosity (-v, -vv, -vvv)")
}
