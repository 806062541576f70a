package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Load overlays values from a CUE file onto opts. Fields absent from the
// file are left untouched; present fields with the wrong kind are config
// errors. Recognized fields:
//
//	output, versionMin, versionMax, errorCorrection, mask, border, format,
//	scale, foreground, background, flatten, chunkSize, skipHeader, mapScript
func Load(path string, opts *Options) error {
	if filepath.Ext(path) != ".cue" {
		return errors.New("unsupported config format: expected .cue")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	ctx := cuecontext.New()
	v := ctx.CompileBytes(data)
	if err := v.Err(); err != nil {
		return fmt.Errorf("invalid config: %v", err)
	}

	stringFields := map[string]*string{
		"output":          &opts.Output,
		"errorCorrection": &opts.ErrorCorrection,
		"format":          &opts.Format,
		"foreground":      &opts.Foreground,
		"background":      &opts.Background,
		"mapScript":       &opts.MapScript,
	}
	for name, dst := range stringFields {
		if err := decodeString(v, name, dst); err != nil {
			return err
		}
	}

	intFields := map[string]*int{
		"versionMin": &opts.VersionMin,
		"versionMax": &opts.VersionMax,
		"mask":       &opts.Mask,
		"border":     &opts.Border,
		"scale":      &opts.Scale,
		"chunkSize":  &opts.ChunkSize,
	}
	for name, dst := range intFields {
		if err := decodeInt(v, name, dst); err != nil {
			return err
		}
	}

	boolFields := map[string]*bool{
		"flatten":    &opts.Flatten,
		"skipHeader": &opts.SkipHeader,
	}
	for name, dst := range boolFields {
		if err := decodeBool(v, name, dst); err != nil {
			return err
		}
	}
	return nil
}

func decodeString(v cue.Value, name string, dst *string) error {
	f := v.LookupPath(cue.ParsePath(name))
	if !f.Exists() {
		return nil
	}
	if f.Kind() != cue.StringKind {
		return fmt.Errorf("invalid type for field: %s (expected string)", name)
	}
	if err := f.Decode(dst); err != nil {
		return fmt.Errorf("invalid value for %s: %v", name, err)
	}
	return nil
}

func decodeInt(v cue.Value, name string, dst *int) error {
	f := v.LookupPath(cue.ParsePath(name))
	if !f.Exists() {
		return nil
	}
	if f.Kind() != cue.IntKind {
		return fmt.Errorf("invalid type for field: %s (expected int)", name)
	}
	if err := f.Decode(dst); err != nil {
		return fmt.Errorf("invalid value for %s: %v", name, err)
	}
	return nil
}

func decodeBool(v cue.Value, name string, dst *bool) error {
	f := v.LookupPath(cue.ParsePath(name))
	if !f.Exists() {
		return nil
	}
	if f.Kind() != cue.BoolKind {
		return fmt.Errorf("invalid type for field: %s (expected bool)", name)
	}
	if err := f.Decode(dst); err != nil {
		return fmt.Errorf("invalid value for %s: %v", name, err)
	}
	return nil
}
