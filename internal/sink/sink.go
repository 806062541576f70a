// Package sink writes rendered images under names derived from row labels,
// keeping every successful row's output distinct within a run.
package sink

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// maxSuffix caps the collision probe so a pathological run fails a row
// instead of spinning.
const maxSuffix = 10000

// Sanitize maps label to a filesystem-safe base name. Characters outside
// [A-Za-z0-9._-] become '_'. An empty or dot-only result is rejected.
func Sanitize(label string) (string, error) {
	var b strings.Builder
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_' || r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	name := b.String()
	if strings.Trim(name, "._") == "" {
		return "", fmt.Errorf("label %q has no usable characters", label)
	}
	return name, nil
}

// Sink writes files into one directory. Name claims are serialized so
// concurrent workers never race for the same path, and files are opened
// exclusively so nothing already on disk is overwritten.
type Sink struct {
	dir string
	ext string

	mu      sync.Mutex
	claimed map[string]struct{}
}

// New returns a sink writing <label>.<ext> files into dir. dir "-" means the
// current working directory.
func New(dir, ext string) (*Sink, error) {
	if dir == "-" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		dir = wd
	}
	return &Sink{dir: dir, ext: ext, claimed: make(map[string]struct{})}, nil
}

// Write stores data under a name derived from label and returns the final
// path. On a name collision a numeric suffix is appended before the
// extension (-1, -2, ...) until a free name is found. Which duplicate gets
// which suffix follows write completion order and is not deterministic when
// rows run in parallel.
func (s *Sink) Write(label string, data []byte) (string, error) {
	base, err := Sanitize(label)
	if err != nil {
		return "", err
	}

	for n := 0; n <= maxSuffix; n++ {
		name := base
		if n > 0 {
			name = fmt.Sprintf("%s-%d", base, n)
		}
		path := filepath.Join(s.dir, name+"."+s.ext)

		f, err := s.claim(path)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create %s: %w", path, err)
		}
		if _, err := f.Write(data); err != nil {
			f.Close()
			return "", fmt.Errorf("write %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("write %s: %w", path, err)
		}
		return path, nil
	}
	return "", fmt.Errorf("no free name for label %q after %d attempts", label, maxSuffix)
}

// claim reserves path and opens it exclusively. The claimed set makes
// in-run collisions deterministic to detect even before data hits the disk.
func (s *Sink) claim(path string) (*os.File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.claimed[path]; taken {
		return nil, os.ErrExist
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, err
	}
	s.claimed[path] = struct{}{}
	return f, nil
}
