package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathResolver maps user-supplied relative paths onto absolute locations
// that are guaranteed to stay inside the media root. Every join is
// re-verified against the root; that check is the security boundary for
// the whole subsystem.
type PathResolver struct {
	root  string // absolute, cleaned media root
	locks *pathLocks
}

func NewPathResolver(root string) (*PathResolver, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve media root: %w", err)
	}
	abs = filepath.Clean(abs)
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create media root: %w", err)
	}
	return &PathResolver{root: abs, locks: newPathLocks()}, nil
}

// Root returns the absolute media root directory.
func (r *PathResolver) Root() string { return r.root }

// LockPaths takes the advisory locks for the given absolute paths. Every
// repository working under this root shares the same lock set, so a
// rename and a folder operation touching the same source or destination
// serialize instead of racing through their existence checks.
func (r *PathResolver) LockPaths(paths ...string) func() {
	return r.locks.AcquireAll(paths...)
}

// SanitizeSegment replaces every character outside [A-Za-z0-9._-] with an
// underscore. Empty input and input that is nothing but dots come back as
// "" — traversal tokens are stripped, never interpreted.
func SanitizeSegment(raw string) string {
	if raw == "" {
		return ""
	}
	s := strings.Map(func(c rune) rune {
		switch {
		case c >= 'a' && c <= 'z',
			c >= 'A' && c <= 'Z',
			c >= '0' && c <= '9',
			c == '.', c == '_', c == '-':
			return c
		}
		return '_'
	}, raw)
	if strings.Trim(s, ".") == "" {
		return ""
	}
	return s
}

// Resolve splits rel on "/", sanitizes each segment (dropping the ones
// that sanitize away) and joins the result onto the root. It returns the
// absolute path and the canonical relative path ("" means the root
// itself). ErrInvalidPath is returned if the result would leave the root.
func (r *PathResolver) Resolve(rel string) (string, string, error) {
	segments := make([]string, 0, 8)
	for _, part := range strings.Split(rel, "/") {
		s := SanitizeSegment(part)
		if s == "" {
			continue
		}
		segments = append(segments, s)
	}
	canonical := strings.Join(segments, "/")
	abs := filepath.Join(r.root, filepath.FromSlash(canonical))
	if err := r.EnsureWithinRoot(abs); err != nil {
		return "", "", err
	}
	return abs, canonical, nil
}

// EnsureWithinRoot rejects any absolute path whose prefix is not the media
// root. Sanitization should make a violation impossible; the check still
// runs after every join, including computed rename targets.
func (r *PathResolver) EnsureWithinRoot(abs string) error {
	if abs == r.root {
		return nil
	}
	if !strings.HasPrefix(abs, r.root+string(os.PathSeparator)) {
		return ErrInvalidPath
	}
	return nil
}
