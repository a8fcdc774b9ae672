package gcodefile

import (
	"errors"
	"fmt"
	"io/fs"
)

// Kind classifies a file access failure.
type Kind int

const (
	// KindIO is any failure that is neither NotFound nor PermissionDenied.
	KindIO Kind = iota
	KindNotFound
	KindPermissionDenied
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindPermissionDenied:
		return "permission_denied"
	default:
		return "io"
	}
}

// FileError reports a failed read or write of a G-code file.
type FileError struct {
	Op   string // "read" or "write"
	Path string
	Kind Kind
	Err  error
}

func (e *FileError) Error() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("File '%s' not found.", e.Path)
	case KindPermissionDenied:
		return fmt.Sprintf("Permission denied %s file '%s'.", gerund(e.Op), e.Path)
	default:
		return fmt.Sprintf("Could not %s file '%s': %v", e.Op, e.Path, e.Err)
	}
}

func (e *FileError) Unwrap() error {
	return e.Err
}

func gerund(op string) string {
	if op == "write" {
		return "writing"
	}
	return op + "ing"
}

// newFileError classifies err from the os package.
func newFileError(op, path string, err error) *FileError {
	kind := KindIO
	switch {
	case errors.Is(err, fs.ErrNotExist):
		kind = KindNotFound
	case errors.Is(err, fs.ErrPermission):
		kind = KindPermissionDenied
	}
	return &FileError{Op: op, Path: path, Kind: kind, Err: err}
}

// KindOf returns the Kind of a FileError in err's chain, and false if there is none.
func KindOf(err error) (Kind, bool) {
	var fe *FileError
	if errors.As(err, &fe) {
		return fe.Kind, true
	}
	return KindIO, false
}
