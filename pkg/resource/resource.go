// Package resource loads the files referenced by changes, such as the SQL of
// a sqlFile change.
//
// Files are read through an Accessor so callers decide where they live: on
// disk, embedded in the binary, or in memory for tests.
//
// Example:
//
//	acc := resource.FS(os.DirFS("db"))
//	path := resource.Resolve("create_users.sql", "changelog/main.yaml", true)
//	// changelog/create_users.sql
//
//	text, err := resource.ReadString(acc, path, "utf-8")
package resource

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	// ErrUnreadableResource is the cause of every *UnreadableError.
	ErrUnreadableResource = errors.New("unreadable resource")

	// ErrUnknownEncoding is returned for encoding names that cannot be
	// resolved.
	ErrUnknownEncoding = errors.New("unknown encoding")
)

type (
	// Accessor opens resources by slash separated path.
	Accessor interface {
		Open(path string) (io.ReadCloser, error)
	}

	// UnreadableError reports a resource that is missing or could not be
	// read or decoded.
	UnreadableError struct {
		Path string
		Err  error
	}

	fsAccessor struct {
		fsys fs.FS
	}
)

// FS returns an Accessor backed by fsys.
func FS(fsys fs.FS) Accessor {
	return &fsAccessor{fsys: fsys}
}

func (a *fsAccessor) Open(name string) (io.ReadCloser, error) {
	return a.fsys.Open(strings.TrimPrefix(path.Clean(name), "/"))
}

func (e *UnreadableError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", ErrUnreadableResource, e.Path)
	}

	return fmt.Sprintf("%s: %s: %v", ErrUnreadableResource, e.Path, e.Err)
}

// Cause returns ErrUnreadableResource.
func (e *UnreadableError) Cause() error { return ErrUnreadableResource }

// Unwrap returns both ErrUnreadableResource and the underlying error.
func (e *UnreadableError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUnreadableResource}
	}

	return []error{ErrUnreadableResource, e.Err}
}

// Resolve returns the path to open. When relative is true, p is resolved
// against the directory containing relativeTo.
func Resolve(p, relativeTo string, relative bool) string {
	p = strings.ReplaceAll(p, "\\", "/")
	if !relative || relativeTo == "" || path.IsAbs(p) {
		return path.Clean(p)
	}

	return path.Join(path.Dir(strings.ReplaceAll(relativeTo, "\\", "/")), p)
}

// Encoding returns the decoder for name. Names are resolved as in the WHATWG
// encoding index, so "utf-8", "latin1" and "windows-1252" are all valid. An
// empty name means UTF-8.
func Encoding(name string) (encoding.Encoding, error) {
	if strings.TrimSpace(name) == "" {
		return unicode.UTF8, nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, errors.Wrapf(ErrUnknownEncoding, "%q", name)
	}

	return enc, nil
}

// ReadString reads and decodes the resource at p. A leading byte order mark
// overrides the configured encoding and is removed.
func ReadString(acc Accessor, p, encodingName string) (string, error) {
	if acc == nil {
		return "", &UnreadableError{Path: p, Err: errors.New("no resource accessor configured")}
	}

	enc, err := Encoding(encodingName)
	if err != nil {
		return "", &UnreadableError{Path: p, Err: err}
	}

	rc, err := acc.Open(p)
	if err != nil {
		return "", &UnreadableError{Path: p, Err: err}
	}
	defer func() { _ = rc.Close() }()

	decoder := unicode.BOMOverride(enc.NewDecoder())
	data, err := io.ReadAll(transform.NewReader(rc, decoder))
	if err != nil {
		return "", &UnreadableError{Path: p, Err: err}
	}

	return string(data), nil
}
