// Package checksum computes the identity digests stored in the tracking table.
//
// A Checksum is a versioned MD5 digest rendered as "<version>:<hex>". The
// algorithm and the canonical encoding are part of the persisted format:
// checksums written by one release must be reproduced exactly by the next, so
// neither may change without bumping Version.
//
// Digests are built from named fields written in a fixed order by the caller
// (never from map iteration or reflection). Each field is length-prefixed so
// that adjacent values can never run together:
//
//	sum := checksum.NewBuilder().
//		String("tableName", "users").
//		String("columnName", "id").
//		Int("startWith", change.StartWith).
//		Sum()
//
//	fmt.Println(sum) // 1:5f0c...
package checksum

import (
	"bytes"
	"crypto/md5" //nolint:gosec // digest format of the tracking table
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Version identifies the digest algorithm and canonical field encoding.
const Version = 1

// ErrInvalidChecksum is returned by Parse for malformed input.
var ErrInvalidChecksum = errors.New("invalid checksum")

type (
	// Checksum is a versioned digest.
	Checksum struct {
		Version int
		Digest  string
	}

	// Builder accumulates canonical field bytes for a Checksum.
	Builder struct {
		buf bytes.Buffer
	}
)

// Compute returns the checksum of the given parts written as unnamed fields.
func Compute(parts ...string) Checksum {
	b := NewBuilder()
	for _, p := range parts {
		b.String("", p)
	}

	return b.Sum()
}

// Parse reads a checksum in "<version>:<hex>" form.
func Parse(s string) (Checksum, error) {
	version, digest, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || digest == "" {
		return Checksum{}, errors.Wrapf(ErrInvalidChecksum, "%q", s)
	}

	v, err := strconv.Atoi(version)
	if err != nil || v <= 0 {
		return Checksum{}, errors.Wrapf(ErrInvalidChecksum, "bad version in %q", s)
	}

	if _, err := hex.DecodeString(digest); err != nil {
		return Checksum{}, errors.Wrapf(ErrInvalidChecksum, "bad digest in %q", s)
	}

	return Checksum{Version: v, Digest: strings.ToLower(digest)}, nil
}

// String renders the checksum as "<version>:<hex>".
func (c Checksum) String() string {
	if c.IsZero() {
		return ""
	}

	return strconv.Itoa(c.Version) + ":" + c.Digest
}

// IsZero reports whether the checksum is unset.
func (c Checksum) IsZero() bool {
	return c.Version == 0 && c.Digest == ""
}

// Equal compares version and digest.
func (c Checksum) Equal(other Checksum) bool {
	return c.Version == other.Version && c.Digest == other.Digest
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// String writes a named string field.
func (b *Builder) String(name, value string) *Builder {
	b.buf.WriteString(name)
	b.buf.WriteByte('=')
	b.buf.WriteString(strconv.Itoa(len(value)))
	b.buf.WriteByte(':')
	b.buf.WriteString(value)
	b.buf.WriteByte(';')
	return b
}

// Bool writes a named boolean field.
func (b *Builder) Bool(name string, value bool) *Builder {
	return b.String(name, strconv.FormatBool(value))
}

// Int writes a named optional integer field. Nil and zero are distinct.
func (b *Builder) Int(name string, value *int64) *Builder {
	if value == nil {
		return b.String(name, "")
	}

	return b.String(name, strconv.FormatInt(*value, 10))
}

// Checksum writes a nested checksum as a named field.
func (b *Builder) Checksum(name string, value Checksum) *Builder {
	return b.String(name, value.String())
}

// Sum returns the digest of everything written so far.
func (b *Builder) Sum() Checksum {
	sum := md5.Sum(b.buf.Bytes()) //nolint:gosec
	return Checksum{Version: Version, Digest: hex.EncodeToString(sum[:])}
}
