// Package sql contains the emittable units produced by SQL generators.
//
// A Fragment is one piece of dialect SQL text together with the delimiter that
// terminates it when written into a script. Fragments are values: once a
// generator returns them, nothing in changekit modifies them.
//
// Example:
//
//	frags := []sql.Fragment{
//		sql.New("ALTER TABLE users MODIFY id BIGINT AUTO_INCREMENT"),
//		sql.New("ALTER TABLE users AUTO_INCREMENT=50"),
//	}
//
//	fmt.Println(sql.Join(frags, "\n"))
//	// ALTER TABLE users MODIFY id BIGINT AUTO_INCREMENT;
//	// ALTER TABLE users AUTO_INCREMENT=50;
package sql

import (
	"strings"

	"github.com/pseudomuto/changekit/pkg/consts"
)

// Fragment is a single unit of SQL text plus its end delimiter.
type Fragment struct {
	text         string
	endDelimiter string
}

// New creates a Fragment terminated by the default statement delimiter.
func New(text string) Fragment {
	return NewWithDelimiter(text, consts.DefaultEndDelimiter)
}

// NewWithDelimiter creates a Fragment with an explicit end delimiter. An empty
// delimiter produces a fragment that does not end a statement.
func NewWithDelimiter(text, endDelimiter string) Fragment {
	return Fragment{
		text:         strings.TrimSpace(text),
		endDelimiter: endDelimiter,
	}
}

// SQL returns the fragment text without its delimiter.
func (f Fragment) SQL() string {
	return f.text
}

// EndDelimiter returns the delimiter written after the fragment.
func (f Fragment) EndDelimiter() string {
	return f.endDelimiter
}

// Terminated reports whether the fragment ends a statement.
func (f Fragment) Terminated() bool {
	return f.endDelimiter != ""
}

// String returns the text followed by the end delimiter.
func (f Fragment) String() string {
	if f.text == "" || strings.HasSuffix(f.text, f.endDelimiter) {
		return f.text
	}

	return f.text + f.endDelimiter
}

// Join renders fragments in order, separated by sep.
func Join(frags []Fragment, sep string) string {
	parts := make([]string, 0, len(frags))
	for _, f := range frags {
		if s := f.String(); s != "" {
			parts = append(parts, s)
		}
	}

	return strings.Join(parts, sep)
}

// Texts returns the bare text of each fragment in order.
func Texts(frags []Fragment) []string {
	out := make([]string, len(frags))
	for i, f := range frags {
		out[i] = f.text
	}

	return out
}
