package changelog

import (
	"sort"
	"strings"
	"sync"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

var (
	expressionLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Param", Pattern: `\$\{[^{}]+\}`},
		{Name: "Text", Pattern: `[^$]+`},
		{Name: "Dollar", Pattern: `\$`},
	})

	paramToken = expressionLexer.Symbols()["Param"]
)

// Parameters are the ${name} substitutions available to the changes of a
// change set. The first definition of a name wins. Parameters are safe for
// concurrent use.
type Parameters struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewParameters returns Parameters holding values.
func NewParameters(values map[string]string) *Parameters {
	p := &Parameters{values: make(map[string]string, len(values))}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		p.Set(name, values[name])
	}

	return p
}

// Set defines name unless it is already defined. It reports whether the value
// was stored.
func (p *Parameters) Set(name, value string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.values == nil {
		p.values = make(map[string]string)
	}

	if _, ok := p.values[name]; ok {
		return false
	}

	p.values[name] = value
	return true
}

// Get returns the value of name.
func (p *Parameters) Get(name string) (string, bool) {
	if p == nil {
		return "", false
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	v, ok := p.values[name]
	return v, ok
}

// Names returns the defined names in sorted order.
func (p *Parameters) Names() []string {
	if p == nil {
		return nil
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	names := make([]string, 0, len(p.values))
	for name := range p.values {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Expand replaces every ${name} in text with its value. References to
// undefined names are left as they are.
//
// Example:
//
//	p := changelog.NewParameters(map[string]string{"schema": "app"})
//	p.Expand("SELECT * FROM ${schema}.users WHERE note = '${missing}'")
//	// SELECT * FROM app.users WHERE note = '${missing}'
func (p *Parameters) Expand(text string) (string, error) {
	if p == nil || !strings.Contains(text, "${") {
		return text, nil
	}

	lex, err := expressionLexer.LexString("", text)
	if err != nil {
		return "", errors.Wrap(err, "failed to tokenize expression")
	}

	tokens, err := lexer.ConsumeAll(lex)
	if err != nil {
		return "", errors.Wrap(err, "failed to tokenize expression")
	}

	var sb strings.Builder
	for _, tok := range tokens {
		if tok.Type != paramToken {
			sb.WriteString(tok.Value)
			continue
		}

		name := strings.TrimSpace(tok.Value[2 : len(tok.Value)-1])
		if v, ok := p.Get(name); ok {
			sb.WriteString(v)
		} else {
			sb.WriteString(tok.Value)
		}
	}

	return sb.String(), nil
}
