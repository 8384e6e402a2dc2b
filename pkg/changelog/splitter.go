package changelog

import (
	"regexp"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

var (
	scriptLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `--[^\r\n]*`},
		{Name: "MultilineComment", Pattern: `/\*[^*]*\*+([^/*][^*]*\*+)*/`},
		{Name: "String", Pattern: `'([^']|'')*'`},
		{Name: "QuotedIdent", Pattern: `"([^"]|"")*"`},
		{Name: "BacktickIdent", Pattern: "`[^`]*`"},
		{Name: "Delimiter", Pattern: `;`},
		{Name: "Newline", Pattern: `\r?\n`},
		{Name: "Whitespace", Pattern: `[ \t\f\r]+`},
		{Name: "Word", Pattern: `[a-zA-Z_][a-zA-Z0-9_$]*`},
		{Name: "Other", Pattern: `[\s\S]`},
	})

	scriptSymbols = scriptLexer.Symbols()

	goLine = regexp.MustCompile(`(?i)^\s*go\s*$`)
)

func scriptTokens(script string) ([]lexer.Token, error) {
	lex, err := scriptLexer.LexString("", script)
	if err != nil {
		return nil, errors.Wrap(err, "failed to tokenize SQL")
	}

	tokens, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, errors.Wrap(err, "failed to tokenize SQL")
	}

	if n := len(tokens); n > 0 && tokens[n-1].EOF() {
		tokens = tokens[:n-1]
	}

	return tokens, nil
}

func isToken(tok lexer.Token, names ...string) bool {
	for _, name := range names {
		if tok.Type == scriptSymbols[name] {
			return true
		}
	}

	return false
}

// StripComments removes -- and /* */ comments that are not inside quoted
// text.
func StripComments(script string) (string, error) {
	tokens, err := scriptTokens(script)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, tok := range tokens {
		if !isToken(tok, "Comment", "MultilineComment") {
			sb.WriteString(tok.Value)
		}
	}

	return sb.String(), nil
}

// SplitStatements splits a script into individual statements.
//
// Without an endDelimiter, statements end at a semicolon or at a line that
// contains only GO. Otherwise endDelimiter is a regular expression matched
// against the end of the statement text, and semicolons are ordinary text.
// Delimiters inside quoted text and comments never split. The returned
// statements are trimmed and never empty.
func SplitStatements(script string, stripComments bool, endDelimiter string) ([]string, error) {
	var custom *regexp.Regexp
	if endDelimiter != "" {
		re, err := regexp.Compile(`(?:` + endDelimiter + `)$`)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid end delimiter %q", endDelimiter)
		}
		custom = re
	}

	tokens, err := scriptTokens(script)
	if err != nil {
		return nil, err
	}

	var (
		out         []string
		buf         []byte
		lineStart   int
		significant int
	)

	flush := func() {
		if s := strings.TrimSpace(string(buf)); s != "" && significant > 0 {
			out = append(out, s)
		}

		buf = buf[:0]
		lineStart = 0
		significant = 0
	}

	// goSeparator ends the statement when the current line holds only GO.
	goSeparator := func() bool {
		if custom != nil || !goLine.Match(buf[lineStart:]) {
			return false
		}

		buf = buf[:lineStart]
		significant--
		flush()
		return true
	}

	for _, tok := range tokens {
		comment := isToken(tok, "Comment", "MultilineComment")
		if comment && stripComments {
			continue
		}

		switch {
		case custom == nil && isToken(tok, "Delimiter"):
			flush()
			continue
		case isToken(tok, "Newline"):
			if goSeparator() {
				continue
			}
		}

		buf = append(buf, tok.Value...)
		if isToken(tok, "Newline") {
			lineStart = len(buf)
		}

		if !comment && !isToken(tok, "Newline", "Whitespace") {
			significant++
		}

		if custom == nil || comment || isToken(tok, "String", "QuotedIdent", "BacktickIdent") {
			continue
		}

		if loc := custom.FindIndex(buf); loc != nil {
			buf = buf[:loc[0]]
			flush()
		}
	}

	if !goSeparator() {
		flush()
	}

	return out, nil
}
