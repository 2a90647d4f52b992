package datapath

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/dataspec-format/dataspec/ir"
)

// Parse parses a path expression into a step sequence.
//
// A path is one or more segments separated by '.' or '/' (the two are
// interchangeable). A segment is an identifier optionally followed by
// bracketed selectors; selectors may also stand alone. A selector's
// interior is classified by content:
//
//	[3]          array index (or integer map key)
//	['a key']    quoted map key ('...' or "...")
//	[id=543]     filter: first array element whose id equals 543
//
// Whitespace between tokens is insignificant.
func Parse(path string) (*Path, error) {
	sc := &scanner{s: path}
	var head, tail *Path
	appendStep := func(p *Path) {
		if head == nil {
			head = p
			tail = p
			return
		}
		tail.Next = p
		tail = p
	}
	expectSegment := true
	for {
		sc.skipSpace()
		if sc.eof() {
			if expectSegment {
				return nil, syntaxErr(sc.i, "expected path segment")
			}
			return head, nil
		}
		if !expectSegment {
			c := sc.s[sc.i]
			if c != '.' && c != '/' {
				return nil, syntaxErr(sc.i, "unexpected character %q", c)
			}
			sc.i++
			expectSegment = true
			continue
		}
		steps := 0
		if f := sc.ident(); f != "" {
			appendStep(&Path{Field: &f})
			steps++
		}
		for {
			sc.skipSpace()
			if sc.eof() || sc.s[sc.i] != '[' {
				break
			}
			sel, err := sc.selector()
			if err != nil {
				return nil, err
			}
			appendStep(sel)
			steps++
		}
		if steps == 0 {
			return nil, syntaxErr(sc.i, "expected field or selector")
		}
		expectSegment = false
	}
}

type scanner struct {
	s string
	i int
}

func (sc *scanner) eof() bool {
	return sc.i >= len(sc.s)
}

func (sc *scanner) skipSpace() {
	for !sc.eof() {
		switch sc.s[sc.i] {
		case ' ', '\t':
			sc.i++
		default:
			return
		}
	}
}

func (sc *scanner) ident() string {
	start := sc.i
	for sc.i < len(sc.s) {
		r, sz := utf8.DecodeRuneInString(sc.s[sc.i:])
		if !identRune(r) {
			break
		}
		sc.i += sz
	}
	return sc.s[start:sc.i]
}

func identRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-'
}

// selector parses one bracketed selector; the scanner is at '['.
func (sc *scanner) selector() (*Path, error) {
	bpos := sc.i
	sc.i++
	sc.skipSpace()
	if sc.eof() {
		return nil, syntaxErr(bpos, "unterminated selector")
	}
	c := sc.s[sc.i]
	switch {
	case c == '\'' || c == '"':
		key, err := sc.quoted()
		if err != nil {
			return nil, err
		}
		if err := sc.expect(']'); err != nil {
			return nil, err
		}
		return &Path{Key: &key}, nil
	case digitOrMinus(sc.s[sc.i:]):
		start := sc.i
		idx, err := sc.integer()
		if err != nil {
			return nil, err
		}
		if !sc.eof() && sc.s[sc.i] == '.' {
			return nil, syntaxErr(start, "expected integer index")
		}
		if err := sc.expect(']'); err != nil {
			return nil, err
		}
		return &Path{Index: &idx}, nil
	default:
		field := sc.ident()
		if field == "" {
			return nil, syntaxErr(sc.i, "unexpected character %q in selector", c)
		}
		sc.skipSpace()
		if sc.eof() || sc.s[sc.i] != '=' {
			return nil, syntaxErr(sc.i, "expected '=' after identifier in selector")
		}
		sc.i++
		sc.skipSpace()
		value, err := sc.literal()
		if err != nil {
			return nil, err
		}
		if err := sc.expect(']'); err != nil {
			return nil, err
		}
		return &Path{Filter: &Filter{Field: field, Value: value}}, nil
	}
}

// literal parses a filter value: a quoted string, a bare number, or a
// bare identifier (true/false become booleans, the rest strings).
func (sc *scanner) literal() (*ir.Node, error) {
	if sc.eof() {
		return nil, syntaxErr(sc.i, "expected literal value")
	}
	c := sc.s[sc.i]
	switch {
	case c == '\'' || c == '"':
		s, err := sc.quoted()
		if err != nil {
			return nil, err
		}
		return ir.FromString(s), nil
	case digitOrMinus(sc.s[sc.i:]):
		return sc.number()
	default:
		word := sc.ident()
		if word == "" {
			return nil, syntaxErr(sc.i, "expected literal value, got %q", c)
		}
		switch word {
		case "true":
			return ir.FromBool(true), nil
		case "false":
			return ir.FromBool(false), nil
		}
		return ir.FromString(word), nil
	}
}

func digitOrMinus(s string) bool {
	if len(s) == 0 {
		return false
	}
	if s[0] >= '0' && s[0] <= '9' {
		return true
	}
	return s[0] == '-' && len(s) > 1 && s[1] >= '0' && s[1] <= '9'
}

func (sc *scanner) integer() (int, error) {
	start := sc.i
	if sc.s[sc.i] == '-' {
		sc.i++
	}
	for !sc.eof() && sc.s[sc.i] >= '0' && sc.s[sc.i] <= '9' {
		sc.i++
	}
	v, err := strconv.Atoi(sc.s[start:sc.i])
	if err != nil {
		return 0, syntaxErr(start, "bad integer %q", sc.s[start:sc.i])
	}
	return v, nil
}

func (sc *scanner) number() (*ir.Node, error) {
	start := sc.i
	if sc.s[sc.i] == '-' {
		sc.i++
	}
	for !sc.eof() && sc.s[sc.i] >= '0' && sc.s[sc.i] <= '9' {
		sc.i++
	}
	isFloat := false
	if !sc.eof() && sc.s[sc.i] == '.' {
		isFloat = true
		sc.i++
		digits := 0
		for !sc.eof() && sc.s[sc.i] >= '0' && sc.s[sc.i] <= '9' {
			sc.i++
			digits++
		}
		if digits == 0 {
			return nil, syntaxErr(start, "bad number %q", sc.s[start:sc.i])
		}
	}
	lit := sc.s[start:sc.i]
	if isFloat {
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return nil, syntaxErr(start, "bad number %q", lit)
		}
		return ir.FromFloat(f), nil
	}
	v, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		return nil, syntaxErr(start, "bad integer %q", lit)
	}
	return ir.FromInt(v), nil
}

// quoted scans a quoted string at the current position; both quote
// styles are accepted, with backslash escapes for the quote character
// and the backslash itself.
func (sc *scanner) quoted() (string, error) {
	start := sc.i
	q := sc.s[sc.i]
	sc.i++
	res := make([]byte, 0, 16)
	for !sc.eof() {
		c := sc.s[sc.i]
		switch c {
		case '\\':
			if sc.i+1 < len(sc.s) {
				nxt := sc.s[sc.i+1]
				if nxt == q || nxt == '\\' {
					res = append(res, nxt)
					sc.i += 2
					continue
				}
			}
			res = append(res, c)
			sc.i++
		case q:
			sc.i++
			return string(res), nil
		default:
			res = append(res, c)
			sc.i++
		}
	}
	return "", syntaxErr(start, "unterminated string")
}

func (sc *scanner) expect(c byte) error {
	sc.skipSpace()
	if sc.eof() || sc.s[sc.i] != c {
		return syntaxErr(sc.i, "expected %q", string(c))
	}
	sc.i++
	return nil
}
