package regex

import (
	"fmt"
	"strings"
)

// maxRepeat is the largest interval bound accepted, RE_DUP_MAX on most systems.
const maxRepeat = 0x7fff

// engineMeta lists characters regexp2 treats specially outside a class.
const engineMeta = `\.+*?()|[]{}^$#`

// posixClassBodies holds the Unicode rendition of each [:class:]. Only
// xdigit stays ASCII.
var posixClassBodies = map[string]string{
	"alpha":  `\p{L}\p{M}`,
	"digit":  `\p{Nd}`,
	"alnum":  `\p{L}\p{M}\p{Nd}`,
	"upper":  `\p{Lu}`,
	"lower":  `\p{Ll}`,
	"space":  `\s`,
	"blank":  `\p{Zs}\t`,
	"punct":  `\p{P}\p{S}`,
	"print":  `\p{L}\p{M}\p{N}\p{P}\p{S}\p{Zs}`,
	"graph":  `\p{L}\p{M}\p{N}\p{P}\p{S}`,
	"cntrl":  `\p{Cc}`,
	"xdigit": `0-9A-Fa-f`,
	"word":   `\w`,
}

// casedLetters replaces [:upper:] and [:lower:] under case folding. The
// engine folds ranges but not categories.
const casedLetters = `\p{Lu}\p{Ll}\p{Lt}`

var controlEscapes = map[rune]rune{
	'n': '\n',
	't': '\t',
	'r': '\r',
	'f': '\f',
	'v': '\v',
	'a': '\a',
	'e': 0x1b,
}

// SyntaxError describes a pattern the selected dialect cannot parse
type SyntaxError struct {
	Offset int    // Rune offset in the pattern
	Msg    string // What went wrong
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Msg, e.Offset)
}

// translator lowers a dialect pattern onto the engine's grammar
type translator struct {
	syn  syntax
	fold bool
	src  []rune
	pos int
	out []byte

	groups   []int // output offsets of currently open groups
	opened   int   // capture groups opened so far
	atom     int   // output offset of the last quantifiable atom, -1 if none
	repeated bool  // the last atom already carries a quantifier
	edge     bool  // at the start of a branch
}

// translate rewrites pattern, written in the grammar described by syn, into
// an equivalent expression for the engine. Capture group numbering is kept.
// fold tells it the expression will be matched case-insensitively.
func translate(syn syntax, pattern string, fold bool) (string, error) {
	t := &translator{
		syn:  syn,
		fold: fold,
		src:  []rune(pattern),
		atom: -1,
		edge: true,
	}
	if err := t.run(); err != nil {
		return "", err
	}
	return string(t.out), nil
}

func (t *translator) fail(offset int, format string, args ...interface{}) error {
	return &SyntaxError{Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

func (t *translator) run() error {
	for t.pos < len(t.src) {
		c := t.src[t.pos]
		t.pos++

		var err error
		switch c {
		case '\\':
			err = t.escape()
		case '[':
			err = t.bracket()
		case '.':
			if t.syn.dotNewline {
				t.emitAtom(`(?s:.)`)
			} else {
				t.emitAtom(`.`)
			}
		case '*':
			err = t.repeat("*", "*")
		case '^':
			t.caret()
		case '$':
			t.dollar()
		default:
			err = t.plain(c)
		}
		if err != nil {
			return err
		}
	}

	if len(t.groups) > 0 {
		return t.fail(len(t.src), "unmatched open parenthesis")
	}
	return nil
}

// plain handles an unescaped character that may be an operator in this dialect
func (t *translator) plain(c rune) error {
	switch c {
	case '(':
		if t.syn.groups == opBare {
			t.openGroup()
			return nil
		}
	case ')':
		if t.syn.groups == opBare {
			return t.closeGroup()
		}
	case '|':
		if t.syn.alternation == opBare {
			t.alternate()
			return nil
		}
	case '{':
		if t.syn.intervals == opBare {
			return t.interval(false)
		}
	case '+', '?':
		if t.syn.plusQuestion == opBare {
			return t.repeat(string(c), string(c))
		}
	}
	t.literal(c)
	return nil
}

// escape handles the character following a backslash
func (t *translator) escape() error {
	if t.pos >= len(t.src) {
		return t.fail(t.pos-1, "trailing backslash")
	}
	c := t.src[t.pos]
	t.pos++

	switch c {
	case '(':
		if t.syn.groups == opEscaped {
			t.openGroup()
			return nil
		}
	case ')':
		if t.syn.groups == opEscaped {
			return t.closeGroup()
		}
	case '|':
		if t.syn.alternation == opEscaped {
			t.alternate()
			return nil
		}
	case '{':
		if t.syn.intervals == opEscaped {
			return t.interval(true)
		}
	case '+', '?':
		if t.syn.plusQuestion == opEscaped {
			return t.repeat(string(c), string(c))
		}
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		n := int(c - '0')
		if n > t.opened {
			return t.fail(t.pos-2, "invalid back reference \\%d", n)
		}
		t.emitAtom(fmt.Sprintf(`(?:\%d)`, n))
		return nil
	case 'w', 'W':
		if t.syn.wordOps {
			t.emitAtom(`\` + string(c))
			return nil
		}
	case 'b', 'B':
		if t.syn.wordOps {
			t.anchor(`\` + string(c))
			return nil
		}
	case '<':
		if t.syn.wordOps {
			t.anchor(`\b(?=\w)`)
			return nil
		}
	case '>':
		if t.syn.wordOps {
			t.anchor(`\b(?<=\w)`)
			return nil
		}
	case '`':
		if t.syn.bufferAnchors {
			t.anchor(`\A`)
			return nil
		}
	case '\'':
		if t.syn.bufferAnchors {
			t.anchor(`\z`)
			return nil
		}
	}

	if ctl, ok := controlEscapes[c]; ok && t.syn.controlEscapes {
		t.literal(ctl)
		return nil
	}
	t.literal(c)
	return nil
}

func (t *translator) caret() {
	if !t.syn.contextAnchors || t.edge {
		if t.syn.lineAnchors {
			t.anchor(`(?m:^)`)
		} else {
			t.anchor(`\A`)
		}
		return
	}
	t.literal('^')
}

func (t *translator) dollar() {
	if !t.syn.contextAnchors || t.atBranchEnd() {
		if t.syn.lineAnchors {
			t.anchor(`(?m:$)`)
		} else {
			t.anchor(`\z`)
		}
		return
	}
	t.literal('$')
}

// atBranchEnd reports whether the cursor sits at the end of the pattern, a
// group or an alternative.
func (t *translator) atBranchEnd() bool {
	if t.pos >= len(t.src) {
		return true
	}
	next := t.src[t.pos]
	if next == '\\' && t.pos+1 < len(t.src) {
		switch t.src[t.pos+1] {
		case ')':
			return t.syn.groups == opEscaped
		case '|':
			return t.syn.alternation == opEscaped
		}
		return false
	}
	switch next {
	case ')':
		return t.syn.groups == opBare
	case '|':
		return t.syn.alternation == opBare
	}
	return false
}

func (t *translator) emitAtom(s string) {
	t.atom = len(t.out)
	t.out = append(t.out, s...)
	t.repeated = false
	t.edge = false
}

func (t *translator) anchor(s string) {
	t.out = append(t.out, s...)
	t.atom = -1
	t.repeated = false
	t.edge = false
}

func (t *translator) literal(c rune) {
	if strings.ContainsRune(engineMeta, c) {
		t.emitAtom(`\` + string(c))
		return
	}
	t.emitAtom(string(c))
}

// repeat applies quantifier q to the last atom. Without an operand the
// operator is either an error or the literal text lit; an empty lit always
// means error.
func (t *translator) repeat(q, lit string) error {
	if t.atom < 0 {
		if t.syn.strictRepeat || lit == "" {
			return t.fail(t.pos-1, "target of repeat operator is not specified")
		}
		for _, c := range lit {
			t.literal(c)
		}
		return nil
	}

	// Stacked quantifiers nest; the engine would read a*? as lazy.
	if t.repeated {
		inner := string(t.out[t.atom:])
		t.out = append(t.out[:t.atom], "(?:"+inner+")"...)
	}
	t.out = append(t.out, q...)
	t.repeated = true
	t.edge = false
	return nil
}

func (t *translator) openGroup() {
	t.groups = append(t.groups, len(t.out))
	t.out = append(t.out, '(')
	t.opened++
	t.atom = -1
	t.repeated = false
	t.edge = true
}

func (t *translator) closeGroup() error {
	if len(t.groups) == 0 {
		if t.syn.looseClose {
			t.literal(')')
			return nil
		}
		return t.fail(t.pos-1, "unmatched close parenthesis")
	}
	start := t.groups[len(t.groups)-1]
	t.groups = t.groups[:len(t.groups)-1]
	t.out = append(t.out, ')')
	t.atom = start
	t.repeated = false
	t.edge = false
	return nil
}

func (t *translator) alternate() {
	t.out = append(t.out, '|')
	t.atom = -1
	t.repeated = false
	t.edge = true
}

// interval parses the bounds following an opening brace and applies them
func (t *translator) interval(escaped bool) error {
	start := t.pos - 1
	if escaped {
		start--
	}

	lo, hasLo, err := t.bound(start)
	if err != nil {
		return err
	}
	hi, hasHi := lo, hasLo
	comma := t.pos < len(t.src) && t.src[t.pos] == ','
	if comma {
		t.pos++
		hi, hasHi, err = t.bound(start)
		if err != nil {
			return err
		}
	}

	if escaped {
		if t.pos+1 >= len(t.src) || t.src[t.pos] != '\\' || t.src[t.pos+1] != '}' {
			return t.fail(start, "invalid interval")
		}
		t.pos += 2
	} else {
		if t.pos >= len(t.src) || t.src[t.pos] != '}' {
			return t.fail(start, "invalid interval")
		}
		t.pos++
	}

	// A lower bound is mandatory, so {,n} is rejected.
	if !hasLo {
		return t.fail(start, "invalid interval")
	}

	var q string
	switch {
	case !comma:
		q = fmt.Sprintf("{%d}", lo)
	case !hasHi:
		q = fmt.Sprintf("{%d,}", lo)
	default:
		if hi < lo {
			return t.fail(start, "invalid interval bounds {%d,%d}", lo, hi)
		}
		q = fmt.Sprintf("{%d,%d}", lo, hi)
	}
	return t.repeat(q, "")
}

// bound reads an optional decimal interval bound
func (t *translator) bound(start int) (int, bool, error) {
	n, digits := 0, 0
	for t.pos < len(t.src) && t.src[t.pos] >= '0' && t.src[t.pos] <= '9' {
		n = n*10 + int(t.src[t.pos]-'0')
		if n > maxRepeat {
			return 0, false, t.fail(start, "interval bound exceeds %d", maxRepeat)
		}
		digits++
		t.pos++
	}
	return n, digits > 0, nil
}

// bracket translates a POSIX bracket expression. Backslash is literal inside.
func (t *translator) bracket() error {
	start := t.pos - 1
	negated := false
	if t.pos < len(t.src) && t.src[t.pos] == '^' {
		negated = true
		t.pos++
	}

	var body strings.Builder
	first := true
	for {
		if t.pos >= len(t.src) {
			return t.fail(start, "unterminated bracket expression")
		}
		if t.src[t.pos] == ']' && !first {
			t.pos++
			break
		}
		first = false

		lo, class, err := t.bracketItem(start)
		if err != nil {
			return err
		}
		if class != "" {
			body.WriteString(class)
			continue
		}

		if t.pos+1 < len(t.src) && t.src[t.pos] == '-' && t.src[t.pos+1] != ']' {
			t.pos++
			hi, hiClass, err := t.bracketItem(start)
			if err != nil {
				return err
			}
			if hiClass != "" {
				return t.fail(start, "invalid range end")
			}
			if hi < lo {
				if t.syn.allowEmptyRanges {
					continue
				}
				return t.fail(start, "invalid range %c-%c", lo, hi)
			}
			body.WriteString(classChar(lo) + "-" + classChar(hi))
			continue
		}
		body.WriteString(classChar(lo))
	}

	if negated && !t.syn.negatedNewline {
		body.WriteString(`\n`)
	}

	switch {
	case body.Len() == 0 && negated:
		t.emitAtom(`[\s\S]`)
	case body.Len() == 0:
		t.emitAtom(`[^\s\S]`)
	case negated:
		t.emitAtom("[^" + body.String() + "]")
	default:
		t.emitAtom("[" + body.String() + "]")
	}
	return nil
}

// bracketItem reads a single character or, where the dialect allows it, a
// [:class:], [.c.] or [=c=] element. A class comes back as an engine class body.
func (t *translator) bracketItem(start int) (rune, string, error) {
	c := t.src[t.pos]
	if c == '[' && t.syn.posixClasses && t.pos+1 < len(t.src) {
		switch delim := t.src[t.pos+1]; delim {
		case ':', '.', '=':
			end := t.findClose(t.pos+2, delim)
			if end < 0 {
				return 0, "", t.fail(start, "unterminated [%c element", delim)
			}
			name := string(t.src[t.pos+2 : end])
			t.pos = end + 2
			if delim == ':' {
				body, ok := posixClassBodies[name]
				if !ok {
					return 0, "", t.fail(start, "unknown character class %q", name)
				}
				if t.fold && (name == "upper" || name == "lower") {
					body = casedLetters
				}
				return 0, body, nil
			}
			elem := []rune(name)
			if len(elem) != 1 {
				return 0, "", t.fail(start, "unsupported collating element %q", name)
			}
			return elem[0], "", nil
		}
	}
	t.pos++
	return c, "", nil
}

// findClose locates the delim] terminator of a bracket element
func (t *translator) findClose(from int, delim rune) int {
	for i := from; i+1 < len(t.src); i++ {
		if t.src[i] == delim && t.src[i+1] == ']' {
			return i
		}
	}
	return -1
}

// classChar escapes a character for use inside an engine character class
func classChar(c rune) string {
	switch c {
	case '\\', ']', '[', '^', '-':
		return `\` + string(c)
	}
	return string(c)
}
