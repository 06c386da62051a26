package regex

// opStyle says how an operator is spelled in a dialect
type opStyle int

const (
	opNone    opStyle = iota // not an operator, always literal
	opBare                   // the plain character is the operator
	opEscaped                // the backslash form is the operator
)

// syntax describes one dialect's grammar. The presets mirror the classic
// emacs/grep/POSIX syntax tables regex libraries have shipped for decades.
type syntax struct {
	groups       opStyle
	alternation  opStyle
	intervals    opStyle
	plusQuestion opStyle

	posixClasses   bool // [[:alpha:]], [.x.], [=x=]
	wordOps        bool // \w \W \b \B \< \>
	bufferAnchors  bool // \` and \'
	controlEscapes bool // \n \t \r \f \v \a \e

	contextAnchors   bool // ^ and $ only anchor at the edges of a branch
	lineAnchors      bool // ^ and $ match around newlines, not just the string ends
	strictRepeat     bool // a repeat operator without an operand is an error, not a literal
	looseClose       bool // an unmatched close paren is a literal
	dotNewline       bool // . matches newline
	negatedNewline   bool // [^...] matches newline
	allowEmptyRanges bool // z-a inside brackets is dropped instead of rejected
}

// syntaxFor returns the grammar for a dialect. Every dialect in AllDialects
// must have a case here.
func syntaxFor(d RegexDialect) (syntax, bool) {
	switch d {
	case EmacsStyle:
		return syntax{
			groups:           opEscaped,
			alternation:      opEscaped,
			intervals:        opEscaped,
			plusQuestion:     opBare,
			bufferAnchors:    true,
			controlEscapes:   true,
			contextAnchors:   true,
			lineAnchors:      true,
			negatedNewline:   true,
			allowEmptyRanges: true,
		}, true
	case GrepStyle:
		return syntax{
			groups:           opEscaped,
			alternation:      opEscaped,
			intervals:        opEscaped,
			plusQuestion:     opEscaped,
			posixClasses:     true,
			wordOps:          true,
			contextAnchors:   true,
			lineAnchors:      true,
			allowEmptyRanges: true,
		}, true
	case PosixBasic:
		return syntax{
			groups:         opEscaped,
			alternation:    opNone,
			intervals:      opEscaped,
			plusQuestion:   opNone,
			posixClasses:   true,
			controlEscapes: true,
			contextAnchors: true,
			dotNewline:     true,
			negatedNewline: true,
		}, true
	case PosixExtended:
		return syntax{
			groups:         opBare,
			alternation:    opBare,
			intervals:      opBare,
			plusQuestion:   opBare,
			posixClasses:   true,
			controlEscapes: true,
			strictRepeat:   true,
			looseClose:     true,
			dotNewline:     true,
			negatedNewline: true,
		}, true
	}
	return syntax{}, false
}
