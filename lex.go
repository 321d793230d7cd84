package calculator

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Rc-Cookie/calculator-sub000/number"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
	// val is the value of a number token.
	val number.Number
	// n is the number of elements in a group, set on close tokens by the
	// postfix converter.
	n int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenNum is a decimal literal.
	tokenNum
	// tokenIdent is a variable or function name.
	tokenIdent
	// tokenOp is an infix operator.
	tokenOp
	// tokenUnary is a prefix - or +.
	tokenUnary
	// tokenPostfix is a postfix operator, e.g. !.
	tokenPostfix
	// tokenImplicit separates adjacent operands with no operator between.
	tokenImplicit
	// tokenCall follows a name that is immediately followed by (.
	tokenCall
	// tokenOpen is an open bracket or an absolute value bar that opens.
	tokenOpen
	// tokenClose is a close bracket or an absolute value bar that closes.
	tokenClose
	// tokenSep is the element separator ,.
	tokenSep
)

var tokenKindNames = [...]string{
	tokenNone:     "None",
	tokenEOF:      "EOF",
	tokenNum:      "Num",
	tokenIdent:    "Ident",
	tokenOp:       "Op",
	tokenUnary:    "Unary",
	tokenPostfix:  "Postfix",
	tokenImplicit: "Implicit",
	tokenCall:     "Call",
	tokenOpen:     "Open",
	tokenClose:    "Close",
	tokenSep:      "Sep",
}

func (k tokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenKindNames[k]
}

// Operators contains the runes which begin operators. The two-rune operators
// are := =: -> <= and >=.
const Operators = "+-*/^×÷=<>:;!°%²³"

// twoRuneOps are the operators spelled with two runes.
var twoRuneOps = map[string]bool{
	":=": true,
	"=:": true,
	"->": true,
	"<=": true,
	">=": true,
}

// brackets maps each open bracket to its close bracket. The outer group that
// the converter adds around the whole input uses the empty string.
var brackets = map[string]string{
	"(": ")",
	"[": "]",
	"|": "|",
	"":  "",
}

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
	p    lexToken
	eof  bool
	// prev is the last token returned from next.
	prev lexToken
	// bars has an entry for each open group, true if the group was opened by
	// an absolute value bar.
	bars []bool
	// wseof is a string containing the whitespace characters that end the
	// input when they follow a complete expression.
	wseof string
}

func lex(src io.RuneScanner, wseof string) *lexer {
	return &lexer{
		src:   src,
		rune:  1,
		wseof: wseof,
	}
}

// push unreads a token so that it is the next token returned from next. Panics
// if there is already a pushed token.
func (l *lexer) push(tok lexToken) {
	if l.p.kind != tokenNone {
		panic("calculator: double push")
	}
	l.p = tok
}

// must scans the pushed token. Panics if there is no pushed token.
func (l *lexer) must() lexToken {
	tok := l.p
	if tok.kind == tokenNone {
		panic("calculator: no pushed token")
	}
	l.p = lexToken{}
	return tok
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// operand reports whether the previous token ends an operand, so that the
// next token either continues it with an operator or begins an implicit
// operation.
func (l *lexer) operand() bool {
	switch l.prev.kind {
	case tokenNum, tokenIdent, tokenClose, tokenPostfix:
		return true
	}
	return false
}

// inBars reports whether the innermost open group was opened by a bar.
func (l *lexer) inBars() bool {
	return len(l.bars) > 0 && l.bars[len(l.bars)-1]
}

// next returns the next token of the input, resolving the tokens whose meaning
// depends on what precedes them. It inserts implicit operation and call marker
// tokens, distinguishes prefix from infix + and -, and decides whether a bar
// opens or closes a group. The first time EOF is encountered, the result is an
// EOF token with a nil error. Subsequent times, the result is an empty token
// with io.EOF.
func (l *lexer) next() (lexToken, error) {
	if l.p.kind != tokenNone {
		return l.emit(l.must()), nil
	}
	tok, err := l.scan()
	if err != nil {
		return tok, err
	}
	var ins lexToken
	switch tok.kind {
	case tokenNum, tokenIdent:
		if l.operand() {
			ins = lexToken{kind: tokenImplicit, pos: tok.pos}
		}
	case tokenOpen:
		bar := tok.text == "|"
		switch {
		case bar && l.operand() && l.inBars():
			tok.kind = tokenClose
			l.bars = l.bars[:len(l.bars)-1]
		case tok.text == "(" && l.prev.kind == tokenIdent && l.adjacent(tok):
			ins = lexToken{kind: tokenCall, pos: tok.pos}
		case l.operand():
			ins = lexToken{kind: tokenImplicit, pos: tok.pos}
		}
		if tok.kind == tokenOpen {
			l.bars = append(l.bars, bar)
		}
	case tokenClose:
		// A bracket closing a bar group is left for the converter to report.
		if len(l.bars) > 0 && !l.inBars() {
			l.bars = l.bars[:len(l.bars)-1]
		}
	case tokenOp:
		if (tok.text == "-" || tok.text == "+") && !l.operand() {
			tok.kind = tokenUnary
		}
	}
	if ins.kind != tokenNone {
		l.push(tok)
		return l.emit(ins), nil
	}
	return l.emit(tok), nil
}

func (l *lexer) emit(tok lexToken) lexToken {
	l.prev = tok
	return tok
}

// adjacent reports whether tok immediately follows the previous token.
func (l *lexer) adjacent(tok lexToken) bool {
	return tok.pos == l.prev.pos+utf8.RuneCountInString(l.prev.text)
}

// scan reads the next raw token. Bars are returned as open tokens.
func (l *lexer) scan() (lexToken, error) {
	if l.eof {
		return lexToken{}, io.EOF
	}
	defer l.buf.Reset()
	tok := lexToken{pos: l.rune}
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				tok.kind = tokenEOF
				l.eof = true
				return tok, nil
			}
			return tok, err
		}
		switch {
		case unicode.IsSpace(r):
			if strings.ContainsRune(l.wseof, r) && l.operand() && len(l.bars) == 0 {
				tok.kind = tokenEOF
				l.eof = true
				return tok, nil
			}
			tok.pos++
			continue
		case '0' <= r && r <= '9', r == '.':
			l.unreadRune()
			if err := l.scanNum(); err != nil {
				return tok, err
			}
			tok.text = l.buf.String()
			v, err := number.ParseDecimal(tok.text)
			if err != nil {
				return tok, &LexError{Text: tok.text, Kind: "number", Col: tok.pos}
			}
			tok.val = v
			tok.kind = tokenNum
			return tok, nil
		case r == '_', unicode.IsLetter(r):
			l.unreadRune()
			if err := l.scanIdent(); err != nil {
				return tok, err
			}
			tok.text = l.buf.String()
			tok.kind = tokenIdent
			return tok, nil
		case r == ',':
			tok.text = ","
			tok.kind = tokenSep
			return tok, nil
		case r == '(', r == '[', r == '|':
			tok.text = string(r)
			tok.kind = tokenOpen
			return tok, nil
		case r == ')', r == ']':
			tok.text = string(r)
			tok.kind = tokenClose
			return tok, nil
		case strings.ContainsRune(Operators, r):
			if err := l.scanOp(r); err != nil {
				return tok, err
			}
			tok.text = l.buf.String()
			tok.kind = tokenOp
			if _, ok := postfixFor[tok.text]; ok {
				tok.kind = tokenPostfix
			}
			return tok, nil
		default:
			// Write the rune so that it shows up in the error message.
			l.buf.WriteRune(r)
			return tok, l.error("")
		}
	}
}

// scanNum scans a decimal literal: digits with at most one decimal point.
func (l *lexer) scanNum() error {
	var dig, dot bool
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if r == '.' {
			l.buf.WriteRune(r)
			if dot {
				return l.error("number")
			}
			dot = true
			continue
		}
		if r < '0' || r > '9' {
			l.unreadRune()
			break
		}
		l.buf.WriteRune(r)
		dig = true
	}
	if !dig {
		return l.error("number")
	}
	return nil
}

func (l *lexer) scanIdent() error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// next unreads the rune that decides ident scanning before
				// calling scanIdent, so we have scanned at least one rune.
				return nil
			}
			return err
		}
		switch {
		case r == '_', unicode.IsLetter(r), unicode.IsDigit(r):
			l.buf.WriteRune(r)
		default:
			l.unreadRune()
			return nil
		}
	}
}

// scanOp scans an operator beginning with r, which has already been read.
func (l *lexer) scanOp(r rune) error {
	l.buf.WriteRune(r)
	s, err := l.readRune()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return err
		}
	} else if twoRuneOps[string(r)+string(s)] {
		l.buf.WriteRune(s)
		return nil
	} else {
		l.unreadRune()
	}
	if r == ':' {
		return l.error("operator")
	}
	return nil
}

func (l *lexer) error(kind string) error {
	return &LexError{
		Text: l.buf.String(),
		Kind: kind,
		Col:  l.rune,
	}
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the token the lexer was scanning when the invalid rune was
	// encountered, plus the invalid rune.
	Text string
	// Kind is the type of token the lexer was scanning. This may be "number",
	// "operator", or the empty string (if a token kind hadn't been decided).
	Kind string
	// Col is the total number of runes scanned by the lexer up to and
	// including this error.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "" {
		return "invalid token at " + pos + ": " + err.Text
	}
	return "invalid " + err.Kind + " token at " + pos + ": " + err.Text
}

func (err *LexError) Pos() int {
	return err.Col
}
