package arith

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

// TokenKind is the type of a lexical token.
type TokenKind int8

const (
	// TokenNone is the zero kind. The lexer never produces it.
	TokenNone TokenKind = iota

	TokenOpenParen
	TokenCloseParen
	TokenAsterisk
	TokenCaret
	TokenPlus
	TokenMinus
	TokenSlash
	TokenComma
	TokenPipe
	TokenEqual
	// TokenNumber is a number literal. Its value is in the Num field.
	TokenNumber
	// TokenIdent is a function or variable name. Its text is in the Ident field.
	TokenIdent
)

// Punctuation contains the runes which the lexer maps directly to tokens.
const Punctuation = "()*^+-/,|="

var punctkinds = [...]TokenKind{
	TokenOpenParen,
	TokenCloseParen,
	TokenAsterisk,
	TokenCaret,
	TokenPlus,
	TokenMinus,
	TokenSlash,
	TokenComma,
	TokenPipe,
	TokenEqual,
}

func (k TokenKind) String() string {
	switch k {
	case TokenNone:
		return "None"
	case TokenOpenParen:
		return "OpenParen"
	case TokenCloseParen:
		return "CloseParen"
	case TokenAsterisk:
		return "Asterisk"
	case TokenCaret:
		return "Caret"
	case TokenPlus:
		return "Plus"
	case TokenMinus:
		return "Minus"
	case TokenSlash:
		return "Slash"
	case TokenComma:
		return "Comma"
	case TokenPipe:
		return "Pipe"
	case TokenEqual:
		return "Equal"
	case TokenNumber:
		return "Number"
	case TokenIdent:
		return "Identifier"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Token is a lexical token. Tokens are comparable values.
type Token struct {
	Kind TokenKind
	// Num is the value of a TokenNumber.
	Num float64
	// Ident is the text of a TokenIdent.
	Ident string
}

// Punct returns the token for a punctuation kind.
func Punct(k TokenKind) Token {
	return Token{Kind: k}
}

// NumberToken returns a number token.
func NumberToken(v float64) Token {
	return Token{Kind: TokenNumber, Num: v}
}

// IdentToken returns an identifier token.
func IdentToken(name string) Token {
	return Token{Kind: TokenIdent, Ident: name}
}

// String formats the token as it would appear in source.
func (t Token) String() string {
	switch t.Kind {
	case TokenNumber:
		return strconv.FormatFloat(t.Num, 'g', -1, 64)
	case TokenIdent:
		return t.Ident
	case TokenNone:
		return "<none>"
	}
	for i, k := range punctkinds {
		if k == t.Kind {
			return Punctuation[i : i+1]
		}
	}
	return t.Kind.String()
}

// Lexer converts a rune stream into tokens. Each call to Next advances
// through the input; there is no way to rewind.
type Lexer struct {
	src io.RuneScanner
	buf strings.Builder
	eof bool
}

// NewLexer creates a lexer reading from src.
func NewLexer(src io.RuneScanner) *Lexer {
	return &Lexer{src: src}
}

// Next scans the next token. At the end of the input, the result is io.EOF,
// and every later call also returns io.EOF.
func (l *Lexer) Next() (Token, error) {
	if l.eof {
		return Token{}, io.EOF
	}
	defer l.buf.Reset()
	for {
		r, err := l.read()
		if err != nil {
			return Token{}, err
		}
		switch {
		case r == ' ', r == '\t', r == '\r':
			continue
		case '0' <= r && r <= '9':
			l.unread()
			return l.scanNum()
		case isLetter(r):
			l.unread()
			return l.scanIdent()
		default:
			if k := strings.IndexRune(Punctuation, r); k >= 0 {
				return Token{Kind: punctkinds[k]}, nil
			}
			return Token{}, &CharError{Char: r}
		}
	}
}

// read reads a rune, noting the end of input.
func (l *Lexer) read() (rune, error) {
	r, _, err := l.src.ReadRune()
	if errors.Is(err, io.EOF) {
		l.eof = true
		return 0, io.EOF
	}
	return r, err
}

// unread unreads the last rune read. Panics if the scanner refuses.
func (l *Lexer) unread() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
}

// scanNum scans digits with at most one decimal point.
func (l *Lexer) scanNum() (Token, error) {
	dot := false
	for {
		r, _, err := l.src.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return Token{}, err
		}
		if r == '.' {
			if dot {
				return Token{}, &CharError{Char: r, InNumber: true}
			}
			dot = true
		} else if r < '0' || r > '9' {
			l.unread()
			break
		}
		l.buf.WriteRune(r)
	}
	v, err := strconv.ParseFloat(l.buf.String(), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		// Only digits and one dot reach here.
		panic("arith: unparseable number " + strconv.Quote(l.buf.String()) + ": " + err.Error())
	}
	// ParseFloat gives ±Inf on overflow, which is the value we want.
	return Token{Kind: TokenNumber, Num: v}, nil
}

// scanIdent scans a maximal run of ASCII letters.
func (l *Lexer) scanIdent() (Token, error) {
	for {
		r, _, err := l.src.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// Next unreads the first letter before calling scanIdent, so
				// we have scanned at least one rune.
				break
			}
			return Token{}, err
		}
		if !isLetter(r) {
			l.unread()
			break
		}
		l.buf.WriteRune(r)
	}
	return Token{Kind: TokenIdent, Ident: l.buf.String()}, nil
}

func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}
