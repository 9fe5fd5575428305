package scheme

import (
	"io"
	"strconv"
	"strings"
	"text/scanner"
	"unicode"
)

// TokenKind classifies tokens.
type TokenKind int

const (
	TokOpen TokenKind = iota
	TokClose
	TokQuote
	TokDot
	TokInt
	TokSymbol
	TokString
)

// Token is a lexical unit of the source text.
type Token struct {
	Kind TokenKind
	Text string // symbol name or string contents
	Int  int64
}

// ErrIncomplete is reported when the tokens run out in the middle of
// an expression.
var ErrIncomplete = &Error{Kind: SyntaxError, Msg: "unexpected end of input"}

// SplitIntoTokens splits a source text into tokens.
func SplitIntoTokens(src io.Reader) ([]Token, error) {
	result := make([]Token, 0, 100)
	var err error
	var scn scanner.Scanner
	scn.Init(src)
	scn.Mode = scanner.ScanIdents | scanner.ScanStrings
	scn.IsIdentRune = func(ch rune, i int) bool {
		return (unicode.IsPrint(ch) && ch != ' ' && ch != ';' &&
			ch != '(' && ch != ')' && ch != '\'' && ch != '"')
	}
	scn.Error = func(s *scanner.Scanner, msg string) {
		if err == nil {
			err = newError(SyntaxError, "%s at %s", msg, s.Position)
		}
	}
	scn.Whitespace ^= 1 << '\n' // Don't skip new lines.
	scn.Whitespace |= 1 << '\f'
LOOP:
	for tok := scn.Scan(); tok != scanner.EOF && err == nil; tok = scn.Scan() {
		switch tok {
		case ';': // Skip ;-comment
			for {
				tok = scn.Scan()
				if tok == scanner.EOF || tok == '\n' {
					continue LOOP
				}
			}
		case '\n':
			continue LOOP
		case '(':
			result = append(result, Token{Kind: TokOpen})
		case ')':
			result = append(result, Token{Kind: TokClose})
		case '\'':
			result = append(result, Token{Kind: TokQuote})
		case scanner.String:
			text, uerr := strconv.Unquote(scn.TokenText())
			if uerr != nil {
				return nil, newError(SyntaxError, "bad string %s at %s",
					scn.TokenText(), scn.Position)
			}
			result = append(result, Token{Kind: TokString, Text: text})
		case scanner.Ident:
			t, terr := identToken(scn.TokenText())
			if terr != nil {
				return nil, newError(SyntaxError, "%s at %s", terr.Msg, scn.Position)
			}
			result = append(result, t)
		default:
			return nil, newError(SyntaxError, "illegal char %q at %s", tok, scn.Position)
		}
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// identToken turns an identifier-like word into a dot, an integer or
// a symbol. A lone sign is a symbol.
func identToken(text string) (Token, *Error) {
	if text == "." {
		return Token{Kind: TokDot}, nil
	}
	if isInteger(text) {
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return Token{}, newError(SyntaxError, "integer %s out of range", text)
		}
		return Token{Kind: TokInt, Int: n}, nil
	}
	return Token{Kind: TokSymbol, Text: text}, nil
}

func isInteger(text string) bool {
	digits := strings.TrimLeft(text, "+-")
	if len(text)-len(digits) > 1 || digits == "" {
		return false
	}
	for _, ch := range digits {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}

func peek(tokens *[]Token) (Token, error) {
	if len(*tokens) == 0 {
		return Token{}, ErrIncomplete
	}
	return (*tokens)[0], nil
}

func pop(tokens *[]Token) (Token, error) {
	t, err := peek(tokens)
	if err == nil {
		*tokens = (*tokens)[1:]
	}
	return t, err
}

// ReadFromTokens reads one expression from tokens, allocating it in h.
// `tokens` will be left with the rest of tokens, if any.
func (h *Heap) ReadFromTokens(tokens *[]Token) (Value, error) {
	token, err := pop(tokens)
	if err != nil {
		return Nil, err
	}
	switch token.Kind {
	case TokOpen:
		return h.readList(tokens)
	case TokClose:
		return Nil, newError(SyntaxError, "unexpected )")
	case TokDot:
		return Nil, newError(SyntaxError, "unexpected .")
	case TokQuote: // 'e => (quote e)
		e, err := h.ReadFromTokens(tokens)
		if err != nil {
			return Nil, err
		}
		return h.List(h.NewSymbol("quote"), e), nil
	case TokInt:
		return h.NewInteger(token.Int), nil
	case TokString: // "abc" => (quote abc)
		return h.List(h.NewSymbol("quote"), h.NewSymbol(token.Text)), nil
	default:
		return h.NewSymbol(token.Text), nil
	}
}

// readList reads the elements of a list after its opening parenthesis.
func (h *Heap) readList(tokens *[]Token) (Value, error) {
	var elems []Value
	tail := Nil
	for {
		t, err := peek(tokens)
		if err != nil {
			return Nil, err
		}
		if t.Kind == TokClose {
			break
		}
		if t.Kind == TokDot {
			if len(elems) == 0 {
				return Nil, newError(SyntaxError, "unexpected . at list start")
			}
			pop(tokens)
			if tail, err = h.ReadFromTokens(tokens); err != nil {
				return Nil, err
			}
			if t, err = peek(tokens); err != nil {
				return Nil, err
			}
			if t.Kind != TokClose {
				return Nil, newError(SyntaxError, ") is expected")
			}
			break
		}
		e, err := h.ReadFromTokens(tokens)
		if err != nil {
			return Nil, err
		}
		elems = append(elems, e)
	}
	pop(tokens) // )
	result := tail
	for i := len(elems) - 1; i >= 0; i-- {
		result = h.NewPair(elems[i], result)
	}
	return result, nil
}

// Complete reports whether src ends with every expression closed, so
// that a line editor knows whether to ask for another line. Sources
// with lexical errors count as complete; reading them reports the error.
func Complete(src string) bool {
	tokens, err := SplitIntoTokens(strings.NewReader(src))
	if err != nil {
		return true
	}
	depth := 0
	for _, t := range tokens {
		switch t.Kind {
		case TokOpen:
			depth++
		case TokClose:
			if depth--; depth < 0 {
				return true
			}
		}
	}
	if n := len(tokens); n > 0 && tokens[n-1].Kind == TokQuote {
		return false
	}
	return depth == 0
}
