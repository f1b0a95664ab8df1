package symbolic

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// TokenType represents the type of a lexer token.
type TokenType int

const (
	TokenNumber TokenType = iota
	TokenWord
	TokenPlus
	TokenMinus
	TokenStar
	TokenStarStar
	TokenSlash
	TokenLParen
	TokenRParen
	TokenComma
	TokenEquals
	TokenIllegal
	TokenEOF
)

// Token represents a single lexer token.
type Token struct {
	Type    TokenType
	Literal string
	Pos     int // byte offset in the input
}

func (t Token) String() string {
	return fmt.Sprintf("Token(%d, %q, %d)", t.Type, t.Literal, t.Pos)
}

// Lex tokenizes normalized expression text. Characters outside the
// expression alphabet become TokenIllegal so the parser can reject them.
func Lex(input string) []Token {
	var tokens []Token
	i := 0
	for i < len(input) {
		ch := input[i]

		if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
			i++
			continue
		}

		switch ch {
		case '+':
			tokens = append(tokens, Token{Type: TokenPlus, Literal: "+", Pos: i})
			i++
		case '-':
			tokens = append(tokens, Token{Type: TokenMinus, Literal: "-", Pos: i})
			i++
		case '*':
			if i+1 < len(input) && input[i+1] == '*' {
				tokens = append(tokens, Token{Type: TokenStarStar, Literal: "**", Pos: i})
				i += 2
			} else {
				tokens = append(tokens, Token{Type: TokenStar, Literal: "*", Pos: i})
				i++
			}
		case '^':
			tokens = append(tokens, Token{Type: TokenStarStar, Literal: "^", Pos: i})
			i++
		case '/':
			tokens = append(tokens, Token{Type: TokenSlash, Literal: "/", Pos: i})
			i++
		case '(', '[':
			tokens = append(tokens, Token{Type: TokenLParen, Literal: string(ch), Pos: i})
			i++
		case ')', ']':
			tokens = append(tokens, Token{Type: TokenRParen, Literal: string(ch), Pos: i})
			i++
		case ',':
			tokens = append(tokens, Token{Type: TokenComma, Literal: ",", Pos: i})
			i++
		case '=':
			tokens = append(tokens, Token{Type: TokenEquals, Literal: "=", Pos: i})
			i++
		default:
			if isDigit(ch) || (ch == '.' && i+1 < len(input) && isDigit(input[i+1])) {
				start := i
				for i < len(input) && isDigit(input[i]) {
					i++
				}
				if i < len(input) && input[i] == '.' {
					i++
					for i < len(input) && isDigit(input[i]) {
						i++
					}
				}
				// A second decimal point makes the whole literal malformed
				// ("1.5.2", "1..2"), not two adjacent numbers.
				if i < len(input) && input[i] == '.' {
					for i < len(input) && (isDigit(input[i]) || input[i] == '.') {
						i++
					}
					tokens = append(tokens, Token{Type: TokenIllegal, Literal: input[start:i], Pos: start})
					continue
				}
				tokens = append(tokens, Token{Type: TokenNumber, Literal: input[start:i], Pos: start})
				continue
			}
			r, size := utf8.DecodeRuneInString(input[i:])
			if unicode.IsLetter(r) {
				start := i
				i += size
				for i < len(input) {
					r, size = utf8.DecodeRuneInString(input[i:])
					if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
						break
					}
					i += size
				}
				tokens = append(tokens, Token{Type: TokenWord, Literal: input[start:i], Pos: start})
				continue
			}
			tokens = append(tokens, Token{Type: TokenIllegal, Literal: string(r), Pos: i})
			i += size
		}
	}
	tokens = append(tokens, Token{Type: TokenEOF, Pos: len(input)})
	return tokens
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }
