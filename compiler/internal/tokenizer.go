package internal

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/xiaobogaga/vci/util"
)

// A simple Tokenizer for programa sources.

// The language has those elements:
// * Reserved words: programa, variables, inicio, fin, si, entonces, sino, mientras, hacer, repetir, hasta,
//			leer, escribir, entero, real, cadena, logico and a few reserved for future use.
// * Typed identifiers: letters and digits, starting with a letter, ended by a type suffix:
//			@ method, & entero, % real, $ cadena, # logico.
// * Operators: + - * / % = < > ! == != <= >= && ||
// * Symbols: ; , : ( ) { }
// * Constants: integer (12), real (1.5), string ("xxx"), boolean (true, false).
// * Comment: //, /* */ (closed on the same line).

type TokenKind int

const (
	ReservedTK   TokenKind = iota // programa
	MethodIDTK                    // prueba@
	IntegerIDTK                   // x&
	RealIDTK                      // x%
	StringIDTK                    // x$
	BooleanIDTK                   // x#
	IdentifierTK                  // x
	IntegerTK                     // 12
	RealTK                        // 1.5
	StringTK                      // "xxx"
	BooleanTK                     // true
	OperatorTK                    // +
	SymbolTK                      // ;
)

var tokenKindNames = map[TokenKind]string{
	ReservedTK:   "RESERVADA",
	MethodIDTK:   "ID_METODO",
	IntegerIDTK:  "ID_ENTERO",
	RealIDTK:     "ID_REAL",
	StringIDTK:   "ID_CADENA",
	BooleanIDTK:  "ID_LOGICO",
	IdentifierTK: "ID",
	IntegerTK:    "ENTERO",
	RealTK:       "REAL",
	StringTK:     "CADENA",
	BooleanTK:    "BOOLEANO",
	OperatorTK:   "OPERADOR",
	SymbolTK:     "SIMBOLO",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "DESCONOCIDO"
}

// ParseTokenKind is the inverse of TokenKind.String.
func ParseTokenKind(name string) (TokenKind, bool) {
	for k, n := range tokenKindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// IsTypedIdentifier reports whether tokens of this kind name a variable.
func (k TokenKind) IsTypedIdentifier() bool {
	switch k {
	case IntegerIDTK, RealIDTK, StringIDTK, BooleanIDTK:
		return true
	}
	return false
}

var reservedWords = map[string]bool{
	"programa": true, "real": true, "leer": true, "haz": true, "default": true, "funcion": true,
	"cadena": true, "escribir": true, "mientras": true, "entonces": true, "hacer": true, "repetir": true,
	"regresar": true, "vacio": true, "variables": true, "si": true, "encaso": true, "ejecutar": true,
	"entero": true, "sino": true, "caso": true, "logico": true, "inicio": true, "fin": true, "hasta": true,
}

var typeSuffixTokenKindMap = map[byte]TokenKind{
	'@': MethodIDTK,
	'&': IntegerIDTK,
	'%': RealIDTK,
	'$': StringIDTK,
	'#': BooleanIDTK,
}

// Operators made of two characters are tried before single character ones.
var multipleCharOperators = []string{"==", "!=", "<=", ">=", "&&", "||"}

var singleCharOperators = map[byte]bool{
	'+': true, '-': true, '*': true, '/': true, '%': true, '=': true, '<': true, '>': true, '!': true,
}

var symbols = map[byte]bool{
	';': true, ',': true, ':': true, '(': true, ')': true, '{': true, '}': true,
}

type Token struct {
	Kind   TokenKind
	Lexeme string
	Line   int
	Column int
}

type Tokenizer struct {
	currentPos  int
	currentLine int
	lineText    string
	tokens      []*Token
	errors      []*Diagnostic
}

// Tokenize accepts a source `rd` and tokenizes its content. Malformed input never stops the
// tokenizer: each problem is recorded as a lexical diagnostic and scanning goes on.
// The returned error is only set when reading from rd fails.
func (tokenizer *Tokenizer) Tokenize(rd io.Reader) ([]*Token, []*Diagnostic, error) {
	bfReader := bufio.NewReader(rd)
	tokenizer.currentLine = 0
	for {
		line, err := bfReader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, nil, err
		}
		if len(line) > 0 || err == nil {
			tokenizer.currentLine++
			tokenizer.currentPos = 0
			tokenizer.parseLine(strings.TrimRight(line, "\r\n"))
		}
		if err == io.EOF {
			debugf("tokenizer: %d tokens, %d lexical errors", len(tokenizer.tokens), len(tokenizer.errors))
			return tokenizer.tokens, tokenizer.errors, nil
		}
	}
}

// TokenizeString is Tokenize over an in-memory source.
func (tokenizer *Tokenizer) TokenizeString(source string) ([]*Token, []*Diagnostic) {
	tokens, errs, _ := tokenizer.Tokenize(strings.NewReader(source))
	return tokens, errs
}

func (tokenizer *Tokenizer) parseLine(line string) {
	tokenizer.lineText = line
	for {
		tokenizer.trimSpace(line)
		if !tokenizer.hasRemainCharacters(line) {
			return
		}
		rest := line[tokenizer.currentPos:]
		if strings.HasPrefix(rest, "//") {
			return
		}
		if strings.HasPrefix(rest, "/*") {
			end := strings.Index(rest, "*/")
			if end < 0 {
				tokenizer.addError("/*", "unclosed multi-line comment")
				return
			}
			tokenizer.currentPos += end + 2
			continue
		}
		tokenizer.getNextToken(line)
	}
}

func (tokenizer *Tokenizer) getNextToken(line string) {
	rest := line[tokenizer.currentPos:]
	for _, op := range multipleCharOperators {
		if strings.HasPrefix(rest, op) {
			tokenizer.addToken(OperatorTK, op)
			return
		}
	}
	c := line[tokenizer.currentPos]
	switch {
	case singleCharOperators[c]:
		tokenizer.addToken(OperatorTK, string(c))
	case symbols[c]:
		tokenizer.addToken(SymbolTK, string(c))
	case c == '"':
		tokenizer.tokenString(line)
	case util.IsNumber(c):
		tokenizer.tokenNumber(line)
	case util.IsLetter(c):
		tokenizer.tokenWord(line)
	default:
		r, size := utf8.DecodeRuneInString(rest)
		tokenizer.addError(string(r), "unrecognized character")
		tokenizer.currentPos += size
	}
}

// trimSpace will step forward through line and skip all continuous space.
func (tokenizer *Tokenizer) trimSpace(line string) {
	for tokenizer.currentPos < len(line) && util.IsSpace(line[tokenizer.currentPos]) {
		tokenizer.currentPos++
	}
}

func (tokenizer *Tokenizer) hasRemainCharacters(line string) bool {
	return tokenizer.currentPos < len(line)
}

// A string can't span lines. Without a closing quote on the same line the quote itself
// is reported and scanning resumes right after it.
func (tokenizer *Tokenizer) tokenString(line string) {
	end := strings.IndexByte(line[tokenizer.currentPos+1:], '"')
	if end < 0 {
		tokenizer.addError("\"", "unrecognized character")
		tokenizer.currentPos++
		return
	}
	tokenizer.addToken(StringTK, line[tokenizer.currentPos:tokenizer.currentPos+end+2])
}

func (tokenizer *Tokenizer) tokenNumber(line string) {
	end := tokenizer.scanDigits(line, tokenizer.currentPos)
	// Only digits on both sides of the dot make a real.
	if end+1 < len(line) && line[end] == '.' && util.IsNumber(line[end+1]) {
		tokenizer.addToken(RealTK, line[tokenizer.currentPos:tokenizer.scanDigits(line, end+1)])
		return
	}
	tokenizer.addToken(IntegerTK, line[tokenizer.currentPos:end])
}

func (tokenizer *Tokenizer) scanDigits(line string, pos int) int {
	for pos < len(line) && util.IsNumber(line[pos]) {
		pos++
	}
	return pos
}

func (tokenizer *Tokenizer) tokenWord(line string) {
	end := tokenizer.currentPos
	for end < len(line) && util.IsLetterOrNumber(line[end]) {
		end++
	}
	word := line[tokenizer.currentPos:end]
	if end < len(line) && util.IsTypeSuffix(line[end]) {
		tokenizer.addToken(typeSuffixTokenKindMap[line[end]], line[tokenizer.currentPos:end+1])
		return
	}
	switch {
	case word == "true" || word == "false":
		tokenizer.addToken(BooleanTK, word)
	case reservedWords[word]:
		tokenizer.addToken(ReservedTK, word)
	default:
		tokenizer.addToken(IdentifierTK, word)
	}
}

func (tokenizer *Tokenizer) addToken(kind TokenKind, lexeme string) {
	tokenizer.tokens = append(tokenizer.tokens, &Token{
		Kind:   kind,
		Lexeme: lexeme,
		Line:   tokenizer.currentLine,
		Column: tokenizer.currentColumn(),
	})
	tokenizer.currentPos += len(lexeme)
}

func (tokenizer *Tokenizer) addError(value string, msg string) {
	tokenizer.errors = append(tokenizer.errors,
		makeDiagnostic(LexicalStage, value, tokenizer.currentLine, tokenizer.currentColumn(), "%s", msg))
}

// currentColumn counts characters, not bytes, up to currentPos.
func (tokenizer *Tokenizer) currentColumn() int {
	pos := tokenizer.currentPos
	if pos > len(tokenizer.lineText) {
		pos = len(tokenizer.lineText)
	}
	return utf8.RuneCountInString(tokenizer.lineText[:pos]) + 1
}

func (tokenizer *Tokenizer) Reset() {
	tokenizer.currentPos, tokenizer.currentLine, tokenizer.lineText = 0, 0, ""
	tokenizer.tokens, tokenizer.errors = nil, nil
}
