package internal

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

var (
	TokensHeader      = []string{"Type", "Value", "Line", "Column"}
	DiagnosticsHeader = []string{"Message", "Value", "Line", "Column"}
	SymbolsHeader     = []string{"Name", "Type", "Scope", "Value"}
)

func WriteTokensCSV(w io.Writer, tokens []*Token) error {
	records := make([][]string, 0, len(tokens))
	for _, token := range tokens {
		records = append(records, []string{token.Kind.String(), token.Lexeme,
			strconv.Itoa(token.Line), strconv.Itoa(token.Column)})
	}
	return writeTable(w, "tokens", TokensHeader, records)
}

// WriteDiagnosticsCSV writes diagnostics of any stage. Unknown positions are written as -1.
func WriteDiagnosticsCSV(w io.Writer, diagnostics []*Diagnostic) error {
	records := make([][]string, 0, len(diagnostics))
	for _, d := range diagnostics {
		records = append(records, []string{d.Message, d.Value, strconv.Itoa(d.Line), strconv.Itoa(d.Column)})
	}
	return writeTable(w, "diagnostics", DiagnosticsHeader, records)
}

// WriteSymbolsCSV writes the symbol table in declaration order, an unset value is left empty.
func WriteSymbolsCSV(w io.Writer, table *SymbolTable) error {
	var records [][]string
	if table != nil {
		for _, symbol := range table.Symbols() {
			value := ""
			if symbol.Value != nil {
				value = *symbol.Value
			}
			records = append(records, []string{symbol.Name, string(symbol.Type), symbol.Scope, value})
		}
	}
	return writeTable(w, "symbols", SymbolsHeader, records)
}

func writeTable(w io.Writer, name string, header []string, records [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return errors.Wrapf(err, "compiler: write %s header", name)
	}
	if err := writer.WriteAll(records); err != nil {
		return errors.Wrapf(err, "compiler: write %s", name)
	}
	return nil
}

// ReadTokensCSV loads a token table as written by WriteTokensCSV, so a program can be
// parsed from tokens produced elsewhere.
func ReadTokensCSV(r io.Reader) ([]*Token, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(TokensHeader)
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil, errors.New("compiler: empty token table")
		}
		return nil, errors.Wrap(err, "compiler: read token header")
	}
	var tokens []*Token
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return tokens, nil
		}
		if err != nil {
			return nil, errors.Wrapf(err, "compiler: read token %d", len(tokens))
		}
		kind, ok := ParseTokenKind(record[0])
		if !ok {
			return nil, errors.Errorf("compiler: unknown token type %q at row %d", record[0], len(tokens)+1)
		}
		line, err := strconv.Atoi(record[2])
		if err != nil {
			return nil, errors.Wrapf(err, "compiler: token %d line", len(tokens))
		}
		column, err := strconv.Atoi(record[3])
		if err != nil {
			return nil, errors.Wrapf(err, "compiler: token %d column", len(tokens))
		}
		tokens = append(tokens, &Token{Kind: kind, Lexeme: record[1], Line: line, Column: column})
	}
}
