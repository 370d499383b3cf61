package internal

import "strings"

// GlobalScope is the name of the outermost scope. Every program declaration lives there.
const GlobalScope = "global"

type VarType string

const (
	IntegerType VarType = "entero"
	RealType    VarType = "real"
	StringType  VarType = "cadena"
	BooleanType VarType = "logico"
)

type Symbol struct {
	Name  string
	Type  VarType
	Scope string
	// Value is part of the symbol table schema but analysis never sets it.
	Value *string
}

// SymbolTable keeps symbols in declaration order, keyed by (name, scope path). The
// scope path is a stack of scope names joined by "."; the analyzer only ever uses
// the global scope, Enter/Leave exist so nested scopes can be added without
// changing lookups.
type SymbolTable struct {
	symbols []*Symbol
	index   map[symbolKey]*Symbol
	scopes  []string
}

type symbolKey struct {
	name  string
	scope string
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		index:  map[symbolKey]*Symbol{},
		scopes: []string{GlobalScope},
	}
}

// Scope returns the current scope path, e.g. "global" or "global.f".
func (table *SymbolTable) Scope() string {
	return strings.Join(table.scopes, ".")
}

func (table *SymbolTable) Enter(name string) {
	table.scopes = append(table.scopes, name)
}

// Leave pops the innermost scope. The global scope is never popped.
func (table *SymbolTable) Leave() {
	if len(table.scopes) > 1 {
		table.scopes = table.scopes[:len(table.scopes)-1]
	}
}

// Declare adds a symbol to the current scope. It returns false, leaving the table
// untouched, when the name is already declared in that scope.
func (table *SymbolTable) Declare(name string, tp VarType) bool {
	key := symbolKey{name: name, scope: table.Scope()}
	if _, ok := table.index[key]; ok {
		return false
	}
	symbol := &Symbol{Name: name, Type: tp, Scope: key.scope}
	table.symbols = append(table.symbols, symbol)
	table.index[key] = symbol
	return true
}

// LookUp finds name in the given scope only.
func (table *SymbolTable) LookUp(name, scope string) *Symbol {
	return table.index[symbolKey{name: name, scope: scope}]
}

// Symbols returns the symbols in declaration order.
func (table *SymbolTable) Symbols() []*Symbol {
	return table.symbols
}

func (table *SymbolTable) Len() int {
	return len(table.symbols)
}
