package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolTable_Declare(t *testing.T) {
	table := NewSymbolTable()
	assert.Equal(t, GlobalScope, table.Scope())
	assert.True(t, table.Declare("x&", IntegerType))
	assert.True(t, table.Declare("r%", RealType))
	assert.False(t, table.Declare("x&", RealType))
	require.Equal(t, 2, table.Len())

	symbol := table.LookUp("x&", GlobalScope)
	require.NotNil(t, symbol)
	assert.Equal(t, IntegerType, symbol.Type)
	assert.Equal(t, GlobalScope, symbol.Scope)
	assert.Nil(t, symbol.Value)
	assert.Nil(t, table.LookUp("y&", GlobalScope))

	var names []string
	for _, s := range table.Symbols() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"x&", "r%"}, names)
}

func TestSymbolTable_Scopes(t *testing.T) {
	table := NewSymbolTable()
	table.Declare("x&", IntegerType)
	table.Enter("f")
	assert.Equal(t, "global.f", table.Scope())
	// The same name may be declared again in an inner scope.
	assert.True(t, table.Declare("x&", RealType))
	assert.Equal(t, RealType, table.LookUp("x&", "global.f").Type)
	assert.Equal(t, IntegerType, table.LookUp("x&", GlobalScope).Type)
	table.Leave()
	table.Leave()
	assert.Equal(t, GlobalScope, table.Scope())
}
