package module

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"numlang/internal/ir"
)

func countingParser(t *testing.T, calls *int) Parser {
	return func(source, path string) (*ir.Definition, error) {
		*calls++
		return &ir.Definition{Name: filepath.Base(path), Body: []ir.Stmt{&ir.ForStmt{
			Var: "i",
			Seq: &ir.RangeExpr{Start: &ir.Literal{Value: int64(1)}, End: &ir.Literal{Value: int64(3)}},
		}}}, nil
	}
}

func TestResolveFindsAndParsesFileOnSearchPath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "helper.m"), []byte("function helper()\nend"), 0o644))

	var calls int
	l := NewLoader(countingParser(t, &calls), []string{dir})

	def, found, err := l.Resolve("helper")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "helper.m", def.Name)
	assert.Equal(t, 1, calls)
}

func TestResolveMissingNameReportsNotFoundWithoutError(t *testing.T) {
	l := NewLoader(countingParser(t, new(int)), []string{t.TempDir()})
	def, found, err := l.Resolve("nowhere")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, def)
}

func TestResolveCachesSoASecondLookupDoesNotReparse(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f.m"), []byte("function f()\nend"), 0o644))

	var calls int
	l := NewLoader(countingParser(t, &calls), []string{dir})

	_, _, err := l.Resolve("f")
	require.NoError(t, err)
	_, _, err = l.Resolve("f")
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "a function must be parsed at most once per run")
}

func TestResolveLowersForLoopsInTheLoadedDefinition(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f.m"), []byte("function f()\nend"), 0o644))

	l := NewLoader(countingParser(t, new(int)), []string{dir})
	def, _, err := l.Resolve("f")
	require.NoError(t, err)
	require.Len(t, def.Body, 1)
	_, ok := def.Body[0].(*ir.LoweredLoop)
	assert.True(t, ok, "module.Resolve must run the loop-lowering pass before caching")
}

func TestResolveSearchesDirectoriesInOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(second, "g.m"), []byte("function g()\nend"), 0o644))

	l := NewLoader(countingParser(t, new(int)), []string{first, second})
	_, found, err := l.Resolve("g")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestResolveAcceptsADirectPathEndingInDotM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.m")
	require.NoError(t, os.WriteFile(path, []byte("x = 1;"), 0o644))

	l := NewLoader(countingParser(t, new(int)), []string{t.TempDir()})
	_, found, err := l.Resolve(path)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestNewLoaderDefaultsToWorkingDirectoryWhenSearchPathEmpty(t *testing.T) {
	l := NewLoader(countingParser(t, new(int)), nil)
	assert.Equal(t, []string{"."}, l.searchPath)
}
