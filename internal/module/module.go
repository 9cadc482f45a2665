// Package module implements the deferred-load collaborator of spec
// §4.2.8 and §6.2: resolving a bare name that isn't a variable or a
// registered library function into a Definition loaded from a source
// file on a search path. It is grounded on the teacher's ModuleLoader
// (the original internal/module/module.go): same cache-map-plus-
// search-path shape, generalized from the teacher's per-module-name
// *.sn file convention to per-function/script *.m files, and with the
// teacher's plain sync.RWMutex cache replaced by
// golang.org/x/sync/singleflight so concurrent lookups of the same
// not-yet-cached name collapse into one parse instead of racing.
package module

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"numlang/internal/ir"
	"numlang/internal/looplower"
)

// Parser turns a file's source text into a Definition. It is supplied
// by the front end (internal/lexer + internal/parser) so this package
// never imports the parser directly — module resolution is a pure
// filesystem/caching concern.
type Parser func(source, path string) (*ir.Definition, error)

// Loader is the evaluator.Resolver implementation: it resolves a bare
// name against a search path of source files, parses on first use, and
// caches the result for the remainder of the process (§4.2.8: "a
// function is loaded at most once per run").
type Loader struct {
	parse      Parser
	searchPath []string

	mu    sync.RWMutex
	cache map[string]*ir.Definition
	group singleflight.Group
}

// NewLoader builds a Loader searching searchPath in order; an empty
// searchPath defaults to the working directory.
func NewLoader(parse Parser, searchPath []string) *Loader {
	if len(searchPath) == 0 {
		searchPath = []string{"."}
	}
	return &Loader{
		parse:      parse,
		searchPath: append([]string(nil), searchPath...),
		cache:      make(map[string]*ir.Definition),
	}
}

// Resolve implements evaluator.Resolver.
func (l *Loader) Resolve(name string) (*ir.Definition, bool, error) {
	l.mu.RLock()
	if def, ok := l.cache[name]; ok {
		l.mu.RUnlock()
		return def, true, nil
	}
	l.mu.RUnlock()

	path, found := l.findFile(name)
	if !found {
		return nil, false, nil
	}

	result, err, _ := l.group.Do(name, func() (interface{}, error) {
		source, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("module: reading %s: %w", path, err)
		}
		def, err := l.parse(string(source), path)
		if err != nil {
			return nil, fmt.Errorf("module: parsing %s: %w", path, err)
		}
		lowerDefinition(def)
		l.mu.Lock()
		l.cache[name] = def
		l.mu.Unlock()
		return def, nil
	})
	if err != nil {
		return nil, false, err
	}
	return result.(*ir.Definition), true, nil
}

// findFile locates name.m on the search path, also accepting a direct
// path ending in .m.
func (l *Loader) findFile(name string) (string, bool) {
	if strings.HasSuffix(name, ".m") {
		if fileExists(name) {
			return name, true
		}
		return "", false
	}
	for _, dir := range l.searchPath {
		path := filepath.Join(dir, name+".m")
		if fileExists(path) {
			return path, true
		}
	}
	return "", false
}

// lowerDefinition runs the loop-lowering pass (§4.3) over a freshly
// parsed Definition and every Definition nested in it, so the evaluator
// never has to see a front-end WhileStmt/ForStmt.
func lowerDefinition(def *ir.Definition) {
	def.Body = looplower.Lower(def.Body)
	for _, nested := range def.Nested {
		lowerDefinition(nested)
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// AddSearchPath appends a directory to the search path.
func (l *Loader) AddSearchPath(path string) {
	l.searchPath = append(l.searchPath, path)
}

// SearchPath returns the current search path.
func (l *Loader) SearchPath() []string {
	return append([]string(nil), l.searchPath...)
}

// ClearCache drops every cached Definition, forcing the next Resolve of
// each name to re-read and re-parse its file.
func (l *Loader) ClearCache() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]*ir.Definition)
}
