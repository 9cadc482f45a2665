// Package repl implements the interactive read-eval-print loop, adapted
// from the teacher's internal/repl/repl.go: the same bufio.Scanner
// line-reading loop and ">>> " prompt, rewired from the teacher's
// lexer->parser->compiler->VM pipeline onto lexer->parser->looplower->
// evaluator, since this core has no bytecode stage.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"numlang/internal/config"
	"numlang/internal/environment"
	"numlang/internal/evaluator"
	"numlang/internal/looplower"
	"numlang/internal/module"
	"numlang/internal/parser"
)

// Start runs the interactive loop against stdin/stdout, sharing one
// Environment across lines so earlier assignments remain visible
// (§3.4: a script shares one scope for its whole run; the REPL treats
// the whole session as one ongoing script).
func Start(cfg config.Config) {
	Run(os.Stdin, os.Stdout, cfg)
}

// Run drives the loop over arbitrary streams, so a test can script a
// session without touching the real terminal.
func Run(in io.Reader, out io.Writer, cfg config.Config) {
	fmt.Fprintln(out, "numlang | type 'exit' to quit")
	scanner := bufio.NewScanner(in)

	loader := module.NewLoader(parser.Parse, cfg.SearchPath)
	eval := evaluator.New(cfg, loader)
	eval.Print = func(text string) { fmt.Fprint(out, text) }
	eval.Println = func(text string) { fmt.Fprintln(out, text) }

	// root (§3.4) holds only built-ins and top-level functions; the
	// running session gets its own persistent child scope so a line's
	// plain top-level locals never leak into a function it calls via
	// CallUser's root.Global().
	root := environment.NewRoot()
	session := root.Extend()

	for {
		fmt.Fprint(out, ">>> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == "exit" || line == "quit" {
			break
		}
		if line == "" {
			continue
		}

		def, err := parser.Parse(line, "<repl>")
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		def.Body = looplower.Lower(def.Body)

		if err := eval.RunScript(def, session); err != nil {
			fmt.Fprintln(out, err)
		}
	}

	if eval.Notebook != nil {
		eval.Notebook.WriteReport(out)
	}
}
