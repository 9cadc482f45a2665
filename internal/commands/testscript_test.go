// testscript_test.go drives RunCommand and FormatCommand end to end
// against small .m fixtures under testdata/script, using
// github.com/rogpeppe/go-internal/testscript the way the rest of the
// example pack reaches for it to script filesystem-level CLI behavior
// rather than calling package functions directly. Custom commands wrap
// this package's own entry points instead of exec'ing a built numlang
// binary, since there is no build step to produce one here.
package commands_test

import (
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"numlang/internal/commands"
	"numlang/internal/config"
)

func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, nil))
}

func TestNumlangScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			"numlang": runNumlang,
		},
	})
}

// runNumlang dispatches the subset of the CLI surface the fixtures
// exercise (run, fmt) straight into internal/commands, reporting a
// failure through ts.Fatalf the same way testscript's own exec-backed
// commands report a nonzero exit.
func runNumlang(ts *testscript.TestScript, neg bool, args []string) {
	if len(args) < 2 {
		ts.Fatalf("usage: numlang <run|fmt> <file>")
	}
	var err error
	switch args[0] {
	case "run":
		err = commands.RunCommand(ts.MkAbs(args[1]), config.Default())
	case "fmt":
		err = commands.FormatCommand(ts.MkAbs(args[1]))
	default:
		ts.Fatalf("unsupported numlang subcommand %q in test fixture", args[0])
	}
	if neg {
		if err == nil {
			ts.Fatalf("expected numlang %s to fail, it succeeded", args[0])
		}
		return
	}
	if err != nil {
		ts.Fatalf("numlang %s: %v", args[0], err)
	}
}
