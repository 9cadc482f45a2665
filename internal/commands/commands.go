// Package commands implements the numlang CLI's non-REPL subcommands,
// adapted from the teacher's internal/commands/commands.go: the same
// flat function-per-subcommand shape and message style, retargeted from
// Sentra project scaffolding/compilation onto numlang script projects
// and the tree-walking run path (there is no build artifact to produce
// — RunCommand parses and runs a script; nothing is compiled).
package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"numlang/internal/config"
	"numlang/internal/environment"
	"numlang/internal/evaluator"
	"numlang/internal/formatter"
	"numlang/internal/looplower"
	"numlang/internal/module"
	"numlang/internal/parser"
	"numlang/internal/testing"
)

// InitCommand scaffolds a new script project directory with a starter
// main.m file.
func InitCommand(args []string) error {
	projectName := "numlang-project"
	if len(args) > 0 {
		projectName = args[0]
	}

	if err := os.MkdirAll(projectName, 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}

	mainFile := filepath.Join(projectName, "main.m")
	content := "% main.m\nprintln('hello from numlang')\n"
	if err := os.WriteFile(mainFile, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to create main.m: %w", err)
	}

	fmt.Printf("Initialized new numlang project: %s\n", projectName)
	return nil
}

// RunCommand parses and evaluates a single script file in batch mode
// (§7: the top-level driver exits on error rather than continuing).
func RunCommand(path string, cfg config.Config) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	def, err := parser.Parse(string(source), path)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	def.Body = looplower.Lower(def.Body)

	searchPath := append([]string{filepath.Dir(path)}, cfg.SearchPath...)
	loader := module.NewLoader(parser.Parse, searchPath)
	eval := evaluator.New(cfg, loader)
	eval.Print = func(text string) { fmt.Print(text) }
	eval.Println = func(text string) { fmt.Println(text) }

	// root (§3.4) holds only built-ins and top-level functions; the
	// running script gets its own child scope so its plain locals never
	// become visible to a function it calls via CallUser's root.Global().
	root := environment.NewRoot()
	scriptEnv := root.Extend()

	if err := eval.RunScript(def, scriptEnv); err != nil {
		return err
	}
	if eval.Notebook != nil {
		return eval.Notebook.WriteReport(os.Stdout)
	}
	return nil
}

// FormatCommand parses path and rewrites it in place with
// internal/formatter, the way the teacher's formatCode rewrote a
// Sentra file after a successful parse.
func FormatCommand(path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	def, err := parser.Parse(string(source), path)
	if err != nil {
		return fmt.Errorf("cannot format %s with a parse error: %w", path, err)
	}

	formatted := formatter.New().Format(def)
	if err := os.WriteFile(path, []byte(formatted), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Printf("%s: formatted\n", path)
	return nil
}

// TestCommand runs every *_test.m file matched by args (or discovered
// under the working directory when args is empty), adapted from the
// teacher's cmd/sentra runTests: each file is one TestCase in a single
// TestSuite, with assert_*/assert_equal/... wired into its own registry
// via testing.RegisterAssertions so the script body can call them like
// any other library function.
func TestCommand(args []string, cfg config.Config) error {
	var files []string
	if len(args) == 0 {
		found, err := testing.DiscoverTests(".", "")
		if err != nil {
			return err
		}
		files = found
	} else {
		for _, pattern := range args {
			matches, err := filepath.Glob(pattern)
			if err != nil {
				return err
			}
			files = append(files, matches...)
		}
	}

	if len(files) == 0 {
		fmt.Println("no test files found (looking for *_test.m)")
		return nil
	}

	runner := testing.NewTestRunner(&testing.TestConfig{Verbose: cfg.Verbose})
	suite := &testing.TestSuite{Name: "numlang script tests"}

	for _, file := range files {
		file := file
		suite.Tests = append(suite.Tests, testing.TestCase{
			Name:     file,
			Function: func(ctx *testing.TestContext) error { return runTestFile(file, cfg, ctx) },
		})
	}

	runner.AddSuite(suite)
	stats := runner.Run()
	if stats.FailedTests > 0 {
		return fmt.Errorf("%d test(s) failed", stats.FailedTests)
	}
	return nil
}

func runTestFile(path string, cfg config.Config, ctx *testing.TestContext) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	def, err := parser.Parse(string(source), path)
	if err != nil {
		return err
	}
	def.Body = looplower.Lower(def.Body)

	searchPath := append([]string{filepath.Dir(path)}, cfg.SearchPath...)
	loader := module.NewLoader(parser.Parse, searchPath)
	eval := evaluator.New(cfg, loader)
	eval.Print = ctx.Log
	eval.Println = ctx.Log

	tally := &testing.Tally{}
	testing.RegisterAssertions(eval.Registry, tally)

	root := environment.NewRoot()
	scriptEnv := root.Extend()
	if err := eval.RunScript(def, scriptEnv); err != nil {
		return err
	}
	if tally.Failed > 0 {
		for _, note := range tally.Notes {
			ctx.Fail(note)
		}
	}
	ctx.Log(fmt.Sprintf("%d assertion(s) passed, %d failed", tally.Passed, tally.Failed))
	return nil
}

// WatchCommand polls dir for source changes and reruns entry on each
// one. No file-notification library appears anywhere in the example
// corpus (see DESIGN.md), so this polls mtimes with the standard
// library rather than reaching for a watcher dependency outside it.
func WatchCommand(dir, entry string, cfg config.Config) error {
	fmt.Println("Watching for file changes...")
	fmt.Println("Press Ctrl+C to stop")

	lastRun := time.Time{}
	for {
		newest, err := newestMTime(dir)
		if err == nil && newest.After(lastRun) {
			lastRun = newest
			if err := RunCommand(entry, cfg); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
}

func newestMTime(dir string) (time.Time, error) {
	var latest time.Time
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".m" && info.ModTime().After(latest) {
			latest = info.ModTime()
		}
		return nil
	})
	return latest, err
}

// CleanCommand removes the diagnostic/report artifacts a verbose run
// may have left behind (there is no compiled build output to clean —
// this core only ever produces notebook reports).
func CleanCommand(args []string) error {
	fmt.Println("Cleaning diagnostic artifacts...")

	artifacts := []string{"*.notebook.txt", "*.out"}
	for _, pattern := range artifacts {
		matches, _ := filepath.Glob(pattern)
		for _, match := range matches {
			os.RemoveAll(match)
			fmt.Printf("Removed: %s\n", match)
		}
	}

	fmt.Println("Clean completed")
	return nil
}
