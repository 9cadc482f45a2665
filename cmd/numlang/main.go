// cmd/numlang/main.go
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"numlang/internal/commands"
	"numlang/internal/config"
	"numlang/internal/repl"
)

const version = "0.1.0"

// commandAliases mirrors the teacher's short-form aliases, trimmed to the
// subcommands this core actually implements.
var commandAliases = map[string]string{
	"r": "run",
	"i": "repl",
	"w": "watch",
	"t": "test",
	"f": "fmt",
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		showUsage()
		return
	}

	cmd := args[0]
	if alias, ok := commandAliases[cmd]; ok {
		cmd = alias
	}

	if cmd == "--help" || cmd == "-h" || cmd == "help" {
		showUsage()
		return
	}
	if cmd == "--version" || cmd == "-version" || cmd == "version" {
		fmt.Printf("numlang %s\n", version)
		return
	}

	rest, cfg := parseFlags(args[1:])

	switch cmd {
	case "run":
		if len(rest) < 1 {
			log.Fatal("run requires a script path")
		}
		if err := commands.RunCommand(rest[0], cfg); err != nil {
			log.Fatalf("Error: %v", err)
		}
	case "repl":
		repl.Start(cfg)
	case "init":
		if err := commands.InitCommand(rest); err != nil {
			log.Fatalf("Error: %v", err)
		}
	case "watch":
		if len(rest) < 1 {
			log.Fatal("watch requires a script path")
		}
		if err := commands.WatchCommand(".", rest[0], cfg); err != nil {
			log.Fatalf("Error: %v", err)
		}
	case "clean":
		if err := commands.CleanCommand(rest); err != nil {
			log.Fatalf("Error: %v", err)
		}
	case "test":
		if err := commands.TestCommand(rest, cfg); err != nil {
			log.Fatalf("Error: %v", err)
		}
	case "fmt":
		if len(rest) < 1 {
			log.Fatal("fmt requires a script path")
		}
		if err := commands.FormatCommand(rest[0]); err != nil {
			log.Fatalf("Error: %v", err)
		}
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", cmd)
		showUsage()
		os.Exit(1)
	}
}

// parseFlags scans args by hand for the §6.5 runtime knobs, the way the
// teacher's own cmd/sentra parses flags without a flag-parsing library.
// It returns the non-flag arguments alongside the resulting Config.
func parseFlags(args []string) ([]string, config.Config) {
	cfg := config.Default()
	var rest []string

	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "-verbose" || a == "--verbose":
			cfg.Verbose = true
		case a == "-jit" || a == "--jit":
			cfg.JITEnable = true
		case a == "-validate-types" || a == "--validate-types":
			cfg.ValidateTypes = true
		case a == "-profile-type-infer" || a == "--profile-type-infer":
			cfg.ProfileTypeInfer = true
		case a == "-path" || a == "--path":
			if i+1 < len(args) {
				i++
				cfg.SearchPath = append(strings.Split(args[i], ","), cfg.SearchPath...)
			}
		default:
			rest = append(rest, a)
		}
	}
	return rest, cfg
}

func showUsage() {
	fmt.Println("numlang - array-oriented script interpreter")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  numlang run <file.m>       Run a script                    (alias: r)")
	fmt.Println("  numlang repl               Start the interactive REPL      (alias: i)")
	fmt.Println("  numlang watch <file.m>     Re-run a script on file change  (alias: w)")
	fmt.Println("  numlang test [files...]    Run *_test.m script tests        (alias: t)")
	fmt.Println("  numlang fmt <file.m>       Format a script in place         (alias: f)")
	fmt.Println("  numlang init [name]        Scaffold a new script project")
	fmt.Println("  numlang clean              Remove notebook/report artifacts")
	fmt.Println()
	fmt.Println("Flags (run/repl/watch):")
	fmt.Println("  -verbose               Record every unsuppressed statement to the notebook")
	fmt.Println("  -validate-types        Cross-check an external type oracle against runtime kinds")
	fmt.Println("  -profile-type-infer    Tally observed runtime kinds per statement")
	fmt.Println("  -jit                   Opt into the JIT tier-profiling collaborator")
	fmt.Println("  -path <dir,dir,...>    Extra module search path directories")
	fmt.Println()
	fmt.Println("Help:")
	fmt.Println("  numlang help               Show this message")
	fmt.Println("  numlang version            Show version")
}
