package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ZaydH/cis561/pkg/ast"
	"github.com/ZaydH/cis561/pkg/driver"
	"github.com/ZaydH/cis561/pkg/typechecker"
)

const cliToolVersion = "quackc 0.0.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	switch args[0] {
	case "--help", "-h", "help":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "check":
		return runCheck(args[1:])
	default:
		return runCheck(args)
	}
}

type checkOptions struct {
	configPath string
	debug      bool
	dump       driver.DumpMode
	files      []string
}

func parseCheckArgs(args []string) (*checkOptions, error) {
	opts := &checkOptions{}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-t":
			opts.debug = true
		case arg == "-config" || arg == "-dump":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("%s requires a value", arg)
			}
			i++
			if arg == "-config" {
				opts.configPath = args[i]
			} else {
				opts.dump = driver.DumpMode(strings.ToLower(args[i]))
				if !opts.dump.IsValid() {
					return nil, fmt.Errorf("unsupported dump mode %q", args[i])
				}
			}
		case arg == "--":
			opts.files = append(opts.files, args[i+1:]...)
			return opts, nil
		case strings.HasPrefix(arg, "-") && arg != "-":
			return nil, fmt.Errorf("unknown flag %s", arg)
		default:
			opts.files = append(opts.files, arg)
		}
	}
	return opts, nil
}

func runCheck(args []string) int {
	opts, err := parseCheckArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		printUsage()
		return 1
	}
	if len(opts.files) == 0 {
		fmt.Fprintln(os.Stderr, "quackc check requires at least one program file")
		return 1
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}
	if opts.debug {
		cfg.Debug = true
	}
	if opts.dump != "" {
		cfg.Dump = opts.dump
	}

	failed := 0
	for _, path := range opts.files {
		if !checkFile(path, cfg) {
			failed++
		}
	}
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d files failed\n", failed, len(opts.files))
		return 1
	}
	return 0
}

// loadConfig reads the explicit config file, or the nearest quack.yml above
// the working directory, falling back to defaults when neither exists.
func loadConfig(explicit string) (*driver.Config, error) {
	if explicit != "" {
		return driver.LoadConfig(explicit)
	}
	path, err := driver.FindConfig(".")
	if err != nil {
		if errors.Is(err, driver.ErrNoConfig) {
			return driver.DefaultConfig(), nil
		}
		return nil, err
	}
	return driver.LoadConfig(path)
}

// checkFile runs a fresh checker over one program file and reports whether
// it checked cleanly.
func checkFile(path string, cfg *driver.Config) bool {
	program, err := driver.LoadProgram(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "%s: no such file\n", path)
		} else {
			fmt.Fprintf(os.Stderr, "failed to load %s: %v\n", path, err)
		}
		return false
	}

	if cfg.Debug {
		fmt.Fprintf(os.Stderr, "trace: checking %s\n", path)
		if err := ast.Print(os.Stderr, program); err != nil {
			fmt.Fprintf(os.Stderr, "failed to print %s: %v\n", path, err)
			return false
		}
	}
	checker := typechecker.New(cfg.CheckerOptions(os.Stderr))
	result, err := checker.Check(program)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		return false
	}

	switch cfg.Dump {
	case driver.DumpSource:
		err = ast.Print(os.Stdout, program)
	case driver.DumpAnnotated:
		err = driver.DumpProgram(os.Stdout, program, result)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to dump %s: %v\n", path, err)
		return false
	}
	return true
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  quackc [check] [-t] [-config file] [-dump none|source|annotated] <program.yml> ...")
	fmt.Fprintln(os.Stderr, "  quackc version")
	fmt.Fprintln(os.Stderr, "  quackc help")
}
