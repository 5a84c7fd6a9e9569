package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"stacklang/interpreter-go/pkg/driver"
)

const cliToolVersion = "stacklang 0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

type cliOptions struct {
	configPath  string
	maxDepth    int
	maxDepthSet bool
	trace       bool
	echo        bool
	git         driver.GitSource
	useGit      bool
}

func run(args []string) int {
	opts, rest, err := parseFlags(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		printUsage()
		return 1
	}

	if len(rest) > 0 {
		switch rest[0] {
		case "--help", "-h", "help":
			printUsage()
			return 0
		case "--version", "-V", "version":
			fmt.Fprintln(os.Stdout, cliToolVersion)
			return 0
		}
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}

	if len(rest) == 0 {
		if opts.useGit {
			fmt.Fprintln(os.Stderr, "--git requires the path of a script inside the repository")
			return 1
		}
		return runREPL(cfg, os.Stdin)
	}

	switch rest[0] {
	case "repl":
		if len(rest) > 1 {
			fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", strings.Join(rest[1:], " "))
			return 1
		}
		return runREPL(cfg, os.Stdin)
	case "run":
		return runScript(cfg, opts, rest[1:])
	case "check":
		return runCheck(rest[1:])
	default:
		return runScript(cfg, opts, rest)
	}
}

// parseFlags separates global flags from positional arguments. Flags may
// appear anywhere and accept both "--flag value" and "--flag=value".
func parseFlags(args []string) (cliOptions, []string, error) {
	var opts cliOptions
	var rest []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") || arg == "--help" || arg == "--version" {
			rest = append(rest, arg)
			continue
		}
		name, value, hasValue := strings.Cut(strings.TrimPrefix(arg, "--"), "=")
		needValue := func() (string, error) {
			if hasValue {
				return value, nil
			}
			if i+1 >= len(args) {
				return "", fmt.Errorf("--%s requires a value", name)
			}
			i++
			return args[i], nil
		}
		switch name {
		case "trace":
			opts.trace = true
		case "echo":
			opts.echo = true
		case "config", "git", "rev", "tag", "branch", "max-depth":
			v, err := needValue()
			if err != nil {
				return opts, nil, err
			}
			switch name {
			case "config":
				opts.configPath = v
			case "git":
				opts.git.URL = v
				opts.useGit = true
			case "rev":
				opts.git.Rev = v
			case "tag":
				opts.git.Tag = v
			case "branch":
				opts.git.Branch = v
			case "max-depth":
				depth, err := strconv.Atoi(v)
				if err != nil || depth < 0 {
					return opts, nil, fmt.Errorf("--max-depth expects a non-negative integer, got %q", v)
				}
				opts.maxDepth = depth
				opts.maxDepthSet = true
			}
		default:
			return opts, nil, fmt.Errorf("unknown flag --%s", name)
		}
	}
	if !opts.useGit && (opts.git.Rev != "" || opts.git.Tag != "" || opts.git.Branch != "") {
		return opts, nil, fmt.Errorf("--rev, --tag and --branch require --git")
	}
	return opts, rest, nil
}

// loadConfig reads the explicit --config file or the default one in the
// working directory, then applies flag overrides.
func loadConfig(opts cliOptions) (*driver.Config, error) {
	var cfg *driver.Config
	var err error
	if opts.configPath != "" {
		cfg, err = driver.LoadConfig(opts.configPath)
	} else {
		cfg, err = driver.LoadDefaultConfig(".")
	}
	if err != nil {
		return nil, err
	}
	if opts.maxDepthSet {
		cfg.MaxCallDepth = opts.maxDepth
	}
	if opts.trace {
		cfg.Trace = true
	}
	if opts.echo {
		cfg.Echo = true
	}
	return cfg, nil
}

func runScript(cfg *driver.Config, opts cliOptions, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "stacklang run requires a script path")
		return 1
	}
	if len(args) > 1 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", strings.Join(args[1:], " "))
		return 1
	}

	var src *driver.Source
	var err error
	if opts.useGit {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		gitSrc := opts.git
		gitSrc.Path = args[0]
		src, err = gitSrc.Fetch(ctx)
	} else {
		src, err = driver.LoadFile(args[0])
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load script: %v\n", err)
		return 1
	}
	return runBatch(cfg, src)
}

func runCheck(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "stacklang check requires exactly one script path")
		return 1
	}
	src, err := driver.LoadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load script: %v\n", err)
		return 1
	}
	return checkSource(src)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `usage:
  stacklang [flags]                     interactive session on stdin
  stacklang [flags] repl                interactive session on stdin
  stacklang [flags] [run] <file>        run a script ("-" reads stdin)
  stacklang [flags] run --git <url> [--rev R | --tag T | --branch B] <path>
                                        run a script from a git repository
  stacklang check <file>                parse a script without running it
  stacklang --version

flags:
  --config <file>    configuration file (default stacklang.yml)
  --max-depth <n>    limit nested procedure calls (0 = unbounded)
  --trace            write evaluator trace lines to stderr
  --echo             echo each statement before its result`)
}
