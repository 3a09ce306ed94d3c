package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
)

// jsonArg selects JSON output, but only as the first argument.
const jsonArg = "--json"

type cliCtx struct {
	Logger *slog.Logger
	// Stdin is where the vaulted block is read from unless --input names a file.
	Stdin io.Reader
	context.Context
}

type cli struct {
	Convert ConvertCmd       `embed:""`
	Debug   bool             `help:"Enable debug logging on stderr" env:"AWXIFY_DEBUG"`
	Version kong.VersionFlag `help:"Show version"`
}

// Execute parses the command line, converts stdin and exits non-zero on failure.
func Execute(version string) {
	var cli cli
	parser := newParser(&cli, version)

	ctx, err := parseArgs(parser, &cli, os.Args[1:])
	parser.FatalIfErrorf(err)

	logger := newLogger(os.Stderr, cli.Debug)
	logger.Debug("starting", "version", version, "args", ctx.Args)

	err = cli.Convert.Run(&cliCtx{
		Logger:  logger,
		Stdin:   os.Stdin,
		Context: context.Background(),
	})
	ctx.FatalIfErrorf(err)
}

func newParser(cli *cli, version string) *kong.Kong {
	return kong.Must(cli,
		kong.UsageOnError(),
		kong.Name("awxify"),
		kong.Description("awxify wraps an ansible vaulted variable read from stdin in the {var: {__ansible_vault: ...}} document AWX expects. Pass --json as the first argument for JSON output."),
		kong.Vars{"version": version},
	)
}

// parseArgs decides JSON mode from the first argument alone, then hands the
// flags kong knows to the parser. Every other token, including a later
// --json or an unknown flag, is kept in ConvertCmd.Args and ignored.
func parseArgs(parser *kong.Kong, cli *cli, args []string) (*kong.Context, error) {
	jsonMode := len(args) > 0 && args[0] == jsonArg
	if jsonMode {
		args = args[1:]
	}

	known, ignored := splitArgs(parser, args)
	ctx, err := parser.Parse(known)
	if err != nil {
		return nil, err
	}

	cli.Convert.JSON = jsonMode
	cli.Convert.Args = ignored
	return ctx, nil
}

// splitArgs separates the flags declared on the kong model, with their
// values, from everything else.
func splitArgs(parser *kong.Kong, args []string) (known, ignored []string) {
	long := map[string]*kong.Flag{}
	short := map[rune]*kong.Flag{}
	for _, flag := range parser.Model.Flags {
		long[flag.Name] = flag
		if flag.Short != 0 {
			short[flag.Short] = flag
		}
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return known, append(ignored, args[i+1:]...)
		case arg == "-h" || arg == "--help":
			known = append(known, arg)
		case strings.HasPrefix(arg, "--"):
			name, _, hasValue := strings.Cut(arg[2:], "=")
			flag, ok := long[name]
			if !ok {
				ignored = append(ignored, arg)
				continue
			}
			known = append(known, arg)
			if !hasValue && !flag.IsBool() && i+1 < len(args) {
				i++
				known = append(known, args[i])
			}
		case strings.HasPrefix(arg, "-") && len(arg) > 1:
			flag, ok := short[[]rune(arg[1:])[0]]
			if !ok {
				ignored = append(ignored, arg)
				continue
			}
			known = append(known, arg)
			if len([]rune(arg)) == 2 && !flag.IsBool() && i+1 < len(args) {
				i++
				known = append(known, args[i])
			}
		default:
			ignored = append(ignored, arg)
		}
	}
	return known, ignored
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
