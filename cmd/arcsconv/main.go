// arcsconv converts self-describing arcs documents between CBOR and YAML.
//
// Binary documents can't be converted, since they don't name their values;
// load them with the codecs that wrote them and marshal them again instead.
//
// The default formats come from ARCS_FROM and ARCS_TO, read from the environment
// or from a .env file, and otherwise are CBOR in and YAML out.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/stewi1014/arcs"
	"github.com/stewi1014/arcs/encio"
	"github.com/stewi1014/arcs/format"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	from, to string
	in, out  string
	envFile  string
	diagnose bool
	verbose  bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var opts options

	flagSet := pflag.NewFlagSet("arcsconv", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&opts.from, "from", "f", "", "input format, cbor or yaml (default $ARCS_FROM, or cbor)")
	flagSet.StringVarP(&opts.to, "to", "t", "", "output format, cbor or yaml (default $ARCS_TO, or yaml)")
	flagSet.StringVarP(&opts.in, "in", "i", "-", "input file, - for stdin")
	flagSet.StringVarP(&opts.out, "out", "o", "-", "output file, - for stdout")
	flagSet.StringVar(&opts.envFile, "env-file", ".env", "file to read ARCS_FROM and ARCS_TO from, if it exists")
	flagSet.BoolVar(&opts.diagnose, "diagnose", false, "print the CBOR diagnostic notation of the input instead of converting it")
	flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug information")

	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if flagSet.NArg() > 0 {
		return fmt.Errorf("unexpected argument: %s", flagSet.Arg(0))
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	encio.Warnings = logger

	env, err := readEnv(opts.envFile)
	if err != nil {
		return err
	}

	from, err := arcs.ParseFormat(setting(opts.from, "ARCS_FROM", env, "cbor"))
	if err != nil {
		return err
	}
	to, err := arcs.ParseFormat(setting(opts.to, "ARCS_TO", env, "yaml"))
	if err != nil {
		return err
	}

	data, err := readInput(opts.in, stdin)
	if err != nil {
		return err
	}
	logger.Debug("read input", slog.String("path", opts.in), slog.Int("bytes", len(data)))

	var out []byte
	if opts.diagnose {
		if from != arcs.CBOR {
			return encio.NewError(encio.ErrBadConfig, fmt.Sprintf("--diagnose needs cbor input, not %v", from), 0)
		}
		diag, err := format.DiagnoseCBOR(data)
		if err != nil {
			return encio.NewIOError(encio.ErrMalformed, nil, err.Error(), 0)
		}
		out = []byte(diag + "\n")
	} else {
		out, err = arcs.Convert(data, from, to)
		if err != nil {
			return err
		}
		logger.Debug("converted", slog.String("from", from.String()), slog.String("to", to.String()), slog.Int("bytes", len(out)))
	}

	return writeOutput(opts.out, out, stdout)
}

// setting returns the flag value if it was given, then the environment, then the .env file, then def.
func setting(flagValue, key string, env map[string]string, def string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv(key); v != "" {
		return v
	}
	if v := env[key]; v != "" {
		return v
	}
	return def
}

func readEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	env, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return env, nil
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == "-" {
		return encio.Write(data, stdout)
	}
	return os.WriteFile(path, data, 0o644)
}
