package main

import (
	stderrors "errors"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/wippyai/bytecode/codec"
	"github.com/wippyai/bytecode/errors"
	"github.com/wippyai/bytecode/schema"
	"github.com/wippyai/bytecode/witdesc"
)

// schemaEnv names the environment variable consulted when --schema is not
// given.
const schemaEnv = "BYTECODE_SCHEMA"

// Exit statuses besides 0 and 1.
const (
	exitIncomplete = 2
	exitInvalid    = 3
)

type app struct {
	logger     *zap.Logger
	schemaPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "bytecode",
		Short: "encode and decode compact tagged binary values",
		Long: `bytecode works with the types declared in a schema file (YAML, TOML,
JSON or CBOR). Values are written as YAML: numbers for primitives, lists for
unnamed fields, maps for named fields, a bare name for a variant without
fields and a one-entry map from variant name to payload otherwise.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(a.verbose)
			if err != nil {
				return err
			}
			a.logger = logger
			codec.SetLogger(logger)
			schema.SetLogger(logger)
			witdesc.SetLogger(logger)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.schemaPath, "schema", "s", "", "schema file (default $"+schemaEnv+")")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log registration and compilation")

	root.AddCommand(
		newEncodeCmd(a),
		newDecodeCmd(a),
		newInspectCmd(a),
		newConvertCmd(a),
		newImportWITCmd(a),
		newExploreCmd(a),
	)
	return root
}

// newLogger returns a development logger when verbose, otherwise warnings
// only. Output is JSON unless stderr is a terminal.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if term.IsTerminal(int(os.Stderr.Fd())) {
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	return cfg.Build()
}

func (a *app) resolveSchema() (string, error) {
	if a.schemaPath != "" {
		return a.schemaPath, nil
	}
	if p := os.Getenv(schemaEnv); p != "" {
		return p, nil
	}
	return "", errors.New(errors.PhaseSchema, errors.KindOther).
		Detail("no schema file: use --schema or set %s", schemaEnv).
		Build()
}

func (a *app) loadFile() (*schema.File, error) {
	path, err := a.resolveSchema()
	if err != nil {
		return nil, err
	}
	return schema.Load(path)
}

func (a *app) loadRegistry() (*codec.Registry, error) {
	path, err := a.resolveSchema()
	if err != nil {
		return nil, err
	}
	return schema.LoadRegistry(path, codec.WithLogger(a.logger))
}

func (a *app) codec(typeName string) (*codec.Codec, error) {
	if typeName == "" {
		return nil, errors.InvalidInput(errors.PhaseSchema, "--type is required")
	}
	reg, err := a.loadRegistry()
	if err != nil {
		return nil, err
	}
	return reg.CodecByName(typeName)
}

// exitError carries a process exit status.
type exitError struct {
	err  error
	code int
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func exitCode(err error) int {
	var ee *exitError
	if stderrors.As(err, &ee) {
		return ee.code
	}
	return 1
}

// decodeFailure maps decode sentinels to their exit statuses.
func decodeFailure(err error) error {
	switch {
	case errors.IsIncomplete(err):
		return &exitError{err: err, code: exitIncomplete}
	case errors.IsInvalid(err):
		return &exitError{err: err, code: exitInvalid}
	}
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
