package main

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// options holds the parsed flag values for one invocation, grounded on
// grafana-k6's cmd/root.go globalFlags struct: a plain field bag bound to
// the root command's flags rather than package-level globals, so the run logic
// stays testable.
type options struct {
	stdin      bool
	tokens     bool
	ast        bool
	exportFmt  string
	exportOut  string
	setVars    []string
	profile    string
	inspect    bool
	dot        string
	configPath string
	verbose    bool
}

// Execute builds and runs the root command over the real OS filesystem and
// os.Args, the single entry point main calls.
func Execute() error {
	opts := &options{}
	fs := afero.NewOsFs()

	root := &cobra.Command{
		Use:           "modelgen [flags] [files...]",
		Short:         "Run ModelGen scripts and export the geometry they emit",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logrus.StandardLogger()
			if opts.verbose {
				logger.SetLevel(logrus.DebugLevel)
			}
			return run(fs, logger, opts, args, cmd.OutOrStdout(), cmd.InOrStdin())
		},
	}

	flags := root.Flags()
	flags.BoolVar(&opts.stdin, "stdin", false, "read source from stdin as module <stdin>")
	flags.BoolVar(&opts.tokens, "tokens", false, "print the token stream and exit")
	flags.BoolVar(&opts.ast, "ast", false, "print the parsed AST and exit")
	flags.StringVar(&opts.exportFmt, "export", "", "export accumulated geometry as obj or triangles")
	flags.StringVar(&opts.exportOut, "export-out", "", "file to write exported geometry to (default stdout)")
	flags.StringArrayVar(&opts.setVars, "set", nil, "pre-bind name=value in the base module before running (repeatable)")
	flags.StringVar(&opts.profile, "profile", "", "write a CPU profile to the given file")
	flags.BoolVar(&opts.inspect, "inspect", false, "log diagnostic information about the run")
	flags.StringVar(&opts.dot, "dot", "", "write a Graphviz .dot dump of the AST to the given file")
	flags.StringVar(&opts.configPath, "config", "modelgen.yaml", "project config file (search paths, vertex layout, globals)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	flags.SetInterspersed(false)
	flags.SortFlags = false

	return root.Execute()
}

// parseSetFlag splits a `--set name=value` argument, erroring on a
// malformed one rather than silently ignoring it (§7's "nothing is
// recovered locally" applies just as much to CLI misuse).
func parseSetFlag(raw string) (name, value string, err error) {
	for i := 0; i < len(raw); i++ {
		if raw[i] == '=' {
			return raw[:i], raw[i+1:], nil
		}
	}
	return "", "", errors.Errorf("--set %q is not in name=value form", raw)
}
