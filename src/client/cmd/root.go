// Package cmd builds the vector command tree and runs one invocation.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/builtfast/vector-cli/src/client/api"
	"github.com/builtfast/vector-cli/src/client/output"
	"github.com/builtfast/vector-cli/src/client/registry"
	"github.com/builtfast/vector-cli/src/common/terminal"
)

// BinaryName is the command users type.
const BinaryName = "vector"

// App holds everything an invocation needs from the outside world. Tests
// replace the streams, the terminal detector and the HTTP client.
type App struct {
	Registry *registry.Registry
	In       io.Reader
	Out      io.Writer
	Err      io.Writer
	// Detector reports whether Out is a terminal. Defaults to checking Out.
	Detector output.Detector
	// HTTPClient is copied per invocation with the configured timeout.
	HTTPClient *http.Client
	// Logging builds the diagnostic logger once settings are known.
	// Nil discards diagnostics.
	Logging func(LogSettings) *slog.Logger
	// PromptToken reads a token interactively. Defaults to a masked prompt.
	PromptToken func(in io.Reader, out io.Writer) (string, error)

	flags   globalFlags
	session *session
}

type globalFlags struct {
	json    bool
	noJSON  bool
	compact bool
	token   string
	apiURL  string
	timeout int
	verbose bool
	config  string
}

// Run executes argv (without the program name) and returns the exit code.
func (a *App) Run(ctx context.Context, argv []string) int {
	a.flags = globalFlags{}
	a.session = nil

	root, err := a.newRootCommand()
	if err != nil {
		a.renderer().Error(err)
		return api.ExitGeneral
	}
	if argv == nil {
		argv = []string{}
	}
	root.SetArgs(argv)
	root.SetIn(a.in())
	root.SetOut(a.Out)
	root.SetErr(a.Err)

	err = root.ExecuteContext(ctx)
	if err == nil {
		return api.ExitSuccess
	}
	a.logger().Debug("command failed", "kind", api.KindOf(err).String(), "error", err)
	out := a.renderer()
	out.Error(err)

	var unknown *api.UnknownCommandError
	if errors.As(err, &unknown) && out.Mode == output.Table {
		words := strings.Fields(unknown.Command)
		group := append([]string{BinaryName}, words[:max(len(words)-1, 0)]...)
		fmt.Fprintf(a.Err, "\nRun '%s --help' for usage.\n", strings.Join(group, " "))
	}
	return api.ExitCode(err)
}

func (a *App) newRootCommand() (*cobra.Command, error) {
	root := &cobra.Command{
		Use:   BinaryName,
		Short: "Manage Vector sites, environments and deployments",
		Long: `vector is the command-line client for the BuiltFast Vector hosting API.

Output is a table on a terminal and JSON when piped; use --json or --no-json
to choose explicitly. Authenticate with 'vector auth login' or by setting
VECTOR_API_KEY.`,
		Args:              cobra.ArbitraryArgs,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE:              unknownSubcommand,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		// "sitee list --page 2" fails on --page in the root's flag set
		// before the unknown noun is seen.
		if c.HasAvailableSubCommands() {
			if args := c.Flags().Args(); len(args) > 0 {
				return unknownSubcommand(c, args)
			}
		}
		return &api.ValidationError{Message: err.Error()}
	})

	pf := root.PersistentFlags()
	pf.BoolVar(&a.flags.json, "json", false, "output JSON")
	pf.BoolVar(&a.flags.noJSON, "no-json", false, "output a table even when piped")
	pf.BoolVar(&a.flags.compact, "compact", false, "print JSON on a single line")
	pf.StringVar(&a.flags.token, "token", "", "API token (overrides VECTOR_API_KEY and stored credentials)")
	pf.StringVar(&a.flags.apiURL, "api-url", "", "API base URL (default "+api.DefaultBaseURL+")")
	pf.IntVar(&a.flags.timeout, "timeout", 0, "request timeout in seconds (default 30)")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "log diagnostics to stderr")
	pf.StringVar(&a.flags.config, "config", "", "settings file (default <config dir>/config.json)")

	if err := a.addResourceCommands(root); err != nil {
		return nil, err
	}
	root.AddCommand(
		a.newConfigCommand(),
		a.newVersionCommand(),
		a.newCompletionCommand(root),
	)
	return root, nil
}

// suggestionDistance is the Levenshtein distance cobra uses for its own
// "Did you mean this?" output.
const suggestionDistance = 2

// unknownSubcommand runs when a group command is given something that is
// not one of its children.
func unknownSubcommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	name := args[0]
	if cmd.HasParent() {
		name = strings.TrimPrefix(cmd.CommandPath(), cmd.Root().Name()+" ") + " " + args[0]
	}
	if cmd.SuggestionsMinimumDistance <= 0 {
		cmd.SuggestionsMinimumDistance = suggestionDistance
	}
	return &api.UnknownCommandError{Command: name, Suggestions: cmd.SuggestionsFor(args[0])}
}

// mode resolves the output mode from the parsed flags.
func (a *App) mode() output.Mode {
	return output.Resolve(output.Explicit(a.flags.json, a.flags.noJSON), a.detector().IsTerminal())
}

// renderer returns the session renderer, or one built from the flags when
// the session could not be set up.
func (a *App) renderer() *output.Renderer {
	if a.session != nil {
		return a.session.out
	}
	return &output.Renderer{Out: a.Out, Err: a.Err, Mode: a.mode(), Compact: a.flags.compact}
}

func (a *App) detector() output.Detector {
	if a.Detector != nil {
		return a.Detector
	}
	return output.StreamDetector{Stream: a.Out}
}

func (a *App) in() io.Reader {
	if a.In != nil {
		return a.In
	}
	return os.Stdin
}

func (a *App) logger() *slog.Logger {
	if a.session != nil && a.session.logger != nil {
		return a.session.logger
	}
	return slog.New(slog.DiscardHandler)
}

func (a *App) stdinIsTerminal() bool {
	return terminal.IsTerminal(a.in())
}
