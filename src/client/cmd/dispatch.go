package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/builtfast/vector-cli/src/client/api"
	"github.com/builtfast/vector-cli/src/client/registry"
	"github.com/builtfast/vector-cli/src/client/tui"
)

var nounShort = map[string]string{
	"site":                  "Manage sites",
	"site ssh-key":          "Manage SSH keys installed on a site",
	"env":                   "Manage site environments",
	"env secret":            "Manage environment secrets",
	"env db":                "Manage environment databases",
	"env db import-session": "Import a large database into an environment",
	"deploy":                "Deploy environments and roll back",
	"db":                    "Import and export site databases",
	"db export":             "Export a site database",
	"db import-session":     "Import a large database into a site",
	"waf":                   "Manage the web application firewall",
	"account":               "Manage your account",
	"account api-key":       "Manage account API keys",
	"account secret":        "Manage account-wide secrets",
	"account ssh-key":       "Manage account SSH keys",
	"webhook":               "Manage webhooks",
	"event":                 "Browse account events",
	"ssl":                   "Inspect and retry SSL provisioning",
	"auth":                  "Log in, log out and inspect the stored token",
}

// addResourceCommands generates one command per registry descriptor,
// creating the noun groups ("env db import-session") on the way.
func (a *App) addResourceCommands(root *cobra.Command) error {
	groups := map[string]*cobra.Command{"": root}

	var group func(noun string) *cobra.Command
	group = func(noun string) *cobra.Command {
		if g, ok := groups[noun]; ok {
			return g
		}
		parent, word := "", noun
		if i := strings.LastIndex(noun, " "); i >= 0 {
			parent, word = noun[:i], noun[i+1:]
		}
		short, ok := nounShort[noun]
		if !ok {
			short = "Manage " + word
		}
		g := &cobra.Command{
			Use:   word,
			Short: short,
			Args:  cobra.ArbitraryArgs,
			RunE:  unknownSubcommand,
		}
		group(parent).AddCommand(g)
		groups[noun] = g
		return g
	}

	for _, noun := range a.Registry.Nouns() {
		// A noun with an empty verb is itself the command, e.g. php-versions.
		if !slices.Contains(a.Registry.Verbs(noun), "") {
			group(noun)
		}
	}
	for _, d := range a.Registry.Descriptors() {
		shape, ok := a.Registry.Shape(d.Shape)
		if !ok {
			return fmt.Errorf("%s: unknown shape %q", d.Command(), d.Shape)
		}
		leaf := a.newDescriptorCommand(d, shape)
		if d.Verb == "" {
			parent := ""
			if i := strings.LastIndex(d.Noun, " "); i >= 0 {
				parent = d.Noun[:i]
			}
			group(parent).AddCommand(leaf)
			continue
		}
		group(d.Noun).AddCommand(leaf)
	}

	auth := group("auth")
	auth.AddCommand(a.newLoginCommand(), a.newLogoutCommand(), a.newStatusCommand())
	return nil
}

// fieldValue collects the raw strings for one descriptor field. Lists
// accumulate across repeated flags; everything else keeps the last value.
type fieldValue struct {
	field  registry.Field
	values []string
}

func (v *fieldValue) String() string { return strings.Join(v.values, ",") }

func (v *fieldValue) Set(s string) error {
	if v.field.Type == registry.List {
		v.values = append(v.values, s)
		return nil
	}
	v.values = []string{s}
	return nil
}

func (v *fieldValue) Type() string {
	switch v.field.Type {
	case registry.Integer:
		return "int"
	case registry.Bool:
		return "bool"
	case registry.List:
		return "strings"
	case registry.Date:
		return "date"
	case registry.File:
		return "file"
	default:
		return "string"
	}
}

var _ pflag.Value = (*fieldValue)(nil)

func fieldUsage(f registry.Field) string {
	usage := f.Usage
	if f.Type == registry.Enum {
		usage += " (one of: " + strings.Join(f.Enum, ", ") + ")"
	}
	if f.Required {
		usage += " (required)"
	}
	return strings.TrimSpace(usage)
}

func (a *App) newDescriptorCommand(d *registry.Descriptor, shape registry.Shape) *cobra.Command {
	use := d.Verb
	if use == "" {
		use = d.Noun[strings.LastIndex(d.Noun, " ")+1:]
	}
	for _, arg := range d.Args {
		use += " <" + arg + ">"
	}

	values := make([]*fieldValue, 0, len(d.Fields))
	var force bool

	c := &cobra.Command{
		Use:   use,
		Short: d.Short,
		// The builder reports argument count errors with the expected names.
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := api.Fields{}
			vars := make(map[string]string, len(args)+len(values))
			for i, name := range d.Args {
				if i < len(args) {
					vars[name] = args[i]
				}
			}
			for _, v := range values {
				if cmd.Flags().Changed(v.field.FlagName()) {
					fields.Set(v.field.Name, v.values...)
					vars[v.field.Name] = v.String()
				}
			}
			return a.runDescriptor(cmd, d, shape, args, fields, vars, force)
		},
	}

	flags := c.Flags()
	for _, f := range d.Fields {
		v := &fieldValue{field: f}
		values = append(values, v)
		fl := flags.VarPF(v, f.FlagName(), "", fieldUsage(f))
		fl.DefValue = f.Default
		if f.Type == registry.Bool {
			fl.NoOptDefVal = "true"
		}
	}
	if d.Confirm {
		flags.BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")
	}
	return c
}

func (a *App) runDescriptor(cmd *cobra.Command, d *registry.Descriptor, shape registry.Shape,
	args []string, fields api.Fields, vars map[string]string, force bool) error {
	s := a.session

	var token string
	if !d.Anonymous {
		t, source, err := s.store.Resolve(a.flags.token)
		switch {
		case errors.Is(err, api.ErrNotLoggedIn):
		case err != nil:
			return err
		default:
			token = t
			s.logger.Debug("token resolved", "source", source.String())
		}
	}

	req, err := s.builder.Build(d, args, fields, token, s.settings.APIURL)
	if err != nil {
		return err
	}

	if d.Confirm && !force {
		ok, err := a.confirm(fmt.Sprintf("Are you sure you want to %s %s %s?", d.Verb, d.Noun, strings.Join(args, " ")))
		if err != nil {
			return err
		}
		if !ok {
			return s.out.Message("Aborted.")
		}
	}

	resp, err := s.transport.Execute(cmd.Context(), req)
	kind, code := api.Classify(resp, err)
	s.logger.Debug("outcome", "command", d.Command(), "kind", kind.String(), "exit", code)
	if err != nil {
		return err
	}
	if kind != api.KindNone {
		return api.NewAPIError(resp)
	}
	return s.out.Render(resp.Body, shape, vars)
}

// confirm asks question on the terminal, or reads a y/yes line from stdin
// when stdin is not a terminal. EOF is a no.
func (a *App) confirm(question string) (bool, error) {
	if a.stdinIsTerminal() {
		return tui.Confirm(a.in(), a.Err, question)
	}
	fmt.Fprintf(a.Err, "%s [y/N] ", question)
	line, err := bufio.NewReader(a.in()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
