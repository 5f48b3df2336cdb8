package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/spf13/cobra"

	"github.com/builtfast/vector-cli/src/client/api"
	"github.com/builtfast/vector-cli/src/client/credentials"
	"github.com/builtfast/vector-cli/src/client/output"
	"github.com/builtfast/vector-cli/src/client/registry"
	"github.com/builtfast/vector-cli/src/client/tui"
)

func (a *App) newLoginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Verify an API token and save it",
		Long: `Verify an API token against the API and save it to the credentials file.

The token is read from --token, or prompted for with hidden input. When stdin
is not a terminal the first line of stdin is used.

Examples:
  ` + BinaryName + ` auth login
  echo "$TOKEN" | ` + BinaryName + ` auth login`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runLogin(cmd.Context())
		},
	}
}

func (a *App) newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the saved API token",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runLogout()
		},
	}
}

func (a *App) newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a token is configured and who it belongs to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runStatus(cmd.Context())
		},
	}
}

func (a *App) runLogin(ctx context.Context) error {
	s := a.session
	token := strings.TrimSpace(a.flags.token)
	if token == "" {
		var err error
		if token, err = a.readToken(); err != nil {
			return err
		}
	}
	if token == "" {
		return &api.ValidationError{Field: "token", Message: "token cannot be empty"}
	}

	body, err := a.whoami(ctx, token)
	if err != nil {
		return err
	}
	if err := s.store.Persist(token); err != nil {
		return err
	}
	s.logger.Info("credentials saved", "path", s.store.Path)

	if s.out.Mode == output.JSON {
		return s.out.Render(body, a.userShape(), nil)
	}
	if err := s.out.Message("Successfully authenticated."); err != nil {
		return err
	}
	if email, err := jsonparser.GetString(body, "data", "email"); err == nil && email != "" {
		return s.out.Message("Logged in as: " + email)
	}
	return nil
}

// readToken prompts on a terminal and otherwise reads one line from stdin.
func (a *App) readToken() (string, error) {
	if a.stdinIsTerminal() {
		prompt := a.PromptToken
		if prompt == nil {
			prompt = tui.PromptToken
		}
		token, err := prompt(a.in(), a.Err)
		if errors.Is(err, tui.ErrCanceled) {
			return "", &api.ValidationError{Field: "token", Message: "login canceled"}
		}
		if err != nil {
			return "", fmt.Errorf("read token: %w", err)
		}
		return strings.TrimSpace(token), nil
	}
	line, err := bufio.NewReader(a.in()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read token from stdin: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (a *App) runLogout() error {
	s := a.session
	token, err := s.store.Load()
	var corrupt *credentials.CorruptFileError
	switch {
	case errors.As(err, &corrupt):
		// Logging out is how a broken file gets reset.
		s.logger.Warn("clearing corrupt credentials", "path", corrupt.Path)
	case err != nil:
		return err
	case token == "":
		if s.out.Mode == output.JSON {
			return s.out.Message("Not logged in")
		}
		return s.out.Message("Not logged in.")
	}
	if err := s.store.Clear(); err != nil {
		return err
	}
	s.logger.Info("credentials cleared", "path", s.store.Path)
	if s.out.Mode == output.JSON {
		return s.out.Message("Logged out successfully")
	}
	return s.out.Message("Logged out successfully.")
}

type statusUser struct {
	ID    json.RawMessage `json:"id"`
	Name  string          `json:"name"`
	Email string          `json:"email"`
}

func (a *App) runStatus(ctx context.Context) error {
	s := a.session
	token, source, err := s.store.Resolve(a.flags.token)
	if errors.Is(err, api.ErrNotLoggedIn) {
		if s.out.Mode == output.JSON {
			return s.out.Value(struct {
				Authenticated bool   `json:"authenticated"`
				Message       string `json:"message"`
			}{false, "Not logged in"})
		}
		return s.out.Message("Not logged in. Run '" + BinaryName + " auth login' to authenticate.")
	}
	if err != nil {
		return err
	}
	s.logger.Debug("token resolved", "source", source.String())

	body, err := a.whoami(ctx, token)
	if err != nil {
		return err
	}
	user := statusUser{ID: json.RawMessage("null")}
	if id, typ, _, err := jsonparser.Get(body, "data", "id"); err == nil {
		user.ID = id
		if typ == jsonparser.String {
			user.ID, _ = json.Marshal(string(id))
		}
	}
	user.Name, _ = jsonparser.GetString(body, "data", "name")
	user.Email, _ = jsonparser.GetString(body, "data", "email")

	if s.out.Mode == output.JSON {
		return s.out.Value(struct {
			Authenticated bool       `json:"authenticated"`
			User          statusUser `json:"user"`
		}{true, user})
	}
	s.out.KeyValue([][2]string{
		{"Status", "Authenticated"},
		{"Name", user.Name},
		{"Email", user.Email},
	})
	return nil
}

// whoami fetches the user the token belongs to via the "auth whoami" descriptor.
func (a *App) whoami(ctx context.Context, token string) ([]byte, error) {
	s := a.session
	d, ok := a.Registry.Lookup("auth", "whoami")
	if !ok {
		return nil, errors.New("registry has no auth whoami command")
	}
	req, err := s.builder.Build(d, nil, api.Fields{}, token, s.settings.APIURL)
	if err != nil {
		return nil, err
	}
	resp, err := s.transport.Execute(ctx, req)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, api.NewAPIError(resp)
	}
	return resp.Body, nil
}

func (a *App) userShape() registry.Shape {
	shape, _ := a.Registry.Shape("user")
	return shape
}
