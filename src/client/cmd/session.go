package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/builtfast/vector-cli/src/client/api"
	"github.com/builtfast/vector-cli/src/client/credentials"
	"github.com/builtfast/vector-cli/src/client/output"
	"github.com/builtfast/vector-cli/src/client/paths"
	"github.com/builtfast/vector-cli/src/common/terminal"
)

// LogSettings configures the diagnostic log.
type LogSettings struct {
	Level    string
	File     string
	MaxSize  int
	MaxFiles int
	// Verbose sends debug output to stderr instead of the log file.
	Verbose bool
}

type settings struct {
	APIURL             string
	Timeout            time.Duration
	Retries            int
	RetryNonIdempotent bool
	Log                LogSettings
}

// session is the per-invocation context handed to every command.
type session struct {
	v          *viper.Viper
	configPath string
	settings   settings
	out        *output.Renderer
	store      *credentials.Store
	builder    *api.Builder
	transport  *api.Transport
	logger     *slog.Logger
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api_url", api.DefaultBaseURL)
	v.SetDefault("timeout", 30)
	v.SetDefault("retries", 3)
	v.SetDefault("retry_non_idempotent", true)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_files", 5)
}

// loadSettings layers flags over VECTOR_* environment variables over the
// settings file over defaults.
func loadSettings(cmd *cobra.Command, configPath string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("VECTOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(configPath)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil && !missingConfig(err) {
		return nil, fmt.Errorf("read settings %s: %w", configPath, err)
	}

	flags := cmd.Root().PersistentFlags()
	if err := v.BindPFlag("api_url", flags.Lookup("api-url")); err != nil {
		return nil, err
	}
	if err := v.BindPFlag("timeout", flags.Lookup("timeout")); err != nil {
		return nil, err
	}
	return v, nil
}

func missingConfig(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.Is(err, fs.ErrNotExist) || errors.As(err, &notFound)
}

func decodeSettings(v *viper.Viper) (settings, error) {
	s := settings{
		APIURL:             strings.TrimSpace(v.GetString("api_url")),
		Timeout:            time.Duration(v.GetInt("timeout")) * time.Second,
		Retries:            v.GetInt("retries"),
		RetryNonIdempotent: v.GetBool("retry_non_idempotent"),
		Log: LogSettings{
			Level:    v.GetString("log.level"),
			File:     v.GetString("log.file"),
			MaxSize:  v.GetInt("log.max_size"),
			MaxFiles: v.GetInt("log.max_files"),
		},
	}
	if s.APIURL == "" {
		s.APIURL = api.DefaultBaseURL
	}
	if s.Timeout <= 0 {
		return s, api.Validationf("timeout", "must be a positive number of seconds")
	}
	if s.Retries < 0 {
		return s, api.Validationf("retries", "must not be negative")
	}
	return s, nil
}

// setup runs before every command and builds the session.
func (a *App) setup(cmd *cobra.Command, _ []string) error {
	configPath := paths.ResolveConfigPath(a.flags.config)
	v, err := loadSettings(cmd, configPath)
	if err != nil {
		return err
	}
	st, err := decodeSettings(v)
	if err != nil {
		return err
	}
	st.Log.Verbose = a.flags.verbose

	logger := slog.New(slog.DiscardHandler)
	if a.Logging != nil {
		logger = a.Logging(st.Log)
	}

	client := &http.Client{}
	if a.HTTPClient != nil {
		c := *a.HTTPClient
		client = &c
	}
	client.Timeout = st.Timeout

	policy := api.DefaultRetryPolicy()
	policy.Retries = st.Retries
	policy.NonIdempotent = st.RetryNonIdempotent

	a.session = &session{
		v:          v,
		configPath: configPath,
		settings:   st,
		out: &output.Renderer{
			Out:     a.Out,
			Err:     a.Err,
			Mode:    a.mode(),
			Compact: a.flags.compact,
			Width:   terminal.Width(a.Out),
		},
		store:     credentials.NewStore(paths.CredentialsFile(), nil),
		builder:   api.NewBuilder(),
		transport: &api.Transport{Client: client, Policy: policy, Logger: logger},
		logger:    logger,
	}
	logger.Debug("invocation",
		"command", cmd.CommandPath(),
		"mode", a.session.out.Mode.String(),
		"api_url", st.APIURL,
		"config", configPath,
	)
	return nil
}
