package cmd

import (
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/builtfast/vector-cli/src/client/api"
	"github.com/builtfast/vector-cli/src/client/output"
	"github.com/builtfast/vector-cli/src/client/paths"
)

type settingKind int

const (
	stringSetting settingKind = iota
	intSetting
	boolSetting
)

type settingKey struct {
	kind    settingKind
	allowed []string
}

// settingKeys are the keys config get/set accept.
var settingKeys = map[string]settingKey{
	"api_url":              {kind: stringSetting},
	"timeout":              {kind: intSetting},
	"retries":              {kind: intSetting},
	"retry_non_idempotent": {kind: boolSetting},
	"log.level":            {kind: stringSetting, allowed: []string{"debug", "info", "warn", "error"}},
	"log.file":             {kind: stringSetting},
	"log.max_size":         {kind: intSetting},
	"log.max_files":        {kind: intSetting},
}

func knownKeys() string {
	keys := make([]string, 0, len(settingKeys))
	for k := range settingKeys {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return strings.Join(keys, ", ")
}

func lookupKey(key string) (settingKey, error) {
	k, ok := settingKeys[strings.ToLower(key)]
	if !ok {
		return k, api.Validationf("key", "unknown setting %q (known: %s)", key, knownKeys())
	}
	return k, nil
}

// parseSetting converts a command-line value to the key's type.
func parseSetting(key, raw string, k settingKey) (any, error) {
	switch k.kind {
	case intSetting:
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return nil, api.Validationf(key, "%q is not a non-negative integer", raw)
		}
		if key == "timeout" && n == 0 {
			return nil, api.Validationf(key, "must be at least 1 second")
		}
		return n, nil
	case boolSetting:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, api.Validationf(key, "%q is not true or false", raw)
		}
		return b, nil
	}
	if len(k.allowed) > 0 && !slices.Contains(k.allowed, raw) {
		return nil, api.Validationf(key, "%q is not one of %s", raw, strings.Join(k.allowed, ", "))
	}
	if key == "api_url" && !strings.HasPrefix(raw, "https://") && !strings.HasPrefix(raw, "http://") {
		return nil, api.Validationf(key, "must be an http or https URL")
	}
	return raw, nil
}

func (a *App) newConfigCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Show and change CLI settings",
		Args:  cobra.ArbitraryArgs,
		RunE:  unknownSubcommand,
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			s := a.session
			all := s.v.AllSettings()
			if s.out.Mode == output.JSON {
				return s.out.Value(all)
			}
			data, err := yaml.Marshal(all)
			if err != nil {
				return err
			}
			_, err = s.out.Out.Write(data)
			return err
		},
	}

	get := &cobra.Command{
		Use:   "get <key>",
		Short: "Print one setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			s := a.session
			key := strings.ToLower(args[0])
			if _, err := lookupKey(key); err != nil {
				return err
			}
			value := s.v.Get(key)
			if s.out.Mode == output.JSON {
				return s.out.Value(map[string]any{"key": key, "value": value})
			}
			_, err := fmt.Fprintln(s.out.Out, value)
			return err
		},
	}

	set := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Save a setting to the settings file",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			s := a.session
			key := strings.ToLower(args[0])
			k, err := lookupKey(key)
			if err != nil {
				return err
			}
			value, err := parseSetting(key, args[1], k)
			if err != nil {
				return err
			}
			if err := writeSetting(s.configPath, key, value); err != nil {
				return err
			}
			s.logger.Info("setting saved", "key", key, "path", s.configPath)
			return s.out.Message(fmt.Sprintf("Set %s = %v", key, value))
		},
	}

	path := &cobra.Command{
		Use:   "path",
		Short: "Print the settings file location",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			s := a.session
			if s.out.Mode == output.JSON {
				return s.out.Value(struct {
					Path string `json:"path"`
				}{s.configPath})
			}
			_, err := fmt.Fprintln(s.out.Out, s.configPath)
			return err
		},
	}

	c.AddCommand(show, get, set, path)
	return c
}

// writeSetting updates one key in the settings file, leaving defaults and
// environment overrides out of what is written.
func writeSetting(path, key string, value any) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil && !missingConfig(err) {
		return fmt.Errorf("read settings %s: %w", path, err)
	}
	v.Set(key, value)
	if err := paths.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write settings %s: %w", path, err)
	}
	return nil
}
