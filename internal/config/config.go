// Package config resolves ksecret's settings from command-line flags and
// KSECRET_* environment variables. Flags win over the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable name
const EnvPrefix = "KSECRET"

// Flag names shared by the command and the completion script generator
const (
	FlagKubeconfig       = "kubeconfig"
	FlagContext          = "context"
	FlagNamespace        = "namespace"
	FlagCompletion       = "completion"
	FlagCompletionHelper = "completion-helper"
	FlagCopy             = "copy"
	FlagInteractive      = "interactive"
	FlagLogFile          = "log-file"
	FlagLogLevel         = "log-level"
	FlagLogFormat        = "log-format"
)

// Config holds the settings for one invocation
type Config struct {
	// Kubernetes
	Kubeconfig string
	Context    string
	Namespace  string

	// Completion
	Completion       string
	CompletionHelper string

	// Output
	Copy        bool
	Interactive bool

	// Logging
	LogFile   string
	LogLevel  string
	LogFormat string
}

// envBound lists the flags that may also come from the environment.
// Completion flags are only meaningful on the command line.
var envBound = []string{
	FlagKubeconfig,
	FlagContext,
	FlagNamespace,
	FlagLogFile,
	FlagLogLevel,
	FlagLogFormat,
}

// Load reads the parsed flag set, falling back to KSECRET_* variables for
// flags that were not given
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	for _, name := range envBound {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(name, flag); err != nil {
			return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
		if err := v.BindEnv(name); err != nil {
			return nil, fmt.Errorf("failed to bind environment for %s: %w", name, err)
		}
	}

	cfg := &Config{
		Kubeconfig: v.GetString(FlagKubeconfig),
		Context:    v.GetString(FlagContext),
		Namespace:  v.GetString(FlagNamespace),
		LogFile:    v.GetString(FlagLogFile),
		LogLevel:   v.GetString(FlagLogLevel),
		LogFormat:  v.GetString(FlagLogFormat),
	}

	var err error
	if cfg.Completion, err = stringFlag(flags, FlagCompletion); err != nil {
		return nil, err
	}
	if cfg.CompletionHelper, err = stringFlag(flags, FlagCompletionHelper); err != nil {
		return nil, err
	}
	if cfg.Copy, err = boolFlag(flags, FlagCopy); err != nil {
		return nil, err
	}
	if cfg.Interactive, err = boolFlag(flags, FlagInteractive); err != nil {
		return nil, err
	}

	return cfg, nil
}

func stringFlag(flags *pflag.FlagSet, name string) (string, error) {
	if flags.Lookup(name) == nil {
		return "", nil
	}
	return flags.GetString(name)
}

func boolFlag(flags *pflag.FlagSet, name string) (bool, error) {
	if flags.Lookup(name) == nil {
		return false, nil
	}
	return flags.GetBool(name)
}
