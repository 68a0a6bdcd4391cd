// Package commands implements the ksecret command line.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"k8s.io/cli-runtime/pkg/genericiooptions"
	"k8s.io/kubectl/pkg/util/templates"

	"github.com/renato0307/ksecret/internal/completion"
	"github.com/renato0307/ksecret/internal/config"
	"github.com/renato0307/ksecret/internal/k8s"
	"github.com/renato0307/ksecret/internal/logging"
	"github.com/renato0307/ksecret/internal/ui"
)

var (
	rootLong = templates.LongDesc(`
		Print one value stored in a Kubernetes Secret.

		The secret is read once from the namespace given with --namespace, or
		from the namespace of the kubeconfig context. With KEY the value of that
		key is printed; without it the value of the alphabetically first key is
		printed. Values must be UTF-8 text.

		The kubeconfig is taken from --kubeconfig, then $KUBECONFIG, then
		~/.kube/config. Flags can also be set with KSECRET_* environment
		variables, for example KSECRET_CONTEXT or KSECRET_NAMESPACE.`)

	rootExample = templates.Examples(`
		# Print the value of the "token" key of the ops-api-token secret
		ksecret ops-api-token token

		# Use another context and namespace
		ksecret --context prod -n ops ops-api-token token

		# Choose the key interactively and copy the value to the clipboard
		ksecret -i --copy db-credentials

		# Load zsh completion
		source <(ksecret --completion zsh)`)
)

// PickFunc lets the user choose one of items
type PickFunc func(ctx context.Context, in io.Reader, out io.Writer, title string, items []string) (string, error)

// Options holds the collaborators of the root command. Zero fields fall back
// to the real implementations.
type Options struct {
	genericiooptions.IOStreams

	Factory   k8s.ClientFactory
	Clipboard func(text string) error
	Pick      PickFunc
}

func (o *Options) setDefaults() {
	if o.Factory == nil {
		o.Factory = k8s.DefaultClientFactory{}
	}
	if o.Clipboard == nil {
		o.Clipboard = CopyToClipboard
	}
	if o.Pick == nil {
		o.Pick = ui.Pick
	}
}

// NewRootCommand creates the ksecret command
func NewRootCommand(o Options) *cobra.Command {
	o.setDefaults()

	cmd := &cobra.Command{
		Use:                   "ksecret [flags] SECRET [KEY]",
		DisableFlagsInUseLine: true,
		Short:                 "Print one value of a Kubernetes Secret",
		Long:                  rootLong,
		Example:               rootExample,
		SilenceErrors:         true,
		SilenceUsage:          true,
		Args:                  validateArgs,
		ValidArgsFunction:     o.completeArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args)
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetIn(o.In)
	cmd.SetOut(o.Out)
	cmd.SetErr(o.ErrOut)

	flags := cmd.Flags()
	flags.String(config.FlagKubeconfig, "", "Path to the kubeconfig file (default: $KUBECONFIG, then ~/.kube/config)")
	flags.StringP(config.FlagContext, "c", "", "Kubeconfig context to use (default: current-context)")
	flags.StringP(config.FlagNamespace, "n", "", "Namespace of the secret (default: the context's namespace)")
	flags.String(config.FlagCompletion, "", "Print a completion script for the given shell (bash, zsh, fish, powershell) and exit")
	flags.String(config.FlagCompletionHelper, "", "List completion candidates (contexts, namespaces, secrets, keys)")
	flags.Bool(config.FlagCopy, false, "Also copy the value to the clipboard")
	flags.BoolP(config.FlagInteractive, "i", false, "Choose the key interactively when none is given")
	flags.String(config.FlagLogFile, "", "Write debug logs to this file")
	flags.String(config.FlagLogLevel, "info", "Log level (debug, info, warn, error)")
	flags.String(config.FlagLogFormat, "text", "Log format (text, json)")
	_ = flags.MarkHidden(config.FlagCompletionHelper)

	_ = cmd.RegisterFlagCompletionFunc(config.FlagContext, o.completeFlag(completion.KindContexts))
	_ = cmd.RegisterFlagCompletionFunc(config.FlagNamespace, o.completeFlag(completion.KindNamespaces))
	_ = cmd.RegisterFlagCompletionFunc(config.FlagCompletion, cobra.FixedCompletions(completion.Shells, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// validateArgs requires SECRET [KEY], except when only a completion
// artifact is asked for
func validateArgs(cmd *cobra.Command, args []string) error {
	shell, _ := cmd.Flags().GetString(config.FlagCompletion)
	if shell != "" {
		return cobra.NoArgs(cmd, args)
	}

	helper, _ := cmd.Flags().GetString(config.FlagCompletionHelper)
	if helper != "" {
		return cobra.MaximumNArgs(1)(cmd, args)
	}

	return cobra.RangeArgs(1, 2)(cmd, args)
}

func (o *Options) run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	if err := logging.Init(logging.Config{
		FilePath: cfg.LogFile,
		Level:    logging.ParseLevel(cfg.LogLevel),
		Format:   logging.ParseFormat(cfg.LogFormat),
	}); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() { _ = logging.Shutdown() }()

	ctx := commandContext(cmd)

	if cfg.Completion != "" {
		return completion.WriteScript(o.Out, cmd, cfg.Completion)
	}

	if cfg.CompletionHelper != "" {
		kind, err := completion.ParseKind(cfg.CompletionHelper)
		if err != nil {
			return err
		}
		completion.WriteCandidates(ctx, o.Out, kind, o.source(cfg), firstArg(args))
		return nil
	}

	var key string
	if len(args) > 1 {
		key = args[1]
	}
	return o.printSecretValue(ctx, cfg, args[0], key)
}

// printSecretValue is the main flow: load kubeconfig, resolve the context,
// read the secret once and print the selected value
func (o *Options) printSecretValue(ctx context.Context, cfg *config.Config, name, key string) error {
	kc, err := k8s.LoadKubeconfig(cfg.Kubeconfig)
	if err != nil {
		return err
	}

	sel, err := kc.MustResolve(cfg.Context)
	if err != nil {
		return err
	}
	logging.Debug("context resolved", "context", sel.Name, "cluster", sel.Cluster, "user", sel.User)

	client, err := o.Factory.NewClient(kc, sel)
	if err != nil {
		return err
	}

	namespace := cfg.Namespace
	if namespace == "" {
		namespace = client.Namespace()
	}

	secret, err := client.GetSecret(ctx, namespace, name)
	if err != nil {
		return err
	}

	if key == "" && cfg.Interactive {
		if keys := k8s.SecretKeys(secret); len(keys) > 1 {
			title := fmt.Sprintf("Key of %s/%s", namespace, name)
			if key, err = o.Pick(ctx, o.In, o.ErrOut, title, keys); err != nil {
				return err
			}
		}
	}

	value, err := k8s.ExtractValue(secret, key)
	if err != nil {
		return err
	}

	if err := PrintValue(o.Out, value); err != nil {
		return err
	}

	if cfg.Copy {
		// PrintValue has already validated the encoding
		if err := o.Clipboard(string(value)); err != nil {
			return err
		}
	}
	return nil
}

func (o *Options) source(cfg *config.Config) completion.Source {
	return completion.Source{
		Kubeconfig: cfg.Kubeconfig,
		Context:    cfg.Context,
		Namespace:  cfg.Namespace,
		Factory:    o.Factory,
	}
}

// completeArgs completes SECRET and then KEY
func (o *Options) completeArgs(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	var kind completion.Kind
	switch len(args) {
	case 0:
		kind = completion.KindSecrets
	case 1:
		kind = completion.KindKeys
	default:
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return o.complete(cmd, kind, firstArg(args))
}

func (o *Options) completeFlag(kind completion.Kind) cobra.CompletionFunc {
	return func(cmd *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return o.complete(cmd, kind, "")
	}
}

func (o *Options) complete(cmd *cobra.Command, kind completion.Kind, secret string) ([]string, cobra.ShellCompDirective) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	names, err := completion.List(commandContext(cmd), kind, o.source(cfg), secret)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
