package completion

import (
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/renato0307/ksecret/internal/config"
)

// Shells lists the shells a completion script can be generated for
var Shells = []string{"bash", "zsh", "fish", "powershell"}

//go:embed ksecret.zsh
var zshFragment string

// Placeholders substituted into zshFragment
const (
	placeholderBinary    = "__BIN__"
	placeholderFunction  = "__FN__"
	placeholderArguments = "__ARGUMENTS__"
)

// zshFlagActions maps value flags to the zsh completion action for their
// argument. Flags not listed complete with _default.
var zshFlagActions = map[string]string{
	config.FlagKubeconfig: "_files",
	config.FlagContext:    placeholderFunction + "_contexts",
	config.FlagNamespace:  placeholderFunction + "_namespaces",
	config.FlagCompletion: "(" + strings.Join(Shells, " ") + ")",
	config.FlagLogFile:    "_files",
	config.FlagLogLevel:   "(debug info warn error)",
	config.FlagLogFormat:  "(text json)",
}

// WriteScript writes the completion script for shell. It never talks to a
// cluster.
func WriteScript(w io.Writer, cmd *cobra.Command, shell string) error {
	switch shell {
	case "bash":
		return cmd.GenBashCompletionV2(w, true)
	case "zsh":
		return writeZsh(w, cmd)
	case "fish":
		return cmd.GenFishCompletion(w, true)
	case "powershell":
		return cmd.GenPowerShellCompletionWithDesc(w)
	default:
		return fmt.Errorf("unsupported shell %q (expected one of %s)", shell, strings.Join(Shells, ", "))
	}
}

// writeZsh renders the embedded fragment with an _arguments spec built from
// the command's flags. The SECRET and KEY positions go to the dynamic
// helpers.
func writeZsh(w io.Writer, cmd *cobra.Command) error {
	var specs []string
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		specs = append(specs, zshFlagSpec(f))
	})
	specs = append(specs,
		"'1:secret:"+placeholderFunction+"_secrets'",
		"'2::key:"+placeholderFunction+"_keys'",
	)

	lines := make([]string, len(specs))
	for i, spec := range specs {
		lines[i] = "    " + spec
	}
	arguments := strings.Join(lines, " \\\n")

	// the arguments carry function placeholders too, so they go in first
	script := strings.Replace(zshFragment, placeholderArguments, arguments, 1)

	name := cmd.Root().Name()
	replacer := strings.NewReplacer(
		placeholderBinary, name,
		placeholderFunction, "_"+zshIdentifier(name),
	)
	_, err := io.WriteString(w, replacer.Replace(script))
	return err
}

// zshFlagSpec renders one flag as an _arguments option spec
func zshFlagSpec(f *pflag.Flag) string {
	desc := "[" + zshEscape(f.Usage) + "]"
	takesValue := f.Value.Type() != "bool" && f.NoOptDefVal == ""

	var value string
	if takesValue {
		action, ok := zshFlagActions[f.Name]
		if !ok {
			action = "_default"
		}
		value = ":" + f.Name + ":" + action
	}

	if f.Shorthand == "" {
		if takesValue {
			return "'--" + f.Name + "=" + desc + value + "'"
		}
		return "'--" + f.Name + desc + "'"
	}

	exclusive := fmt.Sprintf("'(-%s --%s)'", f.Shorthand, f.Name)
	if takesValue {
		return fmt.Sprintf("%s{-%s+,--%s=}'%s%s'", exclusive, f.Shorthand, f.Name, desc, value)
	}
	return fmt.Sprintf("%s{-%s,--%s}'%s'", exclusive, f.Shorthand, f.Name, desc)
}

// zshEscape makes s safe inside a single-quoted [description]
func zshEscape(s string) string {
	return strings.NewReplacer(
		"'", `'\''`,
		"[", `\[`,
		"]", `\]`,
	).Replace(s)
}

func zshIdentifier(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
