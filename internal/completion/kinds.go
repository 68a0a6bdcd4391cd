// Package completion produces shell completion scripts and the dynamic
// candidate lists those scripts ask for at tab-press time.
package completion

import (
	"fmt"
	"strings"
)

// Kind selects which candidates a dynamic completion request lists
type Kind string

const (
	KindContexts   Kind = "contexts"
	KindNamespaces Kind = "namespaces"
	KindSecrets    Kind = "secrets"
	KindKeys       Kind = "keys"
)

// Kinds lists every supported kind
var Kinds = []Kind{KindContexts, KindNamespaces, KindSecrets, KindKeys}

// ParseKind converts a --completion-helper argument to a Kind
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown completion kind %q (expected one of %s)", s, kindNames())
}

func kindNames() string {
	names := make([]string, len(Kinds))
	for i, k := range Kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
