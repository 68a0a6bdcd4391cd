package k8s

import "github.com/sahilm/fuzzy"

// ResolvedContext is the context selected from a kubeconfig for this run
type ResolvedContext struct {
	Name      string
	Cluster   string
	User      string
	Namespace string // Empty when the context has no default namespace
}

// Resolve selects the context named override, or the kubeconfig's
// current-context when override is empty. The first context with an exactly
// matching name wins. It returns false when there is nothing to look for or
// no context matches.
func (k *Kubeconfig) Resolve(override string) (ResolvedContext, bool) {
	sought := override
	if sought == "" {
		sought = k.CurrentContext
	}
	if sought == "" {
		return ResolvedContext{}, false
	}

	for _, ctx := range k.Contexts {
		if ctx.Name == sought {
			return ResolvedContext{
				Name:      ctx.Name,
				Cluster:   ctx.Cluster,
				User:      ctx.User,
				Namespace: ctx.Namespace,
			}, true
		}
	}
	return ResolvedContext{}, false
}

// MustResolve is Resolve reporting a miss as an error
func (k *Kubeconfig) MustResolve(override string) (ResolvedContext, error) {
	if sel, ok := k.Resolve(override); ok {
		return sel, nil
	}

	if override == "" && k.CurrentContext == "" {
		return ResolvedContext{}, ErrNoCurrentContext
	}
	name := override
	if name == "" {
		name = k.CurrentContext
	}
	return ResolvedContext{}, &ContextNotFoundError{
		Name:        name,
		Path:        k.Path,
		Suggestions: k.SuggestContexts(name),
	}
}

// ContextNames returns every context name in file order
func (k *Kubeconfig) ContextNames() []string {
	names := make([]string, 0, len(k.Contexts))
	for _, ctx := range k.Contexts {
		names = append(names, ctx.Name)
	}
	return names
}

// SuggestContexts returns up to MaxSuggestions context names resembling name
func (k *Kubeconfig) SuggestContexts(name string) []string {
	return suggest(name, k.ContextNames())
}

// suggest ranks candidates by fuzzy similarity to query
func suggest(query string, candidates []string) []string {
	if query == "" || len(candidates) == 0 {
		return nil
	}

	matches := fuzzy.Find(query, candidates)
	result := make([]string, 0, MaxSuggestions)
	for _, match := range matches {
		if len(result) == MaxSuggestions {
			break
		}
		result = append(result, match.Str)
	}
	return result
}
