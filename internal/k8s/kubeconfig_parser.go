package k8s

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"k8s.io/client-go/tools/clientcmd"
	clientcmdapi "k8s.io/client-go/tools/clientcmd/api"
	clientcmdapiv1 "k8s.io/client-go/tools/clientcmd/api/v1"
	"sigs.k8s.io/yaml"

	"github.com/renato0307/ksecret/internal/logging"
)

// ContextInfo holds context metadata from kubeconfig
type ContextInfo struct {
	Name      string
	Cluster   string
	User      string
	Namespace string
}

// Kubeconfig is a loaded kubeconfig file. Contexts keep the order in which
// they appear in the file.
type Kubeconfig struct {
	Path           string
	CurrentContext string
	Contexts       []*ContextInfo

	// config is the fully resolved config handed to clientcmd when a client
	// is built for one of the contexts.
	config *clientcmdapi.Config
}

// Config returns the parsed clientcmd config
func (k *Kubeconfig) Config() *clientcmdapi.Config {
	return k.config
}

// KubeconfigCandidates returns the paths LoadKubeconfig tries, in order:
// the explicit path (with ~ expanded), every entry of $KUBECONFIG and the
// default per-user location.
func KubeconfigCandidates(explicitPath string) ([]string, error) {
	var candidates []string

	if explicitPath != "" {
		expanded, err := ExpandHome(explicitPath)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, expanded)
	}

	if env := os.Getenv(clientcmd.RecommendedConfigPathEnvVar); env != "" {
		for _, p := range filepath.SplitList(env) {
			p = strings.TrimSpace(p)
			if p != "" {
				candidates = append(candidates, p)
			}
		}
	}

	if clientcmd.RecommendedHomeFile != "" {
		candidates = append(candidates, clientcmd.RecommendedHomeFile)
	}

	return candidates, nil
}

// LoadKubeconfig loads the first kubeconfig candidate that exists on disk.
// A candidate that exists but cannot be parsed is an error; later candidates
// are not tried.
func LoadKubeconfig(explicitPath string) (*Kubeconfig, error) {
	candidates, err := KubeconfigCandidates(explicitPath)
	if err != nil {
		return nil, &ConfigLoadError{Err: err}
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logging.Debug("kubeconfig candidate not found", "path", path)
				continue
			}
			return nil, &ConfigLoadError{Path: path, Err: err}
		}

		kc, err := parseKubeconfig(path)
		if err != nil {
			return nil, &ConfigLoadError{Path: path, Err: err}
		}
		logging.Debug("kubeconfig loaded", "path", path, "contexts", len(kc.Contexts))
		return kc, nil
	}

	return nil, &ConfigLoadError{Err: fmt.Errorf("no kubeconfig found (tried %s)", strings.Join(candidates, ", "))}
}

// parseKubeconfig reads one kubeconfig file
func parseKubeconfig(kubeconfigPath string) (*Kubeconfig, error) {
	data, err := os.ReadFile(kubeconfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read kubeconfig: %w", err)
	}

	// clientcmd keeps contexts in a map, so the file order comes from the
	// versioned schema where they are a list
	var versioned clientcmdapiv1.Config
	if err := yaml.Unmarshal(data, &versioned); err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
	}
	contexts := orderedContexts(&versioned)

	// clientcmd rejects repeated names; the first entry is the one that
	// resolves, so later ones are dropped before handing the file over
	if dropDuplicates(&versioned) {
		if data, err = yaml.Marshal(&versioned); err != nil {
			return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
		}
	}

	config, err := clientcmd.Load(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
	}
	if err := resolvePaths(config, kubeconfigPath); err != nil {
		return nil, err
	}

	return &Kubeconfig{
		Path:           kubeconfigPath,
		CurrentContext: config.CurrentContext,
		Contexts:       contexts,
		config:         config,
	}, nil
}

func orderedContexts(versioned *clientcmdapiv1.Config) []*ContextInfo {
	contexts := make([]*ContextInfo, 0, len(versioned.Contexts))
	for _, named := range versioned.Contexts {
		contexts = append(contexts, &ContextInfo{
			Name:      named.Name,
			Cluster:   named.Context.Cluster,
			User:      named.Context.AuthInfo,
			Namespace: named.Context.Namespace,
		})
	}
	return contexts
}

// dropDuplicates keeps the first cluster, user and context of each name.
// It reports whether anything was removed.
func dropDuplicates(versioned *clientcmdapiv1.Config) bool {
	before := len(versioned.Clusters) + len(versioned.AuthInfos) + len(versioned.Contexts)
	versioned.Clusters = firstByName(versioned.Clusters, func(c clientcmdapiv1.NamedCluster) string { return c.Name })
	versioned.AuthInfos = firstByName(versioned.AuthInfos, func(a clientcmdapiv1.NamedAuthInfo) string { return a.Name })
	versioned.Contexts = firstByName(versioned.Contexts, func(c clientcmdapiv1.NamedContext) string { return c.Name })
	return len(versioned.Clusters)+len(versioned.AuthInfos)+len(versioned.Contexts) != before
}

func firstByName[T any](items []T, name func(T) string) []T {
	seen := make(map[string]bool, len(items))
	result := items[:0]
	for _, item := range items {
		if seen[name(item)] {
			continue
		}
		seen[name(item)] = true
		result = append(result, item)
	}
	return result
}

// resolvePaths makes certificate, key and token file paths relative to the
// kubeconfig's directory, as kubectl does
func resolvePaths(config *clientcmdapi.Config, kubeconfigPath string) error {
	for _, cluster := range config.Clusters {
		cluster.LocationOfOrigin = kubeconfigPath
	}
	for _, authInfo := range config.AuthInfos {
		authInfo.LocationOfOrigin = kubeconfigPath
	}
	for _, ctx := range config.Contexts {
		ctx.LocationOfOrigin = kubeconfigPath
	}
	if err := clientcmd.ResolveLocalPaths(config); err != nil {
		return fmt.Errorf("failed to resolve kubeconfig paths: %w", err)
	}
	return nil
}

// ExpandHome replaces a leading "~" with the user's home directory
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}
