package k8s

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoCurrentContext is returned when no context was asked for and the
	// kubeconfig has no current-context
	ErrNoCurrentContext = errors.New("no context given and kubeconfig has no current-context")

	// ErrNoDataFound is returned for a secret without any data
	ErrNoDataFound = errors.New("No data found in secret")
)

// ConfigLoadError reports a kubeconfig that is missing or cannot be parsed
type ConfigLoadError struct {
	Path string // Empty when no candidate path existed
	Err  error
}

func (e *ConfigLoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to load kubeconfig: %v", e.Err)
	}
	return fmt.Sprintf("failed to load kubeconfig %s: %v", e.Path, e.Err)
}

func (e *ConfigLoadError) Unwrap() error {
	return e.Err
}

// ContextNotFoundError reports a context name absent from the kubeconfig
type ContextNotFoundError struct {
	Name        string
	Path        string
	Suggestions []string
}

func (e *ContextNotFoundError) Error() string {
	msg := fmt.Sprintf("context %q not found in %s", e.Name, e.Path)
	return msg + didYouMean(e.Suggestions)
}

// ClientBuildError wraps failures creating the API client for a context
type ClientBuildError struct {
	Context string
	Err     error
}

func (e *ClientBuildError) Error() string {
	return fmt.Sprintf("failed to create client for context %q: %v", e.Context, e.Err)
}

func (e *ClientBuildError) Unwrap() error {
	return e.Err
}

// KeyNotFoundError reports a requested key absent from a secret's data
type KeyNotFoundError struct {
	Key         string
	Suggestions []string
}

func (e *KeyNotFoundError) Error() string {
	return "No data found for key: " + e.Key + didYouMean(e.Suggestions)
}

func didYouMean(suggestions []string) string {
	if len(suggestions) == 0 {
		return ""
	}
	return fmt.Sprintf(" (did you mean %s?)", strings.Join(suggestions, ", "))
}
