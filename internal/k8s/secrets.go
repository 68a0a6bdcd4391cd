package k8s

import (
	"context"
	"sort"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/renato0307/ksecret/internal/logging"
)

// GetSecret reads one secret. API errors are returned unchanged.
func (c *Client) GetSecret(ctx context.Context, namespace, name string) (*corev1.Secret, error) {
	timing := logging.Start("get secret")
	defer logging.End(timing)

	logging.Debug("reading secret", "namespace", namespace, "name", name)
	return c.clientset.CoreV1().Secrets(namespace).Get(ctx, name, metav1.GetOptions{})
}

// ListSecretNames returns the names of every secret in namespace
func (c *Client) ListSecretNames(ctx context.Context, namespace string) ([]string, error) {
	timing := logging.Start("list secrets")

	list, err := c.clientset.CoreV1().Secrets(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(list.Items))
	for _, secret := range list.Items {
		names = append(names, secret.Name)
	}
	logging.EndWithCount(timing, len(names))
	return names, nil
}

// ListNamespaceNames returns the names of every namespace visible to the client
func (c *Client) ListNamespaceNames(ctx context.Context) ([]string, error) {
	timing := logging.Start("list namespaces")

	list, err := c.clientset.CoreV1().Namespaces().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(list.Items))
	for _, ns := range list.Items {
		names = append(names, ns.Name)
	}
	logging.EndWithCount(timing, len(names))
	return names, nil
}

// SecretData returns the secret's data merged with any stringData. Data wins
// on a key present in both.
func SecretData(secret *corev1.Secret) map[string][]byte {
	if secret == nil {
		return nil
	}
	if len(secret.StringData) == 0 {
		return secret.Data
	}

	data := make(map[string][]byte, len(secret.Data)+len(secret.StringData))
	for k, v := range secret.StringData {
		data[k] = []byte(v)
	}
	for k, v := range secret.Data {
		data[k] = v
	}
	return data
}

// SecretKeys returns the secret's keys sorted lexicographically
func SecretKeys(secret *corev1.Secret) []string {
	data := SecretData(secret)
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ExtractValue picks a value out of the secret. With an empty key it returns
// the value of the lexicographically smallest key, so the result does not
// depend on map iteration order.
func ExtractValue(secret *corev1.Secret, key string) ([]byte, error) {
	data := SecretData(secret)
	if len(data) == 0 {
		return nil, ErrNoDataFound
	}

	if key == "" {
		keys := SecretKeys(secret)
		return data[keys[0]], nil
	}

	value, ok := data[key]
	if !ok {
		return nil, &KeyNotFoundError{
			Key:         key,
			Suggestions: suggest(key, SecretKeys(secret)),
		}
	}
	return value, nil
}
