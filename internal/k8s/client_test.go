package k8s

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/client-go/kubernetes/fake"
)

func TestDefaultClientFactory_Namespace(t *testing.T) {
	isolateKubeconfigSources(t)
	kc, err := LoadKubeconfig(writeKubeconfig(t, orderedKubeconfig))
	require.NoError(t, err)

	tests := []struct {
		context   string
		namespace string
	}{
		{"ctx-beta", "kube-system"},
		{"zulu", DefaultNamespace},
		{"alpha", "default"},
	}

	for _, tt := range tests {
		t.Run(tt.context, func(t *testing.T) {
			sel, err := kc.MustResolve(tt.context)
			require.NoError(t, err)

			client, err := DefaultClientFactory{}.NewClient(kc, sel)
			require.NoError(t, err)
			assert.Equal(t, tt.namespace, client.Namespace())
			assert.NotNil(t, client.Clientset())
		})
	}
}

func TestDefaultClientFactory_Errors(t *testing.T) {
	t.Run("kubeconfig not loaded", func(t *testing.T) {
		_, err := DefaultClientFactory{}.NewClient(&Kubeconfig{}, ResolvedContext{Name: "x"})

		var buildErr *ClientBuildError
		require.True(t, errors.As(err, &buildErr))
		assert.Equal(t, "x", buildErr.Context)
	})

	t.Run("context references a missing cluster", func(t *testing.T) {
		isolateKubeconfigSources(t)
		kc, err := LoadKubeconfig(writeKubeconfig(t, `apiVersion: v1
kind: Config
current-context: broken
contexts:
- name: broken
  context:
    cluster: nowhere
    user: nobody
`))
		require.NoError(t, err)
		sel, err := kc.MustResolve("")
		require.NoError(t, err)

		_, err = DefaultClientFactory{}.NewClient(kc, sel)

		var buildErr *ClientBuildError
		require.True(t, errors.As(err, &buildErr))
		assert.Contains(t, err.Error(), `failed to create client for context "broken"`)
	})
}

func TestClientFactoryFunc(t *testing.T) {
	want := NewClientFromClientset(fake.NewClientset(), "ops")
	factory := ClientFactoryFunc(func(_ *Kubeconfig, sel ResolvedContext) (*Client, error) {
		assert.Equal(t, "ctx", sel.Name)
		return want, nil
	})

	got, err := factory.NewClient(nil, ResolvedContext{Name: "ctx"})
	require.NoError(t, err)
	assert.Same(t, want, got)
}
