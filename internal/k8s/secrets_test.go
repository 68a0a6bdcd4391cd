package k8s

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func testSecret(namespace, name string, data map[string][]byte) *corev1.Secret {
	return &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace},
		Data:       data,
	}
}

func TestGetSecret(t *testing.T) {
	client := NewClientFromClientset(fake.NewClientset(
		testSecret("ops", "ops-api-token", map[string][]byte{"token": []byte("abc")}),
	), "ops")

	t.Run("found", func(t *testing.T) {
		secret, err := client.GetSecret(context.Background(), "ops", "ops-api-token")
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), secret.Data["token"])
	})

	t.Run("api error passes through", func(t *testing.T) {
		_, err := client.GetSecret(context.Background(), "ops", "missing")
		require.Error(t, err)
		assert.True(t, apierrors.IsNotFound(err))
		assert.Equal(t, `secrets "missing" not found`, err.Error())
	})

	t.Run("namespace is respected", func(t *testing.T) {
		_, err := client.GetSecret(context.Background(), "default", "ops-api-token")
		assert.True(t, apierrors.IsNotFound(err))
	})
}

func TestListNames(t *testing.T) {
	client := NewClientFromClientset(fake.NewClientset(
		&corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: "ops"}},
		&corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: "dev"}},
		testSecret("ops", "db-credentials", nil),
		testSecret("ops", "api-token", nil),
		testSecret("dev", "other", nil),
	), "")

	assert.Equal(t, DefaultNamespace, client.Namespace())

	secrets, err := client.ListSecretNames(context.Background(), "ops")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"db-credentials", "api-token"}, secrets)

	namespaces, err := client.ListNamespaceNames(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"ops", "dev"}, namespaces)
}

func TestSecretKeys(t *testing.T) {
	secret := &corev1.Secret{
		Data:       map[string][]byte{"b": []byte("2"), "a": []byte("1")},
		StringData: map[string]string{"c": "3", "a": "ignored"},
	}

	assert.Equal(t, []string{"a", "b", "c"}, SecretKeys(secret))
	assert.Equal(t, []byte("1"), SecretData(secret)["a"])
	assert.Empty(t, SecretKeys(nil))
}

func TestExtractValue(t *testing.T) {
	tests := []struct {
		name     string
		secret   *corev1.Secret
		key      string
		want     string
		errCheck func(t *testing.T, err error)
	}{
		{
			name:   "named key",
			secret: testSecret("ops", "s", map[string][]byte{"token": []byte("abc")}),
			key:    "token",
			want:   "abc",
		},
		{
			name:   "named key among several",
			secret: testSecret("ops", "s", map[string][]byte{"a": []byte("1"), "b": []byte("2")}),
			key:    "b",
			want:   "2",
		},
		{
			name:   "no key takes the smallest key",
			secret: testSecret("ops", "s", map[string][]byte{"zeta": []byte("z"), "alpha": []byte("a"), "mid": []byte("m")}),
			want:   "a",
		},
		{
			name:   "stringData only",
			secret: &corev1.Secret{StringData: map[string]string{"password": "hunter2"}},
			key:    "password",
			want:   "hunter2",
		},
		{
			name:   "empty value",
			secret: testSecret("ops", "s", map[string][]byte{"empty": {}}),
			key:    "empty",
			want:   "",
		},
		{
			name:   "missing key",
			secret: testSecret("ops", "s", map[string][]byte{"a": []byte("1")}),
			key:    "missing",
			errCheck: func(t *testing.T, err error) {
				var keyErr *KeyNotFoundError
				require.True(t, errors.As(err, &keyErr))
				assert.Equal(t, "missing", keyErr.Key)
				assert.Equal(t, "No data found for key: missing", err.Error())
			},
		},
		{
			name:   "missing key with suggestion",
			secret: testSecret("ops", "s", map[string][]byte{"token": []byte("abc")}),
			key:    "tkn",
			errCheck: func(t *testing.T, err error) {
				assert.Equal(t, "No data found for key: tkn (did you mean token?)", err.Error())
			},
		},
		{
			name:   "no data",
			secret: testSecret("ops", "s", nil),
			key:    "token",
			errCheck: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, ErrNoDataFound))
				assert.Equal(t, "No data found in secret", err.Error())
			},
		},
		{
			name:   "empty data without key",
			secret: testSecret("ops", "s", map[string][]byte{}),
			errCheck: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, ErrNoDataFound))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := ExtractValue(tt.secret, tt.key)
			if tt.errCheck != nil {
				require.Error(t, err)
				assert.Nil(t, value)
				tt.errCheck(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(value))
		})
	}
}

func TestGetSecret_Envtest(t *testing.T) {
	requireEnvtest(t)
	isolateKubeconfigSources(t)

	namespace := createTestNamespace(t)
	_, err := testClient.CoreV1().Secrets(namespace).Create(context.Background(),
		testSecret(namespace, "ops-api-token", map[string][]byte{"token": []byte("abc")}),
		metav1.CreateOptions{})
	require.NoError(t, err)

	kc, err := LoadKubeconfig(createTestKubeconfig(t, namespace))
	require.NoError(t, err)
	sel, err := kc.MustResolve("")
	require.NoError(t, err)

	client, err := DefaultClientFactory{}.NewClient(kc, sel)
	require.NoError(t, err)
	assert.Equal(t, namespace, client.Namespace())

	secret, err := client.GetSecret(context.Background(), client.Namespace(), "ops-api-token")
	require.NoError(t, err)
	value, err := ExtractValue(secret, "token")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(value))

	_, err = client.GetSecret(context.Background(), client.Namespace(), "missing")
	assert.True(t, apierrors.IsNotFound(err))
}
