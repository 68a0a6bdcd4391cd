package completion

import (
	"context"
	"fmt"
	"io"

	"github.com/renato0307/ksecret/internal/k8s"
	"github.com/renato0307/ksecret/internal/logging"
)

// Source says where candidates come from. Its fields mirror the flags of the
// command being completed.
type Source struct {
	Kubeconfig string
	Context    string
	Namespace  string
	Factory    k8s.ClientFactory
}

// List returns the candidates for kind. secret is only used by KindKeys.
func List(ctx context.Context, kind Kind, src Source, secret string) ([]string, error) {
	kc, err := k8s.LoadKubeconfig(src.Kubeconfig)
	if err != nil {
		return nil, err
	}

	if kind == KindContexts {
		return kc.ContextNames(), nil
	}

	sel, err := kc.MustResolve(src.Context)
	if err != nil {
		return nil, err
	}

	factory := src.Factory
	if factory == nil {
		factory = k8s.DefaultClientFactory{}
	}
	client, err := factory.NewClient(kc, sel)
	if err != nil {
		return nil, err
	}

	namespace := src.Namespace
	if namespace == "" {
		namespace = client.Namespace()
	}

	switch kind {
	case KindNamespaces:
		return client.ListNamespaceNames(ctx)
	case KindSecrets:
		return client.ListSecretNames(ctx, namespace)
	case KindKeys:
		if secret == "" {
			return nil, fmt.Errorf("listing keys needs a secret name")
		}
		s, err := client.GetSecret(ctx, namespace, secret)
		if err != nil {
			return nil, err
		}
		return k8s.SecretKeys(s), nil
	default:
		return nil, fmt.Errorf("unknown completion kind %q", kind)
	}
}

// WriteCandidates lists kind and writes one candidate per line. Failures are
// logged and produce no output so a tab press never shows an error.
func WriteCandidates(ctx context.Context, w io.Writer, kind Kind, src Source, secret string) {
	names, err := List(ctx, kind, src, secret)
	if err != nil {
		logging.Debug("completion listing failed", "kind", kind, "error", err)
		return
	}

	for _, name := range names {
		fmt.Fprintln(w, name)
	}
}
