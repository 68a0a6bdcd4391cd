package k8s

import (
	"fmt"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
	clientcmdapi "k8s.io/client-go/tools/clientcmd/api"
)

// ClientFactory builds an API client for a resolved context
type ClientFactory interface {
	NewClient(kc *Kubeconfig, sel ResolvedContext) (*Client, error)
}

// ClientFactoryFunc adapts a function to ClientFactory
type ClientFactoryFunc func(kc *Kubeconfig, sel ResolvedContext) (*Client, error)

// NewClient calls f
func (f ClientFactoryFunc) NewClient(kc *Kubeconfig, sel ResolvedContext) (*Client, error) {
	return f(kc, sel)
}

// Client wraps a clientset together with the namespace its context defaults to
type Client struct {
	clientset kubernetes.Interface
	namespace string
}

// NewClientFromClientset wraps an existing clientset
func NewClientFromClientset(clientset kubernetes.Interface, namespace string) *Client {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Client{
		clientset: clientset,
		namespace: namespace,
	}
}

// Namespace returns the context's default namespace
func (c *Client) Namespace() string {
	return c.namespace
}

// Clientset returns the underlying clientset
func (c *Client) Clientset() kubernetes.Interface {
	return c.clientset
}

// DefaultClientFactory builds clients from the kubeconfig's credentials
type DefaultClientFactory struct{}

// NewClient creates a clientset for sel. Authentication, TLS and token
// refresh are left to client-go.
func (DefaultClientFactory) NewClient(kc *Kubeconfig, sel ResolvedContext) (*Client, error) {
	if kc == nil || kc.config == nil {
		return nil, &ClientBuildError{Context: sel.Name, Err: fmt.Errorf("kubeconfig not loaded")}
	}

	// The resolved selection is authoritative, so pin its cluster and user
	// in case the file holds several contexts under the same name
	overrides := &clientcmd.ConfigOverrides{
		Context: clientcmdapi.Context{
			Cluster:   sel.Cluster,
			AuthInfo:  sel.User,
			Namespace: sel.Namespace,
		},
	}
	clientConfig := clientcmd.NewNonInteractiveClientConfig(*kc.config, sel.Name, overrides, nil)

	restConfig, err := clientConfig.ClientConfig()
	if err != nil {
		return nil, &ClientBuildError{Context: sel.Name, Err: err}
	}

	namespace, _, err := clientConfig.Namespace()
	if err != nil {
		return nil, &ClientBuildError{Context: sel.Name, Err: err}
	}

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, &ClientBuildError{Context: sel.Name, Err: fmt.Errorf("error creating clientset: %w", err)}
	}

	return NewClientFromClientset(clientset, namespace), nil
}
