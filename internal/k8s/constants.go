package k8s

// DefaultNamespace is used when neither the flags nor the context name one
const DefaultNamespace = "default"

// MaxSuggestions caps the "did you mean" names attached to lookup errors
const MaxSuggestions = 3
