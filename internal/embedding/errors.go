package embedding

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey is returned when a remote provider is selected without credentials.
var ErrMissingAPIKey = errors.New("embedding provider requires an API key")

// ErrUnknownProvider is returned by New for an unsupported provider name.
var ErrUnknownProvider = errors.New("unknown embedding provider")

func errVectorCount(want, got int) error {
	return fmt.Errorf("embedding provider returned %d vectors for %d inputs", got, want)
}
