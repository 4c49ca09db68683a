package upstream

import (
	"errors"

	"gameapi/internal/catalog"
)

// Classify turns a GetJSON error into a catalog provider error.
func Classify(provider string, err error) error {
	if errors.Is(err, ErrDecode) {
		return catalog.NewFormatError(provider, err)
	}
	return catalog.NewTransportError(provider, err)
}
