package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelsSurviveWrapping(t *testing.T) {
	err := fmt.Errorf("%w: root %q is not a directory", ErrConfiguration, "/tmp/x")
	if !errors.Is(err, ErrConfiguration) {
		t.Fatal("wrapped error should match ErrConfiguration")
	}
	if errors.Is(err, ErrDocumentRead) {
		t.Error("configuration error must not match ErrDocumentRead")
	}
}
