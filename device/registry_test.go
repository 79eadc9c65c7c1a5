package device

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryOpen(t *testing.T) {
	var received Options

	Register("registry-test", "A backend for tests", func(opts Options) (Delegate, error) {
		received = opts
		return nil, nil
	})

	_, err := Open("registry-test", Options{})
	require.NoError(t, err)
	assert.NotNil(t, received.Clock, "clock should default to the real clock")

	var names []string
	for _, info := range Backends() {
		names = append(names, info.Name)
	}

	assert.Contains(t, names, "registry-test")
}

func TestRegistryUnknownBackend(t *testing.T) {
	_, err := Open("does-not-exist", Options{})
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestRegistryFactoryError(t *testing.T) {
	failure := errors.New("no hmd connected")

	Register("registry-test-failing", "", func(Options) (Delegate, error) {
		return nil, failure
	})

	_, err := Open("registry-test-failing", Options{})
	assert.ErrorIs(t, err, failure)
}

func TestRegisterTwicePanics(t *testing.T) {
	factory := func(Options) (Delegate, error) { return nil, nil }

	Register("registry-test-twice", "", factory)
	assert.Panics(t, func() { Register("registry-test-twice", "", factory) })
}
