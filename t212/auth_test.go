package t212

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBasicAuth(t *testing.T) {
	auth, err := NewBasicAuth("my-key", "my-secret")
	require.NoError(t, err)

	want := "Basic " + base64.StdEncoding.EncodeToString([]byte("my-key:my-secret"))
	assert.Equal(t, want, auth.Header())
}

func TestNewBasicAuthMissingCredentials(t *testing.T) {
	_, err := NewBasicAuth("", "secret")
	assert.Error(t, err)

	_, err = NewBasicAuth("key", "")
	assert.Error(t, err)

	_, err = NewBasicAuth("", "")
	assert.Error(t, err)
}
