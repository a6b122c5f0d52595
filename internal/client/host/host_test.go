package host

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnvProbe(t *testing.T) {
	p := &EnvProbe{Var: "TEST_INIT_DATA"}

	_, ok := p.IdentityPayload()
	require.False(t, ok)

	t.Setenv("TEST_INIT_DATA", "signed-payload")
	payload, ok := p.IdentityPayload()
	require.True(t, ok)
	require.Equal(t, "signed-payload", payload)
}

func TestStaticProbe(t *testing.T) {
	_, ok := Static("").IdentityPayload()
	require.False(t, ok)

	payload, ok := Static("x").IdentityPayload()
	require.True(t, ok)
	require.Equal(t, "x", payload)
}
