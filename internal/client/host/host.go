// Package host answers the single question the mini-app runtime is asked:
// is a signed identity payload available for the current user, and if so,
// what is it. Outside the host runtime the answer is simply "no".
package host

import "os"

// PayloadEnvVar is the environment variable the mini-app launcher exports
// the signed identity payload into before starting the client.
const PayloadEnvVar = "MINICLUB_INIT_DATA"

// Probe reports the host-supplied identity payload, if any.
type Probe interface {
	IdentityPayload() (payload string, ok bool)
}

// EnvProbe reads the payload from the process environment.
type EnvProbe struct {
	Var string
}

// FromEnv returns a probe bound to the default launcher variable.
func FromEnv() *EnvProbe {
	return &EnvProbe{Var: PayloadEnvVar}
}

func (p *EnvProbe) IdentityPayload() (string, bool) {
	v := os.Getenv(p.Var)
	return v, v != ""
}

// Static is a fixed payload, used by tests and dev tooling. The empty string
// behaves like "not running inside the host".
type Static string

func (s Static) IdentityPayload() (string, bool) {
	return string(s), s != ""
}
