// Package environment defines the deployment environments build-env compiles for.
package environment

import (
	"errors"
	"fmt"
	"strings"
)

// Environment is a deployment target.
type Environment string

const (
	Local      Environment = "local"
	Testing    Environment = "testing"
	Staging    Environment = "staging"
	Production Environment = "production"
)

// ErrUnknown is returned when a name is neither an environment nor an alias.
var ErrUnknown = errors.New("unknown environment")

// aliases maps the short names accepted on the command line.
var aliases = map[string]Environment{
	"test": Testing,
	"stag": Staging,
	"prod": Production,
}

// All returns the environments in their canonical order.
func All() []Environment {
	return []Environment{Local, Testing, Staging, Production}
}

// Parse normalizes a name or alias into an Environment.
func Parse(name string) (Environment, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	if env, ok := aliases[name]; ok {
		return env, nil
	}

	for _, env := range All() {
		if string(env) == name {
			return env, nil
		}
	}

	return "", fmt.Errorf("%w: %q (expected local, testing, staging or production)", ErrUnknown, name)
}

// String returns the environment name.
func (e Environment) String() string {
	return string(e)
}

// Index returns the position of e in All, or -1.
func (e Environment) Index() int {
	for i, env := range All() {
		if env == e {
			return i
		}
	}
	return -1
}
