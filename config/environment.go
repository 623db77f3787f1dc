// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package config

import (
	"sort"
	"strings"
)

// Environment is a flat mapping of environment variable names to values.
type Environment map[string]string

// FromEnviron builds an Environment from a list of KEY=VALUE entries, as
// returned by os.Environ. Later entries win over earlier duplicates.
func FromEnviron(environ []string) Environment {
	env := make(Environment, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		env[k] = v
	}
	return env
}

// Lookup returns the value of key and whether it is set.
func (e Environment) Lookup(key string) (string, bool) {
	v, ok := e[key]
	return v, ok
}

// Get returns the value of key, or "" if unset.
func (e Environment) Get(key string) string {
	return e[key]
}

// SetDefault assigns value to key only if key is unset. An empty value still
// counts as set. It returns true if the default was applied.
func (e Environment) SetDefault(key, value string) bool {
	if _, ok := e[key]; ok {
		return false
	}
	e[key] = value
	return true
}

// Clone returns a copy of e.
func (e Environment) Clone() Environment {
	out := make(Environment, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Slice renders e as sorted KEY=VALUE entries, suitable for exec.
func (e Environment) Slice() []string {
	out := make([]string, 0, len(e))
	for k, v := range e {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}
