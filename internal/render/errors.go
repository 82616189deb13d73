// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"errors"
	"fmt"
)

// ErrConfig is the sentinel every *ConfigError matches.
var ErrConfig = errors.New("invalid configuration")

// ConfigError reports a bad style token, too few bar or spinner states, or
// a malformed template. It is always returned synchronously from a
// constructor.
type ConfigError struct {
	// Component is what was being built: "style", "bar", "spinner", "template".
	Component string
	// Value is the offending input, or the part of it that failed.
	Value string
	// Reason says what is wrong with Value.
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s", e.Component, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %q", e.Component, e.Reason, e.Value)
}

// Is makes errors.Is(err, ErrConfig) true for any *ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

func configErr(component, value, reason string) *ConfigError {
	return &ConfigError{Component: component, Value: value, Reason: reason}
}
