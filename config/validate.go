// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package config

import (
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/xeipuuv/gojsonschema"
)

// ConfigEnvironmentVariable holds the optional launcher config JSON.
const ConfigEnvironmentVariable = "APP_LAUNCHER_CONFIG_JSON"

func validate(config string) error {
	schemaLoader := gojsonschema.NewStringLoader(Schema)
	configLoader := gojsonschema.NewStringLoader(config)

	result, err := gojsonschema.Validate(schemaLoader, configLoader)
	if err != nil {
		return err
	}
	if result.Valid() {
		return nil
	}

	for _, e := range result.Errors() {
		err = multierror.Append(err, fmt.Errorf("%s", e.String()))
	}
	return err
}

// Parse validates encodedConfig against the schema and decodes it.
func Parse(encodedConfig string) (*Config, error) {
	if err := validate(encodedConfig); err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal([]byte(encodedConfig), &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// FromEnv reads the launcher config from env. An unset or empty variable
// yields the default config.
func FromEnv(env Environment) (*Config, error) {
	rawConfig := env.Get(ConfigEnvironmentVariable)
	if rawConfig == "" {
		return Default(), nil
	}
	conf, err := Parse(rawConfig)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ConfigEnvironmentVariable, err)
	}
	return conf, nil
}
