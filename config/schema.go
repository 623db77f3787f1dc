// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package config

// Schema is the JSON schema for APP_LAUNCHER_CONFIG_JSON.
var Schema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "App Launcher Configuration",
  "description": "Options for the app-launcher container entrypoint",
  "type": "object",
  "properties": {
    "logLevel": {
      "description": "Sets the log level for the launcher.",
      "type": "string",
      "pattern": "^(?i)(trace|debug|info|warn|error)$",
      "default": "INFO"
    },
    "activateScript": {
      "description": "Path of the environment activation script, relative to BUILD. Absolute paths are not allowed.",
      "type": "string",
      "minLength": 1,
      "pattern": "^[^/]",
      "default": "bin/activate"
    },
    "defaultCommand": {
      "description": "Command run when no arguments are given. ${APP_NAME} and other variables are expanded, and the result is split into words like a shell would.",
      "type": "string",
      "minLength": 1,
      "default": "python ${APP_NAME}.py"
    },
    "supervise": {
      "description": "Run the application as a child process and forward signals to it, instead of replacing the launcher process.",
      "type": "boolean",
      "default": false
    }
  },
  "additionalProperties": false
}`
