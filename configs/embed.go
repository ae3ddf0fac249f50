// Package configs provides the embedded configuration template for setupcheck.
//
// The template is embedded at build time so it ships with every binary. It
// is printed by `setupcheck config example` and documents every key that
// internal/config understands, with its default value.
//
// To modify the template, edit setupcheck.example.yaml and rebuild.
package configs

import _ "embed"

// ProjectConfigTemplate is the example .setupcheck.yaml.
//
//go:embed setupcheck.example.yaml
var ProjectConfigTemplate string
