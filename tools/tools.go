//go:build tools

// Package tools pins oapi-codegen, used to diff internal/api against
// openapi.yaml, and the goose CLI used to author new migrations.
package tools

import (
    _ "github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen"
    _ "github.com/pressly/goose/v3/cmd/goose"
)
