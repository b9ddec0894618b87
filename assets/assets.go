// Package assets embeds the default item catalog.
package assets

import _ "embed"

// Items is the default item catalog in YAML.
//
//go:embed items.yaml
var Items []byte
