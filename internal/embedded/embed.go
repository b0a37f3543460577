// Package embedded carries the default location registry in the binary.
package embedded

import (
	"embed"

	"github.com/upenn-libraries/libhours/pkg/registry"
)

// RegistryPath is the path of the default registry inside FS.
const RegistryPath = "registry/locations.yaml"

// FS embeds the default registry.
//
//go:embed registry/*
var FS embed.FS

// Registry parses the embedded default registry.
func Registry() (*registry.Config, error) {
	data, err := FS.ReadFile(RegistryPath)
	if err != nil {
		return nil, err
	}
	return registry.Parse(data, "embedded:"+RegistryPath)
}

// RegistryYAML returns the raw embedded registry.
func RegistryYAML() []byte {
	data, _ := FS.ReadFile(RegistryPath)
	return data
}
