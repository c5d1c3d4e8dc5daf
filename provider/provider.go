// Package provider manages the registry of built-in and Lua-scripted media
// session providers.
package provider

import (
	"path/filepath"

	"github.com/nowbar-cli/nowbar/filesystem"
	"github.com/nowbar-cli/nowbar/key"
	"github.com/nowbar-cli/nowbar/provider/custom"
	"github.com/nowbar-cli/nowbar/provider/demo"
	"github.com/nowbar-cli/nowbar/session"
	"github.com/nowbar-cli/nowbar/where"
	"github.com/spf13/viper"
)

// CustomProviderExtension is the file extension of Lua provider scripts.
const CustomProviderExtension = ".lua"

// Info describes a registered provider without connecting to it.
type Info struct {
	ID       string
	Name     string
	IsCustom bool // Lua-scripted providers.
	Connect  func() (session.Provider, error)
}

func (i *Info) String() string {
	return i.Name
}

// Builtins returns the compiled-in providers.
func Builtins() []*Info {
	return []*Info{
		{
			ID:   demo.ID,
			Name: demo.ID,
			Connect: func() (session.Provider, error) {
				return demo.New(), nil
			},
		},
	}
}

// Customs returns all available Lua-scripted providers.
func Customs() []*Info {
	providers, _ := CustomProviders()
	return providers
}

// Get finds a provider by name among builtins and customs.
func Get(name string) (*Info, bool) {
	for _, p := range Builtins() {
		if p.Name == name {
			return p, true
		}
	}
	for _, p := range Customs() {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Default resolves the configured default provider.
func Default() (*Info, bool) {
	return Get(viper.GetString(key.ProvidersDefault))
}

// CustomProviders enumerates the Lua scripts in the providers directory.
func CustomProviders() ([]*Info, error) {
	files, err := filesystem.API().ReadDir(where.Providers())
	if err != nil {
		return nil, err
	}

	var providers []*Info
	for _, f := range files {
		if filepath.Ext(f.Name()) != CustomProviderExtension {
			continue
		}

		path := filepath.Join(where.Providers(), f.Name())
		name := stem(f.Name())

		providers = append(providers, &Info{
			ID:       custom.IDFromName(name),
			Name:     name,
			IsCustom: true,
			Connect: func() (session.Provider, error) {
				return custom.LoadProvider(path)
			},
		})
	}

	return providers, nil
}

func stem(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}
