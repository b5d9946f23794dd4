package app

import (
	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the application configuration, loadable from environment
// variables (STORE_ prefix), flags, or a YAML config file.
type Config struct {
	Prompt   string `default:"> "   usage:"Operator input prompt"`
	DoneWord string `default:"done" usage:"Word that finishes order entry" flag:"done-word"`
}

// LoadConfig loads configuration from environment variables, flags, and the
// optional config.yaml next to the binary.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "STORE",
		Files:     []string{"config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	return &cfg, nil
}
