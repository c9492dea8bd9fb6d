package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

type Converter struct {
	Command string
	Args    []string
}

type Config struct {
	Target            string
	ExportDir         string
	DisableImages     bool
	DisableFiles      bool
	StoreOnlyURLs     []string
	ExcludeSelectors  []string
	ContentReplace    []string
	QueryReplace      []string
	IgnoreStoreErrors bool
	CrawlDomains      []string
	StaticDomains     []string
	IgnorePatterns    []string
	Converter         Converter
	Reports           string
}

var ErrMissingTarget = errors.New("config: target must not be empty")

// Load a yaml config
func Load(yamlBytes []byte) (conf *Config, err error) {
	conf = &Config{
		Reports: "console",
	}
	errUnmarshal := yaml.Unmarshal(yamlBytes, conf)
	if errUnmarshal != nil {
		return nil, errUnmarshal
	}
	if conf.Target == "" {
		return nil, ErrMissingTarget
	}
	return conf, nil
}

// Get loads a config file
func Get(filename string) (conf *Config, err error) {
	yamlBytes, errRead := os.ReadFile(filename)
	if errRead != nil {
		return nil, errRead
	}
	return Load(yamlBytes)
}

// Enabled the exporter only runs with an export dir
func (c *Config) Enabled() bool {
	return c.ExportDir != ""
}
