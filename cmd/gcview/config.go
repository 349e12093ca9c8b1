package main

import (
	"io/ioutil"
	"os"

	yaml "gopkg.in/yaml.v2"
)

type config struct {
	Addr string `yaml:"addr"`
	Dir  string `yaml:"dir"`
}

// loadConfig reads cfgFile over the defaults already in cfg. A
// missing file is only an error when the path was given explicitly.
func loadConfig(cfg *config, cfgFile string, explicit bool) error {
	data, err := ioutil.ReadFile(cfgFile)
	if os.IsNotExist(err) && !explicit {
		return nil
	}
	if err != nil {
		return err
	}
	return yaml.UnmarshalStrict(data, cfg)
}
