package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/eth-easl/schedplot/pkg/common"
)

// ReadBenchmarkConfiguration overlays the file at path on the defaults. An empty
// path yields the defaults.
func ReadBenchmarkConfiguration(path string) (BenchmarkConfiguration, error) {
	config := DefaultBenchmarkConfiguration()
	if path != "" {
		//* Panels listed in the file replace the default panels as a whole.
		defaultPanels := config.Panels
		config.Panels = nil
		if err := readConfigurationFile(path, &config); err != nil {
			return BenchmarkConfiguration{}, err
		}
		if config.Panels == nil {
			config.Panels = defaultPanels
		}
	}
	if err := config.Validate(); err != nil {
		return BenchmarkConfiguration{}, err
	}
	return config, nil
}

func ReadMicroConfiguration(path string) (MicroConfiguration, error) {
	config := DefaultMicroConfiguration()
	if path != "" {
		if err := readConfigurationFile(path, &config); err != nil {
			return MicroConfiguration{}, err
		}
	}
	if err := config.Validate(); err != nil {
		return MicroConfiguration{}, err
	}
	return config, nil
}

// readConfigurationFile decodes YAML for .yaml/.yml files and JSON otherwise.
func readConfigurationFile(path string, out interface{}) error {
	byteValue, err := os.ReadFile(path)
	if err != nil {
		return common.IOError(err, "cannot read configuration file")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(byteValue, out)
	default:
		err = json.Unmarshal(byteValue, out)
	}
	if err != nil {
		return common.WrapSchemaError(err, "cannot parse configuration file %s", path)
	}

	log.Debugf("Configuration read from %s", path)
	return nil
}
