// Package config loads and saves learning parameters as YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/happyhackingspace/svmhmm/hmm"
)

// Load reads learning parameters from path. Keys missing from the file keep
// their default values. The result is validated.
func Load(path string) (hmm.LearnParm, error) {
	parm := hmm.DefaultLearnParm()
	data, err := os.ReadFile(path)
	if err != nil {
		return parm, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &parm); err != nil {
		return parm, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := parm.Validate(); err != nil {
		return parm, fmt.Errorf("%s: %w", path, err)
	}
	return parm, nil
}

// LoadOrDefault is Load, returning the defaults when path does not exist.
func LoadOrDefault(path string) (hmm.LearnParm, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return hmm.DefaultLearnParm(), nil
	}
	return Load(path)
}

// Save writes parm to path, creating parent directories.
func Save(path string, parm hmm.LearnParm) error {
	if err := parm.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(parm)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
