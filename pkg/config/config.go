package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/yaml"
)

const (
	KubensureConfigKind       = "Config"
	KubensureConfigApiVersion = "kubensure.dev/v1"
	KubensureKubectlCommand   = "kubectl"
	KubensureDefaultNamespace = "default"
	KubensureDefaultState     = "created"
)

type Config struct {
	metav1.TypeMeta `json:",inline"`

	// Kubectl holds the command used to reach the cluster.
	Kubectl *Kubectl `json:"kubectl,omitempty"`

	// Defaults holds the values applied when flags are omitted.
	Defaults *Defaults `json:"defaults,omitempty"`
}

type Kubectl struct {
	// Command is the kubectl command to shell out to. It may carry
	// extra tokens, e.g. 'minikube kubectl --'.
	Command string `json:"command"`
}

type Defaults struct {
	// Namespace used when none is given on the command line.
	Namespace string `json:"namespace"`

	// State used when none is given on the command line.
	State string `json:"state"`
}

// NewConfig returns a config with the default kubectl command and defaults.
func NewConfig() *Config {
	return &Config{
		TypeMeta: metav1.TypeMeta{
			Kind:       KubensureConfigKind,
			APIVersion: KubensureConfigApiVersion,
		},
		Kubectl:  defaultKubectl(),
		Defaults: defaultDefaults(),
	}
}

func defaultKubectl() *Kubectl {
	return &Kubectl{
		Command: KubensureKubectlCommand,
	}
}

func defaultDefaults() *Defaults {
	return &Defaults{
		Namespace: KubensureDefaultNamespace,
		State:     KubensureDefaultState,
	}
}

// DefaultConfigPath returns '$HOME/.kubensure/config'.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".kubensure/config"), nil
}

// Read loads the config from the specified path,
// if the config file is not found, a default is returned.
func Read(configPath string) (*Config, error) {
	if configPath == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return nil, fmt.Errorf("$HOME dir can't be determined, error: %w", err)
		}
		configPath = p
	}

	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		return NewConfig(), nil
	}

	cfgData, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(cfgData, cfg); err != nil {
		return nil, err
	}

	if cfg.Kubectl == nil {
		cfg.Kubectl = defaultKubectl()
	}

	if cfg.Defaults == nil {
		cfg.Defaults = defaultDefaults()
	}

	if cfg.Kubectl.Command == "" {
		return nil, fmt.Errorf("the kubectl command can't be empty")
	}

	if cfg.Defaults.Namespace == "" {
		cfg.Defaults.Namespace = KubensureDefaultNamespace
	}

	if cfg.Defaults.State == "" {
		cfg.Defaults.State = KubensureDefaultState
	}

	return cfg, nil
}

// Write saves the config at the specified path,
// the parent directory is created if missing.
func (c *Config) Write(configPath string) error {
	if configPath == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return err
		}
		configPath = p
	}

	if err := os.MkdirAll(filepath.Dir(configPath), os.FileMode(0755)); err != nil {
		return err
	}

	cfgData, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	if err := os.WriteFile(configPath, cfgData, os.FileMode(0666)); err != nil {
		return err
	}

	return nil
}
