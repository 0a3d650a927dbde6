package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"confedit/internal/core/domain"

	koanfyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

const EnvPrefix = "CONFEDIT__"

var DefaultConfigFilePath = filepath.Join("~", ".confedit.yaml")

// flagMappings maps persistent CLI flags onto configuration keys.
var flagMappings = map[string]string{
	"workdir":    "workdir",
	"log-level":  "log.level",
	"log-format": "log.format",
}

type ConfigRepository interface {
	LoadConfig() (*domain.Config, error)
	SaveConfig(*domain.Config) error
	ConfigExists() (bool, error)
	ConfigPath() string
}

// Settings carries the inputs needed before configuration can be loaded.
type Settings struct {
	// ConfigPath is an explicit configuration file; it must exist when set.
	ConfigPath string
	// Flags holds the command's flags. Only flags set by the user override
	// configuration.
	Flags *pflag.FlagSet
}

// FileSystemConfigRepository loads configuration from struct defaults, the
// YAML configuration file, CONFEDIT__ environment variables and explicitly
// set flags, in increasing priority.
type FileSystemConfigRepository struct {
	settings Settings
	config   *domain.Config
}

func ProvideFileSystemConfigRepository(settings Settings) *FileSystemConfigRepository {
	return &FileSystemConfigRepository{settings: settings}
}

var _ ConfigRepository = (*FileSystemConfigRepository)(nil)

// ProvideConfig loads the configuration once per injector.
func ProvideConfig(configRepository ConfigRepository) (*domain.Config, error) {
	return configRepository.LoadConfig()
}

func (c *FileSystemConfigRepository) ConfigPath() string {
	if c.settings.ConfigPath != "" {
		return c.settings.ConfigPath
	}
	return DefaultConfigFilePath
}

func (c *FileSystemConfigRepository) LoadConfig() (*domain.Config, error) {
	if c.config != nil {
		return c.config, nil
	}

	k := koanf.New(".")
	if err := k.Load(structs.Provider(domain.CreateDefaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	configPath, err := expandHomePath(c.ConfigPath())
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), koanfyaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if c.settings.ConfigPath != "" {
		return nil, fmt.Errorf("config file not found: %s", c.settings.ConfigPath)
	}

	// Double underscore (__) for nesting: CONFEDIT__LOG__LEVEL -> log.level
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if c.settings.Flags != nil {
		if err := loadFlags(k, c.settings.Flags); err != nil {
			return nil, err
		}
	}

	var config domain.Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	c.config = &config
	return &config, nil
}

func loadFlags(k *koanf.Koanf, flags *pflag.FlagSet) error {
	var errs []error
	flags.Visit(func(f *pflag.Flag) {
		if key, ok := flagMappings[f.Name]; ok {
			if err := k.Set(key, f.Value.String()); err != nil {
				errs = append(errs, fmt.Errorf("flag %s: %w", f.Name, err))
			}
		}
	})
	return errors.Join(errs...)
}

func (c *FileSystemConfigRepository) SaveConfig(config *domain.Config) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid config: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path, err := expandHomePath(c.ConfigPath())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *FileSystemConfigRepository) ConfigExists() (bool, error) {
	path, err := expandHomePath(c.ConfigPath())
	if err != nil {
		return false, err
	}

	_, err = os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check if config exists: %w", err)
}

// expandHomePath expands a leading ~ for the configuration file. The file
// lives outside the working directory, so it is not resolved through the
// document file system.
func expandHomePath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, "~\\") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}
