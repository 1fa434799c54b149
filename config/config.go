// Package config loads the settings of the user service from a JSON file or
// from Rigel, the etcd-backed configuration store.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config is an interface that represents a source from which application configuration can be loaded.
type Config interface {
	LoadConfig(c any) error
	Check() error
	Get(key string) (string, error)
}

// Load first ensures that the config system valid and accessible. Then it loads the config into c.
func Load(cs Config, c any) error {
	if err := cs.Check(); err != nil {
		return err
	}
	return cs.LoadConfig(c)
}

// File

type File struct {
	ConfigFilePath string
	Config         map[string]any
}

// NewFile returns a File source reading configFilePath.
func NewFile(configFilePath string) (*File, error) {
	file := &File{ConfigFilePath: configFilePath}

	if err := file.Check(); err != nil {
		return nil, err
	}

	return file, nil
}

func (f *File) Check() error {
	if f.ConfigFilePath == "" {
		return fmt.Errorf("configFilePath cannot be empty")
	}

	return nil
}

// LoadConfig decodes the file into appConfig. The raw key/value pairs are
// kept for Get.
func (f *File) LoadConfig(appConfig any) error {
	content, err := os.ReadFile(f.ConfigFilePath)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(content, &f.Config); err != nil {
		return fmt.Errorf("failed to parse %s: %w", f.ConfigFilePath, err)
	}
	return json.Unmarshal(content, appConfig)
}

type ValueNotStringError struct {
	Key   string
	Value any
}

func (e *ValueNotStringError) Error() string {
	return fmt.Sprintf("value for key %s is not a string: %v", e.Key, e.Value)
}

type KeyNotFoundError struct {
	Key string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("key %s not found in config", e.Key)
}

// Get retrieves a value from the configuration based on the provided key.
// If the value is a string, it is returned as is. If the value is not a string,
// it is converted to a string using fmt.Sprintf and returned along with the error ValueNotStringError.
// If the key is not found in the configuration, an error of type KeyNotFoundError is returned.
func (f *File) Get(key string) (string, error) {
	value, ok := f.Config[key]
	if !ok {
		return "", &KeyNotFoundError{Key: key}
	}

	strValue, ok := value.(string)
	if !ok {
		return fmt.Sprintf("%v", value), &ValueNotStringError{Key: key, Value: value}
	}

	return strValue, nil
}

// LoadConfigFromFile loads appConfig from the JSON file at filePath.
func LoadConfigFromFile(filePath string, appConfig any) error {
	configSource, err := NewFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to create File config source: %w", err)
	}

	if err := Load(configSource, appConfig); err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	return nil
}
