package config

import "errors"

var (
	ErrFailedToLoadConfig   = errors.New("failed to load config")
	ErrConfigFileNotFound   = errors.New("config file does not exist")
	ErrUnsupportedExtension = errors.New("unsupported config extension")
	ErrInvalidConfigFile    = errors.New("invalid config file")
)
