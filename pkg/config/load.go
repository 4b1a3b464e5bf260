// Package config loads typed configuration with cleanenv.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"gotodo/pkg/logger"
)

const (
	msgLoadingConfiguration = "loading configuration"
	msgConfigurationLoaded  = "configuration loaded successfully"
	msgConfigFileMissing    = "configuration file not found, reading environment only"

	errFailedLoadConfiguration = "failed to load configuration"
	errFailedStatConfigFile    = "failed to stat configuration file"

	attrService = "service"
	attrPath    = "path"
)

// Load fills a T from the file at path (yaml, json, toml or .env) when it
// exists, then applies environment variables and env-default tags on top.
// An empty path reads the environment only.
func Load[T any](ctx context.Context, serviceName, path string) (*T, error) {
	log := logger.Log(ctx).With(zap.String(attrService, serviceName))
	log.Info(ctx, msgLoadingConfiguration, zap.String(attrPath, path))

	var cfg T

	useFile := path != ""
	if useFile {
		if _, err := os.Stat(path); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%s: %w", errFailedStatConfigFile, err)
			}
			log.Debug(ctx, msgConfigFileMissing, zap.String(attrPath, path))
			useFile = false
		}
	}

	var err error
	if useFile {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		log.Error(ctx, errFailedLoadConfiguration, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFailedLoadConfiguration, err)
	}

	log.Info(ctx, msgConfigurationLoaded)
	return &cfg, nil
}
