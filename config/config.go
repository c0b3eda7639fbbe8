package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"storysync/internal/infrastructure/connectivity"
	"storysync/internal/infrastructure/database"
	"storysync/internal/infrastructure/identity"
	"storysync/internal/infrastructure/minio"
	"storysync/internal/infrastructure/pending"
	"storysync/pkg/logger"
)

// Config represents the configs used by services on system.
type Config struct {
	Environment   string               `yaml:"environment"`
	Default       DefaultConfig        `yaml:"default"`
	MinIOClient   minio.ClientConfig   `yaml:"minio_client"`
	MinIOUploader minio.UploaderConfig `yaml:"minio_uploader"`
	MinIORemover  minio.RemoverConfig  `yaml:"minio_remover"`
	DBConfig      database.Config      `yaml:"db_config"`
	PendingStore  pending.Config       `yaml:"pending_store"`
	Connectivity  connectivity.Config  `yaml:"connectivity"`
	Feed          FeedConfig           `yaml:"feed"`
	Logger        logger.Config        `yaml:"logger"`
	Identity      identity.Config      `yaml:"-"`
}

type DefaultConfig struct {
	Address string `yaml:"address"`
}

type FeedConfig struct {
	DebounceMS int64 `yaml:"debounce_in_ms"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, Error{
			reason: err.Error(),
		}
	}
	defer file.Close()

	config := &Config{}

	decoder := yaml.NewDecoder(file)

	if err := decoder.Decode(config); err != nil {
		return nil, Error{
			reason: err.Error(),
		}
	}

	if config.Environment != "prod" {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return nil, Error{
				reason: err.Error(),
			}
		}
	}

	config.MinIOClient.AccessKey = os.Getenv("MINIO_ROOT_USER")
	config.MinIOClient.SecretKey = os.Getenv("MINIO_ROOT_PASSWORD")
	config.DBConfig.URI = os.Getenv("DATABASE_URI")
	config.Identity.Secret = os.Getenv("SESSION_SECRET")
	config.Identity.Token = os.Getenv("SESSION_TOKEN")

	if err = config.basicCheck(); err != nil {
		return nil, Error{
			reason: err.Error(),
		}
	}

	return config, nil
}

// basicCheck validates the basic stuff in config.
func (c *Config) basicCheck() error {
	if c.Feed.DebounceMS == 0 {
		c.Feed.DebounceMS = 2000
	}

	return nil
}
