package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config defines the structure of the configuration file.
type Config struct {
	GitCommit          string        `yaml:"git_commit" envconfig:"LIB_GIT_COMMIT"`
	GitTag             string        `yaml:"git_tag" envconfig:"LIB_GIT_TAG"`
	BuildTime          string        `yaml:"build_time" envconfig:"LIB_BUILD_TIME"`
	IsProduction       bool          `yaml:"is_production" envconfig:"LIB_IS_PRODUCTION"`
	LogLevel           zapcore.Level `yaml:"log_level" envconfig:"LIB_LOG_LEVEL"`
	LogFolder          string        `yaml:"log_folder" envconfig:"LIB_LOG_FOLDER"`
	LogMaxSize         int           `yaml:"log_max_size" envconfig:"LIB_LOG_MAX_SIZE"`
	OpsEndpointsEnable bool          `yaml:"ops_endpoints_enable" envconfig:"LIB_OPS_ENDPOINTS_ENABLE"`
	ProfilerEnable     bool          `yaml:"profiler_enable" envconfig:"LIB_PROFILER_ENABLE"`
	Server             ServerConfig  `yaml:"server"`
	Storage            StorageConfig `yaml:"storage"`
	Mongo              MongoConfig   `yaml:"mongo"`
	Redis              RedisConfig   `yaml:"redis"`
	BoltDB             BoltDBConfig  `yaml:"boltdb"`
	Catalog            CatalogConfig `yaml:"catalog"`
}

type ServerConfig struct {
	Host            string        `yaml:"host" envconfig:"LIB_SERVER_HOST"`
	Port            string        `yaml:"port" envconfig:"LIB_SERVER_PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"LIB_SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"LIB_SERVER_WRITE_TIMEOUT"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"LIB_SERVER_REQUEST_TIMEOUT"` // Time to wait for a request to finish
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"LIB_SERVER_SHUTDOWN_TIMEOUT"`
}

// StorageConfig selects the book store backend: mongo, redis or bolt.
type StorageConfig struct {
	Backend string `yaml:"backend" envconfig:"LIB_STORAGE_BACKEND"`
}

type MongoConfig struct {
	URI            string        `yaml:"uri" envconfig:"LIB_MONGO_URI"`
	Database       string        `yaml:"database" envconfig:"LIB_MONGO_DATABASE"`
	Collection     string        `yaml:"collection" envconfig:"LIB_MONGO_COLLECTION"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" envconfig:"LIB_MONGO_CONNECT_TIMEOUT"`
}

type RedisConfig struct {
	Host          string        `yaml:"host" envconfig:"LIB_REDIS_HOST"`
	Port          string        `yaml:"port" envconfig:"LIB_REDIS_PORT"`
	DialTimeout   time.Duration `yaml:"dial_timeout" envconfig:"LIB_REDIS_DIAL_TIMEOUT"`
	ReadTimeout   time.Duration `yaml:"read_timeout" envconfig:"LIB_REDIS_READ_TIMEOUT"`
	WriteTimeout  time.Duration `yaml:"write_timeout" envconfig:"LIB_REDIS_WRITE_TIMEOUT"`
	PoolSize      int           `yaml:"pool_size" envconfig:"LIB_REDIS_POOL_SIZE"`
	PoolTimeout   time.Duration `yaml:"pool_timeout" envconfig:"LIB_REDIS_POOL_TIMEOUT"`
	Username      string        `yaml:"username" envconfig:"LIB_REDIS_USERNAME"`
	Password      string        `yaml:"password" envconfig:"LIB_REDIS_PASSWORD"`
	DatabaseIndex int           `yaml:"db_index" envconfig:"LIB_REDIS_DATABASE_INDEX"`
}

type BoltDBConfig struct {
	FilePath   string        `yaml:"filepath" envconfig:"LIB_BOLTDB_FILE_PATH"`
	Timeout    time.Duration `yaml:"timeout" envconfig:"LIB_BOLTDB_TIMEOUT"`
	BucketName string        `yaml:"bucket_name" envconfig:"LIB_BOLTDB_BUCKET_NAME"`
}

// CatalogConfig drives the external book metadata lookup client.
type CatalogConfig struct {
	BaseURL           string        `yaml:"base_url" envconfig:"LIB_CATALOG_BASE_URL"`
	APIKey            string        `yaml:"api_key" envconfig:"LIB_CATALOG_API_KEY"`
	Timeout           time.Duration `yaml:"timeout" envconfig:"LIB_CATALOG_TIMEOUT"`
	RequestsPerSecond int           `yaml:"requests_per_second" envconfig:"LIB_CATALOG_REQUESTS_PER_SECOND"`
}

// LoadConfigFile provides an instance of config structure for the all application.
func LoadConfigFile(configFile string) (*Config, error) {
	file, err := os.Open(configFile)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	cfg := &Config{}
	yd := yaml.NewDecoder(file)
	err = yd.Decode(cfg)

	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigEnvs reads the environments variables and provides an instance of the App config.
func LoadConfigEnvs(prefix string, config *Config) error {
	return envconfig.Process(prefix, config)
}

// InitConfig sets up defaults values for non provided parameters and
// configures build tags values to be used if provided. Every parameter
// has a local development default so the api can boot from a bare file.
func InitConfig(config *Config, gitCommit, gitTag, buildTime string) error {
	if len(gitCommit) != 0 {
		config.GitCommit = gitCommit
	}

	if len(gitTag) != 0 {
		config.GitTag = gitTag
	}

	if len(buildTime) != 0 {
		config.BuildTime = buildTime
	}

	if len(config.Server.Host) == 0 {
		config.Server.Host = "127.0.0.1"
	}
	if len(config.Server.Port) == 0 {
		config.Server.Port = "8080"
	}
	if config.Server.RequestTimeout == 0 {
		config.Server.RequestTimeout = 60 * time.Second
	}
	if config.Server.ShutdownTimeout == 0 {
		config.Server.ShutdownTimeout = 10 * time.Second
	}

	switch config.Storage.Backend {
	case "":
		config.Storage.Backend = "mongo"
	case "mongo", "redis", "bolt":
	default:
		return fmt.Errorf("unknown storage backend: %q", config.Storage.Backend)
	}

	if len(config.Mongo.URI) == 0 {
		config.Mongo.URI = "mongodb://localhost:27017"
	}
	if len(config.Mongo.Database) == 0 {
		config.Mongo.Database = "library_inventory"
	}
	if len(config.Mongo.Collection) == 0 {
		config.Mongo.Collection = "books"
	}
	if config.Mongo.ConnectTimeout == 0 {
		config.Mongo.ConnectTimeout = 10 * time.Second
	}

	if len(config.Redis.Host) == 0 {
		config.Redis.Host = "localhost"
	}
	if len(config.Redis.Port) == 0 {
		config.Redis.Port = "6379"
	}

	if len(config.BoltDB.FilePath) == 0 {
		config.BoltDB.FilePath = "./library.bolt.db"
	}
	if len(config.BoltDB.BucketName) == 0 {
		config.BoltDB.BucketName = "books"
	}
	if config.BoltDB.Timeout == 0 {
		config.BoltDB.Timeout = 5 * time.Second
	}

	if len(config.Catalog.BaseURL) == 0 {
		config.Catalog.BaseURL = "https://www.googleapis.com/books/v1"
	}
	if config.Catalog.Timeout == 0 {
		config.Catalog.Timeout = 10 * time.Second
	}
	if config.Catalog.RequestsPerSecond <= 0 {
		config.Catalog.RequestsPerSecond = 5
	}

	if len(config.LogFolder) == 0 {
		config.LogFolder = "./logs"
	}
	if config.LogMaxSize == 0 {
		config.LogMaxSize = 50
	}

	return nil
}

// LoadAndInitConfigs loads in order the configs from various predefined sources
// then build the App configuration data.
func LoadAndInitConfigs(gitCommit, gitTag, buildTime string) (*Config, error) {
	// Setup the yaml configuration from file.
	config, err := LoadConfigFile("./config.yml")
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from file: %s", err)
	}

	// Set the environment configuration when the optional env file exists.
	if _, serr := os.Stat("./config.env"); serr == nil {
		if err = godotenv.Load("./config.env"); err != nil {
			return config, fmt.Errorf("failed to set environment configurations: %s", err)
		}
	}

	// Use environment variables with prefix `LIB`.
	err = LoadConfigEnvs("LIB", config)
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from environment: %s", err)
	}

	err = InitConfig(config, gitCommit, gitTag, buildTime)
	if err != nil {
		return config, fmt.Errorf("failed to initialize configurations: %s", err)
	}
	return config, nil
}
