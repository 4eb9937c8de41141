package config

import "time"

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

var globalConfig *Config

func Global() *Config {
	return globalConfig
}

func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

type Config struct {
	Env   string `env:"ENV" env-required:"true"`
	HTTP  HTTPConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type HTTPConfig struct {
	Host            string        `env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            string        `env:"HTTP_PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

type MongoConfig struct {
	URI              string        `env:"MONGO_URI" env-required:"true"`
	Database         string        `env:"MONGO_DATABASE" env-default:"tasks"`
	ConnectTimeout   time.Duration `env:"MONGO_CONNECT_TIMEOUT" env-default:"10s"`
	PingTimeout      time.Duration `env:"MONGO_PING_TIMEOUT" env-default:"10s"`
	OperationTimeout time.Duration `env:"MONGO_OPERATION_TIMEOUT" env-default:"5s"`
}

// RedisConfig is optional: the list cache is enabled
// only when Addr is set.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR" env-default:""`
	Password string        `env:"REDIS_PASSWORD" env-default:""`
	DB       int           `env:"REDIS_DB" env-default:"0"`
	ListTTL  time.Duration `env:"REDIS_LIST_TTL" env-default:"60s"`
}
