package redis

import (
	"fmt"
	"io"
	"os"

	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"
)

// Config holds the connection settings for a Redis-backed store.
// It maps one-to-one onto a YAML document:
//
//	addr: localhost:6379
//	username: graph
//	password: secret
//	db: 2
//	pool_size: 16
type Config struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

// ReadConfig decodes a YAML Config from r.
func ReadConfig(r io.Reader) (Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return Config{}, fmt.Errorf("redis: decode config: %w", err)
	}
	if c.Addr == "" {
		return Config{}, fmt.Errorf("redis: config is missing addr")
	}
	return c, nil
}

// LoadConfig reads a YAML Config from the file at path.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	return ReadConfig(f)
}

// Open connects with the configured settings and returns a Driver.
func (c Config) Open() *Driver {
	return NewDriver(redis.NewClient(&redis.Options{
		Addr:     c.Addr,
		Username: c.Username,
		Password: c.Password,
		DB:       c.DB,
		PoolSize: c.PoolSize,
	}))
}
