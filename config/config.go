package config

import (
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	Game struct {
		RoomName     string `mapstructure:"room_name"`
		PauseTimeout int    `mapstructure:"pause_timeout"` // seconds, 0 = advisory only
		MaxRooms     int    `mapstructure:"max_rooms"`
	} `mapstructure:"game"`
	Storage struct {
		Driver string `mapstructure:"driver"` // memory | redis | postgres
	} `mapstructure:"storage"`
	Database struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"database"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`
	Records struct {
		Limit int `mapstructure:"limit"`
	} `mapstructure:"records"`
	JWT struct {
		Secret   string `mapstructure:"secret"`
		TTLHours int    `mapstructure:"ttl_hours"`
	} `mapstructure:"jwt"`
}

// PauseTimeout converts the configured pause deadline to a duration.
func (c Config) PauseTimeout() time.Duration {
	return time.Duration(c.Game.PauseTimeout) * time.Second
}

var C Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", ":3001")
	v.SetDefault("log.level", "info")
	v.SetDefault("game.room_name", "The Pitstop")
	v.SetDefault("game.pause_timeout", 0)
	v.SetDefault("game.max_rooms", 16)
	v.SetDefault("storage.driver", "memory")
	v.SetDefault("database.dsn", "")
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("records.limit", 50)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.ttl_hours", 24)
}

// LoadFile reads the yaml file at path (missing file is fine, defaults and
// DDZ_* environment variables still apply) into C.
func LoadFile(path string) error {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetEnvPrefix("DDZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !os.IsNotExist(err) && !errors.As(err, &notFound) {
			return err
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return err
	}
	C = c
	return nil
}

func Load() {
	path := os.Getenv("DDZ_CONFIG")
	if path == "" {
		path = "config/config.yaml"
	}
	if err := LoadFile(path); err != nil {
		log.Fatalf("Failed to read config: %v", err)
	}
}
