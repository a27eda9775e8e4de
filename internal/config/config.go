package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

var Version = "dev"

// Config is built once at process start and passed into each component.
type Config struct {
	Discord  DiscordConfig  `yaml:"discord"`
	Server   ServerConfig   `yaml:"server"`
	Media    MediaConfig    `yaml:"media"`
	Delivery DeliveryConfig `yaml:"delivery"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type DiscordConfig struct {
	Token string `yaml:"token"`
	AppID string `yaml:"app_id"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type MediaConfig struct {
	YtdlpPath  string `yaml:"ytdlp_path"`
	FFmpegPath string `yaml:"ffmpeg_path"`
	TempDir    string `yaml:"temp_dir"`
}

type DeliveryConfig struct {
	SizeLimitMB    int64  `yaml:"size_limit_mb"`
	Backend        string `yaml:"backend"` // "put" or "s3"
	UploadEndpoint string `yaml:"upload_endpoint"`
	RetentionNote  string `yaml:"retention_note"`
	S3Bucket       string `yaml:"s3_bucket"`
	S3Prefix       string `yaml:"s3_prefix"`
	LinkTTLHours   int    `yaml:"link_ttl_hours"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Threshold is the inline-delivery size gate in bytes.
func (d DeliveryConfig) Threshold() int64 {
	return d.SizeLimitMB * 1024 * 1024
}

// Load reads an optional YAML file, applies environment variable
// overrides, then defaults. A missing file is fine; env alone is a
// complete configuration.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)
	setDefaults(cfg)

	if cfg.Discord.Token == "" {
		return nil, errors.New("discord token is required (DISCORD_TOKEN)")
	}
	if cfg.Discord.AppID == "" {
		return nil, errors.New("discord app id is required (DISCORD_APP_ID)")
	}
	if cfg.Delivery.Backend != "put" && cfg.Delivery.Backend != "s3" {
		return nil, fmt.Errorf("unknown delivery backend %q", cfg.Delivery.Backend)
	}
	if cfg.Delivery.Backend == "s3" && cfg.Delivery.S3Bucket == "" {
		return nil, errors.New("s3 delivery backend requires a bucket (GRABBIT_S3_BUCKET)")
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	setEnvStr(&cfg.Discord.Token, "DISCORD_TOKEN")
	setEnvStr(&cfg.Discord.AppID, "DISCORD_APP_ID")
	setEnvStr(&cfg.Server.Port, "PORT")
	setEnvStr(&cfg.Media.YtdlpPath, "YTDLP_PATH")
	setEnvStr(&cfg.Media.FFmpegPath, "FFMPEG_PATH")
	setEnvStr(&cfg.Media.TempDir, "GRABBIT_TEMP_DIR")
	setEnvStr(&cfg.Delivery.Backend, "GRABBIT_UPLOAD_BACKEND")
	setEnvStr(&cfg.Delivery.UploadEndpoint, "GRABBIT_UPLOAD_ENDPOINT")
	setEnvStr(&cfg.Delivery.RetentionNote, "GRABBIT_RETENTION_NOTE")
	setEnvStr(&cfg.Delivery.S3Bucket, "GRABBIT_S3_BUCKET")
	setEnvStr(&cfg.Delivery.S3Prefix, "GRABBIT_S3_PREFIX")
	setEnvStr(&cfg.Logging.Level, "GRABBIT_LOG_LEVEL")

	if v := os.Getenv("GRABBIT_SIZE_LIMIT_MB"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.Delivery.SizeLimitMB = n
		}
	}
	if v := os.Getenv("GRABBIT_LINK_TTL_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Delivery.LinkTTLHours = n
		}
	}
}

func setDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "3001"
	}
	if cfg.Media.YtdlpPath == "" {
		cfg.Media.YtdlpPath = "yt-dlp"
	}
	if cfg.Media.FFmpegPath == "" {
		cfg.Media.FFmpegPath = "/usr/bin/ffmpeg"
	}
	if cfg.Media.TempDir == "" {
		cfg.Media.TempDir = "/var/tmp/grabbit/downloads"
	}
	if cfg.Delivery.SizeLimitMB == 0 {
		cfg.Delivery.SizeLimitMB = 25
	}
	if cfg.Delivery.Backend == "" {
		cfg.Delivery.Backend = "put"
	}
	if cfg.Delivery.UploadEndpoint == "" {
		cfg.Delivery.UploadEndpoint = "https://transfer.sh"
	}
	if cfg.Delivery.RetentionNote == "" {
		cfg.Delivery.RetentionNote = "Expires in 14 days"
	}
	if cfg.Delivery.LinkTTLHours == 0 {
		cfg.Delivery.LinkTTLHours = 168
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

func setEnvStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
