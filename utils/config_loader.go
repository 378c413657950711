package utils

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"motion-dataset/dataset"
)

// ─── Collector configs ──────────────────────────────────────────────────

type ReplayConfig struct {
	Path       string `yaml:"path"`
	IntervalMs int    `yaml:"interval_ms"` // 0 replays as fast as possible
}

type MQTTConfig struct {
	Broker   string `yaml:"broker"` // tcp://host:1883
	Topic    string `yaml:"topic"`
	ClientID string `yaml:"client_id"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	QoS      byte   `yaml:"qos"`
}

type CollectorConfig struct {
	Source          string       `yaml:"source"` // serial, simulate, replay, mqtt
	Port            string       `yaml:"port"`
	BaudRate        int          `yaml:"baud_rate"`
	DurationSeconds int          `yaml:"duration_seconds"`
	Label           string       `yaml:"label"`
	Output          string       `yaml:"output"`
	OutputDir       string       `yaml:"output_dir"` // used when output is empty
	SettleMs        int          `yaml:"settle_ms"`
	ReadTimeoutMs   int          `yaml:"read_timeout_ms"`
	ProgressEvery   int          `yaml:"progress_every"`
	ChannelBuffer   int          `yaml:"channel_buffer"`
	SampleRateHz    int          `yaml:"sample_rate_hz"` // simulate only
	Replay          ReplayConfig `yaml:"replay"`
	MQTT            MQTTConfig   `yaml:"mqtt"`
}

// ─── Preparation configs ────────────────────────────────────────────────

type DeviceConfig struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type PrepareConfig struct {
	InputDir   string       `yaml:"input_dir"`
	OutputDir  string       `yaml:"output_dir"`
	WindowSize int          `yaml:"window_size"`
	Stride     int          `yaml:"stride"`
	TrainRatio float64      `yaml:"train_ratio"`
	Format     string       `yaml:"format"` // merged-table, per-window-file, structured-document
	IntervalMs int          `yaml:"interval_ms"`
	Device     DeviceConfig `yaml:"device"`
}

// ─── Storage configs ────────────────────────────────────────────────────

type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	Bucket    string `yaml:"bucket"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl"`
	Prefix    string `yaml:"prefix"`
}

type StorageConfig struct {
	Backend string   `yaml:"backend"` // local or s3
	S3      S3Config `yaml:"s3"`
}

// Config is the top-level structure for dataset.yaml.
type Config struct {
	Collector CollectorConfig `yaml:"collector"`
	Prepare   PrepareConfig   `yaml:"prepare"`
	Storage   StorageConfig   `yaml:"storage"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Collector: CollectorConfig{
			Source:          "serial",
			BaudRate:        115200,
			DurationSeconds: 30,
			OutputDir:       "dataset",
			SettleMs:        2000,
			ReadTimeoutMs:   1000,
			ProgressEvery:   50,
			ChannelBuffer:   512,
			SampleRateHz:    50,
			MQTT: MQTTConfig{
				Topic:    "epiwatch/imu",
				ClientID: "motion-dataset-collector",
			},
		},
		Prepare: PrepareConfig{
			InputDir:   "dataset",
			OutputDir:  "edge_impulse_data",
			WindowSize: dataset.DefaultWindowSize,
			Stride:     dataset.DefaultStride,
			TrainRatio: dataset.DefaultTrainRatio,
			Format:     "merged-table",
			IntervalMs: dataset.DefaultIntervalMs,
			Device: DeviceConfig{
				Name: "ESP32-EpiWatch",
				Type: "ESP32",
			},
		},
		Storage: StorageConfig{Backend: "local"},
	}
}

// ─── Loaders ────────────────────────────────────────────────────────────

// LoadConfig reads dataset.yaml on top of the defaults. An empty path or a
// missing file yields the defaults. Environment overrides are applied last.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			L().Warn("config %s not found, using defaults", path)
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays credentials and endpoints from the environment, loading
// a .env file first when one exists.
func applyEnv(cfg *Config) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	s3 := &cfg.Storage.S3
	setString(&s3.Endpoint, "S3_ENDPOINT")
	setString(&s3.Bucket, "S3_BUCKET")
	setString(&s3.AccessKey, "S3_ACCESS_KEY")
	setString(&s3.SecretKey, "S3_SECRET_KEY")
	if v := os.Getenv("S3_USE_SSL"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid S3_USE_SSL value %q: %w", v, err)
		}
		s3.UseSSL = b
	}

	mq := &cfg.Collector.MQTT
	setString(&mq.Broker, "MQTT_BROKER")
	setString(&mq.Topic, "MQTT_TOPIC")
	setString(&mq.Username, "MQTT_USERNAME")
	setString(&mq.Password, "MQTT_PASSWORD")
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
