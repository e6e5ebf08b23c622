package daemon

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hmcts/cpp-context-businessprocesses-sub000/orchestration"
	"github.com/hmcts/cpp-context-businessprocesses-sub000/refdata"
	"github.com/spf13/viper"
)

// Config holds the daemon configuration, read from an optional YAML file and
// overridden by PROGRESSION_* environment variables.
type Config struct {
	Identity IdentityConfig `mapstructure:"identity"`
	Nats     NatsConfig     `mapstructure:"nats"`
	Temporal TemporalConfig `mapstructure:"temporal"`
	Database DatabaseConfig `mapstructure:"database"`
	Http     HttpConfig     `mapstructure:"http"`
	Logger   LoggerConfig   `mapstructure:"logger"`

	// Feature flags, keyed by event name. An absent event is disabled.
	Features map[string]bool `mapstructure:"features"`

	RefData RefDataConfig `mapstructure:"refdata"`
}

type IdentityConfig struct {
	Id   string `mapstructure:"id"`
	Name string `mapstructure:"name"`
}

type NatsConfig struct {
	Url                   string        `mapstructure:"url"`
	StreamName            string        `mapstructure:"stream_name"`
	ConsumerName          string        `mapstructure:"consumer_name"`
	LifecycleConsumerName string        `mapstructure:"lifecycle_consumer_name"`
	AckWait               time.Duration `mapstructure:"ack_wait"`
	MaxDeliver            int           `mapstructure:"max_deliver"`
}

type TemporalConfig struct {
	Target    string `mapstructure:"target"`
	Namespace string `mapstructure:"namespace"`
	TaskQueue string `mapstructure:"task_queue"`
}

type DatabaseConfig struct {
	// Connection URL, format: postgres://<username>:<password>@<host>:<port>/<database>
	// When empty, task history is kept in memory.
	Url string `mapstructure:"url"`
}

type HttpConfig struct {
	BindAddress  string        `mapstructure:"bind_address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`

	BasicAuthUsername string `mapstructure:"basic_auth_username"`
	BasicAuthPassword string `mapstructure:"basic_auth_password"`
}

type LoggerConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn or error
	Format string `mapstructure:"format"` // json or console
}

type RefDataConfig struct {
	TaskTypes []refdata.TaskType `mapstructure:"task_types"`
	Holidays  []string           `mapstructure:"holidays"` // non-working days, format: 2006-01-02
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PROGRESSION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("identity.id", orchestration.DefaultIdentityId)
	v.SetDefault("identity.name", orchestration.DefaultIdentityName)

	v.SetDefault("nats.url", "nats://127.0.0.1:4222")
	v.SetDefault("nats.stream_name", "PROGRESSION")
	v.SetDefault("nats.consumer_name", "progression-orchestration")
	v.SetDefault("nats.lifecycle_consumer_name", "progression-task-history")
	v.SetDefault("nats.ack_wait", 60*time.Second)
	v.SetDefault("nats.max_deliver", 5)

	v.SetDefault("temporal.target", "127.0.0.1:7233")
	v.SetDefault("temporal.namespace", "default")
	v.SetDefault("temporal.task_queue", "progression")

	v.SetDefault("http.bind_address", "127.0.0.1:8080")
	v.SetDefault("http.read_timeout", 5*time.Second)
	v.SetDefault("http.write_timeout", 35*time.Second)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
}

func (c *Config) Validate() error {
	if err := (orchestration.Identity{Id: c.Identity.Id, Name: c.Identity.Name}).Validate(); err != nil {
		return err
	}
	if c.Nats.Url == "" {
		return errors.New("nats.url is required")
	}
	if c.Temporal.Target == "" {
		return errors.New("temporal.target is required")
	}

	for i, taskType := range c.RefData.TaskTypes {
		if taskType.Name == "" {
			return fmt.Errorf("refdata.task_types[%d].name is required", i)
		}
	}
	for _, holiday := range c.RefData.Holidays {
		if _, err := time.Parse("2006-01-02", holiday); err != nil {
			return fmt.Errorf("refdata.holidays entry %s: required format 2006-01-02", holiday)
		}
	}

	return nil
}
