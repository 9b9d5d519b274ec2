package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "CATALOG_CONFIG_FILE"

type mongo struct {
	URI                    string        `mapstructure:"uri"`
	Database               string        `mapstructure:"database"`
	MaxPoolSize            uint64        `mapstructure:"max_pool_size"`
	MinPoolSize            uint64        `mapstructure:"min_pool_size"`
	MaxIdleTime            time.Duration `mapstructure:"max_idle_time"`
	ServerSelectionTimeout time.Duration `mapstructure:"server_selection_timeout"`
	SocketTimeout          time.Duration `mapstructure:"socket_timeout"`
}

type consumers struct {
	InventoryFeedGroup string `mapstructure:"inventory_feed_group"`
}

type topics struct {
	InventoryFeed string `mapstructure:"inventory_feed"`
}

// TLS is enabled when all three files are set.
type brokerTLS struct {
	CAFile   string `mapstructure:"ca_file"`
	CertFile string `mapstructure:"cert_file"`
	KeyFile  string `mapstructure:"key_file"`
}

func (t brokerTLS) Enabled() bool {
	return t.CAFile != "" && t.CertFile != "" && t.KeyFile != ""
}

type broker struct {
	SeedBrokers        []string  `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string  `mapstructure:"schema_registry_urls"`
	TLS                brokerTLS `mapstructure:"tls"`
	Topics             topics    `mapstructure:"topics"`
	Consumers          consumers `mapstructure:"consumers"`
}

type jobs struct {
	ReconcileSchedule string        `mapstructure:"reconcile_schedule"`
	DiscountSchedule  string        `mapstructure:"discount_schedule"`
	Timeout           time.Duration `mapstructure:"timeout"`
}

type inventory struct {
	BatchSize int `mapstructure:"batch_size"`
}

type Config struct {
	LogLevel           slog.Level    `mapstructure:"log_level"`
	HTTPServerAddr     string        `mapstructure:"http_server_addr"`
	HTTPRequestTimeout time.Duration `mapstructure:"http_request_timeout"`
	Mongo              mongo         `mapstructure:"mongo"`
	Broker             broker        `mapstructure:"broker"`
	Jobs               jobs          `mapstructure:"jobs"`
	Inventory          inventory     `mapstructure:"inventory"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("http_server_addr", ":8000")
	v.SetDefault("http_request_timeout", 10*time.Second)

	v.SetDefault("mongo.database", "catalog")
	v.SetDefault("mongo.max_pool_size", 5)
	v.SetDefault("mongo.min_pool_size", 1)
	v.SetDefault("mongo.max_idle_time", 30*time.Second)
	v.SetDefault("mongo.server_selection_timeout", 5*time.Second)
	v.SetDefault("mongo.socket_timeout", 45*time.Second)

	v.SetDefault("broker.topics.inventory_feed", "inventory_feed")
	v.SetDefault("broker.consumers.inventory_feed_group", "inventory-feed-group")

	v.SetDefault("jobs.reconcile_schedule", "30 0 * * *")
	v.SetDefault("jobs.discount_schedule", "0 * * * *")
	v.SetDefault("jobs.timeout", 10*time.Minute)

	v.SetDefault("inventory.batch_size", 100)
}

func Load() Config {
	cfg, err := LoadFile(getConfigFilepath())
	if err != nil {
		die(err)
	}
	return cfg
}

// LoadFile reads the config file at path on top of the defaults.
func LoadFile(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, err
	}

	var cfg Config
	err := v.UnmarshalExact(&cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q
	HTTPRequestTimeout=%s

	Mongo:
	Database=%q
	MaxPoolSize=%d
	MinPoolSize=%d
	MaxIdleTime=%s
	ServerSelectionTimeout=%s
	SocketTimeout=%s

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	TLS=%t
	Topics:
		InventoryFeed=%q
	Consumers:
		InventoryFeedGroup=%q

	Jobs:
	ReconcileSchedule=%q
	DiscountSchedule=%q
	Timeout=%s

	Inventory:
	BatchSize=%d

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.HTTPRequestTimeout,
		c.Mongo.Database,
		c.Mongo.MaxPoolSize,
		c.Mongo.MinPoolSize,
		c.Mongo.MaxIdleTime,
		c.Mongo.ServerSelectionTimeout,
		c.Mongo.SocketTimeout,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.TLS.Enabled(),
		c.Broker.Topics.InventoryFeed,
		c.Broker.Consumers.InventoryFeedGroup,
		c.Jobs.ReconcileSchedule,
		c.Jobs.DiscountSchedule,
		c.Jobs.Timeout,
		c.Inventory.BatchSize,
	)
}
