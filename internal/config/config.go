package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceName string
	ServerPort  int
	LogLevel    string

	DatabasePath string
	DatabaseURL  string

	KafkaBrokers []string
	KafkaTopic   string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string

	RateLimit float64
}

func defaults(v *viper.Viper) {
	v.SetDefault("service_name", "inventory")
	v.SetDefault("server_port", 8000)
	v.SetDefault("log_level", "info")
	v.SetDefault("database_path", "./database.db")
	v.SetDefault("database_url", "")
	v.SetDefault("kafka_brokers", "")
	v.SetDefault("kafka_topic", "product_events")
	v.SetDefault("es_url", "")
	v.SetDefault("es_user", "")
	v.SetDefault("es_password", "")
	v.SetDefault("es_index", "products")
	v.SetDefault("rate_limit", 0)
}

// Load reads .env, an optional config.yaml in the working directory and the
// process environment, in increasing order of precedence.
func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env file not found: %v. Using system environment variables", err)
	}

	v := viper.New()
	defaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("warning: could not read config.yaml: %v", err)
		}
	}
	v.AutomaticEnv()

	return FromViper(v)
}

func FromViper(v *viper.Viper) Config {
	return Config{
		ServiceName: v.GetString("service_name"),
		ServerPort:  v.GetInt("server_port"),
		LogLevel:    v.GetString("log_level"),

		DatabasePath: v.GetString("database_path"),
		DatabaseURL:  v.GetString("database_url"),

		KafkaBrokers: CSV(v.GetString("kafka_brokers")),
		KafkaTopic:   v.GetString("kafka_topic"),

		ESURL:      v.GetString("es_url"),
		ESUser:     v.GetString("es_user"),
		ESPassword: v.GetString("es_password"),
		ESIndex:    v.GetString("es_index"),

		RateLimit: v.GetFloat64("rate_limit"),
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
