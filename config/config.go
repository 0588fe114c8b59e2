package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type MongoDBConfig struct {
	DBHost string
	DBPort string
	DBName string
}

type KafkaConfig struct {
	BrokerAddress   string
	BrokerTopic     string
	BrokerPartition int
}

type MidtransConfig struct {
	ServerKey string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Sender   string
	Password string
}

type TracingConfig struct {
	CollectorHost string
}

type Config struct {
	ServicePort    string
	MetricsPort    string
	Environment    string
	ClientOrigin   string
	JWTSecret      string
	MongoDBConfig  MongoDBConfig
	KafkaConfig    KafkaConfig
	MidtransConfig MidtransConfig
	SMTPConfig     SMTPConfig
	TracingConfig  TracingConfig
}

func CreateNewConfig() *Config {
	godotenv.Load(".env")

	conf := Config{
		ServicePort:  os.Getenv("SERVICE_PORT"),
		MetricsPort:  os.Getenv("METRICS_PORT"),
		Environment:  os.Getenv("ENVIRONMENT"),
		ClientOrigin: os.Getenv("CLIENT_ORIGIN"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		MongoDBConfig: MongoDBConfig{
			DBHost: os.Getenv("DB_HOST"),
			DBPort: os.Getenv("DB_PORT"),
			DBName: os.Getenv("DB_NAME"),
		},
		KafkaConfig: KafkaConfig{
			BrokerAddress: os.Getenv("BROKER_ADDRESS"),
			BrokerTopic:   os.Getenv("BROKER_TOPIC"),
		},
		MidtransConfig: MidtransConfig{
			ServerKey: os.Getenv("MIDTRANS_SERVER_KEY"),
		},
		SMTPConfig: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Sender:   os.Getenv("SMTP_SENDER"),
			Password: os.Getenv("SMTP_PASSWORD"),
		},
		TracingConfig: TracingConfig{
			CollectorHost: os.Getenv("COLLECTOR_HOST"),
		},
	}

	if brokerPartition, err := strconv.Atoi(os.Getenv("BROKER_PARTITION")); err == nil {
		conf.KafkaConfig.BrokerPartition = brokerPartition
	}

	if smtpPort, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil {
		conf.SMTPConfig.Port = smtpPort
	}

	return &conf
}
