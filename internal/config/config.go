package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	Port            string
	OperatorWorkers int
	LogLevel        logrus.Level

	// AMQPURL is optional, notifications are only fanned out when it is set.
	AMQPURL      string
	AMQPExchange string
}

func ProcessEnvironmentVariables() (*Config, error) {
	// A local .env is optional, real environment variables always win.
	_ = godotenv.Load()

	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		PostgresAddress:  "localhost",
		PostgresPort:     "5433",
		PostgresDB:       "postgres",
		PostgresUsername: "postgres",
		PostgresPassword: "testpassword",
		Port:             "9446",
		OperatorWorkers:  1,
		LogLevel:         logrus.InfoLevel,
		AMQPExchange:     "budget-tracker.notifications",
	}

	envPostgresAddress := os.Getenv("POSTGRES_ADDRESS")
	envPostgresPort := os.Getenv("POSTGRES_PORT")
	envPostgresDB := os.Getenv("POSTGRES_DB")
	envPostgresUsername := os.Getenv("POSTGRES_USERNAME")
	envPostgresPassword := os.Getenv("POSTGRES_PASSWORD")
	envPort := os.Getenv("PORT")
	envOperatorWorkers := os.Getenv("OPERATOR_WORKERS")
	envLogLevel := os.Getenv("LOG_LEVEL")
	envAMQPURL := os.Getenv("AMQP_URL")
	envAMQPExchange := os.Getenv("AMQP_EXCHANGE")

	if len(envPostgresAddress) != 0 {
		env.PostgresAddress = envPostgresAddress
	}

	if len(envPostgresPort) != 0 {
		env.PostgresPort = envPostgresPort
	}

	if len(envPostgresDB) != 0 {
		env.PostgresDB = envPostgresDB
	}

	if len(envPostgresUsername) != 0 {
		env.PostgresUsername = envPostgresUsername
	}

	if len(envPostgresPassword) != 0 {
		env.PostgresPassword = envPostgresPassword
	}

	if len(envPort) != 0 {
		env.Port = envPort
	}

	if len(envOperatorWorkers) != 0 {
		workers, err := strconv.Atoi(envOperatorWorkers)
		if err != nil {
			return nil, fmt.Errorf("invalid OPERATOR_WORKERS %q: %w", envOperatorWorkers, err)
		}
		env.OperatorWorkers = workers
	}

	if len(envLogLevel) != 0 {
		level, err := logrus.ParseLevel(envLogLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", envLogLevel, err)
		}
		env.LogLevel = level
	}

	if len(envAMQPURL) != 0 {
		env.AMQPURL = envAMQPURL
	}

	if len(envAMQPExchange) != 0 {
		env.AMQPExchange = envAMQPExchange
	}

	if err := env.Validate(); err != nil {
		return nil, err
	}

	return &env, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %q: must be a number between 1 and 65535", c.Port))
	}

	if c.OperatorWorkers < 1 {
		errs = append(errs, fmt.Errorf("invalid operator workers %d: must be at least 1", c.OperatorWorkers))
	}

	if c.PostgresAddress == "" || c.PostgresDB == "" {
		errs = append(errs, errors.New("postgres address and database are required"))
	}

	if c.AMQPURL != "" && c.AMQPExchange == "" {
		errs = append(errs, errors.New("AMQP_EXCHANGE is required when AMQP_URL is set"))
	}

	return errors.Join(errs...)
}

// PostgresURL builds the lib/pq connection string.
func (c *Config) PostgresURL() string {
	return "postgres://" + c.PostgresUsername + ":" +
		c.PostgresPassword + "@" + c.PostgresAddress + ":" +
		c.PostgresPort + "/" + c.PostgresDB + "?sslmode=disable"
}
