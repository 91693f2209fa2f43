package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"growthspring/club_lending/internal/pkg/loan"
)

var (
	SERVER_PORT              string
	WORKER_POOL              string
	DB_URI                   string
	DB_NAME                  string
	DB_MAXPOOLSIZE           uint64
	DB_MINPOOLSIZE           uint64
	DB_MAXIDLETIME_INMINUTES int

	KAFKA_SERVER             string
	KAFKA_SECURITY_PROTOCOL  string
	KAFKA_SASL_MECHANISM     string
	KAFKA_SASL_USERNAME      string
	KAFKA_SASL_PASSWORD      string
	KAFKA_SESSION_TIMEOUT_MS int
	KAFKA_CLIENT_ID          string
	KAFKA_TOPIC              string
	KAFKA_RETRY_COUNT        int

	REDIS_ADDR                    string
	REDIS_PASSWORD                string
	REDIS_DB                      int
	REDIS_ENABLE_TLS              bool
	REDIS_CONNECT_TIMEOUT_SECONDS int
	REDIS_CERT_CONTENT            string

	PROJECT_ID     string
	PUBSUB_TOPIC   string
	PUBSUB_ENABLED bool

	SERVICE_NAME string
	OTEL_URL     string
	LOG_LEVEL    string

	PAYMENT_GUARD_TTL_SECONDS     int
	ELIGIBILITY_CACHE_TTL_SECONDS int

	MONTHLY_LENDING_RATE         float64
	GRACE_PERIOD_DAYS            int
	ONE_YEAR_MONTH_THRESHOLD     int
	POINTS_VALUE_PER_UNIT        float64
	LOAN_MULTIPLE                float64
	MIN_EXCESS_DEPOSIT_THRESHOLD float64
	LENDING_RULES_FILE           string

	multiplierRules loan.MultiplierRules
)

type RedisConfig struct {
	Addr           string        `yaml:"addr"`
	Password       string        `yaml:"password"`
	DB             int           `yaml:"db"`
	EnableTLS      bool          `yaml:"enable_tls"`
	ConnectTimeout time.Duration `yaml:"connect_timeout_seconds"`
	CertContent    string        `yaml:"cert_content"`
}

// multiplierRulesFile is the on-disk shape of the interest-multiplier
// rule block.
type multiplierRulesFile struct {
	MinMultiplier    float64 `yaml:"min_multiplier"`
	MaxMultiplier    float64 `yaml:"max_multiplier"`
	MinInterestRatio float64 `yaml:"min_interest_ratio"`
	MaxInterestRatio float64 `yaml:"max_interest_ratio"`
}

// LoadEnv loads the environment variables from a .env file
func LoadEnv() error {
	err := godotenv.Load("./../.env")
	if err != nil {
		log.Printf("Error loading .env file: %v", err)
	}

	LoadEnvValues()

	return nil
}

func LoadEnvValues() {
	SERVER_PORT = GetEnv("SERVER_PORT", "8080")
	WORKER_POOL = GetEnv("WORKER_POOL", "5")
	DB_URI = GetEnv("DB_URI", "mongodb://localhost:27017")
	DB_NAME = GetEnv("DB_NAME", "ClubLending")
	DB_MAXPOOLSIZE, _ = strconv.ParseUint(GetEnv("DB_MAXPOOLSIZE", "100"), 10, 64)
	DB_MINPOOLSIZE, _ = strconv.ParseUint(GetEnv("DB_MINPOOLSIZE", "10"), 10, 64)
	DB_MAXIDLETIME_INMINUTES, _ = strconv.Atoi(GetEnv("DB_MAXIDLETIME_INMINUTES", "5"))

	KAFKA_SERVER = GetEnv("KAFKA_SERVER", "")
	KAFKA_SECURITY_PROTOCOL = GetEnv("KAFKA_SECURITY_PROTOCOL", "")
	KAFKA_SASL_MECHANISM = GetEnv("KAFKA_SASL_MECHANISM", "")
	KAFKA_SASL_USERNAME = GetEnv("KAFKA_SASL_USERNAME", "")
	KAFKA_SASL_PASSWORD = GetEnv("KAFKA_SASL_PASSWORD", "")
	KAFKA_SESSION_TIMEOUT_MS, _ = strconv.Atoi(GetEnv("KAFKA_SESSION_TIMEOUT_MS", "45000"))
	KAFKA_CLIENT_ID = GetEnv("KAFKA_CLIENT_ID", "clublending")
	KAFKA_TOPIC = GetEnv("KAFKA_TOPIC", "club-lending-transactions")
	KAFKA_RETRY_COUNT, _ = strconv.Atoi(GetEnv("KAFKA_RETRY_COUNT", "2"))

	REDIS_ADDR = GetEnv("REDIS_ADDR", "localhost:6379")
	REDIS_PASSWORD = GetEnv("REDIS_PASSWORD", "")
	REDIS_DB, _ = strconv.Atoi(GetEnv("REDIS_DB", "0"))
	REDIS_ENABLE_TLS, _ = strconv.ParseBool(GetEnv("REDIS_ENABLE_TLS", "false"))
	REDIS_CONNECT_TIMEOUT_SECONDS, _ = strconv.Atoi(GetEnv("REDIS_CONNECT_TIMEOUT_SECONDS", "5"))
	REDIS_CERT_CONTENT = GetEnv("REDIS_CERT_CONTENT", "")

	PROJECT_ID = GetEnv("PROJECT_ID", "")
	PUBSUB_TOPIC = GetEnv("PUBSUB_TOPIC", "club-lending-notifications")
	PUBSUB_ENABLED, _ = strconv.ParseBool(GetEnv("PUBSUB_ENABLED", "false"))

	SERVICE_NAME = GetEnv("SERVICE_NAME", "clublending")
	OTEL_URL = GetEnv("OTEL_URL", "")
	LOG_LEVEL = GetEnv("LOG_LEVEL", "INFO")

	PAYMENT_GUARD_TTL_SECONDS, _ = strconv.Atoi(GetEnv("PAYMENT_GUARD_TTL_SECONDS", "30"))
	ELIGIBILITY_CACHE_TTL_SECONDS, _ = strconv.Atoi(GetEnv("ELIGIBILITY_CACHE_TTL_SECONDS", "60"))

	MONTHLY_LENDING_RATE, _ = strconv.ParseFloat(GetEnv("MONTHLY_LENDING_RATE", "0.02"), 64)
	GRACE_PERIOD_DAYS, _ = strconv.Atoi(GetEnv("GRACE_PERIOD_DAYS", "5"))
	ONE_YEAR_MONTH_THRESHOLD, _ = strconv.Atoi(GetEnv("ONE_YEAR_MONTH_THRESHOLD", "6"))
	POINTS_VALUE_PER_UNIT, _ = strconv.ParseFloat(GetEnv("POINTS_VALUE_PER_UNIT", "250"), 64)
	LOAN_MULTIPLE, _ = strconv.ParseFloat(GetEnv("LOAN_MULTIPLE", "3"), 64)
	MIN_EXCESS_DEPOSIT_THRESHOLD, _ = strconv.ParseFloat(GetEnv("MIN_EXCESS_DEPOSIT_THRESHOLD", "10000"), 64)
	LENDING_RULES_FILE = GetEnv("LENDING_RULES_FILE", "")

	multiplierRules = loan.MultiplierRules{
		MinMultiplier:    1,
		MaxMultiplier:    3,
		MinInterestRatio: 0.02,
		MaxInterestRatio: 0.2,
	}
	if LENDING_RULES_FILE != "" {
		if rules, err := loadMultiplierRules(LENDING_RULES_FILE); err != nil {
			log.Printf("Error loading lending rules file %s: %v", LENDING_RULES_FILE, err)
		} else {
			multiplierRules = rules
		}
	}
}

func loadMultiplierRules(path string) (loan.MultiplierRules, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return loan.MultiplierRules{}, err
	}
	var file multiplierRulesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return loan.MultiplierRules{}, err
	}
	return loan.MultiplierRules{
		MinMultiplier:    file.MinMultiplier,
		MaxMultiplier:    file.MaxMultiplier,
		MinInterestRatio: file.MinInterestRatio,
		MaxInterestRatio: file.MaxInterestRatio,
	}, nil
}

// GetRedisConfig returns a RedisConfig struct populated from environment variables
func GetRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:           REDIS_ADDR,
		Password:       REDIS_PASSWORD,
		DB:             REDIS_DB,
		EnableTLS:      REDIS_ENABLE_TLS,
		ConnectTimeout: time.Duration(REDIS_CONNECT_TIMEOUT_SECONDS) * time.Second,
		CertContent:    REDIS_CERT_CONTENT,
	}
}

// GetLendingConfig assembles the immutable rule set the loan engine
// computes with. Core packages receive this value and never read the
// environment themselves.
func GetLendingConfig() loan.Config {
	return loan.Config{
		MonthlyLendingRate:        MONTHLY_LENDING_RATE,
		GracePeriodDays:           GRACE_PERIOD_DAYS,
		OneYearMonthThreshold:     ONE_YEAR_MONTH_THRESHOLD,
		PointsValuePerUnit:        POINTS_VALUE_PER_UNIT,
		LoanMultiple:              LOAN_MULTIPLE,
		MinExcessDepositThreshold: MIN_EXCESS_DEPOSIT_THRESHOLD,
		Multiplier:                multiplierRules,
	}
}

// GetEnv fetches the value of an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	return value
}
