package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	// JWTSecret verifies identity-provider bearer tokens.
	JWTSecret string

	// StripeSecretKey authenticates against the payment processor.
	StripeSecretKey string

	ClientOrigin string

	// ApplicationFeeCents is the fixed fee charged per loan application.
	ApplicationFeeCents int64
	CheckoutCurrency    string
	CheckoutSuccessURL  string
	CheckoutCancelURL   string

	CacheTTLSecs int
	IdempTTLSecs int
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func Load() *Config {
	_ = godotenv.Load()

	c := &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "loanmarket"),
		MySQLUser: getenv("MYSQL_USER", "loanmarket"),
		MySQLPass: getenv("MYSQL_PASS", "loanmarket"),

		RedisAddr: getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:   getenvInt("REDIS_DB", 0),

		JWTSecret:       os.Getenv("JWT_SECRET"),
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),

		ClientOrigin: getenv("CLIENT_ORIGIN", "*"),

		ApplicationFeeCents: int64(getenvInt("APPLICATION_FEE_CENTS", 1000)),
		CheckoutCurrency:    getenv("CHECKOUT_CURRENCY", "usd"),
		CheckoutSuccessURL:  getenv("CHECKOUT_SUCCESS_URL", "http://localhost:5173/payment-success"),
		CheckoutCancelURL:   getenv("CHECKOUT_CANCEL_URL", "http://localhost:5173/payment-cancelled"),

		CacheTTLSecs: getenvInt("CACHE_TTL_SECONDS", 60),
		IdempTTLSecs: getenvInt("IDEMPOTENCY_TTL_SECONDS", 300),
	}
	return c
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	// ensure port is valid
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.JWTSecret == "" {
		return errors.New("missing JWT_SECRET")
	}
	if c.StripeSecretKey == "" {
		return errors.New("missing STRIPE_SECRET_KEY")
	}
	if c.ApplicationFeeCents <= 0 {
		return fmt.Errorf("APPLICATION_FEE_CENTS must be positive, got %d", c.ApplicationFeeCents)
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
