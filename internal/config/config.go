package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultAppPort     = "4000"
	defaultDBName      = "gadgetShop"
	defaultCORSOrigins = "http://localhost:5173"
)

type Config struct {
	AppPort string
	AppEnv  string

	MongoURI  string
	DBUser    string
	DBPass    string
	DBCluster string
	DBAppName string
	DBName    string

	AccessTokenSecret string
	IssuerKeyHash     string

	CORSAllowedOrigins []string

	ProtectProductMutations bool
	CascadeProductDelete    bool

	RedisAddr string
}

var ErrStoreNotConfigured = errors.New("set MONGODB_URI or DB_USER, DB_PASS and DB_CLUSTER")

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := storeFromEnv()
	cfg.AppPort = firstNonEmpty(os.Getenv("APP_PORT"), os.Getenv("PORT"), defaultAppPort)
	cfg.AppEnv = os.Getenv("APP_ENV")
	cfg.AccessTokenSecret = os.Getenv("ACCESS_KEY_TOKEN")
	cfg.IssuerKeyHash = os.Getenv("AUTH_ISSUER_KEY_HASH")
	cfg.CORSAllowedOrigins = splitList(firstNonEmpty(os.Getenv("CORS_ALLOWED_ORIGINS"), defaultCORSOrigins))
	cfg.ProtectProductMutations = parseBool(os.Getenv("PROTECT_PRODUCT_MUTATIONS"))
	cfg.CascadeProductDelete = parseBool(os.Getenv("CASCADE_PRODUCT_DELETE"))
	cfg.RedisAddr = os.Getenv("REDIS_ADDR")

	if cfg.StoreURI() == "" || cfg.AccessTokenSecret == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}

// LoadStoreConfig reads only the database settings. Tools that never serve
// HTTP use it so they do not need the token secret.
func LoadStoreConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := storeFromEnv()
	if cfg.StoreURI() == "" {
		return nil, ErrStoreNotConfigured
	}
	return cfg, nil
}

func storeFromEnv() *Config {
	return &Config{
		MongoURI:  os.Getenv("MONGODB_URI"),
		DBUser:    os.Getenv("DB_USER"),
		DBPass:    os.Getenv("DB_PASS"),
		DBCluster: os.Getenv("DB_CLUSTER"),
		DBAppName: os.Getenv("DB_APP_NAME"),
		DBName:    firstNonEmpty(os.Getenv("DB_NAME"), defaultDBName),
	}
}

// StoreURI returns MONGODB_URI when set, otherwise an Atlas SRV connection
// string assembled from the DB_* credentials.
func (c *Config) StoreURI() string {
	if c.MongoURI != "" {
		return c.MongoURI
	}
	if c.DBUser == "" || c.DBCluster == "" {
		return ""
	}

	q := url.Values{}
	q.Set("retryWrites", "true")
	q.Set("w", "majority")
	if c.DBAppName != "" {
		q.Set("appName", c.DBAppName)
	}

	return fmt.Sprintf("mongodb+srv://%s:%s@%s/?%s",
		url.QueryEscape(c.DBUser),
		url.QueryEscape(c.DBPass),
		c.DBCluster,
		q.Encode(),
	)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	return err == nil && b
}
