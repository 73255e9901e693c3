package configs

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type ENV struct {
	DBHost                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBPort                 string
	DatabaseURL            string
	Port                   string
	AppEnv                 string
	AppURL                 string
	LogLevel               string
	SessionSecret          string
	AppAuthKey             string
	AppEncKey              string
	CSRFKey                string
	CORSAllowedOrigins     []string
	TrustedProxies         []string
	BlobBucketURL          string
	BlobPublicURL          string
	GoogleSiteVerification string
	KafkaBrokers           []string
	KafkaOrderTopic        string
	EmailHost              string
	EmailPort              string
	EmailUsername          string
	EmailPassword          string
	EmailFrom              string
	OrderNotifyEmail       string
	AdminEmail             string
	AdminPassword          string
}

func LoadEnv() ENV {

	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}

	return ENV{
		DBHost:                 getEnv("DB_HOST", "127.0.0.1"),
		DBUser:                 os.Getenv("DB_USER"),
		DBPassword:             os.Getenv("DB_PASSWORD"),
		DBName:                 os.Getenv("DB_NAME"),
		DBPort:                 getEnv("DB_PORT", "3306"),
		DatabaseURL:            os.Getenv("DATABASE_URL"),
		Port:                   getEnv("APP_PORT", ":8080"),
		AppEnv:                 getEnv("APP_ENV", "development"),
		AppURL:                 getEnv("APP_URL", "http://localhost:3000"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		SessionSecret:          os.Getenv("SESSION_SECRET"),
		AppAuthKey:             os.Getenv("APP_AUTH_KEY"),
		AppEncKey:              os.Getenv("APP_ENC_KEY"),
		CSRFKey:                os.Getenv("CSRF_KEY"),
		CORSAllowedOrigins:     splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		TrustedProxies:         splitList(os.Getenv("TRUSTED_PROXIES")),
		BlobBucketURL:          getEnv("BLOB_BUCKET_URL", "file:///var/lib/storefront/uploads?create_dir=true"),
		BlobPublicURL:          getEnv("BLOB_PUBLIC_URL", "/uploads"),
		GoogleSiteVerification: os.Getenv("GOOGLE_SITE_VERIFICATION"),
		KafkaBrokers:           splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaOrderTopic:        getEnv("KAFKA_ORDER_TOPIC", "storefront.orders.created"),
		EmailHost:              os.Getenv("EMAIL_HOST"),
		EmailPort:              getEnv("EMAIL_PORT", "587"),
		EmailUsername:          os.Getenv("EMAIL_USERNAME"),
		EmailPassword:          os.Getenv("EMAIL_PASSWORD"),
		EmailFrom:              os.Getenv("EMAIL_USERNAME"),
		OrderNotifyEmail:       os.Getenv("ORDER_NOTIFY_EMAIL"),
		AdminEmail:             os.Getenv("ADMIN_EMAIL"),
		AdminPassword:          os.Getenv("ADMIN_PASSWORD"),
	}

}

func (e ENV) IsProduction() bool {
	return e.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
