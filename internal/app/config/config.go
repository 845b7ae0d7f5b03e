package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type Config struct {
	HTTPAddr      string
	DatabaseURL   string
	InternalToken string

	EmailAPIURL string
	EmailAPIKey string
	EmailFrom   string

	JobsAPIURL    string
	JobsAPIToken  string
	JobsAPISecret string
	JobsPageSize  int
	JobsPageDelay time.Duration

	AIBaseURL string
	AIAPIKey  string
	AIModel   string

	GSTRate          decimal.Decimal
	BrandHeaderImage string
	BrandFooterImage string
}

func MustLoad() Config {
	return Config{
		HTTPAddr:      env("HTTP_ADDR", ":8080"),
		DatabaseURL:   mustEnv("DATABASE_URL"),
		InternalToken: mustEnv("INTERNAL_TOKEN"),

		EmailAPIURL: env("EMAIL_API_URL", "https://api.resend.com"),
		EmailAPIKey: mustEnv("EMAIL_API_KEY"),
		EmailFrom:   env("EMAIL_FROM", "quotes@rkatech.com.au"),

		JobsAPIURL:    mustEnv("JOBS_API_URL"),
		JobsAPIToken:  mustEnv("JOBS_API_TOKEN"),
		JobsAPISecret: mustEnv("JOBS_API_SECRET"),
		JobsPageSize:  envInt("JOBS_PAGE_SIZE", 50),
		JobsPageDelay: envDuration("JOBS_PAGE_DELAY", 500*time.Millisecond),

		AIBaseURL: env("AI_BASE_URL", "https://api.openai.com"),
		AIAPIKey:  env("AI_API_KEY", ""),
		AIModel:   env("AI_MODEL", "gpt-4o-mini"),

		GSTRate:          envDecimal("GST_RATE", "0.10"),
		BrandHeaderImage: env("BRAND_HEADER_IMAGE", "assets/brand/header.png"),
		BrandFooterImage: env("BRAND_FOOTER_IMAGE", "assets/brand/footer.png"),
	}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing env %s", k)
	}
	return v
}

func envInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid %s: %v", k, err)
	}
	return n
}

func envDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("invalid %s: %v", k, err)
	}
	return d
}

func envDecimal(k, def string) decimal.Decimal {
	v := os.Getenv(k)
	if v == "" {
		v = def
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		log.Fatalf("invalid %s: %v", k, err)
	}
	return d
}
