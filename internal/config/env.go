package config

import (
	"strconv"
	"strings"
)

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides c with any of the recognized environment variables.
// Unparseable numbers and booleans are ignored.
func (c *Config) ApplyEnv(lookup LookupFunc) {
	str := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v, ok := lookup(k); ok && v != "" {
				*dst = v
				return
			}
		}
	}
	num := func(dst *int, key string) {
		if v, ok := lookup(key); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				*dst = n
			}
		}
	}
	flag := func(dst *bool, key string) {
		if v, ok := lookup(key); ok {
			if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
				*dst = b
			}
		}
	}
	list := func(dst *[]string, key string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = splitList(v)
		}
	}

	num(&c.Server.Port, "PORT")
	str(&c.Server.Environment, "ENVIRONMENT", "APP_ENV")
	list(&c.Server.AllowedOrigins, "CORS_ALLOWED_ORIGINS")

	str(&c.LLM.Provider, "LLM_PROVIDER")
	switch c.LLM.Provider {
	case "openai":
		str(&c.LLM.APIKey, "OPENAI_API_KEY")
		str(&c.LLM.BaseURL, "OPENAI_BASE_URL")
	default:
		str(&c.LLM.APIKey, "GEMINI_API_KEY")
	}
	str(&c.LLM.Model, "LLM_MODEL")
	num(&c.LLM.TimeoutSeconds, "LLM_TIMEOUT_SECONDS")
	num(&c.LLM.Retries, "LLM_RETRIES")
	num(&c.LLM.RequestsPerMinute, "LLM_REQUESTS_PER_MINUTE")

	num(&c.Upload.MaxFileBytes, "MAX_UPLOAD_BYTES")

	flag(&c.Fetch.Enabled, "FETCH_ENABLED")
	flag(&c.Fetch.UseBrowser, "FETCH_USE_BROWSER")

	str(&c.Archive.Driver, "ARCHIVE_DRIVER")
	str(&c.Archive.DSN, "ARCHIVE_DSN")
	if c.Archive.DSN == "" {
		if v, ok := lookup("DATABASE_URL"); ok && v != "" {
			c.Archive.DSN = v
			if c.Archive.Driver == "" {
				c.Archive.Driver = "postgres"
			}
		}
	}

	str(&c.Storage.Backend, "STORAGE_BACKEND")
	str(&c.Storage.Endpoint, "STORAGE_ENDPOINT")
	str(&c.Storage.Region, "STORAGE_REGION")
	str(&c.Storage.Bucket, "STORAGE_BUCKET")
	str(&c.Storage.AccessKey, "STORAGE_ACCESS_KEY")
	str(&c.Storage.SecretKey, "STORAGE_SECRET_KEY")
	flag(&c.Storage.UseSSL, "STORAGE_USE_SSL")

	str(&c.Events.URL, "AMQP_URL")
	str(&c.Events.Exchange, "AMQP_EXCHANGE")

	flag(&c.RateLimit.Enabled, "RATE_LIMIT_ENABLED")
	num(&c.RateLimit.DefaultLimit, "RATE_LIMIT_DEFAULT_LIMIT")
	num(&c.RateLimit.AnalyzeLimit, "RATE_LIMIT_ANALYZE_LIMIT")
	list(&c.RateLimit.Whitelist, "RATE_LIMIT_WHITELIST")
	list(&c.RateLimit.Blacklist, "RATE_LIMIT_BLACKLIST")

	flag(&c.Auth.Enabled, "AUTH_ENABLED")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
