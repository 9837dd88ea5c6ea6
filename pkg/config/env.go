package config

const EnvPrefix = "TEES"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv  = "TEES_APP_ENV"
	EnvPort    = "TEES_APP_PORT"
	EnvBaseURL = "TEES_APP_BASE_URL"

	EnvDBDSN  = "TEES_DB_DSN"
	EnvDBHost = "TEES_DB_HOST"
	EnvDBUser = "TEES_DB_USER"
	EnvDBName = "TEES_DB_NAME"

	EnvRedisURL = "TEES_REDIS_URL"

	EnvStripeAPIKey        = "TEES_STRIPE_API_KEY"
	EnvStripeWebhookSecret = "TEES_STRIPE_WEBHOOK_SECRET"

	EnvPrintifyAPIToken = "TEES_PRINTIFY_API_TOKEN"
	EnvPrintifyShopID   = "TEES_PRINTIFY_SHOP_ID"

	EnvSyncToken = "TEES_SYNC_TOKEN"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
