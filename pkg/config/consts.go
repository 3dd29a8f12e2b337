package config

// EnvPrefix is the envconfig prefix shared by every binary.
const EnvPrefix = "STOCKROOM"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv    = "STOCKROOM_APP_ENV"
	EnvPort      = "STOCKROOM_APP_PORT"
	EnvDBDSN     = "STOCKROOM_DB_DSN"
	EnvDBHost    = "STOCKROOM_DB_HOST"
	EnvDBUser    = "STOCKROOM_DB_USER"
	EnvDBName    = "STOCKROOM_DB_NAME"
	EnvRedisURL  = "STOCKROOM_REDIS_URL"
	EnvJWTSecret = "STOCKROOM_JWT_SECRET"
	EnvJWTIssuer = "STOCKROOM_JWT_ISSUER"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
