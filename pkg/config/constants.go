package config

const (
	EnvPrefix = "QM"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv = "QM_APP_ENV"
	EnvPort   = "QM_APP_PORT"

	EnvDBDSN  = "QM_DB_DSN"
	EnvDBHost = "QM_DB_HOST"
	EnvDBUser = "QM_DB_USER"
	EnvDBName = "QM_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
