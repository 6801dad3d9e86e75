// Package config loads client settings from .env files, the process
// environment and an optional oaiclient.yaml, using godotenv and Viper.
//
// Missing required settings are reported as [*ConfigurationError] by
// [Config.RequireOpenAI] and [Config.RequireAzure].
package config
