// Package constants holds identifiers shared across layers.
package constants

// Deployment environments.
const (
	EnvDevelop    = "develop"
	EnvLocal      = "local"
	EnvProduction = "production"
)

// Order event publisher providers.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
	PubSubProviderKafka  = "kafka"
)
