// Package constants holds identifiers shared across layers.
package constants

// Pub/Sub provider names accepted in pubsub.provider.
const (
	PubSubProviderNoop   = "noop"
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// TaskEventSubscription is the subscription name reported in local push messages.
const TaskEventSubscription = "projects/local/subscriptions/task-events-sub"
