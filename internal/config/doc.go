// Package config loads and validates docdesk service configuration.
//
// Configuration is YAML with ${VAR} environment expansion and duration
// strings ("750ms", "30m") parsed after unmarshaling. Every field has a
// sensible default, so the service also runs with no config file at all.
package config
