// Package config resolves the bot's process configuration.
//
// Values come from command-line overrides first, then environment variables
// (optionally seeded from a .env file), then defaults. A missing BOT_TOKEN or
// a malformed value yields a *ConfigurationError, which is fatal at startup.
package config
