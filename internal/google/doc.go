// Package google provides OAuth2 credential management for the Google Meet API.
//
// A CredentialManager owns the on-disk token file. It loads the persisted
// credential, refreshes it through Google's token endpoint when it has
// expired, and persists the result after every change. Concurrent callers
// share a single in-flight load/refresh and every read-modify-write of the
// token file happens under one process-wide lock.
//
// When no usable credential exists the manager falls back to a ConsentFlow.
// LoopbackConsent implements the interactive flow used by the `auth` command;
// unattended deployments run without one and get an AuthError instead.
//
// The manager plugs into Google API clients through TokenSource, so every
// outbound request goes through Obtain.
package google
