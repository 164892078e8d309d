// Package bot implements the Telegram update handlers.
//
// /start replies with usage instructions. /meet creates an open Google Meet
// space and replies with its link, or with the error. Inline queries that
// are empty or mention "meet", "link" or "room" are answered with a single
// article carrying a fresh link.
//
// When an allowlist is configured, /meet and inline queries from users not
// on it are refused before any space is created.
package bot
