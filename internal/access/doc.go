// Package access decides which Telegram users may create meetings.
//
// An AllowList is built once at startup from the ALLOWED_USERS setting and is
// immutable afterwards. An empty list means the bot is open to everyone.
package access
