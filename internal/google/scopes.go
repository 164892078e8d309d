package google

// MeetSpaceCreatedScope lets the bot create Meet spaces and manage the
// spaces it created. It is the only scope the bot requests.
const MeetSpaceCreatedScope = "https://www.googleapis.com/auth/meetings.space.created"

// DefaultOAuthScopes are the Google OAuth scopes requested during consent.
var DefaultOAuthScopes = []string{
	MeetSpaceCreatedScope,
}
