package meet

// Space configuration values accepted by the Meet API.
const (
	// AccessTypeOpen lets anyone with the link join without knocking.
	AccessTypeOpen = "OPEN"

	// EntryPointAccessAll allows every entry point (web, phone, apps).
	EntryPointAccessAll = "ALL"
)

// Space represents a Google Meet space
type Space struct {
	// Name is the resource name of the space
	// Format: spaces/{space}
	Name string

	// MeetingURI is the URI to join the meeting
	MeetingURI string

	// MeetingCode is the meeting code (e.g., "abc-defg-hij")
	MeetingCode string

	// Config is the configuration reported back by the API
	Config *SpaceConfig
}

// SpaceConfig represents the configuration for a Google Meet space
type SpaceConfig struct {
	// AccessType defines who can join without knocking
	AccessType string

	// EntryPointAccess defines which entry points can be used
	EntryPointAccess string
}
