// Package meet provides a client for the Google Meet API v2.
//
// The bot only ever creates open spaces: access type OPEN with every entry
// point allowed, so anyone holding the link joins without knocking.
//
// Authentication:
// The client authorizes requests with an oauth2.TokenSource. In the bot this
// is google.TokenSource backed by a CredentialManager holding the
// meetings.space.created scope.
//
// Example usage:
//
//	creds := google.NewCredentialManager(google.ManagerConfig{TokenFile: "token.json"})
//	client, err := meet.NewClient(ctx, meet.Config{
//	    TokenSource: google.TokenSource(ctx, creds),
//	})
//	if err != nil {
//	    return err
//	}
//
//	space, err := client.CreateOpenSpace(ctx)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(space.MeetingURI)
package meet
