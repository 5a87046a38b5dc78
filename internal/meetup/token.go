package meetup

import "fmt"

// TokenHelp explains how to obtain an access token through the OAuth consent page.
func TokenHelp(oauthURL string) string {
	return fmt.Sprintf(`To get an access token, create your own OAuth consumer at
https://www.meetup.com/meetup_api/ with https://www.google.com as redirect_uri, then:

  1. Open in a browser, replacing CONSUMER_KEY with your consumer key:
       %s?client_id=CONSUMER_KEY&response_type=token&redirect_uri=https://www.google.com
  2. Grant it access to your meetup.com account.
  3. You are redirected to https://www.google.com with the token in the URL;
     copy the access_token property.

An access token usually expires after an hour.`, oauthURL)
}
