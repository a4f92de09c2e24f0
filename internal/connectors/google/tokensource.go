package google

import (
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2"
)

// FileTokenSource returns an oauth2.TokenSource backed by a token JSON file
// written by an external authorisation flow. Acquiring and refreshing
// credentials is not this tool's job; it only consumes a stored token.
func FileTokenSource(path string) (oauth2.TokenSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read token file: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("parse token file %s: %w", path, err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("token file %s holds no access token", path)
	}

	return oauth2.StaticTokenSource(&token), nil
}
