// Package google handles OAuth2 credentials for the Gmail API.
//
// Credentials follow the installed-app flow: a client secrets file
// downloaded from the Google Cloud Console and a token file persisted
// after the first authorization. Token refresh is delegated to the
// oauth2 token source; refreshed tokens are written back to disk so a
// single authorization survives restarts.
package google
