// Package config is the configuration collaborator for fsclient.
//
// It supplies the application identity (name, version, url) that becomes the
// User-Agent string, and the credentials consumed by the signer package:
// consumer key/secret for OAuth 1 and an access token for OAuth 2. The core
// client never reads files or the environment itself; callers load a Config
// here (or build one by hand) and pass the pieces in at construction.
//
//	cfg, err := config.Load()
//	c, err := client.New(client.Config{UserAgent: cfg.App.UserAgent()},
//	    client.WithSigner(signer.OAuth1(signer.Consumer(cfg.Consumer))),
//	)
package config
