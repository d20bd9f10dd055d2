// Package logger provides structured logging built on zerolog.
//
// The logger is a collaborator: it is constructed by the caller and passed
// to whatever needs it (for example via client.WithLogger). There is no
// package-level singleton; code that wants a silent default uses Nop.
//
//	log := logger.NewDefault("my-app")
//	log.Info("request sent", logger.Fields(logger.FieldMethod, "GET"))
package logger
