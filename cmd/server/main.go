// Command server runs the social-postify REST API.
//
//	server                 start the HTTP server (applies pending migrations first)
//	server migrate up      apply pending migrations and exit
//	server migrate down    roll back the latest migration
//	server migrate version print the current schema version
//
// Configuration comes from the environment and an optional .env file; see
// internal/config.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
