// Command server runs the Q&A HTTP API.
//
// @title       Q&A API
// @version     1.0
// @description Questions and answers with profanity filtering.
// @BasePath    /
package main

import (
	"os"
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
