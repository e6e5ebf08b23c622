/*
progression is a client for the orchestration daemon's HTTP read API.

Usage:

	progression task-history <task-id>
	progression readiness

Flags:

	--url <url>
		URL of the daemon's HTTP API (or PROGRESSION_URL)
	--timeout <duration>
		request timeout (or PROGRESSION_TIMEOUT)

Basic auth credentials are read from PROGRESSION_HTTP_BASIC_AUTH_USERNAME and
PROGRESSION_HTTP_BASIC_AUTH_PASSWORD.
*/
package main

import (
	"os"

	"github.com/hmcts/cpp-context-businessprocesses-sub000/cli"
)

var version = "unknown-version"

func main() {
	os.Exit(cli.New(version).Execute())
}
