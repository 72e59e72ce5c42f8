// Command lingbao is a terminal client for the listing marketplace: it parses
// pasted listings, submits and reports them, watches the live price feed, and
// runs the admin moderation endpoints.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
