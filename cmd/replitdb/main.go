// Command replitdb is a command-line client for the Replit key-value database.
package main

import "github.com/AdguardTeam/replitdb/internal/cmd"

func main() {
	cmd.Main()
}
