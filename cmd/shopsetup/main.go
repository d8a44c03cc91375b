// Command shopsetup prepares a checkout of the Telegram shop bot backend:
// it writes the .env file, installs dependencies and can seed a demo
// catalog.
package main

import "github.com/joho/godotenv"

var version = "dev"

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	_ = godotenv.Load(".shopsetup.env")

	Execute()
}
