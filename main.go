package main

import (
	"github.com/joho/godotenv"

	"github.com/calolens/calo-cli/cmd/calo"
)

func main() {
	// Optional .env in the working directory may set CALO_DB.
	_ = godotenv.Load()
	calo.Execute()
}
