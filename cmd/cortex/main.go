package main

import (
	"github.com/joho/godotenv"

	"github.com/agenthands/cortex/internal/cli"
)

func main() {
	godotenv.Load()
	cli.Execute()
}
