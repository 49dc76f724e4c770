package main

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/gaurav-prasanna/docspipe/cmd"
)

func main() {
	cmd.Execute()
}
