package main

import (
	"vidscout/cmd/handlers"
	"vidscout/internal/logger"
)

func main() {
	logger.Init()
	handlers.Execute()
}
