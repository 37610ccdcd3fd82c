package main

import (
	"flag"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

func main() {
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Infof("no .env file loaded %v", err)
	}

	server, err := Setup()
	if err != nil {
		log.Fatalf("main start failed %v", err)
		return
	}

	server.Run()
}
