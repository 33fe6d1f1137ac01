package main

import (
	"os"
	"payout/api/internal/app"
	"payout/api/internal/config"
	"payout/api/internal/infra/nats"
	"payout/api/internal/infra/postgres"
	"payout/api/internal/logger"

	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load(os.Getenv("ENVPATH"))
	if err != nil {
		panic("Can't load .env file: " + err.Error())
	}

	config := config.ReadConfig()
	config.DB = postgres.Init(config)

	unixLogger := logger.Init(config)

	natsinfra := nats.Init(config, unixLogger)

	app := &app.App{
		Config:    config,
		Db:        config.DB,
		NatsInfra: natsinfra,
		Log:       unixLogger,
	}

	app.Start()

}
