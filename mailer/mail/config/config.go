package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Prod_env bool
	Nats     struct {
		TomlServers []string `toml:"servers"`
		Servers     string
	}
	Smtp struct {
		TomlRelays []string `toml:"relays" envconfig:"relays"` // host:port
		From       string   `toml:"from" envconfig:"from"`
		Username   string   `toml:"username" envconfig:"username"`
		Password   string   `ignored:"true"`
	} `toml:"smtp"`
}

func ReadConfig() *Config {

	byte_config, err := os.ReadFile(os.Getenv("CONFIG"))
	if err != nil {
		panic(err)
	}

	var config Config
	_, err = toml.Decode(string(byte_config), &config)
	if err != nil {
		panic(err)
	}

	// SMTP_RELAYS / SMTP_FROM / SMTP_USERNAME override the file
	err = envconfig.Process("smtp", &config.Smtp)
	if err != nil {
		panic(err)
	}

	user, err := os.ReadFile(os.Getenv("SECRETS") + "/nats-user.txt")
	if err != nil {
		panic(err)
	}

	pass, err := os.ReadFile(os.Getenv("SECRETS") + "/nats-password.txt")
	if err != nil {
		panic(err)
	}

	smtpPass, err := os.ReadFile(os.Getenv("SECRETS") + "/smtp-password.txt")
	if err != nil {
		panic(err)
	}

	config.Smtp.Password = string(smtpPass)

	var formatedServers string
	for _, x := range config.Nats.TomlServers {
		connectUrl := fmt.Sprintf("nats://%s:%s@%s,", user, pass, string(x))
		formatedServers += connectUrl
	}

	config.Nats.Servers = formatedServers

	return &config
}
