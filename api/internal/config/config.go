package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gorm.io/gorm"
)

type Config struct {
	DB *gorm.DB

	ProxyPath string   `toml:"proxy_path"` // used in webhook-sender
	ProxyList []string `toml:"-"`          // reads proxies from ProxyPath and fills it with

	Prod_env bool

	AdminEmail string `toml:"admin_email"` // requested-withdrawal alerts go here
	WebhookUrl string `toml:"webhook_url"` // ops channel endpoint

	Testing struct {
		Enabled      bool
		SlowDispatch time.Duration `toml:"slow_dispatch"`
	} `toml:"testing"`

	PrivateKey string `toml:"private_key"`

	JwtKey        string `toml:"-"` // SECRETS/jwt-key.txt
	WebhookSecret string `toml:"-"` // SECRETS/webhook-secret.txt

	Withdrawals struct {
		StuckAfter time.Duration `toml:"stuck_after"`
	} `toml:"withdrawals"`

	Postgres struct {
		Host     string
		User     string
		Password string
		Db_name  string
		Port     uint16
		Ssl_mode string
	}
	Nats struct {
		Servers     string
		TomlServers []string `toml:"servers"`
	}
	Api struct {
		Ipv4  string
		Proto string
	} `toml:"payout_web"`
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

	user, err := os.ReadFile(os.Getenv("SECRETS") + "/nats-user.txt")
	if err != nil {
		panic(err)
	}

	pass, err := os.ReadFile(os.Getenv("SECRETS") + "/nats-password.txt")
	if err != nil {
		panic(err)
	}

	var formatedServers string
	for _, x := range config.Nats.TomlServers {
		connectUrl := fmt.Sprintf("nats://%s:%s@%s,", user, pass, string(x))
		formatedServers += connectUrl
	}

	config.Nats.Servers = formatedServers

	jwtKey, err := os.ReadFile(os.Getenv("SECRETS") + "/jwt-key.txt")
	if err != nil {
		panic(err)
	}
	config.JwtKey = strings.TrimSpace(string(jwtKey))

	webhookSecret, err := os.ReadFile(os.Getenv("SECRETS") + "/webhook-secret.txt")
	if err != nil {
		panic(err)
	}
	config.WebhookSecret = strings.TrimSpace(string(webhookSecret))

	// ops webhook proxies
	config.ProxyList = GetProxyList(config.ProxyPath)

	if config.Prod_env && config.Testing.Enabled {
		panic("cannot use testing in prod")
	}

	return &config
}

func GetProxyList(path string) []string {
	proxyList, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	proxyListArray := strings.Split(string(proxyList), "\n")
	return proxyListArray
}
