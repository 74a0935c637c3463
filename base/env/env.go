package env

import (
	"os"
)

const (
	// signerKeyEnv holds the hex private key used on both networks
	signerKeyEnv = "SEARCHER_PRIVATE_KEY"
	// discordBotKeyEnv overrides discord.botKey from the config file
	discordBotKeyEnv = "SEARCHER_DISCORD_BOT_KEY"
)

// PodName example: oev-searcher-6868d88fbd-bz8zv
func PodName() string {
	return os.Getenv("PODNAME")
}

// EnvName example: mainnet
func EnvName() string {
	return os.Getenv("ENV_NAME")
}

// AppName example: searcher
func AppName() string {
	return os.Getenv("APP_NAME")
}

func SignerKey() string {
	return os.Getenv(signerKeyEnv)
}

func DiscordBotKey() string {
	return os.Getenv(discordBotKeyEnv)
}
