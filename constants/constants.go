package constants

import (
	"os"
	"strconv"
)

func GetVocabPath() string {
	return os.Getenv("HARMONET_VOCAB")
}

func GetOutDir() string {
	path := os.Getenv("HARMONET_OUT")
	if path != "" {
		return path
	}
	return "./out"
}

func GetPort() int {
	if port, err := strconv.Atoi(os.Getenv("HARMONET_PORT")); err == nil && port > 0 {
		return port
	}
	return 8080
}

// GetSeed returns the texture seed and whether one was set.
func GetSeed() (uint64, bool) {
	seed, err := strconv.ParseUint(os.Getenv("HARMONET_SEED"), 10, 64)
	if err != nil {
		return 0, false
	}
	return seed, true
}

const DefaultConfigFile = "harmonet.toml"
