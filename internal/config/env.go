package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads env vars from .env.local and .env in the working
// directory. It only sets vars that are not already set, matching godotenv's
// behavior. Set TASKMIND_DOTENV=0 to disable.
func LoadDotEnv(logPrefix string) {
	if isDotEnvDisabled() {
		return
	}

	for _, p := range []string{".env.local", ".env"} {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			log.Fatalf("%s failed to load %s: %v", logPrefix, p, err)
		} else {
			log.Printf("%s loaded env from %s", logPrefix, p)
		}
	}
}

func isDotEnvDisabled() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("TASKMIND_DOTENV"))) {
	case "0", "false", "off", "no":
		return true
	default:
		return false
	}
}
