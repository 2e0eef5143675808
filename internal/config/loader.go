package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// LoadDotEnv applies the given .env files to the process environment.
// Variables already set are left untouched, missing files are skipped.
func LoadDotEnv(paths ...string) {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}

		if err := gotenv.Load(p); err != nil {
			log.Warn().Err(err).Str("path", p).Msg("Failed to load env file")
			continue
		}

		log.Debug().Str("path", p).Msg("Loaded env file")
	}
}

// ApplyConfigFile reads a yaml, toml or json file and exports its keys as ENV variables.
// Nested keys are joined by "_" and upper cased, e.g. `signup.otp_ttl` becomes SIGNUP_OTP_TTL.
// Variables already present in the environment win over the file.
func ApplyConfigFile(path string) error {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "failed to read config file %q", path)
	}

	for _, key := range v.AllKeys() {
		envKey := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if _, ok := os.LookupEnv(envKey); ok {
			continue
		}

		if err := os.Setenv(envKey, v.GetString(key)); err != nil {
			return errors.Wrapf(err, "failed to export config key %q", key)
		}
	}

	return nil
}
