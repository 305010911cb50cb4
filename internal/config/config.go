package config

import (
	"errors"
	"io/fs"
	"reflect"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/alvinbaena/pwdcheck/pkg/hibp"
)

// Config holds the leak checker settings shared by every command.
type Config struct {
	HibpURL   string        `mapstructure:"PWDCHECK_HIBP_URL"`
	Timeout   time.Duration `mapstructure:"PWDCHECK_HIBP_TIMEOUT"`
	UserAgent string        `mapstructure:"PWDCHECK_USER_AGENT"`
}

// BindEnvs registers every mapstructure tag of the struct as an environment
// key, so Unmarshal picks the values up without a config file.
func BindEnvs(v *viper.Viper, iface interface{}, parts ...string) {
	ifv := reflect.ValueOf(iface)
	ift := reflect.TypeOf(iface)
	for i := 0; i < ift.NumField(); i++ {
		f := ifv.Field(i)
		t := ift.Field(i)
		tv, ok := t.Tag.Lookup("mapstructure")
		if !ok {
			continue
		}
		switch f.Kind() {
		case reflect.Struct:
			BindEnvs(v, f.Interface(), append(parts, tv)...)
		default:
			_ = v.BindEnv(strings.Join(append(parts, tv), "."))
		}
	}
}

// LoadDotEnv loads a .env file from the working directory when there is one.
// Variables already set in the environment win.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("error reading .env file")
	}
}

func Load() (config Config, err error) {
	LoadDotEnv()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetDefault("PWDCHECK_HIBP_URL", hibp.DefaultURL)
	v.SetDefault("PWDCHECK_HIBP_TIMEOUT", hibp.DefaultTimeout)
	v.SetDefault("PWDCHECK_USER_AGENT", hibp.DefaultUserAgent)

	config = Config{}
	BindEnvs(v, config)

	err = v.Unmarshal(&config)
	return
}

// NewClient builds a leak checker client from the configuration.
func (c Config) NewClient() *hibp.Client {
	return hibp.NewClient(hibp.WithBaseURL(c.HibpURL), hibp.WithUserAgent(c.UserAgent))
}
