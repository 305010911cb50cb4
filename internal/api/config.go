package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/alvinbaena/pwdcheck/internal/config"
	"github.com/alvinbaena/pwdcheck/internal/util"
)

type Config struct {
	Port    string `mapstructure:"PORT" validate:"required,numeric"`
	SelfTLS bool   `mapstructure:"SELF_TLS" validate:"required_without_all=TLSCert TLSKey"`
	TLSCert string `mapstructure:"TLS_CERT" validate:"required_if=SelfTLS false,required_with=TLSKey"`
	TLSKey  string `mapstructure:"TLS_KEY" validate:"required_if=SelfTLS false,required_with=TLSCert"`
	Debug   bool   `mapstructure:"DEBUG"`
}

func msgForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "numeric":
		return "This field must be a number"
	case "required_without_all":
		return fmt.Sprintf("This field is required if fields [%s] are missing", util.ToScreamingSnakeCase(fe.Param()))
	case "required_if":
		return fmt.Sprintf("This field is required if %s", util.ToScreamingSnakeCase(fe.Param()))
	case "required_with":
		return fmt.Sprintf("This is field requires the presence of %s", util.ToScreamingSnakeCase(fe.Param()))
	}
	return fe.Error() // default error
}

// LoadConfig reads the server settings from the environment (and .env).
// It does not validate them, flags may still fill the gaps.
func LoadConfig() (cfg Config, err error) {
	config.LoadDotEnv()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetDefault("PORT", "3100")

	cfg = Config{}
	config.BindEnvs(v, cfg)

	err = v.Unmarshal(&cfg)
	return
}

// Validate reports every invalid field at once, named after its environment variable.
func (c Config) Validate() error {
	validate := validator.New()

	err := validate.Struct(&c)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		var msgs []string
		for _, fe := range ve {
			msgs = append(msgs, fmt.Sprintf("%s: %s", util.ToScreamingSnakeCase(fe.Field()), msgForTag(fe)))
		}
		return errors.New(strings.Join(msgs, ". "))
	}

	return fmt.Errorf("error validating configuration: %w", err)
}
