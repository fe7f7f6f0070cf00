// Package config loads installation settings from an optional YAML file and
// CPM_* environment variables.
package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/viper"

	"contractorpm/services"
)

// EnvPrefix is prepended to every environment override, e.g. CPM_SMTP_HOST.
const EnvPrefix = "CPM"

type Config struct {
	Company struct {
		DefaultName string `mapstructure:"default_name"`
	} `mapstructure:"company"`

	Offer struct {
		Currency     string
		ValidityDays int `mapstructure:"validity_days"`
	} `mapstructure:"offer"`

	Mail struct {
		SenderAddress string `mapstructure:"sender_address"`
		SenderName    string `mapstructure:"sender_name"`
	} `mapstructure:"mail"`

	SMTP struct {
		Enabled  bool
		Host     string
		Port     int
		Username string
		Password string
		TLS      bool `mapstructure:"tls"`
	} `mapstructure:"smtp"`

	Metrics struct {
		Enabled bool
		Path    string
	} `mapstructure:"metrics"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("company.default_name", services.DefaultCompanyName)
	v.SetDefault("offer.currency", services.DefaultCurrencySymbol)
	v.SetDefault("offer.validity_days", services.DefaultValidityDays)
	v.SetDefault("mail.sender_address", "")
	v.SetDefault("mail.sender_name", "")
	v.SetDefault("smtp.enabled", false)
	v.SetDefault("smtp.host", "")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.username", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("smtp.tls", false)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

// Load reads path if it is non-empty and exists, then applies environment
// overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var c Config
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return c, err
			}
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	if c.Offer.ValidityDays <= 0 {
		c.Offer.ValidityDays = services.DefaultValidityDays
	}
	return c, nil
}

// OfferOptions returns the installation-wide offer settings.
func (c Config) OfferOptions() services.OfferOptions {
	return services.OfferOptions{
		DefaultCompanyName: c.Company.DefaultName,
		Currency:           c.Offer.Currency,
		ValidityDays:       c.Offer.ValidityDays,
	}
}

// ApplyMail copies configured mail settings onto the PocketBase settings.
// Empty values leave the stored settings untouched.
func (c Config) ApplyMail(s *core.Settings) bool {
	changed := false
	set := func(dst *string, v string) {
		if v != "" && *dst != v {
			*dst = v
			changed = true
		}
	}

	set(&s.Meta.SenderAddress, c.Mail.SenderAddress)
	set(&s.Meta.SenderName, c.Mail.SenderName)

	if c.SMTP.Host != "" {
		set(&s.SMTP.Host, c.SMTP.Host)
		set(&s.SMTP.Username, c.SMTP.Username)
		set(&s.SMTP.Password, c.SMTP.Password)
		if s.SMTP.Port != c.SMTP.Port {
			s.SMTP.Port = c.SMTP.Port
			changed = true
		}
		if s.SMTP.TLS != c.SMTP.TLS {
			s.SMTP.TLS = c.SMTP.TLS
			changed = true
		}
		if s.SMTP.Enabled != c.SMTP.Enabled {
			s.SMTP.Enabled = c.SMTP.Enabled
			changed = true
		}
	}
	return changed
}
