package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// MailConfig holds the SMTP account used for lead notifications.
type MailConfig struct {
	Host       string `mapstructure:"mail_host"`
	Port       int    `mapstructure:"mail_port"`
	User       string `mapstructure:"mail_user"`
	Password   string `mapstructure:"mail_pass"`
	From       string `mapstructure:"mail_from"`
	AdminEmail string `mapstructure:"admin_email"`
}

func (m MailConfig) Configured() bool {
	return m.Host != "" && m.User != ""
}

type Config struct {
	Port       int    `mapstructure:"port"`
	Env        string `mapstructure:"app_env"`
	LogLevel   string `mapstructure:"log_level"`
	TrustProxy bool   `mapstructure:"trust_proxy"`

	Mail MailConfig `mapstructure:",squash"`

	// Optional backends; empty means the in-process fallback is used.
	DatabaseURL string `mapstructure:"database_url"`
	RedisURL    string `mapstructure:"redis_url"`
	RabbitMQURL string `mapstructure:"rabbitmq_url"`

	CORSAllowedOrigins []string      `mapstructure:"cors_allowed_origins"`
	ConnectTimeout     time.Duration `mapstructure:"connect_timeout"`
	ShutdownTimeout    time.Duration `mapstructure:"shutdown_timeout"`
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

var keys = []string{
	"port", "app_env", "log_level", "trust_proxy",
	"mail_host", "mail_port", "mail_user", "mail_pass", "mail_from", "admin_email",
	"database_url", "redis_url", "rabbitmq_url",
	"cors_allowed_origins", "connect_timeout", "shutdown_timeout",
}

// envAliases lists the variable names read for a key, first set wins. The
// EMAIL_* and NODE_ENV spellings are kept for existing deployments.
var envAliases = map[string][]string{
	"app_env":   {"APP_ENV", "NODE_ENV"},
	"mail_host": {"MAIL_HOST", "EMAIL_HOST"},
	"mail_port": {"MAIL_PORT", "EMAIL_PORT"},
	"mail_user": {"MAIL_USER", "EMAIL_USER"},
	"mail_pass": {"MAIL_PASS", "EMAIL_PASS"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 3000)
	v.SetDefault("app_env", "dev")
	v.SetDefault("log_level", "info")
	v.SetDefault("trust_proxy", false)
	v.SetDefault("mail_host", "smtp.gmail.com")
	v.SetDefault("mail_port", 587)
	v.SetDefault("cors_allowed_origins", []string{"*"})
	v.SetDefault("connect_timeout", "30s")
	v.SetDefault("shutdown_timeout", "10s")
}

// Load reads .env (real environment wins), then the environment, then
// explicitly set flags from args.
func Load(args []string, logger *zap.Logger) (*Config, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := godotenv.Load(); err == nil {
		logger.Info("loaded .env file")
	}

	fs := pflag.NewFlagSet("tutor-leads", pflag.ContinueOnError)
	fs.Int("port", 3000, "HTTP port")
	fs.String("env", "dev", `Runtime environment "dev"|"prod"`)
	fs.String("log-level", "info", "Log level")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("config: parse flags: %w", err)
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for _, k := range keys {
		if names, ok := envAliases[k]; ok {
			_ = v.BindEnv(append([]string{k}, names...)...)
			continue
		}
		_ = v.BindEnv(k)
	}

	setDefaults(v)

	flagKeys := map[string]string{"port": "port", "env": "app_env", "log-level": "log_level"}
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			_ = v.BindPFlag(flagKeys[f.Name], f)
		}
	})

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	cfg.CORSAllowedOrigins = splitList(cfg.CORSAllowedOrigins)
	if cfg.Mail.From == "" {
		cfg.Mail.From = cfg.Mail.User
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("config: port %d out of range", c.Port))
	}
	if c.Mail.Port <= 0 || c.Mail.Port > 65535 {
		errs = append(errs, fmt.Errorf("config: mail_port %d out of range", c.Mail.Port))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("config: shutdown_timeout must be positive"))
	}
	return errors.Join(errs...)
}

// splitList accepts both ["a","b"] and a single "a, b" entry from the
// environment.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
