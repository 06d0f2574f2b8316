package config

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	devSecret = "dev-secret"
)

type Server struct {
	Host string
	Port int
	Env  string
}

type DB struct {
	Driver string
	Host   string
	Port   int
	User   string
	Pass   string
	Name   string
	Path   string
}

type JWT struct {
	Secret string
	Issuer string
	ExpMin int
}

type Session struct {
	CookieName string
	SameSite   string
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Login struct {
	MaxFailures int
	Window      time.Duration
}

type Config struct {
	Server      Server
	DB          DB
	JWT         JWT
	Session     Session
	CORSOrigins []string
	Redis       Redis
	Login       Login
	BcryptCost  int
	LogLevel    string
}

func (c *Config) Production() bool { return c.Server.Env == EnvProduction }

// SameSite maps session.same_site onto the cookie attribute.
func (c *Config) SameSite() http.SameSite {
	switch strings.ToLower(c.Session.SameSite) {
	case "lax":
		return http.SameSiteLaxMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteStrictMode
	}
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
	}
	v.SetEnvPrefix("INKPOST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.env", EnvDevelopment)
	v.SetDefault("db.driver", "mysql")
	v.SetDefault("db.host", "127.0.0.1")
	v.SetDefault("db.port", 3306)
	v.SetDefault("db.user", "root")
	v.SetDefault("db.pass", "")
	v.SetDefault("db.name", "inkpost")
	v.SetDefault("db.path", "inkpost.db")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "inkpost")
	v.SetDefault("jwt.exp_min", 60)
	v.SetDefault("session.cookie_name", "token")
	v.SetDefault("session.same_site", "strict")
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("login.max_failures", 5)
	v.SetDefault("login.window", "15m")
	v.SetDefault("bcrypt.cost", 10)
	v.SetDefault("log.level", "info")
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Server: Server{Host: v.GetString("server.host"), Port: v.GetInt("server.port"), Env: strings.ToLower(v.GetString("server.env"))},
		DB: DB{
			Driver: strings.ToLower(v.GetString("db.driver")),
			Host:   v.GetString("db.host"), Port: v.GetInt("db.port"),
			User: v.GetString("db.user"), Pass: v.GetString("db.pass"),
			Name: v.GetString("db.name"), Path: v.GetString("db.path"),
		},
		JWT:         JWT{Secret: v.GetString("jwt.secret"), Issuer: v.GetString("jwt.issuer"), ExpMin: v.GetInt("jwt.exp_min")},
		Session:     Session{CookieName: v.GetString("session.cookie_name"), SameSite: v.GetString("session.same_site")},
		CORSOrigins: v.GetStringSlice("cors.allowed_origins"),
		Redis:       Redis{Addr: v.GetString("redis.addr"), Password: v.GetString("redis.password"), DB: v.GetInt("redis.db")},
		Login:       Login{MaxFailures: v.GetInt("login.max_failures"), Window: v.GetDuration("login.window")},
		BcryptCost:  v.GetInt("bcrypt.cost"),
		LogLevel:    v.GetString("log.level"),
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	if c.Server.Env != EnvProduction {
		c.Server.Env = EnvDevelopment
	}
	if c.JWT.Secret == "" {
		if c.Production() {
			return errors.New("jwt.secret is required in production")
		}
		c.JWT.Secret = devSecret
	}
	if c.JWT.ExpMin <= 0 {
		c.JWT.ExpMin = 60
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = "token"
	}
	switch c.DB.Driver {
	case "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported db.driver %q", c.DB.Driver)
	}
	return nil
}

// Load reads .env, the YAML file at path (optional when path is empty)
// and INKPOST_* environment overrides.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	v := newViper(path)
	if path != "" {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return decode(v)
}

// Watch reloads the file at path whenever it is written and passes the new
// configuration to onChange. Invalid versions are reported to onError and
// skipped.
func Watch(path string, onChange func(*Config), onError func(error)) error {
	if path == "" {
		return nil
	}
	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := decode(v)
		if err != nil {
			if onError != nil {
				onError(fmt.Errorf("reload %s: %w", e.Name, err))
			}
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()
	return nil
}
