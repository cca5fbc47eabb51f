package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr        string
	Port              string
	DatabasePath      string
	SessionSecret     string
	GinMode           string
	SuperRootUserName string
	SuperRootPassword string
	SiteBaseURL       string

	DataDir           string
	AssetsDir         string
	AssetsURLPath     string
	CompactBreakpoint int
	PageCooldown      time.Duration
	MountTTL          time.Duration
	WatchContent      bool
}

// EnvPrefix is prepended to every key when read from the environment.
// The unprefixed names are accepted as well.
const EnvPrefix = "FOLIO"

var defaults = map[string]any{
	"port":                 "8080",
	"listen_addr":          "",
	"database_path":        "folio.db",
	"session_secret":       "folio-dev-secret",
	"gin_mode":             "release",
	"site_base_url":        "http://localhost:8080",
	"super_root_user_name": "",
	"super_root_password":  "",
	"data_dir":             "data",
	"assets_dir":           "assets",
	"assets_url_path":      "/assets",
	"compact_breakpoint":   768,
	"page_cooldown":        "500ms",
	"mount_ttl":            "30m",
	"watch_content":        true,
}

// NewViper returns a viper instance with defaults and environment bindings.
func NewViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
		envName := strings.ToUpper(key)
		_ = v.BindEnv(key, EnvPrefix+"_"+envName, envName)
	}
	return v
}

// ReadFile merges an optional YAML config file into v. An empty path looks
// for ./config.yaml and ignores its absence.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && path == "" {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
func Load() AppConfig {
	return FromViper(NewViper())
}

// FromViper builds the configuration from v, trimming values and falling
// back to defaults for blanks and invalid numbers.
func FromViper(v *viper.Viper) AppConfig {
	str := func(key string) string {
		value := strings.TrimSpace(v.GetString(key))
		if value == "" {
			value = fmt.Sprint(defaults[key])
		}
		return value
	}

	port := str("port")
	listenAddr := strings.TrimSpace(v.GetString("listen_addr"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	breakpoint := v.GetInt("compact_breakpoint")
	if breakpoint <= 0 {
		breakpoint = defaults["compact_breakpoint"].(int)
	}

	// Zero keeps the pager default; "off" or a negative value disables it.
	cooldown := v.GetDuration("page_cooldown")
	if raw := strings.ToLower(strings.TrimSpace(v.GetString("page_cooldown"))); raw == "off" || raw == "none" || cooldown < 0 {
		cooldown = -1
	}

	mountTTL := v.GetDuration("mount_ttl")
	if mountTTL <= 0 {
		mountTTL = 30 * time.Minute
	}

	assetsURLPath := "/" + strings.Trim(str("assets_url_path"), "/")

	return AppConfig{
		ListenAddr:        listenAddr,
		Port:              port,
		DatabasePath:      str("database_path"),
		SessionSecret:     str("session_secret"),
		GinMode:           str("gin_mode"),
		SuperRootUserName: strings.TrimSpace(v.GetString("super_root_user_name")),
		SuperRootPassword: strings.TrimSpace(v.GetString("super_root_password")),
		SiteBaseURL:       strings.TrimRight(str("site_base_url"), "/"),
		DataDir:           str("data_dir"),
		AssetsDir:         str("assets_dir"),
		AssetsURLPath:     assetsURLPath,
		CompactBreakpoint: breakpoint,
		PageCooldown:      cooldown,
		MountTTL:          mountTTL,
		WatchContent:      v.GetBool("watch_content"),
	}
}
