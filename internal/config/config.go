package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `yaml:"env" env-default:"prod"`
	LedgerFile string `yaml:"ledger_file" env-default:"data.json"`
	AuditFile  string `yaml:"audit_file" env-default:"reports_log.json"`
	HTTPServer `yaml:"http_server"`

	// ID операторов, которым разрешено редактировать данные
	AdminIDs    []int64 `yaml:"admin_ids" env:"ADMIN_IDS" env-required:"true"`
	GroupChatID int64   `yaml:"group_chat_id" env:"GROUP_CHAT_ID" env-required:"true"`

	// Время ежедневной отправки отчёта (локальное)
	ReportHour   int `yaml:"report_hour" env-default:"18"`
	ReportMinute int `yaml:"report_minute" env-default:"0"`

	// Куда шлём исходящие сообщения (шлюз мессенджера)
	OutboundURL string `yaml:"outbound_url" env:"OUTBOUND_URL" env-required:"true"`

	AdminLogin string `yaml:"admin_login"`
	AdminPass  string `yaml:"admin_pass"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env-default:"localhost:4002"`
	Timeout     time.Duration `yaml:"timeout"  env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout"  env-default:"60s"`
}

func MustConfig() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/local.yaml"
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return &cfg
}
