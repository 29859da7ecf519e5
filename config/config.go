package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Debug            bool   `envconfig:"debug"`
	Port             int    `envconfig:"port" default:"8080"`
	Env              string `envconfig:"env"`
	Host             string `envconfig:"host"`
	PostgresHost     string `envconfig:"postgres_host"`
	PostgresUser     string `envconfig:"postgres_user"`
	PostgresDB       string `envconfig:"postgres_db"`
	PostgresPort     int    `envconfig:"postgres_port"`
	PostgresPassword string `envconfig:"postgres_password"`
	JWTSecret        string `envconfig:"jwt_secret"`
	RedisAddr        string `envconfig:"redis_addr"`

	// Engine tuning. Daily limit and premium pricing are configuration,
	// not engine logic.
	FreeDailyReportLimit int           `envconfig:"free_daily_report_limit" default:"3"`
	PremiumPointCost     int           `envconfig:"premium_point_cost" default:"1000"`
	PremiumDays          int           `envconfig:"premium_days" default:"7"`
	SweepInterval        time.Duration `envconfig:"sweep_interval" default:"5m"`

	// Importer settings (cmd/importer only).
	OverpassURL       string  `envconfig:"overpass_url" default:"https://lz4.overpass-api.de/api/interpreter"`
	ImportCenterLat   float64 `envconfig:"import_center_lat" default:"-32.9750"`
	ImportCenterLng   float64 `envconfig:"import_center_lng" default:"-68.7830"`
	ImportRadiusM     int     `envconfig:"import_radius_m" default:"60000"`
	ImportMinSpacingM float64 `envconfig:"import_min_spacing_m" default:"300"`
}

func Load() (*Config, error) {
	env := os.Getenv("GIN_MODE")
	if env != "release" {
		if err := godotenv.Load("./.env"); err != nil {
			log.Printf("couldn't load env vars: %v", err)
		}
	}

	c := &Config{}
	err := envconfig.Process("rutalerta", c)
	if err != nil {
		return nil, err
	}
	return c, nil
}
