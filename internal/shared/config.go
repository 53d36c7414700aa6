package shared

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string `envconfig:"APP_ENV" default:"prod"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`
	MetricsAddr string `envconfig:"METRICS_ADDR"` // empty: /metrics only on the API router

	GatewayBase       string        `envconfig:"GATEWAY_BASE_URL" default:"https://suite-be.vercel.app"`
	GatewayKey        string        `envconfig:"GATEWAY_API_KEY"`
	GatewayRPS        int           `envconfig:"GATEWAY_RPS" default:"5"`
	GatewayTimeout    time.Duration `envconfig:"GATEWAY_TIMEOUT" default:"10s"`
	GatewayMaxRetries int           `envconfig:"GATEWAY_MAX_RETRIES" default:"3"`

	SuiRPCURL   string `envconfig:"SUI_RPC_URL" default:"https://fullnode.testnet.sui.io:443"`
	SuiCoinType string `envconfig:"SUI_COIN_TYPE" default:"0x2::sui::SUI"`

	RedisAddr string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPass string `envconfig:"REDIS_PASSWORD"`
	RedisDB   int    `envconfig:"REDIS_DB" default:"0"`

	CacheTTL      time.Duration `envconfig:"CACHE_TTL" default:"5m"`
	RoomsCacheTTL time.Duration `envconfig:"ROOMS_CACHE_TTL" default:"2m"`
	SessionKey    string        `envconfig:"SESSION_KEY" default:"sui-wallet-user"`

	MySQLDSN      string `envconfig:"MYSQL_DSN"` // empty disables booking persistence; parseTime is forced on
	MigrationsDir string `envconfig:"MIGRATIONS_DIR" default:"migrations/mysql"`

	RefreshSchedule string   `envconfig:"REFRESH_SCHEDULE" default:"@every 5m"`
	Workers         int      `envconfig:"WORKERS" default:"4"`
	CORSOrigins     []string `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`
}

// Parse reads the environment, after loading files (default .env) when present.
func Parse(files ...string) (Config, error) {
	// a missing .env is normal outside local dev
	if err := godotenv.Load(files...); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, err
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	return c, nil
}

func Load() Config {
	c, err := Parse()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if c.MySQLDSN == "" {
		log.Warn().Msg("MYSQL_DSN is empty; bookings are kept in memory only")
	}
	return c
}
