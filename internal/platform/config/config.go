package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

type Config struct {
	APIPort string
	AppEnv  string
	JWTKey  []byte
	JWTExp  time.Duration

	StorageDriver string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSslMode     string
	DBConnStr     string

	SessionDriver       string
	RedisAddr           string
	RedisPassword       string
	RedisDB             int
	SessionTTL          time.Duration
	SessionCookieSecure bool

	QuizQuestionLimit int
	SubmitLockTTL     time.Duration

	RollbarToken string
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	AppConfig = FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	v.SetDefault("API_PORT", "8080")
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("JWT_SECRET", "defaultsecret")
	v.SetDefault("JWT_EXPIRATION_HOURS", 72)

	v.SetDefault("STORAGE_DRIVER", DriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "user")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "smart_edu_quiz")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("SESSION_DRIVER", DriverRedis)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SESSION_TTL_HOURS", 336)
	v.SetDefault("SESSION_COOKIE_SECURE", false)

	v.SetDefault("QUIZ_QUESTION_LIMIT", 30)
	v.SetDefault("SUBMIT_LOCK_TTL_SECONDS", 30)

	v.SetDefault("ROLLBAR_TOKEN", "")

	v.AutomaticEnv()
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) *Config {
	c := &Config{
		APIPort: v.GetString("API_PORT"),
		AppEnv:  v.GetString("APP_ENV"),
		JWTKey:  []byte(v.GetString("JWT_SECRET")),
		JWTExp:  time.Duration(v.GetInt("JWT_EXPIRATION_HOURS")) * time.Hour,

		StorageDriver: v.GetString("STORAGE_DRIVER"),
		DBHost:        v.GetString("DB_HOST"),
		DBPort:        v.GetString("DB_PORT"),
		DBUser:        v.GetString("DB_USER"),
		DBPassword:    v.GetString("DB_PASSWORD"),
		DBName:        v.GetString("DB_NAME"),
		DBSslMode:     v.GetString("DB_SSLMODE"),

		SessionDriver:       v.GetString("SESSION_DRIVER"),
		RedisAddr:           v.GetString("REDIS_ADDR"),
		RedisPassword:       v.GetString("REDIS_PASSWORD"),
		RedisDB:             v.GetInt("REDIS_DB"),
		SessionTTL:          time.Duration(v.GetInt("SESSION_TTL_HOURS")) * time.Hour,
		SessionCookieSecure: v.GetBool("SESSION_COOKIE_SECURE"),

		QuizQuestionLimit: v.GetInt("QUIZ_QUESTION_LIMIT"),
		SubmitLockTTL:     time.Duration(v.GetInt("SUBMIT_LOCK_TTL_SECONDS")) * time.Second,

		RollbarToken: v.GetString("ROLLBAR_TOKEN"),
	}

	c.DBConnStr = "host=" + c.DBHost +
		" port=" + c.DBPort +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" sslmode=" + c.DBSslMode
	return c
}
