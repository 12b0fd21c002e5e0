package common

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"emperror.dev/errors"
	"github.com/guildcal/guildcal/common/config"
	"github.com/jmoiron/sqlx"
	"github.com/mediocregopher/radix/v3"

	// postgres driver
	_ "github.com/lib/pq"
)

const (
	VERSION = "1.2.0"
)

var (
	// PQ is the postgres connection used by all plugins
	PQ *sql.DB

	// SQLX wraps PQ for struct scanning
	SQLX *sqlx.DB

	RedisPool *radix.Pool
	RedisAddr string

	Testing = os.Getenv("GUILDCAL_TESTING") != ""

	logger = GetFixedPrefixLogger("common")
)

// CoreInit sets up the essentials: config and redis.
// Has to be called before any other function in this package.
func CoreInit(loadConfig bool) error {
	config.AddSource(&config.EnvSource{})

	if loadConfig {
		config.Load()
	}

	RedisAddr = confRedis.GetString()

	err := connectRedis(RedisAddr)
	if err != nil {
		return err
	}

	if loadConfig {
		// redis holds runtime overrides set through the control panel,
		// it takes precedence over the environment
		config.AddSource(&config.RedisConfigSource{Pool: RedisPool})
		config.Load()
	}

	return nil
}

// Init connects to postgres and runs all the queued schema initializations.
// CoreInit has to be called before this.
func Init() error {
	err := connectDB(
		confPQHost.GetString(),
		confPQUsername.GetString(),
		confPQPassword.GetString(),
		confPQDB.GetString(),
		confPQSSLMode.GetString(),
		confMaxSQLConns.GetInt())
	if err != nil {
		return errors.WithMessage(err, "connectDB")
	}

	InitSchemas("core", CoreSchemas...)
	initQueuedSchemas()

	return nil
}

func connectRedis(addr string) (err error) {
	// bumped timeouts as schema init can hold the lock for a while
	opts := []radix.DialOpt{
		radix.DialReadTimeout(time.Minute),
		radix.DialWriteTimeout(time.Minute),
	}

	RedisPool, err = radix.NewPool("tcp", addr, confRedisPoolSize.GetInt(), radix.PoolConnFunc(func(network, addr string) (radix.Conn, error) {
		return radix.Dial(network, addr, opts...)
	}))

	if err != nil {
		logger.WithError(err).Error("failed initializing redis pool")
	}

	return
}

func connectDB(host, user, pass, dbName, sslMode string, maxConns int) error {
	if host == "" {
		host = "localhost"
	}

	passwordPart := ""
	if pass != "" {
		passwordPart = " password='" + pass + "'"
	}

	db, err := sql.Open("postgres", fmt.Sprintf("host=%s user=%s dbname=%s sslmode=%s%s", host, user, dbName, sslMode, passwordPart))
	if err != nil {
		return errors.WithMessage(err, "sql.Open")
	}

	PQ = db
	PQ.SetMaxOpenConns(maxConns)
	PQ.SetMaxIdleConns(maxConns)
	logger.Info("set max postgres connections to ", maxConns)

	SQLX = sqlx.NewDb(PQ, "postgres")

	return PQ.Ping()
}
