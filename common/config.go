package common

import (
	"github.com/guildcal/guildcal/common/config"
)

var (
	confRedis         = config.RegisterOption("guildcal.redis", "Address of the redis server", "localhost:6379")
	confRedisPoolSize = config.RegisterOption("guildcal.redis_pool_size", "Number of connections in the redis pool", 10)

	confPQHost     = config.RegisterOption("guildcal.pqhost", "Postgres host", "localhost")
	confPQUsername = config.RegisterOption("guildcal.pqusername", "Postgres user", "postgres")
	confPQPassword = config.RegisterOption("guildcal.pqpassword", "Postgres password", "")
	confPQDB       = config.RegisterOption("guildcal.pqdb", "Postgres database name", "guildcal")
	confPQSSLMode  = config.RegisterOption("guildcal.pq_ssl_mode", "Postgres ssl mode", "disable")

	confMaxSQLConns = config.RegisterOption("guildcal.max_sql_conns", "Max amount of postgres connections", 3)

	confNoSchemaInit = config.RegisterOption("guildcal.no_schema_init", "Skip schema initialization, for processes running against an already initialized database", false)
)
