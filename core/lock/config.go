package lock

// Config holds configuration for the Redis connection used for locking.
type Config struct {
	// Addr is the Redis address (host:port). Empty selects the in-process locker.
	Addr string `mapstructure:"addr" default:""`
	// Password is the Redis password.
	Password string `mapstructure:"password" default:""`
	// DB is the Redis logical database.
	DB int `mapstructure:"db" default:"0"`
	// Prefix namespaces every lock key.
	Prefix string `mapstructure:"prefix" default:"variant-manager:lock:"`
}
