package prefs

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/matzehuels/barbell/pkg/errors"
)

// Backend names accepted by [Open].
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendBolt   = "bolt"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Backends lists the accepted backend names.
func Backends() []string {
	return []string{BackendNone, BackendMemory, BackendFile, BackendBolt, BackendRedis, BackendMongo}
}

// Config selects and configures a storage backend.
type Config struct {
	Backend string `toml:"backend"`

	// Dir is the directory for the file backend and the default location
	// of the bolt database.
	Dir string `toml:"dir"`
	// BoltPath overrides the bolt database file.
	BoltPath string `toml:"bolt_path"`

	RedisAddr     string        `toml:"redis_addr"`
	RedisPassword string        `toml:"redis_password"`
	RedisDB       int           `toml:"redis_db"`
	RedisTTL      time.Duration `toml:"redis_ttl"`

	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// Open creates the backend named by cfg.Backend, instrumented for
// observability. BackendNone returns a nil Storage, which [New] accepts.
func Open(ctx context.Context, cfg Config) (Storage, error) {
	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))

	var (
		s   Storage
		err error
	)
	switch backend {
	case BackendNone:
		return nil, nil
	case BackendMemory:
		s = NewMemoryStorage()
	case "", BackendFile:
		backend = BackendFile
		s, err = NewFileStorage(cfg.Dir)
	case BackendBolt:
		path := cfg.BoltPath
		if path == "" {
			if cfg.Dir == "" {
				return nil, errors.New(errors.ErrCodeInvalidStorage, "bolt backend needs a dir or bolt_path")
			}
			path = filepath.Join(cfg.Dir, "prefs.db")
		}
		s, err = NewBoltStorage(path)
	case BackendRedis:
		if cfg.RedisAddr == "" {
			return nil, errors.New(errors.ErrCodeInvalidStorage, "redis backend needs redis_addr")
		}
		s, err = NewRedisStorage(ctx, RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.RedisTTL,
		})
	case BackendMongo:
		if cfg.MongoURI == "" {
			return nil, errors.New(errors.ErrCodeInvalidStorage, "mongo backend needs mongo_uri")
		}
		s, err = NewMongoStorage(ctx, MongoOptions{
			URI:        cfg.MongoURI,
			Database:   cfg.MongoDatabase,
			Collection: cfg.MongoCollection,
		})
	default:
		return nil, errors.New(errors.ErrCodeInvalidStorage, "unknown storage backend %q (available: %s)",
			cfg.Backend, strings.Join(Backends(), ", "))
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidStorage, err, "open %s storage", backend)
	}
	return Instrument(s, backend), nil
}
