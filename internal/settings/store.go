package settings

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/goliatone/go-quoteform/pkg/store"
	"github.com/goliatone/go-quoteform/pkg/store/natsstore"
	"github.com/goliatone/go-quoteform/pkg/store/postgres"
	"github.com/goliatone/go-quoteform/pkg/store/redisstore"
	"github.com/goliatone/go-quoteform/pkg/store/rest"
	"github.com/goliatone/go-quoteform/pkg/store/s3store"
	"github.com/goliatone/go-quoteform/pkg/store/sqlite"
)

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverS3       = "s3"
	DriverNATS     = "nats"
	DriverRedis    = "redis"
	DriverREST     = "rest"
)

// Drivers lists the accepted store driver names.
var Drivers = []string{DriverMemory, DriverPostgres, DriverSQLite, DriverS3, DriverNATS, DriverRedis, DriverREST}

// ErrUnknownDriver is returned for an unsupported store driver.
var ErrUnknownDriver = errors.New("settings: unknown store driver")

// ErrMissingSetting is returned when a driver lacks a required setting.
var ErrMissingSetting = errors.New("settings: missing store setting")

// OpenStore builds the record store selected by s for table. The returned
// closer releases connections and is never nil.
func OpenStore(ctx context.Context, s Store, table string) (store.RecordStore, func() error, error) {
	noop := func() error { return nil }

	var (
		recordStore store.RecordStore
		closer      io.Closer
		err         error
	)
	switch s.Driver {
	case "", DriverMemory:
		recordStore = store.NewMemory()
	case DriverPostgres:
		if s.DSN == "" {
			return nil, noop, fmt.Errorf("%w: store.dsn for %s", ErrMissingSetting, s.Driver)
		}
		var pg *postgres.Store
		pg, err = postgres.Open(ctx, s.DSN, table)
		recordStore, closer = pg, pg
	case DriverSQLite:
		dsn := s.DSN
		if dsn == "" {
			dsn = "quoteform.db"
		}
		var lite *sqlite.Store
		lite, err = sqlite.Open(ctx, dsn, table)
		recordStore, closer = lite, lite
	case DriverS3:
		if s.S3.Bucket == "" {
			return nil, noop, fmt.Errorf("%w: store.s3.bucket", ErrMissingSetting)
		}
		recordStore, err = s3store.Open(ctx, s3store.Options{
			Bucket:   s.S3.Bucket,
			Prefix:   s.S3.Prefix,
			Region:   s.S3.Region,
			Endpoint: s.S3.Endpoint,
		})
	case DriverNATS:
		var ns *natsstore.Store
		ns, err = natsstore.Open(ctx, s.NATS.URL, s.NATS.Stream, s.NATS.Subject)
		recordStore, closer = ns, ns
	case DriverRedis:
		var rs *redisstore.Store
		rs, err = redisstore.Open(s.Redis.URL, s.Redis.Stream)
		recordStore, closer = rs, rs
	case DriverREST:
		if s.REST.URL == "" {
			return nil, noop, fmt.Errorf("%w: store.rest.url", ErrMissingSetting)
		}
		var opts []rest.Option
		if s.REST.APIKey != "" {
			opts = append(opts, rest.WithAPIKey(s.REST.APIKey))
		}
		recordStore, err = rest.New(s.REST.URL, opts...)
	default:
		return nil, noop, fmt.Errorf("%w %q (want one of %v)", ErrUnknownDriver, s.Driver, Drivers)
	}
	if err != nil {
		return nil, noop, err
	}

	if s.RateLimit > 0 {
		recordStore = store.NewRateLimited(recordStore, s.RateLimit)
	}
	if closer == nil {
		return recordStore, noop, nil
	}
	return recordStore, closer.Close, nil
}
