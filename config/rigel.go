package config

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/remiges-tech/rigel"
	"github.com/remiges-tech/rigel/etcd"
)

// Rigel keys read into AppConfig.
const (
	KeyServerPort    = "server.port"
	KeyDatabaseURL   = "database.url"
	KeyStoreDriver   = "store.driver"
	KeyUserAgeLimit  = "user.age.limit"
	KeyLogDebug      = "log.debug"
	rigelReadTimeout = 5 * time.Second
)

// RigelGetter is the part of *rigel.Rigel the Rigel source uses.
type RigelGetter interface {
	Get(ctx context.Context, key string) (string, error)
}

// Rigel reads configuration values from a Rigel schema stored in etcd.
type Rigel struct {
	Client RigelGetter
}

// NewRigel connects to etcd and returns a Rigel source for one config of
// app/module at schema version.
func NewRigel(etcdEndpoints, app, module string, version int, configName string) (*Rigel, error) {
	etcdStorage, err := etcd.NewEtcdStorage(strings.Split(etcdEndpoints, ","))
	if err != nil {
		return nil, fmt.Errorf("failed to create EtcdStorage: %w", err)
	}

	rigelClient := rigel.New(etcdStorage, app, module, version, configName)
	return &Rigel{Client: rigelClient}, nil
}

func (r *Rigel) Check() error {
	if r.Client == nil {
		return errors.New("rigel client is not set")
	}
	return nil
}

func (r *Rigel) Get(key string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), rigelReadTimeout)
	defer cancel()
	return r.Client.Get(ctx, key)
}

// LoadConfig fills c, which must be an *AppConfig. Keys missing from Rigel
// leave the corresponding field untouched.
func (r *Rigel) LoadConfig(c any) error {
	appConfig, ok := c.(*AppConfig)
	if !ok {
		return fmt.Errorf("rigel source can only load *config.AppConfig, got %T", c)
	}

	if v, ok := r.lookup(KeyServerPort); ok {
		appConfig.AppServerPort = v
	}
	if v, ok := r.lookup(KeyDatabaseURL); ok {
		appConfig.DBConnURL = v
	}
	if v, ok := r.lookup(KeyStoreDriver); ok {
		appConfig.StoreDriver = v
	}
	if v, ok := r.lookup(KeyUserAgeLimit); ok {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", KeyUserAgeLimit, v, err)
		}
		appConfig.UserAgeLimit = &limit
	}
	if v, ok := r.lookup(KeyLogDebug); ok {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", KeyLogDebug, v, err)
		}
		appConfig.Debug = debug
	}
	return nil
}

func (r *Rigel) lookup(key string) (string, bool) {
	v, err := r.Get(key)
	if err != nil || v == "" {
		return "", false
	}
	return v, true
}
