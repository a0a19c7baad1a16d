package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/ecomsuite/storefront-client/config"
	"github.com/ecomsuite/storefront-client/internal/adapters/cryptostore"
	"github.com/ecomsuite/storefront-client/internal/adapters/filestore"
	"github.com/ecomsuite/storefront-client/internal/adapters/redisstore"
	"github.com/ecomsuite/storefront-client/internal/adapters/restapi"
	"github.com/ecomsuite/storefront-client/internal/adapters/verifier"
	"github.com/ecomsuite/storefront-client/internal/ports"
	"github.com/ecomsuite/storefront-client/internal/service"
)

// Client is the assembled storefront client: services wired to the REST API
// and the local state store. Construct it once per process with NewClient and
// release it with Close.
type Client struct {
	Session  *service.SessionManager
	Cart     *service.CartReconciler
	Profile  *service.ProfileService
	Catalog  ports.ProductCatalog
	Orders   ports.OrderAPI
	Payments ports.PaymentAPI

	logger   *slog.Logger
	verifier *verifier.Runner
	rdb      *redis.Client

	unsubscribe func()
	pumpCancel  context.CancelFunc
	pumpDone    chan struct{}
}

// ClientOptions groups dependencies for NewClient.
type ClientOptions struct {
	Config    config.AppConfig
	Logger    *slog.Logger
	Navigator ports.Navigator

	// Store overrides the configured storage backend, for tests.
	Store ports.KVStore
}

// sessionRef breaks the construction cycle between the HTTP transport and
// the session manager: the transport needs a token source before the session
// manager, which needs the transport's API adapters, exists.
type sessionRef struct {
	mu sync.RWMutex
	s  *service.SessionManager
}

func (r *sessionRef) set(s *service.SessionManager) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.s = s
}

func (r *sessionRef) Token() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.s == nil {
		return ""
	}
	return r.s.Token()
}

func (r *sessionRef) HandleUnauthorized() {
	r.mu.RLock()
	s := r.s
	r.mu.RUnlock()
	if s != nil {
		s.HandleUnauthorized()
	}
}

// NewClient wires the configured adapters and services together.
func NewClient(opts ClientOptions) (*Client, error) {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{logger: logger}

	store := opts.Store
	if store == nil {
		var err error
		store, err = c.openStore(cfg.Storage)
		if err != nil {
			return nil, err
		}
	}
	if cfg.Storage.Passphrase != "" {
		var err error
		store, err = cryptostore.New(store, cfg.Storage.Passphrase)
		if err != nil {
			return nil, fmt.Errorf("wrap store with encryption: %w", err)
		}
	}

	ref := &sessionRef{}
	httpClient, err := restapi.NewClient(restapi.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Transport: &restapi.BearerTransport{
			Tokens:         ref,
			OnUnauthorized: ref,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("build api client: %w", err)
	}

	session, err := service.NewSessionManager(service.SessionManagerOptions{
		API:       restapi.NewAuthAPI(httpClient),
		Store:     store,
		Navigator: opts.Navigator,
		Logger:    logger,
		LoginPath: cfg.Session.LoginPath,
	})
	if err != nil {
		return nil, err
	}
	ref.set(session)

	cart, err := service.NewCartReconciler(service.CartReconcilerOptions{
		API:           restapi.NewCartAPI(httpClient),
		Catalog:       restapi.NewProductsAPI(httpClient),
		Orders:        restapi.NewOrdersAPI(httpClient),
		Store:         store,
		Logger:        logger,
		MirrorTimeout: cfg.Cart.MirrorTimeout,
	})
	if err != nil {
		return nil, err
	}

	profile, err := service.NewProfileService(service.ProfileServiceOptions{
		API:     restapi.NewUsersAPI(httpClient),
		Session: session,
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}

	c.Session = session
	c.Cart = cart
	c.Profile = profile
	c.Catalog = restapi.NewProductsAPI(httpClient)
	c.Orders = restapi.NewOrdersAPI(httpClient)
	c.Payments = restapi.NewPaymentsAPI(httpClient)

	if cfg.Session.VerifyEnabled {
		c.verifier, err = verifier.NewRunner(verifier.RunnerOptions{
			Session:  session,
			Interval: cfg.Session.VerifyInterval,
			Logger:   logger,
		})
		if err != nil {
			return nil, err
		}
	}

	c.startEventPump()
	return c, nil
}

func (c *Client) openStore(cfg config.StorageConfig) (ports.KVStore, error) {
	switch cfg.Backend {
	case config.StorageRedis:
		c.rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		storeOpts := []redisstore.Option{}
		if cfg.Redis.Prefix != "" {
			storeOpts = append(storeOpts, redisstore.WithPrefix(cfg.Redis.Prefix))
		}
		if cfg.Redis.TTL > 0 {
			storeOpts = append(storeOpts, redisstore.WithTTL(cfg.Redis.TTL))
		}
		return redisstore.New(c.rdb, storeOpts...), nil
	default:
		store, err := filestore.New(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("open state file: %w", err)
		}
		return store, nil
	}
}

// startEventPump reacts to session transitions: sign-in triggers the cart
// merge, sign-out detaches the cart from the server-side mirror.
func (c *Client) startEventPump() {
	unsub, events := c.Session.Subscribe()
	ctx, cancel := context.WithCancel(context.Background())

	c.unsubscribe = unsub
	c.pumpCancel = cancel
	c.pumpDone = make(chan struct{})

	go func() {
		defer close(c.pumpDone)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				switch ev.Type {
				case service.EventAuthenticated:
					if err := c.Cart.SyncWithBackend(ctx); err != nil {
						c.logger.Warn("cart merge failed, will retry on next sign-in", "error", err)
					}
				case service.EventLoggedOut, service.EventSessionExpired:
					c.Cart.MarkLocalOnly()
				}
			}
		}
	}()
}

// Restore loads persisted state: the cart snapshot and, when present, the
// stored session. Call it right after NewClient.
func (c *Client) Restore(ctx context.Context) error {
	if err := c.Cart.Load(ctx); err != nil {
		return err
	}
	if _, err := c.Session.RestoreSession(ctx); err != nil {
		return err
	}
	return nil
}

// Run blocks running the background token verification loop until the
// context is cancelled. When verification is disabled it just waits.
func (c *Client) Run(ctx context.Context) error {
	if c.verifier == nil {
		<-ctx.Done()
		return nil
	}
	return c.verifier.Run(ctx)
}

// Close flushes outstanding cart mirror writes and releases resources.
func (c *Client) Close() error {
	if c.pumpCancel != nil {
		c.pumpCancel()
		<-c.pumpDone
	}
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
	c.Cart.Flush()
	if c.rdb != nil {
		return c.rdb.Close()
	}
	return nil
}
