package main

import (
	"context"
	"errors"
	"log"
	"net/http"

	adapthttp "vbay/internal/adapter/http"
	"vbay/internal/adapter/localstore"
	"vbay/internal/adapter/memory"
	"vbay/internal/adapter/postgres"
	"vbay/internal/adapter/sso"
	"vbay/internal/app"
	"vbay/internal/config"
	"vbay/internal/domain"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	var (
		listingRepo domain.ListingRepository
		cartRepo    domain.CartRepository
		sessionRepo domain.SessionRepository
	)

	switch cfg.Storage {
	case config.StoragePostgres:
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db open: %v", err)
		}
		defer func() { _ = db.Close() }()
		listingRepo = db
		cartRepo = postgres.NewCartRepo(db)
		sessionRepo = postgres.NewSessionRepo(db)

	case config.StorageMemory:
		db := memory.New()
		db.Seed(localstore.SeedListings())
		listingRepo = db
		cartRepo = db.NewCartRepo()
		sessionRepo = db

	default:
		store, err := localstore.Open(cfg.DataDir)
		if err != nil {
			log.Fatalf("open data dir: %v", err)
		}
		store.OnWriteError(func(err error) {
			log.Printf("warning: persistence write failed: %v", err)
		})
		listingRepo = store
		cartRepo = store.NewCartRepo()
		sessionRepo = store
	}

	var (
		validator    domain.TicketValidator
		waitRedirect func(context.Context) error
	)
	if cfg.SSOMode == config.SSOOIDC {
		oidc, err := sso.NewOIDC(context.Background(), cfg.OIDCIssuer, cfg.OIDCClientID, cfg.OIDCSecret, cfg.OIDCRedirect)
		if err != nil {
			log.Fatalf("oidc discovery: %v", err)
		}
		validator = oidc
	} else {
		sim := sso.NewSimulator()
		sim.RedirectDelay = cfg.RedirectDelay
		sim.ValidateDelay = cfg.ValidateDelay
		validator = sim
		waitRedirect = sim.WaitRedirect
	}

	cartSvc := app.NewCartService(cartRepo)
	listingSvc := app.NewListingService(listingRepo, cartSvc).WithSubmitDelay(cfg.SubmitDelay)
	authSvc := app.NewAuthService(validator, sessionRepo, cartSvc)
	if cfg.DebugPassHash != "" {
		authSvc = authSvc.WithDebugLogin(cfg.DebugPassHash)
	}

	srv := adapthttp.New(listingSvc, cartSvc, authSvc, cfg.WebDir)
	if waitRedirect != nil {
		srv = srv.WithRedirectWait(waitRedirect)
	}

	log.Printf("listening on %s (storage=%s, sso=%s)", cfg.Addr, cfg.Storage, cfg.SSOMode)
	if err := http.ListenAndServe(cfg.Addr, srv.Handler()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
