package router

import (
	"net/http"

	"footcaster-market-api/internal/handler"
	"footcaster-market-api/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Config holds the configuration for creating a router.
type Config struct {
	Handler         *handler.Handler
	IdentityHandler *handler.IdentityHandler
	MarketHandler   *handler.MarketHandler
	AuctionHandler  *handler.AuctionHandler
	InboxHandler    *handler.InboxHandler
	PvpHandler      *handler.PvpHandler
	ReplayHandler   *handler.ReplayHandler
	EventHandler    *handler.EventHandler
	AdminHandler    *handler.AdminHandler
	AuthMiddleware  func(http.Handler) http.Handler
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "X-API-Key", "X-Login-Key"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// PUBLIC routes (no auth required)
	if cfg.Handler != nil {
		r.Get("/api/status", cfg.Handler.Status)
	}

	// AUTHENTICATED routes
	r.Group(func(r chi.Router) {
		if cfg.AuthMiddleware != nil {
			r.Use(cfg.AuthMiddleware)
		}

		r.Route("/api/v1", func(r chi.Router) {
			// Health check endpoints
			if cfg.Handler != nil {
				r.Get("/health", cfg.Handler.Health)
				r.Get("/ready", cfg.Handler.Ready)
			}

			// Identity, starter pack, inventory and inbox
			if cfg.IdentityHandler != nil {
				r.Route("/users/{fid}", func(r chi.Router) {
					r.Get("/", cfg.IdentityHandler.GetUser)
					r.Post("/wallet", cfg.IdentityHandler.LinkWallet)
					r.Post("/starter-pack", cfg.IdentityHandler.GrantStarterPack)
					r.Get("/inventory", cfg.IdentityHandler.GetInventory)

					if cfg.InboxHandler != nil {
						r.Get("/inbox", cfg.InboxHandler.List)
						r.Post("/inbox/read", cfg.InboxHandler.MarkRead)
					}
				})
			}

			// Market endpoints
			r.Route("/market", func(r chi.Router) {
				if cfg.MarketHandler != nil {
					r.Get("/listings", cfg.MarketHandler.ListListings)
					r.Post("/listings", cfg.MarketHandler.CreateListing)
					r.Post("/listings/{id}/close", cfg.MarketHandler.CloseListing)
				}
				if cfg.AuctionHandler != nil {
					r.Get("/auctions", cfg.AuctionHandler.ListAuctions)
					r.Post("/auctions", cfg.AuctionHandler.CreateAuction)
					r.Get("/auctions/{id}", cfg.AuctionHandler.GetAuction)
					r.Post("/auctions/{id}/bids", cfg.AuctionHandler.PlaceBid)
					r.Post("/auctions/{id}/buy-now", cfg.AuctionHandler.BuyNow)
					r.Post("/auctions/{id}/finalize", cfg.AuctionHandler.Finalize)
				}
			})

			// PvP endpoints
			if cfg.PvpHandler != nil {
				r.Route("/pvp", func(r chi.Router) {
					r.Post("/challenges", cfg.PvpHandler.CreateChallenge)
					r.Get("/matches/{id}", cfg.PvpHandler.GetMatch)
					r.Post("/matches/{id}/accept", cfg.PvpHandler.Accept)
					r.Post("/matches/{id}/result", cfg.PvpHandler.SubmitResult)
				})
			}

			// Replay guard
			if cfg.ReplayHandler != nil {
				r.Post("/tx/consume", cfg.ReplayHandler.ConsumeTransaction)
			}

			// Audit feed
			if cfg.EventHandler != nil {
				r.Get("/events", cfg.EventHandler.List)
			}

			// Admin endpoints
			if cfg.AdminHandler != nil {
				r.Route("/admin", func(r chi.Router) {
					r.Get("/stats", cfg.AdminHandler.GetStats)
					r.Post("/sweep", cfg.AdminHandler.RunSweep)
				})
			}
		})
	})

	return r
}
