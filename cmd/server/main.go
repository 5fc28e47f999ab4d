package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/portaldev/portal-admin/internal/api"
	"github.com/portaldev/portal-admin/internal/auth"
	"github.com/portaldev/portal-admin/internal/config"
	"github.com/portaldev/portal-admin/internal/content"
	"github.com/portaldev/portal-admin/internal/mailer"
	"github.com/portaldev/portal-admin/internal/newsletter"
	"github.com/portaldev/portal-admin/internal/notify"
	"github.com/portaldev/portal-admin/internal/pricing"
	"github.com/portaldev/portal-admin/internal/repository/postgres"
	"github.com/portaldev/portal-admin/internal/seed"
	"github.com/portaldev/portal-admin/internal/showcase"
	"github.com/portaldev/portal-admin/internal/suppression"
	"github.com/portaldev/portal-admin/internal/theme"
	"github.com/portaldev/portal-admin/internal/users"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/redis/go-redis/v9"
)

// checkPortAvailable verifies that the target port is not already in use.
func checkPortAvailable(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use (addr %s): %v", port, addr, err)
	}
	ln.Close()
	return nil
}

func main() {
	log.Println("Portal Admin Server starting")

	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	host := cfg.Server.GetHost()
	port := cfg.Server.Port
	if err := checkPortAvailable(host, port); err != nil {
		log.Fatalf("Pre-flight check FAILED: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Newsletter stores: Postgres when configured, in-memory otherwise
	var (
		subscriberRepo newsletter.SubscriberRepository
		campaignRepo   newsletter.CampaignRepository
		memSubscribers *newsletter.SubscriberStore
		memCampaigns   *newsletter.CampaignStore
		pgSuppressions *postgres.SuppressionRepo
	)
	if cfg.Postgres.Enabled {
		db, err := sql.Open("postgres", cfg.Postgres.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		if err := db.PingContext(ctx); err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			log.Fatalf("Failed to ensure schema: %v", err)
		}
		subscriberRepo = postgres.NewSubscriberRepo(db)
		campaignRepo = postgres.NewCampaignRepo(db)
		pgSuppressions = postgres.NewSuppressionRepo(db)
		log.Printf("[storage] using Postgres persistence")
	} else {
		memSubscribers = newsletter.NewSubscriberStore()
		memCampaigns = newsletter.NewCampaignStore(memSubscribers)
		subscriberRepo = memSubscribers
		campaignRepo = memCampaigns
		log.Printf("[storage] using in-memory stores")
	}

	// Suppression set: Redis when configured so unsubscribes are shared
	// across instances
	var suppressions suppression.Store
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis at %s: %v", cfg.Redis.Addr, err)
		}
		suppressions = suppression.NewRedisStore(client)
		log.Printf("[suppression] using Redis at %s", cfg.Redis.Addr)
	} else if pgSuppressions != nil {
		suppressions = pgSuppressions
		log.Printf("[suppression] using Postgres")
	} else {
		suppressions = suppression.NewMemoryStore()
	}

	// Outbound mail for test sends
	var sender mailer.Sender
	if cfg.SES.Enabled {
		from := fmt.Sprintf("%s <%s>", cfg.Newsletter.FromName, cfg.Newsletter.FromEmail)
		sender, err = mailer.NewSESSender(ctx, cfg.SES.Region, cfg.SES.AccessKey, cfg.SES.SecretKey, from)
		if err != nil {
			log.Fatalf("Failed to initialize SES sender: %v", err)
		}
		log.Printf("[mailer] SES sender ready (region %s)", cfg.SES.Region)
	} else {
		sender = mailer.NewMockSender()
		log.Printf("[mailer] SES disabled, test sends are recorded only")
	}

	// Supplemental stores
	notifications := notify.NewCenter()
	posts := content.NewBlogStore()
	userStore := users.NewStore()
	showcases := showcase.NewStore()
	plans := pricing.NewStore()
	themeStore := theme.NewStore()

	templates := newsletter.NewTemplateService()
	editor := newsletter.NewEditorService(campaignRepo, subscriberRepo, templates, sender, suppressions, notifications)
	digest := newsletter.NewDigestBuilder(campaignRepo)

	// Demo fixtures for local development
	if cfg.Seed.Enabled && memSubscribers != nil {
		seed.Load(seed.Stores{
			Subscribers:   memSubscribers,
			Campaigns:     memCampaigns,
			Posts:         posts,
			Users:         userStore,
			Showcases:     showcases,
			Plans:         plans,
			Notifications: notifications,
		}, time.Now())
	}

	handlers := api.NewHandlers(subscriberRepo, campaignRepo, editor)
	handlers.SetDigestBuilder(digest, cfg.Newsletter.FeedURL)
	handlers.SetSuppressionStore(suppressions)
	handlers.SetBlogStore(posts)
	handlers.SetUserStore(userStore)
	handlers.SetShowcaseStore(showcases)
	handlers.SetPricingStore(plans)
	handlers.SetThemeStore(themeStore)
	handlers.SetNotificationCenter(notifications)

	// Google OAuth when configured
	var authManager *auth.Manager
	if cfg.Auth.Enabled && cfg.Auth.GoogleClientID != "" {
		authManager = auth.NewManager(&cfg.Auth, cfg.Server.BaseURL, userStore)
		go authManager.CleanupExpiredSessions(ctx)
		log.Printf("[auth] Google OAuth enabled (domain %q)", cfg.Auth.AllowedDomain)
	} else {
		log.Printf("[auth] authentication disabled")
	}

	server := api.NewServer(cfg.Server, handlers, authManager)

	addr := fmt.Sprintf("%s:%d", host, port)
	go func() {
		log.Printf("[server] listening on http://%s", addr)
		if err := server.ListenAndServe(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Printf("[server] received %s, shutting down", sig)

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[server] shutdown error: %v", err)
	}
	log.Println("[server] stopped")
}
