package main

import (
	"context"
	"log"
	"net/http"

	"github.com/pitabwire/frame"
	"github.com/pitabwire/frame/config"

	bvconfig "github.com/buddybot/buddyvoice/config"
	"github.com/buddybot/buddyvoice/internal/voice/catalog"
	"github.com/buddybot/buddyvoice/internal/voice/enhance"
	voicehandler "github.com/buddybot/buddyvoice/internal/voice/handler"
	"github.com/buddybot/buddyvoice/internal/voice/pipeline"
	"github.com/buddybot/buddyvoice/internal/voice/vendors"
	"github.com/buddybot/buddyvoice/pkg/events"

	// Register TTS vendor backends via init().
	_ "github.com/buddybot/buddyvoice/internal/voice/vendors/cambai"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadWithOIDC[bvconfig.VoiceConfig](ctx)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	eventRef := cfg.GetEventsQueueName()
	eventURL := cfg.GetEventsQueueURL()

	ctx, srv := frame.NewService(
		frame.WithConfig(&cfg),
		frame.WithName("buddyvoice"),
		frame.WithDatastore(),
		frame.WithRegisterPublisher(eventRef, eventURL),
	)
	defer srv.Stop(ctx)

	pool, err := srv.WorkManager().GetPool()
	if err != nil {
		log.Fatalf("getting worker pool: %v", err)
	}

	vendor, err := vendors.TTS.Create(cfg.TTSVendor, cfg.VendorConfig())
	if err != nil {
		log.Fatalf("creating TTS vendor %q: %v", cfg.TTSVendor, err)
	}

	repo := catalog.NewRepository(
		srv.DatastoreManager().GetPool(ctx, "__default__pool_name__"),
	)
	if err := repo.Migrate(ctx); err != nil {
		log.Fatalf("migrating voice cache schema: %v", err)
	}

	loader := enhance.NewLoader(cfg.VoiceTemplateDir)
	if err := loader.LoadAll(); err != nil {
		log.Fatalf("loading voice templates: %v", err)
	}
	if cfg.TemplateHotReload && cfg.VoiceTemplateDir != "" {
		if err := pool.Submit(ctx, func() {
			_ = loader.WatchAndReload(ctx.Done())
		}); err != nil {
			log.Fatalf("starting template watcher: %v", err)
		}
	}

	pub := events.NewPublisher(srv.QueueManager(), "buddyvoice", eventRef)

	pipe, err := pipeline.New(vendor, repo, enhance.NewEnhancer(loader, cfg.EnhancementSeed),
		pipeline.WithEventPublisher(pub))
	if err != nil {
		log.Fatalf("creating voice pipeline: %v", err)
	}
	defer pipe.Close()

	if cfg.RefreshOnStartup {
		pipe.Initialize(ctx)
	}

	mux := http.NewServeMux()
	voicehandler.NewVoiceHandler(pipe, repo, pool).RegisterRoutes(mux)

	srv.Init(ctx, frame.WithHTTPHandler(mux))

	if err := srv.Run(ctx, ""); err != nil {
		log.Fatalf("service exited: %v", err)
	}
}
