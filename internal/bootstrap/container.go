package bootstrap

import (
	"context"
	"log"
	"time"

	"ai-contact-search-be/internal/config"
	"ai-contact-search-be/internal/controller"
	"ai-contact-search-be/internal/pkg/logger"
	"ai-contact-search-be/internal/repository/contract"
	"ai-contact-search-be/internal/repository/implementation"
	"ai-contact-search-be/internal/service"
	"ai-contact-search-be/pkg/embedding"
	"ai-contact-search-be/pkg/llm"
	"ai-contact-search-be/pkg/llm/factory"
	"ai-contact-search-be/pkg/rag"
	"ai-contact-search-be/pkg/rag/search"
	"ai-contact-search-be/pkg/referral"
	"ai-contact-search-be/pkg/retrieval"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SearchController   controller.ISearchController
	ReferralController controller.IReferralController

	// Exposed for the CLI; UserRepository resolves --phone to a user
	SearchService   service.ISearchService
	ReferralService service.IReferralService
	UserRepository  contract.UserRepository
	LLMProvider     llm.LLMProvider
	Logger          logger.ILogger

	expander *referral.Expander
	redis    *redis.Client
}

// NewContainer wires the application using the server logger (file + console).
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	return NewContainerWithLogger(db, cfg, sysLogger)
}

func NewContainerWithLogger(db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) *Container {
	providerTimeout := time.Duration(cfg.Ai.ProviderTimeoutSecs) * time.Second

	// 1. Repositories
	embeddingRepo := implementation.NewContactEmbeddingRepository(db)
	referrerRepo := implementation.NewReferrerRepository(db)
	userRepo := implementation.NewUserRepository(db)

	// 2. Redis (only needed for the redis embedding cache)
	var rdb *redis.Client
	if cfg.Ai.EmbeddingCache == "redis" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
	}

	// 3. Providers
	embeddingProvider, err := embedding.NewProvider(embedding.Settings{
		Provider: cfg.Ai.EmbeddingProvider,
		Model:    cfg.Ai.EmbeddingModel,
		BaseURL:  cfg.Ai.EmbeddingBaseURL,
		APIKey:   cfg.Keys.OpenAI,
		Timeout:  providerTimeout,
		Cache:    cfg.Ai.EmbeddingCache,
		CacheTTL: time.Duration(cfg.Ai.EmbeddingCacheTTL) * time.Minute,
	}, rdb, sysLogger)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize Embedding Provider: %v", err)
	}
	log.Printf("[INFO] Using Embedding Provider: %s (%s, cache=%s)", cfg.Ai.EmbeddingProvider, cfg.Ai.EmbeddingModel, cfg.Ai.EmbeddingCache)

	llmProvider, err := factory.NewLLMProvider(factory.Settings{
		Provider:       cfg.Ai.LLMProvider,
		Model:          cfg.Ai.LLMModel,
		BaseURL:        cfg.Ai.LLMBaseURL,
		APIKey:         cfg.Keys.OpenAI,
		Timeout:        providerTimeout,
		BreakerEnabled: cfg.Ai.LLMBreakerEnabled,
	}, sysLogger)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Search core
	retriever := retrieval.NewRetriever(embeddingRepo, sysLogger)
	filter := rag.NewFilter(llmProvider, sysLogger, rag.FilterConfig{
		ProfileTextBudget: cfg.Search.ProfileTextBudget,
		Timeout:           providerTimeout,
	})
	orchestrator := search.NewOrchestrator(embeddingProvider, retriever, filter, sysLogger)

	policy, err := referral.ParsePolicy(cfg.Referral.Policy)
	if err != nil {
		log.Printf("[WARN] %v, falling back to %s", err, referral.PolicyFilter)
		policy = referral.PolicyFilter
	}
	expander, err := referral.NewExpander(referrerRepo, embeddingProvider, retriever, filter, sysLogger, referral.Config{
		Policy:           policy,
		MinScore:         cfg.Referral.MinScore,
		TopK:             cfg.Search.TopK,
		Concurrency:      cfg.Referral.Concurrency,
		EmbeddingTimeout: providerTimeout,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize Referral Expander: %v", err)
	}

	// 5. Services
	searchService := service.NewSearchService(orchestrator, userRepo, search.Config{
		TopK:             cfg.Search.TopK,
		MaxSelected:      cfg.Search.MaxSelected,
		TopN:             cfg.Search.TopN,
		EmbeddingTimeout: providerTimeout,
	})
	referralService := service.NewReferralService(expander, userRepo)

	// 6. Controllers
	return &Container{
		SearchController:   controller.NewSearchController(searchService),
		ReferralController: controller.NewReferralController(referralService),
		SearchService:      searchService,
		ReferralService:    referralService,
		UserRepository:     userRepo,
		LLMProvider:        llmProvider,
		Logger:             sysLogger,
		expander:           expander,
		redis:              rdb,
	}
}

// Close releases worker pools and connections held by the container.
func (c *Container) Close() {
	c.expander.Release()
	if c.redis != nil {
		_ = c.redis.Close()
	}
	_ = c.Logger.Sync()
}
