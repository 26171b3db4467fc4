package bootstrap

import (
	"context"
	"log"
	"path/filepath"

	"ai-laborlaw-be/internal/config"
	"ai-laborlaw-be/internal/constant"
	"ai-laborlaw-be/internal/controller"
	"ai-laborlaw-be/internal/handler"
	"ai-laborlaw-be/internal/pkg/logger"
	"ai-laborlaw-be/internal/pkg/mailer"
	"ai-laborlaw-be/internal/repository"
	"ai-laborlaw-be/internal/repository/implementation"
	"ai-laborlaw-be/internal/repository/memory"
	redisRepo "ai-laborlaw-be/internal/repository/redis"
	"ai-laborlaw-be/internal/service"
	"ai-laborlaw-be/pkg/analysis"
	"ai-laborlaw-be/pkg/evidence"
	"ai-laborlaw-be/pkg/llm/factory"
	"ai-laborlaw-be/pkg/report"
	"ai-laborlaw-be/pkg/upload"
	"ai-laborlaw-be/pkg/workflow"

	pktNats "ai-laborlaw-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ConsultationController controller.IConsultationController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Engine is exposed for the console runner.
	Engine       *workflow.Engine
	ReportWriter *report.Writer
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Initialize LLM Provider based on Config
	baseURL := cfg.Ai.OllamaBaseURL
	if cfg.Ai.LLMProvider == "openai" {
		baseURL = cfg.Ai.OpenAIBaseURL
	}
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		baseURL,
		cfg.Ai.OpenAIAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Session storage, in-memory by default, Redis when configured
	var sessionRepo repository.ISessionRepository
	if cfg.App.SessionStore == "redis" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		sessionRepo = redisRepo.NewSessionRepository(rdb)
		log.Printf("[INFO] Using Session Store: REDIS")
	} else {
		sessionRepo = memory.NewSessionRepository()
		log.Printf("[INFO] Using Session Store: MEMORY")
	}

	// 3. Consultation Pipeline
	catalog := evidence.NewCatalog(map[evidence.Category]string{
		evidence.CategoryContract:   cfg.Analysis.ContractURL,
		evidence.CategoryPayslip:    cfg.Analysis.PayslipURL,
		evidence.CategoryAttendance: cfg.Analysis.AttendanceURL,
		evidence.CategoryInjury:     cfg.Analysis.InjuryURL,
		evidence.CategoryRecording:  cfg.Analysis.RecordingURL,
		evidence.CategoryChat:       cfg.Analysis.ChatURL,
	})

	analysisLogger := logger.NewIsolatedLogger(filepath.Join("logs", "analysis.log"))
	analysisClient := analysis.NewClient(catalog, analysisLogger)

	planner := evidence.NewPlanner(llmProvider, sysLogger)
	resolver := evidence.NewResolver(llmProvider, sysLogger)
	artifacts := workflow.NewArtifactStore(cfg.App.DataDir)
	uploadStore := upload.NewStore(cfg.App.UploadDir)
	reportWriter := report.NewWriter(cfg.App.ReportDir)

	engine := workflow.NewEngine(
		planner,
		resolver,
		analysisClient,
		catalog,
		llmProvider,
		artifacts,
		sysLogger,
	)

	// 4. Services
	publisherService := service.NewPublisherService(pubSub, constant.ConsultationArchiveTopic)

	var archiveRepo repository.ConsultationArchiveRepository
	if db != nil {
		archiveRepo = implementation.NewConsultationArchiveRepository(db)
	} else {
		log.Printf("[WARN] No database configured, consultation archiving is disabled")
	}

	consumerService := service.NewConsumerService(
		pubSub,
		constant.ConsultationArchiveTopic,
		sessionRepo,
		archiveRepo,
	)

	consultationService := service.NewConsultationService(
		engine,
		sessionRepo,
		uploadStore,
		reportWriter,
		analysisClient,
		publisherService,
		natsPub,
		sysLogger,
	)

	// Report mailer worker
	if natsSub != nil {
		reportMailer := handler.NewReportMailerHandler(emailService, sysLogger)
		if err := natsSub.Subscribe(constant.ReportGeneratedSubject, constant.ReportMailerDurable, reportMailer.Handle); err != nil {
			log.Printf("[WARN] Failed to subscribe report mailer: %v", err)
		}
	}

	// 5. Controllers
	return &Container{
		ConsultationController: controller.NewConsultationController(consultationService),

		ConsumerService: consumerService,
		Engine:          engine,
		ReportWriter:    reportWriter,
	}
}
