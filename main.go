package main

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/finops-engine/backend/internal/client"
	"github.com/finops-engine/backend/internal/config"
	"github.com/finops-engine/backend/internal/db"
	"github.com/finops-engine/backend/internal/handler"
	"github.com/finops-engine/backend/internal/model"
	"github.com/finops-engine/backend/internal/service"
)

// @title FinOps Triage API
// @version 1.0
// @description Infrastructure cost alert triage pipeline API
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// .env 파일이 있으면 로드 (없어도 무시)
	if err := godotenv.Load(); err == nil {
		log.Printf("loaded environment from .env")
	}

	cfg := config.Load()
	ctx := context.Background()

	// 1. Postgres 연결 및 스키마 준비
	pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("postgres connect failed err=%v", err)
	}
	defer pool.Close()

	repo := &db.Postgres{Pool: pool}
	if err := repo.EnsureKnowledgeSchema(ctx); err != nil {
		log.Fatalf("knowledge schema init failed err=%v", err)
	}
	if err := repo.EnsureWorkflowSchema(ctx); err != nil {
		log.Fatalf("workflow schema init failed err=%v", err)
	}
	if err := repo.EnsureAuditSchema(ctx); err != nil {
		log.Fatalf("audit schema init failed err=%v", err)
	}
	if err := repo.EnsureLogsSchema(ctx); err != nil {
		log.Fatalf("logs schema init failed err=%v", err)
	}

	// 2. 외부 협력자 클라이언트 조립
	embeddingClient, err := client.NewEmbeddingClient(cfg.AI)
	if err != nil {
		log.Fatalf("embedding client init failed err=%v", err)
	}
	reasoningClient, err := client.NewReasoningClient(cfg.AI)
	if err != nil {
		log.Fatalf("reasoning client init failed err=%v", err)
	}
	paymentClient, err := client.NewPaymentClient(cfg.Payment)
	if err != nil {
		log.Fatalf("payment client init failed err=%v", err)
	}
	alertSource := client.NewFileAlertSource(cfg.Workflow.AlertsFile)

	// 3. 서비스 레이어 조립
	knowledgeService := service.NewKnowledgeService(embeddingClient, repo)
	notifier := service.NewWebhookNotifier(cfg.Escalation)
	if !notifier.Enabled() {
		log.Printf("escalation webhook disabled (ESCALATION_WEBHOOK_URL not set)")
	}

	engine, err := service.NewWorkflowEngine(service.WorkflowEngineConfig{
		Knowledge: knowledgeService,
		Reasoner:  reasoningClient,
		Payments:  paymentClient,
		Bounty: service.BountyCalculator{
			Mode:         paymentClient.Mode(),
			Min:          cfg.Payment.BountyMin,
			Max:          cfg.Payment.BountyMax,
			ShadowAmount: cfg.Payment.ShadowBounty,
		},
		Gate:        service.ConfidenceGate{Threshold: cfg.Workflow.ConfidenceThreshold},
		Checkpoints: repo,
		AuditSink:   repo,
		Logs:        repo,
		Alerts:      alertSource,
		Escalations: notifier,
		SearchLimit: cfg.Workflow.SearchLimit,
		RunTimeout:  cfg.Workflow.RunTimeout,
	})
	if err != nil {
		log.Fatalf("workflow engine init failed err=%v", err)
	}

	log.Printf("workflow engine ready mode=%s threshold=%.2f", paymentClient.Mode(), cfg.Workflow.ConfidenceThreshold)

	// 4. 인증 서비스 (JWT_SECRET 미설정 시 비활성화)
	var authService *service.AuthService
	if cfg.Auth.JWTSecret != "" {
		authService, err = service.NewAuthService(repo, cfg.Auth)
		if err != nil {
			log.Fatalf("auth service init failed err=%v", err)
		}
		if err := authService.EnsureSchema(ctx); err != nil {
			log.Fatalf("auth schema init failed err=%v", err)
		}
		if cfg.Auth.AdminUsername != "" || cfg.Auth.AdminPassword != "" {
			if err := authService.EnsureAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
				log.Fatalf("admin bootstrap failed err=%v", err)
			}
		}
	} else {
		log.Printf("warning: JWT_SECRET not set, API authentication disabled")
	}

	// 5. 핸들러 및 라우터 조립
	workflowHandler := handler.NewWorkflowHandler(engine, repo)
	knowledgeHandler := handler.NewKnowledgeHandler(knowledgeService)
	logsHandler := handler.NewLogsHandler(repo)

	router := gin.Default()

	if origins := strings.Split(os.Getenv("CORS_ALLOWED_ORIGINS"), ","); len(origins) > 0 && origins[0] != "" {
		router.Use(handler.CORSMiddleware(origins, true))
	}

	router.GET("/", handler.Root)
	router.GET("/ping", handler.Ping)
	router.GET("/openapi.json", handler.OpenAPIDoc)

	api := router.Group("/api/v1")

	if authService != nil {
		authHandler := handler.NewAuthHandler(authService)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", handler.AuthMiddleware(authService), authHandler.Me)
		}
		api.Use(handler.AuthMiddleware(authService))
	}

	api.POST("/runs", workflowHandler.TriggerRun)
	api.GET("/runs", workflowHandler.ListRuns)
	api.GET("/runs/:id", workflowHandler.GetRun)
	api.GET("/runs/:id/audit", workflowHandler.GetRunAudit)
	// 지식 베이스 시딩은 admin 운영자만 허용
	if authService != nil {
		api.POST("/knowledge/seed", handler.RequireRole(model.RoleAdmin), knowledgeHandler.SeedKnowledge)
	} else {
		api.POST("/knowledge/seed", knowledgeHandler.SeedKnowledge)
	}
	api.GET("/knowledge/search", knowledgeHandler.SearchKnowledge)
	api.GET("/logs", logsHandler.GetLogs)
	api.GET("/metrics", logsHandler.GetMetrics)

	addr := ":" + cfg.Server.Port
	log.Printf("server starting addr=%s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("server stopped err=%v", err)
	}
}
