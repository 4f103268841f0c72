// 환경변수 기반 설정 로딩
//
// 주요 환경변수:
//   - DATABASE_URL 또는 PGHOST/PGPORT/PGUSER/PGPASSWORD/PGDATABASE/PGSSLMODE
//   - AI_API_KEY: Gemini API 키 (임베딩 + 분석 공용)
//   - WORKFLOW_CONFIDENCE_THRESHOLD: 신뢰도 게이트 임계값
//     (운영 이력상 0.85 -> 0.80으로 완화됨, 기본값 0.80)
//   - WORKFLOW_SEARCH_LIMIT: 지식 검색 결과 수 (기본 3)
//   - WORKFLOW_RUN_TIMEOUT: run 1건의 전체 타임아웃 (기본 120s)
//   - PAYMENT_MODE: live | shadow (기본 shadow)
//   - ESCALATION_WEBHOOK_URL: 에스컬레이션 알림 webhook (비어 있으면 비활성)

package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server     ServerConfig
	Postgres   PostgresConfig
	AI         AIConfig
	Workflow   WorkflowConfig
	Payment    PaymentConfig
	Escalation EscalationConfig
	Auth       AuthConfig
}

type ServerConfig struct {
	Port string
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

type AIConfig struct {
	APIKey         string
	EmbeddingModel string
	ReasoningModel string
}

type WorkflowConfig struct {
	ConfidenceThreshold float64
	SearchLimit         int
	RunTimeout          time.Duration
	AlertsFile          string
}

type PaymentConfig struct {
	Mode         string
	BaseURL      string
	AccountID    string
	Network      string
	BountyMin    float64
	BountyMax    float64
	ShadowBounty float64
}

type EscalationConfig struct {
	WebhookURL string
	Method     string
	Body       string
}

type AuthConfig struct {
	JWTSecret      string
	JWTAccessTTL   string
	JWTRefreshTTL  string
	AllowSignup    string
	CookieSecure   string
	CookieSameSite string
	CookiePath     string
	CookieDomain   string
	AdminUsername  string
	AdminPassword  string
}

func Load() Config {
	return Config{
		Server: ServerConfig{
			Port: getenv("PORT", "8080"),
		},
		Postgres: PostgresConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("PGHOST", "localhost"),
			Port:        getenv("PGPORT", "5432"),
			User:        os.Getenv("PGUSER"),
			Password:    os.Getenv("PGPASSWORD"),
			Database:    os.Getenv("PGDATABASE"),
			SSLMode:     getenv("PGSSLMODE", "disable"),
		},
		AI: AIConfig{
			APIKey:         os.Getenv("AI_API_KEY"),
			EmbeddingModel: getenv("AI_EMBEDDING_MODEL", "text-embedding-004"),
			ReasoningModel: getenv("AI_REASONING_MODEL", "gemini-2.5-flash"),
		},
		Workflow: WorkflowConfig{
			ConfidenceThreshold: getenvFloat("WORKFLOW_CONFIDENCE_THRESHOLD", 0.80),
			SearchLimit:         getenvInt("WORKFLOW_SEARCH_LIMIT", 3),
			RunTimeout:          getenvDuration("WORKFLOW_RUN_TIMEOUT", 120*time.Second),
			AlertsFile:          getenv("ALERTS_FILE", "mock_alerts.json"),
		},
		Payment: PaymentConfig{
			Mode:         getenv("PAYMENT_MODE", "shadow"),
			BaseURL:      os.Getenv("PAYMENT_API_URL"),
			AccountID:    getenv("PAYMENT_ACCOUNT", "finops-paymaster"),
			Network:      getenv("PAYMENT_NETWORK", "base-sepolia"),
			BountyMin:    getenvFloat("PAYMENT_BOUNTY_MIN", 0.00001),
			BountyMax:    getenvFloat("PAYMENT_BOUNTY_MAX", 0.0001),
			ShadowBounty: getenvFloat("PAYMENT_SHADOW_BOUNTY", 0.00005),
		},
		Escalation: EscalationConfig{
			WebhookURL: os.Getenv("ESCALATION_WEBHOOK_URL"),
			Method:     getenv("ESCALATION_WEBHOOK_METHOD", "POST"),
			Body:       getenv("ESCALATION_WEBHOOK_BODY", defaultEscalationBody),
		},
		Auth: AuthConfig{
			JWTSecret:      os.Getenv("JWT_SECRET"),
			JWTAccessTTL:   getenv("JWT_ACCESS_TTL", "15m"),
			JWTRefreshTTL:  getenv("JWT_REFRESH_TTL", "720h"),
			AllowSignup:    os.Getenv("ALLOW_SIGNUP"),
			CookieSecure:   os.Getenv("AUTH_COOKIE_SECURE"),
			CookieSameSite: os.Getenv("AUTH_COOKIE_SAMESITE"),
			CookiePath:     os.Getenv("AUTH_COOKIE_PATH"),
			CookieDomain:   os.Getenv("AUTH_COOKIE_DOMAIN"),
			AdminUsername:  os.Getenv("ADMIN_USERNAME"),
			AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		},
	}
}

const defaultEscalationBody = `{"run_id":"{{run.id}}","alert_id":"{{alert.id}}","resource":"{{alert.resource}}","confidence":"{{run.confidence}}","reason":"{{run.reason}}"}`

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return fallback
}
