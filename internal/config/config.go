package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	AdminPassword string
	JWTSecret     string
	TokenTTL      time.Duration

	PostsFile string

	GitHubToken  string
	GitHubOwner  string
	GitHubRepo   string
	GitHubBranch string // необязательно: если пусто — берём default branch репозитория

	Log      string
	LogLevel string

	AllowedOrigins []string
}

// LoadConfig загружает .env, читает переменные окружения и выставляет дефолты.
// Ничего не логирует — чтобы не создавать зависимость от logger.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	def := func(v, d string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return d
		}
		return v
	}

	ttl, err := time.ParseDuration(def(os.Getenv("TOKEN_TTL"), "168h"))
	if err != nil {
		ttl = 168 * time.Hour
	}

	origins := []string{"*"}
	if raw := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS")); raw != "" {
		origins = origins[:0]
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	cfg := &Config{
		Port: def(os.Getenv("PORT"), "8080"),

		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		TokenTTL:      ttl,

		PostsFile: def(os.Getenv("POSTS_FILE"), "posts.json"),

		GitHubToken:  os.Getenv("GITHUB_TOKEN"),
		GitHubOwner:  os.Getenv("GITHUB_OWNER"),
		GitHubRepo:   os.Getenv("GITHUB_REPO"),
		GitHubBranch: os.Getenv("GITHUB_BRANCH"),

		Log:      os.Getenv("LOG"),
		LogLevel: strings.ToLower(def(os.Getenv("LOGLEVEL"), "info")),

		AllowedOrigins: origins,
	}

	return cfg, nil
}

// RemoteEnabled — настроен ли канонический GitHub-репозиторий.
// Отсутствие любого из трёх значений переводит сервис в локальный режим:
// это штатный сценарий, а не ошибка.
func (c *Config) RemoteEnabled() bool {
	return c.GitHubToken != "" && c.GitHubOwner != "" && c.GitHubRepo != ""
}

// CORSAllowCredentials — можно ли разрешать credentialed-запросы. Пара
// «Access-Control-Allow-Origin: *» + credentials невалидна, браузеры её
// отвергают, поэтому при wildcard куки/авторизация по origin отключаются.
func (c *Config) CORSAllowCredentials() bool {
	for _, o := range c.AllowedOrigins {
		if o == "*" {
			return false
		}
	}
	return len(c.AllowedOrigins) > 0
}

// Validate возвращает предупреждения и фатальную ошибку (если критично).
func (c *Config) Validate() (warnings []string, err error) {
	if strings.TrimSpace(c.AdminPassword) == "" {
		warnings = append(warnings, "ADMIN_PASSWORD is empty")
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		warnings = append(warnings, "JWT_SECRET is empty")
	}
	if !c.RemoteEnabled() {
		warnings = append(warnings, "GitHub credentials are not set, remote publishing disabled")
	}
	if c.Port == "" {
		warnings = append(warnings, "PORT is empty, using default 8080")
	}
	if !c.CORSAllowCredentials() {
		warnings = append(warnings, "ALLOWED_ORIGINS is not set, credentialed CORS requests disabled")
	}
	return warnings, nil
}
