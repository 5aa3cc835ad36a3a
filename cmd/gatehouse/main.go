package main

import (
	"context"
	"crypto/rand"
	"log"
	"os"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/fanbase/gatehouse/adapters/events"
	"github.com/fanbase/gatehouse/adapters/identity"
	"github.com/fanbase/gatehouse/adapters/store"
	"github.com/fanbase/gatehouse/adapters/tokenizer"
	"github.com/fanbase/gatehouse/ports"
	"github.com/fanbase/gatehouse/service"
	"github.com/fanbase/gatehouse/transport/http"
)

func main() {
	ctx := context.Background()

	accessSecret := secretFromEnv("ACCESS_TOKEN_SECRET")
	refreshSecret := secretFromEnv("REFRESH_TOKEN_SECRET")
	cookieSecret := secretFromEnv("SESSION_COOKIE_SECRET")

	// Session storage: Redis when configured, in-memory otherwise.
	var sessions ports.SessionStore
	var eventPub ports.EventPublisher

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL: %v", err)
		}

		redisClient := redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}

		sessions = store.NewRedisStore(redisClient)

		logger := watermill.NewStdLogger(false, false)
		publisher, err := redisstream.NewPublisher(
			redisstream.PublisherConfig{
				Client: redisClient,
			},
			logger,
		)
		if err != nil {
			log.Fatalf("Failed to create Redis publisher: %v", err)
		}
		eventPub = events.NewWatermillPublisher(publisher)
	} else {
		log.Println("REDIS_URL not set, using in-memory session store")
		sessions = store.NewMemoryStore()
	}

	// Identity storage: Postgres when configured, in-memory otherwise.
	var identityStore ports.IdentityStore
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		pool, err := pgxpool.New(ctx, databaseURL)
		if err != nil {
			log.Fatalf("Failed to create Postgres pool: %v", err)
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			log.Fatalf("Failed to connect to Postgres: %v", err)
		}

		identityStore = identity.NewPostgresStore(pool)
	} else {
		log.Println("DATABASE_URL not set, using in-memory identity store")
		identityStore = identity.NewMemoryStore()
	}

	jwtTokenizer := tokenizer.NewJWTTokenizer(accessSecret, refreshSecret)
	authService := service.NewAuthService(jwtTokenizer, sessions, identityStore, eventPub)
	apiHandlers := http.NewAPIHandlers(service.NewPlanCatalog(), service.NewChatLog(), service.NewGroupDirectory())
	cookies := http.NewCookieCodec(cookieSecret)

	router := http.SetupRouter(authService, apiHandlers, cookies)

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":9000"
	}

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// secretFromEnv reads a signing secret, generating an ephemeral one when
// unset. Ephemeral secrets invalidate all outstanding tokens and cookies on
// restart, which is fine for development only.
func secretFromEnv(name string) []byte {
	if value := os.Getenv(name); value != "" {
		return []byte(value)
	}

	log.Printf("%s not set, generating an ephemeral secret", name)
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		log.Fatalf("Failed to generate secret: %v", err)
	}
	return secret
}
