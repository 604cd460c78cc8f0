package main

import (
	"context"

	chromago "github.com/amikos-tech/chroma-go/pkg/api/v2"
	"github.com/gin-gonic/gin"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"

	"github.com/panchagiri/resume-chatbot/config"
	"github.com/panchagiri/resume-chatbot/controller"
	"github.com/panchagiri/resume-chatbot/logger"
	"github.com/panchagiri/resume-chatbot/services"
)

func main() {
	cfg := config.Load()

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	// The LLM client doubles as the embedding client. Without an API key the
	// service still starts; /chat serves a canned answer and /health reports
	// the backend as unconfigured.
	var model llms.Model
	var embedder embeddings.Embedder
	if cfg.OpenAIConfigured() {
		llm, err := openai.New(
			openai.WithToken(cfg.OpenAIAPIKey),
			openai.WithModel(cfg.OpenAIModel),
			openai.WithEmbeddingModel("text-embedding-ada-002"),
		)
		if err != nil {
			log.Error("failed to create OpenAI client", zap.Error(err))
		} else {
			model = llm
			embedder, err = embeddings.NewEmbedder(llm)
			if err != nil {
				log.Error("failed to create embedder", zap.Error(err))
				embedder = nil
			}
		}
	} else {
		log.Warn("OPENAI_API_KEY not set, starting in degraded mode")
	}

	var retriever services.Retriever
	if embedder != nil {
		chromaClient, err := chromago.NewHTTPClient(chromago.WithBaseURL(cfg.ChromaURL))
		if err != nil {
			log.Error("failed to create chroma client", zap.Error(err))
		} else {
			defer func() {
				if err := chromaClient.Close(); err != nil {
					log.Warn("failed to close chroma client", zap.Error(err))
				}
			}()

			collection, err := chromaClient.GetOrCreateCollection(
				ctx,
				cfg.CollectionName,
				chromago.WithCollectionMetadataCreate(
					chromago.NewMetadata(
						chromago.NewStringAttribute("description", "resume chatbot knowledge index"),
					),
				),
			)
			if err != nil {
				log.Error("failed to get or create collection", zap.Error(err))
			} else {
				indexService := services.NewIndexService(collection, embedder, log)
				if err := indexService.IndexCorpus(ctx); err != nil {
					log.Error("failed to index resume", zap.Error(err))
				} else {
					retriever = indexService
				}

				if cfg.KnowledgeDir != "" {
					indexService.ScanAndIndexDirectory(ctx, cfg.KnowledgeDir)
					go indexService.WatchDirectory(ctx, cfg.KnowledgeDir)
				}
			}
		}
	}

	notifier := services.NewEmailNotifier(
		cfg.SMTPHost, cfg.SMTPPort,
		cfg.GmailEmail, cfg.GmailAppPassword, cfg.NotifyEmail,
		log,
	)
	if !notifier.Enabled() {
		log.Warn("mail credentials not configured, availability notifications disabled")
	}

	chatService := services.NewChatService(model, retriever, notifier, log)
	chatController := controller.NewChatController(chatService)

	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.GET("/", chatController.Index)
	router.Static("/static", "./static")
	router.POST("/chat", chatController.Chat)
	router.GET("/health", chatController.Health)

	log.Info("resume chatbot listening", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
