package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"

	"github.com/panchagiri/resume-chatbot/models"
)

const (
	// topK is the number of similar chunks retrieved per question.
	topK = 3

	// externalCallTimeout bounds the retrieval-plus-completion window of a
	// single request. Expiry is treated as an upstream failure.
	externalCallTimeout = 30 * time.Second

	contactPrompt = "Could you please provide your name and email so I can notify Benitha about your availability request?"

	noticeSuffix = "\n\n\U0001F4E7 I've sent Benitha a notification about your availability inquiry."

	fallbackAnswer = "I'm running in limited mode right now and can't generate a tailored answer. " +
		"In short: Benitha Mutesi is a Front-End Developer experienced with React, JavaScript, HTML5 and CSS3, " +
		"currently available for interviews and new opportunities. " +
		"You can reach her directly at panchagirib@gmail.com."
)

// Retriever answers top-k similarity lookups over the knowledge index.
type Retriever interface {
	QuerySimilar(ctx context.Context, query string, k int) ([]string, error)
	Ready(ctx context.Context) bool
}

// Notifier delivers availability notifications to the résumé owner. Notify
// is best-effort: it reports delivery but never fails the request.
type Notifier interface {
	Enabled() bool
	Notify(ctx context.Context, question string, contact models.ContactInfo, dateContext string) bool
}

// ChatService answers résumé questions and reports collaborator health.
type ChatService interface {
	Chat(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error)
	Health(ctx context.Context) models.HealthResponse
}

// chatServiceImpl holds the dependencies it needs to do its job. The llm and
// retriever may be nil when the completion backend never initialized; the
// service then degrades to a canned answer.
type chatServiceImpl struct {
	llm       llms.Model
	retriever Retriever
	notifier  Notifier
	log       *zap.Logger
	now       func() time.Time
}

// NewChatService creates a new chat service instance.
func NewChatService(llm llms.Model, retriever Retriever, notifier Notifier, log *zap.Logger) ChatService {
	return &chatServiceImpl{
		llm:       llm,
		retriever: retriever,
		notifier:  notifier,
		log:       log,
		now:       time.Now,
	}
}

// Chat runs one question through the classify/notify/retrieve/complete flow.
// Failures come back as *models.RequestError so the HTTP layer can map them
// to status codes without leaking internals.
func (s *chatServiceImpl) Chat(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, models.BadRequest("Question is required")
	}

	isAvailability := IsAvailabilityQuestion(question)
	dateContext := ""
	if isAvailability {
		dateContext = ExtractDateContext(question)
	}

	if isAvailability && (req.UserInfo == nil || !req.UserInfo.Usable()) {
		// Terminal for this request: ask for contact details instead of
		// answering, and make no external calls.
		return &models.ChatResponse{
			Question: question,
			Answer:   contactPrompt,
			Status:   models.StatusUserInfoRequired,
		}, nil
	}

	notified := false
	if isAvailability {
		notified = s.notifier.Notify(ctx, question, *req.UserInfo, dateContext)
	}

	if s.llm == nil {
		s.log.Warn("completion backend not configured, serving canned answer")
		answer := fallbackAnswer
		if notified {
			answer += noticeSuffix
		}
		return &models.ChatResponse{
			Question: question,
			Answer:   answer,
			Status:   models.StatusFallback,
		}, nil
	}

	// The key is present but the index never came up (chroma unreachable or
	// the corpus load failed), so the service cannot answer yet.
	if s.retriever == nil {
		s.log.Error("similarity index not initialized")
		return nil, models.Unavailable("Service is temporarily unavailable, please try again shortly")
	}

	ctx, cancel := context.WithTimeout(ctx, externalCallTimeout)
	defer cancel()

	chunks, err := s.retriever.QuerySimilar(ctx, question, topK)
	if err != nil {
		s.log.Error("similarity search failed", zap.Error(err))
		return nil, models.Upstream("Failed to generate an answer")
	}

	prompt := BuildContext(question, chunks, isAvailability, dateContext, s.now())

	answer, err := llms.GenerateFromSinglePrompt(ctx, s.llm, prompt, llms.WithTemperature(0.3))
	if err != nil {
		s.log.Error("completion call failed", zap.Error(err))
		return nil, models.Upstream("Failed to generate an answer")
	}

	if notified {
		answer += noticeSuffix
	}

	return &models.ChatResponse{
		Question: question,
		Answer:   answer,
		Status:   models.StatusSuccess,
	}, nil
}

// Health reports the true initialization state of the collaborators. The
// index flag requires a round trip to the vector store.
func (s *chatServiceImpl) Health(ctx context.Context) models.HealthResponse {
	openaiConfigured := s.llm != nil
	indexReady := s.retriever != nil && s.retriever.Ready(ctx)

	status := "unhealthy"
	if openaiConfigured && indexReady {
		status = "healthy"
	}
	return models.HealthResponse{
		Status:             status,
		OpenAIConfigured:   openaiConfigured,
		VectorIndexReady:   indexReady,
		NotifierConfigured: s.notifier.Enabled(),
	}
}

// BuildContext assembles the completion prompt: the full knowledge corpus,
// an availability block when the question concerns scheduling, then the
// retrieved chunks, then the question itself.
func BuildContext(question string, chunks []string, isAvailability bool, dateContext string, now time.Time) string {
	var b strings.Builder

	b.WriteString("You are " + OwnerName + "'s assistant. Answer the question using only the context below. ")
	b.WriteString("If the answer is not in the context, say you don't know.\n\n")

	for _, doc := range CorpusDocuments() {
		b.WriteString(strings.TrimSpace(doc))
		b.WriteString("\n\n")
	}

	if isAvailability {
		b.WriteString("IMPORTANT AVAILABILITY CONTEXT:\n")
		fmt.Fprintf(&b, "- Notification sent on: %s\n", now.Format("January 2, 2006 at 3:04 PM"))
		fmt.Fprintf(&b, "- Requested Timeframe: %s\n\n", dateContext)
	}

	if len(chunks) > 0 {
		b.WriteString("Relevant resume excerpts:\n")
		for _, chunk := range chunks {
			b.WriteString(strings.TrimSpace(chunk))
			b.WriteString("\n\n")
		}
	}

	fmt.Fprintf(&b, "Question: %s\nAnswer:", question)
	return b.String()
}
