package service

import (
	"especialidades_backend/internal/model"
	"especialidades_backend/internal/repository"
	"especialidades_backend/pkg/logger"
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"
)

const retrievalTopK = 4
const retrievalMinScore = 0.55

// ChatService answers study questions with retrieval-augmented generation:
// the question is embedded, the closest documentation snippets are pulled
// from the index and injected into the completion as context.
type ChatService struct {
	DocRepo   *repository.DocRepository
	aiService *AIService
}

func NewChatService(docRepo *repository.DocRepository, aiService *AIService) *ChatService {
	return &ChatService{
		DocRepo:   docRepo,
		aiService: aiService,
	}
}

type ChatResponse struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}

type scoredSnippet struct {
	snippet model.DocSnippet
	score   float64
}

// retrieve embeds the question and ranks the indexed snippets by cosine
// similarity, keeping the top matches above the score floor. A retrieval
// failure degrades to a plain completion instead of failing the chat.
func (s *ChatService) retrieve(question, specialization string) (string, []string) {
	queryVec, err := s.aiService.Embed(question)
	if err != nil {
		logger.Log.Warn("embedding failed, answering without retrieval", zap.Error(err))
		return "", nil
	}

	snippets, err := s.DocRepo.FindBySpecialization(specialization)
	if err != nil || len(snippets) == 0 {
		return "", nil
	}

	scored := make([]scoredSnippet, 0, len(snippets))
	for _, snippet := range snippets {
		score := cosineSimilarity(queryVec, snippet.Embedding)
		if score >= retrievalMinScore {
			scored = append(scored, scoredSnippet{snippet: snippet, score: score})
		}
	}
	sort.Slice(scored, func(i, j int) bool { return scored[i].score > scored[j].score })
	if len(scored) > retrievalTopK {
		scored = scored[:retrievalTopK]
	}

	var context strings.Builder
	var sources []string
	seen := map[string]bool{}
	for _, sc := range scored {
		fmt.Fprintf(&context, "[%s]\n%s\n\n", sc.snippet.Title, sc.snippet.Content)
		if sc.snippet.URL != "" && !seen[sc.snippet.URL] {
			seen[sc.snippet.URL] = true
			sources = append(sources, sc.snippet.URL)
		}
	}
	return context.String(), sources
}

// Ask answers a question in one shot, citing the URLs of the snippets used.
func (s *ChatService) Ask(question, specialization string) (*ChatResponse, error) {
	context, sources := s.retrieve(question, specialization)

	answer, err := s.aiService.Chat(question, context)
	if err != nil {
		return nil, err
	}

	return &ChatResponse{
		Answer:  answer,
		Sources: sources,
	}, nil
}

// AskStream is the streaming variant. Source URLs are returned up front so
// the caller can append them after the stream finishes.
func (s *ChatService) AskStream(question, specialization string, history []AIChatMessage) (<-chan string, []string, <-chan error) {
	context, sources := s.retrieve(question, specialization)
	stream, errChan := s.aiService.ChatStream(question, context, history)
	return stream, sources, errChan
}

// IndexSnippet embeds a documentation chunk and stores it for retrieval.
func (s *ChatService) IndexSnippet(specialization, title, content, url string) (*model.DocSnippet, error) {
	vec, err := s.aiService.Embed(content)
	if err != nil {
		return nil, err
	}

	snippet := &model.DocSnippet{
		Specialization: specialization,
		Title:          title,
		Content:        content,
		URL:            url,
		Embedding:      vec,
	}
	if err := s.DocRepo.Create(snippet); err != nil {
		return nil, err
	}
	return snippet, nil
}

func (s *ChatService) DeleteSnippet(id uint) error {
	return s.DocRepo.DeleteByID(id)
}

func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
