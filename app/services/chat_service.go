package services

import (
	"fmt"
	"strings"

	"github.com/buildmaster/storefront/app/models"
	"github.com/buildmaster/storefront/config"
	"github.com/buildmaster/storefront/pkg/collection"
	"github.com/buildmaster/storefront/pkg/database"
	"github.com/buildmaster/storefront/pkg/logger"
	"github.com/buildmaster/storefront/pkg/metrics"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget shares for the guided recommendation: the CPU should take at most
// a quarter of the budget and the GPU at most 45%.
const (
	cpuBudgetShare = 0.25
	gpuBudgetShare = 0.45
)

// ChatService is the shopping assistant. It runs in two modes:
//
// FREE: each message is answered by the language model, augmented with the
// catalogue components most similar to the question (cosine similarity
// over stored embeddings). Messages that express build intent switch the
// session to guided mode.
//
// GUIDED: a fixed two-question flow (budget, then intended usage) ending
// in a CPU/GPU recommendation drawn from the catalogue, after which the
// session returns to FREE.
type ChatService struct {
	db       *gorm.DB
	sessions *chatSessionStore
}

func NewChatService() *ChatService {
	return &ChatService{db: database.DB, sessions: newChatSessionStore()}
}

// ChatReply is the assistant's answer to one message.
type ChatReply struct {
	Reply string `json:"reply"`
	Mode  string `json:"mode"`
}

// Handle processes one user message within the given session.
func (s *ChatService) Handle(sessionID, message string) (ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return ChatReply{}, fmt.Errorf("%w: message is required", ErrInvalidInput)
	}

	sess := s.sessions.Load(sessionID)

	var reply string
	switch sess.State {
	case ChatStateAskBudget:
		reply = s.handleBudget(sess, message)
	case ChatStateAskUsage:
		reply = s.recommend(sess, message)
	default:
		if hasBuildIntent(message) {
			sess.State = ChatStateAskBudget
			reply = "Great, let's put a build together! What's your budget?"
		} else {
			reply = s.freeChat(sess, message)
		}
	}

	metrics.ChatMessages.WithLabelValues(sess.Mode()).Inc()
	s.sessions.Save(sess)

	return ChatReply{Reply: reply, Mode: sess.Mode()}, nil
}

// buildIntentKeywords trigger the guided flow from free conversation.
var buildIntentKeywords = []string{"build", "recommend", "pc for", "suggest"}

func hasBuildIntent(message string) bool {
	lowered := strings.ToLower(message)
	for _, kw := range buildIntentKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

func (s *ChatService) handleBudget(sess *ChatSession, message string) string {
	budget, ok := firstNumber(message)
	if !ok || budget <= 0 {
		return "I need a number to work with. What's your budget in dollars?"
	}
	sess.Budget = budget
	sess.State = ChatStateAskUsage
	return fmt.Sprintf("Got it, a budget of $%.0f. What will you mainly use this PC for? (gaming, video editing, office work...)", budget)
}

// recommend closes the guided flow: pick CPUs and GPUs that fit their
// budget share, let the model write the pitch, and drop back to FREE.
func (s *ChatService) recommend(sess *ChatSession, usage string) string {
	budget := sess.Budget
	sess.State = ChatStateFree
	sess.Budget = 0

	cpus, err := s.topByCategory("Processeur", budget*cpuBudgetShare)
	if err != nil {
		logger.Error("chat: cpu lookup failed", "error", err)
	}
	gpus, err := s.topByCategory("Graphique", budget*gpuBudgetShare)
	if err != nil {
		logger.Error("chat: gpu lookup failed", "error", err)
	}

	if len(cpus) == 0 && len(gpus) == 0 {
		return fmt.Sprintf("I couldn't find components fitting a $%.0f budget. Try a higher budget, or browse the catalogue directly.", budget)
	}

	summary := describeComponents(append(cpus, gpus...))

	if config.ChatAPIURL() != "" {
		prompt := fmt.Sprintf(
			"You are a PC-building assistant for an online component store. "+
				"The customer has a budget of $%.0f and will use the PC for: %s. "+
				"Recommend a build using only these in-stock components, with a short reason for each pick:\n%s",
			budget, usage, summary)

		reply, err := ChatCompletion([]LLMMessage{
			{Role: "system", Content: prompt},
			{Role: "user", Content: usage},
		})
		if err == nil {
			return reply
		}
		logger.Warn("chat: completion failed, using plain listing", "error", err)
	}

	return fmt.Sprintf("For a $%.0f %s PC, here are the best matching parts in stock:\n%s", budget, usage, summary)
}

// topByCategory returns up to three of the priciest active, in-stock
// components whose category name contains namePart and whose price fits
// maxPrice.
func (s *ChatService) topByCategory(namePart string, maxPrice float64) ([]models.Component, error) {
	var components []models.Component
	err := s.db.
		Joins("JOIN component_categories ON component_categories.id = components.category_id").
		Where("component_categories.name LIKE ?", "%"+namePart+"%").
		Where("components.is_active = ? AND components.stock > 0", true).
		Where("components.price <= ?", decimal.NewFromFloat(maxPrice)).
		Order("components.price desc").
		Limit(3).
		Find(&components).Error
	return components, err
}

// freeChat answers an open question, grounding the model in the catalogue
// components closest to it. Without a configured model the assistant
// degrades to a canned pointer at the guided flow.
func (s *ChatService) freeChat(sess *ChatSession, message string) string {
	if config.ChatAPIURL() == "" {
		return "I'm offline for open questions right now, but I can still help you pick parts. Tell me you want to build a PC and I'll guide you through it."
	}

	system := "You are a helpful assistant for Build Master, an online PC component store. " +
		"Answer questions about PC hardware concisely."
	if context := s.similarComponents(message); context != "" {
		system += " Relevant products from the catalogue:\n" + context
	}

	messages := append([]LLMMessage{{Role: "system", Content: system}}, sess.History...)
	messages = append(messages, LLMMessage{Role: "user", Content: message})

	reply, err := ChatCompletion(messages)
	if err != nil {
		logger.Warn("chat: completion failed", "error", err)
		return "Sorry, I couldn't reach my brain just now. Please try again in a moment."
	}

	sess.Remember("user", message)
	sess.Remember("assistant", reply)
	return reply
}

// similarComponents embeds the question and returns a description of the
// three most similar vectorised components. Empty when embeddings are
// unavailable.
func (s *ChatService) similarComponents(message string) string {
	queryVec, err := EmbedText(message)
	if err != nil {
		return ""
	}

	var components []models.Component
	err = s.db.Where("is_active = ? AND embedding IS NOT NULL", true).Find(&components).Error
	if err != nil || len(components) == 0 {
		return ""
	}

	type scored struct {
		component models.Component
		score     float64
	}
	ranked := collection.Map(components, func(c models.Component) scored {
		return scored{component: c, score: CosineSimilarity(queryVec, c.Embedding)}
	})
	ranked = collection.Filter(ranked, func(sc scored) bool { return sc.score > 0 })
	collection.SortBy(ranked, func(a, b scored) bool { return a.score > b.score })

	top := collection.Map(collection.Take(ranked, 3), func(sc scored) models.Component {
		return sc.component
	})
	return describeComponents(top)
}

func describeComponents(components []models.Component) string {
	lines := collection.Map(components, func(c models.Component) string {
		return fmt.Sprintf("- %s (%s): $%s, %d in stock", c.Name, c.Brand, c.Price.StringFixed(2), c.Stock)
	})
	return strings.Join(lines, "\n")
}

// firstNumber extracts the first integer or decimal number in s.
// "around 1500 dollars" yields 1500.
func firstNumber(s string) (float64, bool) {
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			n, ok := models.ParseLeadingNumber(s[i:])
			return n, ok
		}
	}
	return 0, false
}
