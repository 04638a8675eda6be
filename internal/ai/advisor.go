package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ecoguardian/internal/domain"
)

// ErrCompletionFailed is returned when the remote service fails for any
// reason other than quota exhaustion. Quota failures never surface; they
// are answered locally instead.
var ErrCompletionFailed = errors.New("failed to get AI response")

const emptyCompletionReply = "I apologize, but I couldn't generate a response. Please try again."

// UserContext carries a user's aggregated carbon figures into prompts.
type UserContext struct {
	TotalCarbon       float64
	MonthCarbon       float64
	CategoryBreakdown map[domain.Category]float64
}

func (c *UserContext) category(cat domain.Category) float64 {
	if c == nil {
		return 0
	}
	return c.CategoryBreakdown[cat]
}

// highestCategory returns the category with the largest summed amount,
// defaulting to transportation when nothing has been tracked. Exact ties
// resolve to whichever category comes first in the canonical order.
func (c *UserContext) highestCategory() domain.Category {
	top := domain.CategoryTransportation
	var topAmount float64
	for _, cat := range domain.Categories() {
		if amount := c.category(cat); amount > topAmount {
			top, topAmount = cat, amount
		}
	}
	return top
}

// Advisor is the gateway to the remote completion service.
type Advisor struct {
	client Client
}

// NewAdvisor creates an Advisor backed by the given completion client.
func NewAdvisor(client Client) *Advisor {
	return &Advisor{client: client}
}

// Chat sends the user's message with a context-aware system prompt and
// returns the completion text. A rate-limited remote is answered with the
// deterministic keyword fallback; any other remote failure surfaces as
// ErrCompletionFailed.
func (a *Advisor) Chat(ctx context.Context, message string, userCtx *UserContext) (string, error) {
	reply, err := a.client.Complete(ctx, chatSystemPrompt(userCtx), message, 500, 0.7)
	if err != nil {
		if classify(err) == classRateLimited {
			return fallbackChat(message, userCtx), nil
		}
		return "", fmt.Errorf("%w: %v", ErrCompletionFailed, err)
	}
	if reply == "" {
		return emptyCompletionReply, nil
	}
	return reply, nil
}

// RecommendProducts asks for five product suggestions targeting the user's
// highest-emission category. A rate-limited remote is answered from the
// static per-category table.
func (a *Advisor) RecommendProducts(ctx context.Context, userCtx UserContext) ([]string, error) {
	highest := userCtx.highestCategory()

	reply, err := a.client.Complete(ctx, recommendSystemPrompt(&userCtx, highest),
		"Please recommend 5 sustainable products for me.", 600, 0.8)
	if err != nil {
		if classify(err) == classRateLimited {
			return fallbackRecommendations(highest), nil
		}
		return nil, fmt.Errorf("%w: %v", ErrCompletionFailed, err)
	}

	lines := make([]string, 0, 5)
	for _, line := range strings.Split(reply, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == 5 {
			break
		}
	}
	return lines, nil
}

func chatSystemPrompt(userCtx *UserContext) string {
	var b strings.Builder
	b.WriteString(`You are EcoGuardian AI, a helpful and knowledgeable environmental assistant specializing in carbon footprint reduction and sustainable living.

Your role is to:
- Provide personalized advice on reducing carbon emissions
- Suggest eco-friendly alternatives and sustainable practices
- Answer questions about climate change and environmental impact
- Help users understand their carbon footprint data
- Offer practical, actionable tips for everyday sustainability

Be friendly, encouraging, and specific in your recommendations. Keep responses concise but informative.
`)
	if userCtx != nil {
		fmt.Fprintf(&b, `
Current user carbon data:
- Total carbon footprint: %.1f kg CO₂
- This month: %.1f kg CO₂
- Transportation: %.1f kg
- Energy: %.1f kg
- Food: %.1f kg
- Shopping: %.1f kg
`,
			userCtx.TotalCarbon,
			userCtx.MonthCarbon,
			userCtx.category(domain.CategoryTransportation),
			userCtx.category(domain.CategoryEnergy),
			userCtx.category(domain.CategoryFood),
			userCtx.category(domain.CategoryShopping))
	}
	return b.String()
}

func recommendSystemPrompt(userCtx *UserContext, highest domain.Category) string {
	return fmt.Sprintf(`You are an expert in sustainable products and eco-friendly alternatives. Based on the user's carbon footprint data, recommend specific products that would help reduce their impact.

User's highest carbon category: %s
Category breakdown:
- Transportation: %.1f kg
- Energy: %.1f kg
- Food: %.1f kg
- Shopping: %.1f kg

Provide 5 specific product recommendations that would help reduce their carbon footprint. Format each as:
"Product Name - Brief description (estimated CO2 savings: X kg/year)"

Focus on practical, affordable products that target their highest impact categories.`,
		highest,
		userCtx.category(domain.CategoryTransportation),
		userCtx.category(domain.CategoryEnergy),
		userCtx.category(domain.CategoryFood),
		userCtx.category(domain.CategoryShopping))
}
