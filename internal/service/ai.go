package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/mealsnap/backend/config"
	"github.com/mealsnap/backend/internal/nutrition"
)

// AIService talks to an OpenAI-compatible chat completions endpoint. It is
// the only component in the system that performs network I/O during recipe
// generation; everything downstream of it is deterministic.
type AIService struct {
	apiKey      string
	apiURL      string
	model       string
	visionModel string
	client      *http.Client
	logger      *zap.Logger
}

// NewAIService creates a new AIService instance
func NewAIService(cfg *config.Config, logger *zap.Logger) (*AIService, error) {
	if cfg.AIAPIKey == "" {
		return nil, fmt.Errorf("AI_API_KEY or AI_API_KEY_FILE must be set")
	}

	return &AIService{
		apiKey:      cfg.AIAPIKey,
		apiURL:      cfg.AIAPIURL,
		model:       cfg.AIModel,
		visionModel: cfg.AIVisionModel,
		client:      &http.Client{Timeout: cfg.AITimeout},
		logger:      logger,
	}, nil
}

// chatMessage is one message in a chat completion request. Content is a
// string for text messages and a slice of parts for vision messages.
type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
	Temperature    float64           `json:"temperature,omitempty"`
	MaxTokens      int               `json:"max_tokens,omitempty"`
}

// chat performs one completion call and returns the assistant content.
// Transport errors, timeouts and non-200 statuses surface as
// ErrAIUnavailable; a response we cannot decode surfaces as ErrBadAIResponse.
func (s *AIService) chat(ctx context.Context, req chatRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAIUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", ErrAIUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		// The raw body may contain provider internals; log it, never
		// propagate it to callers.
		s.logger.Warn("ai provider returned error status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return "", fmt.Errorf("%w: status %d", ErrAIUnavailable, resp.StatusCode)
	}

	var envelope struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadAIResponse, err)
	}
	if len(envelope.Choices) == 0 || envelope.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: no choices", ErrBadAIResponse)
	}

	return envelope.Choices[0].Message.Content, nil
}

// flexNumber tolerates the model emitting numbers as strings ("10 minutes",
// "4") or plain JSON numbers. Anything unparseable coerces to zero.
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = flexNumber(f)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if m := leadingNumber.FindString(strings.TrimSpace(str)); m != "" {
			fmt.Sscanf(m, "%f", &f)
		}
		*n = flexNumber(f)
		return nil
	}

	*n = 0
	return nil
}

var leadingNumber = regexp.MustCompile(`-?\d+(\.\d+)?`)

// CandidateRecipe is one raw recipe from the model after defensive coercion
// at the parse boundary. Scoring, aggregation and classification only ever
// see this fully-typed form.
type CandidateRecipe struct {
	Name        string
	Description string
	Ingredients []nutrition.RecipeIngredient
	Steps       []string
	PrepTime    int
	CookTime    int
	Servings    int
	HealthScore int
}

type rawCandidateRecipe struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Ingredients []struct {
		Name     string     `json:"name"`
		Quantity flexNumber `json:"quantity"`
		Unit     string     `json:"unit"`
	} `json:"ingredients"`
	Steps       []string   `json:"steps"`
	PrepTime    flexNumber `json:"prepTime"`
	CookTime    flexNumber `json:"cookTime"`
	Servings    flexNumber `json:"servings"`
	HealthScore flexNumber `json:"healthScore"`
}

const recipeSystemPrompt = "You create recipes from given ingredients. " +
	"Return JSON only. Use the EXACT ingredient names provided by the user " +
	"in your recipe ingredients - do not rename or rephrase them."

const recipeUserPromptTemplate = `Ingredients: %s

Make 5 recipes. Recipe 1-3: use EVERY single ingredient listed above, no exceptions. Use the exact same names I gave you. Recipe 4-5: use at least 80%% of ingredients.

Each recipe needs: name, description (1 sentence), ingredients (use EXACT names from my list with quantity and unit), steps (3-5 short steps), prepTime, cookTime, servings, healthScore (1-10).

JSON: {"recipes":[{"name":"X","description":"X","ingredients":[{"name":"Oats","quantity":500,"unit":"g"}],"steps":["X"],"prepTime":10,"cookTime":15,"servings":4,"healthScore":8}]}`

// GenerateRecipes asks the model for five recipe candidates built from the
// rendered ingredient list. The returned candidates are coerced but not yet
// scored; ranking is the orchestrator's job.
func (s *AIService) GenerateRecipes(ctx context.Context, ingredientList string) ([]CandidateRecipe, error) {
	content, err := s.chat(ctx, chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: recipeSystemPrompt},
			{Role: "user", Content: fmt.Sprintf(recipeUserPromptTemplate, ingredientList)},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
		Temperature:    0.4,
		MaxTokens:      1500,
	})
	if err != nil {
		return nil, err
	}

	var wrapper struct {
		Recipes []rawCandidateRecipe `json:"recipes"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &wrapper); err != nil {
		return nil, fmt.Errorf("%w: recipes payload: %v", ErrBadAIResponse, err)
	}
	if wrapper.Recipes == nil {
		return nil, fmt.Errorf("%w: missing recipes array", ErrBadAIResponse)
	}

	candidates := make([]CandidateRecipe, 0, len(wrapper.Recipes))
	for _, raw := range wrapper.Recipes {
		candidate := CandidateRecipe{
			Name:        strings.TrimSpace(raw.Name),
			Description: strings.TrimSpace(raw.Description),
			Steps:       raw.Steps,
			PrepTime:    int(raw.PrepTime),
			CookTime:    int(raw.CookTime),
			Servings:    int(raw.Servings),
			HealthScore: int(raw.HealthScore),
		}
		for _, ing := range raw.Ingredients {
			candidate.Ingredients = append(candidate.Ingredients, nutrition.RecipeIngredient{
				Name:     strings.TrimSpace(ing.Name),
				Quantity: float64(ing.Quantity),
				Unit:     normalizeUnit(ing.Unit),
			})
		}
		candidates = append(candidates, candidate)
	}

	return candidates, nil
}

const visionPrompt = `Analyze this image and identify ALL visible food products.

For each item:
1. Read the BRAND NAME and PRODUCT NAME from the label if visible.
2. Read the PACKAGE SIZE from the label (e.g. "500g", "1L"). If not readable, estimate a typical package size for that product.
3. If the package appears opened or partially used, estimate the remaining quantity.
4. Provide accurate macros PER 100g (or per 100ml for liquids) based on the specific product.

Return ONLY a valid JSON array with NO additional text:
[{"name": "Brand Product Name", "quantity": 500, "unit": "g", "macrosPer100g": {"calories": 200, "protein": 10, "carbs": 25, "fat": 8, "fiber": 3}}]

Rules:
- quantity must be a positive number (never 0)
- unit must be "g", "ml", "kg", "l", or "pcs"
- For loose items (eggs, fruits), use "pcs" as unit and estimate weight per piece in the name
- Always include macrosPer100g with all 5 fields
- If unsure about exact quantity, use a reasonable estimate for a standard package`

type rawScannedIngredient struct {
	Name          string     `json:"name"`
	Quantity      flexNumber `json:"quantity"`
	Unit          string     `json:"unit"`
	MacrosPer100g *struct {
		Calories flexNumber `json:"calories"`
		Protein  flexNumber `json:"protein"`
		Carbs    flexNumber `json:"carbs"`
		Fat      flexNumber `json:"fat"`
		Fiber    flexNumber `json:"fiber"`
	} `json:"macrosPer100g"`
}

// AnalyzeImage runs the vision model over a scan photo (URL or data URI) and
// returns the detected ingredient pool. Every field is validated here so no
// unvetted value ever reaches the scoring math.
func (s *AIService) AnalyzeImage(ctx context.Context, imageURL string) ([]nutrition.Ingredient, error) {
	content, err := s.chat(ctx, chatRequest{
		Model: s.visionModel,
		Messages: []chatMessage{
			{
				Role: "user",
				Content: []map[string]interface{}{
					{"type": "text", "text": visionPrompt},
					{"type": "image_url", "image_url": map[string]string{"url": imageURL}},
				},
			},
		},
		MaxTokens: 1500,
	})
	if err != nil {
		return nil, err
	}

	var raw []rawScannedIngredient
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &raw); err != nil {
		return nil, fmt.Errorf("%w: ingredients payload: %v", ErrBadAIResponse, err)
	}

	ingredients := make([]nutrition.Ingredient, 0, len(raw))
	for i, ing := range raw {
		item := nutrition.Ingredient{
			ID:       fmt.Sprintf("ing-%d", i+1),
			Name:     sanitizeName(ing.Name),
			Quantity: float64(ing.Quantity),
			Unit:     normalizeUnit(ing.Unit),
		}
		if item.Quantity <= 0 {
			item.Quantity = 100
		}
		if ing.MacrosPer100g != nil {
			item.MacrosPer100g = &nutrition.MacrosPer100g{
				Calories: nonNegative(float64(ing.MacrosPer100g.Calories)),
				Protein:  nonNegative(float64(ing.MacrosPer100g.Protein)),
				Carbs:    nonNegative(float64(ing.MacrosPer100g.Carbs)),
				Fat:      nonNegative(float64(ing.MacrosPer100g.Fat)),
				Fiber:    nonNegative(float64(ing.MacrosPer100g.Fiber)),
			}
		}
		ingredients = append(ingredients, item)
	}

	return ingredients, nil
}

// SuggestionPreferences bias the extra-ingredient suggestions.
type SuggestionPreferences struct {
	CuisinePreferences []string
	TastePreferences   []string
	FitnessGoal        string
}

// SuggestIngredients asks the model for 3-5 complementary ingredients. A
// suggestion parse failure is a soft degradation: the user just gets no
// suggestions, not an error.
func (s *AIService) SuggestIngredients(ctx context.Context, ingredients []string, prefs SuggestionPreferences) ([]nutrition.Ingredient, error) {
	cuisine := "no specific preference"
	if len(prefs.CuisinePreferences) > 0 {
		cuisine = strings.Join(prefs.CuisinePreferences, ", ")
	}
	taste := "no specific preference"
	if len(prefs.TastePreferences) > 0 {
		taste = strings.Join(prefs.TastePreferences, ", ")
	}
	goal := prefs.FitnessGoal
	if goal == "" {
		goal = "general health"
	}

	system := fmt.Sprintf(`You are a culinary expert. Given a list of ingredients and user preferences, suggest 3-5 complementary ingredients that:
1. Match the user's cuisine preferences: %s
2. Align with their taste preferences: %s
3. Support their fitness goal: %s
4. Would make delicious, well-balanced recipes together

Return a JSON array of objects with: name (string), quantity (number), unit (string, one of: g, ml, pcs, tsp, tbsp). Only return the JSON array, no other text.`, cuisine, taste, goal)

	content, err := s.chat(ctx, chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: fmt.Sprintf("Current ingredients: %s. Suggest 3-5 extra ingredients that complement these well.", strings.Join(ingredients, ", "))},
		},
		Temperature: 0.7,
		MaxTokens:   500,
	})
	if err != nil {
		return nil, err
	}

	var raw []rawScannedIngredient
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &raw); err != nil {
		return []nutrition.Ingredient{}, nil
	}

	suggestions := make([]nutrition.Ingredient, 0, len(raw))
	for i, ing := range raw {
		item := nutrition.Ingredient{
			ID:       fmt.Sprintf("suggestion-%d", i+1),
			Name:     sanitizeName(ing.Name),
			Quantity: float64(ing.Quantity),
			Unit:     normalizeUnit(ing.Unit),
		}
		if item.Quantity <= 0 {
			item.Quantity = 1
		}
		suggestions = append(suggestions, item)
	}

	return suggestions, nil
}

// stripCodeFence removes a surrounding markdown code fence, which some
// models add despite instructions.
func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}

// sanitizeName trims, strips angle brackets and caps length; empty names
// become "Unknown".
func sanitizeName(name string) string {
	name = strings.NewReplacer("<", "", ">", "").Replace(strings.TrimSpace(name))
	if len(name) > 100 {
		name = name[:100]
	}
	if name == "" {
		return "Unknown"
	}
	return name
}

var unitAliases = map[string]string{
	"ml": "ml", "milliliter": "ml", "milliliters": "ml", "millilitres": "ml",
	"l": "l", "liter": "l", "liters": "l", "litres": "l",
	"g": "g", "gram": "g", "grams": "g",
	"kg": "kg", "kilogram": "kg", "kilograms": "kg",
	"pcs": "pcs", "piece": "pcs", "pieces": "pcs", "stuk": "pcs", "stuks": "pcs",
	"tbsp": "tbsp", "tablespoon": "tbsp", "tablespoons": "tbsp",
	"tsp": "tsp", "teaspoon": "tsp", "teaspoons": "tsp",
	"cup": "cup", "cups": "cup",
	"oz": "oz", "ounce": "oz", "ounces": "oz",
	"lb": "lb", "lbs": "lb", "pound": "lb", "pounds": "lb",
}

// normalizeUnit collapses unit spellings to the canonical short forms.
// Unrecognized units pass through truncated; empty defaults to grams.
func normalizeUnit(raw string) string {
	u := strings.ToLower(strings.TrimSpace(raw))
	if u == "" {
		return "g"
	}
	if canonical, ok := unitAliases[u]; ok {
		return canonical
	}
	if len(u) > 10 {
		u = u[:10]
	}
	return u
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
