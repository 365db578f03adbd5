// Package insight asks a generative model for a recommendation on a single position.
package insight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/positions"
	"google.golang.org/genai"
)

// Model is the default model used by an Analyst.
const Model = "gemini-2.5-pro"

// Sentiment is the reading of one source of information.
type Sentiment string

const (
	Positive Sentiment = "Positive"
	Neutral  Sentiment = "Neutral"
	Negative Sentiment = "Negative"
)

// Recommendation is the suggested action on a position.
type Recommendation string

const (
	Buy  Recommendation = "BUY"
	Hold Recommendation = "HOLD"
	Sell Recommendation = "SELL"
)

// Insight is the analysis of a symbol.
type Insight struct {
	Symbol         string         `json:"symbol,omitempty"`
	TechData       Sentiment      `json:"techData"`
	NewsData       Sentiment      `json:"newsData"`
	AIAnalysis     Sentiment      `json:"aiAnalysis"`
	Recommendation Recommendation `json:"recommendation"`
	Reasoning      string         `json:"reasoning"`
}

// ErrInvalidInsight is returned when the model answer does not follow the contract.
var ErrInvalidInsight = errors.New("invalid insight")

const contract = `You must return the response strictly in the following JSON format. Do not include markdown, triple backticks, or any other formatting:

{
  "techData": "Positive | Neutral | Negative",
  "newsData": "Positive | Neutral | Negative",
  "aiAnalysis": "Positive | Neutral | Negative",
  "recommendation": "BUY | HOLD | SELL",
  "reasoning": "<Concise bullet points.>"
}`

const systemInstruction = `You are a careful equity analyst.
Use Google Search to find the latest market data and news articles about the company behind a stock symbol.
"techData" is your reading of the market data, "newsData" your reading of the news, and "aiAnalysis" your overall reading.
` + contract

// BuildPrompt returns the question asked about a position: its aggregated row and its lots.
func BuildPrompt(row positions.Row, lots []positions.Lot) (string, error) {
	rowData, err := json.MarshalIndent(row, "", "  ")
	if err != nil {
		return "", fmt.Errorf("cannot encode row %s: %w", row.Symbol, err)
	}
	lotsData, err := json.MarshalIndent(lots, "", "  ")
	if err != nil {
		return "", fmt.Errorf("cannot encode lots of %s: %w", row.Symbol, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Based on the latest stock data and news, provide an investment recommendation for the stock symbol %s.\n\n", row.Symbol)
	b.WriteString(contract)
	b.WriteString("\n\nPosition:\n")
	b.Write(rowData)
	b.WriteString("\n\nLots:\n")
	b.Write(lotsData)
	b.WriteString("\n")
	return b.String(), nil
}

// ParseInsight decodes a model answer.
// Markdown fences around the JSON are ignored, missing fields take neutral defaults.
func ParseInsight(text string) (Insight, error) {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	var in Insight
	if err := json.Unmarshal([]byte(text), &in); err != nil {
		return Insight{}, fmt.Errorf("%w: %v", ErrInvalidInsight, err)
	}

	if in.TechData == "" {
		in.TechData = Neutral
	}
	if in.NewsData == "" {
		in.NewsData = Neutral
	}
	if in.AIAnalysis == "" {
		in.AIAnalysis = Neutral
	}
	if in.Recommendation == "" {
		in.Recommendation = Hold
	}
	if in.Reasoning == "" {
		in.Reasoning = "No reasoning provided."
	}

	for name, s := range map[string]Sentiment{"techData": in.TechData, "newsData": in.NewsData, "aiAnalysis": in.AIAnalysis} {
		switch s {
		case Positive, Neutral, Negative:
		default:
			return Insight{}, fmt.Errorf("%w: %s %q", ErrInvalidInsight, name, s)
		}
	}
	switch in.Recommendation {
	case Buy, Hold, Sell:
	default:
		return Insight{}, fmt.Errorf("%w: recommendation %q", ErrInvalidInsight, in.Recommendation)
	}
	return in, nil
}

// sender is the part of a genai.Chat used by the Analyst.
type sender interface {
	Send(ctx context.Context, parts ...*genai.Part) (*genai.GenerateContentResponse, error)
}

// Analyst chats with a model to produce insights.
type Analyst struct {
	ModelName string
	Config    *genai.GenerateContentConfig
	chat      sender
}

// NewAnalyst returns an Analyst using the default model, grounded with Google Search.
func NewAnalyst() *Analyst {
	return &Analyst{
		ModelName: Model,
		Config: &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
			Tools:             []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
		},
	}
}

// Start opens the chat session.
func (a *Analyst) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, a.ModelName, a.Config, nil)
	if err != nil {
		return fmt.Errorf("cannot start analyst chat: %w", err)
	}
	a.chat = chat
	return nil
}

// Analyze asks for an insight on the position described by row and lots.
func (a *Analyst) Analyze(ctx context.Context, row positions.Row, lots []positions.Lot) (Insight, error) {
	if a.chat == nil {
		return Insight{}, errors.New("analyst chat not started")
	}
	prompt, err := BuildPrompt(row, lots)
	if err != nil {
		return Insight{}, err
	}
	resp, err := a.chat.Send(ctx, &genai.Part{Text: prompt})
	if err != nil {
		return Insight{}, fmt.Errorf("cannot analyze %s: %w", row.Symbol, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return Insight{}, fmt.Errorf("no analysis for %s", row.Symbol)
	}
	var text strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}
	in, err := ParseInsight(text.String())
	if err != nil {
		return Insight{}, fmt.Errorf("cannot analyze %s: %w", row.Symbol, err)
	}
	in.Symbol = row.Symbol
	return in, nil
}
