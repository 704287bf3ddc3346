// Package assistant turns questions into answers through a strict
// fallback chain: remote completion with knowledge context, then local
// knowledge alone, then canned responses. Every path returns a
// Response; the chain never surfaces an error to the caller.
package assistant

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/rithythul/koompi-os/internal/knowledge"
	"github.com/rithythul/koompi-os/internal/llm"
)

// Response source tags, ordered by descending confidence.
const (
	SourceRemote          = "remote"
	SourceRemoteKnowledge = "remote+knowledge"
	SourceKnowledge       = "knowledge"
	SourceCanned          = "canned"
	SourceNone            = "none"
)

const (
	contextMaxTokens = 2000
	defaultTimeout   = 30 * time.Second
	defaultMaxTokens = 2048
)

// Response is the orchestrated answer to one question.
type Response struct {
	Text          string
	Confidence    float64
	Source        string
	IsOffline     bool
	KnowledgeUsed []string
}

// Assistant answers questions using local knowledge and an optional
// remote provider. A nil provider means permanent offline mode.
type Assistant struct {
	store     *knowledge.Store
	provider  llm.Provider
	timeout   time.Duration
	maxTokens int
}

// New creates an assistant. timeout bounds each remote call; maxTokens
// caps the remote completion length. Zero values select defaults.
func New(store *knowledge.Store, provider llm.Provider, timeout time.Duration, maxTokens int) *Assistant {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &Assistant{
		store:     store,
		provider:  provider,
		timeout:   timeout,
		maxTokens: maxTokens,
	}
}

// Ask answers a question. Knowledge context is assembled first so it is
// available to every fallback. Set useKnowledge to false to skip the
// local search entirely.
func (a *Assistant) Ask(ctx context.Context, query string, useKnowledge bool) Response {
	var contextText string
	var titles []string

	if useKnowledge && a.store != nil {
		ct, results, err := a.store.BuildContext(query, contextMaxTokens)
		if err != nil {
			log.Printf("Knowledge search failed: %v", err)
		} else {
			contextText = ct
			titles = knowledge.Titles(results)
		}
		if len(titles) > 0 {
			log.Printf("Found relevant articles: %v", titles)
		}
	}

	remoteAttempted := false
	if a.provider != nil && a.provider.IsConfigured() {
		remoteAttempted = true
		text, err := a.askRemote(ctx, query, contextText)
		if err == nil {
			source := SourceRemote
			if len(titles) > 0 {
				source = SourceRemoteKnowledge
			}
			return Response{
				Text:          text,
				Confidence:    0.95,
				Source:        source,
				KnowledgeUsed: titles,
			}
		}
		log.Printf("Remote generation failed, falling back: %v", err)
	}

	if contextText != "" {
		return knowledgeResponse(contextText, titles)
	}

	if text, ok := cannedResponse(query); ok {
		return Response{Text: text, Confidence: 0.6, Source: SourceCanned, IsOffline: true}
	}

	if remoteAttempted {
		return Response{Text: unreachableResponse, Confidence: 0.0, Source: SourceNone, IsOffline: true}
	}
	return Response{Text: offlineFallbackResponse, Confidence: 0.3, Source: SourceCanned, IsOffline: true}
}

// askRemote invokes the provider with a bounded timeout. When context
// is available the prompt instructs the model to use it as reference
// without limiting itself to it.
func (a *Assistant) askRemote(ctx context.Context, query, contextText string) (string, error) {
	prompt := query
	if contextText != "" {
		prompt = fmt.Sprintf(`User Question: %s

%s

Please answer the user's question. Use the documentation above as reference if relevant, but also apply your broader knowledge. Be helpful and educational.`, query, contextText)
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	return a.provider.Generate(ctx, prompt, a.maxTokens)
}

// knowledgeResponse presents assembled context verbatim, framed as a
// locally sourced answer.
func knowledgeResponse(contextText string, titles []string) Response {
	named := titles
	if len(named) > 3 {
		named = named[:3]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Based on my knowledge base (%s):\n\n", strings.Join(named, ", "))
	sb.WriteString(contextText)
	sb.WriteString("\n\n---\n*Answer from local knowledge base (offline mode)*")

	return Response{
		Text:          sb.String(),
		Confidence:    0.75,
		Source:        SourceKnowledge,
		IsOffline:     true,
		KnowledgeUsed: titles,
	}
}
