// Package prompts builds the text sent to the chat agent for avatar chat and
// conversation summarization. Limits are fixed heuristics to bound prompt
// size; there is no token counting.
package prompts

import (
	"encoding/base64"
	"fmt"
	"strings"

	"zeny-ai-backend/internal/models"
)

const (
	maxDocuments     = 3
	docExcerptLength = 500
	historyWindow    = 5
)

// DecodeDocument decodes a stored training document to text. A document whose
// content does not decode contributes nothing to the prompt; the caller skips
// it on error.
func DecodeDocument(contentBase64 string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(contentBase64)
	if err != nil {
		return "", fmt.Errorf("decode document content: %w", err)
	}
	return string(raw), nil
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func renderHistory(messages []models.Message) string {
	lines := make([]string, 0, len(messages))
	for _, msg := range messages {
		lines = append(lines, fmt.Sprintf("%s: %s", msg.Role, msg.Content))
	}
	return strings.Join(lines, "\n")
}

// AvatarChat assembles the in-persona chat prompt: personality, up to three
// decoded document excerpts, the last five messages of history, and the new
// visitor message.
func AvatarChat(avatar *models.Avatar, docs []models.TrainingDocument, history []models.Message, visitorMessage string) string {
	var training strings.Builder
	fmt.Fprintf(&training, "Personality: %s\n\n", avatar.PersonalityDescription)

	if len(docs) > 0 {
		if len(docs) > maxDocuments {
			docs = docs[:maxDocuments]
		}
		training.WriteString("Training Materials:\n")
		for _, doc := range docs {
			content, err := DecodeDocument(doc.ContentBase64)
			if err != nil {
				continue
			}
			fmt.Fprintf(&training, "- %s: %s...\n", doc.Filename, truncate(content, docExcerptLength))
		}
	}

	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}

	return fmt.Sprintf(`You are %s, an AI avatar with the following personality and training:

%s

Previous conversation:
%s

Visitor: %s

Respond as %s based on your personality and training. Be helpful and conversational.`,
		avatar.Name, training.String(), renderHistory(history), visitorMessage, avatar.Name)
}

// Summary assembles the summarization prompt over the full transcript, with
// no truncation.
func Summary(messages []models.Message) string {
	return fmt.Sprintf(`Summarize the following conversation between an AI avatar and a visitor. Include:
- Main topics discussed
- Key questions asked by the visitor
- Information provided by the avatar
- Overall outcome

Conversation:
%s

Provide a concise summary in 2-3 paragraphs.`, renderHistory(messages))
}
