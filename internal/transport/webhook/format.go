// Package webhook hosts the chat-channel inbound handlers. Telegram and
// WhatsApp payloads differ, but both funnel into the shared ingestion
// service and reply with the same chat-formatted summaries.
package webhook

import (
	"fmt"
	"strings"

	"github.com/vkuzmenko/linkmark/internal/domain"
	"github.com/vkuzmenko/linkmark/internal/service/bookmark"
	"github.com/vkuzmenko/linkmark/internal/service/ingest"
)

const apologyMessage = "❌ Sorry, something went wrong while processing your message. Please try again later."

// helpMessage is sent whenever a chat message contains no URLs.
func helpMessage() string {
	return strings.Join([]string{
		"👋 Hi! Send me any web links and I'll save them as organized bookmarks with smart tags.",
		"",
		"📝 Add context for better tagging:",
		`Example: "Read later for work" + [link]`,
		"",
		"Commands:",
		"/help - Show this message",
		"/stats - View your bookmark statistics",
		"/bookmark <url> [description] - Save with description",
	}, "\n")
}

// formatResults renders the per-URL ✅/❌ summary for a processed chat
// message, ending with a pointer to the todo list.
func formatResults(outcomes []ingest.URLOutcome, todoURL string) string {
	var saved []*ingest.Result
	var failed int
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			continue
		}
		saved = append(saved, o.Result)
	}

	var b strings.Builder

	if len(saved) > 0 {
		plural := ""
		if len(saved) > 1 {
			plural = "s"
		}
		fmt.Fprintf(&b, "✅ Created %d bookmark%s!\n\n", len(saved), plural)

		for i, res := range saved {
			if len(saved) > 1 {
				fmt.Fprintf(&b, "%d. ", i+1)
			}
			fmt.Fprintf(&b, "📚 %s\n", res.Bookmark.Title)
			if len(res.TagNames) > 0 {
				hashtags := make([]string, len(res.TagNames))
				for j, name := range res.TagNames {
					hashtags[j] = "#" + name
				}
				fmt.Fprintf(&b, "🏷️ %s\n", strings.Join(hashtags, " "))
			}
			switch res.Bookmark.Priority {
			case domain.PriorityHigh:
				b.WriteString("🔥 High Priority\n")
			case domain.PriorityLow:
				b.WriteString("📅 Low Priority\n")
			}
			fmt.Fprintf(&b, "🔗 %s\n\n", res.Bookmark.URL)
		}
	}

	if failed > 0 {
		plural := ""
		if failed > 1 {
			plural = "s"
		}
		fmt.Fprintf(&b, "❌ Failed to process %d link%s\n\n", failed, plural)
	}

	if len(saved) > 0 && todoURL != "" {
		fmt.Fprintf(&b, "📋 Todo list: %s", todoURL)
	}

	reply := strings.TrimRight(b.String(), "\n")
	if reply == "" {
		return "❌ No bookmarks were created. Please try again."
	}
	return reply
}

// formatStats renders the /stats command reply.
func formatStats(stats *bookmark.Stats) string {
	return strings.Join([]string{
		"📊 Your Bookmark Statistics",
		"",
		fmt.Sprintf("📚 Total Bookmarks: %d", stats.Total),
		fmt.Sprintf("📋 Todo: %d", stats.ByStatus[domain.StatusTodo]),
		fmt.Sprintf("✅ Reviewed: %d", stats.ByStatus[domain.StatusReviewed]),
		fmt.Sprintf("🔥 High Priority: %d", stats.ByPriority[domain.PriorityHigh]),
		fmt.Sprintf("🏷️ Total Tags: %d", stats.TagCount),
	}, "\n")
}
