// File: internal/services/bot/format.go
package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iyunix/go-vendornexus/internal/domain"
)

const (
	GreetingMessage = "👋 Hello! I'm your Vendor Finder Assistant.\n\n" +
		"I can help you source suppliers for materials and products.\n" +
		"Just tell me what you're looking for! (e.g., 'I need 5000 units of SS304 valves')"
	ClearedMessage = "🧹 Conversation history cleared."
	ErrorMessage   = "⚠️ Sorry, I encountered an error while processing your request. Please try again later."
)

// FormatVendorCard renders one vendor as a Markdown chat message.
func FormatVendorCard(v domain.Vendor) string {
	rating := "N/A"
	if v.Rating != nil {
		rating = strconv.FormatFloat(*v.Rating, 'f', -1, 64)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🏢 *%s*\n", v.Name)
	fmt.Fprintf(&b, "📍 Location: %s, %s\n", orDefault(v.City, "N/A"), v.Country)
	fmt.Fprintf(&b, "📞 Contact: %s\n", orDefault(v.Contact, "N/A"))
	fmt.Fprintf(&b, "🌐 Website: %s\n", orDefault(v.Website, "N/A"))
	fmt.Fprintf(&b, "⭐ Rating: %s\n", rating)
	fmt.Fprintf(&b, "📝 Notes: %s", orDefault(v.Notes, "No notes"))
	return b.String()
}

// StripMarkdown removes the emphasis markers that make a card unparseable.
func StripMarkdown(text string) string {
	return strings.NewReplacer("*", "", "_", "").Replace(text)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
