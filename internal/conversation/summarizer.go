package conversation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/adelinv/replyscore/internal/helpscout"
)

const (
	// Cap on each transcript line after cleaning.
	transcriptLineLimit = 500
	// Entries shorter than this after cleaning carry no signal.
	transcriptMinLength = 10
)

// BuildTranscript produces a short labeled excerpt of the most recent
// maxEntries messages in chronological order, for model context.
// Returns an empty string when nothing qualifies.
func BuildTranscript(threads []helpscout.Thread, maxEntries int) string {
	sorted := make([]helpscout.Thread, len(threads))
	copy(sorted, threads)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	var lines []string
	for _, thread := range sorted {
		if !thread.IsConversational() {
			continue
		}
		label := authorLabel(thread.Author())
		if label == "" {
			continue
		}
		text := CleanBody(thread.Body)
		if len(text) < transcriptMinLength {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", label, Truncate(text, transcriptLineLimit)))
	}

	if len(lines) > maxEntries {
		lines = lines[len(lines)-maxEntries:]
	}

	return strings.Join(lines, "\n")
}

func authorLabel(author helpscout.Author) string {
	switch author {
	case helpscout.AuthorCustomer:
		return "CUSTOMER"
	case helpscout.AuthorTeam:
		return "TEAM"
	case helpscout.AuthorSystem:
		return "SYSTEM"
	default:
		return ""
	}
}
