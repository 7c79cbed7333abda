package notify

import (
	"fmt"
	"strings"
)

// Message is the summary sent when sibling deletions fail.
type Message struct {
	Subject    string
	Body       string
	Recipients []string
}

// Compose builds the failure summary for the cascade started by triggerAssetID.
func Compose(siteName, triggerAssetID string, reasons []string, recipients []string) Message {
	site := strings.TrimSpace(siteName)
	if site == "" {
		site = "cms"
	}
	return Message{
		Subject: fmt.Sprintf("[%s] Media Sync Deletion Errors", site),
		Body: fmt.Sprintf("Errors occurred while deleting translations for media ID: %s\n\nErrors:\n%s",
			triggerAssetID, strings.Join(reasons, "\n")),
		Recipients: append([]string(nil), recipients...),
	}
}
