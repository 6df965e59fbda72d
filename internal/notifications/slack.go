package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/K0NGR3SS/slrledger/internal/models"
)

type SlackNotifier struct {
	WebhookURL string
	Channel    string
	HTTP       *http.Client
}

type slackMessage struct {
	Channel     string            `json:"channel,omitempty"`
	Username    string            `json:"username"`
	IconEmoji   string            `json:"icon_emoji"`
	Text        string            `json:"text"`
	Attachments []slackAttachment `json:"attachments"`
}

type slackAttachment struct {
	Color  string       `json:"color"`
	Title  string       `json:"title"`
	Text   string       `json:"text,omitempty"`
	Fields []slackField `json:"fields"`
	Footer string       `json:"footer"`
}

type slackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

// Announcement describes one ledger append.
type Announcement struct {
	RunID         string
	Entry         models.Entry
	Rows          int
	NewVocabulary map[string][]string
}

func NewSlackNotifier(webhookURL, channel string) *SlackNotifier {
	return &SlackNotifier{
		WebhookURL: webhookURL,
		Channel:    channel,
		HTTP:       http.DefaultClient,
	}
}

func (s *SlackNotifier) SendEntry(ctx context.Context, a Announcement) error {
	fields := make([]slackField, 0, len(models.Columns))
	for i, v := range a.Entry.Values() {
		if v == "" {
			v = "-"
		}
		fields = append(fields, slackField{
			Title: models.Columns[i],
			Value: v,
			Short: len(v) < 40,
		})
	}

	attachments := []slackAttachment{
		{
			Color:  "good",
			Title:  fmt.Sprintf("Study %s", a.Entry.Study),
			Fields: fields,
			Footer: fmt.Sprintf("slrledger run %s", a.RunID),
		},
	}

	if len(a.NewVocabulary) > 0 {
		var b strings.Builder
		for _, name := range sortedKeys(a.NewVocabulary) {
			for _, v := range a.NewVocabulary[name] {
				b.WriteString(fmt.Sprintf("• *%s*: %s\n", name, v))
			}
		}
		attachments = append(attachments, slackAttachment{
			Color: "warning",
			Title: "New vocabulary values (issue form regenerated)",
			Text:  b.String(),
		})
	}

	msg := slackMessage{
		Channel:     s.Channel,
		Username:    "slrledger",
		IconEmoji:   ":books:",
		Text:        fmt.Sprintf("📚 *SLR entry added*\nThe ledger now holds *%d* studies", a.Rows),
		Attachments: attachments,
	}

	return s.sendMessage(ctx, msg)
}

func (s *SlackNotifier) sendMessage(ctx context.Context, msg slackMessage) error {
	jsonData, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal slack message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.WebhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to build slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := s.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send slack message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack returned non-200 status: %d", resp.StatusCode)
	}

	return nil
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
