package notifier

import (
	_ "embed"
	"fmt"
	"html/template"
	"log/slog"
	"strings"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/jwesterfield/jobdigest/internal/config"
	"github.com/jwesterfield/jobdigest/internal/model"
)

// Ensure EmailNotifier implements model.Notifier.
var _ model.Notifier = (*EmailNotifier)(nil)

//go:embed templates/digest.html.tmpl
var digestTemplateRaw string

var digestTemplate = template.Must(template.New("digest").Funcs(template.FuncMap{
	"scoreColor": scoreColor,
	"scoreLabel": scoreLabel,
}).Parse(digestTemplateRaw))

func scoreColor(score int) string {
	switch {
	case score >= 8:
		return "#27ae60"
	case score >= 6:
		return "#f39c12"
	default:
		return "#e74c3c"
	}
}

func scoreLabel(score int) string {
	switch {
	case score >= 8:
		return "Strong fit"
	case score >= 6:
		return "Decent fit"
	default:
		return "Weak fit"
	}
}

// EmailNotifier sends the shortlist as one HTML digest over SMTP.
type EmailNotifier struct {
	cfg    config.EmailConfig
	logger *slog.Logger
	now    func() time.Time
}

// NewEmailNotifier returns a notifier that emails the digest.
func NewEmailNotifier(cfg config.EmailConfig, logger *slog.Logger) *EmailNotifier {
	return &EmailNotifier{cfg: cfg, logger: logger, now: time.Now}
}

// digestData is the template payload for one digest email.
type digestData struct {
	Date  string
	Count int
	Cards []digestCard
}

type digestCard struct {
	Rank       int
	Source     string
	Link       string
	Title      string
	Company    string
	Salary     string
	Score      int
	FitSummary string
	KeyMatch   string
	Concern    string // empty hides the concern row
}

// Notify renders and sends the digest. An empty shortlist sends nothing.
func (n *EmailNotifier) Notify(shortlist []model.ScoredListing) error {
	if len(shortlist) == 0 {
		n.logger.Info("empty shortlist, skipping email")
		return nil
	}

	date := n.now().Format("January 2, 2006")
	html, err := renderDigest(shortlist, date)
	if err != nil {
		return fmt.Errorf("render digest: %w", err)
	}

	subject := fmt.Sprintf("Job Digest %s: %d matched jobs", date, len(shortlist))
	if err := n.send(subject, html); err != nil {
		return fmt.Errorf("send digest: %w", err)
	}
	n.logger.Info("digest emailed", "to", n.cfg.To, "jobs", len(shortlist))
	return nil
}

// renderDigest builds the HTML body for a shortlist.
func renderDigest(shortlist []model.ScoredListing, date string) (string, error) {
	data := digestData{
		Date:  date,
		Count: len(shortlist),
	}
	for i, s := range shortlist {
		concern := ""
		if s.Assessment.HasConcern() {
			concern = s.Assessment.Concern
		}
		data.Cards = append(data.Cards, digestCard{
			Rank:       i + 1,
			Source:     s.Listing.Source,
			Link:       s.Listing.Link,
			Title:      s.Listing.Title,
			Company:    s.Listing.Company,
			Salary:     salaryDisplay(s),
			Score:      s.Assessment.FitScore,
			FitSummary: s.Assessment.FitSummary,
			KeyMatch:   s.Assessment.KeyMatch,
			Concern:    concern,
		})
	}

	var buf strings.Builder
	if err := digestTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (n *EmailNotifier) send(subject, html string) error {
	msg := mail.NewMsg()
	if err := msg.From(n.cfg.From); err != nil {
		return fmt.Errorf("set from: %w", err)
	}
	if err := msg.To(n.cfg.To); err != nil {
		return fmt.Errorf("set to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, html)

	client, err := mail.NewClient(n.cfg.Host,
		mail.WithPort(n.cfg.Port),
		mail.WithSSL(),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(n.cfg.Username),
		mail.WithPassword(n.cfg.Password),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	return client.DialAndSend(msg)
}

// SendTestDigest sends a digest of fabricated listings to verify delivery
// settings end to end.
func SendTestDigest(n model.Notifier) error {
	test := []model.ScoredListing{
		{
			Listing: model.JobListing{
				Title:      "Test Notification: Senior Backend Engineer",
				Company:    "Jobdigest Test",
				Link:       "https://example.com/jobs/test",
				SalaryText: "$100,000 - $120,000/year",
				Source:     "test",
			},
			Assessment: model.FitAssessment{
				FitScore:        9,
				IsBackend:       true,
				IsRemote:        true,
				EstimatedSalary: "$100k-$120k",
				SalaryInRange:   true,
				FitSummary:      "This is a test card confirming digest delivery works.",
				KeyMatch:        "Delivery settings verified",
				Concern:         "None",
			},
		},
	}
	return n.Notify(test)
}
