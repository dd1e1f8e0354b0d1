package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"go.uber.org/zap"

	"diplomakids/pkg/utils"
)

type IMailService interface {
	SendWelcome(ctx context.Context, to, familyName string) error
	SendContributionReceived(ctx context.Context, to string, note ContributionNote) error
	SendThankYouVideo(ctx context.Context, to string, note ThankYouNote) error
}

type ContributionNote struct {
	ChildName       string
	Amount          float64
	ContributorName string
	Message         string
}

type ThankYouNote struct {
	ChildName       string
	ContributorName string
	VideoURL        string
}

// MailTransport delivers an already rendered message.
type MailTransport interface {
	Send(ctx context.Context, to, subject, htmlBody, textBody string) error
}

type MailConfig struct {
	AppName    string
	AppBaseURL string
}

type mailService struct {
	cfg       MailConfig
	transport MailTransport
	htmlTpl   *template.Template
	textTpl   *texttemplate.Template
	log       *zap.Logger
}

func NewMailService(cfg MailConfig, transport MailTransport, log *zap.Logger) IMailService {
	return &mailService{
		cfg:       cfg,
		transport: transport,
		htmlTpl:   template.Must(template.New("html").Parse(baseHTMLTemplate)),
		textTpl:   texttemplate.Must(texttemplate.New("text").Parse(plainTextTemplate)),
		log:       log,
	}
}

func (s *mailService) SendWelcome(ctx context.Context, to, familyName string) error {
	return s.deliver(ctx, to, EmailData{
		Title:     "Welcome to " + s.cfg.AppName + "!",
		Intro:     fmt.Sprintf("Hi %s, your family account is ready. Add your children, set a college savings goal and invite relatives to contribute.", familyName),
		ButtonURL: strings.TrimRight(s.cfg.AppBaseURL, "/") + "/dashboard",
		ButtonTxt: "Open your dashboard",
	})
}

func (s *mailService) SendContributionReceived(ctx context.Context, to string, note ContributionNote) error {
	from := note.ContributorName
	if from == "" {
		from = "Someone special"
	}
	intro := fmt.Sprintf("%s contributed $%.2f to %s's education fund.", from, note.Amount, note.ChildName)
	if note.Message != "" {
		intro += fmt.Sprintf(" They wrote: %q", note.Message)
	}
	return s.deliver(ctx, to, EmailData{
		Title:     fmt.Sprintf("New contribution for %s!", note.ChildName),
		Intro:     intro,
		ButtonURL: strings.TrimRight(s.cfg.AppBaseURL, "/") + "/contributions",
		ButtonTxt: "Say thank you",
	})
}

func (s *mailService) SendThankYouVideo(ctx context.Context, to string, note ThankYouNote) error {
	greeting := "Hi"
	if note.ContributorName != "" {
		greeting = "Hi " + note.ContributorName
	}
	return s.deliver(ctx, to, EmailData{
		Title:     fmt.Sprintf("%s recorded a thank-you for you", note.ChildName),
		Intro:     fmt.Sprintf("%s, your gift made a difference. %s sent you a thank-you video.", greeting, note.ChildName),
		ButtonURL: note.VideoURL,
		ButtonTxt: "Watch the video",
	})
}

type EmailData struct {
	Title     string
	Intro     string
	ButtonURL string
	ButtonTxt string
	AppName   string
	Year      int
}

const baseHTMLTemplate = `<!doctype html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width,initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body { margin: 0; padding: 0; background: #f4f7fb; color: #1f2937; font-family: -apple-system, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; }
    .container { max-width: 600px; margin: 32px auto; background: #ffffff; border-radius: 12px; overflow: hidden; }
    .header { padding: 24px 32px; background: #1d4ed8; color: #ffffff; font-weight: 700; font-size: 20px; }
    .hero { padding: 32px; }
    h1 { margin: 0 0 16px; font-size: 24px; }
    p { margin: 0 0 20px; line-height: 1.6; color: #374151; }
    .btn { display: inline-block; padding: 14px 28px; background: #f59e0b; color: #ffffff !important; text-decoration: none; border-radius: 8px; font-weight: 600; }
    .muted { color: #6b7280; font-size: 13px; word-break: break-all; }
    .footer { padding: 20px 32px; color: #9ca3af; font-size: 12px; text-align: center; border-top: 1px solid #e5e7eb; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">{{.AppName}}</div>
    <div class="hero">
      <h1>{{.Title}}</h1>
      <p>{{.Intro}}</p>
      {{if .ButtonURL}}
        <p><a class="btn" href="{{.ButtonURL}}">{{.ButtonTxt}}</a></p>
        <p class="muted">Or open this link: {{.ButtonURL}}</p>
      {{end}}
    </div>
    <div class="footer">&copy; {{.Year}} {{.AppName}}. Saving for tomorrow, together.</div>
  </div>
</body>
</html>`

const plainTextTemplate = `{{.Title}}

{{.Intro}}
{{if .ButtonURL}}
{{.ButtonTxt}}: {{.ButtonURL}}
{{end}}
-- {{.AppName}} (c) {{.Year}}
`

func (s *mailService) renderEmail(data EmailData) (html string, text string, err error) {
	var hb, tb bytes.Buffer
	if err = s.htmlTpl.Execute(&hb, data); err != nil {
		return "", "", err
	}
	if err = s.textTpl.Execute(&tb, data); err != nil {
		return "", "", err
	}
	return hb.String(), tb.String(), nil
}

func (s *mailService) deliver(ctx context.Context, to string, data EmailData) error {
	data.AppName = s.cfg.AppName
	data.Year = time.Now().Year()

	html, text, err := s.renderEmail(data)
	if err != nil {
		return fmt.Errorf("render %q: %w", data.Title, err)
	}
	if err := s.transport.Send(ctx, to, data.Title, html, text); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrMailDelivery, err)
	}
	s.log.Debug("email sent", zap.String("to", to), zap.String("subject", data.Title))
	return nil
}
