package notify

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"

	"github.com/ricardomaia/agendador/internal/gcal"
	"github.com/ricardomaia/agendador/internal/nlp"
)

// ResendNotifier emails event confirmations via the Resend API
type ResendNotifier struct {
	client      *resend.Client
	fromAddress string
}

// NewResendNotifier creates a new Resend email notifier. Returns nil
// when no API key is configured; callers treat a nil notifier as
// "email disabled".
func NewResendNotifier(apiKey, from string) *ResendNotifier {
	if apiKey == "" || from == "" {
		return nil
	}
	return &ResendNotifier{
		client:      resend.NewClient(apiKey),
		fromAddress: from,
	}
}

// EventCreated emails a confirmation for a freshly created event
func (r *ResendNotifier) EventCreated(ctx context.Context, to string, ev *gcal.Event) error {
	if to == "" {
		return fmt.Errorf("no recipient specified")
	}

	subject := fmt.Sprintf("Evento agendado: %s", ev.Summary)
	html := formatEventHTML(ev)

	params := &resend.SendEmailRequest{
		From:    r.fromAddress,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	if _, err := r.client.Emails.Send(params); err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}

	fmt.Printf("Email confirmation sent to %s for event: %s\n", to, ev.Summary)
	return nil
}

// formatEventHTML creates the HTML email body
func formatEventHTML(ev *gcal.Event) string {
	dateStr := fmt.Sprintf("%s, %s", nlp.FormatWeekday(ev.StartTime.Weekday()), ev.StartTime.Format("02/01/2006"))

	timeHTML := ""
	if ev.AllDay {
		timeHTML = `<p style="margin: 8px 0;"><strong>Horário:</strong> dia todo</p>`
	} else {
		timeHTML = fmt.Sprintf(`<p style="margin: 8px 0;"><strong>Horário:</strong> %s - %s</p>`,
			ev.StartTime.Format("15:04"), ev.EndTime.Format("15:04"))
	}

	locationHTML := ""
	if ev.Location != "" {
		locationHTML = fmt.Sprintf(`<p style="margin: 8px 0;"><strong>Local:</strong> %s</p>`, ev.Location)
	}

	meetHTML := ""
	if ev.MeetLink != "" {
		meetHTML = fmt.Sprintf(`<p style="margin: 8px 0;"><strong>Google Meet:</strong> <a href="%s">%s</a></p>`, ev.MeetLink, ev.MeetLink)
	}

	linkHTML := ""
	if ev.HTMLLink != "" {
		linkHTML = fmt.Sprintf(`
    <a href="%s" style="display: inline-block; background: #007bff; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; margin-top: 16px; font-weight: 500;">
      Ver no Google Calendar
    </a>`, ev.HTMLLink)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f5f5f5;">
  <div style="background-color: white; border-radius: 8px; padding: 24px; box-shadow: 0 2px 4px rgba(0,0,0,0.1);">
    <div style="margin-bottom: 16px;">
      <span style="background-color: #28a745; color: white; padding: 4px 12px; border-radius: 4px; font-size: 12px; font-weight: 600;">Evento criado</span>
    </div>

    <h2 style="margin: 0 0 16px 0; color: #333;">%s</h2>

    <div style="background: #f8f9fa; padding: 16px; border-radius: 8px; margin: 16px 0; border-left: 4px solid #007bff;">
      <p style="margin: 8px 0;"><strong>Data:</strong> %s</p>
      %s
      %s
      %s
    </div>
%s

    <hr style="margin-top: 32px; border: none; border-top: 1px solid #eee;">
    <p style="color: #999; font-size: 12px; margin-top: 16px;">
      Agendador - Assistente de agendamento pelo Telegram
    </p>
  </div>
</body>
</html>`,
		ev.Summary,
		dateStr,
		timeHTML,
		locationHTML,
		meetHTML,
		linkHTML,
	)
}
