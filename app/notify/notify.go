// Package notify sends messages about settled generation jobs to email and webhook destinations
package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/notify"

	"github.com/umputun/iqcmaker/app/enums"
	"github.com/umputun/iqcmaker/app/lifecycle"
)

//go:generate moq -out mocks/notifier.go -pkg mocks -skip-ensure -fmt goimports github.com/go-pkgz/notify Notifier:NotifierMock

// Service delivers job notifications to all configured destinations
type Service struct {
	Params
	destinations []notify.Notifier
	fromEmail    string
	toEmail      []string
	webhookURLs  []string
}

// Params define what and when to send
type Params struct {
	EnabledError      bool
	EnabledCompletion bool
	HostName          string
	Timeout           time.Duration // per-message send timeout, 10s if not set
}

// SendersParams define destinations
type SendersParams struct {
	notify.SMTPParams
	FromEmail   string
	ToEmails    []string
	WebhookURLs []string
}

// NewService makes notification service, returns nil if no destinations configured
func NewService(p Params, sp SendersParams) *Service {
	res := &Service{Params: p, fromEmail: sp.FromEmail, toEmail: sp.ToEmails, webhookURLs: sp.WebhookURLs}
	if res.Timeout == 0 {
		res.Timeout = 10 * time.Second
	}
	if len(sp.ToEmails) > 0 {
		smtpParams := sp.SMTPParams
		if smtpParams.ContentType == "" {
			smtpParams.ContentType = "text/html"
		}
		res.destinations = append(res.destinations, notify.NewEmail(smtpParams))
	}
	if len(sp.WebhookURLs) > 0 {
		res.destinations = append(res.destinations, notify.NewWebhook(notify.WebhookParams{Timeout: res.Timeout}))
	}
	if len(res.destinations) == 0 {
		return nil
	}
	log.Printf("[INFO] notifications enabled, emails %v, webhooks %d", sp.ToEmails, len(sp.WebhookURLs))
	return res
}

// Listen sends notifications for job events till events channel closed or ctx canceled
func (s *Service) Listen(ctx context.Context, events <-chan lifecycle.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-events:
			if !ok {
				return
			}
			if err := s.OnEvent(ctx, evt); err != nil {
				log.Printf("[WARN] can't send notification for job %s, %v", evt.Record.ID, err)
			}
		}
	}
}

// OnEvent sends notification for a single event if this kind of event is enabled
func (s *Service) OnEvent(ctx context.Context, evt lifecycle.Event) error {
	var subj string
	var tmpl *template.Template
	switch {
	case evt.Type == enums.EventTypeFailed && s.EnabledError:
		subj, tmpl = "iqcmaker job failed on "+s.HostName, failedTmpl
	case evt.Type == enums.EventTypeSucceeded && s.EnabledCompletion:
		subj, tmpl = "iqcmaker job completed on "+s.HostName, completedTmpl
	default:
		return nil
	}

	msg, err := s.makeHTML(tmpl, evt)
	if err != nil {
		return err
	}
	ctxTimeout, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()
	return s.Send(ctxTimeout, subj, msg)
}

// Send message to all destinations
func (s *Service) Send(ctx context.Context, subj, text string) error {
	var errs []error
	for _, dest := range s.destinations {
		switch dest.Schema() {
		case "mailto":
			to := fmt.Sprintf("mailto:%s?from=%s&subject=%s", strings.Join(s.toEmail, ","), s.fromEmail, url.QueryEscape(subj))
			if err := dest.Send(ctx, to, text); err != nil {
				errs = append(errs, err)
			}
		default:
			for _, u := range s.webhookURLs {
				if err := dest.Send(ctx, u, subj+"\n"+text); err != nil {
					errs = append(errs, fmt.Errorf("webhook %s: %w", u, err))
				}
			}
		}
	}
	return errors.Join(errs...)
}

func (s *Service) makeHTML(tmpl *template.Template, evt lifecycle.Event) (string, error) {
	data := struct {
		Host      string
		TS        time.Time
		ID        string
		Text      string
		Submitted string
		Result    string
		Total     int64
	}{
		Host:      s.HostName,
		TS:        time.Now(),
		ID:        evt.Record.ID,
		Text:      evt.Record.Text,
		Submitted: evt.Record.Timestamp,
		Result:    evt.Record.Result,
		Total:     evt.Total,
	}
	buf := bytes.Buffer{}
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to apply template: %w", err)
	}
	return buf.String(), nil
}

const msgStyle = `<style type="text/css">
			body {
				font-family: "Arial";
				font-size: 1.0em;
			}
			ul {
				margin-top: -0.5em;
				margin-left: -0.5em;
			}
			.bold {
				color: #882828;
				font-weight: 900;
			}
		</style>`

var failedTmpl = template.Must(template.New("failed").Parse(`<!DOCTYPE html>
<html>
	<head>
		<meta name="viewport" content="width=device-width" />
		<meta http-equiv="Content-Type" content="text/html; charset=UTF-8" />
		` + msgStyle + `
	</head>
	<body>
		<p>Iqcmaker job failed on <span class="bold">{{.Host}}</span> at {{.TS.Format "2006-01-02T15:04:05Z07:00"}}</p>
		<ul>
			<li>Job: <span class="bold">{{.ID}}</span></li>
			<li>Text: <span class="bold">{{.Text}}</span></li>
			<li>Submitted: {{.Submitted}}</li>
		</ul>
	</body>
</html>
`))

var completedTmpl = template.Must(template.New("completed").Parse(`<!DOCTYPE html>
<html>
	<head>
		<meta name="viewport" content="width=device-width" />
		<meta http-equiv="Content-Type" content="text/html; charset=UTF-8" />
		` + msgStyle + `
	</head>
	<body>
		<p>Iqcmaker job completed on <span class="bold">{{.Host}}</span> at {{.TS.Format "2006-01-02T15:04:05Z07:00"}}</p>
		<ul>
			<li>Job: <span class="bold">{{.ID}}</span></li>
			<li>Text: <span class="bold">{{.Text}}</span></li>
			<li>Result: <a href="{{.Result}}">{{.Result}}</a></li>
			<li>Total created: {{.Total}}</li>
		</ul>
	</body>
</html>
`))
