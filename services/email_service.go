package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/formgate/contact-backend/config"
	"github.com/formgate/contact-backend/logger"
	"github.com/formgate/contact-backend/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/resend/resend-go/v2"
)

const (
	ownerNotificationSubject = "New Contact Form Submission"
	acknowledgmentSubject    = "Thank you for contacting!"
)

// ContactNotifier sends the outbound emails for a persisted submission.
type ContactNotifier interface {
	SendContactNotifications(ctx context.Context, contact *types.Contact) error
}

type EmailMetrics struct {
	sendLatency prometheus.Histogram
	errorCount  prometheus.Counter
	sentCount   prometheus.Counter
}

// EmailService sends notification emails through Resend.
type EmailService struct {
	config  *config.EmailConfig
	client  *resend.Client
	metrics *EmailMetrics
}

var _ ContactNotifier = (*EmailService)(nil)

func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return NewEmailServiceWithRegistry(cfg, prometheus.DefaultRegisterer)
}

func NewEmailServiceWithRegistry(cfg *config.EmailConfig, reg prometheus.Registerer) *EmailService {
	logger.GetLogger().Infow("Initializing email service",
		"from", logger.MaskEmail(cfg.FromAddress),
		"owner", logger.MaskEmail(cfg.OwnerAddress))
	client := resend.NewClient(cfg.ResendAPIKey)
	metrics := &EmailMetrics{
		sendLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "contact_email_send_duration_seconds",
			Help:    "Time taken to send emails",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10},
		}),
		errorCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "contact_email_errors_total",
			Help: "Total number of email sending errors",
		}),
		sentCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "contact_emails_sent_total",
			Help: "Total number of emails sent",
		}),
	}

	reg.MustRegister(metrics.sendLatency)
	reg.MustRegister(metrics.errorCount)
	reg.MustRegister(metrics.sentCount)

	return &EmailService{
		config:  cfg,
		client:  client,
		metrics: metrics,
	}
}

// SendContactNotifications sends the owner alert and then the submitter
// acknowledgment, sequentially. If either send fails the whole notification
// step fails; no retry is attempted and the first email is not reversed.
func (s *EmailService) SendContactNotifications(ctx context.Context, contact *types.Contact) error {
	if err := s.sendOwnerNotification(ctx, contact); err != nil {
		return fmt.Errorf("owner notification failed: %w", err)
	}
	if err := s.sendAcknowledgment(ctx, contact); err != nil {
		return fmt.Errorf("submitter acknowledgment failed: %w", err)
	}
	return nil
}

// sendOwnerNotification emails the service operator about a new submission.
func (s *EmailService) sendOwnerNotification(ctx context.Context, contact *types.Contact) error {
	body := fmt.Sprintf(
		"You have received a new contact form submission.\n\nName: %s\nEmail: %s\n\nMessage:\n%s\n",
		contact.Name, contact.Email, contact.Message)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromAddress),
		To:      []string{s.config.OwnerAddress},
		Subject: ownerNotificationSubject,
		ReplyTo: contact.Email,
		Text:    body,
	}

	return s.send(ctx, params)
}

// sendAcknowledgment emails the submitter a confirmation of receipt.
func (s *EmailService) sendAcknowledgment(ctx context.Context, contact *types.Contact) error {
	tmpl, err := template.New("acknowledgment").Parse(acknowledgmentEmailTemplate)
	if err != nil {
		s.metrics.errorCount.Inc()
		return fmt.Errorf("failed to parse template: %w", err)
	}

	var htmlContent bytes.Buffer
	if err := tmpl.Execute(&htmlContent, contact); err != nil {
		s.metrics.errorCount.Inc()
		return fmt.Errorf("failed to execute template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromAddress),
		To:      []string{contact.Email},
		Subject: acknowledgmentSubject,
		Html:    htmlContent.String(),
	}

	return s.send(ctx, params)
}

// send performs a single bounded mail-transport call and records metrics.
func (s *EmailService) send(ctx context.Context, params *resend.SendEmailRequest) error {
	log := logger.GetLogger()
	startTime := time.Now()
	defer func() {
		s.metrics.sendLatency.Observe(time.Since(startTime).Seconds())
	}()

	sendCtx, cancel := context.WithTimeout(ctx, s.config.SendTimeout())
	defer cancel()

	_, err := s.client.Emails.SendWithContext(sendCtx, params)
	if err != nil {
		s.metrics.errorCount.Inc()
		log.Errorw("Failed to send email",
			"error", err,
			"to", maskRecipients(params.To),
			"subject", params.Subject)
		return fmt.Errorf("email send failed: %w", err)
	}

	s.metrics.sentCount.Inc()
	log.Infow("Email sent",
		"to", maskRecipients(params.To),
		"subject", params.Subject)
	return nil
}

func maskRecipients(to []string) []string {
	masked := make([]string, len(to))
	for i, addr := range to {
		masked[i] = logger.MaskEmail(addr)
	}
	return masked
}

const acknowledgmentEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Thank you for contacting!</title>
    <style>
        body {
            font-family: 'sans-serif';
            background-color: #f7f7f7;
            color: #333333;
            margin: 0;
            padding: 20px;
        }
        .container {
            max-width: 600px;
            margin: 20px auto;
            background-color: #ffffff;
            padding: 30px;
            border-radius: 12px;
            box-shadow: 0 4px 8px rgba(0, 0, 0, 0.05);
        }
        h1 {
            color: #2D6CDF;
            font-size: 24px;
            margin-bottom: 20px;
        }
        p {
            font-size: 16px;
            line-height: 1.6;
            margin-bottom: 20px;
        }
        blockquote {
            border-left: 4px solid #2D6CDF;
            margin: 0 0 20px;
            padding: 10px 20px;
            background-color: #f0f4fc;
            color: #555555;
            white-space: pre-wrap;
        }
        .footer {
            font-size: 13px;
            color: #999999;
        }
    </style>
</head>
<body>
    <div class="container">
        <h1>Thanks for reaching out, {{.Name}}!</h1>
        <p>We have received your message and will get back to you as soon as possible.</p>
        <p>Here is a copy of what you sent us:</p>
        <blockquote>{{.Message}}</blockquote>
        <p class="footer">This is an automated confirmation. You don't need to reply to this email.</p>
    </div>
</body>
</html>`
