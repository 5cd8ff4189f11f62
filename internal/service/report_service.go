package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"wordmemo/internal/models"
)

const reportSendTimeout = 15 * time.Second

// sesAPI is the part of the SES client used for reports
type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// ReportService e-mails a summary of finished play sessions via Amazon SES
type ReportService struct {
	client    sesAPI
	fromEmail string
	fromName  string
	toEmail   string
	enabled   bool
	debug     bool
}

// NewReportService creates a report service. It is disabled, and every send
// is skipped, unless both fromEmail and toEmail are set.
func NewReportService(ctx context.Context, awsRegion, fromEmail, fromName, toEmail string, debug bool) (*ReportService, error) {
	if fromEmail == "" || toEmail == "" {
		log.Println("Session reports disabled: SES_FROM_EMAIL or REPORT_EMAIL not configured")
		return &ReportService{debug: debug}, nil
	}

	if debug {
		log.Printf("[DEBUG] Initializing report service with AWS SES")
		log.Printf("[DEBUG] AWS Region: %s", awsRegion)
		log.Printf("[DEBUG] From: %s <%s>, To: %s", fromName, fromEmail, toEmail)
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(awsRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Session reports enabled: to=%s, region=%s", toEmail, awsRegion)
	return newReportService(sesv2.NewFromConfig(cfg), fromEmail, fromName, toEmail, debug), nil
}

func newReportService(client sesAPI, fromEmail, fromName, toEmail string, debug bool) *ReportService {
	return &ReportService{
		client:    client,
		fromEmail: fromEmail,
		fromName:  fromName,
		toEmail:   toEmail,
		enabled:   true,
		debug:     debug,
	}
}

// IsEnabled returns whether reports are sent
func (s *ReportService) IsEnabled() bool {
	return s.enabled
}

// HandleSessionOver sends a report for a finished session, logging any failure.
// It matches the ClientSessionsConfig.OnSessionOver hook.
func (s *ReportService) HandleSessionOver(sessionID string, result models.SessionResult) {
	ctx, cancel := context.WithTimeout(context.Background(), reportSendTimeout)
	defer cancel()
	if err := s.SendSessionReport(ctx, sessionID, result); err != nil {
		log.Printf("Warning: failed to send session report: %v", err)
	}
}

// SendSessionReport e-mails the result of one play session
func (s *ReportService) SendSessionReport(ctx context.Context, sessionID string, result models.SessionResult) error {
	if !s.enabled {
		if s.debug {
			log.Printf("[DEBUG] Report service is disabled, skipping report for session %s", sessionID)
		}
		return nil
	}

	subject, textBody := FormatSessionReport(sessionID, result)

	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{s.toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	out, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send report to %s: %w", s.toEmail, err)
	}

	if s.debug && out != nil && out.MessageId != nil {
		log.Printf("[DEBUG] Message ID: %s", *out.MessageId)
	}
	log.Printf("Session report sent: to=%s, rating=%s", s.toEmail, result.Rating)
	return nil
}

// FormatSessionReport renders the subject and plain-text body of a report
func FormatSessionReport(sessionID string, result models.SessionResult) (string, string) {
	subject := fmt.Sprintf("Word Memorizer session: %s (%d/%d words)", result.Rating, result.Score, result.TotalWords)

	ending := "All words were played."
	if result.EndedEarly {
		ending = "The session ended early."
	}

	body := fmt.Sprintf(`A play session has finished.

Rating: %s
Words guessed: %d / %d
Total errors: %d
Hints used: %d
Duration: %s
%s

Session: %s
---
This is an automated email from Word Memorizer. Please do not reply.
`, result.Rating, result.Score, result.TotalWords, result.SessionErrors, result.HintsUsed,
		result.FinishedAt.Sub(result.StartedAt).Round(time.Second), ending, sessionID)

	return subject, body
}
