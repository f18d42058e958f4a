package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/wderue/portfolio-backend/config"
	"github.com/wderue/portfolio-backend/errs"
	"github.com/wderue/portfolio-backend/metrics"
)

const (
	minSubjectLength = 3
	minMessageLength = 10
)

// ContactRequest is the triple submitted through the contact form.
type ContactRequest struct {
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// FieldErrors maps a field name to a human-readable reason, returned verbatim
// to the caller for display next to the field.
type FieldErrors map[string]string

// ValidateContact checks the triple and returns every failing field, or nil
// when the request is valid.
func ValidateContact(req ContactRequest) FieldErrors {
	fieldErrs := FieldErrors{}

	addr, err := mail.ParseAddress(strings.TrimSpace(req.Email))
	if err != nil || addr.Address != strings.TrimSpace(req.Email) {
		fieldErrs["email"] = "invalid email address"
	}
	if utf8.RuneCountInString(strings.TrimSpace(req.Subject)) < minSubjectLength {
		fieldErrs["subject"] = fmt.Sprintf("subject must be at least %d characters", minSubjectLength)
	}
	if utf8.RuneCountInString(strings.TrimSpace(req.Message)) < minMessageLength {
		fieldErrs["message"] = fmt.Sprintf("message must be at least %d characters", minMessageLength)
	}

	if len(fieldErrs) == 0 {
		return nil
	}
	return fieldErrs
}

// EmailSender delivers one validated contact message. At-most-once: a failed
// send is reported, never queued or retried.
type EmailSender interface {
	Send(ctx context.Context, req ContactRequest) error
}

// ContactService validates submissions and hands them to the sender.
type ContactService struct {
	sender EmailSender
	logger zerolog.Logger
}

func NewContactService(sender EmailSender, logger zerolog.Logger) *ContactService {
	return &ContactService{
		sender: sender,
		logger: logger.With().Str("component", "contact").Logger(),
	}
}

// Submit returns field-level errors for invalid input, or a SendFailed error
// when the provider rejects a valid message. (nil, nil) means delivered.
func (s *ContactService) Submit(ctx context.Context, req ContactRequest) (FieldErrors, error) {
	if fieldErrs := ValidateContact(req); fieldErrs != nil {
		return fieldErrs, nil
	}

	if err := s.sender.Send(ctx, req); err != nil {
		metrics.IncrementContactSend("failed")
		s.logger.Error().Err(err).Msg("contact email delivery failed")
		return nil, errs.NewSendFailedError(err)
	}

	metrics.IncrementContactSend("success")
	return nil, nil
}

// resendEmailRequest is the request payload for the Resend API.
type resendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text,omitempty"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

type resendEmailResponse struct {
	ID string `json:"id"`
}

type resendErrorResponse struct {
	Message string `json:"message"`
}

// ResendSender delivers contact messages through the Resend API with a single
// HTTP POST.
type ResendSender struct {
	apiKey  string
	from    string
	to      string
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

// NewResendSender reads RESEND_API_KEY, RESEND_FROM_EMAIL and CONTACT_EMAIL
// from the config map.
func NewResendSender(cfg map[string]string, logger zerolog.Logger) (*ResendSender, error) {
	apiKey := config.GetString(cfg, "RESEND_API_KEY", "")
	if apiKey == "" {
		return nil, fmt.Errorf("RESEND_API_KEY is required")
	}
	from := config.GetString(cfg, "RESEND_FROM_EMAIL", "")
	if from == "" {
		return nil, fmt.Errorf("RESEND_FROM_EMAIL is required")
	}
	to := config.GetString(cfg, "CONTACT_EMAIL", "")
	if to == "" {
		return nil, fmt.Errorf("CONTACT_EMAIL is required")
	}

	return &ResendSender{
		apiKey:  apiKey,
		from:    from,
		to:      to,
		baseURL: config.GetString(cfg, "RESEND_API_URL", "https://api.resend.com"),
		client:  &http.Client{Timeout: 15 * time.Second},
		logger:  logger.With().Str("component", "resend").Logger(),
	}, nil
}

func (s *ResendSender) Send(ctx context.Context, req ContactRequest) error {
	payload := resendEmailRequest{
		From:    s.from,
		To:      []string{s.to},
		Subject: "[Portfolio] " + strings.TrimSpace(req.Subject),
		Text:    fmt.Sprintf("From: %s\n\n%s", req.Email, req.Message),
		ReplyTo: strings.TrimSpace(req.Email),
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/emails", bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create Resend API request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to reach Resend API: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read Resend API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp resendErrorResponse
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil && errorResp.Message != "" {
			return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, errorResp.Message)
		}
		return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var emailResponse resendEmailResponse
	if err := json.Unmarshal(bodyBytes, &emailResponse); err != nil {
		s.logger.Warn().Err(err).Msg("could not parse Resend response, but email was sent")
	} else {
		s.logger.Info().Str("emailId", emailResponse.ID).Msg("contact email sent")
	}

	return nil
}
