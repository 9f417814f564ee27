package intake

import (
	"context"
	"strings"
	"time"

	"lead-intake/internal/models"
	"lead-intake/internal/ratelimit"

	"go.uber.org/zap"
)

const (
	duplicateWindow = 24 * time.Hour
	contactsPerDay  = 5
)

// InquiryInput is the product inquiry JSON body.
type InquiryInput struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,max=100,leademail"`
	Phone   string `json:"phone" validate:"required,max=20,strictphone"`
	Company string `json:"company" validate:"required,max=100"`
	Product string `json:"product" validate:"required,max=100"`
	Message string `json:"message" validate:"omitempty,max=5000"`
	Source  string `json:"source" validate:"omitempty,max=50"`
}

// TrialInput is the free trial JSON body.
type TrialInput struct {
	Name         string `json:"name" validate:"required,max=100"`
	Email        string `json:"email" validate:"required,max=255,leademail"`
	Phone        string `json:"phone" validate:"required,max=30,strictphone"`
	Company      string `json:"company" validate:"required,max=100"`
	Employees    string `json:"employees" validate:"omitempty,max=20"`
	InterestedIn string `json:"interested_in" validate:"omitempty,max=100"`
	Timeline     string `json:"timeline" validate:"omitempty,max=50"`
}

// ContactInput is the contact form JSON body. An unknown subject becomes
// "general".
type ContactInput struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,max=255,leademail"`
	Phone   string `json:"phone" validate:"omitempty,loosephone"`
	Subject string `json:"subject"`
	Message string `json:"message" validate:"required,max=5000"`
}

// SubmitInquiry allows one inquiry per email and product in any 24h window.
func (p *Pipeline) SubmitInquiry(ctx context.Context, in InquiryInput, meta RequestMeta) (*models.ProductInquiry, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Product = strings.TrimSpace(in.Product)
	if err := p.validate.Struct(in); err != nil {
		return nil, err
	}

	policy := ratelimit.Rolling(&models.ProductInquiry{}, duplicateWindow, 1,
		"You have already submitted an inquiry for this product in the last 24 hours")
	if err := p.limiter.Check(ctx, policy, ratelimit.Identity{"email": in.Email, "product": in.Product}); err != nil {
		return nil, err
	}

	source := strings.TrimSpace(in.Source)
	if source == "" {
		source = "website"
	}

	now := p.now()
	inq := &models.ProductInquiry{
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Company:   strings.TrimSpace(in.Company),
		Product:   in.Product,
		Message:   optional(in.Message),
		Status:    "pending",
		Priority:  "medium",
		Source:    source,
		IPAddress: meta.IP,
		UserAgent: meta.UserAgent,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := p.insert(ctx, inq, "inquiry"); err != nil {
		return nil, err
	}

	p.logger(ctx).Info("product inquiry submitted",
		zap.Uint("id", inq.ID), zap.String("product", inq.Product), zap.String("email", inq.Email))
	return inq, nil
}

// SubmitTrial allows one free trial request per email in any 24h window.
func (p *Pipeline) SubmitTrial(ctx context.Context, in TrialInput, meta RequestMeta) (*models.FreeTrialRequest, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	if err := p.validate.Struct(in); err != nil {
		return nil, err
	}

	policy := ratelimit.Rolling(&models.FreeTrialRequest{}, duplicateWindow, 1,
		"A free trial request for this email was already submitted in the last 24 hours")
	if err := p.limiter.Check(ctx, policy, ratelimit.Identity{"email": in.Email}); err != nil {
		return nil, err
	}

	now := p.now()
	trial := &models.FreeTrialRequest{
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		Company:      strings.TrimSpace(in.Company),
		Employees:    optional(in.Employees),
		InterestedIn: optional(in.InterestedIn),
		Timeline:     optional(in.Timeline),
		Status:       "pending",
		IPAddress:    meta.IP,
		UserAgent:    meta.UserAgent,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := p.insert(ctx, trial, "trial request"); err != nil {
		return nil, err
	}

	p.logger(ctx).Info("free trial requested", zap.Uint("id", trial.ID), zap.String("email", trial.Email))
	return trial, nil
}

// SubmitContact allows five messages per email and client IP in any 24h
// window.
func (p *Pipeline) SubmitContact(ctx context.Context, in ContactInput, meta RequestMeta) (*models.ContactInquiry, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	if err := p.validate.Struct(in); err != nil {
		return nil, err
	}

	policy := ratelimit.Rolling(&models.ContactInquiry{}, duplicateWindow, contactsPerDay,
		"Too many messages. Please try again later")
	if err := p.limiter.Check(ctx, policy, ratelimit.Identity{"email": in.Email, "ip_address": meta.IP}); err != nil {
		return nil, err
	}

	now := p.now()
	msg := &models.ContactInquiry{
		Name:      in.Name,
		Email:     in.Email,
		Phone:     optional(in.Phone),
		Subject:   models.Coerce(in.Subject, models.ContactSubjects, models.SubjectGeneral),
		Message:   in.Message,
		IPAddress: meta.IP,
		UserAgent: meta.UserAgent,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := p.insert(ctx, msg, "contact message"); err != nil {
		return nil, err
	}

	p.logger(ctx).Info("contact message received",
		zap.Uint("id", msg.ID), zap.String("subject", string(msg.Subject)), zap.String("email", msg.Email))
	return msg, nil
}
