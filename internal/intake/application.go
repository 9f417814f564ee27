package intake

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"lead-intake/internal/apperr"
	"lead-intake/internal/blobstore"
	"lead-intake/internal/idgen"
	"lead-intake/internal/models"
	"lead-intake/internal/ratelimit"
	"lead-intake/internal/validation"

	"go.uber.org/zap"
)

// ApplicationInput is the careers form. JobType is coerced, never rejected.
type ApplicationInput struct {
	FullName          string `form:"full_name" validate:"required,min=2,max=200"`
	Email             string `form:"email" validate:"required,max=200,leademail"`
	Phone             string `form:"phone" validate:"required,loosephone"`
	LinkedinURL       string `form:"linkedin_url" validate:"omitempty,max=500"`
	GithubURL         string `form:"github_url" validate:"omitempty,max=500"`
	PortfolioURL      string `form:"portfolio_url" validate:"omitempty,max=500"`
	YearsOfExperience string `form:"years_of_experience" validate:"omitempty,max=50"`
	CoverLetter       string `form:"cover_letter" validate:"omitempty,max=10000"`
	JobTitle          string `form:"job_title" validate:"required,min=2,max=200"`
	JobType           string `form:"job_type"`
	Department        string `form:"department" validate:"omitempty,max=100"`
}

func (in *ApplicationInput) normalize() {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.JobTitle = strings.TrimSpace(in.JobTitle)
	in.Department = strings.TrimSpace(in.Department)
}

// SubmitApplication stores a job application. The resume is mandatory.
func (p *Pipeline) SubmitApplication(ctx context.Context, in ApplicationInput, resume *Upload, meta RequestMeta) (*models.JobApplication, error) {
	in.normalize()
	log := p.logger(ctx).With(zap.String("kind", "application"), zap.String("email", in.Email))

	if err := p.validate.Struct(in); err != nil {
		return nil, err
	}
	if resume == nil || resume.Filename == "" {
		return nil, apperr.Validation("resume is required")
	}

	limit := p.settings.MaxApplicationsPerDay
	policy := ratelimit.DailyCount(&models.JobApplication{}, limit,
		fmt.Sprintf("Maximum %d applications per day allowed", limit))
	if err := p.limiter.Check(ctx, policy, ratelimit.Identity{"email": in.Email}); err != nil {
		return nil, err
	}

	if err := validation.CheckExtension(resume.Filename, p.settings.AllowedFileTypes); err != nil {
		log.Info("resume rejected", zap.String("filename", resume.Filename), zap.Error(err))
		return nil, err
	}
	data, tooBig, err := resume.read(p.settings.MaxUploadSize)
	if err != nil {
		return nil, apperr.Internal("failed to read resume", err)
	}
	if tooBig {
		return nil, validation.CheckSize(p.settings.MaxUploadSize+1, p.settings.MaxUploadSize)
	}

	sanitized := validation.SanitizeFilename(resume.Filename, p.settings.MaxFileNameLength)
	name := storedName(strings.ToLower(filepath.Ext(sanitized)))
	obj, err := p.blobs.Save(ctx, blobstore.DirResumes, name, data)
	if err != nil {
		return nil, apperr.Internal("failed to store resume", err)
	}
	written := []string{obj.Path}

	appID, err := p.ids.Generate(idgen.TagApplication)
	if err != nil {
		p.abandon(ctx, written, err)
		return nil, apperr.Internal("failed to generate application id", err)
	}

	now := p.now()
	app := &models.JobApplication{
		ApplicationID:     appID,
		FullName:          in.FullName,
		Email:             in.Email,
		Phone:             in.Phone,
		LinkedinURL:       optional(in.LinkedinURL),
		GithubURL:         optional(in.GithubURL),
		PortfolioURL:      optional(in.PortfolioURL),
		YearsOfExperience: optional(in.YearsOfExperience),
		CoverLetter:       optional(in.CoverLetter),
		JobTitle:          in.JobTitle,
		JobType:           models.Coerce(in.JobType, models.JobTypes, models.JobFullTime),
		Department:        optional(in.Department),
		ResumePath:        obj.Path,
		ResumeChecksum:    obj.Checksum,
		Status:            models.ApplicationPending,
		IsActive:          true,
		IPAddress:         meta.IP,
		UserAgent:         meta.UserAgent,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := p.insert(ctx, app, "application"); err != nil {
		p.abandon(ctx, written, err)
		return nil, err
	}

	log.Info("application submitted",
		zap.String("application_id", app.ApplicationID),
		zap.String("job_title", app.JobTitle),
		zap.String("resume", obj.Path),
		zap.String("size", validation.FormatSize(obj.Size)),
	)
	return app, nil
}
