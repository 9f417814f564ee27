package intake

import (
	"context"
	"encoding/json"
	"strings"

	"lead-intake/internal/apperr"
	"lead-intake/internal/blobstore"
	"lead-intake/internal/idgen"
	"lead-intake/internal/models"
	"lead-intake/internal/validation"

	"go.uber.org/zap"
)

// ProjectInput is the project request form. Technologies arrives as a
// JSON-encoded list; anything that does not decode to a list of strings is
// stored as an empty list.
type ProjectInput struct {
	FullName     string `form:"full_name" validate:"required,min=2,max=200"`
	Email        string `form:"email" validate:"required,max=200,leademail"`
	Phone        string `form:"phone" validate:"required,loosephone"`
	Company      string `form:"company" validate:"omitempty,max=200"`
	ProjectType  string `form:"project_type" validate:"required,min=2,max=200"`
	Budget       string `form:"budget" validate:"omitempty,max=100"`
	Timeline     string `form:"timeline" validate:"omitempty,max=100"`
	Description  string `form:"description" validate:"required,min=50,max=5000"`
	Technologies string `form:"technologies"`
}

func (in *ProjectInput) normalize() {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.ProjectType = strings.TrimSpace(in.ProjectType)
	in.Description = strings.TrimSpace(in.Description)
}

// ParseTechnologies decodes the technologies field leniently.
func ParseTechnologies(raw string) []string {
	techs := []string{}
	if strings.TrimSpace(raw) == "" {
		return techs
	}
	if err := json.Unmarshal([]byte(raw), &techs); err != nil || techs == nil {
		return []string{}
	}
	return techs
}

// SubmitProject stores a project request. Attachments are optional: a file
// that fails its type or size check is skipped and the rest are kept.
func (p *Pipeline) SubmitProject(ctx context.Context, in ProjectInput, files []Upload, meta RequestMeta) (*models.ProjectRequest, error) {
	in.normalize()
	log := p.logger(ctx).With(zap.String("kind", "project"), zap.String("email", in.Email))

	if err := p.validate.Struct(in); err != nil {
		return nil, err
	}

	attached := make([]models.AttachedFile, 0, len(files))
	var written []string
	for _, f := range files {
		af, err := p.storeAttachment(ctx, f)
		if err != nil {
			if apperr.Is(err, apperr.KindValidation) {
				log.Warn("attachment skipped", zap.String("filename", f.Filename), zap.Error(err))
				continue
			}
			p.abandon(ctx, written, err)
			return nil, err
		}
		attached = append(attached, af)
		written = append(written, af.Path)
	}

	projectID, err := p.ids.Generate(idgen.TagProject)
	if err != nil {
		p.abandon(ctx, written, err)
		return nil, apperr.Internal("failed to generate project id", err)
	}

	now := p.now()
	req := &models.ProjectRequest{
		ProjectID:     projectID,
		FullName:      in.FullName,
		Email:         in.Email,
		Phone:         in.Phone,
		Company:       optional(in.Company),
		ProjectType:   in.ProjectType,
		Description:   in.Description,
		Budget:        optional(in.Budget),
		Timeline:      optional(in.Timeline),
		Technologies:  ParseTechnologies(in.Technologies),
		AttachedFiles: attached,
		Status:        models.ProjectNew,
		IsActive:      true,
		IPAddress:     meta.IP,
		UserAgent:     meta.UserAgent,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := p.insert(ctx, req, "project request"); err != nil {
		p.abandon(ctx, written, err)
		return nil, err
	}

	log.Info("project request submitted",
		zap.String("project_id", req.ProjectID),
		zap.Int("attachments", len(attached)),
		zap.Int("attachments_skipped", len(files)-len(attached)),
	)
	return req, nil
}

// storeAttachment validates and saves one project document. Validation
// errors mean "skip this file"; anything else aborts the submission.
func (p *Pipeline) storeAttachment(ctx context.Context, f Upload) (models.AttachedFile, error) {
	if f.Filename == "" {
		return models.AttachedFile{}, apperr.Validation("attachment has no filename")
	}
	if err := validation.CheckContentType(f.ContentType, validation.AttachmentContentTypes); err != nil {
		return models.AttachedFile{}, err
	}

	data, tooBig, err := f.read(validation.MaxAttachmentSize)
	if err != nil {
		return models.AttachedFile{}, apperr.Internal("failed to read attachment", err)
	}
	if tooBig {
		return models.AttachedFile{}, validation.CheckSize(validation.MaxAttachmentSize+1, validation.MaxAttachmentSize)
	}

	original := validation.SanitizeFilename(f.Filename, p.settings.MaxFileNameLength)
	name := storedName(validation.AttachmentExtension(f.ContentType))
	obj, err := p.blobs.Save(ctx, blobstore.DirProjectDocs, name, data)
	if err != nil {
		return models.AttachedFile{}, apperr.Internal("failed to store attachment", err)
	}

	return models.AttachedFile{
		OriginalName: original,
		StoredName:   name,
		Path:         obj.Path,
		Size:         obj.Size,
		ContentType:  f.ContentType,
		Checksum:     obj.Checksum,
	}, nil
}
