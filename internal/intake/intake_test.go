package intake

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"lead-intake/internal/apperr"
	"lead-intake/internal/blobstore"
	"lead-intake/internal/database/dbtest"
	"lead-intake/internal/idgen"
	"lead-intake/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	root     string
	now      time.Time
	pipeline *Pipeline
}

func defaultSettings() Settings {
	return Settings{
		MaxApplicationsPerDay: 3,
		MaxUploadSize:         1024,
		AllowedFileTypes:      []string{".pdf", ".doc", ".docx"},
		MaxFileNameLength:     255,
	}
}

func newFixture(t *testing.T, settings Settings, opts ...Option) *fixture {
	t.Helper()

	f := &fixture{
		db:   dbtest.Open(t),
		root: t.TempDir(),
		now:  time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
	}
	store, err := blobstore.NewLocal(f.root)
	require.NoError(t, err)

	opts = append([]Option{WithClock(func() time.Time { return f.now })}, opts...)
	f.pipeline = New(f.db, store, settings, opts...)
	return f
}

func (f *fixture) files(t *testing.T, subdir string) []string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(f.root, subdir))
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func (f *fixture) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}

func applicant(email string) ApplicationInput {
	return ApplicationInput{
		FullName: "Grace Hopper",
		Email:    email,
		Phone:    "+1 (555) 010-0199",
		JobTitle: "Backend Engineer",
		JobType:  "full_time",
	}
}

func pdf(name string, size int) *Upload {
	u := UploadFromBytes(name, "application/pdf", bytes.Repeat([]byte("x"), size))
	return &u
}

var meta = RequestMeta{IP: "203.0.113.7", UserAgent: "test-agent"}

func TestSubmitApplicationAssignsDatedIDs(t *testing.T) {
	f := newFixture(t, defaultSettings())
	ctx := context.Background()
	pattern := regexp.MustCompile(`^APP-20260314-[A-Z0-9]{5}$`)

	seen := map[string]bool{}
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		app, err := f.pipeline.SubmitApplication(ctx, applicant(email), pdf("cv.pdf", 10), meta)
		require.NoError(t, err)
		assert.Regexp(t, pattern, app.ApplicationID)
		assert.False(t, seen[app.ApplicationID])
		seen[app.ApplicationID] = true

		assert.Equal(t, models.ApplicationPending, app.Status)
		assert.True(t, app.IsActive)
		assert.True(t, strings.HasPrefix(app.ResumePath, "resumes/"))
		assert.Len(t, app.ResumeChecksum, 64)
		assert.Equal(t, meta.IP, app.IPAddress)
		assert.Equal(t, f.now, app.CreatedAt)
	}
	assert.Len(t, f.files(t, blobstore.DirResumes), 3)
}

func TestSubmitApplicationDailyLimit(t *testing.T) {
	f := newFixture(t, defaultSettings())
	ctx := context.Background()
	f.now = time.Date(2026, 3, 14, 23, 59, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		_, err := f.pipeline.SubmitApplication(ctx, applicant("grace@example.com"), pdf("cv.pdf", 10), meta)
		require.NoError(t, err)
		f.now = f.now.Add(10 * time.Second)
	}

	_, err := f.pipeline.SubmitApplication(ctx, applicant("grace@example.com"), pdf("cv.pdf", 10), meta)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindRateLimited))
	assert.Equal(t, "Maximum 3 applications per day allowed", apperr.PublicMessage(err))
	assert.Equal(t, int64(3), f.count(t, &models.JobApplication{}))
	assert.Len(t, f.files(t, blobstore.DirResumes), 3, "rate-limited submissions write nothing")

	f.now = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	app, err := f.pipeline.SubmitApplication(ctx, applicant("grace@example.com"), pdf("cv.pdf", 10), meta)
	require.NoError(t, err)
	assert.Contains(t, app.ApplicationID, "-20260315-")
}

func TestSubmitApplicationRejectsExecutable(t *testing.T) {
	f := newFixture(t, defaultSettings())

	_, err := f.pipeline.SubmitApplication(context.Background(), applicant("a@example.com"), pdf("setup.exe", 10), meta)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Contains(t, apperr.PublicMessage(err), "Invalid file type")

	assert.Empty(t, f.files(t, blobstore.DirResumes))
	assert.Zero(t, f.count(t, &models.JobApplication{}))
}

func TestSubmitApplicationSizeBoundary(t *testing.T) {
	f := newFixture(t, defaultSettings())
	ctx := context.Background()

	_, err := f.pipeline.SubmitApplication(ctx, applicant("a@example.com"), pdf("cv.pdf", 1024), meta)
	require.NoError(t, err)

	_, err = f.pipeline.SubmitApplication(ctx, applicant("b@example.com"), pdf("cv.pdf", 1025), meta)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Contains(t, apperr.PublicMessage(err), "File too large")

	assert.Equal(t, int64(1), f.count(t, &models.JobApplication{}))
	assert.Len(t, f.files(t, blobstore.DirResumes), 1)
}

func TestSubmitApplicationRequiresResume(t *testing.T) {
	f := newFixture(t, defaultSettings())

	_, err := f.pipeline.SubmitApplication(context.Background(), applicant("a@example.com"), nil, meta)
	require.Error(t, err)
	assert.Equal(t, "resume is required", apperr.PublicMessage(err))
}

func TestSubmitApplicationFieldValidation(t *testing.T) {
	f := newFixture(t, defaultSettings())

	in := applicant("not-an-email")
	_, err := f.pipeline.SubmitApplication(context.Background(), in, pdf("cv.pdf", 10), meta)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Contains(t, apperr.PublicMessage(err), "email")

	in = applicant("a@example.com")
	in.Phone = "12345"
	_, err = f.pipeline.SubmitApplication(context.Background(), in, pdf("cv.pdf", 10), meta)
	assert.Contains(t, apperr.PublicMessage(err), "phone")
	assert.Empty(t, f.files(t, blobstore.DirResumes))
}

func TestSubmitApplicationCoercesJobType(t *testing.T) {
	f := newFixture(t, defaultSettings())

	in := applicant("a@example.com")
	in.JobType = "Freelance"
	app, err := f.pipeline.SubmitApplication(context.Background(), in, pdf("cv.pdf", 10), meta)
	require.NoError(t, err)
	assert.Equal(t, models.JobFullTime, app.JobType)

	in = applicant("b@example.com")
	in.JobType = "INTERNSHIP"
	app, err = f.pipeline.SubmitApplication(context.Background(), in, pdf("cv.pdf", 10), meta)
	require.NoError(t, err)
	assert.Equal(t, models.JobInternship, app.JobType)
}

func TestSubmitApplicationSanitizesTraversal(t *testing.T) {
	f := newFixture(t, defaultSettings())

	app, err := f.pipeline.SubmitApplication(context.Background(), applicant("a@example.com"), pdf("../../etc/passwd.pdf", 10), meta)
	require.NoError(t, err)

	full := filepath.Join(f.root, filepath.FromSlash(app.ResumePath))
	rel, err := filepath.Rel(f.root, full)
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(rel, ".."))
	assert.Equal(t, "resumes", filepath.Dir(rel))
	assert.FileExists(t, full)
}

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

func TestIdentifierCollisionIsConflict(t *testing.T) {
	for _, cleanup := range []bool{false, true} {
		settings := defaultSettings()
		settings.CleanupOrphanedUploads = cleanup

		f := newFixture(t, settings)
		f.pipeline.ids = idgen.NewWithSource(f.pipeline.now, zeroReader{})
		ctx := context.Background()

		_, err := f.pipeline.SubmitApplication(ctx, applicant("a@example.com"), pdf("cv.pdf", 10), meta)
		require.NoError(t, err)

		_, err = f.pipeline.SubmitApplication(ctx, applicant("b@example.com"), pdf("cv.pdf", 10), meta)
		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.KindConflict))
		assert.Equal(t, int64(1), f.count(t, &models.JobApplication{}))

		if cleanup {
			assert.Len(t, f.files(t, blobstore.DirResumes), 1, "orphan removed")
		} else {
			assert.Len(t, f.files(t, blobstore.DirResumes), 2, "orphan kept")
		}
	}
}

func project() ProjectInput {
	return ProjectInput{
		FullName:     "Ada Lovelace",
		Email:        "ada@example.com",
		Phone:        "020 7946 0000",
		ProjectType:  "Web application",
		Description:  strings.Repeat("We need a customer portal with billing. ", 3),
		Technologies: `["Go","React"]`,
	}
}

func TestSubmitProject(t *testing.T) {
	f := newFixture(t, defaultSettings())

	req, err := f.pipeline.SubmitProject(context.Background(), project(), nil, meta)
	require.NoError(t, err)
	assert.Regexp(t, `^PROJ-20260314-[A-Z0-9]{5}$`, req.ProjectID)
	assert.Equal(t, []string{"Go", "React"}, req.Technologies)
	assert.Empty(t, req.AttachedFiles)
	assert.Equal(t, models.ProjectNew, req.Status)
}

func TestSubmitProjectLenientTechnologies(t *testing.T) {
	f := newFixture(t, defaultSettings())

	in := project()
	in.Technologies = "not valid json"
	req, err := f.pipeline.SubmitProject(context.Background(), in, nil, meta)
	require.NoError(t, err)
	assert.Equal(t, []string{}, req.Technologies)

	var stored models.ProjectRequest
	require.NoError(t, f.db.First(&stored, req.ID).Error)
	assert.Empty(t, stored.Technologies)
}

func TestParseTechnologies(t *testing.T) {
	assert.Equal(t, []string{"Go"}, ParseTechnologies(`["Go"]`))
	assert.Equal(t, []string{}, ParseTechnologies(""))
	assert.Equal(t, []string{}, ParseTechnologies("null"))
	assert.Equal(t, []string{}, ParseTechnologies(`{"a":1}`))
	assert.Equal(t, []string{}, ParseTechnologies(`[1,2]`))
}

func TestSubmitProjectSkipsInvalidAttachments(t *testing.T) {
	f := newFixture(t, defaultSettings())

	files := []Upload{
		UploadFromBytes("brief.pdf", "application/pdf", []byte("%PDF")),
		UploadFromBytes("virus.exe", "application/x-msdownload", []byte("MZ")),
		UploadFromBytes("wireframe.png", "image/png", []byte("\x89PNG")),
	}
	req, err := f.pipeline.SubmitProject(context.Background(), project(), files, meta)
	require.NoError(t, err)

	require.Len(t, req.AttachedFiles, 2)
	assert.Equal(t, "brief.pdf", req.AttachedFiles[0].OriginalName)
	assert.Equal(t, "wireframe.png", req.AttachedFiles[1].OriginalName)
	for _, af := range req.AttachedFiles {
		assert.True(t, strings.HasPrefix(af.Path, "project_docs/"))
		assert.Equal(t, "project_docs/"+af.StoredName, af.Path)
	}
	assert.Len(t, f.files(t, blobstore.DirProjectDocs), 2)

	var stored models.ProjectRequest
	require.NoError(t, f.db.First(&stored, req.ID).Error)
	assert.Equal(t, req.AttachedFiles, stored.AttachedFiles)
}

func TestSubmitProjectSkipsOversizeAttachment(t *testing.T) {
	f := newFixture(t, defaultSettings())

	files := []Upload{
		UploadFromBytes("huge.txt", "text/plain", make([]byte, 10<<20+1)),
		UploadFromBytes("ok.txt", "text/plain; charset=utf-8", make([]byte, 10<<20)),
	}
	req, err := f.pipeline.SubmitProject(context.Background(), project(), files, meta)
	require.NoError(t, err)
	require.Len(t, req.AttachedFiles, 1)
	assert.Equal(t, "ok.txt", req.AttachedFiles[0].OriginalName)
	assert.Equal(t, int64(10<<20), req.AttachedFiles[0].Size)
}

func TestSubmitProjectDescriptionTooShort(t *testing.T) {
	f := newFixture(t, defaultSettings())

	in := project()
	in.Description = "too short"
	files := []Upload{UploadFromBytes("brief.pdf", "application/pdf", []byte("%PDF"))}
	_, err := f.pipeline.SubmitProject(context.Background(), in, files, meta)
	require.Error(t, err)
	assert.Equal(t, "description must be at least 50 characters", apperr.PublicMessage(err))
	assert.Empty(t, f.files(t, blobstore.DirProjectDocs))
}

func inquiry() InquiryInput {
	return InquiryInput{
		Name:    "Ada",
		Email:   "ada@example.com",
		Phone:   "+44 20-7946-0000",
		Company: "Analytical Engines",
		Product: "CRM",
	}
}

func TestSubmitInquiryDuplicateWindow(t *testing.T) {
	f := newFixture(t, defaultSettings())
	ctx := context.Background()

	inq, err := f.pipeline.SubmitInquiry(ctx, inquiry(), meta)
	require.NoError(t, err)
	assert.Equal(t, "pending", inq.Status)
	assert.Equal(t, "medium", inq.Priority)
	assert.Equal(t, "website", inq.Source)
	assert.Nil(t, inq.Message)

	f.now = f.now.Add(23 * time.Hour)
	_, err = f.pipeline.SubmitInquiry(ctx, inquiry(), meta)
	assert.True(t, apperr.Is(err, apperr.KindRateLimited))

	other := inquiry()
	other.Product = "ERP"
	_, err = f.pipeline.SubmitInquiry(ctx, other, meta)
	require.NoError(t, err)

	f.now = f.now.Add(time.Hour + time.Second)
	_, err = f.pipeline.SubmitInquiry(ctx, inquiry(), meta)
	require.NoError(t, err)
}

func TestSubmitInquiryStrictPhone(t *testing.T) {
	f := newFixture(t, defaultSettings())

	in := inquiry()
	in.Phone = "0123456789"
	_, err := f.pipeline.SubmitInquiry(context.Background(), in, meta)
	require.Error(t, err)
	assert.Equal(t, "phone is not a valid phone number", apperr.PublicMessage(err))
}

func TestSubmitTrialDuplicateWindow(t *testing.T) {
	f := newFixture(t, defaultSettings())
	ctx := context.Background()
	in := TrialInput{Name: "Ada", Email: "ada@example.com", Phone: "+15550100199", Company: "Acme", Employees: "11-50"}

	trial, err := f.pipeline.SubmitTrial(ctx, in, meta)
	require.NoError(t, err)
	assert.Equal(t, "pending", trial.Status)
	require.NotNil(t, trial.Employees)
	assert.Equal(t, "11-50", *trial.Employees)
	assert.Nil(t, trial.TrialStartDate)

	_, err = f.pipeline.SubmitTrial(ctx, in, meta)
	assert.True(t, apperr.Is(err, apperr.KindRateLimited))
	assert.Equal(t, int64(1), f.count(t, &models.FreeTrialRequest{}))
}

func TestSubmitContactLimitPerEmailAndIP(t *testing.T) {
	f := newFixture(t, defaultSettings())
	ctx := context.Background()
	in := ContactInput{Name: "Bob", Email: "bob@example.com", Subject: "Sales", Message: "Call me"}

	for i := 0; i < 5; i++ {
		msg, err := f.pipeline.SubmitContact(ctx, in, meta)
		require.NoError(t, err)
		assert.Equal(t, models.SubjectSales, msg.Subject)
	}

	_, err := f.pipeline.SubmitContact(ctx, in, meta)
	assert.True(t, apperr.Is(err, apperr.KindRateLimited))

	_, err = f.pipeline.SubmitContact(ctx, in, RequestMeta{IP: "198.51.100.1"})
	require.NoError(t, err)
}

func TestSubmitContactCoercesSubject(t *testing.T) {
	f := newFixture(t, defaultSettings())

	msg, err := f.pipeline.SubmitContact(context.Background(), ContactInput{
		Name: "Bob", Email: "bob@example.com", Phone: "(555) 010-0199", Subject: "billing", Message: "Hi",
	}, meta)
	require.NoError(t, err)
	assert.Equal(t, models.SubjectGeneral, msg.Subject)
	require.NotNil(t, msg.Phone)
}

func TestSubmitInquiryPhoneFitsColumn(t *testing.T) {
	f := newFixture(t, defaultSettings())

	in := inquiry()
	in.Phone = "+1 (555) 010 - 0199 0000"
	_, err := f.pipeline.SubmitInquiry(context.Background(), in, meta)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Equal(t, "phone must be at most 20 characters", apperr.PublicMessage(err))
	assert.Zero(t, f.count(t, &models.ProductInquiry{}))

	in.Phone = "+1 (555) 010-0199 00"
	_, err = f.pipeline.SubmitInquiry(context.Background(), in, meta)
	require.NoError(t, err)
}

func TestSubmitTrialPhoneFitsColumn(t *testing.T) {
	f := newFixture(t, defaultSettings())

	in := TrialInput{Name: "Ada", Email: "ada@example.com", Phone: "+1 (555) 010 - 0199 - 0000 - 00", Company: "Acme"}
	_, err := f.pipeline.SubmitTrial(context.Background(), in, meta)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Equal(t, "phone must be at most 30 characters", apperr.PublicMessage(err))
	assert.Zero(t, f.count(t, &models.FreeTrialRequest{}))
}

func TestSubmitProjectStoredNameFollowsContentType(t *testing.T) {
	f := newFixture(t, defaultSettings())

	files := []Upload{
		UploadFromBytes("page.html", "application/pdf", []byte("<html>")),
		UploadFromBytes("notes", "text/plain", []byte("notes")),
	}
	req, err := f.pipeline.SubmitProject(context.Background(), project(), files, meta)
	require.NoError(t, err)
	require.Len(t, req.AttachedFiles, 2)

	assert.Equal(t, "page.html", req.AttachedFiles[0].OriginalName)
	assert.True(t, strings.HasSuffix(req.AttachedFiles[0].StoredName, ".pdf"), req.AttachedFiles[0].StoredName)
	assert.True(t, strings.HasSuffix(req.AttachedFiles[1].StoredName, ".txt"), req.AttachedFiles[1].StoredName)

	for _, name := range f.files(t, blobstore.DirProjectDocs) {
		assert.NotEqual(t, ".html", filepath.Ext(name))
	}
}
