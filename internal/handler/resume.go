package handler

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/applytrack/applytrack-server/internal/repository"
)

// maxResumeSize caps uploads at 5 MB.
const maxResumeSize = 5 << 20

// allowedResumeTypes maps accepted MIME types to the extension stored on
// disk. Uploads outside this set are rejected.
var allowedResumeTypes = map[string]string{
	"application/pdf":    ".pdf",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
}

// ResumeHandler serves upload, listing, download and deletion of resume
// documents. Files live under UploadDir with generated names; the
// original name is kept in the database for display and download.
type ResumeHandler struct {
	Resumes   *repository.ResumeRepo
	UploadDir string
}

func NewResumeHandler(resumes *repository.ResumeRepo, uploadDir string) *ResumeHandler {
	return &ResumeHandler{Resumes: resumes, UploadDir: uploadDir}
}

// List returns the user's resumes, newest first.
func (h *ResumeHandler) List(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	resumes, err := h.Resumes.ListByUser(ctx, u.ID)
	if err != nil {
		c.Logger().Errorf("list resumes: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch resumes"})
	}
	return c.JSON(http.StatusOK, echo.Map{"resumes": resumes})
}

// Upload accepts a multipart "resume" file, writes it under UploadDir and
// records its metadata.
func (h *ResumeHandler) Upload(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}

	fh, err := c.FormFile("resume")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No file uploaded"})
	}
	if fh.Size > maxResumeSize {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "File too large (max 5MB)"})
	}
	mimeType := fh.Header.Get("Content-Type")
	ext, okType := allowedResumeTypes[mimeType]
	if !okType {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Only PDF, DOC and DOCX files are allowed"})
	}

	src, err := fh.Open()
	if err != nil {
		c.Logger().Errorf("upload resume: open: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to upload resume"})
	}
	defer src.Close()

	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		c.Logger().Errorf("upload resume: mkdir: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to upload resume"})
	}

	fileName := fmt.Sprintf("resume-%d-%d%s", u.ID, time.Now().UnixNano(), ext)
	fullPath := filepath.Join(h.UploadDir, fileName)

	dst, err := os.Create(fullPath)
	if err != nil {
		c.Logger().Errorf("upload resume: create: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to upload resume"})
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(fullPath)
		c.Logger().Errorf("upload resume: copy: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to upload resume"})
	}
	if err := dst.Close(); err != nil {
		os.Remove(fullPath)
		c.Logger().Errorf("upload resume: close: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to upload resume"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	original := sanitizeFilename(fh.Filename)
	resume, err := h.Resumes.Create(ctx, u.ID, fileName, original, fullPath, fh.Size, mimeType)
	if err != nil {
		os.Remove(fullPath)
		c.Logger().Errorf("upload resume: insert: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to upload resume"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"resume": resume})
}

// Download streams an owned resume back with its original filename.
func (h *ResumeHandler) Download(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Resume not found"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	resume, err := h.Resumes.GetByID(ctx, u.ID, id)
	if err == repository.ErrNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Resume not found"})
	}
	if err != nil {
		c.Logger().Errorf("download resume: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to download resume"})
	}
	if _, err := os.Stat(resume.FilePath); err != nil {
		// Row exists but the file is gone, treat as missing.
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Resume file not found"})
	}
	return c.Attachment(resume.FilePath, resume.OriginalName)
}

// Delete removes a resume row, its links and its on-disk file. The file
// removal is best-effort: the row is already gone, so a failure here only
// leaks disk space.
func (h *ResumeHandler) Delete(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Resume not found"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	resume, err := h.Resumes.GetByID(ctx, u.ID, id)
	if err == repository.ErrNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Resume not found"})
	}
	if err != nil {
		c.Logger().Errorf("delete resume: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete resume"})
	}
	if err := h.Resumes.Delete(ctx, u.ID, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Resume not found"})
		}
		c.Logger().Errorf("delete resume: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete resume"})
	}
	if err := os.Remove(resume.FilePath); err != nil && !os.IsNotExist(err) {
		c.Logger().Warnf("delete resume: remove file %s: %v", resume.FilePath, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Resume deleted successfully"})
}

// sanitizeFilename strips any path components from a client-supplied
// filename.
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "" {
		return "resume"
	}
	return name
}
