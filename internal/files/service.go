package files

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"recruit-backend/internal/applications"
	"recruit-backend/internal/candidates"
	"recruit-backend/internal/shared/auth"
	"recruit-backend/internal/shared/storage/object"
	"recruit-backend/internal/shared/telemetry"
	"recruit-backend/internal/shared/util"
)

// MaxUploadSize bounds resume uploads.
const MaxUploadSize = 10 << 20 // 10MB

const resumeMIME = "application/pdf"

// Extractor derives searchable text from a stored resume. Implementations run
// best-effort after upload: outcomes are logged, never returned to the
// caller's request path.
type Extractor interface {
	ExtractAsync(name string)
}

// Service resolves logical resume filenames to stored objects and enforces
// access through the owning application.
type Service struct {
	Store      object.Store
	Apps       applications.Repo
	Candidates candidates.Repo
	Extractor  Extractor
}

// Delivery carries everything the HTTP layer needs to serve a resume.
type Delivery struct {
	App           applications.Application
	SizeBytes     int64
	SuggestedName string
}

// PrepareDelivery runs the read-path checks in order: physical existence,
// ownership lookup, authorization, then metadata. A name with no stored file
// or no owning application is ErrNotFound before any ownership comparison, so
// callers cannot probe which names exist but belong to others.
func (s *Service) PrepareDelivery(ctx context.Context, name, callerID, role string) (Delivery, error) {
	size, err := s.Store.Stat(ctx, name)
	if err != nil {
		if errors.Is(err, object.ErrNotExist) {
			return Delivery{}, ErrNotFound
		}
		return Delivery{}, fmt.Errorf("stat resume %s: %w", name, err)
	}

	app, err := s.Apps.GetByResumeFile(ctx, name)
	if err != nil {
		if errors.Is(err, applications.ErrNotFound) {
			return Delivery{}, ErrNotFound
		}
		return Delivery{}, fmt.Errorf("load owning application for %s: %w", name, err)
	}

	if err := applications.Authorize(app, callerID, role); err != nil {
		return Delivery{}, ErrForbidden
	}

	return Delivery{
		App:           app,
		SizeBytes:     size,
		SuggestedName: s.suggestedName(ctx, app),
	}, nil
}

// Open streams the stored resume. Callers must have passed PrepareDelivery
// and are responsible for closing the reader on every exit path.
func (s *Service) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	reader, err := s.Store.Open(ctx, name)
	if err != nil {
		if errors.Is(err, object.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return reader, nil
}

// Delete removes a stored resume. Deletion is admin-only, independent of and
// stricter than the read path: the owning candidate cannot delete their own
// file.
func (s *Service) Delete(ctx context.Context, name, role string) error {
	if role != auth.RoleAdmin {
		return ErrForbidden
	}

	if err := s.Store.Delete(ctx, name); err != nil {
		if errors.Is(err, object.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("delete resume %s: %w", name, err)
	}

	app, err := s.Apps.GetByResumeFile(ctx, name)
	if err != nil {
		if errors.Is(err, applications.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("load owning application for %s: %w", name, err)
	}
	if err := s.Apps.SetResume(ctx, app.ID, "", ""); err != nil {
		return fmt.Errorf("clear resume reference %s: %w", app.ID, err)
	}
	return nil
}

// Listing is one page of applications with a stored resume.
type Listing struct {
	Items       []applications.Application
	CurrentPage int
	TotalPages  int
	TotalCount  int
}

// List pages applications holding a resume, newest first. Authorization is
// the route's concern; callers reach this only through an admin-only route.
func (s *Service) List(ctx context.Context, jobID string, page, pageSize int) (Listing, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	total, err := s.Apps.CountWithResume(ctx, jobID)
	if err != nil {
		return Listing{}, err
	}

	items, err := s.Apps.ListWithResume(ctx, jobID, pageSize, (page-1)*pageSize)
	if err != nil {
		return Listing{}, err
	}

	totalPages := (total + pageSize - 1) / pageSize
	return Listing{
		Items:       items,
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  total,
	}, nil
}

// AttachResume validates and stores an uploaded resume for an application,
// then links it as the owning record's file. The caller must be entitled to
// the application. Size and type are rejected before any storage write.
func (s *Service) AttachResume(ctx context.Context, applicationID, callerID, role, originalName string, r io.Reader, declaredSize int64) (string, error) {
	if declaredSize > MaxUploadSize {
		return "", ErrInvalid
	}
	if _, err := util.SanitizeFileName(originalName); err != nil {
		return "", ErrInvalid
	}

	app, err := s.Apps.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, applications.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	if err := applications.Authorize(app, callerID, role); err != nil {
		return "", ErrForbidden
	}

	name, err := s.StoreResume(ctx, r, declaredSize)
	if err != nil {
		return "", err
	}

	if err := s.Apps.SetResume(ctx, app.ID, name, originalName); err != nil {
		return "", fmt.Errorf("attach resume to %s: %w", app.ID, err)
	}

	if s.Extractor != nil {
		s.Extractor.ExtractAsync(name)
	}
	return name, nil
}

// StoreResume validates an uploaded resume stream and writes it under a new
// opaque logical name. Size and type violations fail ErrInvalid before any
// storage write.
func (s *Service) StoreResume(ctx context.Context, r io.Reader, declaredSize int64) (string, error) {
	if declaredSize > MaxUploadSize {
		return "", ErrInvalid
	}

	var sniff [512]byte
	n, readErr := io.ReadFull(r, sniff[:])
	if readErr != nil && readErr != io.EOF && readErr != io.ErrUnexpectedEOF {
		return "", fmt.Errorf("read upload: %w", readErr)
	}
	if detected := http.DetectContentType(sniff[:n]); !strings.HasPrefix(detected, resumeMIME) {
		return "", ErrInvalid
	}

	name := uuid.NewString() + ".pdf"
	body := io.MultiReader(bytes.NewReader(sniff[:n]), r)
	size, _, err := s.Store.Save(ctx, name, io.LimitReader(body, MaxUploadSize+1))
	if err != nil {
		return "", fmt.Errorf("store resume: %w", err)
	}
	if size > MaxUploadSize {
		if delErr := s.Store.Delete(ctx, name); delErr != nil {
			telemetry.Warn("files.upload.cleanup_failed", map[string]any{
				"resume_file": name,
				"err":         delErr.Error(),
			})
		}
		return "", ErrInvalid
	}
	return name, nil
}

// suggestedName derives a human-readable download filename from the owning
// applicant: guest snapshot name, else the referenced candidate's name, else
// the literal "resume".
func (s *Service) suggestedName(ctx context.Context, app applications.Application) string {
	base := "resume"
	if snap, ok := app.Applicant.Guest(); ok && strings.TrimSpace(snap.Name) != "" {
		base = snap.Name
	} else if candID, ok := app.Applicant.CandidateID(); ok && s.Candidates != nil {
		cand, err := s.Candidates.GetByID(ctx, candID)
		if err == nil && strings.TrimSpace(cand.Name) != "" {
			base = cand.Name
		}
	}
	sanitized, err := util.SanitizeFileName(base)
	if err != nil {
		sanitized = "resume"
	}
	sanitized = strings.ReplaceAll(sanitized, " ", "_")
	return sanitized + ".pdf"
}
