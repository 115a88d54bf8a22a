package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/facebookgo/clock"
	"github.com/google/uuid"

	"projectapi/internal/model"
	"projectapi/internal/repository"
	"projectapi/internal/storage"
)

// FileUpload describes an attachment being added to a project.
type FileUpload struct {
	ProjectID        string
	Name             string
	OriginalFilename string
	ContentType      string
	Size             int64
}

// FileDownload is a file record with a time-limited download URL.
type FileDownload struct {
	model.ProjectFile
	DownloadURL string `json:"download_url"`
}

// FileService defines the use cases for project attachments.
type FileService interface {
	// Upload stores the content in object storage, saves metadata to DB, and rolls back storage if DB save fails.
	// OriginalFilename only contributes its extension to the object key.
	Upload(ctx context.Context, requester string, r io.Reader, in FileUpload) (*model.ProjectFile, error)

	// List returns a project's files using limit/offset and a total count.
	List(ctx context.Context, requester, projectID string, limit, offset int) (*ListResult[model.ProjectFile], error)

	// Get returns a single file with a presigned download URL.
	Get(ctx context.Context, requester, id string) (*FileDownload, error)

	// Delete removes a file from both storage and repository.
	Delete(ctx context.Context, requester, id string) error
}

type fileService struct {
	guard
	store         storage.Storage
	repo          repository.ProjectFileRepository
	clock         clock.Clock
	presignExpiry time.Duration
}

// NewFileService constructs a new FileService.
func NewFileService(store storage.Storage, repo repository.ProjectFileRepository, projects repository.ProjectRepository, clk clock.Clock, presignExpiry time.Duration) FileService {
	return &fileService{
		guard:         guard{projects: projects},
		store:         store,
		repo:          repo,
		clock:         clk,
		presignExpiry: presignExpiry,
	}
}

func (s *fileService) Upload(ctx context.Context, requester string, r io.Reader, in FileUpload) (*model.ProjectFile, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if _, err := s.requireProject(ctx, requester, in.ProjectID); err != nil {
		return nil, err
	}
	name := in.Name
	if name == "" {
		name = in.OriginalFilename
	}
	fe := fieldErrors{}
	name = checkTitle(fe, "name", name)
	if err := fe.err(); err != nil {
		return nil, err
	}

	key := storage.ProjectPrefix(in.ProjectID) + uuid.New().String() + filepath.Ext(in.OriginalFilename)
	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        in.Size,
		ContentType: in.ContentType,
		Metadata: map[string]string{
			"original-filename": in.OriginalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	f := &model.ProjectFile{
		ID:          uuid.New().String(),
		ProjectID:   in.ProjectID,
		Name:        name,
		StoragePath: objInfo.Key,
		Size:        objInfo.Size,
		ContentType: objInfo.ContentType,
		CreatedAt:   s.clock.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, f)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func (s *fileService) List(ctx context.Context, requester, projectID string, limit, offset int) (*ListResult[model.ProjectFile], error) {
	if projectID == "" {
		return nil, invalid("project_id", "This query parameter is required.")
	}
	filter, err := s.scope(ctx, requester, projectID)
	if err != nil {
		return nil, err
	}
	res, err := s.repo.List(ctx, filter, pageQuery(limit, offset))
	if err != nil {
		return nil, err
	}
	return &ListResult[model.ProjectFile]{Items: res.Items, Total: res.Total}, nil
}

func (s *fileService) Get(ctx context.Context, requester, id string) (*FileDownload, error) {
	f, err := s.find(ctx, requester, id)
	if err != nil {
		return nil, err
	}
	url, err := s.store.PresignGet(ctx, f.StoragePath, s.presignExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign download: %w", err)
	}
	return &FileDownload{ProjectFile: *f, DownloadURL: url}, nil
}

// Delete removes the object first; if that fails the row is kept so the reference is not lost.
func (s *fileService) Delete(ctx context.Context, requester, id string) error {
	f, err := s.find(ctx, requester, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, f.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return translate(s.repo.Delete(ctx, id))
}

func (s *fileService) find(ctx context.Context, requester, id string) (*model.ProjectFile, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	if _, err := s.owned(ctx, requester, f.ProjectID); err != nil {
		return nil, err
	}
	return f, nil
}
