package material

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/acuhub/portal/core"
)

var (
	// errors
	ErrNotFound = errors.New("material not found")

	// content types accepted for upload
	allowedContentTypes = map[string]struct{}{
		"application/pdf":    {},
		"application/msword": {},
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   {},
		"application/vnd.ms-powerpoint":                                             {},
		"application/vnd.openxmlformats-officedocument.presentationml.presentation": {},
		"image/jpeg":      {},
		"image/png":       {},
		"image/gif":       {},
		"video/mp4":       {},
		"video/avi":       {},
		"video/quicktime": {},
	}
)

type (
	// FileStore persists raw file bytes; the database keeps metadata only.
	FileStore interface {
		// Save writes the content under <category>/<name> and returns the
		// relative path and the number of bytes written.
		Save(category, name string, content io.Reader) (path string, size int64, err error)
		Open(path string) (io.ReadCloser, error)
		Delete(path string) error
	}

	Repository interface {
		CreateMaterial(ctx context.Context, mat Material) (Material, error)
		GetMaterial(ctx context.Context, id string) (Material, error)
		// QueryMaterials applies AND operation on available QueryFilter fields.
		// Most recently uploaded first unless an ordering is given.
		QueryMaterials(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Material, error)
		IncrementDownloads(ctx context.Context, id string) error
		DeleteMaterial(ctx context.Context, id string) error
	}

	Service struct {
		repo  Repository
		store FileStore
		conf  *core.Config
	}
)

func NewService(repo Repository, store FileStore, conf *core.Config) *Service {
	return &Service{repo: repo, store: store, conf: conf}
}

// Upload validates and stores the file, then persists its metadata.
func (svc *Service) Upload(
	ctx context.Context,
	uploadedBy string,
	up Upload,
	fileName, contentType string,
	fileSize int64,
	content io.Reader,
) (Material, error) {
	if fileSize > svc.conf.Upload.MaxSize {
		return Material{}, core.NewValidationError(nil, core.FieldError{
			Field: "file",
			Error: fmt.Sprintf("file size exceeds maximum limit of %dMB", svc.conf.Upload.MaxSize/(1<<20)),
		})
	}
	if _, ok := allowedContentTypes[contentType]; !ok {
		return Material{}, core.NewValidationError(nil, core.FieldError{
			Field: "file",
			Error: fmt.Sprintf("file type %s is not allowed", contentType),
		})
	}

	storedName := uuid.New().String() + filepath.Ext(fileName)
	path, size, err := svc.store.Save(up.Category, storedName, content)
	if err != nil {
		return Material{}, errors.Wrap(err, "saving file")
	}

	now := time.Now().UTC()
	mat := Material{
		Title:            up.Title,
		Description:      up.Description,
		CourseCode:       up.CourseCode,
		Type:             FileType(fileName),
		Category:         up.Category,
		OriginalFileName: fileName,
		FileName:         storedName,
		FilePath:         path,
		FileSize:         size,
		ContentType:      contentType,
		UploadedBy:       uploadedBy,
		Tags:             up.TagList(),
		IsPublic:         up.IsPublic,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	mat, err = svc.repo.CreateMaterial(ctx, mat)
	if err != nil {
		// do not leave orphaned bytes behind
		_ = svc.store.Delete(path)
		return Material{}, err
	}
	return mat, nil
}

func (svc *Service) GetByID(ctx context.Context, id string) (Material, error) {
	return svc.repo.GetMaterial(ctx, id)
}

func (svc *Service) Query(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Material, error) {
	return svc.repo.QueryMaterials(ctx, filter, ordering)
}

// Download opens the material's content and bumps its download counter.
// The caller owns the returned ReadCloser.
func (svc *Service) Download(ctx context.Context, id string) (Material, io.ReadCloser, error) {
	mat, err := svc.repo.GetMaterial(ctx, id)
	if err != nil {
		return Material{}, nil, err
	}
	content, err := svc.store.Open(mat.FilePath)
	if err != nil {
		return Material{}, nil, errors.Wrap(err, "opening file")
	}
	if err = svc.repo.IncrementDownloads(ctx, id); err != nil {
		_ = content.Close()
		return Material{}, nil, errors.Wrap(err, "incrementing downloads")
	}
	mat.Downloads++
	return mat, content, nil
}

// Delete removes the metadata and the stored bytes.
func (svc *Service) Delete(ctx context.Context, id string) error {
	mat, err := svc.repo.GetMaterial(ctx, id)
	if err != nil {
		return err
	}
	if err = svc.repo.DeleteMaterial(ctx, id); err != nil {
		return err
	}
	return errors.Wrap(svc.store.Delete(mat.FilePath), "deleting file")
}
