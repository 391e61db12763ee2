package services

import (
	"cmp"
	"context"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/smartdrive/internal/common"
	"github.com/dmitrijs2005/smartdrive/internal/logging"
	"github.com/dmitrijs2005/smartdrive/internal/server/blobstore"
	"github.com/dmitrijs2005/smartdrive/internal/server/models"
	"github.com/dmitrijs2005/smartdrive/internal/server/repositories/files"
)

// DefaultShareLinkValidity is the lifetime of a share link.
const DefaultShareLinkValidity = 3600 * time.Second

// ShareLink is a time-limited read URL for one object.
type ShareLink struct {
	URL       string
	ExpiresIn time.Duration
}

// FileService maps (owner, file name) to a storage key and keeps blob
// objects and metadata records in step.
//
// Mutations touch the blob store first and metadata second; the second step
// runs only if the first succeeded. There is no transaction across the two
// stores: a failed metadata write after a successful upload leaves an
// unlisted blob behind, and concurrent writers of the same name may end up
// with blob and record from different requests.
type FileService struct {
	blobs    blobstore.Store
	files    files.Repository
	shareTTL time.Duration
	now      func() time.Time
	logger   logging.Logger
}

// NewFileService constructs a FileService. A non-positive shareTTL selects
// DefaultShareLinkValidity.
func NewFileService(blobs blobstore.Store, repo files.Repository, shareTTL time.Duration, l logging.Logger) *FileService {
	if shareTTL <= 0 {
		shareTTL = DefaultShareLinkValidity
	}
	return &FileService{
		blobs:    blobs,
		files:    repo,
		shareTTL: shareTTL,
		now:      time.Now,
		logger:   l.With("module", "file_service"),
	}
}

// StorageKey is the blob key of fileName in owner's namespace.
func StorageKey(owner, fileName string) string {
	return owner + "/" + fileName
}

func validate(owner, fileName string) error {
	if owner == "" || strings.Contains(owner, "/") {
		return common.ErrUnauthorized
	}
	if fileName == "" {
		return common.ErrInvalidInput
	}
	return nil
}

// Upload stores content under owner/fileName and then writes the metadata
// record, stamped with today's UTC date. A re-upload overwrites both.
func (s *FileService) Upload(ctx context.Context, owner, fileName string, content io.Reader, size int64, contentType string) (*models.FileRecord, error) {
	if err := validate(owner, fileName); err != nil {
		return nil, err
	}
	if contentType == "" {
		contentType = common.DefaultContentType
	}

	key := StorageKey(owner, fileName)
	if err := s.blobs.Put(ctx, key, content, size, contentType); err != nil {
		s.logger.Error(ctx, "blob put failed", "key", key, "error", err)
		return nil, common.NewStorageError("put object", key, err)
	}

	rec := &models.FileRecord{
		Owner:      owner,
		FileName:   fileName,
		PublicURL:  s.blobs.PublicURL(key),
		StorageKey: key,
		UploadDate: s.now().UTC().Format(models.UploadDateLayout),
	}
	if err := s.files.Put(ctx, rec); err != nil {
		s.logger.Error(ctx, "metadata put failed, blob left unlisted", "key", key, "error", err)
		return nil, common.NewStorageError("put metadata", key, err)
	}

	s.logger.Info(ctx, "file uploaded", "owner", owner, "key", key)
	return rec, nil
}

// List returns owner's records ordered by lowercased file name, ascending.
// Names equal except for case are ordered by their raw byte value.
func (s *FileService) List(ctx context.Context, owner string) ([]*models.FileRecord, error) {
	if owner == "" || strings.Contains(owner, "/") {
		return nil, common.ErrUnauthorized
	}

	recs, err := s.files.ListByOwner(ctx, owner)
	if err != nil {
		s.logger.Error(ctx, "metadata list failed", "owner", owner, "error", err)
		return nil, common.NewStorageError("list metadata", owner, err)
	}
	if recs == nil {
		recs = []*models.FileRecord{}
	}

	slices.SortStableFunc(recs, func(a, b *models.FileRecord) int {
		return cmp.Or(
			strings.Compare(strings.ToLower(a.FileName), strings.ToLower(b.FileName)),
			strings.Compare(a.FileName, b.FileName),
		)
	})
	return recs, nil
}

// Delete removes the blob and then the metadata record. If the blob delete
// fails the record is left untouched.
func (s *FileService) Delete(ctx context.Context, owner, fileName string) error {
	if err := validate(owner, fileName); err != nil {
		return err
	}

	key := StorageKey(owner, fileName)
	if err := s.blobs.Delete(ctx, key); err != nil {
		s.logger.Error(ctx, "blob delete failed", "key", key, "error", err)
		return common.NewStorageError("delete object", key, err)
	}

	if err := s.files.Delete(ctx, owner, fileName); err != nil {
		s.logger.Error(ctx, "metadata delete failed", "key", key, "error", err)
		return common.NewStorageError("delete metadata", key, err)
	}

	s.logger.Info(ctx, "file deleted", "owner", owner, "key", key)
	return nil
}

// Share issues a time-limited read URL for owner/fileName. It consults
// only the blob store; metadata is not checked.
func (s *FileService) Share(ctx context.Context, owner, fileName string) (*ShareLink, error) {
	if err := validate(owner, fileName); err != nil {
		return nil, err
	}

	key := StorageKey(owner, fileName)
	u, err := s.blobs.PresignGet(ctx, key, s.shareTTL)
	if err != nil {
		s.logger.Warn(ctx, "share link failed", "key", key, "error", err)
		return nil, common.NewStorageError("presign", key, err)
	}

	return &ShareLink{URL: u, ExpiresIn: s.shareTTL}, nil
}
