package service

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/school-admin-api/pkg/config"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
	"github.com/noah-isme/school-admin-api/pkg/jobs"
	"github.com/noah-isme/school-admin-api/pkg/storage"
)

// JobMediaDelete is the queue job type that removes a replaced media object.
const JobMediaDelete = "media_delete"

const profilePictureName = "profile"

// MediaUpload is an incoming file.
type MediaUpload struct {
	Body        io.Reader
	Size        int64
	ContentType string
}

// MediaObject is the upload result returned to clients.
type MediaObject struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
	Format   string `json:"format"`
	Bytes    int64  `json:"bytes"`
}

// MediaService validates uploads and talks to the configured media host.
type MediaService struct {
	host     storage.MediaHost
	queue    jobEnqueuer
	metrics  *MetricsService
	logger   *zap.Logger
	folder   string
	maxBytes int64
	allowed  map[string]struct{}
}

// NewMediaService constructs a MediaService. queue may be nil.
func NewMediaService(host storage.MediaHost, cfg config.MediaConfig, queue jobEnqueuer, metrics *MetricsService, logger *zap.Logger) *MediaService {
	if logger == nil {
		logger = zap.NewNop()
	}
	allowed := make(map[string]struct{}, len(cfg.AllowedMIMEs))
	for _, mime := range cfg.AllowedMIMEs {
		allowed[strings.ToLower(mime)] = struct{}{}
	}
	maxBytes := cfg.MaxFileSizeBytes
	if maxBytes <= 0 {
		maxBytes = 5 * 1024 * 1024
	}
	folder := cfg.Folder
	if folder == "" {
		folder = "profile_pics"
	}
	return &MediaService{host: host, queue: queue, metrics: metrics, logger: logger, folder: folder, maxBytes: maxBytes, allowed: allowed}
}

// MaxBytes is the largest accepted upload.
func (s *MediaService) MaxBytes() int64 {
	return s.maxBytes
}

// UploadProfilePicture stores the picture of username, replacing any picture
// stored under the same key. The content type is sniffed from the file.
func (s *MediaService) UploadProfilePicture(ctx context.Context, username string, upload MediaUpload) (*MediaObject, error) {
	if s.host == nil {
		return nil, appErrors.ErrMediaUnavailable
	}
	if upload.Body == nil {
		s.metrics.ObserveMediaUpload(false, 0)
		return nil, appErrors.Clone(appErrors.ErrValidation, "no file uploaded")
	}
	if upload.Size > s.maxBytes {
		s.metrics.ObserveMediaUpload(false, 0)
		return nil, appErrors.Clone(appErrors.ErrPayloadTooLarge, fmt.Sprintf("file exceeds %d bytes", s.maxBytes))
	}

	reader := bufio.NewReaderSize(upload.Body, 512)
	head, err := reader.Peek(512)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "unable to read upload")
	}
	if len(head) == 0 {
		s.metrics.ObserveMediaUpload(false, 0)
		return nil, appErrors.Clone(appErrors.ErrValidation, "uploaded file is empty")
	}
	contentType := http.DetectContentType(head)
	if _, ok := s.allowed[contentType]; !ok {
		s.metrics.ObserveMediaUpload(false, 0)
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("file type %s is not allowed", contentType))
	}

	key := s.profileKey(username)
	obj, err := s.host.Put(ctx, key, io.LimitReader(reader, s.maxBytes+1), upload.Size, contentType)
	if err != nil {
		s.metrics.ObserveMediaUpload(false, 0)
		s.logger.Error("media upload failed", zap.String("key", key), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrMediaUnavailable.Code, appErrors.ErrMediaUnavailable.Status, "failed to upload image")
	}
	if obj.Bytes > s.maxBytes {
		// Only reachable when the client did not announce a size.
		_ = s.host.Delete(ctx, obj.Key)
		s.metrics.ObserveMediaUpload(false, 0)
		return nil, appErrors.Clone(appErrors.ErrPayloadTooLarge, fmt.Sprintf("file exceeds %d bytes", s.maxBytes))
	}
	s.metrics.ObserveMediaUpload(true, obj.Bytes)

	return &MediaObject{
		PublicID: obj.Key,
		URL:      obj.URL,
		Format:   storage.FormatFromContentType(obj.ContentType),
		Bytes:    obj.Bytes,
	}, nil
}

// URL returns a loadable link for a stored object.
func (s *MediaService) URL(ctx context.Context, publicID string) (string, error) {
	if s.host == nil {
		return "", appErrors.ErrMediaUnavailable
	}
	if strings.TrimSpace(publicID) == "" {
		return "", appErrors.Clone(appErrors.ErrValidation, "public_id is required")
	}
	link, err := s.host.URL(ctx, publicID)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return "", appErrors.Clone(appErrors.ErrNotFound, "image not found")
		}
		return "", appErrors.Wrap(err, appErrors.ErrMediaUnavailable.Code, appErrors.ErrMediaUnavailable.Status, "failed to resolve image")
	}
	return link, nil
}

// ScheduleDelete queues removal of a replaced object. Errors are logged.
func (s *MediaService) ScheduleDelete(publicID string) {
	if s == nil || s.queue == nil || publicID == "" {
		return
	}
	if err := s.queue.Enqueue(jobs.Job{ID: publicID, Type: JobMediaDelete, Payload: publicID}); err != nil {
		s.logger.Warn("media delete not queued", zap.String("key", publicID), zap.Error(err))
	}
}

// HandleDeleteJob removes a queued object. Already missing objects succeed.
func (s *MediaService) HandleDeleteJob(ctx context.Context, job jobs.Job) error {
	key, ok := job.Payload.(string)
	if !ok {
		return fmt.Errorf("unexpected media delete payload %T", job.Payload)
	}
	if err := s.host.Delete(ctx, key); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
		return err
	}
	return nil
}

func (s *MediaService) profileKey(username string) string {
	owner := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(strings.TrimSpace(username))
	if owner == "" {
		owner = "anonymous"
	}
	return s.folder + "/" + owner + "/" + profilePictureName
}
