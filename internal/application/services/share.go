package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"file-share-api/config"
	"file-share-api/internal/application/ports"
	domain "file-share-api/internal/domain/share"
	"file-share-api/internal/infrastructure/mq"
	dtoShare "file-share-api/internal/interface/api/rest/dto/share"
)

const maxBaseNameLen = 100

var (
	fileSafeRe    = regexp.MustCompile(`[^A-Za-z0-9\.\_\- ]+`)
	leadingDotsRe = regexp.MustCompile(`^\.+`)
)

type ShareService struct {
	s3        ports.ObjectStore
	shares    domain.Repository
	reclaimer ports.Reclaimer
	mq        ports.RabbitMQ
	mCounter  *prometheus.CounterVec
	logger    *zap.Logger
	cfgS3     config.S3
	cfgShare  config.Share
}

func NewShareService(
	s3 ports.ObjectStore,
	shares domain.Repository,
	reclaimer ports.Reclaimer,
	rbMQ ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
	logger *zap.Logger,
	cfgS3 config.S3,
	cfgShare config.Share,
) ports.ShareService {
	return &ShareService{
		s3:        s3,
		shares:    shares,
		reclaimer: reclaimer,
		mq:        rbMQ,
		mCounter:  mCounter,
		logger:    logger,
		cfgS3:     cfgS3,
		cfgShare:  cfgShare,
	}
}

func (ss *ShareService) CreateShare(
	ctx context.Context,
	fileName string,
	maxDownloads, expiresInHours int,
) (*domain.UploadGrant, error) {
	id := uuid.New()
	clean := sanitizeFileName(fileName)
	key := storageKey(id, clean)

	uploadURL, err := ss.s3.PresignUpload(ctx, key, ss.cfgS3.UploadTTL)
	if err != nil {
		return nil, err
	}

	out, err := ss.shares.Create(ctx, &domain.Share{
		ID:           id,
		FileName:     clean,
		StorageKey:   key,
		MaxDownloads: maxDownloads,
		ExpiresAt:    time.Now().UTC().Add(time.Duration(expiresInHours) * time.Hour),
	})
	if err != nil {
		return nil, err
	}

	ss.publish(mq.ActionShareCreated, out)
	ss.mCounter.WithLabelValues("shares_created_total").Inc()

	return &domain.UploadGrant{
		Share:     out,
		UploadURL: uploadURL,
		PageURL:   ss.pageURL(id),
	}, nil
}

func (ss *ShareService) UploadDirect(
	ctx context.Context,
	fh *multipart.FileHeader,
	maxDownloads, expiresInHours int,
) (*domain.UploadGrant, error) {
	id := uuid.New()
	clean := sanitizeFileName(fh.Filename)
	key := storageKey(id, clean)

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if err = ss.s3.PutObject(ctx, key, f, contentType); err != nil {
		return nil, err
	}

	out, err := ss.shares.Create(ctx, &domain.Share{
		ID:           id,
		FileName:     clean,
		StorageKey:   key,
		MaxDownloads: maxDownloads,
		ExpiresAt:    time.Now().UTC().Add(time.Duration(expiresInHours) * time.Hour),
	})
	if err != nil {
		return nil, err
	}

	ss.publish(mq.ActionShareCreated, out)
	ss.mCounter.WithLabelValues("shares_created_total").Inc()

	return &domain.UploadGrant{Share: out, PageURL: ss.pageURL(id)}, nil
}

// Info reads the record without consuming a slot, so the download page can
// show state before the user commits to the one-way increment.
func (ss *ShareService) Info(ctx context.Context, id uuid.UUID) (*domain.Decision, error) {
	now := time.Now().UTC()

	sh, err := ss.shares.Fetch(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NotFoundDecision(), nil
	}
	if err != nil {
		return nil, err
	}

	if sh.Expired(now) {
		return expiredDecision(sh), nil
	}
	if sh.Exhausted() {
		return maxedDecision(sh), nil
	}

	rem := sh.Remaining()
	return &domain.Decision{
		Status:    domain.StatusOK,
		Message:   domain.MsgAvailable,
		FileName:  sh.FileName,
		Remaining: &rem,
		ExpiresAt: sh.ExpiresAt,
	}, nil
}

// Download is the state machine for one attempt. The snapshot checks are a
// cheap short-circuit only; the conditional increment against the store is
// what actually guards the quota under concurrent requests.
func (ss *ShareService) Download(ctx context.Context, id uuid.UUID) (*domain.Decision, error) {
	now := time.Now().UTC()

	sh, err := ss.shares.Fetch(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NotFoundDecision(), nil
	}
	if err != nil {
		return nil, err
	}

	if sh.Expired(now) {
		return expiredDecision(sh), nil
	}
	if sh.Exhausted() {
		return maxedDecision(sh), nil
	}

	n, err := ss.shares.TryIncrement(ctx, id, now)
	if errors.Is(err, domain.ErrRejected) {
		// A concurrent request took the last slot, or the deadline passed
		// between snapshot and commit. Re-read to report which.
		return ss.resolveRejected(ctx, id, now)
	}
	if err != nil {
		return nil, err
	}

	exists, err := ss.s3.ObjectExists(ctx, sh.StorageKey)
	if err != nil {
		return nil, err
	}
	if !exists {
		// The availability source of truth is the counter, not the object,
		// so a missing object reports as maxed. Below quota it means the
		// object vanished out of band.
		if n < sh.MaxDownloads {
			ss.logger.Warn("object missing before quota exhausted",
				zap.String("share_id", id.String()),
				zap.String("storage_key", sh.StorageKey),
				zap.Int("downloads", n),
			)
		}
		zero := 0
		return &domain.Decision{
			Status:    domain.StatusMaxed,
			Message:   domain.MsgGone,
			FileName:  sh.FileName,
			Remaining: &zero,
		}, nil
	}

	downloadURL, err := ss.s3.PresignDownload(ctx, sh.StorageKey, ss.cfgS3.DownloadTTL)
	if err != nil {
		return nil, err
	}

	remaining := sh.MaxDownloads - n
	if remaining < 0 {
		remaining = 0
	}

	granted := *sh
	granted.Downloads = n
	if remaining == 0 {
		// This request observed the exhausting transition; it alone arms
		// reclamation, before the response goes out and without waiting on it.
		ss.reclaimer.Arm(domain.ReclaimTask{ShareID: id, StorageKey: sh.StorageKey})
		ss.publish(mq.ActionShareExhausted, &granted)
	}

	ss.publish(mq.ActionDownloadGranted, &granted)
	ss.mCounter.WithLabelValues("downloads_granted_total").Inc()

	return &domain.Decision{
		Status:      domain.StatusOK,
		FileName:    sh.FileName,
		DownloadURL: downloadURL,
		Remaining:   &remaining,
		ExpiresAt:   sh.ExpiresAt,
	}, nil
}

func (ss *ShareService) resolveRejected(ctx context.Context, id uuid.UUID, now time.Time) (*domain.Decision, error) {
	fresh, err := ss.shares.Fetch(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NotFoundDecision(), nil
	}
	if err != nil {
		return nil, err
	}

	if fresh.Expired(now) {
		return &domain.Decision{
			Status:   domain.StatusExpired,
			Message:  domain.MsgExpired,
			FileName: fresh.FileName,
		}, nil
	}
	return &domain.Decision{
		Status:   domain.StatusMaxed,
		Message:  domain.MsgMaxed,
		FileName: fresh.FileName,
	}, nil
}

func (ss *ShareService) publish(action string, sh *domain.Share) {
	e := mq.Event{
		Id:      uuid.New(),
		TS:      time.Now(),
		Action:  action,
		ShareID: sh.ID.String(),
		Payload: dtoShare.ToEventShare(*sh),
	}
	select {
	case ss.mq.GetInputChan() <- e:
	default:
		// the audit stream never blocks a request
		ss.logger.Warn("event buffer full, event dropped", zap.String("action", action))
	}
}

func (ss *ShareService) pageURL(id uuid.UUID) string {
	return strings.TrimRight(ss.cfgShare.FrontendBaseURL, "/") + "/file/" + id.String()
}

func expiredDecision(sh *domain.Share) *domain.Decision {
	rem := sh.Remaining()
	return &domain.Decision{
		Status:    domain.StatusExpired,
		Message:   domain.MsgExpired,
		FileName:  sh.FileName,
		Remaining: &rem,
		ExpiresAt: sh.ExpiresAt,
	}
}

func maxedDecision(sh *domain.Share) *domain.Decision {
	zero := 0
	return &domain.Decision{
		Status:    domain.StatusMaxed,
		Message:   domain.MsgMaxed,
		FileName:  sh.FileName,
		Remaining: &zero,
		ExpiresAt: sh.ExpiresAt,
	}
}

func storageKey(id uuid.UUID, fileName string) string {
	return fmt.Sprintf("uploads/%s/%s", id, fileName)
}

// sanitizeFileName keeps storage keys ASCII and display names harmless.
func sanitizeFileName(original string) string {
	s := strings.TrimSpace(original)
	s = strings.ReplaceAll(s, "\\", "/")
	s = path.Base(s)
	if s == "." || s == ".." || s == "" {
		return "file"
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, _ = transform.String(t, s)

	s = strings.Map(func(r rune) rune {
		if r == '\x00' || r < 0x20 {
			return -1
		}
		return r
	}, s)
	s = leadingDotsRe.ReplaceAllString(s, "")

	ext := filepath.Ext(s)
	base := strings.TrimSuffix(s, ext)
	ext = strings.ToLower(ext)
	base = fileSafeRe.ReplaceAllString(base, "-")
	base = strings.Trim(base, "- .")

	if len(base) > maxBaseNameLen {
		base = base[:maxBaseNameLen]
	}
	if base == "" {
		base = "file"
	}

	return base + ext
}
