package rest

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"file-share-api/internal/application/ports"
	dtoShare "file-share-api/internal/interface/api/rest/dto/share"
	"file-share-api/internal/interface/api/rest/middleware"
	"file-share-api/internal/interface/api/rest/validator"
)

// 5MB
const maxUploadSize = int64(5 << 20)

const (
	defaultMaxDownloads   = 1
	defaultExpiresInHours = 24
)

var allowedContentTypePrefixes = []string{
	"image/", "text/", "video/", "audio/",
	"application/pdf", "application/zip", "application/json",
	"application/msword", "application/vnd.openxmlformats",
}

type ShareController struct {
	shareService ports.ShareService
	logger       *zap.Logger
}

func NewShareController(
	r *gin.Engine,
	shareService ports.ShareService,
	logger *zap.Logger,
	limiter *middleware.RateLimiter,
) *ShareController {
	sc := &ShareController{
		shareService: shareService,
		logger:       logger,
	}

	r.POST(RouteShares, middleware.UploadRateLimit(limiter), sc.CreateShareHandler)
	r.POST(RouteShareUpload, middleware.UploadRateLimit(limiter), sc.UploadFileHandler)
	r.GET(RouteShare, sc.GetShareInfoHandler)
	r.GET(RouteShareDownload, sc.DownloadHandler)

	return sc
}

func (sc *ShareController) CreateShareHandler(c *gin.Context) {
	var req dtoShare.CreateShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if errs := validator.ValidateCreateShare(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	grant, err := sc.shareService.CreateShare(
		c.Request.Context(),
		req.FileName,
		req.MaxDownloads,
		req.ExpiresInHours,
	)
	if err != nil {
		c.JSON(
			http.StatusServiceUnavailable,
			gin.H{"error": "failed to create a share"},
		)
		sc.logger.Error("CreateShare() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusCreated, dtoShare.ToCreateShareResponse(*grant))
}

func (sc *ShareController) UploadFileHandler(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fh.Size == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty file not allowed"})
		return
	}
	if fh.Size > maxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large, maximum size is 5MB"})
		return
	}
	if !allowedContentType(fh.Header.Get("Content-Type")) {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "file type not allowed"})
		return
	}

	maxDownloads, ok := formInt(c, "max_downloads", defaultMaxDownloads)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "max_downloads must be an integer"})
		return
	}
	expiresInHours, ok := formInt(c, "expires_in_hours", defaultExpiresInHours)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expires_in_hours must be an integer"})
		return
	}
	if errs := validator.ValidateShareLimits(maxDownloads, expiresInHours); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	grant, err := sc.shareService.UploadDirect(c.Request.Context(), fh, maxDownloads, expiresInHours)
	if err != nil {
		c.JSON(
			http.StatusServiceUnavailable,
			gin.H{"error": "failed to upload file"},
		)
		sc.logger.Error("UploadDirect() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusCreated, dtoShare.DirectUploadResponse{
		FileID:          grant.Share.ID.String(),
		DownloadPageURL: grant.PageURL,
		Message:         "File uploaded successfully",
	})
}

func (sc *ShareController) GetShareInfoHandler(c *gin.Context) {
	ok, id := validator.IsUUID(c.Param("share_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "share_id must be a valid UUID"},
		)
		return
	}

	d, err := sc.shareService.Info(c.Request.Context(), id)
	if err != nil {
		c.JSON(
			http.StatusServiceUnavailable,
			gin.H{"error": "failed to get share info"},
		)
		sc.logger.Error("Info() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, dtoShare.ToDownloadResponse(*d))
}

func (sc *ShareController) DownloadHandler(c *gin.Context) {
	ok, id := validator.IsUUID(c.Param("share_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "share_id must be a valid UUID"},
		)
		return
	}

	d, err := sc.shareService.Download(c.Request.Context(), id)
	if err != nil {
		c.JSON(
			http.StatusServiceUnavailable,
			gin.H{"error": "failed to process download"},
		)
		sc.logger.Error("Download() error", zap.Error(err))
		return
	}

	// expired/maxed/not_found are link states, not HTTP errors
	c.JSON(http.StatusOK, dtoShare.ToDownloadResponse(*d))
}

func allowedContentType(ct string) bool {
	for _, p := range allowedContentTypePrefixes {
		if strings.HasPrefix(ct, p) {
			return true
		}
	}
	return false
}

func formInt(c *gin.Context, field string, def int) (int, bool) {
	v := c.PostForm(field)
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
