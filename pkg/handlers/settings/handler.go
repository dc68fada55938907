package settings

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/de-tools/dashboard/pkg/adapters"
	"github.com/de-tools/dashboard/pkg/handlers/respond"
	"github.com/de-tools/dashboard/pkg/services/logo"
	"github.com/de-tools/dashboard/pkg/store/assets"
)

const (
	LogoField = "logo"

	MessageUploadRejected = "No file uploaded or file type not supported"
	MessageAssetNotFound  = "File not found"

	DefaultMaxUploadBytes int64 = 2 << 20
)

// allowedTypes maps an accepted file extension to the MIME type its content
// has to sniff as.
var allowedTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".webp": "image/webp",
	".ico":  "image/x-icon",
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

type Handler struct {
	logo           logo.Service
	assets         assets.Store
	maxUploadBytes int64
	now            func() time.Time
}

func NewHandler(logo logo.Service, assets assets.Store, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &Handler{
		logo:           logo,
		assets:         assets,
		maxUploadBytes: maxUploadBytes,
		now:            time.Now,
	}
}

func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	record, err := h.logo.Config(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.Success(w, r, http.StatusOK, adapters.MapDomainConfigToAPI(record))
}

func (h *Handler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	data, filename, err := h.readUpload(w, r)
	if err != nil {
		logger.Debug().Err(err).Msg("rejected logo upload")
		respond.Fail(w, r, http.StatusBadRequest, MessageUploadRejected)
		return
	}

	name := AssetName(h.now(), filename)
	if err := h.assets.Put(ctx, name, bytes.NewReader(data)); err != nil {
		respond.Error(w, r, fmt.Errorf("failed to store logo: %w", err))
		return
	}

	record, err := h.logo.Upload(ctx, name)
	if err != nil {
		_ = assets.BestEffortDelete(ctx, h.assets, name)
		respond.Error(w, r, err)
		return
	}

	logger.Info().Str("asset", name).Int("bytes", len(data)).Msg("logo uploaded")
	respond.Success(w, r, http.StatusOK, adapters.MapDomainConfigToAPI(record))
}

func (h *Handler) DeleteLogo(w http.ResponseWriter, r *http.Request) {
	record, err := h.logo.Delete(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.Success(w, r, http.StatusOK, adapters.MapDomainConfigToAPI(record))
}

// ServeAsset streams a stored upload back to the browser.
func (h *Handler) ServeAsset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "filename")
	if err := assets.ValidateName(name); err != nil {
		respond.Fail(w, r, http.StatusNotFound, MessageAssetNotFound)
		return
	}

	rc, err := h.assets.Open(r.Context(), name)
	if errors.Is(err, assets.ErrNotFound) {
		respond.Fail(w, r, http.StatusNotFound, MessageAssetNotFound)
		return
	}
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	contentType := mimetype.Detect(data).String()
	if expected, ok := allowedTypes[strings.ToLower(filepath.Ext(name))]; ok {
		contentType = expected
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		return nil, "", err
	}

	file, header, err := r.FormFile(LogoField)
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}
	if len(data) == 0 {
		return nil, "", errors.New("empty file")
	}
	if err := CheckType(header.Filename, data); err != nil {
		return nil, "", err
	}
	return data, header.Filename, nil
}

// CheckType accepts an image whose extension and sniffed content agree.
func CheckType(filename string, data []byte) error {
	ext := strings.ToLower(filepath.Ext(filename))
	expected, ok := allowedTypes[ext]
	if !ok {
		return fmt.Errorf("extension %q not allowed", ext)
	}

	detected := mimetype.Detect(data)
	if !detected.Is(expected) {
		return fmt.Errorf("content %s does not match extension %q", detected.String(), ext)
	}
	return nil
}

// AssetName builds the stored name: upload time in unix milliseconds, two
// dashes, then the client file name reduced to a safe character set.
func AssetName(now time.Time, filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	base = unsafeChars.ReplaceAllString(base, "_")
	base = strings.TrimLeft(base, ".")
	if base == "" {
		base = "logo"
	}
	return strconv.FormatInt(now.UnixMilli(), 10) + "--" + base
}
