package webui

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/anacrolix/log"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/anacrolix/torrent-identify/bencode"
	"github.com/anacrolix/torrent-identify/metainfo"
	"github.com/anacrolix/torrent-identify/types/infohash"
	"github.com/anacrolix/torrent-identify/version"
)

const DefaultMaxUploadSize = 10 << 20

type Config struct {
	// Largest metainfo accepted, in bytes. Defaults to DefaultMaxUploadSize.
	MaxUploadSize int64
	// Uploads per second across all clients. Zero or less is unlimited.
	RateLimit rate.Limit
	Burst     int
	// Where the metrics are registered and served from. A fresh registry is used if nil.
	Registry *prometheus.Registry
}

// What the service reports for an identified upload.
type Result struct {
	Name      string        `json:"name"`
	InfoHash  metainfo.Hash `json:"infohash"`
	Multihash string        `json:"multihash"`
	Magnet    string        `json:"magnet"`
	Size      int64         `json:"size"`
	HumanSize string        `json:"human_size"`
	Time      time.Time     `json:"time"`
}

// Magnet links aren't a scheme html/template trusts in attributes.
func (r Result) MagnetURL() template.URL {
	return template.URL(r.Magnet)
}

type Handler struct {
	cfg     Config
	history *History
	limiter *rate.Limiter
	metrics *metrics
	mux     *http.ServeMux
}

var (
	logger = log.Default.WithNames("webui")
	tracer = otel.Tracer("torrent-identify.webui")

	//go:embed templates/*.html
	templateFS embed.FS
	templates  = template.Must(template.ParseFS(templateFS, "templates/*.html"))
)

var (
	errUploadTooLarge = errors.New("upload too large")
	errMissingFile    = errors.New(`missing "file" field`)
)

func NewHandler(cfg Config, history *History) *Handler {
	if cfg.MaxUploadSize <= 0 {
		cfg.MaxUploadSize = DefaultMaxUploadSize
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = rate.Inf
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
	}
	if history == nil {
		history = NewHistory(DefaultHistorySize)
	}
	h := &Handler{
		cfg:     cfg,
		history: history,
		limiter: rate.NewLimiter(cfg.RateLimit, cfg.Burst),
		metrics: newMetrics(cfg.Registry),
		mux:     http.NewServeMux(),
	}
	h.mux.HandleFunc("GET /{$}", h.serveIndex)
	h.mux.HandleFunc("POST /file", h.serveFile)
	h.mux.HandleFunc("POST /api/identify", h.serveAPI)
	h.mux.HandleFunc("GET /history", h.serveHistory)
	h.mux.Handle("GET /metrics", promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{}))
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Server", version.DefaultServerHeader)
	h.mux.ServeHTTP(w, r)
}

type page struct {
	Result  *Result
	Error   string
	History []Result
}

func (h *Handler) render(w http.ResponseWriter, status int, name string, p page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	err := templates.ExecuteTemplate(w, name, p)
	if err != nil {
		logger.Levelf(log.Warning, "error rendering %v: %v", name, err)
	}
}

func (h *Handler) serveIndex(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "index.html", page{History: h.history.Recent()})
}

func (h *Handler) serveFile(w http.ResponseWriter, r *http.Request) {
	res, status, err := h.upload(r, true)
	if err != nil {
		h.render(w, status, "result.html", page{Error: err.Error()})
		return
	}
	h.render(w, http.StatusOK, "result.html", page{Result: &res})
}

func (h *Handler) serveAPI(w http.ResponseWriter, r *http.Request) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	res, status, err := h.upload(r, ct == "multipart/form-data")
	if err != nil {
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) serveHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.history.Recent())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		logger.Levelf(log.Debug, "error writing response: %v", err)
	}
}

// Reads, identifies and records an upload. On failure the status to respond with is returned along
// with the error, and the outcome has been counted.
func (h *Handler) upload(r *http.Request, multipart bool) (res Result, status int, err error) {
	outcome := outcomeOk
	defer func() {
		h.metrics.requests.WithLabelValues(outcome).Inc()
	}()
	if !h.limiter.Allow() {
		outcome = outcomeRateLimited
		return res, http.StatusTooManyRequests, errors.New("too many uploads, try again later")
	}
	var data []byte
	if multipart {
		data, err = h.readFormFile(r)
	} else {
		data, err = h.readLimited(r.Body)
	}
	if err != nil {
		status = errorStatus(err)
		if status == http.StatusRequestEntityTooLarge {
			outcome = outcomeTooLarge
		} else {
			outcome = outcomeBadRequest
		}
		logger.Levelf(log.Debug, "error reading upload from %v: %v", r.RemoteAddr, err)
		return
	}
	h.metrics.uploadBytes.Observe(float64(len(data)))
	id, err := identify(r.Context(), data)
	if err != nil {
		status = errorStatus(err)
		if status == http.StatusBadRequest {
			outcome = outcomeSyntaxError
		} else {
			outcome = outcomeMetainfoError
		}
		logger.Levelf(log.Debug, "rejected upload from %v: %v", r.RemoteAddr, err)
		return
	}
	mh, err := infohash.ToMultihash(id.InfoHash)
	if err != nil {
		outcome = outcomeInternalError
		status = http.StatusInternalServerError
		logger.Levelf(log.Error, "error framing %v as multihash: %v", id.InfoHash, err)
		return
	}
	res = Result{
		Name:      id.Name,
		InfoHash:  id.InfoHash,
		Multihash: mh.HexString(),
		Magnet:    id.Magnet().String(),
		Size:      int64(len(data)),
		HumanSize: humanize.Bytes(uint64(len(data))),
		Time:      time.Now(),
	}
	h.history.Add(res)
	logger.Levelf(log.Info, "identified %q as %v (%v)", res.Name, res.InfoHash, res.HumanSize)
	return
}

func identify(ctx context.Context, data []byte) (id metainfo.Identity, err error) {
	_, span := tracer.Start(
		ctx,
		"identify",
		trace.WithAttributes(attribute.Int("upload.size", len(data))),
	)
	defer span.End()
	id, err = metainfo.Identify(data)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetAttributes(
		attribute.String("identity.infohash", id.InfoHash.HexString()),
		attribute.String("identity.name", id.Name),
	)
	return
}

func (h *Handler) readLimited(r io.Reader) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, h.cfg.MaxUploadSize+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading upload")
	}
	if int64(len(b)) > h.cfg.MaxUploadSize {
		return nil, errors.Wrapf(errUploadTooLarge, "limit is %v", humanize.Bytes(uint64(h.cfg.MaxUploadSize)))
	}
	return b, nil
}

// Streams the multipart body up to the "file" part, so only that part is held in memory.
func (h *Handler) readFormFile(r *http.Request) ([]byte, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, errors.Wrap(err, "reading multipart form")
	}
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			return nil, errMissingFile
		}
		if err != nil {
			return nil, errors.Wrap(err, "reading multipart form")
		}
		if p.FormName() != "file" {
			continue
		}
		return h.readLimited(p)
	}
}

func errorStatus(err error) int {
	var se *bencode.SyntaxError
	var me *metainfo.Error
	switch {
	case errors.Is(err, errUploadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &se):
		return http.StatusBadRequest
	case errors.As(err, &me):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}
