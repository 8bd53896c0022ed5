package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ppiankov/sstrack/internal/classify"
	"github.com/ppiankov/sstrack/internal/dates"
	"github.com/ppiankov/sstrack/internal/extract"
	"github.com/ppiankov/sstrack/internal/llm"
	"github.com/ppiankov/sstrack/internal/model"
	"github.com/ppiankov/sstrack/internal/norm"
	"github.com/ppiankov/sstrack/internal/pipeline"
	"github.com/ppiankov/sstrack/internal/rules"
	"github.com/ppiankov/sstrack/internal/status"
	"github.com/ppiankov/sstrack/internal/validate"
)

// Ingester assembles a record from an uploaded document
type Ingester interface {
	Assemble(ctx context.Context, kind string, in pipeline.Input) (*pipeline.Result, error)
}

// Reporter builds the compliance summary
type Reporter interface {
	Compliance(ctx context.Context, reload bool) (status.Summary, error)
}

// Handler serves the rule engine and ingestion endpoints
type Handler struct {
	ingester  Ingester
	reporter  Reporter
	logger    *slog.Logger
	soonDays  int
	maxUpload int64
	now       func() time.Time
}

// NewHandler creates a handler. soonDays is the expiring-soon window used
// when reporting a status.
func NewHandler(ingester Ingester, reporter Reporter, logger *slog.Logger, soonDays int) *Handler {
	return &Handler{
		ingester:  ingester,
		reporter:  reporter,
		logger:    logger,
		soonDays:  soonDays,
		maxUpload: 20 << 20,
		now:       time.Now,
	}
}

type parseDateRequest struct {
	Text string `json:"text" binding:"required"`
}

// ParseDate handles POST /dates/parse
func (h *Handler) ParseDate(c *gin.Context) {
	var req parseDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	d, ok := dates.Parse(req.Text)
	if !ok {
		Fail(c, http.StatusUnprocessableEntity, "no date found", nil)
		return
	}
	Success(c, gin.H{"date": dates.Format(d)})
}

type normalizeRequest struct {
	Norm string `json:"norma" binding:"required"`
}

// NormalizeNorm handles POST /norms/normalize
func (h *Handler) NormalizeNorm(c *gin.Context) {
	var req normalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	canonical, ok := norm.Normalize(req.Norm)
	if !ok {
		Fail(c, http.StatusUnprocessableEntity, "empty norm", nil)
		return
	}
	_, hasRule := rules.Lookup(canonical)
	Success(c, gin.H{"norma": canonical, "has_rule": hasRule || canonical == rules.TieredNorm})
}

type expirationRequest struct {
	Date   string `json:"data" binding:"required"`
	Norm   string `json:"norma" binding:"required"`
	Module string `json:"modulo"`
	Kind   string `json:"tipo_treinamento"`
	Hours  int    `json:"carga_horaria"`
}

type expirationResponse struct {
	Norm          norm.Canonical `json:"norma"`
	Tier          string         `json:"modulo,omitempty"`
	ValidityYears int            `json:"validade_anos"`
	Expiration    string         `json:"vencimento"`
	Status        status.Status  `json:"status"`
	Notices       []model.Notice `json:"notices,omitempty"`
}

// TrainingExpiration handles POST /trainings/expiration
func (h *Handler) TrainingExpiration(c *gin.Context) {
	var req expirationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	issued, ok := dates.Parse(req.Date)
	if !ok {
		Fail(c, http.StatusUnprocessableEntity, "unparseable completion date", nil)
		return
	}

	kind := model.ParseTrainingKind(req.Kind)
	module, inferred := rules.ResolveModule(req.Norm, req.Module, kind, req.Hours)
	exp, ok := rules.ComputeExpiration(issued, req.Norm, module, kind)
	exp.Notices = append(inferred, exp.Notices...)
	if !ok {
		Fail(c, http.StatusUnprocessableEntity, "no expiration rule for norm", gin.H{"norma": exp.Norm, "notices": exp.Notices})
		return
	}
	Success(c, expirationResponse{
		Norm:          exp.Norm,
		Tier:          exp.Tier,
		ValidityYears: exp.ValidityYears,
		Expiration:    dates.Format(exp.Date),
		Status:        status.Compute(&exp.Date, h.now(), h.soonDays),
		Notices:       exp.Notices,
	})
}

type hoursRequest struct {
	Norm   string `json:"norma" binding:"required"`
	Module string `json:"modulo"`
	Kind   string `json:"tipo_treinamento"`
	Hours  int    `json:"carga_horaria"`
}

// TrainingHours handles POST /trainings/hours
func (h *Handler) TrainingHours(c *gin.Context) {
	var req hoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	Success(c, validate.ValidateHours(req.Norm, req.Module, model.ParseTrainingKind(req.Kind), req.Hours))
}

type classifyRequest struct {
	Type   string `json:"tipo_documento"`
	Issued string `json:"data_emissao"`
}

// ClassifyCompanyDocument handles POST /company-documents/classify. The
// expiration is included when an issuance date is given.
func (h *Handler) ClassifyCompanyDocument(c *gin.Context) {
	var req classifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	doc := classify.CompanyDocument(req.Type)
	out := gin.H{"tipo_documento": doc.Kind, "validade_anos": doc.ValidityYears}
	if req.Issued != "" {
		issued, ok := dates.Parse(req.Issued)
		if !ok {
			Fail(c, http.StatusUnprocessableEntity, "unparseable issuance date", nil)
			return
		}
		out["vencimento"] = dates.Format(doc.Expiration(issued))
	}
	Success(c, out)
}

// Rules handles GET /rules
func (h *Handler) Rules(c *gin.Context) {
	docs := make([]classify.Document, 0, len(classify.Kinds()))
	for _, k := range classify.Kinds() {
		docs = append(docs, classify.Lookup(k))
	}
	Success(c, gin.H{
		"trainings":         rules.Catalog(),
		"company_documents": docs,
	})
}

// Ingest handles POST /ingest/:kind with a multipart owner_id and file
func (h *Handler) Ingest(c *gin.Context) {
	kind := c.Param("kind")

	fh, err := c.FormFile("file")
	if err != nil {
		Fail(c, http.StatusBadRequest, "file is required", nil)
		return
	}
	if fh.Size > h.maxUpload {
		Fail(c, http.StatusRequestEntityTooLarge, "file too large", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		Fail(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	defer func() { _ = f.Close() }()
	data, err := io.ReadAll(f)
	if err != nil {
		Fail(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	res, err := h.ingester.Assemble(c.Request.Context(), kind, pipeline.Input{
		OwnerID:  c.PostForm("owner_id"),
		Document: llm.NewDocument(fh.Filename, data),
	})
	if err != nil {
		_ = c.Error(err)
		Fail(c, statusOf(err), err.Error(), nil)
		return
	}
	Success(c, res)
}

// Compliance handles GET /compliance. ?reload=true rereads the store.
func (h *Handler) Compliance(c *gin.Context) {
	reload, _ := strconv.ParseBool(c.Query("reload"))
	sum, err := h.reporter.Compliance(c.Request.Context(), reload)
	if err != nil {
		_ = c.Error(err)
		Fail(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Success(c, sum)
}

// Health handles GET /healthz
func (h *Handler) Health(c *gin.Context) {
	Success(c, gin.H{"status": "ok"})
}

func statusOf(err error) int {
	var (
		missing *pipeline.MissingFieldsError
		noRule  *pipeline.NoRuleError
		hours   *pipeline.HoursError
		format  *extract.FormatError
	)
	switch {
	case errors.As(err, &missing):
		return http.StatusBadRequest
	case errors.Is(err, pipeline.ErrUnknownKind):
		return http.StatusNotFound
	case errors.Is(err, llm.ErrUnsupportedDocument):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &noRule), errors.As(err, &hours), errors.As(err, &format):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
