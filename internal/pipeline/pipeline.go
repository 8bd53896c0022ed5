// Package pipeline assembles persisted records from AI answers about
// uploaded documents.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/ppiankov/sstrack/internal/classify"
	"github.com/ppiankov/sstrack/internal/extract"
	"github.com/ppiankov/sstrack/internal/llm"
	"github.com/ppiankov/sstrack/internal/logging"
	"github.com/ppiankov/sstrack/internal/model"
	"github.com/ppiankov/sstrack/internal/rules"
	"github.com/ppiankov/sstrack/internal/status"
	"github.com/ppiankov/sstrack/internal/store"
	"github.com/ppiankov/sstrack/internal/validate"
)

// Record kinds accepted by Assemble
const (
	KindCompany  = "company"
	KindASO      = "aso"
	KindTraining = "training"
)

// Kinds lists the record kinds in display order
func Kinds() []string {
	return []string{KindCompany, KindASO, KindTraining}
}

// Attachments stores the uploaded source documents
type Attachments interface {
	Upload(ctx context.Context, name string, r io.Reader) (string, error)
	Delete(ctx context.Context, id string) error
}

// Options tunes how rule results affect saving
type Options struct {
	BlockOnHoursFailure bool
	SoonDays            int
}

// OptionsFromModel converts model.ValidationConfig to Options
func OptionsFromModel(c model.ValidationConfig) Options {
	return Options{BlockOnHoursFailure: c.BlockOnHoursFailure, SoonDays: c.ExpiringSoonDays}
}

// Pipeline orchestrates extraction, rule evaluation and persistence
type Pipeline struct {
	ai     llm.Provider
	store  store.Store
	files  Attachments
	view   *store.View
	logger *slog.Logger
	opts   Options
	now    func() time.Time
}

// New creates a pipeline. A nil logger discards log output.
func New(ai llm.Provider, s store.Store, files Attachments, logger *slog.Logger, opts Options) *Pipeline {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Pipeline{
		ai:     ai,
		store:  s,
		files:  files,
		logger: logger,
		opts:   opts,
		now:    time.Now,
	}
}

// WithView makes the pipeline reload v after every successful write
func (p *Pipeline) WithView(v *store.View) *Pipeline {
	p.view = v
	return p
}

// Input is one document to ingest for an owner: the company id for
// company documents, the employee id otherwise.
type Input struct {
	OwnerID  string
	Document llm.Document
}

// Result describes a persisted record
type Result struct {
	Kind         string         `json:"kind"`
	Table        string         `json:"table"`
	ID           string         `json:"id"`
	AttachmentID string         `json:"arquivo_id"`
	Values       []string       `json:"values"`
	Record       interface{}    `json:"record"`
	Notices      []model.Notice `json:"notices,omitempty"`
	Answer       string         `json:"-"`
}

// Assemble dispatches on the record kind
func (p *Pipeline) Assemble(ctx context.Context, kind string, in Input) (*Result, error) {
	switch strings.ToLower(kind) {
	case KindCompany:
		return p.AssembleCompanyDocument(ctx, in)
	case KindASO:
		return p.AssembleASO(ctx, in)
	case KindTraining:
		return p.AssembleTraining(ctx, in)
	}
	return nil, fmt.Errorf("%w: %s (supported: %s)", ErrUnknownKind, kind, strings.Join(Kinds(), ", "))
}

// AssembleCompanyDocument classifies a company document and stores it with
// its fixed-offset expiration.
func (p *Pipeline) AssembleCompanyDocument(ctx context.Context, in Input) (*Result, error) {
	if err := checkInput(KindCompany, in); err != nil {
		return nil, err
	}

	answer, err := p.ask(ctx, KindCompany, in.Document, extract.CompanyDocPrompt)
	if err != nil {
		return nil, err
	}
	ext, err := extract.ParseCompanyDoc(answer)
	if err != nil {
		return nil, p.formatFailure(ctx, KindCompany, err)
	}

	doc := classify.Lookup(ext.Kind)
	rec := model.CompanyDocRecord{
		CompanyID:  in.OwnerID,
		Kind:       doc.Kind,
		Issued:     ext.Issued,
		Expiration: doc.Expiration(ext.Issued),
	}

	res := &Result{Kind: KindCompany, Table: model.TableCompanyDocs, Answer: answer}
	err = p.persist(ctx, res, in.Document, func(attachmentID string) []string {
		rec.AttachmentID = attachmentID
		return rec.Row()
	})
	if err != nil {
		return nil, err
	}
	rec.ID = res.ID
	res.Record = rec
	return res, nil
}

// AssembleASO stores a medical fitness certificate. Without an explicit
// expiration, termination exams get none and every other kind one year.
func (p *Pipeline) AssembleASO(ctx context.Context, in Input) (*Result, error) {
	if err := checkInput(KindASO, in); err != nil {
		return nil, err
	}

	answer, err := p.ask(ctx, KindASO, in.Document, extract.ASOPrompt)
	if err != nil {
		return nil, err
	}
	ext, err := extract.ParseASO(answer)
	if err != nil {
		return nil, p.formatFailure(ctx, KindASO, err)
	}

	res := &Result{Kind: KindASO, Table: model.TableASOs, Answer: answer}

	expiration := ext.Expiration
	if expiration == nil {
		expiration = classify.ASOExpiration(ext.ExamDate, ext.Kind)
	}

	rec := model.ASORecord{
		EmployeeID: in.OwnerID,
		ExamDate:   ext.ExamDate,
		Expiration: expiration,
		Risks:      ext.Risks,
		JobTitle:   ext.JobTitle,
		Kind:       ext.Kind,
	}

	err = p.persist(ctx, res, in.Document, func(attachmentID string) []string {
		rec.AttachmentID = attachmentID
		return rec.Row()
	})
	if err != nil {
		return nil, err
	}
	rec.ID = res.ID
	res.Record = rec
	return res, nil
}

// AssembleTraining normalizes the norm, computes the expiration, checks
// the workload and stores the training record.
func (p *Pipeline) AssembleTraining(ctx context.Context, in Input) (*Result, error) {
	if err := checkInput(KindTraining, in); err != nil {
		return nil, err
	}

	answer, err := p.ask(ctx, KindTraining, in.Document, extract.TrainingPrompt)
	if err != nil {
		return nil, err
	}
	ext, err := extract.ParseTraining(answer)
	if err != nil {
		return nil, p.formatFailure(ctx, KindTraining, err)
	}

	res := &Result{Kind: KindTraining, Table: model.TableTrainings, Answer: answer}

	module, inferred := rules.ResolveModule(ext.Norm, ext.Module, ext.Kind, ext.Hours)
	ext.Module = module
	res.Notices = append(res.Notices, inferred...)

	exp, ok := rules.ComputeExpiration(ext.Completed, ext.Norm, ext.Module, ext.Kind)
	res.Notices = append(res.Notices, exp.Notices...)
	if !ok {
		p.logNotices(ctx, res.Notices)
		noRule := &NoRuleError{Norm: string(exp.Norm)}
		if noRule.Norm == "" {
			noRule.Norm = ext.Norm
		}
		return nil, noRule
	}

	hours := validate.ValidateHours(ext.Norm, ext.Module, ext.Kind, ext.Hours)
	if n, failed := hours.Notice(); failed {
		res.Notices = append(res.Notices, n)
		if p.opts.BlockOnHoursFailure {
			p.logNotices(ctx, res.Notices)
			return nil, &HoursError{Result: hours}
		}
	}

	rec := model.TrainingRecord{
		EmployeeID: in.OwnerID,
		Completed:  ext.Completed,
		Expiration: exp.Date,
		Norm:       string(exp.Norm),
		Module:     ext.ModuleOrDefault(),
		Status:     string(status.Compute(&exp.Date, p.now(), p.opts.SoonDays)),
		Kind:       ext.Kind,
		Hours:      ext.Hours,
	}

	err = p.persist(ctx, res, in.Document, func(attachmentID string) []string {
		rec.AttachmentID = attachmentID
		return rec.Row()
	})
	if err != nil {
		return nil, err
	}
	rec.ID = res.ID
	res.Record = rec
	return res, nil
}

// Compliance summarizes the cached view, reloading it first when asked
func (p *Pipeline) Compliance(ctx context.Context, reload bool) (status.Summary, error) {
	if p.view == nil {
		p.view = store.NewView(p.store)
		reload = true
	}
	if reload {
		if err := p.view.Reload(ctx); err != nil {
			return status.Summary{}, err
		}
	}
	return status.Summarize(p.view.Snapshot().Tables, p.now(), p.opts.SoonDays), nil
}

func checkInput(kind string, in Input) error {
	var missing []string
	if strings.TrimSpace(in.OwnerID) == "" {
		if kind == KindCompany {
			missing = append(missing, "empresa_id")
		} else {
			missing = append(missing, "funcionario_id")
		}
	}
	if len(in.Document.Data) == 0 {
		missing = append(missing, "arquivo")
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Record: kind, Fields: missing}
	}
	return nil
}

func (p *Pipeline) ask(ctx context.Context, kind string, doc llm.Document, prompt string) (string, error) {
	resp, err := p.ai.Ask(ctx, llm.AskRequest{Document: doc, Prompt: prompt})
	if err != nil {
		p.logger.ErrorContext(ctx, "AI request failed", "kind", kind, "document", doc.Name, "error", err)
		return "", fmt.Errorf("analyze %s document: %w", kind, err)
	}
	p.logger.DebugContext(ctx, "AI answer", "kind", kind, "document", doc.Name, "cached", resp.Cached, "tokens", resp.TokensUsed)
	return resp.Text, nil
}

func (p *Pipeline) formatFailure(ctx context.Context, kind string, err error) error {
	p.logger.ErrorContext(ctx, "unexpected AI answer", "kind", kind, "error", err)
	return err
}

// persist uploads the attachment, then writes the row built from its id.
// A failed write removes the attachment again.
func (p *Pipeline) persist(ctx context.Context, res *Result, doc llm.Document, row func(attachmentID string) []string) error {
	attachmentID, err := p.files.Upload(ctx, doc.Name, bytes.NewReader(doc.Data))
	if err != nil {
		return fmt.Errorf("upload attachment: %w", err)
	}
	if attachmentID == "" {
		_ = p.files.Delete(ctx, attachmentID)
		return &MissingFieldsError{Record: res.Kind, Fields: []string{"arquivo_id"}}
	}

	values := row(attachmentID)
	id, err := p.store.Append(ctx, res.Table, values)
	if err != nil {
		if delErr := p.files.Delete(ctx, attachmentID); delErr != nil {
			p.logger.ErrorContext(ctx, "attachment rollback failed", "arquivo_id", attachmentID, "error", delErr)
		}
		return fmt.Errorf("write %s row: %w", res.Table, err)
	}

	res.ID = id
	res.AttachmentID = attachmentID
	res.Values = values
	p.logNotices(ctx, res.Notices)
	p.logger.InfoContext(ctx, "record saved", "table", res.Table, "id", id, "arquivo_id", attachmentID)

	if p.view != nil {
		if err := p.view.Reload(ctx); err != nil {
			p.logger.WarnContext(ctx, "cached view reload failed", "error", err)
		}
	}
	return nil
}

func (p *Pipeline) logNotices(ctx context.Context, notices []model.Notice) {
	for _, n := range notices {
		attrs := []any{"code", n.Code}
		for k, v := range n.Data {
			attrs = append(attrs, k, v)
		}
		p.logger.Log(ctx, levelOf(n.Severity), n.Message, attrs...)
	}
}

func levelOf(s model.Severity) slog.Level {
	switch s {
	case model.SeverityError:
		return slog.LevelError
	case model.SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
