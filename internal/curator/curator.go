// Package curator runs one ledger update: parse the submission, reconcile
// vocabularies, append the entry, and refresh the derived artifacts.
package curator

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/K0NGR3SS/slrledger/internal/config"
	"github.com/K0NGR3SS/slrledger/internal/formgen"
	"github.com/K0NGR3SS/slrledger/internal/issueform"
	"github.com/K0NGR3SS/slrledger/internal/ledger"
	"github.com/K0NGR3SS/slrledger/internal/models"
	"github.com/K0NGR3SS/slrledger/internal/notifications"
	"github.com/K0NGR3SS/slrledger/internal/storage"
	"github.com/K0NGR3SS/slrledger/internal/vocabulary"
	"github.com/google/uuid"
	"github.com/pterm/pterm"
)

// ErrEmptySubmission is returned for a body with no sections at all.
var ErrEmptySubmission = errors.New("submission has no sections")

// Notifier announces a completed append.
type Notifier interface {
	SendEntry(ctx context.Context, a notifications.Announcement) error
}

type Options struct {
	Backend  storage.Backend
	Config   *config.Config
	Logger   *pterm.Logger
	Notifier Notifier
	RunID    string
}

type Curator struct {
	backend  storage.Backend
	cfg      *config.Config
	store    *vocabulary.JSONStore
	log      *pterm.Logger
	notifier Notifier
	runID    string
}

func New(opts Options) *Curator {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = &pterm.DefaultLogger
	}
	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	return &Curator{
		backend:  opts.Backend,
		cfg:      cfg,
		store:    vocabulary.NewJSONStore(opts.Backend, cfg.Paths.VocabularyDir),
		log:      logger,
		notifier: opts.Notifier,
		runID:    runID,
	}
}

func (c *Curator) RunID() string {
	return c.runID
}

// Result describes what Add did.
type Result struct {
	RunID string
	Entry models.Entry
	// Rows is the ledger size after the append.
	Rows int
	// Added lists the values each vocabulary gained, keyed by name.
	Added map[string][]string
	// Changed lists modified vocabularies in the order they changed.
	Changed         []string
	FormRegenerated bool
	// Degraded lists columns that kept a raw "Other" selection.
	Degraded []string
}

// Add processes one submission body.
//
// Vocabulary updates are saved as soon as they are made, before the ledger
// is touched. The README and the issue form are refreshed after the ledger
// is saved; their errors are returned but never undo the append.
func (c *Curator) Add(ctx context.Context, body string) (*Result, error) {
	log := c.log
	args := func(kv ...any) []pterm.LoggerArgument {
		return log.Args(append([]any{"run", c.runID}, kv...)...)
	}

	sub, err := issueform.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse submission: %w", err)
	}
	if len(sub.Sections) == 0 {
		return nil, ErrEmptySubmission
	}
	log.Debug("submission parsed", args("sections", len(sub.Sections)))
	if !sub.Has(models.LabelStudyID) {
		log.Warn("submission has no study id", args())
	}

	reg, err := vocabulary.Open(ctx, c.store, VocabularySpecs)
	if err != nil {
		return nil, fmt.Errorf("failed to load vocabularies: %w", err)
	}
	before := snapshot(reg)

	table, err := ledger.Load(ctx, c.backend, c.cfg.Paths.Ledger, models.Columns)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	floor := maxLedgerCode(table)
	log.Debug("ledger loaded", args("rows", table.Len(), "highest_code", floor))

	res := &Result{RunID: c.runID}

	picks, err := c.reconcile(ctx, reg, sub, floor, res)
	if err != nil {
		return nil, err
	}

	res.Entry = Assemble(sub, picks)
	if err := res.Entry.Validate(); err != nil {
		return nil, err
	}

	res.Changed = reg.ChangedNames()
	res.Added = added(before, reg)
	for _, name := range res.Changed {
		log.Info("vocabulary extended", args("vocabulary", name, "added", strings.Join(res.Added[name], "; ")))
	}

	if err := table.Append(models.Columns, res.Entry.Values(), c.cfg.AbsentMarker); err != nil {
		return nil, fmt.Errorf("failed to append entry: %w", err)
	}
	if err := table.Save(ctx, c.backend, c.cfg.Paths.Ledger); err != nil {
		return nil, err
	}
	res.Rows = table.Len()
	log.Info("entry appended", args("study", res.Entry.Study, "rows", res.Rows))

	var errs []error
	if err := c.renderReadme(ctx, table); err != nil {
		log.Error("readme not updated", args("error", err))
		errs = append(errs, err)
	}

	if reg.Changed() {
		if err := c.writeForm(ctx, reg); err != nil {
			log.Error("issue form not regenerated", args("error", err))
			errs = append(errs, err)
		} else {
			res.FormRegenerated = true
			log.Info("issue form regenerated", args("path", c.cfg.Paths.Form))
		}
	}

	if c.notifier != nil {
		err := c.notifier.SendEntry(ctx, notifications.Announcement{
			RunID:         c.runID,
			Entry:         res.Entry,
			Rows:          res.Rows,
			NewVocabulary: res.Added,
		})
		if err != nil {
			log.Warn("notification failed", args("error", err))
		}
	}

	return res, errors.Join(errs...)
}

func (c *Curator) reconcile(ctx context.Context, reg *vocabulary.Registry, sub *issueform.Submission, floor int, res *Result) (Picks, error) {
	var picks Picks
	var err error

	picks.Domain, err = reg.Choice(ctx, VocabDomains,
		sub.Value(models.LabelDomain), sub.Value(models.LabelDomainOther))
	if err != nil {
		return Picks{}, fmt.Errorf("failed to reconcile %s: %w", models.ColDomain, err)
	}

	attacks, err := selections(reg, sub, models.LabelAttackScenarios, VocabAttackScenarios)
	if err != nil {
		return Picks{}, err
	}
	picks.AttackScenarios, err = reg.Choice(ctx, VocabAttackScenarios,
		strings.Join(attacks, vocabulary.Separator), sub.Value(models.LabelAttackOther))
	if err != nil {
		return Picks{}, fmt.Errorf("failed to reconcile %s: %w", models.ColAttackScenarios, err)
	}

	selected, err := selections(reg, sub, models.LabelFaultInjection, VocabFaultInjection)
	if err != nil {
		return Picks{}, err
	}
	faults, err := reg.Faults(ctx, VocabFaultInjection, selected, sub.Value(models.LabelFaultOther), floor)
	if err != nil {
		return Picks{}, fmt.Errorf("failed to reconcile %s: %w", models.ColFaultInjection, err)
	}
	picks.FaultInjection = faults.Value
	for _, m := range faults.Minted {
		c.log.Info("fault code assigned", c.log.Args("run", c.runID, "code", m.Code(), "description", m.Description))
	}
	for _, term := range faults.Ignored {
		c.log.Warn("unknown fault code ignored", c.log.Args("run", c.runID, "term", term))
	}

	for col, v := range map[string]string{
		models.ColDomain:          picks.Domain,
		models.ColAttackScenarios: picks.AttackScenarios,
		models.ColFaultInjection:  picks.FaultInjection,
	} {
		if strings.Contains(v, vocabulary.OtherOption) {
			res.Degraded = append(res.Degraded, col)
		}
	}
	slices.Sort(res.Degraded)
	for _, col := range res.Degraded {
		c.log.Warn("'Other' selected without a value, keeping raw selection", c.log.Args("run", c.runID, "column", col))
	}

	return picks, nil
}

// selections splits a multi-select answer. GitHub joins the chosen options
// on one line, so the line is split against the vocabulary to keep options
// that contain commas whole. Bullet lists are already one option per item.
func selections(reg *vocabulary.Registry, sub *issueform.Submission, label, vocab string) ([]string, error) {
	if sec := sub.Section(label); sec == nil || sec.IsList {
		return sub.Values(label), nil
	}
	return reg.Split(vocab, sub.Value(label))
}

// Render rewrites the README table from the current ledger.
func (c *Curator) Render(ctx context.Context) error {
	table, err := ledger.Load(ctx, c.backend, c.cfg.Paths.Ledger, models.Columns)
	if err != nil {
		return fmt.Errorf("failed to load ledger: %w", err)
	}
	return c.renderReadme(ctx, table)
}

func (c *Curator) renderReadme(ctx context.Context, table *ledger.Table) error {
	doc, err := c.backend.Read(ctx, c.cfg.Paths.Readme)
	if err != nil {
		return fmt.Errorf("failed to read readme: %w", err)
	}
	out, err := ledger.ReplaceBetweenMarkers(string(doc), c.cfg.Markers.Start, c.cfg.Markers.End, ledger.RenderMarkdown(table))
	if err != nil {
		return fmt.Errorf("%s: %w", c.cfg.Paths.Readme, err)
	}
	if out == string(doc) {
		return nil
	}
	if err := c.backend.Write(ctx, c.cfg.Paths.Readme, []byte(out)); err != nil {
		return fmt.Errorf("failed to write readme: %w", err)
	}
	return nil
}

// GenerateForm renders the issue form from the stored vocabularies.
func (c *Curator) GenerateForm(ctx context.Context) ([]byte, error) {
	reg, err := vocabulary.Open(ctx, c.store, VocabularySpecs)
	if err != nil {
		return nil, fmt.Errorf("failed to load vocabularies: %w", err)
	}
	return c.generate(reg)
}

// WriteForm regenerates the issue form and reports whether its content
// changed.
func (c *Curator) WriteForm(ctx context.Context) (bool, error) {
	out, err := c.GenerateForm(ctx)
	if err != nil {
		return false, err
	}
	current, err := c.backend.Read(ctx, c.cfg.Paths.Form)
	if err != nil && !errors.Is(err, storage.ErrNotExist) {
		return false, err
	}
	if string(current) == string(out) {
		return false, nil
	}
	if err := c.backend.Write(ctx, c.cfg.Paths.Form, out); err != nil {
		return false, fmt.Errorf("failed to write issue form: %w", err)
	}
	return true, nil
}

// CheckForm compares the committed issue form with a fresh rendering and
// returns the diff, empty when they match.
func (c *Curator) CheckForm(ctx context.Context) (string, error) {
	out, err := c.GenerateForm(ctx)
	if err != nil {
		return "", err
	}
	current, err := c.backend.Read(ctx, c.cfg.Paths.Form)
	if err != nil && !errors.Is(err, storage.ErrNotExist) {
		return "", err
	}
	return formgen.Diff(current, out), nil
}

func (c *Curator) writeForm(ctx context.Context, reg *vocabulary.Registry) error {
	out, err := c.generate(reg)
	if err != nil {
		return err
	}
	if err := c.backend.Write(ctx, c.cfg.Paths.Form, out); err != nil {
		return fmt.Errorf("failed to write issue form: %w", err)
	}
	return nil
}

func (c *Curator) generate(reg *vocabulary.Registry) ([]byte, error) {
	vocabs := make(map[string][]string, len(VocabularySpecs))
	for _, name := range reg.Names() {
		vocabs[name] = reg.Values(name)
	}
	return formgen.Generate(Schema(c.cfg.Form), vocabs)
}

func maxLedgerCode(table *ledger.Table) int {
	highest := 0
	for _, cell := range table.Column(models.ColFaultInjection) {
		for _, n := range vocabulary.CodesIn(cell) {
			highest = max(highest, n)
		}
	}
	return highest
}

func snapshot(reg *vocabulary.Registry) map[string][]string {
	out := make(map[string][]string)
	for _, name := range reg.Names() {
		out[name] = reg.Values(name)
	}
	return out
}

func added(before map[string][]string, reg *vocabulary.Registry) map[string][]string {
	out := make(map[string][]string)
	for _, name := range reg.ChangedNames() {
		for _, v := range reg.Values(name) {
			if !slices.Contains(before[name], v) {
				out[name] = append(out[name], v)
			}
		}
	}
	return out
}
