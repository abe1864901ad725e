package variants

import (
	"context"
	"errors"
	"fmt"
	"time"

	"variant-manager/core/apperr"
	"variant-manager/core/database"
	"variant-manager/core/events"
	"variant-manager/core/logger"
	"variant-manager/feature/catalog/confighash"
	"variant-manager/feature/catalog/models"
	"variant-manager/feature/catalog/sku"
	"variant-manager/feature/catalog/store"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MaxCombinations caps the variants a single request may expand into.
const MaxCombinations = 500

// WarningNoDefaultWarehouse is reported when variants were created without
// inventory rows.
const WarningNoDefaultWarehouse = "no default warehouse configured"

const (
	opGenerate        = "variant generation"
	maxSuffixAttempts = 64
)

// GeneratedVariant identifies a created variant.
type GeneratedVariant struct {
	SKU string `json:"sku"`
	ID  string `json:"id"`
}

// Result is the outcome of a generation request.
type Result struct {
	Success              bool               `json:"success"`
	TotalGenerated       int                `json:"totalGenerated"`
	Skipped              int                `json:"skipped"`
	Variants             []GeneratedVariant `json:"variants"`
	InventoryProvisioned int                `json:"inventoryProvisioned"`
	Warnings             []string           `json:"warnings,omitempty"`
}

// PreviewItem is one combination a request would create.
type PreviewItem struct {
	SKU   string   `json:"sku"`
	Sizes []string `json:"sizes"`
	Color string   `json:"color"`
}

// Preview lists the combinations of a request without writing anything.
type Preview struct {
	TotalCombinations int           `json:"totalCombinations"`
	Previews          []PreviewItem `json:"previews"`
}

// candidate is one combination under construction.
type candidate struct {
	sizes   []models.Size
	color   models.Color
	hash    string
	baseSKU string
	sku     string
}

func (c *candidate) sizeValues() []string {
	values := make([]string, len(c.sizes))
	for i, s := range c.sizes {
		values[i] = s.Value
	}
	return values
}

// Service generates variant combinations.
type Service struct {
	db       *gorm.DB
	logger   *zap.Logger
	events   events.Sink
	retry    database.RetryPolicy
	validate *validator.Validate
	suffix   func() string
}

// Option configures a Service.
type Option func(*Service)

// WithEvents sets the sink for generation events.
func WithEvents(sink events.Sink) Option {
	return func(s *Service) { s.events = sink }
}

// WithRetryPolicy overrides the transaction retry policy.
func WithRetryPolicy(p database.RetryPolicy) Option {
	return func(s *Service) { s.retry = p }
}

// WithSuffixFunc overrides the SKU collision suffix source.
func WithSuffixFunc(fn func() string) Option {
	return func(s *Service) { s.suffix = fn }
}

// NewService creates a new variant generation service.
func NewService(db *gorm.DB, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		db:       db,
		logger:   logger,
		events:   events.Nop(),
		retry:    database.DefaultRetryPolicy(),
		validate: newValidator(),
		suffix:   func() string { return sku.RandomSuffix(sku.SuffixLength) },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.retry.OnRetry == nil {
		s.retry.OnRetry = func(attempt int, err error, delay time.Duration) {
			s.logger.Warn("Variant generation conflicted, retrying",
				zap.Int("attempt", attempt), zap.Duration("delay", delay), zap.Error(err))
		}
	}
	return s
}

// GenerateVariantCombinations expands p into variants and persists the ones
// that do not exist yet, together with zero-stock inventory at the default
// warehouse. The whole batch commits or nothing does; write conflicts rerun
// the transaction, so a lost race ends as a no-op success.
func (s *Service) GenerateVariantCombinations(ctx context.Context, p Params) (*Result, error) {
	if err := validateParams(s.validate, p); err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx, s.logger)

	var (
		result  *Result
		pending []events.Event
	)
	err := database.WithRetryableTransaction(ctx, s.db, s.retry, func(tx *gorm.DB) error {
		r, evs, err := s.generate(ctx, store.New(tx), p)
		if err != nil {
			return err
		}
		result, pending = r, evs
		return nil
	})

	var exhausted *database.ExhaustedError
	if errors.As(err, &exhausted) {
		log.Error("Variant generation gave up", zap.Int("attempts", exhausted.Attempts), zap.Error(exhausted.Err))
		return nil, &apperr.ConcurrencyError{Op: opGenerate, Attempts: exhausted.Attempts, Err: exhausted.Err}
	}
	if err != nil {
		return nil, err
	}

	for _, e := range pending {
		s.events.Emit(ctx, e)
	}
	log.Info("Variants generated",
		zap.String("product_group", p.ProductGroup),
		zap.Int("generated", result.TotalGenerated),
		zap.Int("skipped", result.Skipped))
	return result, nil
}

// generate is one transaction attempt. Events are returned, not emitted, so
// that nothing is announced for an attempt that rolls back.
func (s *Service) generate(ctx context.Context, st *store.Store, p Params) (*Result, []events.Event, error) {
	cands, err := s.expand(ctx, st, p)
	if err != nil {
		return nil, nil, err
	}

	fresh, err := filterExisting(ctx, st, cands)
	if err != nil {
		return nil, nil, err
	}

	result := &Result{
		Success:  true,
		Skipped:  len(cands) - len(fresh),
		Variants: []GeneratedVariant{},
	}
	if len(fresh) == 0 {
		return result, nil, nil
	}

	bases := make([]string, len(fresh))
	for i, c := range fresh {
		bases[i] = c.baseSKU
	}
	taken, err := st.ExistingSKUs(ctx, bases)
	if err != nil {
		return nil, nil, err
	}
	suffixed, err := st.SuffixedSKUs(ctx, bases)
	if err != nil {
		return nil, nil, err
	}
	taken = taken.Union(suffixed)
	if err := assignSKUs(fresh, taken, s.suffix); err != nil {
		return nil, nil, err
	}

	rows := make([]models.Variant, len(fresh))
	for i, c := range fresh {
		rows[i] = s.buildVariant(p, c)
	}
	if err := st.InsertVariants(ctx, rows); err != nil {
		return nil, nil, err
	}

	result.TotalGenerated = len(rows)
	for _, v := range rows {
		result.Variants = append(result.Variants, GeneratedVariant{SKU: v.SKU, ID: v.ID})
	}

	var evs []events.Event
	wh, err := st.DefaultWarehouse(ctx)
	if err != nil {
		return nil, nil, err
	}
	if wh == nil {
		result.Warnings = append(result.Warnings, WarningNoDefaultWarehouse)
		evs = append(evs, events.New(events.InventorySkipped, map[string]any{
			"product_group": p.ProductGroup,
			"variants":      len(rows),
			"reason":        WarningNoDefaultWarehouse,
		}))
	} else {
		inventory := make([]models.InventoryRecord, len(rows))
		for i, v := range rows {
			inventory[i] = models.InventoryRecord{VariantID: v.ID, WarehouseID: wh.ID}
		}
		if err := st.InsertInventory(ctx, inventory); err != nil {
			return nil, nil, err
		}
		result.InventoryProvisioned = len(inventory)
	}

	evs = append(evs, events.New(events.VariantsGenerated, map[string]any{
		"product_group": p.ProductGroup,
		"generated":     result.TotalGenerated,
		"skipped":       result.Skipped,
	}))
	return result, evs, nil
}

// PreviewCombinations lists what p would expand into. It writes nothing and
// does not filter combinations that already exist.
func (s *Service) PreviewCombinations(ctx context.Context, p Params) (*Preview, error) {
	if err := validateParams(s.validate, p); err != nil {
		return nil, err
	}

	cands, err := s.expand(ctx, store.New(s.db), p)
	if err != nil {
		return nil, err
	}

	preview := &Preview{TotalCombinations: len(cands), Previews: make([]PreviewItem, len(cands))}
	for i, c := range cands {
		preview.Previews[i] = PreviewItem{SKU: c.baseSKU, Sizes: c.sizeValues(), Color: c.color.Name}
	}
	return preview, nil
}

// expand loads master data, enforces the cap and computes the identity of
// every combination.
func (s *Service) expand(ctx context.Context, st *store.Store, p Params) ([]*candidate, error) {
	var axes [][]models.Size
	lengths := []int{}
	for _, ax := range p.sizeAxes() {
		if len(ax.ids) == 0 {
			continue
		}
		sizes, err := st.FindSizes(ctx, ax.axis, ax.ids)
		if err != nil {
			return nil, err
		}
		if len(sizes) == 0 {
			return nil, apperr.NewValidation(ax.field, "no active %s sizes found for the given ids", ax.axis)
		}
		axes = append(axes, sizes)
		lengths = append(lengths, len(sizes))
	}

	colors, err := st.FindColors(ctx, p.ColorIDs)
	if err != nil {
		return nil, err
	}
	if len(colors) == 0 {
		return nil, apperr.NewValidation("colorIds", "no active colors found for the given ids")
	}
	lengths = append(lengths, len(colors))

	if count := CombinationCount(lengths...); count > MaxCombinations {
		return nil, apperr.CapExceeded("combinations", count, MaxCombinations)
	}

	var cands []*candidate
	for _, sizes := range Cartesian(axes...) {
		for _, color := range colors {
			c := &candidate{sizes: sizes, color: color}
			attrs := make([]string, 0, len(sizes)+1)
			for _, sz := range sizes {
				attrs = append(attrs, sz.ID)
			}
			attrs = append(attrs, color.ID)

			c.hash, err = confighash.GenerateConfigHash(p.ProductGroup, attrs)
			if err != nil {
				return nil, err
			}
			c.baseSKU = sku.GenerateBase(p.Brand, p.ProductGroup, c.sizeValues(), color.Name)
			cands = append(cands, c)
		}
	}
	return cands, nil
}

// filterExisting drops candidates whose hash is stored or repeated earlier in
// the batch.
func filterExisting(ctx context.Context, st *store.Store, cands []*candidate) ([]*candidate, error) {
	hashes := make([]string, len(cands))
	for i, c := range cands {
		hashes[i] = c.hash
	}
	seen, err := st.ExistingHashes(ctx, hashes)
	if err != nil {
		return nil, err
	}

	fresh := make([]*candidate, 0, len(cands))
	for _, c := range cands {
		if !seen.Add(c.hash) {
			continue
		}
		fresh = append(fresh, c)
	}
	return fresh, nil
}

// assignSKUs gives every candidate its base SKU, suffixed while it clashes
// with a stored SKU or one assigned earlier in the batch.
func assignSKUs(cands []*candidate, taken mapset.Set[string], suffix func() string) error {
	for _, c := range cands {
		code := c.baseSKU
		for attempt := 0; taken.Contains(code); attempt++ {
			if attempt == maxSuffixAttempts {
				return fmt.Errorf("no free SKU found for base %s", c.baseSKU)
			}
			code = sku.WithSuffix(c.baseSKU, suffix())
		}
		taken.Add(code)
		c.sku = code
	}
	return nil
}

func (s *Service) buildVariant(p Params, c *candidate) models.Variant {
	sizes := make([]models.VariantSize, len(c.sizes))
	for i, sz := range c.sizes {
		sizes[i] = models.VariantSize{SizeID: sz.ID, Category: sz.Axis, Value: sz.Value}
	}
	return models.Variant{
		ID:             uuid.NewString(),
		ProductGroup:   p.ProductGroup,
		ProductName:    p.ProductName,
		Brand:          p.Brand,
		Category:       p.Category,
		SKU:            c.sku,
		ConfigHash:     c.hash,
		ColorID:        c.color.ID,
		Sizes:          sizes,
		Price:          p.BasePrice,
		Images:         p.Images,
		Description:    p.Description,
		Specifications: p.Specifications,
		Status:         models.VariantActive,
	}
}
