package pipeline

import (
	"context"
	"fmt"
	"time"

	"medallion/internal/ingest"
	"medallion/internal/normalize"
	"medallion/internal/ui"
	"medallion/pkg/errors"
)

// Entity names accepted by the --entity filter
const (
	EntityCustomers     = "customers"
	EntityProducts      = "products"
	EntitySales         = "sales"
	EntityErpCustomers  = "erp_customers"
	EntityErpLocations  = "erp_locations"
	EntityErpCategories = "erp_categories"
)

// AllEntities lists every entity in load order
var AllEntities = []string{
	EntityCustomers,
	EntityProducts,
	EntitySales,
	EntityErpCustomers,
	EntityErpLocations,
	EntityErpCategories,
}

// SilverLoader writes cleaned records into the silver tables
type SilverLoader interface {
	LoadCustomers(ctx context.Context, records []normalize.Customer) (int, error)
	LoadProducts(ctx context.Context, records []normalize.Product) (int, error)
	LoadSales(ctx context.Context, records []normalize.Sale) (int, error)
	LoadErpCustomers(ctx context.Context, records []normalize.ErpCustomer) (int, error)
	LoadErpLocations(ctx context.Context, records []normalize.ErpLocation) (int, error)
	LoadErpCategories(ctx context.Context, records []normalize.ErpCategory) (int, error)
}

// SchemaManager prepares the silver schema and refreshes the gold views
type SchemaManager interface {
	EnsureSilver(ctx context.Context, schema string) error
	RefreshGold(ctx context.Context, goldSchema, silverSchema string) error
}

// Options controls a single pipeline run
type Options struct {
	Entities []string // empty means all entities
	DryRun   bool     // read and normalize only, skip the warehouse
}

// Result holds the outcome of a pipeline run
type Result struct {
	Entities []ui.EntityReport
	Duration time.Duration
}

// Failed reports whether any entity load failed
func (r *Result) Failed() bool {
	for _, e := range r.Entities {
		if e.Err != nil {
			return true
		}
	}
	return false
}

// Runner executes the ingest, normalize and load stages for each entity
type Runner struct {
	sources      ingest.SourceSet
	loader       SilverLoader
	schemas      SchemaManager
	silverSchema string
	goldSchema   string
	console      *ui.UI
	now          func() time.Time
}

// NewRunner creates a pipeline runner
func NewRunner(sources ingest.SourceSet, loader SilverLoader, schemas SchemaManager, silverSchema, goldSchema string, console *ui.UI) *Runner {
	if console == nil {
		console = ui.NewUI(false, true)
	}
	return &Runner{
		sources:      sources,
		loader:       loader,
		schemas:      schemas,
		silverSchema: silverSchema,
		goldSchema:   goldSchema,
		console:      console,
		now:          time.Now,
	}
}

// Run executes the pipeline for the selected entities. Entity failures are
// collected in the result rather than aborting the run; schema failures
// abort because nothing can load without the tables.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	entities := opts.Entities
	if len(entities) == 0 {
		entities = AllEntities
	}
	if err := validateEntities(entities); err != nil {
		return nil, err
	}

	start := r.now()

	if !opts.DryRun {
		r.console.VerbosePrintf("Ensuring silver schema %s\n", r.silverSchema)
		if err := r.schemas.EnsureSilver(ctx, r.silverSchema); err != nil {
			return nil, err
		}
	}

	result := &Result{}
	for i, name := range entities {
		if !r.console.IsQuiet() {
			ui.ShowEntityExecution(name, i+1, len(entities))
		}

		report := r.runEntity(ctx, name, opts.DryRun)
		result.Entities = append(result.Entities, report)

		if !r.console.IsQuiet() {
			ui.ShowEntityResult(name, report.Err == nil, errMessage(report.Err), report.Duration.String())
		}
		r.console.VerbosePrintf("  rows: %s\n", ui.FormatRowCounts(report.RowsKept, report.RowsDropped))
	}

	if !opts.DryRun && !result.Failed() {
		r.console.VerbosePrintf("Refreshing gold views in %s\n", r.goldSchema)
		if err := r.schemas.RefreshGold(ctx, r.goldSchema, r.silverSchema); err != nil {
			return nil, err
		}
	}

	result.Duration = r.now().Sub(start)
	return result, nil
}

func (r *Runner) runEntity(ctx context.Context, name string, dryRun bool) ui.EntityReport {
	start := r.now()
	report := ui.EntityReport{Entity: name}

	switch name {
	case EntityCustomers:
		r.loadCustomers(ctx, &report, dryRun)
	case EntityProducts:
		r.loadProducts(ctx, &report, dryRun)
	case EntitySales:
		r.loadSales(ctx, &report, dryRun)
	case EntityErpCustomers:
		r.loadErpCustomers(ctx, &report, dryRun)
	case EntityErpLocations:
		r.loadErpLocations(ctx, &report, dryRun)
	case EntityErpCategories:
		r.loadErpCategories(ctx, &report, dryRun)
	}

	report.Duration = r.now().Sub(start)
	return report
}

func (r *Runner) loadCustomers(ctx context.Context, report *ui.EntityReport, dryRun bool) {
	f, err := ingest.Open(r.sources.CRMPath(ingest.FileCustomers))
	if err != nil {
		report.Err = err
		return
	}
	defer f.Close()

	raws, warnings, err := ingest.ReadCustomers(f)
	if err != nil {
		report.Err = err
		return
	}
	r.reportWarnings(report, warnings)
	report.RowsRead = len(raws)

	cleaned := normalize.Customers(raws)
	report.RowsKept = len(cleaned)
	report.RowsDropped = report.RowsRead - report.RowsKept

	if dryRun {
		return
	}
	report.RowsLoaded, report.Err = r.loader.LoadCustomers(ctx, cleaned)
}

func (r *Runner) loadProducts(ctx context.Context, report *ui.EntityReport, dryRun bool) {
	f, err := ingest.Open(r.sources.CRMPath(ingest.FileProducts))
	if err != nil {
		report.Err = err
		return
	}
	defer f.Close()

	raws, warnings, err := ingest.ReadProducts(f)
	if err != nil {
		report.Err = err
		return
	}
	r.reportWarnings(report, warnings)
	report.RowsRead = len(raws)

	cleaned := normalize.Products(raws)
	report.RowsKept = len(cleaned)
	report.RowsDropped = report.RowsRead - report.RowsKept

	if dryRun {
		return
	}
	report.RowsLoaded, report.Err = r.loader.LoadProducts(ctx, cleaned)
}

func (r *Runner) loadSales(ctx context.Context, report *ui.EntityReport, dryRun bool) {
	f, err := ingest.Open(r.sources.CRMPath(ingest.FileSales))
	if err != nil {
		report.Err = err
		return
	}
	defer f.Close()

	raws, warnings, err := ingest.ReadSales(f)
	if err != nil {
		report.Err = err
		return
	}
	r.reportWarnings(report, warnings)
	report.RowsRead = len(raws)

	cleaned := normalize.Sales(raws)
	report.RowsKept = len(cleaned)
	report.RowsDropped = report.RowsRead - report.RowsKept

	if dryRun {
		return
	}
	report.RowsLoaded, report.Err = r.loader.LoadSales(ctx, cleaned)
}

func (r *Runner) loadErpCustomers(ctx context.Context, report *ui.EntityReport, dryRun bool) {
	f, err := ingest.Open(r.sources.ERPPath(ingest.FileErpCustomers))
	if err != nil {
		report.Err = err
		return
	}
	defer f.Close()

	raws, warnings, err := ingest.ReadErpCustomers(f)
	if err != nil {
		report.Err = err
		return
	}
	r.reportWarnings(report, warnings)
	report.RowsRead = len(raws)

	cleaned := normalize.ErpCustomers(raws, r.now())
	report.RowsKept = len(cleaned)
	report.RowsDropped = report.RowsRead - report.RowsKept

	if dryRun {
		return
	}
	report.RowsLoaded, report.Err = r.loader.LoadErpCustomers(ctx, cleaned)
}

func (r *Runner) loadErpLocations(ctx context.Context, report *ui.EntityReport, dryRun bool) {
	f, err := ingest.Open(r.sources.ERPPath(ingest.FileErpLocations))
	if err != nil {
		report.Err = err
		return
	}
	defer f.Close()

	raws, warnings, err := ingest.ReadErpLocations(f)
	if err != nil {
		report.Err = err
		return
	}
	r.reportWarnings(report, warnings)
	report.RowsRead = len(raws)

	cleaned := normalize.ErpLocations(raws)
	report.RowsKept = len(cleaned)
	report.RowsDropped = report.RowsRead - report.RowsKept

	if dryRun {
		return
	}
	report.RowsLoaded, report.Err = r.loader.LoadErpLocations(ctx, cleaned)
}

func (r *Runner) loadErpCategories(ctx context.Context, report *ui.EntityReport, dryRun bool) {
	f, err := ingest.Open(r.sources.ERPPath(ingest.FileErpCategories))
	if err != nil {
		report.Err = err
		return
	}
	defer f.Close()

	raws, warnings, err := ingest.ReadErpCategories(f)
	if err != nil {
		report.Err = err
		return
	}
	r.reportWarnings(report, warnings)
	report.RowsRead = len(raws)

	cleaned := normalize.ErpCategories(raws)
	report.RowsKept = len(cleaned)
	report.RowsDropped = report.RowsRead - report.RowsKept

	if dryRun {
		return
	}
	report.RowsLoaded, report.Err = r.loader.LoadErpCategories(ctx, cleaned)
}

func (r *Runner) reportWarnings(report *ui.EntityReport, warnings []ingest.Warning) {
	report.Warnings = len(warnings)
	for _, w := range warnings {
		r.console.VerbosePrintf("  row %d: %s\n", w.Row, w.Message)
	}
}

func validateEntities(entities []string) error {
	known := make(map[string]bool, len(AllEntities))
	for _, e := range AllEntities {
		known[e] = true
	}
	for _, e := range entities {
		if !known[e] {
			return errors.ValidationError("entity", e,
				fmt.Sprintf("one of %v", AllEntities))
		}
	}
	return nil
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
