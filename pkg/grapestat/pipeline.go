package grapestat

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/ukaji3/grapestat-go/pkg/grapestat/models"
	"github.com/ukaji3/grapestat-go/pkg/grapestat/output"
	"github.com/ukaji3/grapestat-go/pkg/grapestat/source"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// Pipeline drives listing, download, extraction and output for a range of
// years. Downloads may run in parallel; extraction runs one year at a time.
type Pipeline struct {
	Config Config
	Client *http.Client
	// Store, when set, receives every result in addition to the CSV files.
	Store *output.Store
}

// Written is one output table produced by a run.
type Written struct {
	Year     int
	Category models.Category
	Path     string
}

// RunCrush processes the crush report table for category.
func (p *Pipeline) RunCrush(ctx context.Context, category models.Category) ([]Written, error) {
	postfix, ok := CrushPostfix(category)
	if !ok {
		return nil, fmt.Errorf("invalid crush category: %s", category)
	}
	rawDir := filepath.Join(p.Config.DataRoot, category.Dir()+"Raw")
	opts := Options{Variant: VariantCrush, Category: category, CSVCharset: p.Config.CSVCharset}

	return p.run(ctx, p.Config.CrushIndexURL, source.ParseCrushListing, rawDir, opts,
		func(yearDir string, year int) ([]string, error) {
			path, err := source.SelectByPostfix(yearDir, postfix)
			if err != nil {
				return nil, err
			}
			return []string{path}, nil
		})
}

// RunAcreage processes the acreage variety by district tables.
func (p *Pipeline) RunAcreage(ctx context.Context) ([]Written, error) {
	rawDir := filepath.Join(p.Config.DataRoot, "AcreageRaw")
	opts := Options{Variant: VariantAcreage, CSVCharset: p.Config.CSVCharset}

	return p.run(ctx, p.Config.AcreageIndexURL, source.ParseAcreageListing, rawDir, opts,
		func(yearDir string, year int) ([]string, error) {
			flat := filepath.Join(yearDir, "flatten")
			if err := source.Flatten(yearDir, flat); err != nil {
				return nil, err
			}
			return source.SelectByPattern(flat, source.AcreagePattern(year))
		})
}

type listingParser func(doc *html.Node, base string) (source.Listing, error)

type sheetSelector func(yearDir string, year int) ([]string, error)

func (p *Pipeline) run(ctx context.Context, indexURL string, parse listingParser, rawDir string, opts Options, selectSheets sheetSelector) ([]Written, error) {
	if err := p.Config.Validate(); err != nil {
		return nil, err
	}
	log := zap.L().With(zap.String("variant", string(opts.Variant)))

	log.Info("parsing listing", zap.String("url", indexURL))
	doc, err := source.FetchPage(ctx, p.client(), indexURL)
	if err != nil {
		return nil, err
	}
	listing, err := parse(doc, indexURL)
	if err != nil {
		return nil, err
	}

	var links []source.Link
	for _, year := range p.Config.Years() {
		link, err := listing.Select(year)
		if err != nil {
			return nil, err
		}
		links = append(links, link)
	}

	log.Info("downloading", zap.Int("files", len(links)))
	fetcher := &source.Fetcher{
		Client:       p.client(),
		Dir:          rawDir,
		SkipDownload: p.Config.SkipDownload,
		Concurrency:  p.Config.Concurrency,
	}
	downloads, err := fetcher.FetchAll(ctx, links)
	if err != nil {
		return nil, err
	}

	var written []Written
	for _, dl := range downloads {
		w, err := p.processYear(ctx, dl, rawDir, opts, selectSheets)
		if err != nil {
			if !p.Config.ContinueOnError {
				return written, err
			}
			log.Error("year failed", zap.Int("year", dl.Year), zap.Error(err))
			continue
		}
		written = append(written, w...)
	}
	log.Info("done", zap.Int("tables", len(written)))
	return written, nil
}

func (p *Pipeline) processYear(ctx context.Context, dl source.Download, rawDir string, opts Options, selectSheets sheetSelector) ([]Written, error) {
	yearDir := filepath.Join(rawDir, fmt.Sprintf("%d", dl.Year))
	if err := source.Unpack(dl, yearDir); err != nil {
		return nil, err
	}
	paths, err := selectSheets(yearDir, dl.Year)
	if err != nil {
		return nil, err
	}

	opts.Year = dl.Year
	results, err := Extract(paths, opts)
	if err != nil {
		return nil, eris.Wrapf(err, "year %d", dl.Year)
	}
	if results == nil {
		zap.L().Warn("no table found, skipping year", zap.Int("year", dl.Year))
		return nil, nil
	}

	var written []Written
	for _, res := range results {
		path, err := output.WriteCSVFile(p.Config.DataRoot, res, opts.AllowList())
		if err != nil {
			return written, eris.Wrapf(err, "write %d %s", res.Year, res.Category)
		}
		zap.L().Info("wrote table", zap.String("path", path), zap.Int("varieties", res.Len()))
		if p.Store != nil {
			if err := p.Store.Save(ctx, res); err != nil {
				return written, eris.Wrapf(err, "store %d %s", res.Year, res.Category)
			}
		}
		written = append(written, Written{Year: res.Year, Category: res.Category, Path: path})
	}
	return written, nil
}

func (p *Pipeline) client() *http.Client {
	if p.Client != nil {
		return p.Client
	}
	return http.DefaultClient
}

// IsFatalRun reports whether err aborts the whole run regardless of
// ContinueOnError.
func IsFatalRun(err error) bool {
	return errors.Is(err, ErrYearNotListed)
}
