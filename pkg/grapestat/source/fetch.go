package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Download is a fetched report file.
type Download struct {
	Year int
	Path string
	// Ext is the lower-case extension without the dot, "zip" for archives.
	Ext string
}

// Fetcher downloads report files into a raw data directory.
type Fetcher struct {
	Client *http.Client
	// Dir receives one file per year.
	Dir string
	// SkipDownload reuses files already present in Dir.
	SkipDownload bool
	// Concurrency bounds parallel downloads; values below 1 mean 1.
	Concurrency int
}

// Fetch downloads the link for one year.
func (f *Fetcher) Fetch(ctx context.Context, link Link) (Download, error) {
	ext := linkExt(link.URL)
	dst := filepath.Join(f.Dir, fmt.Sprintf("%d.%s", link.Year, ext))
	dl := Download{Year: link.Year, Path: dst, Ext: ext}
	if f.SkipDownload {
		if _, err := os.Stat(dst); err != nil {
			return Download{}, eris.Wrapf(err, "fetch: skip download but %s is missing", dst)
		}
		return dl, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link.URL, nil)
	if err != nil {
		return Download{}, eris.Wrap(err, "fetch: build request")
	}
	resp, err := f.client().Do(req)
	if err != nil {
		return Download{}, eris.Wrapf(err, "fetch: get %s", link.URL)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Download{}, eris.Errorf("fetch: get %s: status %s", link.URL, resp.Status)
	}

	if err := os.MkdirAll(f.Dir, 0755); err != nil {
		return Download{}, eris.Wrap(err, "fetch: create raw dir")
	}
	out, err := os.Create(dst)
	if err != nil {
		return Download{}, eris.Wrap(err, "fetch: create file")
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		return Download{}, eris.Wrapf(err, "fetch: write %s", dst)
	}
	if err := out.Close(); err != nil {
		return Download{}, eris.Wrapf(err, "fetch: close %s", dst)
	}
	zap.L().Info("downloaded report", zap.Int("year", link.Year), zap.String("path", dst))
	return dl, nil
}

// FetchAll downloads links in parallel and returns the downloads in the
// order of links.
func (f *Fetcher) FetchAll(ctx context.Context, links []Link) ([]Download, error) {
	out := make([]Download, len(links))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(f.Concurrency, 1))
	for i, link := range links {
		g.Go(func() error {
			dl, err := f.Fetch(ctx, link)
			if err != nil {
				return err
			}
			out[i] = dl
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (f *Fetcher) client() *http.Client {
	if f.Client != nil {
		return f.Client
	}
	return http.DefaultClient
}

// linkExt returns the file extension of a link. Self-extracting archives
// are stored as zip files.
func linkExt(rawURL string) string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}
	ext := strings.Trim(strings.ToLower(path.Ext(p)), ". ")
	if ext == "exe" {
		return "zip"
	}
	return ext
}
