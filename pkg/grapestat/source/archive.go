package source

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// Unpack makes the downloaded report available as plain files under dir.
// Zip archives are extracted; any other file is copied in.
func Unpack(dl Download, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return eris.Wrap(err, "unpack: create dir")
	}
	if dl.Ext != "zip" {
		return copyFile(dl.Path, filepath.Join(dir, filepath.Base(dl.Path)))
	}
	return Unzip(dl.Path, dir)
}

// Unzip extracts every file of the archive at src into dir.
func Unzip(src, dir string) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return eris.Wrapf(err, "unzip: open %s", src)
	}
	defer r.Close()

	root := filepath.Clean(dir) + string(os.PathSeparator)
	for _, zf := range r.File {
		dst := filepath.Join(dir, zf.Name)
		if !strings.HasPrefix(dst, root) {
			return eris.Errorf("unzip: entry %q escapes %s", zf.Name, dir)
		}
		if zf.FileInfo().IsDir() {
			if err := os.MkdirAll(dst, 0755); err != nil {
				return eris.Wrap(err, "unzip: create dir")
			}
			continue
		}
		if err := extractFile(zf, dst); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(zf *zip.File, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return eris.Wrap(err, "unzip: create dir")
	}
	rc, err := zf.Open()
	if err != nil {
		return eris.Wrapf(err, "unzip: open entry %s", zf.Name)
	}
	defer rc.Close()

	out, err := os.Create(dst)
	if err != nil {
		return eris.Wrapf(err, "unzip: create %s", dst)
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return eris.Wrapf(err, "unzip: write %s", dst)
	}
	return out.Close()
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return eris.Wrapf(err, "copy: open %s", src)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return eris.Wrapf(err, "copy: create %s", dst)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return eris.Wrapf(err, "copy: write %s", dst)
	}
	return out.Close()
}
