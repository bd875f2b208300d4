package source

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
)

// ErrNoSheetFile indicates no unambiguous report sheet was found.
var ErrNoSheetFile = eris.New("no report sheet file")

// SpreadsheetFiles lists the spreadsheet files directly under dir, sorted by
// name. Office lock files starting with "~" are skipped.
func SpreadsheetFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "select: read %s", dir)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !IsSpreadsheet(e.Name()) || strings.HasPrefix(e.Name(), "~") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// SelectByPostfix returns the single spreadsheet in dir whose name, without
// extension, ends with postfix.
func SelectByPostfix(dir, postfix string) (string, error) {
	files, err := SpreadsheetFiles(dir)
	if err != nil {
		return "", err
	}
	var matched []string
	for _, f := range files {
		if strings.HasSuffix(stem(f), postfix) {
			matched = append(matched, f)
		}
	}
	switch len(matched) {
	case 0:
		return "", eris.Wrapf(ErrNoSheetFile, "no file ends with %q in %s", postfix, dir)
	case 1:
		return matched[0], nil
	default:
		return "", eris.Wrapf(ErrNoSheetFile, "%d files end with %q in %s", len(matched), postfix, dir)
	}
}

// SelectByPattern returns every spreadsheet in dir whose lower-cased name,
// without extension, contains pattern.
func SelectByPattern(dir, pattern string) ([]string, error) {
	files, err := SpreadsheetFiles(dir)
	if err != nil {
		return nil, err
	}
	var matched []string
	for _, f := range files {
		if strings.Contains(strings.ToLower(stem(f)), pattern) {
			matched = append(matched, f)
		}
	}
	if len(matched) == 0 {
		return nil, eris.Wrapf(ErrNoSheetFile, "no file contains %q in %s", pattern, dir)
	}
	return matched, nil
}

// AcreagePattern returns the file name pattern of the variety by district
// table in the acreage report for year.
func AcreagePattern(year int) string {
	if year == 1994 || year >= 2022 {
		return "gabtb10"
	}
	return "gabtb12"
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
