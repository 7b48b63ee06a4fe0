package handler

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rdb2csv/rdb2csv/core"
)

// DefaultExtension is the file extension of source files picked from directories.
const DefaultExtension = ".rdb"

// ExpandSources turns command line arguments into a list of sources.
// Arguments naming an existing path are used as they are, others go through
// template expansion first. Directories expand to the files with the given
// extension, glob patterns to their matches. Both are sorted by name, the
// order of arguments is kept.
func ExpandSources(args []string, extension string) ([]string, error) {
	if extension == "" {
		extension = DefaultExtension
	}
	if !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}

	var sources []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			arg = core.ExpandSource(arg)
			info, err = os.Stat(arg)
		}
		switch {
		case err == nil && info.IsDir():
			files, err := filesWithExtension(arg, extension)
			if err != nil {
				return nil, err
			}
			sources = append(sources, files...)

		case err != nil && hasMeta(arg):
			matches, err := filepath.Glob(arg)
			if err != nil {
				return nil, fmt.Errorf("filepath.Glob: %q: %w", arg, err)
			}
			if len(matches) == 0 {
				// reported as unreadable by the reader
				sources = append(sources, arg)
				continue
			}
			sort.Strings(matches)
			sources = append(sources, matches...)

		default:
			sources = append(sources, arg)
		}
	}

	return sources, nil
}

func filesWithExtension(dir, extension string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("os.ReadDir: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), extension) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}

	return files, nil
}

func hasMeta(path string) bool {
	return strings.ContainsAny(path, `*?[`)
}
