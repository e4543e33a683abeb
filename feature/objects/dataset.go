package objects

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LoadLines reads every file in order and concatenates their lines.
// Line terminators are stripped; a last line without terminator is kept.
func LoadLines(paths []string) ([]string, error) {
	lines := []string{}
	for _, path := range paths {
		var err error
		lines, err = appendLines(lines, path)
		if err != nil {
			return nil, err
		}
	}
	return lines, nil
}

func appendLines(lines []string, path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			lines = append(lines, strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"))
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}
}

// LocalFiles returns the regular files below folder in lexical order,
// the same order a prefix listing returns their keys in.
func LocalFiles(folder string) ([]string, error) {
	files := []string{}
	err := filepath.WalkDir(folder, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", folder, err)
	}
	return files, nil
}
