package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

func loadFile(path string) ([]byte, bool, error) {
	if path == "" {
		return nil, false, errors.New("file path is required")
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, true, err
	}
	defer f.Close()

	data, err := io.ReadAll(bufio.NewReader(f))
	if err != nil {
		return nil, true, fmt.Errorf("read %s: %w", path, err)
	}
	return data, true, nil
}
