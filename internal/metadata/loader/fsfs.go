package loader

import (
	"errors"
	"io/fs"
)

func loadFromFS(filesystem fs.FS, name string) ([]byte, bool, error) {
	if filesystem == nil {
		return nil, false, errors.New("filesystem is not configured")
	}
	if name == "" {
		return nil, false, errors.New("fs path is required")
	}

	if _, err := fs.Stat(filesystem, name); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}

	data, err := fs.ReadFile(filesystem, name)
	if err != nil {
		return nil, true, err
	}
	return data, true, nil
}
