package propdoc_test

import (
	"io/fs"
	"strings"
	"testing/fstest"
)

func testsupportFS() fs.FS {
	return fstest.MapFS{
		"META-INF/spring-configuration-metadata.json": {Data: []byte(metadataJSON)},
	}
}

func containsLine(doc, line string) bool {
	for _, l := range strings.SplitAfter(doc, "\n") {
		if l == line {
			return true
		}
	}
	return false
}
