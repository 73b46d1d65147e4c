package main

import (
	"os"
	"path/filepath"
	"strings"
)

func readAll(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func baseWithoutExt(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
