package util

import (
	"encoding/gob"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/exp/constraints"
)

// EnsureDir creates dir (and parents) if it does not exist yet.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not create %v: %w", dir, err)
	}
	return nil
}

// GatherPaths walks root and returns files with one of the given extensions.
// maxNum == 0 means no limit.
func GatherPaths(root string, exts []string, maxNum int) ([]string, error) {
	var res []string
	walk := func(s string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		for _, ext := range exts {
			if strings.HasSuffix(strings.ToLower(s), ext) {
				if maxNum == 0 || len(res) < maxNum {
					res = append(res, s)
				}
				break
			}
		}
		return nil
	}
	if err := filepath.WalkDir(root, walk); err != nil {
		return nil, fmt.Errorf("error walking %v: %w", root, err)
	}
	sort.Strings(res)
	return res, nil
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}

func WriteBinary(w io.Writer, data any) error {
	if err := gob.NewEncoder(w).Encode(data); err != nil {
		return fmt.Errorf("could not encode binary: %w", err)
	}
	return nil
}

func ReadBinary[A any](r io.Reader) (A, error) {
	var data A
	if err := gob.NewDecoder(r).Decode(&data); err != nil {
		return data, fmt.Errorf("could not decode binary: %w", err)
	}
	return data, nil
}

func Min[A constraints.Integer | constraints.Float](a, b A) A {
	if a > b {
		return b
	}
	return a
}

func Max[A constraints.Integer | constraints.Float](a, b A) A {
	if a < b {
		return b
	}
	return a
}

// Clamp limits v to [lo, hi].
func Clamp[A constraints.Integer | constraints.Float](v, lo, hi A) A {
	return Min(Max(v, lo), hi)
}
