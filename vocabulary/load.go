package vocabulary

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jsphweid/harmonet/util"
)

func LoadJSON(r io.Reader) (*Table, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("could not decode vocabulary: %w", err)
	}
	return NewTable(records)
}

func SaveJSON(w io.Writer, t *Table) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t.Records())
}

func LoadGob(r io.Reader) (*Table, error) {
	records, err := util.ReadBinary[[]Record](r)
	if err != nil {
		return nil, err
	}
	return NewTable(records)
}

func SaveGob(w io.Writer, t *Table) error {
	return util.WriteBinary(w, t.Records())
}

// Load reads a vocabulary file; ".gob" files are read as binary, anything
// else as JSON.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open vocabulary: %w", err)
	}
	defer f.Close()

	if filepath.Ext(path) == ".gob" {
		return LoadGob(f)
	}
	return LoadJSON(f)
}
