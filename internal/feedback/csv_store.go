package feedback

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sync"
)

var csvHeader = []string{"data", "produto", "empresa", "erro"}

// CSVStore appends reports to a flat file, writing the header when the file is new.
type CSVStore struct {
	Path string
	mu   sync.Mutex
}

func NewCSVStore(path string) *CSVStore {
	return &CSVStore{Path: path}
}

func (s *CSVStore) Append(_ context.Context, r Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("abrir %s: %w", s.Path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", s.Path, err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(csvHeader); err != nil {
			return err
		}
	}
	if err := w.Write([]string{r.Timestamp.Format(TimestampLayout), r.Product, r.Company, r.Description}); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("gravar %s: %w", s.Path, err)
	}
	return nil
}
