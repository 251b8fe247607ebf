package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"citimart/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// CSVImporter reads catalog CSV exports and inserts/updates products.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:      csvr,
		productRepo: repo,
	}
}

type csvRow struct {
	Name            string
	Desc            string
	Category        string
	PriceCents      int64
	DiscountPercent int
	Sizes           []string
	Images          []string
	Stock           int
}

// Run parses CSV rows and upserts products. Rows with an empty name but an
// image URL extend the previous product's image list.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	var (
		current  *csvRow
		imported int
	)

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		row := parseRow(record, index)
		if row == nil {
			continue
		}

		if row.Name != "" {
			if current != nil {
				if err := i.save(ctx, current); err != nil {
					return imported, err
				}
				imported++
			}
			current = row
			continue
		}

		// Continuation rows (images) belong to the current product.
		if current != nil && len(row.Images) > 0 {
			current.Images = append(current.Images, row.Images...)
		}
	}

	if current != nil {
		if err := i.save(ctx, current); err != nil {
			return imported, err
		}
		imported++
	}

	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, row *csvRow) error {
	if row.Name == "" || row.PriceCents <= 0 {
		return fmt.Errorf("invalid product row (missing required fields) for name %q", row.Name)
	}
	if row.DiscountPercent < 0 || row.DiscountPercent > 100 {
		return fmt.Errorf("invalid discount for name %q: %d", row.Name, row.DiscountPercent)
	}

	p := domain.Product{
		Name:            row.Name,
		Description:     row.Desc,
		Category:        row.Category,
		PriceCents:      row.PriceCents,
		DiscountPercent: row.DiscountPercent,
		Sizes:           row.Sizes,
		Images:          row.Images,
		Stock:           row.Stock,
		Active:          true,
	}

	if _, err := i.productRepo.Upsert(ctx, p); err != nil {
		return fmt.Errorf("upsert product %q: %w", row.Name, err)
	}
	return nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[h] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) *csvRow {
	name := pick(record, index, "name")
	imageURL := pick(record, index, "image_url")

	if name == "" && imageURL == "" {
		return nil
	}

	row := &csvRow{
		Name:            name,
		Desc:            pick(record, index, "description"),
		Category:        pick(record, index, "category"),
		PriceCents:      parseInt64(pick(record, index, "price_cents")),
		DiscountPercent: int(parseInt64(pick(record, index, "discount_percent"))),
		Sizes:           splitList(pick(record, index, "sizes")),
		Stock:           int(parseInt64(pick(record, index, "stock"))),
	}
	if imageURL != "" {
		row.Images = []string{imageURL}
	}
	return row
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}

func parseInt64(s string) int64 {
	if s == "" {
		return 0
	}
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
