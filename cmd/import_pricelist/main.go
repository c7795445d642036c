// Command import_pricelist loads a supplier price-list PDF into the
// local price book. Rows follow the common "name  pack  unit  price
// [supplier]" layout; everything else on the page is ignored.
package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
	"gorm.io/gorm"

	"hppcalc/internal/config"
	"hppcalc/internal/db"
	"hppcalc/models"
)

var (
	rowPattern      = regexp.MustCompile(`(?i)^(.+?)\s+([\d.,]+)\s*(GRAM|GR|G|KG|ML|L|LITER|PCS|BUAH|LEMBAR)\s+(?:Rp\s*)?([\d.,]+)(?:\s+(.+))?$`)
	cleanWhitespace = regexp.MustCompile(`\s+`)
)

func main() {
	pdfPath := "daftar-harga-bahan.pdf"
	if len(os.Args) > 1 {
		pdfPath = os.Args[1]
	}

	if err := run(pdfPath); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(pdfPath string) error {
	if strings.TrimSpace(pdfPath) == "" {
		return fmt.Errorf("pdf path must not be empty")
	}

	if _, err := os.Stat(pdfPath); err != nil {
		return fmt.Errorf("locate pdf: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	database, err := db.Initialize(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(database); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	text, err := extractText(pdfPath)
	if err != nil {
		return fmt.Errorf("read pdf: %w", err)
	}

	items := parseItems(text)
	if len(items) == 0 {
		return fmt.Errorf("no price rows recognized in %s", filepath.Base(pdfPath))
	}

	created, updated := 0, 0
	for _, item := range items {
		wasNew, err := upsertItem(database, item)
		if err != nil {
			return fmt.Errorf("item %q: %w", item.Name, err)
		}
		if wasNew {
			created++
		} else {
			updated++
		}
	}

	fmt.Fprintf(os.Stdout, "Imported %d new and updated %d price list items from %s\n",
		created, updated, filepath.Base(pdfPath))
	return nil
}

func extractText(path string) (string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	content, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(content); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func parseItems(text string) []models.PriceListItem {
	var items []models.PriceListItem
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		item, ok := parseRow(scanner.Text())
		if !ok || seen[strings.ToLower(item.Name)] {
			continue
		}
		seen[strings.ToLower(item.Name)] = true
		items = append(items, item)
	}
	return items
}

// parseRow interprets one price-list line. Kilogram and liter packs
// are normalized down to gram and milliliter so usage math in the
// calculator stays unit-consistent.
func parseRow(line string) (models.PriceListItem, bool) {
	trimmed := cleanWhitespace.ReplaceAllString(strings.TrimSpace(line), " ")
	match := rowPattern.FindStringSubmatch(trimmed)
	if match == nil {
		return models.PriceListItem{}, false
	}

	name := strings.TrimSpace(match[1])
	packSize := parseAmount(match[2])
	price := parseAmount(match[4])
	if name == "" || packSize <= 0 || price <= 0 {
		return models.PriceListItem{}, false
	}

	unit, factor := normalizeUnit(match[3])

	return models.PriceListItem{
		Name:      name,
		Unit:      unit,
		PackSize:  packSize * factor,
		PackPrice: price,
		Supplier:  strings.TrimSpace(match[5]),
	}, true
}

// parseAmount reads Indonesian-formatted numbers: "25.000" groups
// thousands with dots, "1,5" marks the decimal with a comma.
func parseAmount(raw string) float64 {
	normalized := strings.ReplaceAll(strings.TrimSpace(raw), ".", "")
	normalized = strings.ReplaceAll(normalized, ",", ".")
	value, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0
	}
	return value
}

func normalizeUnit(raw string) (string, float64) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "KG":
		return "GRAM", 1000
	case "GRAM", "GR", "G":
		return "GRAM", 1
	case "L", "LITER":
		return "ML", 1000
	case "ML":
		return "ML", 1
	default:
		return "PCS", 1
	}
}

func upsertItem(database *gorm.DB, item models.PriceListItem) (bool, error) {
	created := false
	err := database.Transaction(func(tx *gorm.DB) error {
		var existing models.PriceListItem
		err := tx.Where("lower(name) = ?", strings.ToLower(item.Name)).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			created = true
			return tx.Create(&item).Error
		}
		if err != nil {
			return err
		}

		updates := map[string]any{
			"unit":       item.Unit,
			"pack_size":  item.PackSize,
			"pack_price": item.PackPrice,
		}
		if item.Supplier != "" {
			updates["supplier"] = item.Supplier
		}
		return tx.Model(&existing).Updates(updates).Error
	})
	return created, err
}
