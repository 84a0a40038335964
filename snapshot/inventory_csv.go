package snapshot

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/bookwerk/bookstore-mas/ontology"
)

var ErrBadCSVHeader = errors.New("inventory csv header does not match the expected columns")
var ErrDuplicateCSVBook = errors.New("inventory csv contains a book that already exists in the store")

var inventoryCSVHeader = []string{"name", "title", "author", "genre", "price", "available_quantity", "restock_threshold"}

// WriteInventoryCSV writes the book inventory table of a store.
func WriteInventoryCSV(store *ontology.Store, w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(inventoryCSVHeader); err != nil {
		return fmt.Errorf("writing inventory csv header failed: %w", err)
	}

	for _, book := range store.Books() {
		threshold := ""
		if value, set := book.RestockThreshold.Get(); set {
			threshold = strconv.Itoa(value)
		}

		row := []string{
			book.Name,
			book.Title.OrDefault(""),
			book.Author.OrDefault(""),
			book.Genre.OrDefault(""),
			strconv.FormatFloat(book.Price, 'f', -1, 64),
			strconv.Itoa(book.AvailableQuantity),
			threshold,
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing inventory csv row failed: %w", err)
		}
	}

	writer.Flush()

	return writer.Error()
}

// ReadInventoryCSV parses and validates an inventory table without applying
// it. Missing optional columns resolve to absent values.
func ReadInventoryCSV(r io.Reader) ([]ontology.BookParams, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading inventory csv header failed: %w", err)
	}

	if len(header) != len(inventoryCSVHeader) {
		return nil, ErrBadCSVHeader
	}

	for i, column := range inventoryCSVHeader {
		if header[i] != column {
			return nil, fmt.Errorf("%w: got %q, want %q", ErrBadCSVHeader, header[i], column)
		}
	}

	var books []ontology.BookParams

	for line := 2; ; line++ {
		row, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}

		if readErr != nil {
			return nil, fmt.Errorf("reading inventory csv line %d failed: %w", line, readErr)
		}

		if row[0] == "" {
			return nil, fmt.Errorf("%w: line %d", ErrMissingBookName, line)
		}

		price, parseErr := strconv.ParseFloat(row[4], 64)
		if parseErr != nil {
			return nil, fmt.Errorf("parsing price on line %d failed: %w", line, parseErr)
		}

		quantity, parseErr := strconv.Atoi(row[5])
		if parseErr != nil {
			return nil, fmt.Errorf("parsing quantity on line %d failed: %w", line, parseErr)
		}

		threshold := ontology.None[int]()
		if row[6] != "" {
			value, thresholdErr := strconv.Atoi(row[6])
			if thresholdErr != nil {
				return nil, fmt.Errorf("parsing threshold on line %d failed: %w", line, thresholdErr)
			}

			threshold = ontology.Some(value)
		}

		books = append(books, ontology.BookParams{
			Name:             row[0],
			Title:            optionalString(row[1]),
			Author:           optionalString(row[2]),
			Genre:            optionalString(row[3]),
			Price:            price,
			Quantity:         quantity,
			RestockThreshold: threshold,
		})
	}

	return books, nil
}

// ImportInventoryCSV parses, validates against the store, and only then
// adds the books. A failing row aborts the import before any mutation.
func ImportInventoryCSV(store *ontology.Store, r io.Reader) error {
	books, err := ReadInventoryCSV(r)
	if err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(books))
	for _, params := range books {
		if _, exists := store.BookByName(params.Name); exists {
			return fmt.Errorf("%w: %q", ErrDuplicateCSVBook, params.Name)
		}

		if _, duplicate := seen[params.Name]; duplicate {
			return fmt.Errorf("%w: %q", ErrDuplicateCSVBook, params.Name)
		}

		seen[params.Name] = struct{}{}

		if params.Price < 0 {
			return ontology.ErrNegativePrice
		}

		if params.Quantity < 0 {
			return ontology.ErrNegativeQuantity
		}

		if threshold, set := params.RestockThreshold.Get(); set && threshold < 0 {
			return ontology.ErrNegativeThreshold
		}
	}

	for _, params := range books {
		if _, err := store.AddBook(params); err != nil {
			return err
		}
	}

	return nil
}

func optionalString(value string) ontology.Optional[string] {
	if value == "" {
		return ontology.None[string]()
	}

	return ontology.Some(value)
}
