package businessflow

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/hidrosim/hidrosim/app/dto"
	"github.com/hidrosim/hidrosim/models"
	"github.com/hidrosim/hidrosim/repository"
	"github.com/hidrosim/hidrosim/utils"
	"github.com/xuri/excelize/v2"
)

// Source layout identifiers recorded on the pricing table.
const (
	FormatMultiSheet   = "multi_sheet"
	FormatMultiSection = "multi_section"
)

// Header keyword classes, matched against normalized header text.
var (
	priceKeywords    = []string{"fiyat", "price", "ucret"}
	offsetKeywords   = []string{"offset", "ilave"}
	discountKeywords = []string{"iskonto"}

	// Component vocabulary used to spot section header rows in
	// single-sheet catalogs.
	sectionVocabulary = []string{
		"boru", "mil", "silindir", "piston", "kapak",
		"burc", "flans", "kece", "somun", "rakor",
	}

	tubeFamilyTokens = []string{"boru", "tube"}
	rodFamilyTokens  = []string{"mil", "rod"}
)

// ExcelIngestFlow turns a raw spreadsheet into the active pricing table.
type ExcelIngestFlow interface {
	Ingest(ctx context.Context, fileBytes []byte, filename string, metadata *ClientMetadata) (*dto.UploadPricingResponse, error)
}

// ExcelIngestFlowImpl implements ExcelIngestFlow.
type ExcelIngestFlowImpl struct {
	tableFlow    PricingTableFlow
	settingsRepo repository.FormulaSettingsRepository
}

// NewExcelIngestFlow creates a new excel ingest flow.
func NewExcelIngestFlow(
	tableFlow PricingTableFlow,
	settingsRepo repository.FormulaSettingsRepository,
) ExcelIngestFlow {
	return &ExcelIngestFlowImpl{
		tableFlow:    tableFlow,
		settingsRepo: settingsRepo,
	}
}

// Ingest parses the workbook, detects its layout and fully replaces the
// active pricing table on success.
func (f *ExcelIngestFlowImpl) Ingest(ctx context.Context, fileBytes []byte, filename string, metadata *ClientMetadata) (*dto.UploadPricingResponse, error) {
	if len(fileBytes) == 0 {
		return nil, NewBusinessError("VALIDATION_ERROR", "Uploaded file is empty", ErrEmptyUpload)
	}
	lower := strings.ToLower(filename)
	if !strings.HasSuffix(lower, ".xlsx") && !strings.HasSuffix(lower, ".xls") {
		return nil, NewBusinessErrorf("VALIDATION_ERROR", "File %q is not an Excel workbook", ErrInvalidFileType, filename)
	}

	workbook, err := excelize.OpenReader(bytes.NewReader(fileBytes))
	if err != nil {
		return nil, NewBusinessErrorf("EXCEL_PARSE_FAILED", "File %q could not be opened as a spreadsheet", ErrExcelUnreadable, filename)
	}
	defer workbook.Close()

	settings, err := f.settingsRepo.Current(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = models.DefaultFormulaSettings()
	}

	columns, sourceFormat := detectLayout(workbook, settings)
	if len(columns) == 0 {
		return nil, NewBusinessErrorf("NO_CATEGORIES_FOUND", "No pricing categories could be detected in %q", ErrNoCategoriesFound, filename)
	}

	description := fmt.Sprintf("Excel catalog %q ingested (%d categories)", filename, len(columns))
	table, err := f.tableFlow.Replace(ctx, columns, sourceFormat, models.HistoryChangeIngest, description)
	if err != nil {
		return nil, err
	}

	meterBased := make([]string, 0)
	for i := range table.Columns {
		if table.Columns[i].IsMeterBased {
			meterBased = append(meterBased, table.Columns[i].Name)
		}
	}

	return &dto.UploadPricingResponse{
		Message:              "Excel catalog ingested successfully",
		Filename:             filename,
		CategoriesFound:      len(table.Columns),
		TotalOptions:         table.TotalOptions(),
		MeterBasedCategories: meterBased,
		Version:              table.Version,
	}, nil
}

// detectLayout tries the layout detectors in priority order and commits
// to the first one producing at least one category.
func detectLayout(workbook *excelize.File, settings *models.FormulaSettings) (models.PricingColumnList, string) {
	if columns := detectMultiSheet(workbook, settings); len(columns) > 0 {
		return columns, FormatMultiSheet
	}
	if columns := detectMultiSection(workbook, settings); len(columns) > 0 {
		return columns, FormatMultiSection
	}
	return nil, ""
}

// detectMultiSheet handles workbooks where every sheet is one category.
// The first row is the header row; the first header matching no keyword
// class is the value column, the first price-class header after it is
// the price column.
func detectMultiSheet(workbook *excelize.File, settings *models.FormulaSettings) models.PricingColumnList {
	sheets := workbook.GetSheetList()
	if len(sheets) < 2 {
		return nil
	}

	columns := models.PricingColumnList{}
	index := map[string]int{}

	for _, sheet := range sheets {
		rows, err := workbook.GetRows(sheet)
		if err != nil || len(rows) < 2 {
			continue
		}

		header := rows[0]
		valueCol := -1
		priceCol := -1
		offsetCol := -1
		discountCol := -1

		for j, cell := range header {
			norm := utils.Slugify(cell)
			if norm == "" {
				continue
			}
			switch {
			case containsAny(norm, priceKeywords):
				if priceCol < 0 && j > valueCol && valueCol >= 0 {
					priceCol = j
				}
			case containsAny(norm, offsetKeywords):
				if offsetCol < 0 {
					offsetCol = j
				}
			case containsAny(norm, discountKeywords):
				if discountCol < 0 {
					discountCol = j
				}
			default:
				if valueCol < 0 {
					valueCol = j
				}
			}
		}
		if valueCol < 0 {
			continue
		}
		if priceCol < 0 {
			// Positional fallback: first unclassified header right of
			// the value column.
			for j := valueCol + 1; j < len(header); j++ {
				norm := utils.Slugify(header[j])
				if containsAny(norm, priceKeywords) || containsAny(norm, offsetKeywords) || containsAny(norm, discountKeywords) {
					continue
				}
				priceCol = j
				break
			}
		}

		column := models.PricingColumn{
			Name:        utils.Slugify(sheet),
			DisplayName: sheet,
			Options:     []models.PricingOption{},
		}
		classifyFamily(&column, settings)

		seen := map[string]bool{}
		for _, row := range rows[1:] {
			value := strings.TrimSpace(cellAt(row, valueCol))
			if value == "" || seen[value] {
				continue
			}
			seen[value] = true

			option := models.PricingOption{
				Value: value,
				Label: value,
				Price: utils.ParsePrice(cellAt(row, priceCol)),
			}
			if discountCol >= 0 {
				option.Discount = utils.ParsePrice(cellAt(row, discountCol))
			}
			if offsetCol >= 0 {
				option.OffsetMM = int(utils.ParsePrice(cellAt(row, offsetCol)))
			}
			column.Options = append(column.Options, option)
		}

		upsertColumn(&columns, index, column)
	}

	return columns
}

// detectMultiSection handles single-sheet catalogs made of repeating
// blocks. Rows mentioning at least two component-vocabulary terms mark
// section headers; header cells are paired left-to-right with an
// optional adjacent price column.
func detectMultiSection(workbook *excelize.File, settings *models.FormulaSettings) models.PricingColumnList {
	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil || len(rows) == 0 {
		return nil
	}

	headerRows := []int{}
	for i, row := range rows {
		if sectionScore(row) >= 2 {
			headerRows = append(headerRows, i)
		}
	}
	if len(headerRows) == 0 {
		headerRows = []int{0}
	}

	columns := models.PricingColumnList{}
	index := map[string]int{}

	for s, headerRow := range headerRows {
		end := len(rows)
		if s+1 < len(headerRows) {
			end = headerRows[s+1]
		}

		header := rows[headerRow]
		for j := 0; j < len(header); j++ {
			display := strings.TrimSpace(header[j])
			norm := utils.Slugify(display)
			if norm == "" || containsAny(norm, priceKeywords) {
				continue
			}

			priceCol := -1
			if j+1 < len(header) && containsAny(utils.Slugify(header[j+1]), priceKeywords) {
				priceCol = j + 1
			}

			column := models.PricingColumn{
				Name:        norm,
				DisplayName: display,
				Options:     []models.PricingOption{},
			}
			classifyFamily(&column, settings)

			seen := map[string]bool{}
			for r := headerRow + 1; r < end; r++ {
				value := strings.TrimSpace(cellAt(rows[r], j))
				if value == "" || seen[value] {
					continue
				}
				seen[value] = true

				option := models.PricingOption{
					Value: value,
					Label: value,
				}
				if priceCol >= 0 {
					option.Price = utils.ParsePrice(cellAt(rows[r], priceCol))
				}
				column.Options = append(column.Options, option)
			}
			if len(column.Options) == 0 {
				continue
			}

			upsertColumn(&columns, index, column)

			if priceCol >= 0 {
				j = priceCol
			}
		}
	}

	return columns
}

// classifyFamily marks tube- and rod-family categories as meter based
// and assigns the current default stroke offset for the family.
func classifyFamily(column *models.PricingColumn, settings *models.FormulaSettings) {
	switch {
	case containsAny(column.Name, tubeFamilyTokens):
		column.IsMeterBased = true
		column.FormulaAddMM = settings.BoruOffsetMM
	case containsAny(column.Name, rodFamilyTokens):
		column.IsMeterBased = true
		column.FormulaAddMM = settings.MilOffsetMM
	}
}

// upsertColumn appends a category or, when its key was already parsed,
// overwrites the earlier one in place.
func upsertColumn(columns *models.PricingColumnList, index map[string]int, column models.PricingColumn) {
	if pos, ok := index[column.Name]; ok {
		(*columns)[pos] = column
		return
	}
	index[column.Name] = len(*columns)
	*columns = append(*columns, column)
}

// sectionScore counts how many vocabulary terms appear in the row.
func sectionScore(row []string) int {
	score := 0
	for _, term := range sectionVocabulary {
		for _, cell := range row {
			if cell == "" {
				continue
			}
			if strings.Contains(utils.Slugify(cell), term) {
				score++
				break
			}
		}
	}
	return score
}

func containsAny(norm string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(norm, keyword) {
			return true
		}
	}
	return false
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}
