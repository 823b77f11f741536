// Package businessflow contains the core business logic and use cases for pricing workflows
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Pricing table errors
	ErrNoPricingTable     = errors.New("no pricing table is loaded")
	ErrCategoryNotFound   = errors.New("category not found in pricing table")
	ErrEmptyColumns       = errors.New("at least one pricing column is required")
	ErrOptionValueMissing = errors.New("option value is required")

	// Ingestion errors
	ErrExcelUnreadable    = errors.New("file could not be opened as a spreadsheet")
	ErrNoCategoriesFound  = errors.New("no pricing categories could be detected")
	ErrEmptyUpload        = errors.New("uploaded file is empty")
	ErrInvalidFileType    = errors.New("only .xlsx and .xls files are accepted")
	ErrFilenameRequired   = errors.New("filename is required")
	ErrSelectionsRequired = errors.New("selections are required")

	// Settings errors
	ErrNoSettingsFields = errors.New("at least one settings field must be provided")
	ErrOffsetNegative   = errors.New("offset must not be negative")

	// Cost engine errors
	ErrInvalidMaterial     = errors.New("invalid material type")
	ErrInvalidCylinderType = errors.New("invalid cylinder type")
	ErrInvalidMounting     = errors.New("invalid mounting type")
	ErrRodExceedsBore      = errors.New("rod diameter must be smaller than bore diameter")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewBusinessErrorf(code, message string, err error, args ...any) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: fmt.Sprintf(message, args...),
		Err:     err,
	}
}

func IsNoPricingTable(err error) bool {
	return errors.Is(err, ErrNoPricingTable)
}

func IsCategoryNotFound(err error) bool {
	return errors.Is(err, ErrCategoryNotFound)
}

func IsExcelUnreadable(err error) bool {
	return errors.Is(err, ErrExcelUnreadable)
}

func IsNoCategoriesFound(err error) bool {
	return errors.Is(err, ErrNoCategoriesFound)
}

func IsInvalidFileType(err error) bool {
	return errors.Is(err, ErrInvalidFileType)
}

