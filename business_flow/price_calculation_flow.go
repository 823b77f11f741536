package businessflow

import (
	"context"
	"math"
	"strings"

	"github.com/hidrosim/hidrosim/app/dto"
	"github.com/hidrosim/hidrosim/repository"
	"github.com/hidrosim/hidrosim/utils"
)

// Unit labels reported on line items.
const (
	UnitPerMeter = "metre"
	UnitPerPiece = "adet"
)

// PriceCalculationFlow evaluates user selections against the active catalog.
type PriceCalculationFlow interface {
	Calculate(ctx context.Context, req *dto.CalculatePriceRequest, metadata *ClientMetadata) (*dto.CalculatePriceResponse, error)
}

// PriceCalculationFlowImpl implements PriceCalculationFlow.
type PriceCalculationFlowImpl struct {
	pricingRepo repository.PricingTableRepository
}

// NewPriceCalculationFlow creates a new price calculation flow.
func NewPriceCalculationFlow(pricingRepo repository.PricingTableRepository) PriceCalculationFlow {
	return &PriceCalculationFlowImpl{
		pricingRepo: pricingRepo,
	}
}

// Calculate prices every matched selection in catalog order. Selections
// for unknown values and the "YOK" sentinel are skipped without error.
func (f *PriceCalculationFlowImpl) Calculate(ctx context.Context, req *dto.CalculatePriceRequest, metadata *ClientMetadata) (*dto.CalculatePriceResponse, error) {
	if req == nil {
		return nil, NewBusinessError("INVALID_REQUEST", "request is required", nil)
	}
	if len(req.Selections) == 0 {
		return nil, NewBusinessError("VALIDATION_ERROR", "At least one selection is required", ErrSelectionsRequired)
	}

	table, err := f.pricingRepo.Current(ctx)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, NewBusinessError("NO_PRICING_TABLE", "No pricing table is loaded. Upload an Excel catalog first.", ErrNoPricingTable)
	}

	lengthMM := req.StrokeMM + req.AdditionalLengthMM

	items := make([]dto.PriceLineItem, 0, len(req.Selections))
	total := 0.0

	for i := range table.Columns {
		column := &table.Columns[i]

		value, ok := req.Selections[column.Name]
		if !ok || value == "" {
			continue
		}
		if strings.EqualFold(value, utils.NoneSelectionSentinel) {
			continue
		}

		option := column.FindOption(value)
		if option == nil {
			// Stale frontend state; not worth failing the whole quote.
			continue
		}

		unitPrice := option.Price
		if override, ok := req.ManualPrices[column.Name+":"+value]; ok {
			unitPrice = override
		}

		item := dto.PriceLineItem{
			Category:  column.DisplayName,
			Value:     value,
			UnitPrice: unitPrice,
			Unit:      UnitPerPiece,
			Discount:  option.Discount,
		}

		preDiscount := unitPrice
		if column.IsMeterBased && lengthMM > 0 {
			offsetMM := column.FormulaAddMM
			if option.OffsetMM > 0 {
				offsetMM = option.OffsetMM
			}
			lengthM := (lengthMM + float64(offsetMM)) / 1000.0
			preDiscount = unitPrice * lengthM
			item.Unit = UnitPerMeter
			item.LengthM = &lengthM
		}

		item.PriceBeforeDiscount = round2(preDiscount)
		item.Price = round2(preDiscount * (1 - option.Discount/100))

		total += item.Price
		items = append(items, item)
	}

	return &dto.CalculatePriceResponse{
		Success:  true,
		Items:    items,
		Total:    round2(total),
		StrokeMM: req.StrokeMM,
		Currency: utils.TRYCurrency,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
