package businessflow

import (
	"context"
	"math"

	"github.com/hidrosim/hidrosim/app/dto"
	"github.com/hidrosim/hidrosim/config"
	"github.com/hidrosim/hidrosim/models"
	"github.com/hidrosim/hidrosim/utils"
)

// Material cost multipliers relative to steel.
var materialMultipliers = map[models.MaterialType]float64{
	models.MaterialSteel:     1.0,
	models.MaterialStainless: 2.8,
	models.MaterialAluminum:  1.5,
}

// Cylinder-type machining multipliers.
var cylinderTypeMultipliers = map[models.CylinderType]float64{
	models.CylinderSingleActing: 0.85,
	models.CylinderDoubleActing: 1.0,
	models.CylinderTelescopic:   2.5,
}

// Mounting hardware costs (TL).
var mountingCosts = map[models.MountingType]float64{
	models.MountingFlange:   450,
	models.MountingClevis:   380,
	models.MountingTrunnion: 520,
	models.MountingFoot:     350,
	models.MountingTieRod:   280,
}

// CostBreakdownFlow estimates manufacturing cost from cylinder geometry.
type CostBreakdownFlow interface {
	Estimate(ctx context.Context, req *dto.ManualCostRequest, metadata *ClientMetadata) (*dto.ManualCostResponse, error)
	Parameters(ctx context.Context) (*dto.PricingParametersResponse, error)
}

// CostBreakdownFlowImpl implements CostBreakdownFlow.
type CostBreakdownFlowImpl struct {
	pricingConfig *config.PricingConfig
}

// NewCostBreakdownFlow creates a new cost breakdown flow.
func NewCostBreakdownFlow(pricingConfig *config.PricingConfig) CostBreakdownFlow {
	return &CostBreakdownFlowImpl{
		pricingConfig: pricingConfig,
	}
}

// Estimate computes a weight-based cost breakdown for the given
// geometry. Dimensions are millimeters, pressure is bar, weights kg.
func (f *CostBreakdownFlowImpl) Estimate(ctx context.Context, req *dto.ManualCostRequest, metadata *ClientMetadata) (*dto.ManualCostResponse, error) {
	if req == nil {
		return nil, NewBusinessError("INVALID_REQUEST", "request is required", nil)
	}

	material := models.MaterialType(req.Material)
	if !material.Valid() {
		return nil, NewBusinessError("VALIDATION_ERROR", "invalid material type", ErrInvalidMaterial)
	}
	cylinderType := models.CylinderType(req.CylinderType)
	if !cylinderType.Valid() {
		return nil, NewBusinessError("VALIDATION_ERROR", "invalid cylinder type", ErrInvalidCylinderType)
	}
	mounting := models.MountingType(req.Mounting)
	if !mounting.Valid() {
		return nil, NewBusinessError("VALIDATION_ERROR", "invalid mounting type", ErrInvalidMounting)
	}
	if req.RodDiameter >= req.BoreDiameter {
		return nil, NewBusinessError("VALIDATION_ERROR", "rod diameter must be smaller than bore diameter", ErrRodExceedsBore)
	}

	dims := models.CylinderDimensions{
		BoreDiameter:    req.BoreDiameter,
		RodDiameter:     req.RodDiameter,
		StrokeLength:    req.StrokeLength,
		WallThickness:   req.WallThickness,
		WorkingPressure: req.WorkingPressure,
	}

	cfg := f.pricingConfig
	wallThickness := dims.WallThickness
	if wallThickness == 0 {
		// t = P*D/(2*S) + safety, S = 250 MPa allowable stress for steel.
		pressure := dims.WorkingPressure
		if pressure == 0 {
			pressure = 160
		}
		pressureMPa := pressure / 10
		minThickness := (pressureMPa*dims.BoreDiameter)/(2*250) + 3
		wallThickness = math.Max(minThickness, 6)
	}

	matMult := materialMultipliers[material]
	steelPrice := cfg.SteelPricePerKG
	density := f.materialDensity(material)

	tubeCost := tubeWeight(dims.BoreDiameter, dims.StrokeLength, wallThickness, density) * steelPrice * matMult
	rodCost := rodWeight(dims.RodDiameter, dims.StrokeLength, density) * steelPrice * matMult
	pistonCost := pistonWeight(dims.BoreDiameter, dims.RodDiameter, density) * steelPrice * matMult
	endCapsCost := endCapsWeight(dims.BoreDiameter, wallThickness, density) * steelPrice * matMult

	chromePlatingCost := chromePlatingArea(dims.RodDiameter, dims.StrokeLength) * cfg.ChromePlatingPerCM2
	sealCost := sealKitCost(cfg.SealKitBasePrice, dims.BoreDiameter, cylinderType)
	machiningCost := machiningHours(dims, cylinderType) * cfg.LaborCostPerHour
	assemblyCost := 1.5 * cfg.LaborCostPerHour
	mountingCost := mountingCosts[mounting]

	subtotal := tubeCost + rodCost + pistonCost + sealCost + endCapsCost +
		chromePlatingCost + machiningCost + assemblyCost + mountingCost
	total := subtotal * (1 + cfg.ProfitMargin)

	return &dto.ManualCostResponse{
		Message: "Cost estimate calculated",
		Breakdown: dto.CostBreakdownItem{
			TubeCost:          round2(tubeCost),
			RodCost:           round2(rodCost),
			PistonCost:        round2(pistonCost),
			SealCost:          round2(sealCost),
			EndCapsCost:       round2(endCapsCost),
			ChromePlatingCost: round2(chromePlatingCost),
			MachiningCost:     round2(machiningCost),
			AssemblyCost:      round2(assemblyCost),
			MountingCost:      round2(mountingCost),
		},
		Subtotal: round2(subtotal),
		Total:    round2(total),
		Currency: utils.TRYCurrency,
	}, nil
}

// Parameters exposes the rates the engine runs with.
func (f *CostBreakdownFlowImpl) Parameters(ctx context.Context) (*dto.PricingParametersResponse, error) {
	cfg := f.pricingConfig

	matMults := make(map[string]float64, len(materialMultipliers))
	for k, v := range materialMultipliers {
		matMults[string(k)] = v
	}
	typeFactors := make(map[string]float64, len(cylinderTypeMultipliers))
	for k, v := range cylinderTypeMultipliers {
		typeFactors[string(k)] = v
	}
	mountings := make(map[string]float64, len(mountingCosts))
	for k, v := range mountingCosts {
		mountings[string(k)] = v
	}

	return &dto.PricingParametersResponse{
		SteelPricePerKG:     cfg.SteelPricePerKG,
		LaborCostPerHour:    cfg.LaborCostPerHour,
		ChromePlatingPerCM2: cfg.ChromePlatingPerCM2,
		SealKitBasePrice:    cfg.SealKitBasePrice,
		ProfitMargin:        cfg.ProfitMargin,
		MaterialMultipliers: matMults,
		CylinderTypeFactors: typeFactors,
		MountingCosts:       mountings,
	}, nil
}

func (f *CostBreakdownFlowImpl) materialDensity(material models.MaterialType) float64 {
	switch material {
	case models.MaterialStainless:
		return f.pricingConfig.StainlessDensity
	case models.MaterialAluminum:
		return f.pricingConfig.AluminumDensity
	default:
		return f.pricingConfig.SteelDensity
	}
}

// tubeWeight returns the barrel weight in kg. Stroke plus 100mm cap
// allowance, dimensions converted mm to cm.
func tubeWeight(boreDiameter, strokeLength, wallThickness, density float64) float64 {
	innerRadius := boreDiameter / 20
	outerRadius := (boreDiameter + 2*wallThickness) / 20
	length := (strokeLength + 100) / 10

	volume := math.Pi * (outerRadius*outerRadius - innerRadius*innerRadius) * length
	return volume * density / 1000
}

// rodWeight returns the piston rod weight in kg. Stroke plus 150mm
// connection allowance.
func rodWeight(rodDiameter, strokeLength, density float64) float64 {
	radius := rodDiameter / 20
	length := (strokeLength + 150) / 10

	volume := math.Pi * radius * radius * length
	return volume * density / 1000
}

// pistonWeight returns the piston weight in kg. 2mm seal groove
// allowance on the outer diameter, thickness roughly half the bore.
func pistonWeight(boreDiameter, rodDiameter, density float64) float64 {
	outerRadius := (boreDiameter - 2) / 20
	innerRadius := rodDiameter / 20
	thickness := boreDiameter / 20

	volume := math.Pi * (outerRadius*outerRadius - innerRadius*innerRadius) * thickness
	return volume * density / 1000
}

// endCapsWeight returns the weight of both end caps in kg.
func endCapsWeight(boreDiameter, wallThickness, density float64) float64 {
	outerRadius := (boreDiameter + 2*wallThickness) / 20
	thickness := wallThickness * 1.5 / 10

	volume := 2 * math.Pi * outerRadius * outerRadius * thickness
	return volume * density / 1000
}

// chromePlatingArea returns the plated rod surface in cm².
func chromePlatingArea(rodDiameter, strokeLength float64) float64 {
	circumference := math.Pi * rodDiameter / 10
	length := (strokeLength + 50) / 10
	return circumference * length
}

// machiningHours estimates machining time from geometry and type.
func machiningHours(dims models.CylinderDimensions, cylinderType models.CylinderType) float64 {
	baseHours := 2.0
	sizeFactor := dims.BoreDiameter/50 + dims.StrokeLength/300 + dims.RodDiameter/30
	return baseHours * sizeFactor * cylinderTypeMultipliers[cylinderType]
}

// sealKitCost scales the base kit price by bore size; double acting and
// telescopic cylinders need extra seals.
func sealKitCost(basePrice, boreDiameter float64, cylinderType models.CylinderType) float64 {
	sizeFactor := 1 + (boreDiameter-40)/100
	typeFactor := 1.3
	if cylinderType == models.CylinderSingleActing {
		typeFactor = 1.0
	}
	return basePrice * sizeFactor * typeFactor
}
