package analysis

// Every tuned threshold in the engine lives here so changes are auditable
// in one place. The values are heuristics, not clinically validated.

// ACWR windows and classification bands.
const (
	ACWRAcuteWindowDays   = 7
	ACWRChronicWindowDays = 28
	ACWRMinDays           = 28 // distinct load days required before any ratio is reported
	ACWRFullDataDays      = 42 // days of data at which confidence reaches 1.0

	// Band boundaries, inclusive on the lower side of each band:
	// < 0.8 detraining, [0.8, 1.3] optimal, (1.3, 1.5] caution, > 1.5 high-risk.
	ACWRDetrainingBelow = 0.8
	ACWROptimalMax      = 1.3
	ACWRCautionMax      = 1.5
)

// Banister TRIMP coefficients (gender-neutral).
const (
	TRIMPWeightingFactor = 0.64
	TRIMPExponent        = 1.92
)

// CTL/ATL exponential smoothing time constants, in days.
const (
	CTLTimeConstantDays = 42
	ATLTimeConstantDays = 7
)

// Physiology estimation (Tanaka max-HR formula).
const (
	TanakaBase        = 208.0
	TanakaAgeFactor   = 0.7
	DefaultMaxHR      = 185.0
	DefaultRestingHR  = 60.0
	MinValidHeartrate = 25.0
	MaxValidHeartrate = 230.0
)

// Weather pace-adjustment model, all penalties in seconds per kilometer.
const (
	HeatThresholdC       = 20.0
	HeatPenaltyPerC      = 2.5
	ColdThresholdC       = 5.0
	ColdPenaltyPerC      = 1.5
	HumidityThresholdPct = 60.0
	HumidityPenaltyPer10 = 1.5
	WindCoolingThreshold = 15.0 // km/h above which wind starts offsetting heat
	WindCoolingPerKmh    = 0.3
	PaceAdjustmentFloor  = 0.8 // adjusted pace never drops below 0.8x original
)

// PSI heart-rate strain bands, expressed as fraction of heart-rate reserve.
const (
	PSIReserveBand1 = 0.30
	PSIReserveBand2 = 0.50
	PSIReserveBand3 = 0.70
	PSIReserveBand4 = 0.85
	PSIReserveBand5 = 0.95

	PSIDurationBonusMinutes = 60.0 // efforts longer than this at >60% reserve earn a bonus
	PSIDurationBonusReserve = 0.60
	PSIDurationBonus        = 0.5
)

// PSI strain-level bands over the 0-10 composite score.
const (
	PSIMinimalMax  = 1.5
	PSILowMax      = 3.5
	PSIModerateMax = 5.5
	PSIHighMax     = 7.5
)

// Pacing analyzer gates.
const (
	PacingMinDistanceMeters = 5000.0
	PacingMaxDistanceMeters = 25000.0
	NegativeSplitMinRuns    = 5
	FatigueProfileMinRuns   = 8

	// Riegel endurance exponent used when scaling a performance
	// from one distance to another.
	RiegelExponent = 1.06
)

// Injury risk assessment.
const (
	InjuryWindowDays     = 90
	InjuryMinRuns        = 10
	InjuryFactorDecay    = 0.8 // descending weight per rank when combining factor scores
	InjuryMinConfidence  = 0.3
	InjuryFullDataRuns   = 30

	RiskCriticalMin = 70.0
	RiskHighMin     = 50.0
	RiskModerateMin = 25.0

	OvertrainingPoints    = 8
	NonFunctionalPoints   = 6
	FunctionalPoints      = 3
)

// Race prediction.
const (
	PredictionMinRuns      = 10
	PredictionFullDataRuns = 15
	PredictionSampleSize   = 10 // nearest-distance runs considered
)

// Standard race distances in meters.
const (
	Distance5K       = 5000.0
	Distance10K      = 10000.0
	DistanceHalfMara = 21097.5
	DistanceMarathon = 42195.0
)
