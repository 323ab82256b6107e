package booking

import "strings"

// DurationRule selects how an activity validates a requested duration.
type DurationRule int

const (
	// DurationFree accepts any positive duration.
	DurationFree DurationRule = iota
	// DurationMultiple requires an exact positive multiple of the base
	// duration of the named package.
	DurationMultiple
	// DurationComposite requires the duration to be expressible as a
	// combination of the activity's allowed base durations.
	DurationComposite
)

// PackageBase maps a named package (matched by substring) to its base
// duration in minutes.
type PackageBase struct {
	Match   string
	BaseMin int
}

// ActivityConfig describes the validation and pricing shape of one activity.
type ActivityConfig struct {
	RequiresPackage bool
	RequiresVehicle bool
	DurationExempt  bool
	Rule            DurationRule
	PackageBases    []PackageBase
	CompositeBases  []int // largest first
	// PriceTables holds the fixed internal tables, keyed by variant then by
	// duration in minutes, in AED per unit. Nil means pricing comes from the
	// knowledge collaborator.
	PriceTables map[string]map[int]int64
}

// DomainConfig describes one independent booking domain.
type DomainConfig struct {
	Name                    string
	Timezone                string
	PickupOffered           bool
	PickupFeeAED            int64
	MeetingPoint            string
	PaymentMethods          []string
	Activities              map[string]ActivityConfig
	DefaultActivity         ActivityConfig
	Aliases                 map[string]string
	AttemptComputeOnConfirm bool
}

// ActivityConfigFor resolves the config for a (normalized) activity name,
// falling back to the domain default for activities the tables don't know.
func (d DomainConfig) ActivityConfigFor(activity string) ActivityConfig {
	if cfg, ok := d.Activities[activity]; ok {
		return cfg
	}
	return d.DefaultActivity
}

// NormalizeActivity lower-cases, trims, and resolves spelling aliases.
func (d DomainConfig) NormalizeActivity(activity string) string {
	s := strings.ToLower(strings.TrimSpace(activity))
	if canonical, ok := d.Aliases[s]; ok {
		return canonical
	}
	return s
}

// BaseForPackage finds the base duration for a named package by substring
// match, the way customers actually spell tour names. Returns 0 when the
// package is unknown.
func (a ActivityConfig) BaseForPackage(pkg string) int {
	if pkg == "" {
		return 0
	}
	cleaned := strings.ReplaceAll(strings.ToLower(pkg), "-", " ")
	for _, pb := range a.PackageBases {
		if strings.Contains(cleaned, pb.Match) {
			return pb.BaseMin
		}
	}
	return 0
}

const (
	cardVATMultiplier = "1.05"
	pickupFeeAED      = 350
)

var jetskiTourBases = []PackageBase{
	{Match: "burj khalifa", BaseMin: 20},
	{Match: "burj al arab", BaseMin: 30},
	{Match: "burj alarab", BaseMin: 30},
	{Match: "royal atlantis", BaseMin: 60},
	{Match: "atlantis", BaseMin: 90},
	{Match: "jbr", BaseMin: 120},
}

// DesertDomain is the dune buggy / quad / safari side of the operation.
// Buggy rides carry fixed internal price tables; quad and safari pricing
// lives in the knowledge base.
func DesertDomain(timezone string) DomainConfig {
	return DomainConfig{
		Name:           "desert",
		Timezone:       timezone,
		PickupOffered:  true,
		PickupFeeAED:   pickupFeeAED,
		MeetingPoint:   "Jetset Desert Camp, Dubai",
		PaymentMethods: []string{"cash", "card", "crypto"},
		Activities: map[string]ActivityConfig{
			"buggy": {
				RequiresVehicle: true,
				Rule:            DurationFree,
				PriceTables: map[string]map[int]int64{
					"2-seat": {30: 400, 60: 750, 90: 1150, 120: 1500},
					"4-seat": {30: 600, 60: 1150, 90: 1750, 120: 2300},
				},
			},
			"quad": {
				RequiresVehicle: true,
				Rule:            DurationFree,
			},
			"safari": {
				RequiresPackage: true,
				DurationExempt:  true,
			},
		},
		DefaultActivity: ActivityConfig{
			RequiresVehicle: true,
			Rule:            DurationFree,
		},
		Aliases: map[string]string{
			"dune buggy":    "buggy",
			"quad bike":     "quad",
			"desert safari": "safari",
		},
		AttemptComputeOnConfirm: true,
	}
}

// WaterDomain covers jet ski tours, flyboard, jet car, and custom combined
// routes. All water pricing comes from the knowledge base; pickup is not
// offered.
func WaterDomain(timezone string) DomainConfig {
	return DomainConfig{
		Name:           "water",
		Timezone:       timezone,
		PaymentMethods: []string{"cash", "card", "crypto"},
		Activities: map[string]ActivityConfig{
			"jetski": {
				RequiresPackage: true,
				Rule:            DurationMultiple,
				PackageBases:    jetskiTourBases,
			},
			"flyboard": {
				Rule: DurationFree,
			},
			"jetcar": {
				Rule: DurationFree,
			},
			"combo": {
				Rule:           DurationComposite,
				CompositeBases: []int{120, 90, 60, 30, 20},
			},
		},
		DefaultActivity: ActivityConfig{
			Rule: DurationFree,
		},
		Aliases: map[string]string{
			"jet ski":      "jetski",
			"jet-ski":      "jetski",
			"jet car":      "jetcar",
			"jet-car":      "jetcar",
			"custom route": "combo",
			"combined":     "combo",
		},
	}
}
