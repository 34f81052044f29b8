// Package config holds the decoder's immutable configuration. Unlike the
// module-level mutable globals common in reference OpenLR implementations,
// every decode call takes a Config value explicitly; nothing here is
// process-wide state.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"openlr/pkg/model"
)

// Config holds every recognized decoder option from the external interface
// table. Zero-value weights are normalized away in Normalize.
type Config struct {
	SearchRadiusMeters float64 `mapstructure:"search_radius"`
	GeoWeight          float64 `mapstructure:"geo_weight"`
	FRCWeight          float64 `mapstructure:"frc_weight"`
	FOWWeight          float64 `mapstructure:"fow_weight"`
	BearWeight         float64 `mapstructure:"bear_weight"`
	MinScore           float64 `mapstructure:"min_score"`
	MaxDNPDeviationRel float64 `mapstructure:"max_dnp_deviation_rel"`
	MaxDNPDeviationAbs float64 `mapstructure:"max_dnp_deviation_abs"`
	BearDistMeters     float64 `mapstructure:"bear_dist"`

	// ToleratedLFRC adds per-FRC slack to the LFRCNP ceiling used by the
	// router: effective ceiling = lfrcnp + ToleratedLFRC[lfrcnp].
	ToleratedLFRC map[model.FRC]int `mapstructure:"-"`
}

// Default returns the decoder's documented default configuration.
func Default() Config {
	return Config{
		SearchRadiusMeters: 100,
		GeoWeight:          0.25,
		FRCWeight:          0.25,
		FOWWeight:          0.25,
		BearWeight:         0.25,
		MinScore:           0.01,
		MaxDNPDeviationRel: 0.1,
		MaxDNPDeviationAbs: 20,
		BearDistMeters:     20,
		ToleratedLFRC:      map[model.FRC]int{},
	}
}

// Normalize returns a copy of c with weights normalized to sum to 1.0. If
// all four weights are zero, equal weights are substituted.
func (c Config) Normalize() Config {
	sum := c.GeoWeight + c.FRCWeight + c.FOWWeight + c.BearWeight
	if sum == 0 {
		c.GeoWeight, c.FRCWeight, c.FOWWeight, c.BearWeight = 0.25, 0.25, 0.25, 0.25
		return c
	}
	c.GeoWeight /= sum
	c.FRCWeight /= sum
	c.FOWWeight /= sum
	c.BearWeight /= sum
	return c
}

// EffectiveLFRCCeiling returns the FRC ceiling the router should enforce for
// an LRP pair with the given LFRCNP, after applying ToleratedLFRC slack.
func (c Config) EffectiveLFRCCeiling(lfrcnp model.FRC) model.FRC {
	slack := c.ToleratedLFRC[lfrcnp]
	ceiling := int(lfrcnp) + slack
	if ceiling > int(model.FRC7) {
		ceiling = int(model.FRC7)
	}
	if ceiling < int(model.FRC0) {
		ceiling = int(model.FRC0)
	}
	return model.FRC(ceiling)
}

// Load reads configuration from the given viper instance, overlaying it on
// Default(). Missing keys keep their default value.
func Load(v *viper.Viper) (Config, error) {
	cfg := Default()
	if v == nil {
		return cfg, nil
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal decoder config: %w", err)
	}
	return cfg, nil
}
