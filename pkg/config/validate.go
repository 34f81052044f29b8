package config

import (
	"github.com/go-playground/validator/v10"

	"openlr/pkg/decodeerr"
	"openlr/pkg/model"
)

var validate = validator.New()

// ValidateLineReference enforces the InvalidReference invariant: at least
// two LRPs, finite in-range coordinates, and non-negative offsets.
func ValidateLineReference(ref model.LineLocationReference) error {
	if len(ref.Points) < 2 {
		return &decodeerr.InvalidReference{Reason: "fewer than two LRPs"}
	}
	if err := validate.Var(ref.PositiveOffset, "gte=0"); err != nil {
		return &decodeerr.InvalidReference{Reason: "negative positive offset"}
	}
	if err := validate.Var(ref.NegativeOffset, "gte=0"); err != nil {
		return &decodeerr.InvalidReference{Reason: "negative negative offset"}
	}
	for i, lrp := range ref.Points {
		if err := validate.Var(lrp.Coordinate[1], "gte=-90,lte=90"); err != nil {
			return &decodeerr.InvalidReference{Reason: "LRP latitude out of range"}
		}
		if err := validate.Var(lrp.Coordinate[0], "gte=-180,lte=180"); err != nil {
			return &decodeerr.InvalidReference{Reason: "LRP longitude out of range"}
		}
		if !lrp.FRC.Valid() {
			return &decodeerr.InvalidReference{Reason: "LRP FRC out of range"}
		}
		isLast := i == len(ref.Points)-1
		if isLast != lrp.Last {
			return &decodeerr.InvalidReference{Reason: "LRP.Last flag inconsistent with position"}
		}
		if !isLast && lrp.DNP < 0 {
			return &decodeerr.InvalidReference{Reason: "negative DNP"}
		}
	}
	return nil
}

// ValidatePointAlongLineReference additionally enforces that the offset
// fraction lies in [0, 1].
func ValidatePointAlongLineReference(ref model.PointAlongLineReference) error {
	if err := ValidateLineReference(ref.Line); err != nil {
		return err
	}
	if err := validate.Var(ref.PositiveFraction, "gte=0,lte=1"); err != nil {
		return &decodeerr.InvalidReference{Reason: "positive fraction must be in [0,1]"}
	}
	return nil
}
