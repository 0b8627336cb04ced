package engine

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance. Struct tags cover enum and
// range checks; numeric sanity (finite, non-negative) is checked
// explicitly because float tags cannot express NaN/Inf.
var validate = validator.New(validator.WithRequiredStructEnabled())

// checkActivityData enforces the core input invariant: activity data
// must be a finite, non-negative number before entering a calculator.
// Negative or non-numeric input is a validation failure, not a silent
// zero.
func checkActivityData(field string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return &ValidationError{Field: field, Message: "activity data must be a finite number"}
	}
	if value < 0 {
		return &ValidationError{Field: field, Message: "activity data must not be negative"}
	}
	return nil
}

// wrapStructError converts a validator error into the engine's
// ValidationError, naming the first offending field.
func wrapStructError(prefix string, err error) error {
	if err == nil {
		return nil
	}
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		return &ValidationError{
			Field:   fmt.Sprintf("%s.%s", prefix, verrs[0].Field()),
			Message: fmt.Sprintf("failed %q constraint", verrs[0].Tag()),
		}
	}
	return &ValidationError{Field: prefix, Message: err.Error()}
}

// ValidateInput checks the whole calculation payload before any
// calculation is attempted. The first failure aborts the run; partial
// assessments are never calculated.
func ValidateInput(input CalculationInput) error {
	if input.Metadata.OrganizationName == "" {
		return &ValidationError{Field: "metadata.organizationName", Message: "organization name is required"}
	}

	if len(input.Scope1)+len(input.Scope2)+len(input.Scope3) == 0 {
		return &ValidationError{Field: "input", Message: "at least one activity entry is required"}
	}

	for i, e := range input.Scope1 {
		field := fmt.Sprintf("scope1[%d]", i)
		if err := wrapStructError(field, validate.Struct(e)); err != nil {
			return err
		}
		if err := checkActivityData(field+".activityData", e.ActivityData); err != nil {
			return err
		}
	}

	for i, e := range input.Scope2 {
		field := fmt.Sprintf("scope2[%d]", i)
		if err := wrapStructError(field, validate.Struct(e)); err != nil {
			return err
		}
		if err := checkActivityData(field+".activityData", e.ActivityData); err != nil {
			return err
		}
		if e.SupplierEmissionFactor != nil {
			if err := checkActivityData(field+".supplierEmissionFactor", *e.SupplierEmissionFactor); err != nil {
				return err
			}
		}
		if e.RenewableEnergyCertificates != nil {
			if err := checkActivityData(field+".renewableEnergyCertificates", *e.RenewableEnergyCertificates); err != nil {
				return err
			}
		}
	}

	for i, e := range input.Scope3 {
		field := fmt.Sprintf("scope3[%d]", i)
		if err := wrapStructError(field, validate.Struct(e)); err != nil {
			return err
		}
		if err := checkActivityData(field+".activityData", e.ActivityData); err != nil {
			return err
		}
	}

	return nil
}
