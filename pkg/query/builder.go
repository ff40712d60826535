package query

import (
	"strings"
	"time"

	"github.com/tendant/simple-admin/pkg/domain"
)

// Companies translates a CompanyFilter into a predicate over the companies
// table. Absent filter fields contribute no conditions; an empty filter
// yields a match-all predicate.
func Companies(f domain.CompanyFilter) Predicate {
	var preds []Predicate
	if f.Name != nil {
		preds = append(preds, ILike{Field: "name", Value: *f.Name})
	}
	if f.CountryCode != nil {
		preds = append(preds, Equals{Field: "country_code", Value: strings.ToUpper(strings.TrimSpace(*f.CountryCode))})
	}
	if f.Status != nil {
		preds = append(preds, Equals{Field: "status", Value: string(*f.Status)})
	}
	if f.CreatedFrom != nil || f.CreatedTo != nil {
		preds = append(preds, timeRange("created_at", f.CreatedFrom, f.CreatedTo))
	}
	if f.UpdatedFrom != nil || f.UpdatedTo != nil {
		preds = append(preds, timeRange("updated_at", f.UpdatedFrom, f.UpdatedTo))
	}
	return And{Preds: preds}
}

// Users translates a UserFilter into a predicate over the users table.
// Name matches either first or last name.
func Users(f domain.UserFilter) Predicate {
	var preds []Predicate
	if f.CompanyID != nil {
		preds = append(preds, Equals{Field: "company_id", Value: *f.CompanyID})
	}
	if f.Name != nil {
		preds = append(preds, Or{Preds: []Predicate{
			ILike{Field: "first_name", Value: *f.Name},
			ILike{Field: "last_name", Value: *f.Name},
		}})
	}
	if f.Email != nil {
		preds = append(preds, ILike{Field: "email", Value: *f.Email})
	}
	if f.SSN != nil {
		preds = append(preds, ILike{Field: "ssn", Value: *f.SSN})
	}
	if f.DateOfBirth != nil {
		preds = append(preds, Equals{Field: "date_of_birth", Value: *f.DateOfBirth})
	}
	if f.Status != nil {
		preds = append(preds, Equals{Field: "status", Value: string(*f.Status)})
	}
	if len(f.Functions) > 0 {
		values := make([]string, len(f.Functions))
		for i, fn := range f.Functions {
			values[i] = string(fn)
		}
		preds = append(preds, Overlaps{Field: "functions", Values: values})
	}
	return And{Preds: preds}
}

func timeRange(field string, from, to *time.Time) Predicate {
	r := Range{Field: field}
	if from != nil {
		r.From = *from
	}
	if to != nil {
		r.To = *to
	}
	return r
}
