package models

import (
	"fmt"
	"sort"
	"strings"
)

// FieldAccessor extracts one form field as a display string for audit
// logging. The mapping is explicit and enumerated, so audit extraction
// must never go through reflection.
type FieldAccessor func(*AccommodationForm) string

var auditFields = map[string]FieldAccessor{
	"tenant_details.full_name":         func(f *AccommodationForm) string { return f.TenantDetails.FullName },
	"tenant_details.email":             func(f *AccommodationForm) string { return f.TenantDetails.Email },
	"tenant_details.telephone":         func(f *AccommodationForm) string { return f.TenantDetails.Telephone },
	"tenant_details.date_of_birth":     func(f *AccommodationForm) string { return f.TenantDetails.DateOfBirth },
	"tenant_details.employers_name":    func(f *AccommodationForm) string { return f.TenantDetails.EmployerName },
	"bank_details.bank_name":           func(f *AccommodationForm) string { return f.BankDetails.BankName },
	"bank_details.sort_code":           func(f *AccommodationForm) string { return f.BankDetails.SortCode },
	"employment.job_title":             func(f *AccommodationForm) string { return f.Employment.JobTitle },
	"employment.present_salary":        func(f *AccommodationForm) string { return fmt.Sprintf("%.2f", f.Employment.PresentSalary) },
	"passport_details.passport_number": func(f *AccommodationForm) string { return f.PassportDetails.PassportNumber },
	"current_living_arrangement.reason_leaving": func(f *AccommodationForm) string {
		return f.CurrentLivingArrangement.ReasonLeaving
	},
	"consent_and_declaration.print_name": func(f *AccommodationForm) string { return f.ConsentAndDeclaration.PrintName },
	"address_history.count": func(f *AccommodationForm) string {
		return fmt.Sprintf("%d", len(f.AddressHistory))
	},
}

// AuditField looks up a single field by its dotted path.
func AuditField(f *AccommodationForm, path string) (string, bool) {
	accessor, ok := auditFields[path]
	if !ok {
		return "", false
	}
	return accessor(f), true
}

// AuditSummary renders a stable "path=value" line of the audit fields,
// safe for log details.
func AuditSummary(f *AccommodationForm) string {
	paths := make([]string, 0, len(auditFields))
	for path := range auditFields {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	parts := make([]string, 0, len(paths))
	for _, path := range paths {
		parts = append(parts, path+"="+auditFields[path](f))
	}
	return strings.Join(parts, ", ")
}
