package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"
	"unicode"

	"accomform_backend/internal/models"

	"github.com/jung-kurt/gofpdf"
)

// DocumentRenderer converts a completed form into a PDF summary and a
// deterministic filename. Pure from the workflow's perspective.
type DocumentRenderer interface {
	Filename(form *models.AccommodationForm, at time.Time) string
	Render(form *models.AccommodationForm, submissionID string, at time.Time) ([]byte, error)
}

// PDFService renders the application summary with gofpdf.
type PDFService struct{}

func NewPDFService() *PDFService {
	return &PDFService{}
}

// Filename produces {First}_{Last}_Application_Form_{DDMMYYYYHHmm}.pdf.
// Name tokens are cleaned to alphanumerics; the timestamp is taken from
// the caller so the result is deterministic for fixed inputs.
func (s *PDFService) Filename(form *models.AccommodationForm, at time.Time) string {
	tokens := strings.Fields(form.TenantDetails.FullName)
	first, last := "Unknown", "Unknown"
	if len(tokens) > 0 {
		first = cleanNameToken(tokens[0])
		last = cleanNameToken(tokens[len(tokens)-1])
	}
	return fmt.Sprintf("%s_%s_Application_Form_%s.pdf", first, last, at.UTC().Format("020120061504"))
}

func cleanNameToken(token string) string {
	var b strings.Builder
	for _, r := range token {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "Unknown"
	}
	return b.String()
}

// Render builds the PDF. All twelve sections, one label/value row per
// field, matching the paper form's order.
func (s *PDFService) Render(form *models.AccommodationForm, submissionID string, at time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 25, 20)
	pdf.SetAutoPageBreak(true, 25)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 122, 204)
	pdf.CellFormat(0, 10, "Accommodation Application Form", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetTextColor(0, 0, 0)
	writeRow := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(60, 6, label, "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(110, 6, value, "1", "L", false)
	}
	writeHeader := func(title string) {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetFillColor(240, 240, 240)
		pdf.CellFormat(0, 8, title, "", 1, "L", true, 0, "")
		pdf.Ln(1)
	}
	yesNo := func(v bool) string {
		if v {
			return "Yes"
		}
		return "No"
	}

	writeRow("Submission ID:", submissionID)
	writeRow("Generated:", at.UTC().Format("2006-01-02 15:04:05 UTC"))
	if form.ClientIP != "" {
		writeRow("Client IP:", form.ClientIP)
	}

	tenant := form.TenantDetails
	writeHeader("Tenant Details")
	writeRow("Full Name", tenant.FullName)
	writeRow("Date of Birth", tenant.DateOfBirth)
	writeRow("Place of Birth", tenant.PlaceOfBirth)
	writeRow("Email", tenant.Email)
	writeRow("Telephone", tenant.Telephone)
	writeRow("Employer", tenant.EmployerName)
	writeRow("Gender", string(tenant.Gender))
	writeRow("NI Number", tenant.NINumber)
	writeRow("Car", yesNo(tenant.Car))
	writeRow("Bicycle", yesNo(tenant.Bicycle))
	writeRow("Right to live in UK", yesNo(tenant.RightToLive))
	writeRow("Room Occupancy", string(tenant.RoomOccupancy))
	if tenant.OtherNamesHas {
		writeRow("Other Names", tenant.OtherNamesDetails)
	}
	if tenant.MedicalConditionHas {
		writeRow("Medical Condition", tenant.MedicalConditionDetails)
	}

	bank := form.BankDetails
	writeHeader("Bank Details")
	writeRow("Bank Name", bank.BankName)
	writeRow("Postcode", bank.Postcode)
	writeRow("Account Number", bank.AccountNo)
	writeRow("Sort Code", bank.SortCode)

	writeHeader("Address History")
	for i, entry := range form.AddressHistory {
		to := "present"
		if entry.ToDate != nil {
			to = *entry.ToDate
		}
		writeRow(fmt.Sprintf("Address %d", i+1), entry.Address)
		writeRow("Period", fmt.Sprintf("%s to %s", entry.FromDate, to))
		writeRow("Landlord", fmt.Sprintf("%s, %s, %s", entry.LandlordName, entry.LandlordTel, entry.LandlordEmail))
	}

	contacts := form.Contacts
	writeHeader("Contacts / Next of Kin")
	writeRow("Next of Kin", contacts.NextOfKin)
	writeRow("Relationship", contacts.Relationship)
	writeRow("Address", contacts.Address)
	writeRow("Contact Number", contacts.ContactNumber)

	medical := form.MedicalDetails
	writeHeader("Medical Details")
	writeRow("GP Practice", medical.GPPractice)
	writeRow("Doctor", medical.DoctorName)
	writeRow("Doctor Address", medical.DoctorAddress)
	writeRow("Doctor Telephone", medical.DoctorTelephone)

	employment := form.Employment
	writeHeader("Employment")
	writeRow("Employer", employment.EmployerNameAddress)
	writeRow("Job Title", employment.JobTitle)
	writeRow("Manager", fmt.Sprintf("%s, %s, %s", employment.ManagerName, employment.ManagerTel, employment.ManagerEmail))
	writeRow("Employed Since", employment.DateOfEmployment)
	writeRow("Present Salary", fmt.Sprintf("%.2f", employment.PresentSalary))
	if form.EmploymentChange != "" {
		writeRow("Expected Change", form.EmploymentChange)
	}

	passport := form.PassportDetails
	writeHeader("Passport Details")
	writeRow("Passport Number", passport.PassportNumber)
	writeRow("Date of Issue", passport.DateOfIssue)
	writeRow("Place of Issue", passport.PlaceOfIssue)

	living := form.CurrentLivingArrangement
	writeHeader("Current Living Arrangement")
	writeRow("Landlord Knows", yesNo(living.LandlordKnows))
	if living.NoticeEndDate != nil {
		writeRow("Notice End Date", *living.NoticeEndDate)
	}
	writeRow("Reason for Leaving", living.ReasonLeaving)
	writeRow("Landlord Reference", yesNo(living.LandlordReference))
	writeRow("Landlord Contact", fmt.Sprintf("%s, %s, %s, %s",
		living.LandlordContact.Name, living.LandlordContact.Address,
		living.LandlordContact.Tel, living.LandlordContact.Email))

	other := form.OtherDetails
	writeHeader("Other Details")
	writeRow("Pets", yesNo(other.PetsHas))
	if other.PetsHas {
		writeRow("Pets Details", other.PetsDetails)
	}
	writeRow("Smoker", yesNo(other.Smoke))
	writeRow("Co-living", yesNo(other.ColivingHas))
	if other.ColivingHas {
		writeRow("Co-living Details", other.ColivingDetails)
	}

	agreement := form.OccupationAgreement
	writeHeader("Occupation Agreement")
	writeRow("Single Occupancy", yesNo(agreement.SingleOccupancyAgree))
	writeRow("HMO Terms", yesNo(agreement.HMOTermsAgree))
	writeRow("No Unlisted Occupants", yesNo(agreement.NoUnlistedOccupants))
	writeRow("No Smoking", yesNo(agreement.NoSmoking))
	writeRow("Kitchen Cooking Only", yesNo(agreement.KitchenCookingOnly))

	consent := form.ConsentAndDeclaration
	writeHeader("Consent & Declaration")
	writeRow("Consent Given", yesNo(consent.ConsentGiven))
	writeRow("Signature", consent.Signature)
	writeRow("Date", consent.Date)
	writeRow("Print Name", consent.PrintName)
	declaration := consent.Declaration
	writeRow("Main Home", yesNo(declaration.MainHome))
	writeRow("Enquiries Permission", yesNo(declaration.EnquiriesPermission))
	writeRow("No Judgements", yesNo(declaration.CertifyNoJudgements))
	writeRow("No Housing Debt", yesNo(declaration.CertifyNoHousingDebt))
	writeRow("No Landlord Debt", yesNo(declaration.CertifyNoLandlordDebt))
	writeRow("No Abuse", yesNo(declaration.CertifyNoAbuse))
	writeRow("Declaration Signature", consent.DeclarationSignature)
	writeRow("Declaration Date", consent.DeclarationDate)
	writeRow("Declaration Print Name", consent.DeclarationPrintName)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
