package models

import "time"

// The accommodation application form. Twelve independent sections,
// constructed client-side across the multi-step UI and submitted whole.
// Field rules live in the validator tags; the UK-specific formats
// (NI number, sort code, account number) are custom rules registered in
// internal/validator.

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type RoomOccupancy string

const (
	RoomJustYou           RoomOccupancy = "just_you"
	RoomYouAndSomeoneElse RoomOccupancy = "you_and_someone_else"
)

type TenantDetails struct {
	FullName      string        `json:"full_name" validate:"required,min=2,max=100"`
	DateOfBirth   string        `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	PlaceOfBirth  string        `json:"place_of_birth" validate:"required,min=2,max=100"`
	Email         string        `json:"email" validate:"required,email"`
	Telephone     string        `json:"telephone" validate:"required,uk_phone"`
	EmployerName  string        `json:"employers_name" validate:"required,min=2,max=100"`
	Gender        Gender        `json:"gender" validate:"required,oneof=male female other"`
	NINumber      string        `json:"ni_number" validate:"required,uk_ni_number"`
	Car           bool          `json:"car"`
	Bicycle       bool          `json:"bicycle"`
	RightToLive   bool          `json:"right_to_live_in_uk"`
	RoomOccupancy RoomOccupancy `json:"room_occupancy" validate:"required,oneof=just_you you_and_someone_else"`

	OtherNamesHas           bool   `json:"other_names_has"`
	OtherNamesDetails       string `json:"other_names_details,omitempty"`
	MedicalConditionHas     bool   `json:"medical_condition_has"`
	MedicalConditionDetails string `json:"medical_condition_details,omitempty"`
}

type BankDetails struct {
	BankName  string `json:"bank_name" validate:"required,min=2,max=100"`
	Postcode  string `json:"postcode" validate:"required,min=5,max=10"`
	AccountNo string `json:"account_no" validate:"required,uk_bank_account"`
	SortCode  string `json:"sort_code" validate:"required,uk_sort_code"`
}

// AddressHistoryEntry with a nil ToDate marks the current address.
type AddressHistoryEntry struct {
	Address       string  `json:"address" validate:"required,min=10,max=200"`
	FromDate      string  `json:"from_date" validate:"required,datetime=2006-01-02"`
	ToDate        *string `json:"to_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	LandlordName  string  `json:"landlord_name" validate:"required,min=2,max=100"`
	LandlordTel   string  `json:"landlord_tel" validate:"required,uk_phone"`
	LandlordEmail string  `json:"landlord_email" validate:"required,email"`
}

type Contacts struct {
	NextOfKin     string `json:"next_of_kin" validate:"required,min=2,max=100"`
	Relationship  string `json:"relationship" validate:"required,min=2,max=50"`
	Address       string `json:"address" validate:"required,min=10,max=200"`
	ContactNumber string `json:"contact_number" validate:"required,uk_phone"`
}

type MedicalDetails struct {
	GPPractice      string `json:"gp_practice" validate:"required,min=2,max=100"`
	DoctorName      string `json:"doctor_name" validate:"required,min=2,max=100"`
	DoctorAddress   string `json:"doctor_address" validate:"required,min=10,max=200"`
	DoctorTelephone string `json:"doctor_telephone" validate:"required,uk_phone"`
}

type Employment struct {
	EmployerNameAddress string  `json:"employer_name_address" validate:"required,min=10,max=200"`
	JobTitle            string  `json:"job_title" validate:"required,min=2,max=100"`
	ManagerName         string  `json:"manager_name" validate:"required,min=2,max=100"`
	ManagerTel          string  `json:"manager_tel" validate:"required,uk_phone"`
	ManagerEmail        string  `json:"manager_email" validate:"required,email"`
	DateOfEmployment    string  `json:"date_of_employment" validate:"required,datetime=2006-01-02"`
	PresentSalary       float64 `json:"present_salary" validate:"required,gt=0"`
}

type PassportDetails struct {
	PassportNumber string `json:"passport_number" validate:"required,min=6,max=15"`
	DateOfIssue    string `json:"date_of_issue" validate:"required,datetime=2006-01-02"`
	PlaceOfIssue   string `json:"place_of_issue" validate:"required,min=2,max=100"`
}

type LandlordContact struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Address string `json:"address" validate:"required,min=10,max=200"`
	Tel     string `json:"tel" validate:"required,uk_phone"`
	Email   string `json:"email" validate:"required,email"`
}

type CurrentLivingArrangement struct {
	LandlordKnows     bool            `json:"landlord_knows"`
	NoticeEndDate     *string         `json:"notice_end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ReasonLeaving     string          `json:"reason_leaving" validate:"required,min=10,max=500"`
	LandlordReference bool            `json:"landlord_reference"`
	LandlordContact   LandlordContact `json:"landlord_contact" validate:"required"`
}

type OtherDetails struct {
	PetsHas         bool   `json:"pets_has"`
	PetsDetails     string `json:"pets_details,omitempty"`
	Smoke           bool   `json:"smoke"`
	ColivingHas     bool   `json:"coliving_has"`
	ColivingDetails string `json:"coliving_details,omitempty"`
}

type OccupationAgreement struct {
	SingleOccupancyAgree bool `json:"single_occupancy_agree"`
	HMOTermsAgree        bool `json:"hmo_terms_agree"`
	NoUnlistedOccupants  bool `json:"no_unlisted_occupants"`
	NoSmoking            bool `json:"no_smoking"`
	KitchenCookingOnly   bool `json:"kitchen_cooking_only"`
}

// Declaration holds the six fixed yes/no legal attestations required
// before acceptance. All six must be true.
type Declaration struct {
	MainHome              bool `json:"main_home"`
	EnquiriesPermission   bool `json:"enquiries_permission"`
	CertifyNoJudgements   bool `json:"certify_no_judgements"`
	CertifyNoHousingDebt  bool `json:"certify_no_housing_debt"`
	CertifyNoLandlordDebt bool `json:"certify_no_landlord_debt"`
	CertifyNoAbuse        bool `json:"certify_no_abuse"`
}

type ConsentAndDeclaration struct {
	ConsentGiven         bool        `json:"consent_given"`
	Signature            string      `json:"signature" validate:"required"`
	Date                 string      `json:"date" validate:"required,datetime=2006-01-02"`
	PrintName            string      `json:"print_name" validate:"required,min=2,max=100"`
	Declaration          Declaration `json:"declaration"`
	DeclarationSignature string      `json:"declaration_signature" validate:"required"`
	DeclarationDate      string      `json:"declaration_date" validate:"required,datetime=2006-01-02"`
	DeclarationPrintName string      `json:"declaration_print_name" validate:"required,min=2,max=100"`
}

// AccommodationForm is the complete application payload.
type AccommodationForm struct {
	TenantDetails            TenantDetails            `json:"tenant_details" validate:"required"`
	BankDetails              BankDetails              `json:"bank_details" validate:"required"`
	AddressHistory           []AddressHistoryEntry    `json:"address_history" validate:"required,min=1,max=10,dive"`
	Contacts                 Contacts                 `json:"contacts" validate:"required"`
	MedicalDetails           MedicalDetails           `json:"medical_details" validate:"required"`
	Employment               Employment               `json:"employment" validate:"required"`
	EmploymentChange         string                   `json:"employment_change,omitempty"`
	PassportDetails          PassportDetails          `json:"passport_details" validate:"required"`
	CurrentLivingArrangement CurrentLivingArrangement `json:"current_living_arrangement" validate:"required"`
	OtherDetails             OtherDetails             `json:"other_details"`
	OccupationAgreement      OccupationAgreement      `json:"occupation_agreement"`
	ConsentAndDeclaration    ConsentAndDeclaration    `json:"consent_and_declaration" validate:"required"`

	// Metadata stamped server-side, never trusted from the client.
	ClientIP        string     `json:"client_ip,omitempty"`
	FormOpenedAt    *time.Time `json:"form_opened_at,omitempty"`
	FormSubmittedAt *time.Time `json:"form_submitted_at,omitempty"`
}

// DeclarationFailures returns the json names of every declaration field
// that is still unchecked, in schema order. Empty means all six hold.
func (f *AccommodationForm) DeclarationFailures() []string {
	d := f.ConsentAndDeclaration.Declaration
	var failed []string
	for _, item := range []struct {
		name string
		ok   bool
	}{
		{"main_home", d.MainHome},
		{"enquiries_permission", d.EnquiriesPermission},
		{"certify_no_judgements", d.CertifyNoJudgements},
		{"certify_no_housing_debt", d.CertifyNoHousingDebt},
		{"certify_no_landlord_debt", d.CertifyNoLandlordDebt},
		{"certify_no_abuse", d.CertifyNoAbuse},
	} {
		if !item.ok {
			failed = append(failed, item.name)
		}
	}
	return failed
}
