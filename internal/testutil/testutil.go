package testutil

import (
	"fmt"
	"testing"
	"time"

	"accomform_backend/database"
	"accomform_backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens an isolated in-memory database and migrates the
// schema. Each call gets its own database, so parallel tests do not
// interfere.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// ValidForm returns a fully populated application that passes every
// validation rule, with consent given and all six declarations checked.
// Tests mutate the copy to produce the failure they need.
func ValidForm() *models.AccommodationForm {
	toDate := "2022-05-31"
	return &models.AccommodationForm{
		TenantDetails: models.TenantDetails{
			FullName:      "Jane Smith",
			DateOfBirth:   "1990-04-12",
			PlaceOfBirth:  "Manchester",
			Email:         "jane.smith@example.com",
			Telephone:     "+44 161 496 0000",
			EmployerName:  "Acme Logistics Ltd",
			Gender:        models.GenderFemale,
			NINumber:      "AB123456C",
			Car:           true,
			RightToLive:   true,
			RoomOccupancy: models.RoomJustYou,
		},
		BankDetails: models.BankDetails{
			BankName:  "Barclays",
			Postcode:  "M1 2AB",
			AccountNo: "12345678",
			SortCode:  "20-00-00",
		},
		AddressHistory: []models.AddressHistoryEntry{
			{
				Address:       "14 Deansgate Road, Manchester, M3 4EN",
				FromDate:      "2022-06-01",
				LandlordName:  "Peter Holmes",
				LandlordTel:   "+44 161 496 0001",
				LandlordEmail: "p.holmes@example.com",
			},
			{
				Address:       "7 Oxford Street, Manchester, M1 5QA",
				FromDate:      "2019-01-15",
				ToDate:        &toDate,
				LandlordName:  "Sarah Price",
				LandlordTel:   "+44 161 496 0002",
				LandlordEmail: "s.price@example.com",
			},
		},
		Contacts: models.Contacts{
			NextOfKin:     "Robert Smith",
			Relationship:  "Brother",
			Address:       "22 Victoria Avenue, Leeds, LS1 3AB",
			ContactNumber: "+44 113 496 0003",
		},
		MedicalDetails: models.MedicalDetails{
			GPPractice:      "Deansgate Medical Centre",
			DoctorName:      "Dr Amina Khan",
			DoctorAddress:   "3 Quay Street, Manchester, M3 3JE",
			DoctorTelephone: "+44 161 496 0004",
		},
		Employment: models.Employment{
			EmployerNameAddress: "Acme Logistics Ltd, 1 Trafford Park, Manchester",
			JobTitle:            "Operations Analyst",
			ManagerName:         "David Green",
			ManagerTel:          "+44 161 496 0005",
			ManagerEmail:        "d.green@acme.example.com",
			DateOfEmployment:    "2021-03-01",
			PresentSalary:       32500,
		},
		PassportDetails: models.PassportDetails{
			PassportNumber: "123456789",
			DateOfIssue:    "2019-07-20",
			PlaceOfIssue:   "Liverpool",
		},
		CurrentLivingArrangement: models.CurrentLivingArrangement{
			LandlordKnows:     true,
			ReasonLeaving:     "Relocating closer to my workplace in the city centre.",
			LandlordReference: true,
			LandlordContact: models.LandlordContact{
				Name:    "Peter Holmes",
				Address: "90 Chester Road, Manchester, M15 4FY",
				Tel:     "+44 161 496 0001",
				Email:   "p.holmes@example.com",
			},
		},
		OtherDetails: models.OtherDetails{
			Smoke: false,
		},
		OccupationAgreement: models.OccupationAgreement{
			SingleOccupancyAgree: true,
			HMOTermsAgree:        true,
			NoUnlistedOccupants:  true,
			NoSmoking:            true,
			KitchenCookingOnly:   true,
		},
		ConsentAndDeclaration: models.ConsentAndDeclaration{
			ConsentGiven: true,
			Signature:    "Jane Smith",
			Date:         "2026-08-01",
			PrintName:    "JANE SMITH",
			Declaration: models.Declaration{
				MainHome:              true,
				EnquiriesPermission:   true,
				CertifyNoJudgements:   true,
				CertifyNoHousingDebt:  true,
				CertifyNoLandlordDebt: true,
				CertifyNoAbuse:        true,
			},
			DeclarationSignature: "Jane Smith",
			DeclarationDate:      "2026-08-01",
			DeclarationPrintName: "JANE SMITH",
		},
	}
}

// FixedTime is a stable timestamp for deterministic assertions.
func FixedTime() time.Time {
	return time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC)
}
