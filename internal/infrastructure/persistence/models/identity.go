package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/daana/backend/internal/domain/identity"
	"github.com/daana/backend/internal/domain/shared"
)

// verificationColumns flattens the OTP value object onto the account row.
type verificationColumns struct {
	Verified    bool       `gorm:"not null;default:false"`
	OTPCode     *string    `gorm:"type:varchar(10);column:otp_code"`
	OTPIssuedAt *time.Time `gorm:"column:otp_issued_at"`
}

func (v *verificationColumns) toDomain() identity.Verification {
	out := identity.Verification{Verified: v.Verified}
	if v.OTPCode != nil && v.OTPIssuedAt != nil {
		out.OTP = &identity.OTP{Code: *v.OTPCode, IssuedAt: *v.OTPIssuedAt}
	}
	return out
}

func (v *verificationColumns) fromDomain(d identity.Verification) {
	v.Verified = d.Verified
	v.OTPCode = nil
	v.OTPIssuedAt = nil
	if d.OTP != nil {
		code := d.OTP.Code
		issuedAt := d.OTP.IssuedAt
		v.OTPCode = &code
		v.OTPIssuedAt = &issuedAt
	}
}

// DonorModel is the persistence model for the Donor aggregate.
type DonorModel struct {
	AggregateModel
	Email           string               `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash    string               `gorm:"type:varchar(100);not null"`
	FirstName       string               `gorm:"type:varchar(100);not null"`
	LastName        string               `gorm:"type:varchar(100)"`
	ProfileImageURL string               `gorm:"type:text"`
	Status          identity.DonorStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Deleted         bool                 `gorm:"not null;default:false;index"`
	verificationColumns
}

// TableName returns the table name for GORM
func (DonorModel) TableName() string {
	return "donors"
}

// ToDomain converts the persistence model to a domain Donor aggregate.
func (m *DonorModel) ToDomain() *identity.Donor {
	d := &identity.Donor{
		Email:           m.Email,
		PasswordHash:    m.PasswordHash,
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		ProfileImageURL: m.ProfileImageURL,
		Status:          m.Status,
		Deleted:         m.Deleted,
		Verification:    m.verificationColumns.toDomain(),
	}
	m.PopulateAggregateRoot(&d.BaseAggregateRoot)
	return d
}

// FromDomain populates the persistence model from a domain Donor aggregate.
func (m *DonorModel) FromDomain(d *identity.Donor) {
	m.FromDomainAggregateRoot(d.BaseAggregateRoot)
	m.Email = d.Email
	m.PasswordHash = d.PasswordHash
	m.FirstName = d.FirstName
	m.LastName = d.LastName
	m.ProfileImageURL = d.ProfileImageURL
	m.Status = d.Status
	m.Deleted = d.Deleted
	m.verificationColumns.fromDomain(d.Verification)
}

// DonorModelFromDomain creates a new persistence model from a domain Donor aggregate.
func DonorModelFromDomain(d *identity.Donor) *DonorModel {
	m := &DonorModel{}
	m.FromDomain(d)
	return m
}

// CharityModel is the persistence model for the Charity aggregate.
type CharityModel struct {
	AggregateModel
	Email          string                 `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash   string                 `gorm:"type:varchar(100);not null"`
	CharityName    string                 `gorm:"type:varchar(200);not null"`
	RegisteredName string                 `gorm:"type:varchar(200)"`
	ExecutionType  identity.ExecutionType `gorm:"type:varchar(20);not null"`
	ContactNumber  string                 `gorm:"type:varchar(50)"`
	Address        string                 `gorm:"type:text"`
	Description    string                 `gorm:"type:text"`
	LogoURL        string                 `gorm:"type:text"`
	Status         identity.CharityStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
	Deleted        bool                   `gorm:"not null;default:false;index"`
	verificationColumns
	ProofDocuments []CharityProofDocumentModel `gorm:"foreignKey:CharityID;constraint:OnDelete:CASCADE"`
	BankDetail     *BankDetailModel            `gorm:"foreignKey:CharityID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (CharityModel) TableName() string {
	return "charities"
}

// ToDomain converts the persistence model to a domain Charity aggregate.
func (m *CharityModel) ToDomain() *identity.Charity {
	c := &identity.Charity{
		Email:          m.Email,
		PasswordHash:   m.PasswordHash,
		CharityName:    m.CharityName,
		RegisteredName: m.RegisteredName,
		ExecutionType:  m.ExecutionType,
		ContactNumber:  m.ContactNumber,
		Address:        m.Address,
		Description:    m.Description,
		LogoURL:        m.LogoURL,
		Status:         m.Status,
		Deleted:        m.Deleted,
		Verification:   m.verificationColumns.toDomain(),
	}
	m.PopulateAggregateRoot(&c.BaseAggregateRoot)

	if len(m.ProofDocuments) > 0 {
		c.ProofDocuments = make([]identity.ProofDocument, len(m.ProofDocuments))
		for i, doc := range m.ProofDocuments {
			c.ProofDocuments[i] = *doc.ToDomain()
		}
	}
	if m.BankDetail != nil {
		c.BankDetail = m.BankDetail.ToDomain()
	}
	return c
}

// FromDomain populates the persistence model from a domain Charity aggregate.
func (m *CharityModel) FromDomain(c *identity.Charity) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Email = c.Email
	m.PasswordHash = c.PasswordHash
	m.CharityName = c.CharityName
	m.RegisteredName = c.RegisteredName
	m.ExecutionType = c.ExecutionType
	m.ContactNumber = c.ContactNumber
	m.Address = c.Address
	m.Description = c.Description
	m.LogoURL = c.LogoURL
	m.Status = c.Status
	m.Deleted = c.Deleted
	m.verificationColumns.fromDomain(c.Verification)

	m.ProofDocuments = make([]CharityProofDocumentModel, len(c.ProofDocuments))
	for i := range c.ProofDocuments {
		m.ProofDocuments[i].FromDomain(&c.ProofDocuments[i])
	}
	if c.BankDetail != nil {
		m.BankDetail = &BankDetailModel{}
		m.BankDetail.FromDomain(c.BankDetail)
	}
}

// CharityModelFromDomain creates a new persistence model from a domain Charity aggregate.
func CharityModelFromDomain(c *identity.Charity) *CharityModel {
	m := &CharityModel{}
	m.FromDomain(c)
	return m
}

// CharityProofDocumentModel is the persistence model for identity proof documents.
type CharityProofDocumentModel struct {
	BaseModel
	CharityID uuid.UUID             `gorm:"type:uuid;not null;index"`
	Type      identity.DocumentType `gorm:"type:varchar(50);not null"`
	FileName  string                `gorm:"type:varchar(255)"`
	Location  string                `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (CharityProofDocumentModel) TableName() string {
	return "charity_proof_documents"
}

// ToDomain converts the persistence model to a domain ProofDocument entity.
func (m *CharityProofDocumentModel) ToDomain() *identity.ProofDocument {
	return &identity.ProofDocument{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		CharityID: m.CharityID,
		Type:      m.Type,
		FileName:  m.FileName,
		Location:  m.Location,
	}
}

// FromDomain populates the persistence model from a domain ProofDocument entity.
func (m *CharityProofDocumentModel) FromDomain(d *identity.ProofDocument) {
	m.FromDomainBaseEntity(d.BaseEntity)
	m.CharityID = d.CharityID
	m.Type = d.Type
	m.FileName = d.FileName
	m.Location = d.Location
}

// BankDetailModel is the persistence model for charity payout accounts.
type BankDetailModel struct {
	BaseModel
	CharityID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	AccountHolderName string    `gorm:"type:varchar(200);not null"`
	AccountNumber     string    `gorm:"type:varchar(50);not null"`
	BankName          string    `gorm:"type:varchar(200);not null"`
	BranchName        string    `gorm:"type:varchar(200);not null"`
	SwiftCode         string    `gorm:"type:varchar(20)"`
}

// TableName returns the table name for GORM
func (BankDetailModel) TableName() string {
	return "bank_details"
}

// ToDomain converts the persistence model to a domain BankDetail entity.
func (m *BankDetailModel) ToDomain() *identity.BankDetail {
	return &identity.BankDetail{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		CharityID:         m.CharityID,
		AccountHolderName: m.AccountHolderName,
		AccountNumber:     m.AccountNumber,
		BankName:          m.BankName,
		BranchName:        m.BranchName,
		SwiftCode:         m.SwiftCode,
	}
}

// FromDomain populates the persistence model from a domain BankDetail entity.
func (m *BankDetailModel) FromDomain(d *identity.BankDetail) {
	m.FromDomainBaseEntity(d.BaseEntity)
	m.CharityID = d.CharityID
	m.AccountHolderName = d.AccountHolderName
	m.AccountNumber = d.AccountNumber
	m.BankName = d.BankName
	m.BranchName = d.BranchName
	m.SwiftCode = d.SwiftCode
}

// AdminModel is the persistence model for platform administrators.
type AdminModel struct {
	AggregateModel
	Email        string               `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash string               `gorm:"type:varchar(100);not null"`
	Name         string               `gorm:"type:varchar(200);not null"`
	AccountRole  string               `gorm:"type:varchar(20);not null;default:'ADMIN'"`
	Status       identity.AdminStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (AdminModel) TableName() string {
	return "admins"
}

// ToDomain converts the persistence model to a domain Admin aggregate.
func (m *AdminModel) ToDomain() *identity.Admin {
	a := &identity.Admin{
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Name:         m.Name,
		AccountRole:  m.AccountRole,
		Status:       m.Status,
	}
	m.PopulateAggregateRoot(&a.BaseAggregateRoot)
	return a
}

// FromDomain populates the persistence model from a domain Admin aggregate.
func (m *AdminModel) FromDomain(a *identity.Admin) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.Email = a.Email
	m.PasswordHash = a.PasswordHash
	m.Name = a.Name
	m.AccountRole = a.Role()
	m.Status = a.Status
}

// AdminModelFromDomain creates a new persistence model from a domain Admin aggregate.
func AdminModelFromDomain(a *identity.Admin) *AdminModel {
	m := &AdminModel{}
	m.FromDomain(a)
	return m
}
