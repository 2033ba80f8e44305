package registration

// Form field identifiers. These are the wire names the client uses in
// SetField calls and the keys of the field error set.
const (
	FieldSalutation      = "salutation"
	FieldFirstName       = "firstName"
	FieldLastName        = "lastName"
	FieldGender          = "gender"
	FieldEmail           = "email"
	FieldConfirmEmail    = "confirmEmail"
	FieldMobileNumber    = "mobileNumber"
	FieldAddressLine1    = "addressLine1"
	FieldAddressLine2    = "addressLine2"
	FieldCity            = "city"
	FieldState           = "state"
	FieldCountry         = "country"
	FieldZipcode         = "zipcode"
	FieldOccupation      = "occupation"
	FieldAnnualIncome    = "annualIncome"
	FieldProofOfIdentity = "proofOfIdentity"
)

// Draft holds the in-progress form values. One per session, mutated
// field-by-field, reset wholesale on successful submit.
type Draft struct {
	Salutation      string `json:"salutation"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Gender          string `json:"gender"`
	Email           string `json:"email"`
	ConfirmEmail    string `json:"confirmEmail"`
	MobileNumber    string `json:"mobileNumber"`
	AddressLine1    string `json:"addressLine1"`
	AddressLine2    string `json:"addressLine2"`
	City            string `json:"city"`
	State           string `json:"state"`
	Country         string `json:"country"`
	Zipcode         string `json:"zipcode"`
	Occupation      string `json:"occupation"`
	AnnualIncome    string `json:"annualIncome"`
	ProofOfIdentity string `json:"proofOfIdentity"`
}

// field returns a pointer into the draft for a wire field name, nil for an
// unknown name.
func (d *Draft) field(name string) *string {
	switch name {
	case FieldSalutation:
		return &d.Salutation
	case FieldFirstName:
		return &d.FirstName
	case FieldLastName:
		return &d.LastName
	case FieldGender:
		return &d.Gender
	case FieldEmail:
		return &d.Email
	case FieldConfirmEmail:
		return &d.ConfirmEmail
	case FieldMobileNumber:
		return &d.MobileNumber
	case FieldAddressLine1:
		return &d.AddressLine1
	case FieldAddressLine2:
		return &d.AddressLine2
	case FieldCity:
		return &d.City
	case FieldState:
		return &d.State
	case FieldCountry:
		return &d.Country
	case FieldZipcode:
		return &d.Zipcode
	case FieldOccupation:
		return &d.Occupation
	case FieldAnnualIncome:
		return &d.AnnualIncome
	case FieldProofOfIdentity:
		return &d.ProofOfIdentity
	}
	return nil
}

// requiredFields are the fields that must be non-empty before submit.
// AddressLine2 and AnnualIncome are optional.
var requiredFields = []string{
	FieldSalutation,
	FieldFirstName,
	FieldLastName,
	FieldGender,
	FieldEmail,
	FieldConfirmEmail,
	FieldMobileNumber,
	FieldAddressLine1,
	FieldCity,
	FieldState,
	FieldCountry,
	FieldZipcode,
	FieldOccupation,
	FieldProofOfIdentity,
}

// FieldErrorSet maps field name to the active human-readable error. Absence
// means no error. Set and clear are idempotent.
type FieldErrorSet map[string]string

func (e FieldErrorSet) Set(field, msg string) { e[field] = msg }

func (e FieldErrorSet) Clear(field string) { delete(e, field) }

func (e FieldErrorSet) Get(field string) string { return e[field] }

func (e FieldErrorSet) HasAny() bool { return len(e) > 0 }

// FieldValidity replaces the overloaded boolean duplicate flag: a validated
// field is submittable only in the Valid state.
type FieldValidity string

const (
	ValidityValid         FieldValidity = "valid"
	ValidityFormatInvalid FieldValidity = "format_invalid"
	ValidityDomainInvalid FieldValidity = "domain_invalid"
	ValidityDuplicate     FieldValidity = "duplicate"
	ValidityPendingCheck  FieldValidity = "pending_check"
)

// Attachment is the single identity-document upload, base64-encoded the same
// way the client-side file reader would deliver it.
type Attachment struct {
	FileName    string `json:"fileName"`
	Base64Data  string `json:"base64Data"`
	ContentType string `json:"contentType"`
}
