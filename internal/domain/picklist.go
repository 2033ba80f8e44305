package domain

// PicklistField names an enumerated form field whose options come from the
// metadata source.
type PicklistField string

const (
	FieldSalutation      PicklistField = "salutation"
	FieldGender          PicklistField = "gender"
	FieldCountry         PicklistField = "country"
	FieldState           PicklistField = "state"
	FieldOccupation      PicklistField = "occupation"
	FieldProofOfIdentity PicklistField = "proof_of_identity"
)

// PicklistFields lists every enumerated field, in form order.
var PicklistFields = []PicklistField{
	FieldSalutation,
	FieldGender,
	FieldCountry,
	FieldState,
	FieldOccupation,
	FieldProofOfIdentity,
}

// PicklistOption is one {value, label} pair. Immutable once fetched.
type PicklistOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
