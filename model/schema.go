package model

// Field kinds, mirroring the input widgets of the rendered form.
const (
	KindText   = "text"
	KindDate   = "date"
	KindRadio  = "radio"
	KindSelect = "select"
)

// Field is one entry of the declarative form schema: a stable identifier
// (also the key of the visibility map), the submission attribute it feeds,
// the widget kind, whether it is required by default, and an optional named
// validation rule.
type Field struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Kind     string   `json:"kind"`
	Label    string   `json:"label"`
	Required bool     `json:"required"`
	Rule     string   `json:"rule,omitempty"`
	Options  []string `json:"options,omitempty"`
	Hidden   bool     `json:"hidden,omitempty"`
}

// FormSchema returns the ordered field list of the cancellation form.
// Validation walks it in order, so the first failing field is stable.
func FormSchema() []Field {
	return []Field{
		{ID: "landlord-address", Name: "landlordAddress", Kind: KindText, Label: "貸主住所"},
		{ID: "landlord-name", Name: "landlordName", Kind: KindText, Label: "貸主氏名"},
		{ID: "tenant-address", Name: "tenantAddress", Kind: KindText, Label: "借主住所", Required: true},
		{ID: "tenant-name", Name: "tenantName", Kind: KindText, Label: "借主氏名", Required: true},
		{ID: "property-name", Name: "propertyName", Kind: KindText, Label: "物件名", Required: true},
		{ID: "room-number", Name: "roomNumber", Kind: KindText, Label: "部屋番号", Required: true},
		{ID: "property-address", Name: "propertyAddress", Kind: KindText, Label: "所在地", Required: true},
		{ID: "parking-number", Name: "parkingNumber", Kind: KindText, Label: "駐車番号"},
		{ID: "contractor-name", Name: "contractorName", Kind: KindText, Label: "契約者氏名", Required: true},
		{ID: "application-date", Name: "applicationDate", Kind: KindDate, Label: "解約申込日", Required: true},
		{ID: "cancellation-date", Name: "cancellationDate", Kind: KindDate, Label: "解約希望日", Required: true},
		{ID: "inspection-date", Name: "inspectionDate", Kind: KindDate, Label: "立会希望日"},
		{ID: "inspection-hour", Name: "inspectionHour", Kind: KindSelect, Label: "立会希望時間"},
		{ID: "inspection-minute", Name: "inspectionMinute", Kind: KindSelect, Label: "立会希望時間（分）"},
		{ID: "remarks", Name: "remarks", Kind: KindText, Label: "備考"},
		{ID: "cancel-reason", Name: "cancelReason", Kind: KindRadio, Label: "解約事由", Required: true},
		{ID: "other-reason", Name: "otherReason", Kind: KindText, Label: "解約事由（その他）"},
		{ID: "bank-name", Name: "bankName", Kind: KindText, Label: "銀行名", Required: true},
		{ID: "bank-type", Name: "bankType", Kind: KindSelect, Label: "金融機関種別"},
		{ID: "branch-name", Name: "branchName", Kind: KindText, Label: "支店名", Required: true},
		{ID: "account-type", Name: "accountType", Kind: KindSelect, Label: "口座種別"},
		{ID: "account-number", Name: "accountNumber", Kind: KindText, Label: "口座番号", Required: true, Rule: RuleDigits},
		{ID: "account-holder-kana", Name: "accountHolderKana", Kind: KindText, Label: "口座名義（カナ）", Required: true},
		{ID: "new-postal-code", Name: "newPostalCode", Kind: KindText, Label: "転居先郵便番号", Required: true, Rule: RulePostalCode},
		{ID: "new-address", Name: "newAddress", Kind: KindText, Label: "転居先住所", Required: true},
		{ID: "recipient-name", Name: "recipientName", Kind: KindText, Label: "送付先氏名"},
		{ID: "phone-number", Name: "phoneNumber", Kind: KindText, Label: "電話番号", Required: true, Rule: RulePhone},
		{ID: "phone-type", Name: "phoneType", Kind: KindSelect, Label: "電話番号種別"},
		{ID: "phone-other", Name: "phoneOther", Kind: KindText, Label: "電話番号種別（その他）"},
		{ID: "mobile-number", Name: "mobileNumber", Kind: KindText, Label: "携帯電話", Rule: RulePhone},
		{ID: "mobile-owner", Name: "mobileOwner", Kind: KindSelect, Label: "携帯所有者"},
		{ID: "mobile-other", Name: "mobileOther", Kind: KindText, Label: "携帯所有者（その他）"},
	}
}

// ApplySettings is a pure transform of the schema: fields switched off by the
// visibility map are hidden and lose their required flag, so validation can
// never block on a field the operator has hidden. Option lists come from the
// settings record. An empty visibility map leaves every field as defined.
func ApplySettings(fields []Field, settings Settings) []Field {
	settings.FillDefaults()

	out := make([]Field, len(fields))
	copy(out, fields)
	for i := range out {
		if visible, found := settings.FieldVisibility[out[i].ID]; found && !visible {
			out[i].Hidden = true
			out[i].Required = false
		}
		switch out[i].Name {
		case "cancelReason":
			out[i].Options = settings.CancelReasons
		case "phoneType":
			out[i].Options = settings.PhoneTypes
		case "mobileOwner":
			out[i].Options = settings.MobileOwners
		}
	}
	return out
}

// Values maps schema field names to the corresponding submission attributes.
func (s Submission) Values() map[string]string {
	return map[string]string{
		"landlordAddress":   s.LandlordAddress,
		"landlordName":      s.LandlordName,
		"tenantAddress":     s.TenantAddress,
		"tenantName":        s.TenantName,
		"propertyName":      s.PropertyName,
		"roomNumber":        s.RoomNumber,
		"propertyAddress":   s.PropertyAddress,
		"parkingNumber":     s.ParkingNumber,
		"contractorName":    s.ContractorName,
		"applicationDate":   s.ApplicationDate,
		"cancellationDate":  s.CancellationDate,
		"inspectionDate":    s.InspectionDate,
		"inspectionHour":    s.InspectionHour,
		"inspectionMinute":  s.InspectionMinute,
		"remarks":           s.Remarks,
		"cancelReason":      s.CancelReason,
		"otherReason":       s.OtherReason,
		"bankName":          s.BankName,
		"bankType":          s.BankType,
		"branchName":        s.BranchName,
		"accountType":       s.AccountType,
		"accountNumber":     s.AccountNumber,
		"accountHolderKana": s.AccountHolderKana,
		"newPostalCode":     s.NewPostalCode,
		"newAddress":        s.NewAddress,
		"recipientName":     s.RecipientName,
		"phoneNumber":       s.PhoneNumber,
		"phoneType":         s.PhoneType,
		"phoneOther":        s.PhoneOther,
		"mobileNumber":      s.MobileNumber,
		"mobileOwner":       s.MobileOwner,
		"mobileOther":       s.MobileOther,
	}
}
