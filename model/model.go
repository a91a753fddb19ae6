package model

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// OtherOption is the sentinel list entry that enables the free-text override
// on the cancellation reason, phone type and mobile owner fields.
const OtherOption = "その他"

// Submission is one completed cancellation request. It is built once at
// submission time and never updated afterwards. JSON keys match the columns
// of the spreadsheet behind the gateway.
type Submission struct {
	LandlordAddress string `json:"landlordAddress"`
	LandlordName    string `json:"landlordName"`
	TenantAddress   string `json:"tenantAddress"`
	TenantName      string `json:"tenantName"`

	PropertyName    string `json:"propertyName"`
	RoomNumber      string `json:"roomNumber"`
	PropertyAddress string `json:"propertyAddress"`
	ParkingNumber   string `json:"parkingNumber"`
	ContractorName  string `json:"contractorName"`

	ApplicationDate  string `json:"applicationDate"`
	CancellationDate string `json:"cancellationDate"`
	InspectionDate   string `json:"inspectionDate"`
	InspectionHour   string `json:"inspectionHour"`
	InspectionMinute string `json:"inspectionMinute"`
	InspectionTime   string `json:"inspectionTime"`
	Remarks          string `json:"remarks"`

	CancelReason        string `json:"cancelReason"`
	OtherReason         string `json:"otherReason"`
	CancelReasonDisplay string `json:"cancelReasonDisplay"`

	BankName          string `json:"bankName"`
	BankType          string `json:"bankType"`
	BranchName        string `json:"branchName"`
	AccountType       string `json:"accountType"`
	AccountNumber     string `json:"accountNumber"`
	AccountHolderKana string `json:"accountHolderKana"`

	NewPostalCode string `json:"newPostalCode"`
	NewAddress    string `json:"newAddress"`
	RecipientName string `json:"recipientName"`

	PhoneNumber      string `json:"phoneNumber"`
	PhoneType        string `json:"phoneType"`
	PhoneOther       string `json:"phoneOther"`
	PhoneTypeDisplay string `json:"phoneTypeDisplay"`

	MobileNumber       string `json:"mobileNumber"`
	MobileOwner        string `json:"mobileOwner"`
	MobileOther        string `json:"mobileOther"`
	MobileOwnerDisplay string `json:"mobileOwnerDisplay"`

	SubmittedAt string `json:"submittedAt"`
}

// Resolve fills the derived display fields and stamps the submission time.
// Category fields carrying the "other" sentinel are substituted with their
// free-text override.
func (s *Submission) Resolve(now time.Time) {
	if s.CancelReason == OtherOption && s.OtherReason != "" {
		s.CancelReasonDisplay = fmt.Sprintf("その他（%s）", s.OtherReason)
	} else {
		s.CancelReasonDisplay = s.CancelReason
	}

	if s.PhoneType == OtherOption && s.PhoneOther != "" {
		s.PhoneTypeDisplay = s.PhoneOther
	} else {
		s.PhoneTypeDisplay = s.PhoneType
	}

	if s.MobileOwner == OtherOption && s.MobileOther != "" {
		s.MobileOwnerDisplay = s.MobileOther
	} else {
		s.MobileOwnerDisplay = s.MobileOwner
	}

	switch {
	case s.InspectionHour != "" && s.InspectionMinute != "":
		s.InspectionTime = fmt.Sprintf("%s時%s分", s.InspectionHour, s.InspectionMinute)
	case s.InspectionHour != "":
		s.InspectionTime = fmt.Sprintf("%s時", s.InspectionHour)
	default:
		s.InspectionTime = ""
	}

	s.SubmittedAt = now.Format(time.RFC3339)
}

var (
	reTimestampValue = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T(\d{2}):(\d{2})`)
	reBareDateValue  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	reFormDate       = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)
)

// NormalizeInspectionTime undoes the spreadsheet's habit of serializing a
// time-of-day cell as a full timestamp: the embedded hour and minute are kept
// and the date part is dropped. A value that is itself a bare date carries no
// time at all and comes back empty. Anything else passes through unchanged.
// The heuristic is format-dependent and deliberately narrow.
func NormalizeInspectionTime(v string) string {
	if m := reTimestampValue.FindStringSubmatch(v); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if minute == 0 {
			return fmt.Sprintf("%d時", hour)
		}
		return fmt.Sprintf("%d時%d分", hour, minute)
	}
	if reBareDateValue.MatchString(v) {
		return ""
	}
	return v
}

// FormatDate turns a YYYY-MM-DD form value into the YYYY年M月D日 style used
// on the paper form. Values in any other shape pass through unchanged.
func FormatDate(v string) string {
	m := reFormDate.FindStringSubmatch(v)
	if m == nil {
		return v
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	return fmt.Sprintf("%d年%d月%d日", year, month, day)
}

// Settings is the remotely stored configuration controlling field visibility
// and the selectable option lists.
type Settings struct {
	FieldVisibility map[string]bool `json:"fieldVisibility"`
	CancelReasons   []string        `json:"cancelReasons"`
	PhoneTypes      []string        `json:"phoneTypes"`
	MobileOwners    []string        `json:"mobileOwners"`
}

func DefaultSettings() Settings {
	return Settings{
		FieldVisibility: map[string]bool{
			"room-number":     true,
			"parking-number":  true,
			"inspection-date": true,
			"inspection-hour": true,
			"remarks":         true,
			"recipient-name":  true,
			"phone-number":    true,
			"mobile-number":   true,
		},
		CancelReasons: []string{"帰省", "住替", "転勤", "卒業", "その他"},
		PhoneTypes:    []string{"自宅", "実家", "会社", "その他"},
		MobileOwners:  []string{"本人", "主人", "妻", "その他"},
	}
}

// FillDefaults substitutes the default option lists for empty ones, so the
// form never renders an empty radio group or select.
func (s *Settings) FillDefaults() {
	defaults := DefaultSettings()
	if s.FieldVisibility == nil {
		s.FieldVisibility = map[string]bool{}
	}
	if len(s.CancelReasons) == 0 {
		s.CancelReasons = defaults.CancelReasons
	}
	if len(s.PhoneTypes) == 0 {
		s.PhoneTypes = defaults.PhoneTypes
	}
	if len(s.MobileOwners) == 0 {
		s.MobileOwners = defaults.MobileOwners
	}
}
