package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveCancelReason(t *testing.T) {
	tests := []struct {
		name    string
		reason  string
		other   string
		display string
	}{
		{"plain reason", "転勤", "", "転勤"},
		{"other with free text", "その他", "海外移住", "その他（海外移住）"},
		{"other without free text", "その他", "", "その他"},
		{"empty reason", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Submission{CancelReason: tt.reason, OtherReason: tt.other}
			s.Resolve(time.Now())
			assert.Equal(t, tt.display, s.CancelReasonDisplay)
		})
	}
}

func TestResolvePhoneAndMobileCategories(t *testing.T) {
	s := Submission{
		PhoneType:   "その他",
		PhoneOther:  "勤務先",
		MobileOwner: "その他",
		MobileOther: "長男",
	}
	s.Resolve(time.Now())

	// Phone and mobile categories resolve to the bare free text, without the
	// その他（...） wrapping used by the reason field.
	assert.Equal(t, "勤務先", s.PhoneTypeDisplay)
	assert.Equal(t, "長男", s.MobileOwnerDisplay)
}

func TestResolveInspectionTime(t *testing.T) {
	tests := []struct {
		name   string
		hour   string
		minute string
		want   string
	}{
		{"hour and minute", "14", "30", "14時30分"},
		{"hour only", "10", "", "10時"},
		{"neither", "", "", ""},
		{"minute without hour", "", "30", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Submission{InspectionHour: tt.hour, InspectionMinute: tt.minute}
			s.Resolve(time.Now())
			assert.Equal(t, tt.want, s.InspectionTime)
		})
	}
}

func TestResolveStampsSubmissionTime(t *testing.T) {
	now := time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC)
	s := Submission{}
	s.Resolve(now)
	assert.Equal(t, "2026-08-29T10:30:00Z", s.SubmittedAt)
}

func TestNormalizeInspectionTime(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"serialized timestamp", "2026-03-15T14:30:00.000Z", "14時30分"},
		{"timestamp on the hour", "2026-03-15T09:00:00.000Z", "9時"},
		{"bare date is not a time", "2026-03-15", ""},
		{"genuine time passes through", "14時30分", "14時30分"},
		{"hour-only passes through", "10時", "10時"},
		{"empty", "", ""},
		{"free text passes through", "午前中", "午前中"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeInspectionTime(tt.value))
		})
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2026年3月5日", FormatDate("2026-03-05"))
	assert.Equal(t, "2026年12月31日", FormatDate("2026-12-31"))
	assert.Equal(t, "", FormatDate(""))
	assert.Equal(t, "明日", FormatDate("明日"))
}

func TestFillDefaults(t *testing.T) {
	s := Settings{CancelReasons: []string{"転勤"}}
	s.FillDefaults()

	assert.Equal(t, []string{"転勤"}, s.CancelReasons)
	assert.Equal(t, DefaultSettings().PhoneTypes, s.PhoneTypes)
	assert.Equal(t, DefaultSettings().MobileOwners, s.MobileOwners)
	assert.NotNil(t, s.FieldVisibility)
}

func TestSectionsCoverEveryFieldWithoutPanicking(t *testing.T) {
	// A record with every optional field missing must still produce the four
	// themed sections, with empty strings in place of values.
	sections := Sections(Submission{})

	assert.Len(t, sections, 4)
	for _, section := range sections {
		assert.NotEmpty(t, section.Title)
		assert.NotEmpty(t, section.Rows)
		for _, row := range section.Rows {
			assert.NotEmpty(t, row.Label)
			assert.Equal(t, "", row.Value)
		}
	}
}

func TestSectionsNormalizeInspectionArtifact(t *testing.T) {
	s := Submission{InspectionTime: "2026-03-15T14:30:00.000Z"}
	sections := Sections(s)

	var got string
	for _, section := range sections {
		for _, row := range section.Rows {
			if row.Label == "立会希望時間" {
				got = row.Value
			}
		}
	}
	assert.Equal(t, "14時30分", got)
}
