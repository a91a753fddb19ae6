package model

// Section is one themed block of the admin detail view.
type Section struct {
	Title string      `json:"title"`
	Rows  []DetailRow `json:"rows"`
}

type DetailRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Sections lays out every submission field under the four themed headings of
// the detail view. Missing values come through as empty strings; stored
// inspection times are normalized against spreadsheet date artifacts.
func Sections(s Submission) []Section {
	return []Section{
		{
			Title: "契約者・貸主情報",
			Rows: []DetailRow{
				{Label: "貸主住所", Value: s.LandlordAddress},
				{Label: "貸主氏名", Value: s.LandlordName},
				{Label: "借主住所", Value: s.TenantAddress},
				{Label: "借主氏名", Value: s.TenantName},
				{Label: "契約者氏名", Value: s.ContractorName},
			},
		},
		{
			Title: "物件情報",
			Rows: []DetailRow{
				{Label: "物件名", Value: s.PropertyName},
				{Label: "部屋番号", Value: s.RoomNumber},
				{Label: "所在地", Value: s.PropertyAddress},
				{Label: "駐車番号", Value: s.ParkingNumber},
				{Label: "解約申込日", Value: FormatDate(s.ApplicationDate)},
				{Label: "解約希望日", Value: FormatDate(s.CancellationDate)},
				{Label: "立会希望日", Value: FormatDate(s.InspectionDate)},
				{Label: "立会希望時間", Value: NormalizeInspectionTime(s.InspectionTime)},
				{Label: "備考", Value: s.Remarks},
				{Label: "解約事由", Value: s.CancelReasonDisplay},
			},
		},
		{
			Title: "精算金振込み口座",
			Rows: []DetailRow{
				{Label: "銀行名", Value: s.BankName},
				{Label: "金融機関種別", Value: s.BankType},
				{Label: "支店名", Value: s.BranchName},
				{Label: "口座種別", Value: s.AccountType},
				{Label: "口座番号", Value: s.AccountNumber},
				{Label: "口座名義（カナ）", Value: s.AccountHolderKana},
			},
		},
		{
			Title: "転居先ご住所",
			Rows: []DetailRow{
				{Label: "郵便番号", Value: s.NewPostalCode},
				{Label: "住所", Value: s.NewAddress},
				{Label: "送付先氏名", Value: s.RecipientName},
				{Label: "電話番号", Value: s.PhoneNumber},
				{Label: "電話番号種別", Value: s.PhoneTypeDisplay},
				{Label: "携帯電話", Value: s.MobileNumber},
				{Label: "携帯所有者", Value: s.MobileOwnerDisplay},
			},
		},
	}
}
