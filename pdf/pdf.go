package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/ymurata/kaiyaku-form/model"
)

// Page geometry in millimeters, fixed to replicate the paper form.
const (
	pageWidth    = 210.0
	margin       = 15.0
	contentWidth = pageWidth - margin*2
	rowHeight    = 8.0
	textInset    = 2.0
)

const agreementText = "下記物件について賃貸借契約書の条項に基づき解除を申し入れます。\n" +
	"つきましては公共料金等の精算の上、家財一切の搬出を終了させ、鍵と本物件の明渡し・建物占有権放棄を下記明渡日までに行います。\n" +
	"万一、明渡しの遅延する事があれば理由の如何を問わず所有者の指示通りに行い、鍵の返還後に本物件内に残置した物品が存在した場合は、その所有権を放棄したものとし、賃貸人により搬出、処分されても一切異議申し立ては行わないこととします。（別途処分費が請求されます。）\n" +
	"又、上記事項により発生した損害は賠償致します。"

var closingNotes = []string{
	"①　退去立会日までに公共料金の精算、新聞・電話等の停止手続きをお願い致します。",
	"　　公共料金等未精算分がありますと敷金の返却が遅れる原因となります。",
	"②　荷物やゴミ等残置物がある場合はその処分費用を請求させていただくことになりますのでご注意下さい。",
}

// cell is one column of a bordered table row: text and a fixed width.
// Widths are independent literals per row, summing to the content width;
// cell text never wraps.
type cell struct {
	text  string
	width float64
}

func rowWidth(cells []cell) (total float64) {
	for _, c := range cells {
		total += c.width
	}
	return
}

// separatorOffsets lists the interior vertical separator positions of a row,
// relative to its left edge: the cumulative width before each cell but the
// first.
func separatorOffsets(cells []cell) []float64 {
	offsets := make([]float64, 0, len(cells)-1)
	x := 0.0
	for i, c := range cells {
		if i > 0 {
			offsets = append(offsets, x)
		}
		x += c.width
	}
	return offsets
}

func drawRow(doc *fpdf.Fpdf, x, y float64, cells []cell, height float64) {
	doc.Rect(x, y, rowWidth(cells), height, "D")

	cx := x
	for i, c := range cells {
		if i > 0 {
			doc.Line(cx, y, cx, y+height)
		}
		if c.text != "" {
			doc.Text(cx+textInset, y+height/2+1, c.text)
		}
		cx += c.width
	}
}

// Render lays the submission out as the one-page cancellation form: title,
// two-party header, agreement paragraph, three bordered sections and the
// closing notes. It is a pure function of the record and the font.
func Render(s model.Submission, font Font) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")

	family := font.Name
	if font.Builtin() {
		family = builtinFamily
	} else {
		doc.AddUTF8FontFromBytes(font.Name, "", font.Data)
	}
	doc.SetFont(family, "", 10)
	doc.AddPage()

	y := margin

	// Title
	doc.SetFontSize(18)
	doc.SetXY(margin, y)
	doc.CellFormat(contentWidth, 10, "【賃貸借契約解約申込書】", "", 0, "C", false, 0, "")
	y += 25

	// Landlord block, top left
	doc.SetFontSize(10)
	doc.Text(margin, y, "（貸主住所）　"+s.LandlordAddress)
	y += 6
	doc.Text(margin, y, "（氏名）　　　"+s.LandlordName)
	y += 12

	// Tenant block, right side, with the seal mark
	doc.Text(pageWidth-margin-60, y-6, "（借主住所）")
	doc.Text(pageWidth-margin-45, y-6, s.TenantAddress)
	y += 6
	doc.Text(pageWidth-margin-60, y-6, "（氏名）　　　"+s.TenantName)
	doc.Text(pageWidth-margin-5, y-6, "印")
	y += 10

	// Agreement paragraph, wrapped to content width
	doc.SetFontSize(9)
	lines := doc.SplitText(agreementText, contentWidth)
	for i, line := range lines {
		doc.Text(margin, y+float64(i)*4, line)
	}
	y += float64(len(lines))*4 + 8

	// (1) Property
	doc.SetFontSize(11)
	doc.Text(margin, y, "（１）　解約申込物件")
	y += 6

	doc.SetFontSize(9)
	doc.SetLineWidth(0.3)

	drawRow(doc, margin, y, []cell{
		{"物　件　名", 25},
		{s.PropertyName, 75},
		{"部屋番号", 20},
		{s.RoomNumber, 60},
	}, rowHeight)
	y += rowHeight

	drawRow(doc, margin, y, []cell{
		{"所　在　地", 25},
		{s.PropertyAddress, 75},
		{"駐車番号", 20},
		{s.ParkingNumber, 60},
	}, rowHeight)
	y += rowHeight

	drawRow(doc, margin, y, []cell{
		{"契約者氏名", 25},
		{s.ContractorName, 155},
	}, rowHeight)
	y += rowHeight

	drawRow(doc, margin, y, []cell{
		{"解約申込日", 25},
		{model.FormatDate(s.ApplicationDate), 55},
		{"解約希望日", 25},
		{model.FormatDate(s.CancellationDate), 75},
	}, rowHeight)
	y += rowHeight

	drawRow(doc, margin, y, []cell{
		{"立会希望日", 25},
		{model.FormatDate(s.InspectionDate), 35},
		{model.NormalizeInspectionTime(s.InspectionTime), 30},
		{fmt.Sprintf("（備考：%s）", s.Remarks), 90},
	}, rowHeight)
	y += rowHeight

	drawRow(doc, margin, y, []cell{
		{"解約事由", 25},
		{s.CancelReasonDisplay, 155},
	}, rowHeight)
	y += rowHeight + 8

	// (2) Refund account
	doc.SetFontSize(11)
	doc.Text(margin, y, "（２）　精算金振込み口座")
	doc.SetFontSize(8)
	doc.Text(margin+50, y, "（※時期により１ヶ月程度掛かる場合が御座います。）")
	y += 6

	doc.SetFontSize(9)

	bankType := s.BankType
	if bankType == "" {
		bankType = "銀行"
	}
	drawRow(doc, margin, y, []cell{
		{"銀　行　名", 25},
		{s.BankName, 75},
		{bankType, 30},
		{s.BranchName + "支店", 50},
	}, rowHeight)
	y += rowHeight

	accountType := s.AccountType
	if accountType == "" {
		accountType = "普通"
	}
	drawRow(doc, margin, y, []cell{
		{"口座番号", 25},
		{accountType, 20},
		{s.AccountNumber, 135},
	}, rowHeight)
	y += rowHeight

	// The kana row keeps the narrow label box of the paper form; the
	// name itself is written outside the border.
	drawRow(doc, margin, y, []cell{
		{"（カナ）", 25},
		{"", 0},
	}, rowHeight)
	doc.Text(margin+30, y+5, s.AccountHolderKana)
	y += rowHeight

	drawRow(doc, margin, y, []cell{
		{"口座名義", 25},
		{"", 155},
	}, rowHeight)
	y += rowHeight + 8

	// (3) Forwarding address
	doc.SetFontSize(11)
	doc.Text(margin, y, "（３）　転居先ご住所")
	doc.SetFontSize(8)
	doc.Text(margin+40, y, "（精算書送付先）")
	y += 6

	doc.SetFontSize(9)

	drawRow(doc, margin, y, []cell{
		{"住　　　所", 25},
		{"〒" + s.NewPostalCode, 30},
	}, rowHeight)
	y += rowHeight

	drawRow(doc, margin, y, []cell{
		{"", 25},
		{s.NewAddress, 155},
	}, rowHeight)
	y += rowHeight

	recipientNote := ""
	if s.RecipientName == "" {
		recipientNote = "※上記記載の契約者名と違う場合。"
	}
	drawRow(doc, margin, y, []cell{
		{"送付先氏名", 25},
		{s.RecipientName, 80},
		{recipientNote, 75},
	}, rowHeight)
	y += rowHeight

	drawRow(doc, margin, y, []cell{
		{"電話番号", 25},
		{s.PhoneNumber, 60},
		{s.PhoneTypeDisplay, 30},
		{"宅内", 65},
	}, rowHeight)
	y += rowHeight

	mobileOwner := ""
	if s.MobileOwnerDisplay != "" {
		mobileOwner = "所有者：" + s.MobileOwnerDisplay
	}
	drawRow(doc, margin, y, []cell{
		{"携帯電話", 25},
		{s.MobileNumber, 60},
		{mobileOwner, 95},
	}, rowHeight)
	y += rowHeight + 10

	// Closing notes
	doc.SetFontSize(10)
	doc.Text(margin, y, "解約時の注意事項")
	y += 6

	doc.SetFontSize(9)
	for _, note := range closingNotes {
		doc.Text(margin, y, note)
		y += 5
	}

	if doc.Err() {
		return nil, doc.Error()
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FileName names the produced file after the contractor and the current date.
func FileName(contractorName string, now time.Time) string {
	name := contractorName
	if name == "" {
		name = "名前未入力"
	}
	return fmt.Sprintf("解約申込書_%s_%s.pdf", name, now.Format("20060102"))
}
