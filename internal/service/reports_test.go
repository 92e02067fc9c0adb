package service

import (
	"strings"
	"testing"
	"time"

	"github.com/beevik/etree"

	"github.com/edusys/school-payments/internal/models"
)

func reportRows() []models.PaymentRow {
	mk := func(id int64, number int, status models.Status, amount float64) models.PaymentRow {
		return models.PaymentRow{
			StudentID:   "1710034065",
			StudentName: "Ana Mora",
			CourseID:    10,
			CourseName:  "Math",
			CourseCode:  "MAT-1",
			Installment: models.Installment{
				ID:      id,
				Number:  number,
				Amount:  amount,
				DueDate: time.Date(2026, 3, number, 0, 0, 0, 0, time.UTC),
				Status:  status,
			},
		}
	}
	return []models.PaymentRow{
		mk(1, 1, models.StatusVerified, 50),
		mk(2, 2, models.StatusPaid, 50),
		mk(3, 3, models.StatusPaid, 50),
		mk(4, 4, models.StatusOverdue, 30),
	}
}

func TestComputeReport(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	report := computeReport(reportRows(), now)

	if report.GeneratedAt != "2026-08-31" {
		t.Errorf("GeneratedAt = %s, want 2026-08-31", report.GeneratedAt)
	}
	if report.RowCount != 4 {
		t.Errorf("RowCount = %d, want 4", report.RowCount)
	}
	if report.GrandTotal != 180 {
		t.Errorf("GrandTotal = %.2f, want 180.00", report.GrandTotal)
	}

	want := map[models.Status]models.StatusTotal{
		models.StatusPending:  {Status: models.StatusPending, Count: 0, Amount: 0},
		models.StatusPaid:     {Status: models.StatusPaid, Count: 2, Amount: 100},
		models.StatusVerified: {Status: models.StatusVerified, Count: 1, Amount: 50},
		models.StatusOverdue:  {Status: models.StatusOverdue, Count: 1, Amount: 30},
	}
	for _, got := range report.Totals {
		if got != want[got.Status] {
			t.Errorf("total for %s = %+v, want %+v", got.Status, got, want[got.Status])
		}
	}
}

func TestBuildReportXML(t *testing.T) {
	rows := reportRows()
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	data, err := buildReportXML(rows, computeReport(rows, now))
	if err != nil {
		t.Fatalf("buildReportXML() error = %v", err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		t.Fatalf("export is not well-formed XML: %v", err)
	}

	installments := doc.FindElements("//paymentReport/payments/installment")
	if len(installments) != len(rows) {
		t.Errorf("export holds %d installments, want %d", len(installments), len(rows))
	}

	summary := doc.FindElement("//paymentReport/summary")
	if summary == nil {
		t.Fatal("export has no summary element")
	}
	if got := summary.SelectAttrValue("grandTotal", ""); got != "180.00" {
		t.Errorf("grandTotal = %s, want 180.00", got)
	}

	if !strings.Contains(string(data), "Ana Mora (1710034065)") {
		t.Error("export does not name the student")
	}
}
