package service

import (
	"fmt"
	"time"

	"github.com/beevik/etree"

	"github.com/edusys/school-payments/internal/models"
)

// PaymentReport builds the status-by-status payment summary.
func (s *Service) PaymentReport() (*models.PaymentReport, error) {
	rows, err := s.repo.ListPaymentRows("")
	if err != nil {
		return nil, err
	}
	return computeReport(rows, time.Now()), nil
}

// PaymentReportXML renders the full flat payment list plus the summary as an
// XML document for the export download.
func (s *Service) PaymentReportXML() ([]byte, error) {
	rows, err := s.repo.ListPaymentRows("")
	if err != nil {
		return nil, err
	}
	return buildReportXML(rows, computeReport(rows, time.Now()))
}

func computeReport(rows []models.PaymentRow, now time.Time) *models.PaymentReport {
	order := []models.Status{models.StatusPending, models.StatusPaid, models.StatusVerified, models.StatusOverdue}
	totals := make(map[models.Status]*models.StatusTotal, len(order))
	for _, st := range order {
		totals[st] = &models.StatusTotal{Status: st}
	}

	report := &models.PaymentReport{
		GeneratedAt: now.Format("2006-01-02"),
		RowCount:    len(rows),
	}
	for _, row := range rows {
		t := totals[row.Status]
		if t == nil {
			continue
		}
		t.Count++
		t.Amount += row.Amount
		report.GrandTotal += row.Amount
	}
	for _, st := range order {
		report.Totals = append(report.Totals, *totals[st])
	}
	return report
}

func buildReportXML(rows []models.PaymentRow, report *models.PaymentReport) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("paymentReport")
	root.CreateAttr("generatedAt", report.GeneratedAt)

	summary := root.CreateElement("summary")
	summary.CreateAttr("rows", fmt.Sprintf("%d", report.RowCount))
	summary.CreateAttr("grandTotal", fmt.Sprintf("%.2f", report.GrandTotal))
	for _, t := range report.Totals {
		el := summary.CreateElement("status")
		el.CreateAttr("name", string(t.Status))
		el.CreateAttr("count", fmt.Sprintf("%d", t.Count))
		el.CreateAttr("amount", fmt.Sprintf("%.2f", t.Amount))
	}

	payments := root.CreateElement("payments")
	for _, row := range rows {
		el := payments.CreateElement("installment")
		el.CreateAttr("id", fmt.Sprintf("%d", row.Installment.ID))
		el.CreateAttr("number", fmt.Sprintf("%d", row.Number))
		el.CreateAttr("status", string(row.Status))
		el.CreateElement("student").SetText(fmt.Sprintf("%s (%s)", row.StudentName, row.StudentID))
		el.CreateElement("course").SetText(fmt.Sprintf("%s - %s", row.CourseCode, row.CourseName))
		el.CreateElement("amount").SetText(fmt.Sprintf("%.2f", row.Amount))
		el.CreateElement("dueDate").SetText(row.DueDate.Format("2006-01-02"))
		if row.PaidAt != nil {
			el.CreateElement("paidAt").SetText(row.PaidAt.Format("2006-01-02"))
		}
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}
