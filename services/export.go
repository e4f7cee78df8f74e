package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"eduportal/models"
)

var exportHeaders = []string{
	"ID", "活动ID", "学生姓名", "性别", "学校", "年级", "班级",
	"监护人", "监护人电话", "监护人邮箱", "支付状态", "金额", "报名时间",
}

// ExportRegistrationsExcel writes the registrations to an xlsx workbook and
// returns its bytes, ready to stream as a download.
func ExportRegistrationsExcel(regs []models.Registration) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("error writing header: %w", err)
		}
	}

	for i, reg := range regs {
		values := []interface{}{
			reg.ID, reg.ActivityID, reg.StudentName, reg.StudentGender,
			reg.StudentSchool, reg.StudentGrade, reg.StudentClass,
			reg.GuardianName, reg.GuardianPhone, reg.GuardianEmail,
			reg.PaymentStatus, reg.PaymentAmount,
			reg.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("error writing row %d: %w", i+2, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("error writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}
