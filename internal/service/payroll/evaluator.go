package payroll

import (
	"time"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/salary"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/workday"
	"github.com/shopspring/decimal"
)

var sixty = decimal.NewFromInt(60)

// Evaluate computes the pay of one employee for period.
//
// Only closed records whose check-in falls inside the period count. A working
// day is a pattern weekday that is not a holiday; it is absent when no record
// started on it, and a day holding only an open record is neither present nor
// absent. Monthly overtime is measured against the hours expected on the
// working days present, so weekend and holiday hours are all overtime. The
// result is never negative and is rounded to two decimals. On error the salary
// is zero.
func Evaluate(
	model *salary.SalaryModel,
	records []attendance.Attendance,
	period payroll.Period,
	holidays []time.Time,
	cal workday.Calendar,
) (decimal.Decimal, payroll.CalculationDetails, error) {
	if model == nil {
		return decimal.Zero, payroll.CalculationDetails{}, salary.ErrNoSalaryModel
	}

	loc := period.Start.Location()
	minutesByDay := make(map[string]int64)
	openDays := make(map[string]bool)
	var totalMinutes int64
	var openRecords int
	for _, r := range records {
		if !period.Contains(r.CheckInTime) {
			continue
		}
		day := workday.DateKey(r.CheckInTime.In(loc))
		if r.IsOpen() {
			openRecords++
			openDays[day] = true
			continue
		}
		m := r.WorkedMinutes()
		minutesByDay[day] += m
		totalMinutes += m
	}
	presentDays := len(minutesByDay)

	summary := cal.Summarize(period.Start, period.End, holidays)
	absentDays := 0
	workingDaysPresent := 0
	for _, d := range summary.WorkingDays {
		key := workday.DateKey(d)
		if _, ok := minutesByDay[key]; ok {
			workingDaysPresent++
		} else if !openDays[key] {
			absentDays++
		}
	}

	details := payroll.CalculationDetails{
		SalaryModelName:     model.ModelName,
		TotalWorkDays:       presentDays,
		TotalWorkMinutes:    totalMinutes,
		TotalAbsentDays:     absentDays,
		DeductionsApplied:   decimal.Zero,
		OvertimePay:         decimal.Zero,
		BaseSalary:          model.BaseSalary,
		WorkingDaysInPeriod: len(summary.WorkingDays),
		HolidaysInPeriod:    summary.Holidays,
		OpenRecords:         openRecords,
	}

	workedHours := decimal.NewFromInt(totalMinutes).Div(sixty)

	var final decimal.Decimal
	switch model.SalaryType.Normalize() {
	case salary.SalaryTypeMonthly:
		workHours := model.WorkHoursPerDay
		if !workHours.IsPositive() {
			workHours = salary.DefaultWorkHoursPerDay
		}
		expectedHours := workHours.Mul(decimal.NewFromInt(int64(workingDaysPresent)))
		overtimeHours := decimal.Max(decimal.Zero, workedHours.Sub(expectedHours))

		details.DeductionsApplied = model.DeductionPerDay.Mul(decimal.NewFromInt(int64(absentDays)))
		details.OvertimeMinutes = overtimeHours.Mul(sixty).Round(0).IntPart()
		details.OvertimePay = model.OvertimeBonusPerHour.Mul(overtimeHours)
		final = model.BaseSalary.Sub(details.DeductionsApplied).Add(details.OvertimePay)

	case salary.SalaryTypeHourly:
		final = model.BaseSalary.Mul(workedHours)
		if model.OvertimeThresholdHours != nil {
			thresholdMinutes := model.OvertimeThresholdHours.Mul(sixty).Round(0).IntPart()
			var overtimeMinutes int64
			for _, m := range minutesByDay {
				if m > thresholdMinutes {
					overtimeMinutes += m - thresholdMinutes
				}
			}
			details.OvertimeMinutes = overtimeMinutes
			details.OvertimePay = model.OvertimeBonusPerHour.Mul(decimal.NewFromInt(overtimeMinutes)).Div(sixty)
			final = final.Add(details.OvertimePay)
		}

	case salary.SalaryTypeDaily:
		final = model.BaseSalary.Mul(decimal.NewFromInt(int64(presentDays)))

	default:
		return decimal.Zero, details, salary.ErrUnsupportedSalaryModel
	}

	details.DeductionsApplied = details.DeductionsApplied.Round(2)
	details.OvertimePay = details.OvertimePay.Round(2)

	if final.IsNegative() {
		final = decimal.Zero
	}
	return final.Round(2), details, nil
}
