package payroll

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/salary"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/workday"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jakarta = mustLoad("Asia/Jakarta")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

var (
	august2024 = payroll.MonthPeriod(time.Date(2024, 8, 15, 0, 0, 0, 0, jakarta), jakarta)
	weekdays   = workday.NewCalendar(workday.DefaultPattern)
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func at(day, hour, minute int) time.Time {
	return time.Date(2024, 8, day, hour, minute, 0, 0, jakarta)
}

func closed(day, inHour, outHour int) attendance.Attendance {
	out := at(day, outHour, 0)
	return attendance.Attendance{EmployeeID: "e1", CheckInTime: at(day, inHour, 0), CheckOutTime: &out}
}

func open(day, inHour int) attendance.Attendance {
	return attendance.Attendance{EmployeeID: "e1", CheckInTime: at(day, inHour, 0)}
}

// workingDaysAugust2024 lists the 22 Monday-Friday dates of August 2024.
var workingDaysAugust2024 = []int{1, 2, 5, 6, 7, 8, 9, 12, 13, 14, 15, 16, 19, 20, 21, 22, 23, 26, 27, 28, 29, 30}

// eightHourDays returns one 08:00-16:00 record for each of the first n working days.
func eightHourDays(n int) []attendance.Attendance {
	var records []attendance.Attendance
	for _, d := range workingDaysAugust2024[:n] {
		records = append(records, closed(d, 8, 16))
	}
	return records
}

func monthlyModel() *salary.SalaryModel {
	return &salary.SalaryModel{
		ModelName:            "Staff",
		SalaryType:           salary.SalaryTypeMonthly,
		BaseSalary:           dec("5000000"),
		DeductionPerDay:      dec("50000"),
		OvertimeBonusPerHour: dec("20000"),
		WorkHoursPerDay:      dec("8"),
	}
}

func TestEvaluate_MonthlyExample(t *testing.T) {
	final, details, err := Evaluate(monthlyModel(), eightHourDays(20), august2024, nil, weekdays)
	require.NoError(t, err)

	assert.True(t, dec("4900000").Equal(final), "got %s", final)
	assert.Equal(t, 22, details.WorkingDaysInPeriod)
	assert.Equal(t, 20, details.TotalWorkDays)
	assert.Equal(t, 2, details.TotalAbsentDays)
	assert.Equal(t, int64(20*8*60), details.TotalWorkMinutes)
	assert.Equal(t, int64(0), details.OvertimeMinutes)
	assert.True(t, dec("100000").Equal(details.DeductionsApplied))
	assert.True(t, details.OvertimePay.IsZero())
	assert.Equal(t, "Staff", details.SalaryModelName)
}

func TestEvaluate_MonthlyOvertime(t *testing.T) {
	records := eightHourDays(20)
	records[0] = closed(1, 8, 18) // two extra hours

	final, details, err := Evaluate(monthlyModel(), records, august2024, nil, weekdays)
	require.NoError(t, err)

	assert.Equal(t, int64(120), details.OvertimeMinutes)
	assert.True(t, dec("40000").Equal(details.OvertimePay))
	assert.True(t, dec("4940000").Equal(final), "got %s", final)
}

func TestEvaluate_MonthlyHolidayIsNotAbsence(t *testing.T) {
	holidays := []time.Time{time.Date(2024, 8, 29, 0, 0, 0, 0, time.UTC)}

	final, details, err := Evaluate(monthlyModel(), eightHourDays(20), august2024, holidays, weekdays)
	require.NoError(t, err)

	assert.Equal(t, 21, details.WorkingDaysInPeriod)
	assert.Equal(t, 1, details.HolidaysInPeriod)
	assert.Equal(t, 1, details.TotalAbsentDays)
	assert.True(t, dec("4950000").Equal(final), "got %s", final)
}

func TestEvaluate_MonthlyWeekendWorkDoesNotOffsetAbsence(t *testing.T) {
	records := append(eightHourDays(20), closed(3, 8, 16)) // Saturday

	final, details, err := Evaluate(monthlyModel(), records, august2024, nil, weekdays)
	require.NoError(t, err)

	assert.Equal(t, 21, details.TotalWorkDays)
	assert.Equal(t, 2, details.TotalAbsentDays)
	assert.Equal(t, int64(8*60), details.OvertimeMinutes, "the Saturday shift is all overtime")
	assert.True(t, dec("160000").Equal(details.OvertimePay), "got %s", details.OvertimePay)
	assert.True(t, dec("5060000").Equal(final), "got %s", final)
}

func TestEvaluate_MonthlyHolidayWorkIsOvertime(t *testing.T) {
	holidays := []time.Time{time.Date(2024, 8, 16, 0, 0, 0, 0, time.UTC)}
	records := []attendance.Attendance{closed(15, 8, 16), closed(16, 8, 12)}
	period := payroll.Period{Start: at(15, 0, 0), End: at(16, 0, 0)}

	final, details, err := Evaluate(monthlyModel(), records, period, holidays, weekdays)
	require.NoError(t, err)

	assert.Equal(t, 1, details.WorkingDaysInPeriod)
	assert.Equal(t, 0, details.TotalAbsentDays)
	assert.Equal(t, int64(4*60), details.OvertimeMinutes)
	assert.True(t, dec("5080000").Equal(final), "got %s", final)
}

func TestEvaluate_MonthlyClampsAtZero(t *testing.T) {
	model := monthlyModel()
	model.DeductionPerDay = dec("1000000")

	final, details, err := Evaluate(model, nil, august2024, nil, weekdays)
	require.NoError(t, err)

	assert.True(t, final.IsZero(), "got %s", final)
	assert.Equal(t, 22, details.TotalAbsentDays)
}

func TestEvaluate_HourlyExample(t *testing.T) {
	model := &salary.SalaryModel{
		SalaryType:           salary.SalaryTypeHourly,
		BaseSalary:           dec("25000"),
		OvertimeBonusPerHour: dec("30000"),
	}

	final, details, err := Evaluate(model, eightHourDays(20), august2024, nil, weekdays)
	require.NoError(t, err)

	assert.Equal(t, int64(9600), details.TotalWorkMinutes)
	assert.True(t, dec("4000000").Equal(final), "got %s", final)
	assert.True(t, details.OvertimePay.IsZero(), "no threshold means no overtime")
}

func TestEvaluate_HourlyThresholdOvertime(t *testing.T) {
	threshold := dec("8")
	model := &salary.SalaryModel{
		SalaryType:             salary.SalaryTypeHourly,
		BaseSalary:             dec("25000"),
		OvertimeBonusPerHour:   dec("30000"),
		OvertimeThresholdHours: &threshold,
	}
	records := eightHourDays(20)
	records[0] = closed(1, 8, 18)

	final, details, err := Evaluate(model, records, august2024, nil, weekdays)
	require.NoError(t, err)

	// 162h * 25,000 + 2h * 30,000
	assert.Equal(t, int64(120), details.OvertimeMinutes)
	assert.True(t, dec("60000").Equal(details.OvertimePay))
	assert.True(t, dec("4110000").Equal(final), "got %s", final)
}

func TestEvaluate_HourlyRoundsToCents(t *testing.T) {
	model := &salary.SalaryModel{SalaryType: salary.SalaryTypeHourly, BaseSalary: dec("12345.67")}
	out := at(1, 9, 1)
	records := []attendance.Attendance{{CheckInTime: at(1, 8, 0), CheckOutTime: &out}}

	final, _, err := Evaluate(model, records, august2024, nil, weekdays)
	require.NoError(t, err)

	assert.Equal(t, "12551.43", final.StringFixed(2))
	assert.True(t, final.Equal(final.Round(2)))
}

func TestEvaluate_Daily(t *testing.T) {
	model := &salary.SalaryModel{SalaryType: salary.SalaryTypeDaily, BaseSalary: dec("200000")}
	records := eightHourDays(20)
	records = append(records, closed(1, 17, 19)) // split shift on a day already counted

	final, details, err := Evaluate(model, records, august2024, nil, weekdays)
	require.NoError(t, err)

	assert.Equal(t, 20, details.TotalWorkDays)
	assert.True(t, dec("4000000").Equal(final), "got %s", final)
}

func TestEvaluate_OpenRecordsExcluded(t *testing.T) {
	model := &salary.SalaryModel{SalaryType: salary.SalaryTypeDaily, BaseSalary: dec("200000")}
	records := append(eightHourDays(20), open(29, 8))

	final, details, err := Evaluate(model, records, august2024, nil, weekdays)
	require.NoError(t, err)

	assert.Equal(t, 20, details.TotalWorkDays)
	assert.Equal(t, 1, details.OpenRecords)
	assert.Equal(t, 1, details.TotalAbsentDays, "a day with only an open record is not absent")
	assert.True(t, dec("4000000").Equal(final))

	withoutOpen, _, err := Evaluate(model, eightHourDays(20), august2024, nil, weekdays)
	require.NoError(t, err)
	assert.True(t, withoutOpen.Equal(final))
}

func TestEvaluate_RecordsOutsidePeriodIgnored(t *testing.T) {
	model := &salary.SalaryModel{SalaryType: salary.SalaryTypeHourly, BaseSalary: dec("10000")}
	julyOut := time.Date(2024, 7, 31, 23, 0, 0, 0, jakarta)
	julyIn := time.Date(2024, 7, 31, 21, 0, 0, 0, jakarta)
	septIn := time.Date(2024, 9, 1, 0, 0, 0, 0, jakarta)
	septOut := septIn.Add(2 * time.Hour)
	lastDayIn := time.Date(2024, 8, 31, 22, 0, 0, 0, jakarta)
	lastDayOut := lastDayIn.Add(time.Hour)

	records := []attendance.Attendance{
		{CheckInTime: julyIn, CheckOutTime: &julyOut},
		{CheckInTime: septIn, CheckOutTime: &septOut},
		{CheckInTime: lastDayIn, CheckOutTime: &lastDayOut},
	}

	final, details, err := Evaluate(model, records, august2024, nil, weekdays)
	require.NoError(t, err)

	assert.Equal(t, int64(60), details.TotalWorkMinutes, "only the Aug 31 record counts")
	assert.True(t, dec("10000").Equal(final))
}

func TestEvaluate_LegacyTypeNames(t *testing.T) {
	model := monthlyModel()
	model.SalaryType = "bulanan"

	final, _, err := Evaluate(model, eightHourDays(20), august2024, nil, weekdays)
	require.NoError(t, err)
	assert.True(t, dec("4900000").Equal(final))
}

func TestEvaluate_Errors(t *testing.T) {
	t.Run("nil model", func(t *testing.T) {
		final, _, err := Evaluate(nil, eightHourDays(5), august2024, nil, weekdays)
		assert.ErrorIs(t, err, salary.ErrNoSalaryModel)
		assert.True(t, final.IsZero())
	})

	t.Run("unsupported type", func(t *testing.T) {
		model := &salary.SalaryModel{SalaryType: "weekly", BaseSalary: dec("1000000")}
		final, _, err := Evaluate(model, eightHourDays(5), august2024, nil, weekdays)
		assert.ErrorIs(t, err, salary.ErrUnsupportedSalaryModel)
		assert.True(t, final.IsZero())
	})
}
