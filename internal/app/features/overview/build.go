// internal/app/features/overview/build.go
package overview

import (
	"sort"
	"time"

	statsstore "github.com/teloworks/telodash/internal/app/store/stats"
	"github.com/teloworks/telodash/internal/app/system/format"
	"github.com/teloworks/telodash/internal/domain/models"
)

// BuildSummary derives the summary cards from the full monthly view.
// TotalUsers counts distinct emails across all rows; the month totals
// sum only the rows of the given month. Null counters count as zero.
func BuildSummary(rows []models.MonthlyStatRow, todayActive int, month time.Time) SummaryVM {
	year, mon := month.In(format.KST).Year(), int(month.In(format.KST).Month())

	emails := make(map[string]struct{}, len(rows))
	var dm, invOK, invFail, contact int64
	for _, row := range rows {
		emails[row.Email] = struct{}{}
		if row.Year != year || row.Month != mon {
			continue
		}
		dm += deref(row.DMCount)
		invOK += deref(row.InviteSuccess)
		invFail += deref(row.InviteFailed)
		contact += deref(row.ContactSuccess)
	}

	return SummaryVM{
		MonthLabel:          format.MonthKey(month),
		TotalUsers:          format.CountValue(int64(len(emails))),
		MonthDMCount:        format.CountValue(dm),
		MonthInviteSuccess:  format.CountValue(invOK),
		MonthInviteFailed:   format.CountValue(invFail),
		MonthContactSuccess: format.CountValue(contact),
		TodayActive:         format.CountValue(int64(todayActive)),
	}
}

// BuildTopUsers sums successful invites per email across every monthly
// row, then ranks emails highest-total first, ties broken by email. At
// most n entries are returned.
func BuildTopUsers(rows []models.MonthlyStatRow, n int) []TopUserVM {
	totals := make(map[string]int64, len(rows))
	for _, row := range rows {
		totals[row.Email] += deref(row.InviteSuccess)
	}

	emails := make([]string, 0, len(totals))
	for email := range totals {
		emails = append(emails, email)
	}
	sort.Slice(emails, func(i, j int) bool {
		a, b := totals[emails[i]], totals[emails[j]]
		if a != b {
			return a > b
		}
		return emails[i] < emails[j]
	})

	if len(emails) > n {
		emails = emails[:n]
	}

	top := make([]TopUserVM, 0, len(emails))
	for i, email := range emails {
		top = append(top, TopUserVM{
			Rank:          i + 1,
			Email:         email,
			InviteSuccess: format.CountValue(totals[email]),
		})
	}
	return top
}

// LastNDays returns n consecutive KST calendar dates ending at now,
// oldest first, in "YYYY-MM-DD" form.
func LastNDays(now time.Time, n int) []string {
	days := make([]string, n)
	kst := now.In(format.KST)
	for i := 0; i < n; i++ {
		days[i] = format.Day(kst.AddDate(0, 0, i-n+1))
	}
	return days
}

// BuildChartSeries aligns aggregated day sums to the requested days.
// Days with no rows get zeroes so the chart never has gaps. Labels are
// the "MM-DD" suffix of each day.
func BuildChartSeries(days []string, sums []statsstore.DaySum) ChartSeries {
	byDay := make(map[string]statsstore.DaySum, len(sums))
	for _, s := range sums {
		byDay[s.Day] = s
	}

	series := ChartSeries{
		Labels:         make([]string, len(days)),
		DMCount:        make([]int64, len(days)),
		InviteSuccess:  make([]int64, len(days)),
		InviteFailed:   make([]int64, len(days)),
		ContactSuccess: make([]int64, len(days)),
	}
	for i, day := range days {
		label := day
		if len(day) == len("2006-01-02") {
			label = day[5:]
		}
		series.Labels[i] = label

		s := byDay[day]
		series.DMCount[i] = s.DMCount
		series.InviteSuccess[i] = s.InviteSuccess
		series.InviteFailed[i] = s.InviteFailed
		series.ContactSuccess[i] = s.ContactSuccess
	}
	return series
}

func deref(n *int64) int64 {
	if n == nil {
		return 0
	}
	return *n
}
