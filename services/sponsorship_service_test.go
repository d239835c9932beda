package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"liftakids-api/models"
)

func TestComputeSponsorButtonStatusSponsoredStudent(t *testing.T) {
	student := models.Student{StudentID: 7, IsSponsored: true}

	status := ComputeSponsorButtonStatus(student, nil, time.Now())

	if status.Status != SponsorStatusSponsored {
		t.Fatalf("expected sponsored, got %q", status.Status)
	}
	if status.DaysLeft != 0 {
		t.Fatalf("sponsored status must not carry a countdown, got %d", status.DaysLeft)
	}
}

func TestComputeSponsorButtonStatusCompletedSponsorship(t *testing.T) {
	student := models.Student{StudentID: 7}
	existing := &models.Sponsorship{
		SponsorshipID: 11,
		Status:        models.SponsorshipStatusCompleted,
	}

	status := ComputeSponsorButtonStatus(student, existing, time.Now())

	if status.Status != SponsorStatusSponsored {
		t.Fatalf("expected sponsored, got %q", status.Status)
	}
	if status.SponsorshipID == nil || *status.SponsorshipID != 11 {
		t.Fatalf("expected sponsorship id 11, got %v", status.SponsorshipID)
	}
}

func TestComputeSponsorButtonStatusCooldownCountdown(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	student := models.Student{StudentID: 7}

	cases := []struct {
		name     string
		elapsed  time.Duration
		status   string
		daysLeft int
	}{
		{name: "just created", elapsed: time.Hour, status: SponsorStatusProcessing, daysLeft: 3},
		{name: "one day in", elapsed: 25 * time.Hour, status: SponsorStatusProcessing, daysLeft: 2},
		{name: "two days in", elapsed: 49 * time.Hour, status: SponsorStatusProcessing, daysLeft: 1},
		{name: "cooldown over", elapsed: 73 * time.Hour, status: SponsorStatusAvailable},
		{name: "well past", elapsed: 10 * 24 * time.Hour, status: SponsorStatusAvailable},
	}

	for _, tc := range cases {
		createAt := now.Add(-tc.elapsed)
		existing := &models.Sponsorship{
			SponsorshipID: 21,
			Status:        models.SponsorshipStatusPendingPayment,
			CreateAt:      &createAt,
		}

		status := ComputeSponsorButtonStatus(student, existing, now)

		if status.Status != tc.status {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.status, status.Status)
		}
		if status.DaysLeft != tc.daysLeft {
			t.Fatalf("%s: expected %d days left, got %d", tc.name, tc.daysLeft, status.DaysLeft)
		}
	}
}

func TestComputeSponsorButtonStatusActiveSponsorshipIsNotProcessing(t *testing.T) {
	now := time.Now()
	createAt := now.Add(-time.Hour)
	student := models.Student{StudentID: 7}
	existing := &models.Sponsorship{
		SponsorshipID: 31,
		Status:        models.SponsorshipStatusActive,
		CreateAt:      &createAt,
	}

	status := ComputeSponsorButtonStatus(student, existing, now)

	if status.Status != SponsorStatusAvailable {
		t.Fatalf("active sponsorship must not trigger the cooldown, got %q", status.Status)
	}
}

func TestFindBlockingReturnsNewestNonCancelled(t *testing.T) {
	queryPattern := regexp.MustCompile(`SELECT .*sponsorships.*donor_id = \? AND student_id = \? AND status <> \? AND delete_at IS NULL.*ORDER BY sponsorship_id DESC`)

	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: queryPattern,
			args:    []driver.Value{int64(4), int64(9), models.SponsorshipStatusCancelled},
			columns: []string{"sponsorship_id", "donor_id", "student_id", "status", "start_month", "end_month", "monthly_amount"},
			rows: [][]driver.Value{
				{int64(15), int64(4), int64(9), models.SponsorshipStatusPendingPayment, "2025-01", "2025-06", float64(1500)},
			},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewSponsorshipService(db)

	existing, err := svc.FindBlocking(4, 9)
	if err != nil {
		t.Fatalf("FindBlocking returned error: %v", err)
	}
	if existing == nil {
		t.Fatalf("expected a blocking sponsorship")
	}
	if existing.SponsorshipID != 15 || existing.Status != models.SponsorshipStatusPendingPayment {
		t.Fatalf("unexpected sponsorship: %+v", existing)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestFindBlockingReturnsNilWhenNoneExists(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT .*sponsorships.*donor_id = \? AND student_id = \?`),
			args:    []driver.Value{int64(4), int64(9), models.SponsorshipStatusCancelled},
			columns: []string{"sponsorship_id"},
			rows:    [][]driver.Value{},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewSponsorshipService(db)

	existing, err := svc.FindBlocking(4, 9)
	if err != nil {
		t.Fatalf("FindBlocking returned error: %v", err)
	}
	if existing != nil {
		t.Fatalf("expected nil, got %+v", existing)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestPaymentHistoryJoinsCompletedPayments(t *testing.T) {
	historyPattern := regexp.MustCompile(`SELECT payments\.start_month, payments\.end_month FROM .*payments.*JOIN sponsorships ON sponsorships\.sponsorship_id = payments\.sponsorship_id.*student_id = \?.*status = \?`)

	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: historyPattern,
			args:    []driver.Value{int64(9), models.PaymentStatusCompleted},
			columns: []string{"start_month", "end_month"},
			rows: [][]driver.Value{
				{"2025-01", "2025-02"},
				{"2025-04", "2025-04"},
			},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewSponsorshipService(db)

	history, err := svc.PaymentHistory(9)
	if err != nil {
		t.Fatalf("PaymentHistory returned error: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 intervals, got %d", len(history))
	}
	if history[0].StartMonth != "2025-01" || history[1].EndMonth != "2025-04" {
		t.Fatalf("unexpected history: %+v", history)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestSubmitPaymentRejectsFullyPaidRange(t *testing.T) {
	sponsorshipPattern := regexp.MustCompile(`SELECT .*sponsorships.*sponsorship_id = \? AND delete_at IS NULL`)
	historyPattern := regexp.MustCompile(`SELECT payments\.start_month, payments\.end_month FROM .*payments.*student_id = \?`)

	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: sponsorshipPattern,
			args:    []driver.Value{int64(15)},
			columns: []string{"sponsorship_id", "donor_id", "student_id", "status", "monthly_amount", "start_month", "end_month"},
			rows: [][]driver.Value{
				{int64(15), int64(4), int64(9), models.SponsorshipStatusActive, float64(1000), "2025-01", "2025-06"},
			},
		},
		{
			kind:    kindQuery,
			pattern: historyPattern,
			args:    []driver.Value{int64(9), models.PaymentStatusCompleted},
			columns: []string{"start_month", "end_month"},
			rows: [][]driver.Value{
				{"2025-01", "2025-03"},
			},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewSponsorshipService(db)

	_, err := svc.SubmitPayment(SubmitPaymentInput{
		SponsorshipID: 15,
		DonorID:       4,
		From:          MonthYear{Month: 1, Year: 2025},
		To:            MonthYear{Month: 3, Year: 2025},
	})
	if !errors.Is(err, ErrRangeAlreadyPaid) {
		t.Fatalf("expected ErrRangeAlreadyPaid, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestSubmitPaymentRejectsWrongOwner(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT .*sponsorships.*sponsorship_id = \?`),
			args:    []driver.Value{int64(15)},
			columns: []string{"sponsorship_id", "donor_id", "student_id"},
			rows: [][]driver.Value{
				{int64(15), int64(4), int64(9)},
			},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewSponsorshipService(db)

	_, err := svc.SubmitPayment(SubmitPaymentInput{
		SponsorshipID: 15,
		DonorID:       99,
		From:          MonthYear{Month: 1, Year: 2025},
		To:            MonthYear{Month: 3, Year: 2025},
	})
	if !errors.Is(err, ErrNotSponsorshipOwner) {
		t.Fatalf("expected ErrNotSponsorshipOwner, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestStudentSponsorStatusUsesCooldownWindow(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	createAt := now.Add(-49 * time.Hour)

	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT .*students.*student_id = \? AND delete_at IS NULL`),
			args:    []driver.Value{int64(9)},
			columns: []string{"student_id", "student_name", "is_sponsored"},
			rows: [][]driver.Value{
				{int64(9), "Rahim", false},
			},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT .*sponsorships.*donor_id = \? AND student_id = \?`),
			args:    []driver.Value{int64(4), int64(9), models.SponsorshipStatusCancelled},
			columns: []string{"sponsorship_id", "donor_id", "student_id", "status", "create_at"},
			rows: [][]driver.Value{
				{int64(21), int64(4), int64(9), models.SponsorshipStatusPendingPayment, createAt},
			},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewSponsorshipService(db)
	svc.now = func() time.Time { return now }

	status, err := svc.StudentSponsorStatus(4, 9)
	if err != nil {
		t.Fatalf("StudentSponsorStatus returned error: %v", err)
	}
	if status.Status != SponsorStatusProcessing {
		t.Fatalf("expected processing, got %q", status.Status)
	}
	if status.DaysLeft != 1 {
		t.Fatalf("expected 1 day left, got %d", status.DaysLeft)
	}
	if status.SponsorshipID == nil || *status.SponsorshipID != 21 {
		t.Fatalf("expected sponsorship id 21, got %v", status.SponsorshipID)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}
