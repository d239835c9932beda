package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

// MonthYear is a 1-indexed calendar month.
type MonthYear struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// Sponsorship is the backend record as the checkout flow sees it.
type Sponsorship struct {
	SponsorshipID int     `json:"sponsorship_id"`
	DonorID       int     `json:"donor_id"`
	StudentID     int     `json:"student_id"`
	MonthlyAmount float64 `json:"monthly_amount"`
	StartMonth    string  `json:"start_month"`
	EndMonth      string  `json:"end_month"`
	Status        string  `json:"status"`
	PaidUpTo      *string `json:"paid_up_to"`
}

// CardDetails is collected at checkout and sent once; the client never holds
// onto it after the request.
type CardDetails struct {
	CardNumber  string `json:"card_number"`
	CardHolder  string `json:"card_holder"`
	ExpiryMonth int    `json:"expiry_month"`
	ExpiryYear  int    `json:"expiry_year"`
	CVV         string `json:"cvv"`
}

// SponsorRequest is the checkout form for one student.
type SponsorRequest struct {
	StudentID     int
	MonthlyAmount float64
	From          MonthYear
	To            MonthYear
	PaymentMethod string
	Card          *CardDetails
}

// PaymentResult mirrors the backend checkout response.
type PaymentResult struct {
	Payment struct {
		PaymentID   int     `json:"payment_id"`
		ReferenceNo string  `json:"reference_no"`
		Amount      float64 `json:"amount"`
		StartMonth  string  `json:"start_month"`
		EndMonth    string  `json:"end_month"`
	} `json:"payment"`
	Sponsorship   Sponsorship `json:"sponsorship"`
	TotalAmount   float64     `json:"total_amount"`
	CoveredMonths []string    `json:"covered_months"`
}

// SponsorResult reports the completed flow, flagging whether the sponsorship
// was newly created or an existing one was reused.
type SponsorResult struct {
	SponsorshipID int
	Created       bool
	Payment       *PaymentResult
}

// SponsorStudent runs the full flow: reuse the donor's existing sponsorship
// for the student when one exists, otherwise create one — adopting the
// identity from an "already exists" rejection — then submit the payment for
// the unpaid months. Nothing is retried; failures surface as one message.
func (c *Client) SponsorStudent(ctx context.Context, req SponsorRequest) (*SponsorResult, error) {
	sponsorshipID, created, err := c.resolveSponsorship(ctx, req)
	if err != nil {
		return nil, err
	}

	payment, err := c.SubmitPayment(ctx, sponsorshipID, req)
	if err != nil {
		return nil, err
	}

	return &SponsorResult{
		SponsorshipID: sponsorshipID,
		Created:       created,
		Payment:       payment,
	}, nil
}

// resolveSponsorship picks the sponsorship identity to pay against.
func (c *Client) resolveSponsorship(ctx context.Context, req SponsorRequest) (int, bool, error) {
	// Check the donor's own sponsorships first; an overlapping record is
	// reusable, not a duplicate.
	existing, err := c.mySponsorshipsForStudent(ctx, req.StudentID)
	if err != nil {
		return 0, false, err
	}
	for _, s := range existing {
		if s.Status != "CANCELLED" {
			return s.SponsorshipID, false, nil
		}
	}

	body := map[string]interface{}{
		"student_id":     req.StudentID,
		"monthly_amount": req.MonthlyAmount,
		"from":           req.From,
		"to":             req.To,
		"payment_method": req.PaymentMethod,
	}
	var resp dataEnvelope[Sponsorship]
	err = c.do(ctx, http.MethodPost, "/api/v1/sponsorships", body, &resp)
	if err == nil {
		return resp.Data.SponsorshipID, true, nil
	}

	// The backend is the arbiter of uniqueness: adopt the identity it
	// reports instead of failing the flow.
	var duplicate *DuplicateError
	if errors.As(err, &duplicate) {
		return duplicate.ExistingSponsorshipID, false, nil
	}
	return 0, false, err
}

func (c *Client) mySponsorshipsForStudent(ctx context.Context, studentID int) ([]Sponsorship, error) {
	var resp struct {
		Pagination struct {
			Data []Sponsorship `json:"data"`
		} `json:"pagination"`
	}
	path := "/api/v1/sponsorships?studentId=" + strconv.Itoa(studentID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Pagination.Data, nil
}

// SubmitPayment pays the unpaid months of the range against a sponsorship.
func (c *Client) SubmitPayment(ctx context.Context, sponsorshipID int, req SponsorRequest) (*PaymentResult, error) {
	body := map[string]interface{}{
		"from":           req.From,
		"to":             req.To,
		"payment_method": req.PaymentMethod,
	}
	if req.Card != nil {
		body["card"] = req.Card
	}

	var resp dataEnvelope[PaymentResult]
	path := fmt.Sprintf("/api/v1/sponsorships/%d/payment", sponsorshipID)
	if err := c.do(ctx, http.MethodPost, path, body, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// PaidMonths fetches the reconciled paid-month keys for a student so the
// month picker can disable them.
func (c *Client) PaidMonths(ctx context.Context, studentID int) ([]string, error) {
	var env dataEnvelope[[]string]
	path := fmt.Sprintf("/api/v1/students/%d/paid-months", studentID)
	if err := c.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}
