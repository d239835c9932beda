package services

import (
	"fmt"
	"log"
	"time"

	"liftakids-api/config"
	"liftakids-api/models"
)

// NotifyPaymentSuccess records a donor notification and sends the receipt
// email. Both are best-effort; a failed side effect never rolls back the
// payment.
func NotifyPaymentSuccess(donor models.Donor, student models.Student, result *PaymentResult) {
	sponsorshipID := result.Sponsorship.SponsorshipID
	notification := models.Notification{
		AccountType:          models.AccountTypeDonor,
		AccountID:            donor.DonorID,
		Title:                "Payment received",
		Message:              fmt.Sprintf("Your payment of %.2f for %s (%s to %s) was received.", result.TotalAmount, student.StudentName, result.Payment.StartMonth, result.Payment.EndMonth),
		Type:                 "success",
		RelatedSponsorshipID: &sponsorshipID,
		CreateAt:             time.Now(),
	}
	if err := config.DB.Create(&notification).Error; err != nil {
		log.Printf("failed to create payment notification for donor %d: %v", donor.DonorID, err)
	}

	subject := "Lift A Kids - payment receipt"
	body := fmt.Sprintf(
		"<p>Dear %s,</p><p>We received your payment of <b>%.2f</b> covering <b>%s</b> to <b>%s</b> for %s.</p><p>Reference: %s</p><p>Thank you for your support.</p>",
		donor.DonorName, result.TotalAmount, result.Payment.StartMonth, result.Payment.EndMonth,
		student.StudentName, result.Payment.ReferenceNo,
	)
	if err := config.SendMail([]string{donor.Email}, subject, body); err != nil {
		log.Printf("failed to send receipt email to %s: %v", donor.Email, err)
	}
}

// NotifyInstitutionApproval records the approval decision for the
// institution's inbox and mails them.
func NotifyInstitutionApproval(institution models.Institution, approved bool) {
	title := "Institution approved"
	message := fmt.Sprintf("%s has been approved. You can now manage your student roster.", institution.InstitutionName)
	kind := "success"
	if !approved {
		title = "Institution rejected"
		message = fmt.Sprintf("%s was not approved. Contact the administrators for details.", institution.InstitutionName)
		kind = "warning"
	}

	notification := models.Notification{
		AccountType: models.AccountTypeInstitution,
		AccountID:   institution.InstitutionID,
		Title:       title,
		Message:     message,
		Type:        kind,
		CreateAt:    time.Now(),
	}
	if err := config.DB.Create(&notification).Error; err != nil {
		log.Printf("failed to create approval notification for institution %d: %v", institution.InstitutionID, err)
	}

	if err := config.SendMail([]string{institution.Email}, "Lift A Kids - "+title, "<p>"+message+"</p>"); err != nil {
		log.Printf("failed to send approval email to %s: %v", institution.Email, err)
	}
}
