// Package trigger holds the static catalog mapping domain event codes to
// notification priority, category, template and presentation rules.
package trigger

// Code identifies a domain event type that may produce a notification.
type Code string

// Category groups triggers for preference gating and frequency capping.
type Category string

const (
	CategorySecurity      Category = "security"
	CategoryTransactional Category = "transactional"
	CategoryReminders     Category = "appointment_reminders"
	CategoryMembership    Category = "membership_notifications"
	CategoryDocuments     Category = "document_notifications"
	CategoryMarketing     Category = "marketing_emails"
	CategoryLifeCycle     Category = "life_cycle"
)

// BlockingPriority is the tier at or above which a notification bypasses
// quiet hours and priority suppression never applies against it.
const BlockingPriority = 80

// InAppConfig controls how a trigger surfaces inside the app.
type InAppConfig struct {
	Banner             bool
	Inbox              bool
	Style              string // info, success, warning, error, urgent
	Persistent         bool
	AutoDismissSeconds int
}

// Definition is one immutable catalog entry.
type Definition struct {
	Code        Code
	Priority    int // higher = more urgent
	Category    Category
	TemplateKey string
	InApp       InAppConfig
}

// Account & security
const (
	AccountRegSuccess      Code = "ACCOUNT_REG_SUCCESS"
	AccountEmailVerify     Code = "ACCOUNT_EMAIL_VERIFY"
	AccountPasswordReset   Code = "ACCOUNT_PASSWORD_RESET"
	AccountPasswordChanged Code = "ACCOUNT_PASSWORD_CHANGED"
	AccountNewDevice       Code = "ACCOUNT_NEW_DEVICE"
	AccountMFAUpdated      Code = "ACCOUNT_MFA_UPDATED"
)

// Booking lifecycle
const (
	BookingPaymentPending        Code = "BOOKING_PAYMENT_PENDING"
	BookingHoldExpired           Code = "BOOKING_HOLD_EXPIRED"
	BookingConfirmed             Code = "BOOKING_CONFIRMED"
	BookingReminder24H           Code = "BOOKING_REMINDER_24H"
	BookingReminder1H            Code = "BOOKING_REMINDER_1H"
	BookingLiveImminent          Code = "BOOKING_LIVE_IMMINENT"
	BookingRescheduled           Code = "BOOKING_RESCHEDULED"
	BookingCancelledPatientEarly Code = "BOOKING_CANCELLED_PATIENT_EARLY"
	BookingCancelledPatientLate  Code = "BOOKING_CANCELLED_PATIENT_LATE"
	BookingCancelledDoctor       Code = "BOOKING_CANCELLED_DOCTOR"
	BookingDoctorNoShow          Code = "BOOKING_DOCTOR_NO_SHOW"
	BookingPatientNoShow         Code = "BOOKING_PATIENT_NO_SHOW"
)

// Membership & payments
const (
	MembershipActivated          Code = "MEMBERSHIP_ACTIVATED"
	MembershipRenewalUpcoming    Code = "MEMBERSHIP_RENEWAL_UPCOMING"
	MembershipRenewed            Code = "MEMBERSHIP_RENEWED"
	MembershipPaymentFailed      Code = "MEMBERSHIP_PAYMENT_FAILED_1"
	MembershipSuspended          Code = "MEMBERSHIP_SUSPENDED"
	MembershipCancelled          Code = "MEMBERSHIP_CANCELLED"
	MembershipReactivated        Code = "MEMBERSHIP_REACTIVATED"
	MembershipAllowanceOneLeft   Code = "MEMBERSHIP_ALLOWANCE_1_LEFT"
	MembershipAllowanceExhausted Code = "MEMBERSHIP_ALLOWANCE_EXHAUSTED"
	MembershipMonthlyReset       Code = "MEMBERSHIP_MONTHLY_RESET"
	PaymentReceipt               Code = "PAYMENT_RECEIPT"
	PaymentRefundIssued          Code = "PAYMENT_REFUND_ISSUED"
)

// Health profile & documents
const (
	HealthProfileIncomplete Code = "HEALTH_PROFILE_INCOMPLETE"
	HealthProfileCompleted  Code = "HEALTH_PROFILE_COMPLETED"
	HealthDocUploaded       Code = "HEALTH_DOC_PATIENT_UPLOADED"
	HealthDocShared         Code = "HEALTH_DOC_DOCTOR_SHARED"
	HealthDocUploadFailed   Code = "HEALTH_DOC_UPLOAD_FAILED"
)

// Calendar
const (
	CalendarAvailabilityUpdated Code = "CALENDAR_AVAILABILITY_UPDATED"
	CalendarConflictDetected    Code = "CALENDAR_CONFLICT_DETECTED"
)

// Growth & lifecycle
const (
	GrowthOnboardingWelcome   Code = "GROWTH_ONBOARDING_WELCOME"
	GrowthOnboardingProfile   Code = "GROWTH_ONBOARDING_PROFILE"
	GrowthFirstBookingNudge   Code = "GROWTH_FIRST_BOOKING_NUDGE"
	GrowthReEngagement30D     Code = "GROWTH_RE_ENGAGEMENT_30D"
	GrowthReEngagement90D     Code = "GROWTH_RE_ENGAGEMENT_90D"
	GrowthPostConsultSurvey   Code = "GROWTH_SURVEY_POST_CONSULTATION"
	GrowthReferralProgram     Code = "GROWTH_REFERRAL_PROGRAM"
	GrowthFeatureAnnouncement Code = "GROWTH_FEATURE_ANNOUNCEMENT"
	GrowthSeasonalCampaign    Code = "GROWTH_SEASONAL_CAMPAIGN"
	GrowthMembershipUpsell    Code = "GROWTH_MEMBERSHIP_UPSELL"
	GrowthDoctorRatingRequest Code = "GROWTH_DOCTOR_RATING_REQUEST"
	GrowthAppUpdateAvailable  Code = "GROWTH_APP_UPDATE_AVAILABLE"
)

var catalog = map[Code]Definition{
	AccountRegSuccess:      {AccountRegSuccess, 90, CategorySecurity, "account_registration_success", InAppConfig{Inbox: true, Style: "success", AutoDismissSeconds: 10}},
	AccountEmailVerify:     {AccountEmailVerify, 95, CategorySecurity, "account_email_verify", InAppConfig{}},
	AccountPasswordReset:   {AccountPasswordReset, 95, CategorySecurity, "account_password_reset", InAppConfig{}},
	AccountPasswordChanged: {AccountPasswordChanged, 90, CategorySecurity, "account_password_changed", InAppConfig{Inbox: true, Style: "warning", AutoDismissSeconds: 10}},
	AccountNewDevice:       {AccountNewDevice, 90, CategorySecurity, "account_new_device", InAppConfig{Banner: true, Inbox: true, Style: "warning", Persistent: true}},
	AccountMFAUpdated:      {AccountMFAUpdated, 90, CategorySecurity, "account_mfa_updated", InAppConfig{Inbox: true, Style: "info", AutoDismissSeconds: 10}},

	BookingPaymentPending:        {BookingPaymentPending, 85, CategoryTransactional, "booking_payment_pending", InAppConfig{Banner: true, Style: "warning", AutoDismissSeconds: 30}},
	BookingHoldExpired:           {BookingHoldExpired, 70, CategoryTransactional, "booking_hold_expired", InAppConfig{Inbox: true, Style: "info", AutoDismissSeconds: 10}},
	BookingConfirmed:             {BookingConfirmed, 90, CategoryTransactional, "booking_confirmation", InAppConfig{Banner: true, Inbox: true, Style: "success", AutoDismissSeconds: 10}},
	BookingReminder24H:           {BookingReminder24H, 70, CategoryReminders, "booking_reminder_24h", InAppConfig{Inbox: true, Style: "info", AutoDismissSeconds: 10}},
	BookingReminder1H:            {BookingReminder1H, 80, CategoryReminders, "booking_reminder_1h", InAppConfig{Banner: true, Style: "info", AutoDismissSeconds: 30}},
	BookingLiveImminent:          {BookingLiveImminent, 85, CategoryReminders, "booking_live_imminent", InAppConfig{Banner: true, Style: "urgent", Persistent: true}},
	BookingRescheduled:           {BookingRescheduled, 75, CategoryTransactional, "booking_rescheduled", InAppConfig{Inbox: true, Style: "info", AutoDismissSeconds: 10}},
	BookingCancelledPatientEarly: {BookingCancelledPatientEarly, 65, CategoryTransactional, "booking_cancelled_patient_early", InAppConfig{Inbox: true, Style: "info", AutoDismissSeconds: 10}},
	BookingCancelledPatientLate:  {BookingCancelledPatientLate, 65, CategoryTransactional, "booking_cancelled_patient_late", InAppConfig{Inbox: true, Style: "info", AutoDismissSeconds: 10}},
	BookingCancelledDoctor:       {BookingCancelledDoctor, 85, CategoryTransactional, "booking_cancelled_doctor", InAppConfig{Banner: true, Inbox: true, Style: "error", Persistent: true}},
	BookingDoctorNoShow:          {BookingDoctorNoShow, 75, CategoryTransactional, "booking_doctor_no_show", InAppConfig{Inbox: true, Style: "error", AutoDismissSeconds: 10}},
	BookingPatientNoShow:         {BookingPatientNoShow, 60, CategoryTransactional, "booking_patient_no_show", InAppConfig{Inbox: true, Style: "warning", AutoDismissSeconds: 10}},

	MembershipActivated:          {MembershipActivated, 70, CategoryMembership, "membership_activated", InAppConfig{Inbox: true, Style: "success", AutoDismissSeconds: 10}},
	MembershipRenewalUpcoming:    {MembershipRenewalUpcoming, 55, CategoryMembership, "membership_renewal_upcoming", InAppConfig{Inbox: true, Style: "info", AutoDismissSeconds: 10}},
	MembershipRenewed:            {MembershipRenewed, 60, CategoryMembership, "membership_renewed", InAppConfig{Inbox: true, Style: "success", AutoDismissSeconds: 10}},
	MembershipPaymentFailed:      {MembershipPaymentFailed, 85, CategoryMembership, "membership_payment_failed", InAppConfig{Banner: true, Inbox: true, Style: "error", Persistent: true}},
	MembershipSuspended:          {MembershipSuspended, 80, CategoryMembership, "membership_suspended", InAppConfig{Banner: true, Inbox: true, Style: "error", Persistent: true}},
	MembershipCancelled:          {MembershipCancelled, 65, CategoryMembership, "membership_cancelled", InAppConfig{Inbox: true, Style: "info", AutoDismissSeconds: 10}},
	MembershipReactivated:        {MembershipReactivated, 65, CategoryMembership, "membership_reactivated", InAppConfig{Inbox: true, Style: "success", AutoDismissSeconds: 10}},
	MembershipAllowanceOneLeft:   {MembershipAllowanceOneLeft, 50, CategoryMembership, "membership_allowance_1_left", InAppConfig{Inbox: true, Style: "info", AutoDismissSeconds: 10}},
	MembershipAllowanceExhausted: {MembershipAllowanceExhausted, 55, CategoryMembership, "membership_allowance_exhausted", InAppConfig{Banner: true, Inbox: true, Style: "warning", AutoDismissSeconds: 30}},
	MembershipMonthlyReset:       {MembershipMonthlyReset, 40, CategoryMembership, "membership_monthly_reset", InAppConfig{Inbox: true, Style: "info", AutoDismissSeconds: 10}},
	PaymentReceipt:               {PaymentReceipt, 75, CategoryTransactional, "payment_receipt", InAppConfig{}},
	PaymentRefundIssued:          {PaymentRefundIssued, 75, CategoryTransactional, "payment_refund_issued", InAppConfig{Inbox: true, Style: "info", AutoDismissSeconds: 10}},

	HealthProfileIncomplete: {HealthProfileIncomplete, 30, CategoryLifeCycle, "health_profile_incomplete", InAppConfig{Banner: true, Style: "info", AutoDismissSeconds: 30}},
	HealthProfileCompleted:  {HealthProfileCompleted, 35, CategoryLifeCycle, "health_profile_completed", InAppConfig{Inbox: true, Style: "success", AutoDismissSeconds: 10}},
	HealthDocUploaded:       {HealthDocUploaded, 60, CategoryDocuments, "health_doc_patient_uploaded", InAppConfig{Inbox: true, Style: "info", AutoDismissSeconds: 10}},
	HealthDocShared:         {HealthDocShared, 65, CategoryDocuments, "health_doc_doctor_shared", InAppConfig{Banner: true, Inbox: true, Style: "info", AutoDismissSeconds: 30}},
	HealthDocUploadFailed:   {HealthDocUploadFailed, 70, CategoryDocuments, "health_doc_upload_failed", InAppConfig{Banner: true, Style: "error", AutoDismissSeconds: 30}},

	CalendarAvailabilityUpdated: {CalendarAvailabilityUpdated, 45, CategoryTransactional, "calendar_availability_updated", InAppConfig{Inbox: true, Style: "info", AutoDismissSeconds: 10}},
	CalendarConflictDetected:    {CalendarConflictDetected, 80, CategoryTransactional, "calendar_conflict_detected", InAppConfig{Banner: true, Inbox: true, Style: "error", Persistent: true}},

	GrowthOnboardingWelcome:   {GrowthOnboardingWelcome, 35, CategoryLifeCycle, "growth_onboarding_welcome", InAppConfig{Inbox: true, Style: "info", AutoDismissSeconds: 10}},
	GrowthOnboardingProfile:   {GrowthOnboardingProfile, 25, CategoryLifeCycle, "growth_onboarding_profile", InAppConfig{Banner: true, Style: "info", AutoDismissSeconds: 30}},
	GrowthFirstBookingNudge:   {GrowthFirstBookingNudge, 25, CategoryLifeCycle, "growth_first_booking_nudge", InAppConfig{Inbox: true, Style: "info", AutoDismissSeconds: 10}},
	GrowthReEngagement30D:     {GrowthReEngagement30D, 20, CategoryLifeCycle, "growth_re_engagement_30d", InAppConfig{}},
	GrowthReEngagement90D:     {GrowthReEngagement90D, 20, CategoryLifeCycle, "growth_re_engagement_90d", InAppConfig{}},
	GrowthPostConsultSurvey:   {GrowthPostConsultSurvey, 45, CategoryLifeCycle, "growth_survey_post_consultation", InAppConfig{Inbox: true, Style: "info", AutoDismissSeconds: 10}},
	GrowthReferralProgram:     {GrowthReferralProgram, 15, CategoryMarketing, "growth_referral_program", InAppConfig{Inbox: true, Style: "info", AutoDismissSeconds: 10}},
	GrowthFeatureAnnouncement: {GrowthFeatureAnnouncement, 15, CategoryMarketing, "growth_feature_announcement", InAppConfig{Inbox: true, Style: "info", AutoDismissSeconds: 10}},
	GrowthSeasonalCampaign:    {GrowthSeasonalCampaign, 10, CategoryMarketing, "growth_seasonal_campaign", InAppConfig{}},
	GrowthMembershipUpsell:    {GrowthMembershipUpsell, 15, CategoryMarketing, "growth_membership_upsell", InAppConfig{Banner: true, Style: "info", AutoDismissSeconds: 30}},
	GrowthDoctorRatingRequest: {GrowthDoctorRatingRequest, 30, CategoryLifeCycle, "growth_doctor_rating_request", InAppConfig{Inbox: true, Style: "info", AutoDismissSeconds: 10}},
	GrowthAppUpdateAvailable:  {GrowthAppUpdateAvailable, 10, CategoryLifeCycle, "growth_app_update_available", InAppConfig{Banner: true, Style: "info", AutoDismissSeconds: 10}},
}

// Lookup returns the definition for a code.
func Lookup(code Code) (Definition, bool) {
	def, ok := catalog[code]
	return def, ok
}

// All returns every catalog entry. Order is not defined.
func All() []Definition {
	defs := make([]Definition, 0, len(catalog))
	for _, d := range catalog {
		defs = append(defs, d)
	}
	return defs
}

// alwaysImmediate triggers are never deferred by quiet hours regardless of
// priority: security events, the confirmation a user is waiting for, and
// time-pinned reminders that are useless if delayed.
var alwaysImmediate = map[Code]bool{
	AccountEmailVerify:   true,
	AccountPasswordReset: true,
	AccountNewDevice:     true,
	BookingConfirmed:     true,
	BookingReminder1H:    true,
	BookingLiveImminent:  true,
}

// AlwaysImmediate reports whether the trigger bypasses quiet hours.
func AlwaysImmediate(code Code) bool {
	return alwaysImmediate[code]
}

// emailExcluded triggers surface in-app only; email would be noise.
var emailExcluded = map[Code]bool{
	CalendarAvailabilityUpdated: true,
	GrowthAppUpdateAvailable:    true,
	HealthProfileCompleted:      true,
}

// EmailEligible reports whether the trigger may go out by email at all.
func EmailEligible(code Code) bool {
	return !emailExcluded[code]
}

// smsEligible and pushEligible are fixed allowlists: only time-critical or
// urgent triggers may interrupt on these channels.
var smsEligible = map[Code]bool{
	BookingLiveImminent:     true,
	BookingReminder1H:       true,
	MembershipPaymentFailed: true,
	BookingCancelledDoctor:  true,
}

var pushEligible = map[Code]bool{
	BookingLiveImminent:     true,
	BookingReminder1H:       true,
	MembershipPaymentFailed: true,
	BookingCancelledDoctor:  true,
}

// SMSEligible reports whether the trigger may go out by SMS.
func SMSEligible(code Code) bool {
	return smsEligible[code]
}

// PushEligible reports whether the trigger may go out by push.
func PushEligible(code Code) bool {
	return pushEligible[code]
}
