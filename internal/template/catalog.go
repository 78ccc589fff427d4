package template

// messageDef is one source template before parsing. Bodies are plain text;
// paragraphs are separated by blank lines and converted to HTML on render.
type messageDef struct {
	Subject string
	Body    string
}

// catalog maps locale -> template key -> message. "en" is complete; other
// locales carry overrides and fall back to "en" for the rest.
var catalog = map[string]map[string]messageDef{
	"en": {
		"account_registration_success": {
			Subject: "Welcome to Doktu, {{.first_name}}",
			Body:    "Hi {{.first_name}},\n\nYour account has been created. You can book your first consultation from your dashboard: {{.dashboard_url}}\n\nNeed help? Write to {{.support_email}}.",
		},
		"account_email_verify": {
			Subject: "Verify your email address",
			Body:    "Hi {{.first_name}},\n\nPlease confirm your email address by following this link: {{.verify_link}}\n\nIf you did not create a Doktu account, you can ignore this message.",
		},
		"account_password_reset": {
			Subject: "Reset your password",
			Body:    "Hi {{.first_name}},\n\nUse this link to choose a new password: {{.reset_link}}\n\nThe link expires shortly. If you did not request a reset, contact {{.support_email}}.",
		},
		"account_password_changed": {
			Subject: "Your password was changed",
			Body:    "Hi {{.first_name}},\n\nYour Doktu password was just changed. If this was not you, contact {{.support_email}} immediately.",
		},
		"account_new_device": {
			Subject: "New sign-in to your account",
			Body:    "Hi {{.first_name}},\n\nYour account was accessed from a new device. If you do not recognize this activity, change your password and contact {{.support_email}}.",
		},
		"account_mfa_updated": {
			Subject: "Two-factor authentication updated",
			Body:    "Hi {{.first_name}},\n\nThe two-factor authentication settings on your account were changed. If this was not you, contact {{.support_email}}.",
		},

		"booking_payment_pending": {
			Subject: "Complete your booking",
			Body:    "Hi {{.first_name}},\n\nYour consultation slot with {{.doctor_name}} is on hold. Complete the payment to confirm it: {{.dashboard_url}}",
		},
		"booking_hold_expired": {
			Subject: "Your reserved slot has expired",
			Body:    "Hi {{.first_name}},\n\nThe slot you reserved was released because the payment was not completed in time. You can pick a new slot anytime: {{.dashboard_url}}",
		},
		"booking_confirmation": {
			Subject: "Consultation confirmed with {{.doctor_name}}",
			Body:    "Hi {{.first_name}},\n\nYour consultation with {{.doctor_name}} is confirmed for {{.appointment_datetime}}.\n\nJoin link: {{.join_link}}\n\nYou can manage this appointment from your dashboard: {{.dashboard_url}}",
		},
		"booking_reminder_24h": {
			Subject: "Reminder: consultation tomorrow at {{.appointment_time}}",
			Body:    "Hi {{.first_name}},\n\nThis is a reminder of your consultation with {{.doctor_name}} on {{.appointment_datetime}}.\n\nJoin link: {{.join_link}}",
		},
		"booking_reminder_1h": {
			Subject: "Your consultation starts in one hour",
			Body:    "Hi {{.first_name}},\n\nYour consultation with {{.doctor_name}} starts at {{.appointment_time}}.\n\nJoin link: {{.join_link}}",
		},
		"booking_live_imminent": {
			Subject: "Your consultation is starting now",
			Body:    "Hi {{.first_name}},\n\n{{.doctor_name}} is ready for you. Join now: {{.join_link}}",
		},
		"booking_rescheduled": {
			Subject: "Your consultation was rescheduled",
			Body:    "Hi {{.first_name}},\n\nYour consultation with {{.doctor_name}} has been moved to {{.appointment_datetime}}.\n\nJoin link: {{.join_link}}",
		},
		"booking_cancelled_patient_early": {
			Subject: "Your consultation was cancelled",
			Body:    "Hi {{.first_name}},\n\nYour consultation with {{.doctor_name}} on {{.appointment_datetime}} was cancelled. The amount paid has been credited back to your account.",
		},
		"booking_cancelled_patient_late": {
			Subject: "Your consultation was cancelled",
			Body:    "Hi {{.first_name}},\n\nYour consultation with {{.doctor_name}} on {{.appointment_datetime}} was cancelled. Because the cancellation was under the notice period, the consultation fee is not refundable.",
		},
		"booking_cancelled_doctor": {
			Subject: "Your doctor cancelled the consultation",
			Body:    "Hi {{.first_name}},\n\n{{.doctor_name}} had to cancel your consultation scheduled for {{.appointment_datetime}}. The full amount has been refunded. You can rebook anytime: {{.dashboard_url}}",
		},
		"booking_doctor_no_show": {
			Subject: "We're sorry about your consultation",
			Body:    "Hi {{.first_name}},\n\nYour doctor could not attend your consultation on {{.appointment_datetime}}. The full amount has been refunded and our team has been notified. Contact {{.support_email}} if you need anything.",
		},
		"booking_patient_no_show": {
			Subject: "You missed your consultation",
			Body:    "Hi {{.first_name}},\n\nYou did not join your consultation with {{.doctor_name}} on {{.appointment_datetime}}. Per our cancellation policy the fee is not refundable. You can book a new slot here: {{.dashboard_url}}",
		},

		"membership_activated": {
			Subject: "Your membership is active",
			Body:    "Hi {{.first_name}},\n\nYour Doktu membership is now active. Your covered consultations are available from your dashboard: {{.dashboard_url}}",
		},
		"membership_renewal_upcoming": {
			Subject: "Your membership renews soon",
			Body:    "Hi {{.first_name}},\n\nYour membership renews on {{.renewal_date}}. No action is needed; you can review your plan here: {{.dashboard_url}}",
		},
		"membership_renewed": {
			Subject: "Your membership was renewed",
			Body:    "Hi {{.first_name}},\n\nYour membership has been renewed and your consultation allowance has been reset.",
		},
		"membership_payment_failed": {
			Subject: "Action needed: membership payment failed",
			Body:    "Hi {{.first_name}},\n\nWe could not charge your payment method for the membership renewal. Please update it to keep your benefits: {{.dashboard_url}}",
		},
		"membership_suspended": {
			Subject: "Your membership is suspended",
			Body:    "Hi {{.first_name}},\n\nYour membership has been suspended after repeated failed payments. Update your payment method to reactivate it: {{.dashboard_url}}",
		},
		"membership_cancelled": {
			Subject: "Your membership was cancelled",
			Body:    "Hi {{.first_name}},\n\nYour membership has been cancelled. Benefits remain available until the end of the current period.",
		},
		"membership_reactivated": {
			Subject: "Welcome back - membership reactivated",
			Body:    "Hi {{.first_name}},\n\nYour membership is active again and your benefits have been restored.",
		},
		"membership_allowance_1_left": {
			Subject: "One covered consultation left",
			Body:    "Hi {{.first_name}},\n\nYou have one covered consultation remaining this cycle. Your allowance resets on {{.reset_date}}.",
		},
		"membership_allowance_exhausted": {
			Subject: "Consultation allowance used up",
			Body:    "Hi {{.first_name}},\n\nYou have used all covered consultations for this cycle. Further consultations are charged individually until your allowance resets on {{.reset_date}}.",
		},
		"membership_monthly_reset": {
			Subject: "Your consultation allowance has reset",
			Body:    "Hi {{.first_name}},\n\nA new cycle has started and your covered consultations are available again.",
		},
		"payment_receipt": {
			Subject: "Your Doktu receipt",
			Body:    "Hi {{.first_name}},\n\nWe received your payment of {{.amount}}. This message is your receipt; no action is needed.",
		},
		"payment_refund_issued": {
			Subject: "Your refund is on its way",
			Body:    "Hi {{.first_name}},\n\nA refund of {{.amount}} has been issued to your original payment method. It may take a few business days to appear.",
		},

		"health_profile_incomplete": {
			Subject: "Complete your health profile",
			Body:    "Hi {{.first_name}},\n\nA complete health profile helps your doctor prepare for your consultation. It only takes a few minutes: {{.dashboard_url}}",
		},
		"health_profile_completed": {
			Subject: "Health profile complete",
			Body:    "Hi {{.first_name}},\n\nThanks - your health profile is complete and will be shared with your doctor before each consultation.",
		},
		"health_doc_patient_uploaded": {
			Subject: "Document received",
			Body:    "Hi {{.first_name}},\n\nYour document was uploaded successfully and attached to your health record.",
		},
		"health_doc_doctor_shared": {
			Subject: "{{.doctor_name}} shared a document with you",
			Body:    "Hi {{.first_name}},\n\n{{.doctor_name}} shared a document with you. You can view it in your health record: {{.dashboard_url}}",
		},
		"health_doc_upload_failed": {
			Subject: "Document upload failed",
			Body:    "Hi {{.first_name}},\n\nWe could not process the document you uploaded. Please try again, or contact {{.support_email}} if the problem persists.",
		},

		"calendar_availability_updated": {
			Subject: "Availability updated",
			Body:    "Your availability calendar has been updated.",
		},
		"calendar_conflict_detected": {
			Subject: "Scheduling conflict detected",
			Body:    "Hi {{.first_name}},\n\nA conflict was detected in your calendar around {{.appointment_datetime}}. Please review your schedule: {{.dashboard_url}}",
		},

		"growth_onboarding_welcome": {
			Subject: "Getting started with Doktu",
			Body:    "Hi {{.first_name}},\n\nWelcome aboard. See a doctor from home in three steps: complete your health profile, pick a doctor, and book a slot. Start here: {{.dashboard_url}}",
		},
		"growth_onboarding_profile": {
			Subject: "One step left: your health profile",
			Body:    "Hi {{.first_name}},\n\nFinish setting up your health profile so doctors have what they need before your first consultation: {{.dashboard_url}}",
		},
		"growth_first_booking_nudge": {
			Subject: "Ready for your first consultation?",
			Body:    "Hi {{.first_name}},\n\nDoctors across a dozen specialties are available this week. Book your first consultation: {{.dashboard_url}}",
		},
		"growth_re_engagement_30d": {
			Subject: "We're here when you need us",
			Body:    "Hi {{.first_name}},\n\nIt's been a while since your last visit. Doctors are available for same-day consultations: {{.dashboard_url}}",
		},
		"growth_re_engagement_90d": {
			Subject: "Your doctor is a click away",
			Body:    "Hi {{.first_name}},\n\nJust a reminder that you can consult a doctor from home whenever you need to: {{.dashboard_url}}",
		},
		"growth_survey_post_consultation": {
			Subject: "How was your consultation?",
			Body:    "Hi {{.first_name}},\n\nWe'd love two minutes of feedback about your consultation with {{.doctor_name}}: {{.survey_link}}",
		},
		"growth_referral_program": {
			Subject: "Give a consultation, get a consultation",
			Body:    "Hi {{.first_name}},\n\nInvite a friend to Doktu and you both get a discount on your next consultation: {{.referral_link}}",
		},
		"growth_feature_announcement": {
			Subject: "New on Doktu",
			Body:    "Hi {{.first_name}},\n\n{{.feature_description}}\n\nSee what's new: {{.dashboard_url}}",
		},
		"growth_seasonal_campaign": {
			Subject: "{{.campaign_subject}}",
			Body:    "Hi {{.first_name}},\n\n{{.campaign_body}}",
		},
		"growth_membership_upsell": {
			Subject: "Save on consultations with a membership",
			Body:    "Hi {{.first_name}},\n\nFrequent visits? A Doktu membership covers your consultations for a flat monthly fee: {{.dashboard_url}}",
		},
		"growth_doctor_rating_request": {
			Subject: "Rate your consultation with {{.doctor_name}}",
			Body:    "Hi {{.first_name}},\n\nYour rating helps other patients choose. Rate your consultation with {{.doctor_name}}: {{.rating_link}}",
		},
		"growth_app_update_available": {
			Subject: "Update available",
			Body:    "A new version of the app is available with fixes and improvements.",
		},
	},

	"fr": {
		"booking_confirmation": {
			Subject: "Consultation confirmée avec {{.doctor_name}}",
			Body:    "Bonjour {{.first_name}},\n\nVotre consultation avec {{.doctor_name}} est confirmée pour le {{.appointment_datetime}}.\n\nLien de connexion : {{.join_link}}\n\nGérez ce rendez-vous depuis votre espace : {{.dashboard_url}}",
		},
		"booking_reminder_24h": {
			Subject: "Rappel : consultation demain à {{.appointment_time}}",
			Body:    "Bonjour {{.first_name}},\n\nRappel de votre consultation avec {{.doctor_name}} le {{.appointment_datetime}}.\n\nLien de connexion : {{.join_link}}",
		},
		"booking_reminder_1h": {
			Subject: "Votre consultation commence dans une heure",
			Body:    "Bonjour {{.first_name}},\n\nVotre consultation avec {{.doctor_name}} commence à {{.appointment_time}}.\n\nLien de connexion : {{.join_link}}",
		},
		"booking_live_imminent": {
			Subject: "Votre consultation commence maintenant",
			Body:    "Bonjour {{.first_name}},\n\n{{.doctor_name}} vous attend. Rejoignez la consultation : {{.join_link}}",
		},
		"booking_cancelled_doctor": {
			Subject: "Votre médecin a annulé la consultation",
			Body:    "Bonjour {{.first_name}},\n\n{{.doctor_name}} a dû annuler votre consultation prévue le {{.appointment_datetime}}. Le montant a été intégralement remboursé. Vous pouvez réserver un nouveau créneau : {{.dashboard_url}}",
		},
		"account_password_reset": {
			Subject: "Réinitialisez votre mot de passe",
			Body:    "Bonjour {{.first_name}},\n\nUtilisez ce lien pour choisir un nouveau mot de passe : {{.reset_link}}\n\nSi vous n'êtes pas à l'origine de cette demande, contactez {{.support_email}}.",
		},
		"membership_payment_failed": {
			Subject: "Action requise : échec du paiement de l'abonnement",
			Body:    "Bonjour {{.first_name}},\n\nLe prélèvement de votre abonnement a échoué. Mettez à jour votre moyen de paiement pour conserver vos avantages : {{.dashboard_url}}",
		},
	},
}
