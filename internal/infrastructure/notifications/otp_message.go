package notifications

import (
	"fmt"
	"html"
	"time"

	"github.com/manishadtanii/varalobackendv.0/domain"
)

// otpMessage is the rendered content of a passcode email
type otpMessage struct {
	Subject string
	Text    string
	HTML    string
}

func renderOTPMessage(code string, purpose domain.OTPPurpose, validFor time.Duration) otpMessage {
	var subject, action string
	switch purpose {
	case domain.OTPPurposeChangePassword:
		subject, action = "Password change verification code", "confirm your password change"
	case domain.OTPPurposeResetPassword:
		subject, action = "Password reset verification code", "reset your password"
	default:
		subject, action = "Admin login verification code", "finish signing in"
	}

	minutes := int(validFor.Minutes())
	text := fmt.Sprintf("Your verification code is %s. Use it to %s. It expires in %d minutes.\n\n"+
		"If you did not request this code, you can ignore this email.", code, action, minutes)
	body := fmt.Sprintf(`<div style="font-family:Arial,sans-serif;max-width:480px;margin:0 auto">`+
		`<h2>%s</h2>`+
		`<p>Use the code below to %s.</p>`+
		`<p style="font-size:28px;font-weight:bold;letter-spacing:6px">%s</p>`+
		`<p>This code expires in %d minutes.</p>`+
		`<p style="color:#888">If you did not request this code, you can ignore this email.</p>`+
		`</div>`, html.EscapeString(subject), html.EscapeString(action), html.EscapeString(code), minutes)

	return otpMessage{Subject: subject, Text: text, HTML: body}
}
