package email

import (
	"bytes"
	"fmt"
	"html/template"
)

// Asuntos de los correos de OTP.
const (
	SubjectVerifyEmail   = "Verify your email - OTP"
	SubjectResendOTP     = "Your new OTP code"
	SubjectResetPassword = "Reset your password - OTP"
)

// OTPMail es el contenido variable del correo de OTP.
type OTPMail struct {
	FullName         string
	Code             string
	ExpiresInMinutes int
}

var otpTemplate = template.Must(template.New("otp").Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; background-color: #f4f6f8; padding: 24px;">
    <table width="100%" cellpadding="0" cellspacing="0" style="max-width: 520px; margin: 0 auto; background: #ffffff; border-radius: 8px;">
      <tr>
        <td style="padding: 32px;">
          <p style="font-size: 16px; color: #1f2933;">Hello {{.FullName}},</p>
          <p style="font-size: 15px; color: #3e4c59;">Use the following code to continue:</p>
          <p style="font-size: 32px; font-weight: bold; letter-spacing: 8px; color: #102a43; text-align: center;">{{.Code}}</p>
          <p style="font-size: 14px; color: #616e7c;">This code expires in {{.ExpiresInMinutes}} minutes. If you did not request it, you can ignore this email.</p>
        </td>
      </tr>
    </table>
  </body>
</html>
`))

// RenderOTP genera el cuerpo HTML del correo de OTP.
func RenderOTP(data OTPMail) (string, error) {
	var buf bytes.Buffer
	if err := otpTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render otp template: %w", err)
	}
	return buf.String(), nil
}
