package email

import "html/template"

var welcomeTemplate = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Welcome to Vivaha</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f8f5f0;">
    <table style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-collapse: collapse;">
        <tr>
            <td style="background: linear-gradient(135deg, #EC4899 0%, #F97316 100%); padding: 40px 20px; text-align: center; color: white;">
                <p style="font-size: 28px; font-weight: bold; margin: 0;">💕 Vivaha</p>
                <p style="font-size: 14px; margin-top: 8px;">Your Wedding Planning Companion</p>
            </td>
        </tr>
        <tr>
            <td style="padding: 40px 30px; color: #333;">
                <p style="font-size: 15px; line-height: 1.6;">Hi {{.Name}},</p>
                <p style="font-size: 15px; line-height: 1.6;">
                    Welcome to Vivaha! Your budget, guest list, seating chart, vendors and to-dos now live in one place.
                </p>
                <p style="text-align: center; margin: 30px 0;">
                    <a href="{{.DashboardURL}}" style="display: inline-block; background: #EC4899; color: white; padding: 14px 32px; text-decoration: none; border-radius: 8px; font-weight: bold;">Open my dashboard</a>
                </p>
                <p style="font-size: 13px; color: #888;">Happy planning!</p>
            </td>
        </tr>
    </table>
</body>
</html>
`))

var testTemplate = template.Must(template.New("test").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; padding: 24px;">
    <h2 style="color: #EC4899;">✅ Email is working</h2>
    <p>This test message was sent by Vivaha from {{.From}}.</p>
</body>
</html>
`))
