package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v2"
)

// ResendNotifier sends email notifications via Resend API
type ResendNotifier struct {
	client      *resend.Client
	fromAddress string
	appURL      string
}

// NewResendNotifier creates a new Resend email notifier
func NewResendNotifier(apiKey, from, appURL string) *ResendNotifier {
	if apiKey == "" {
		return nil
	}
	return &ResendNotifier{
		client:      resend.NewClient(apiKey),
		fromAddress: from,
		appURL:      appURL,
	}
}

// IsConfigured returns true if the notifier has server-side config
func (r *ResendNotifier) IsConfigured() bool {
	return r.client != nil && r.fromAddress != ""
}

// Send emails the batch summary to the specified recipient
func (r *ResendNotifier) Send(ctx context.Context, summary BatchSummary, recipient string) error {
	if recipient == "" {
		return fmt.Errorf("no recipient specified")
	}

	subject := fmt.Sprintf("마케팅 일정 등록 완료: 성공 %d건", summary.Created)
	if summary.Failed > 0 {
		subject = fmt.Sprintf("마케팅 일정 등록: 성공 %d건, 실패 %d건", summary.Created, summary.Failed)
	}

	params := &resend.SendEmailRequest{
		From:    r.fromAddress,
		To:      []string{recipient},
		Subject: subject,
		Html:    r.formatEmailHTML(summary),
	}

	if _, err := r.client.Emails.Send(params); err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}

	fmt.Printf("Email notification sent to %s (%d created, %d failed)\n", recipient, summary.Created, summary.Failed)
	return nil
}

// Name returns the notifier name
func (r *ResendNotifier) Name() string {
	return "resend"
}

// formatEmailHTML creates the HTML email body
func (r *ResendNotifier) formatEmailHTML(summary BatchSummary) string {
	failuresHTML := ""
	if len(summary.Failures) > 0 {
		items := make([]string, 0, len(summary.Failures))
		for _, title := range summary.Failures {
			items = append(items, fmt.Sprintf(`<li style="margin: 4px 0;">%s</li>`, title))
		}
		failuresHTML = fmt.Sprintf(`
    <div style="background: #fff5f5; padding: 16px; border-radius: 8px; margin: 16px 0; border-left: 4px solid #dc3545;">
      <p style="margin: 0 0 8px 0;"><strong>등록에 실패한 일정</strong></p>
      <ul style="margin: 0; padding-left: 20px;">%s</ul>
      <p style="margin: 8px 0 0 0; color: #666; font-size: 13px;">이미 등록된 일정은 그대로 유지됩니다. 실패한 항목만 다시 시도해주세요.</p>
    </div>`, strings.Join(items, ""))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f5f5f5;">
  <div style="background-color: white; border-radius: 8px; padding: 24px; box-shadow: 0 2px 4px rgba(0,0,0,0.1);">
    <h2 style="margin: 0 0 16px 0; color: #333;">마케팅 일정 등록 결과</h2>

    <div style="background: #f8f9fa; padding: 16px; border-radius: 8px; margin: 16px 0; border-left: 4px solid #FF8C00;">
      <p style="margin: 8px 0;"><strong>성공:</strong> %d건</p>
      <p style="margin: 8px 0;"><strong>실패:</strong> %d건</p>
    </div>

    %s

    <a href="%s" style="display: inline-block; background: #FF8C00; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; margin-top: 16px; font-weight: 500;">
      캘린더 확인하기
    </a>

    <hr style="margin-top: 32px; border: none; border-top: 1px solid #eee;">
    <p style="color: #999; font-size: 12px; margin-top: 16px;">
      잘난가게 마케팅 에이전트<br>
      <span style="color: #ccc;">%s</span>
    </p>
  </div>
</body>
</html>`,
		summary.Created,
		summary.Failed,
		failuresHTML,
		r.appURL,
		summary.FinishedAt.Format("2006-01-02 15:04"),
	)
}
